package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/models"
)

func NewDoctorCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the workspace setup",
		Long: `Check the workspace database, configuration, and editor setup, and
report anything that looks off.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			issues := 0

			fmt.Println("Running workspace doctor...")
			fmt.Println()

			if used := viper.ConfigFileUsed(); used != "" {
				fmt.Printf("Config file:  %s\n", shortenPath(used))
			} else {
				fmt.Println("Config file:  none (defaults in effect)")
			}
			fmt.Printf("Database:     %s\n", shortenPath(w.Path))

			folders, notes, tags, err := w.DB.Counts()
			if err != nil {
				fmt.Printf("❗ Could not read database counts: %v\n", err)
				issues++
			} else {
				fmt.Printf("Contents:     %d folders, %d notes, %d tags\n", folders, notes, tags)

				snap := w.Store.Snapshot()
				if folders != len(snap.Folders) || notes != len(snap.Notes) || tags != len(snap.Tags) {
					fmt.Printf("❗ Database and loaded workspace disagree (loaded %d/%d/%d)\n",
						len(snap.Folders), len(snap.Notes), len(snap.Tags))
					issues++
				}
			}

			snap := w.Store.Snapshot()
			hasInbox := false
			for _, folder := range snap.Folders {
				if folder.IsInbox() {
					hasInbox = true
					break
				}
			}
			if !hasInbox {
				fmt.Println("❗ Inbox folder missing")
				issues++
			}

			folderIDs := make(map[string]bool, len(snap.Folders))
			for _, folder := range snap.Folders {
				folderIDs[folder.ID] = true
			}
			orphans := 0
			for _, note := range snap.Notes {
				if !folderIDs[note.FolderID] {
					orphans++
				}
			}
			if orphans > 0 {
				fmt.Printf("❗ %d notes reference missing folders (they reattach to %q on next load)\n",
					orphans, models.InboxFolderID)
				issues++
			}

			editor := config.Editor()
			if _, err := exec.LookPath(strings.Fields(editor)[0]); err != nil {
				fmt.Printf("❗ Editor %q not found on PATH\n", editor)
				issues++
			} else {
				fmt.Printf("Editor:       %s\n", editor)
			}

			fmt.Println()
			if issues == 0 {
				fmt.Println("Everything looks fine.")
			} else {
				fmt.Printf("%d issue(s) found.\n", issues)
			}
			return nil
		},
	}
	return cmd
}

// shortenPath replaces the home directory prefix with a tilde (~).
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return filepath.Join("~", strings.TrimPrefix(path, home))
	}
	return path
}
