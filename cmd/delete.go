package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
)

func NewDeleteCmd(ws **config.Workspace) *cobra.Command {
	var (
		deleteFolder bool
		skipConfirm  bool
	)

	cmd := &cobra.Command{
		Use:     "delete <note|folder>",
		Short:   "Delete a note or folder",
		Aliases: []string{"rm"},
		Long: `Delete a note, or with --folder a folder and its subfolders. Notes in
a deleted folder are not lost, they move to the inbox. The inbox itself
cannot be deleted. Deletion is undoable with sb undo.

Examples:
  sb delete "Old meeting notes"
  sb delete --folder "2023 Projects"
  sb delete -y 1a2b3c4d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()

			if deleteFolder {
				folder, err := resolveFolder(snap, args[0])
				if err != nil {
					return err
				}
				prompt := fmt.Sprintf("Delete folder %q and its subfolders? Its notes move to the inbox.", folder.Name)
				if !skipConfirm && !confirmPrompt(prompt) {
					fmt.Println("Cancelled.")
					return nil
				}
				if err := w.Store.DeleteFolder(folder.ID); err != nil {
					return err
				}
				fmt.Printf("Deleted folder %q\n", folder.Name)
				return nil
			}

			note, err := resolveNote(snap, args[0])
			if err != nil {
				return err
			}
			if !skipConfirm && !confirmPrompt(fmt.Sprintf("Delete note %q?", note.Title)) {
				fmt.Println("Cancelled.")
				return nil
			}
			if err := w.Store.DeleteNote(note.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted %q\n", note.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&deleteFolder, "folder", false, "Delete a folder instead of a note")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func confirmPrompt(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
