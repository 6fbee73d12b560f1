package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/markdown"
)

func NewNewCmd(ws **config.Workspace) *cobra.Command {
	var (
		folderRef string
		tagNames  []string
		edit      bool
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new note",
		Long: `Create a new note, in the inbox unless a folder is given.

Examples:
  sb new                          # Untitled note in the inbox
  sb new "Meeting notes"          # Titled note in the inbox
  sb new "Q3 plan" -f Work        # Note in the Work folder
  sb new "Q3 plan" -f Work/Plans  # Folder given as a path
  sb new "Ideas" -t planning,work # Note with tags

  # From stdin (auto-detected):
  echo "Quick thought" | sb new
  cat ideas.md | sb new "imported ideas"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()

			title := ""
			if len(args) > 0 {
				title = args[0]
			}

			// Auto-detect stdin if not explicitly set
			if !cmd.Flags().Changed("stdin") {
				stat, err := os.Stdin.Stat()
				if err == nil && (stat.Mode()&os.ModeCharDevice) == 0 {
					fromStdin = true
				}
			}
			if title == "" && fromStdin {
				title = time.Now().Format("2006-01-02-150405") + "-quick"
			}

			folderID := ""
			if folderRef != "" {
				folder, err := resolveFolder(snap, folderRef)
				if err != nil {
					return err
				}
				folderID = folder.ID
			}

			content := ""
			if fromStdin {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				conv := markdown.NewConverter()
				content, err = conv.FromMarkdown(strings.TrimSpace(string(data)))
				if err != nil {
					return fmt.Errorf("parse stdin: %w", err)
				}
			}

			tagIDs, err := ensureTags(w, tagNames)
			if err != nil {
				return err
			}

			note, err := w.Store.AddNote(title, content, folderID, tagIDs)
			if err != nil {
				return err
			}

			fmt.Printf("Created %q (%s) in %s\n",
				note.Title, note.ID[:8], folderPathString(w.Store.Snapshot(), note.FolderID))

			if edit && !fromStdin {
				return runEditor(w, note.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&folderRef, "folder", "f", "", "Destination folder (name, path, or id; default inbox)")
	cmd.Flags().StringSliceVarP(&tagNames, "tags", "t", nil, "Tags to apply, created when missing")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "Open the note in your editor after creating")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read content from stdin (auto-detected when piped)")

	return cmd
}

// ensureTags maps tag names to ids, creating missing tags as it goes.
func ensureTags(w *config.Workspace, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if tag, err := resolveTag(w.Store.Snapshot(), name); err == nil {
			ids = append(ids, tag.ID)
			continue
		}
		tag, err := w.Store.AddTag(name, "", "")
		if err != nil {
			return nil, fmt.Errorf("create tag %q: %w", name, err)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
