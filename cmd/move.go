package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
)

func NewMoveCmd(ws **config.Workspace) *cobra.Command {
	var moveFolder bool

	cmd := &cobra.Command{
		Use:   "move <note|folder> <destination-folder>",
		Short: "Move a note or folder into another folder",
		Aliases: []string{"mv"},
		Long: `Move a note into a folder, or with --folder reparent a whole folder.
Folders cannot move into themselves or their own subtree, and the inbox
stays where it is.

Examples:
  sb move "Q3 plan" Work/Plans
  sb move 1a2b3c4d Personal
  sb move --folder Urgent Work     # Nest Urgent under Work
  sb move --folder Urgent /        # Make Urgent a root folder`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()

			if moveFolder {
				folder, err := resolveFolder(snap, args[0])
				if err != nil {
					return err
				}
				targetID := ""
				if args[1] != "/" {
					target, err := resolveFolder(snap, args[1])
					if err != nil {
						return err
					}
					targetID = target.ID
				}
				if err := w.Store.MoveFolder(folder.ID, targetID); err != nil {
					return err
				}
				fmt.Printf("Moved folder %q to %s\n", folder.Name, destinationLabel(w, targetID))
				return nil
			}

			note, err := resolveNote(snap, args[0])
			if err != nil {
				return err
			}
			target, err := resolveFolder(snap, args[1])
			if err != nil {
				return err
			}
			if err := w.Store.MoveNote(note.ID, target.ID); err != nil {
				return err
			}
			fmt.Printf("Moved %q to %s\n", note.Title, folderPathString(w.Store.Snapshot(), target.ID))
			return nil
		},
	}

	cmd.Flags().BoolVar(&moveFolder, "folder", false, "Move a folder instead of a note")

	return cmd
}

func destinationLabel(w *config.Workspace, folderID string) string {
	if folderID == "" {
		return "the root"
	}
	return folderPathString(w.Store.Snapshot(), folderID)
}
