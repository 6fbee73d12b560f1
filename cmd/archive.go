package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
)

func NewArchiveCmd(ws **config.Workspace) *cobra.Command {
	var archiveFolder bool

	cmd := &cobra.Command{
		Use:   "archive <note|folder>",
		Short: "Archive a note or folder",
		Long: `Archive a note, or with --folder a folder and everything under it.
Archived items stay in the workspace but drop out of the default views.
The inbox cannot be archived.

Examples:
  sb archive "Old meeting notes"
  sb archive --folder "2023 Projects"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()

			if archiveFolder {
				folder, err := resolveFolder(snap, args[0])
				if err != nil {
					return err
				}
				if err := w.Store.ArchiveFolder(folder.ID); err != nil {
					return err
				}
				fmt.Printf("Archived folder %q\n", folder.Name)
				return nil
			}

			note, err := resolveNote(snap, args[0])
			if err != nil {
				return err
			}
			if err := w.Store.ArchiveNote(note.ID); err != nil {
				return err
			}
			fmt.Printf("Archived %q\n", note.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&archiveFolder, "folder", false, "Archive a folder instead of a note")

	return cmd
}

func NewUnarchiveCmd(ws **config.Workspace) *cobra.Command {
	var unarchiveFolder bool

	cmd := &cobra.Command{
		Use:   "unarchive <note|folder>",
		Short: "Bring a note or folder back from the archive",
		Long: `Clear the archived flag on a note, or with --folder on a folder and
everything under it.

Examples:
  sb unarchive "Old meeting notes"
  sb unarchive --folder "2023 Projects"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			snap := w.Store.Snapshot()

			if unarchiveFolder {
				folder, err := resolveFolder(snap, args[0])
				if err != nil {
					return err
				}
				if err := w.Store.UnarchiveFolder(folder.ID); err != nil {
					return err
				}
				fmt.Printf("Unarchived folder %q\n", folder.Name)
				return nil
			}

			note, err := resolveNote(snap, args[0])
			if err != nil {
				return err
			}
			if err := w.Store.UnarchiveNote(note.ID); err != nil {
				return err
			}
			fmt.Printf("Unarchived %q\n", note.Title)
			return nil
		},
	}

	cmd.Flags().BoolVar(&unarchiveFolder, "folder", false, "Unarchive a folder instead of a note")

	return cmd
}
