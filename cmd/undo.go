package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
)

func NewUndoCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the last change",
		Long: `Undo the most recent change to the workspace. Autosaved content
writes do not create their own undo steps, so undo moves across whole
actions.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			if !w.Store.Undo() {
				fmt.Println("Nothing to undo.")
				return nil
			}
			fmt.Println("Undid last change.")
			return nil
		},
	}
	return cmd
}

func NewRedoCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			if !w.Store.Redo() {
				fmt.Println("Nothing to redo.")
				return nil
			}
			fmt.Println("Redid last change.")
			return nil
		},
	}
	return cmd
}
