package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

func NewFolderCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
		Long:  "Create and rename folders. Moving, archiving, and deleting go through the move, archive, and delete commands with --folder.",
	}

	cmd.AddCommand(newFolderAddCmd(ws))
	cmd.AddCommand(newFolderRenameCmd(ws))

	return cmd
}

func newFolderAddCmd(ws **config.Workspace) *cobra.Command {
	var (
		parentRef string
		icon      string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a folder",
		Long: `Create a folder, at the root unless a parent is given. Sibling names
must be unique.

Examples:
  sb folder add Projects
  sb folder add Urgent -p Work
  sb folder add Reading -p Personal -i book`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws

			parentID := ""
			if parentRef != "" {
				parent, err := resolveFolder(w.Store.Snapshot(), parentRef)
				if err != nil {
					return err
				}
				parentID = parent.ID
			}

			folder, err := w.Store.AddFolder(args[0], parentID, icon)
			if err != nil {
				return err
			}

			fmt.Printf("Created folder %s\n", folderPathString(w.Store.Snapshot(), folder.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&parentRef, "parent", "p", "", "Parent folder (name, path, or id; default root)")
	cmd.Flags().StringVarP(&icon, "icon", "i", "", "Icon name for clients that render one")

	return cmd
}

func newFolderRenameCmd(ws **config.Workspace) *cobra.Command {
	var icon string

	cmd := &cobra.Command{
		Use:   "rename <folder> <new-name>",
		Short: "Rename a folder",
		Long: `Rename a folder. The inbox keeps its name.

Examples:
  sb folder rename Work Clients
  sb folder rename Work/Urgent "This Week"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws

			folder, err := resolveFolder(w.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}

			patch := workspace.FolderPatch{Name: &args[1]}
			if cmd.Flags().Changed("icon") {
				patch.Icon = &icon
			}

			updated, err := w.Store.UpdateFolder(folder.ID, patch)
			if err != nil {
				return err
			}

			fmt.Printf("Renamed to %q\n", updated.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&icon, "icon", "i", "", "Replace the folder icon")

	return cmd
}
