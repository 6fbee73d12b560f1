package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd"
	"github.com/chelle-c/second-brain/cmd/config"
)

var ws *config.Workspace

func main() {
	cobra.OnInitialize(config.InitConfig)

	rootCmd := &cobra.Command{
		Use:           "sb",
		Short:         "A folder-and-tag note workspace",
		Long:          "sb keeps notes in a local workspace of nested folders and tags, with undo, reminders, and full-text search.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	config.AddGlobalFlags(rootCmd)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// This runs once before any subcommand
		var err error
		ws, err = config.Open()
		return err
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		if ws != nil {
			ws.Close()
		}
	}

	// Add subcommands
	rootCmd.AddCommand(cmd.NewNewCmd(&ws))
	rootCmd.AddCommand(cmd.NewQuickCmd(&ws))
	rootCmd.AddCommand(cmd.NewListCmd(&ws))
	rootCmd.AddCommand(cmd.NewSearchCmd(&ws))
	rootCmd.AddCommand(cmd.NewFolderCmd(&ws))
	rootCmd.AddCommand(cmd.NewMoveCmd(&ws))
	rootCmd.AddCommand(cmd.NewArchiveCmd(&ws))
	rootCmd.AddCommand(cmd.NewUnarchiveCmd(&ws))
	rootCmd.AddCommand(cmd.NewDeleteCmd(&ws))
	rootCmd.AddCommand(cmd.NewTagCmd(&ws))
	rootCmd.AddCommand(cmd.NewRemindCmd(&ws))
	rootCmd.AddCommand(cmd.NewUndoCmd(&ws))
	rootCmd.AddCommand(cmd.NewRedoCmd(&ws))
	rootCmd.AddCommand(cmd.NewOpenCmd(&ws))
	rootCmd.AddCommand(cmd.NewLinkCmd(&ws))
	rootCmd.AddCommand(cmd.NewExportCmd(&ws))
	rootCmd.AddCommand(cmd.NewImportCmd(&ws))
	rootCmd.AddCommand(cmd.NewTuiCmd(&ws))
	rootCmd.AddCommand(cmd.NewManageCmd(&ws))
	rootCmd.AddCommand(cmd.NewDoctorCmd(&ws))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
