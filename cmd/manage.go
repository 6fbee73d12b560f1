package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/internal/tui/manager"
)

// NewManageCmd creates the `sb manage` command.
func NewManageCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manage",
		Short: "Manage tags in a table view",
		Long:  "Launch a table view of every tag with usage counts, for renaming, recoloring, and pruning in bulk.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("manage mode requires an interactive terminal")
			}

			w := *ws
			model := manager.New(w.Store)
			p := tea.NewProgram(model, tea.WithAltScreen())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	return cmd
}
