package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/internal/tui/browser"
)

// NewTuiCmd creates the `sb tui` command.
func NewTuiCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Browse the workspace interactively",
		Long: `Launch the interactive browser over the folder tree. Notes and folders
can be dragged with the mouse: press and hold on a row, then release
over the destination folder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Check for TTY
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return fmt.Errorf("TUI mode requires an interactive terminal")
			}

			w := *ws
			model := browser.New(w.Store, browser.Options{
				HoldDelay: config.HoldDelay(),
				Editor:    config.Editor(),
			})
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	return cmd
}
