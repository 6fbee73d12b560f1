package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/markdown"
)

func NewQuickCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quick <content>",
		Short: "Capture a quick note into the inbox",
		Long: `Capture a one-off thought straight into the inbox, no editor.

Examples:
  sb quick "Remember to review PR #123"
  sb quick "Meeting at 3pm with team"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			text := strings.Join(args, " ")

			title := time.Now().Format("2006-01-02-150405") + "-quick"

			conv := markdown.NewConverter()
			content, err := conv.FromMarkdown(text)
			if err != nil {
				return fmt.Errorf("parse content: %w", err)
			}

			note, err := w.Store.AddNote(title, content, "", nil)
			if err != nil {
				return err
			}

			fmt.Printf("Captured %q (%s) in the inbox\n", note.Title, note.ID[:8])
			return nil
		},
	}

	return cmd
}
