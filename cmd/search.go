package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/search"
)

func NewSearchCmd(ws **config.Workspace) *cobra.Command {
	var searchJSON bool

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "Search folder names and note content",
		Long: `Search across folder names, note titles, and note text. Matching is
case-insensitive and accent-insensitive.

Examples:
  sb search budget
  sb search "quarterly review"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			term := strings.Join(args, " ")

			results := search.Search(w.Store.Snapshot(), term)
			if results.Empty() {
				fmt.Printf("No matches for %q\n", term)
				return nil
			}

			if searchJSON {
				return outputJSON(results)
			}

			snap := w.Store.Snapshot()
			if len(results.Folders) > 0 {
				fmt.Printf("Folders (%d):\n", len(results.Folders))
				for _, folder := range results.Folders {
					fmt.Printf("  %s\n", folderPathString(snap, folder.ID))
				}
			}
			if len(results.Notes) > 0 {
				if len(results.Folders) > 0 {
					fmt.Println()
				}
				fmt.Printf("Notes (%d):\n", len(results.Notes))
				for _, match := range results.Notes {
					fmt.Printf("  %s  %s (%s)\n",
						match.Note.ID[:minInt(8, len(match.Note.ID))],
						match.Note.Title,
						folderPathString(snap, match.Note.FolderID))
					if match.Preview != "" {
						fmt.Printf("      %s\n", match.Preview)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&searchJSON, "json", false, "Output results as JSON")

	return cmd
}
