package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/backup"
)

func NewExportCmd(ws **config.Workspace) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Export the workspace to a JSON archive or a markdown tree",
		Long: `Export every folder, note, and tag. A .json destination produces a
single archive file; anything else produces a directory of markdown
files mirroring the folder tree. The JSON archive is the lossless
format and the one sb import restores from exactly.

Examples:
  sb export backup.json
  sb export ~/notes-export          # Markdown tree
  sb export - --format json         # Archive to stdout`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			path := args[0]

			if format == "" {
				if path == "-" || strings.HasSuffix(path, ".json") {
					format = "json"
				} else {
					format = "tree"
				}
			}

			snap := w.Store.Snapshot()
			switch format {
			case "json":
				archive := backup.Export(snap, time.Now().UTC())
				data, err := archive.MarshalIndent()
				if err != nil {
					return err
				}
				if path == "-" {
					fmt.Println(string(data))
					return nil
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write archive: %w", err)
				}
				fmt.Printf("Exported %d folders, %d notes, %d tags to %s\n",
					len(snap.Folders), len(snap.Notes), len(snap.Tags), path)
				return nil

			case "tree":
				if err := backup.ExportTree(snap, path); err != nil {
					return err
				}
				fmt.Printf("Exported %d notes to %s\n", len(snap.Notes), path)
				return nil
			}

			return fmt.Errorf("unknown format %q (want json or tree)", format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "Archive format: json or tree (inferred from the path)")

	return cmd
}
