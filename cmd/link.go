package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/linkmeta"
	"github.com/chelle-c/second-brain/pkg/markdown"
)

func NewLinkCmd(ws **config.Workspace) *cobra.Command {
	var (
		folderRef string
		tagNames  []string
	)

	cmd := &cobra.Command{
		Use:   "link <url>",
		Short: "Save a link as a note",
		Long: `Fetch a page's Open Graph metadata and save it as a bookmark note.
The note title comes from the page title, the body carries the
description and the link.

Examples:
  sb link https://go.dev/blog/error-handling
  sb link https://example.com/article -f Reading -t toread`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			rawURL := args[0]

			ctx, cancel := context.WithTimeout(cmd.Context(), linkmeta.DefaultTimeout)
			defer cancel()

			fetcher := linkmeta.NewFetcher(nil)
			meta, err := fetcher.Fetch(ctx, rawURL)
			if err != nil {
				return fmt.Errorf("fetch link metadata: %w", err)
			}

			title := meta.Title
			if title == "" {
				title = rawURL
			}

			var body strings.Builder
			if meta.Description != "" {
				body.WriteString(meta.Description)
				body.WriteString("\n\n")
			}
			body.WriteString(fmt.Sprintf("[%s](%s)\n", rawURL, rawURL))
			if meta.SiteName != "" {
				body.WriteString(fmt.Sprintf("\nSource: %s\n", meta.SiteName))
			}

			conv := markdown.NewConverter()
			content, err := conv.FromMarkdown(strings.TrimSpace(body.String()))
			if err != nil {
				return fmt.Errorf("build note content: %w", err)
			}

			folderID := ""
			if folderRef != "" {
				folder, err := resolveFolder(w.Store.Snapshot(), folderRef)
				if err != nil {
					return err
				}
				folderID = folder.ID
			}

			tagIDs, err := ensureTags(w, tagNames)
			if err != nil {
				return err
			}

			note, err := w.Store.AddNote(title, content, folderID, tagIDs)
			if err != nil {
				return err
			}

			fmt.Printf("Saved %q (%s)\n", note.Title, note.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVarP(&folderRef, "folder", "f", "", "Destination folder (default inbox)")
	cmd.Flags().StringSliceVarP(&tagNames, "tags", "t", nil, "Tags to apply, created when missing")

	return cmd
}
