package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/markdown"
)

func NewOpenCmd(ws **config.Workspace) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "open <note>",
		Short:   "Edit a note in your editor",
		Aliases: []string{"edit"},
		Long: `Open a note as markdown in your editor and write the result back when
the editor exits.

Examples:
  sb open "Q3 plan"
  sb open 1a2b3c4d`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			note, err := resolveNote(w.Store.Snapshot(), args[0])
			if err != nil {
				return err
			}
			return runEditor(w, note.ID)
		},
	}
	return cmd
}

// runEditor round-trips a note through the configured editor. Content is
// written back through an edit session so the save path matches what a
// long-running client does.
func runEditor(w *config.Workspace, noteID string) error {
	session, err := w.Store.OpenEditSession(noteID)
	if err != nil {
		return err
	}
	defer session.Close()

	note, err := resolveNote(w.Store.Snapshot(), noteID)
	if err != nil {
		return err
	}

	body := markdown.ToMarkdown(note.Content)

	path := filepath.Join(os.TempDir(), fmt.Sprintf("sb-edit-%s.md", noteID))
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	defer os.Remove(path)

	editor := config.Editor()
	ed := exec.Command(editor, path)
	ed.Stdin = os.Stdin
	ed.Stdout = os.Stdout
	ed.Stderr = os.Stderr
	if err := ed.Run(); err != nil {
		return fmt.Errorf("run %s: %w", editor, err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read temp file: %w", err)
	}
	if strings.TrimSpace(string(edited)) == strings.TrimSpace(body) {
		fmt.Println("No changes.")
		return nil
	}

	conv := markdown.NewConverter()
	content, err := conv.FromMarkdown(strings.TrimSpace(string(edited)))
	if err != nil {
		return fmt.Errorf("parse edited note: %w", err)
	}

	if err := session.Write(content); err != nil {
		return err
	}
	if err := session.Close(); err != nil {
		return err
	}

	fmt.Printf("Saved %q\n", note.Title)
	return nil
}
