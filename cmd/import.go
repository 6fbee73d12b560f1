package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chelle-c/second-brain/cmd/config"
	"github.com/chelle-c/second-brain/pkg/backup"
	"github.com/chelle-c/second-brain/pkg/models"
)

func NewImportCmd(ws **config.Workspace) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import a JSON archive or a markdown tree",
		Long: `Import from a JSON archive file or from a directory of exported
markdown files. Merge keeps what you have and adds entries whose ids
are new; replace swaps the whole workspace for the archive. Directory
imports always merge, recreating folders from the directory layout and
skipping notes whose id already exists.

Examples:
  sb import backup.json
  sb import backup.json --mode replace
  sb import ~/notes-export`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := *ws
			path := args[0]

			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			if info.IsDir() {
				if modeFlag != string(backup.ModeMerge) {
					return fmt.Errorf("directory imports only support --mode merge")
				}
				return importTree(w, path)
			}

			mode, err := backup.ParseMode(modeFlag)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read archive: %w", err)
			}

			archive, err := backup.ImportJSON(data)
			if err != nil {
				return err
			}

			stats, err := backup.Apply(w.Store, archive, mode)
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d folders, %d notes (%d skipped), %d tags\n",
				stats.FoldersAdded, stats.NotesAdded, stats.NotesSkipped, stats.TagsAdded)
			return nil
		},
	}

	cmd.Flags().StringVar(&modeFlag, "mode", string(backup.ModeMerge), "Import mode: merge or replace")

	return cmd
}

// importTree walks a directory of exported markdown files, recreating
// folders from the layout and adding the notes inside them.
func importTree(w *config.Workspace, dir string) error {
	existing := make(map[string]bool)
	for _, note := range w.Store.Snapshot().Notes {
		existing[note.ID] = true
	}

	added, skipped := 0, 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}

		note, tagNames, err := backup.NoteFromFile(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if note.ID != "" && existing[note.ID] {
			skipped++
			return nil
		}

		rel, err := filepath.Rel(dir, filepath.Dir(path))
		if err != nil {
			return err
		}
		folderID, err := ensureFolderPath(w, rel)
		if err != nil {
			return err
		}

		tagIDs, err := ensureTags(w, tagNames)
		if err != nil {
			return err
		}

		if _, err := w.Store.AddNote(note.Title, note.Content, folderID, tagIDs); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		added++
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d notes (%d skipped)\n", added, skipped)
	return nil
}

// ensureFolderPath maps a relative directory like "work/urgent" onto the
// folder tree, creating folders that do not exist yet. Exported segments
// are slugs, so matching against folder names ignores case and treats
// hyphens as spaces.
func ensureFolderPath(w *config.Workspace, rel string) (string, error) {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return models.InboxFolderID, nil
	}

	parentID := ""
	for _, segment := range strings.Split(rel, "/") {
		snap := w.Store.Snapshot()
		var match *models.Folder
		for _, folder := range snap.Folders {
			if folder.ParentID == parentID && segmentMatches(folder.Name, segment) {
				match = folder
				break
			}
		}
		if match == nil {
			created, err := w.Store.AddFolder(segment, parentID, "")
			if err != nil {
				return "", fmt.Errorf("create folder %q: %w", segment, err)
			}
			match = created
		}
		parentID = match.ID
	}
	return parentID, nil
}

func segmentMatches(folderName, segment string) bool {
	name := strings.ToLower(folderName)
	seg := strings.ToLower(segment)
	return name == seg || strings.ReplaceAll(name, " ", "-") == seg
}
