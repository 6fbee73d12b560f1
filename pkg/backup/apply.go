package backup

import (
	"errors"
	"fmt"

	"github.com/chelle-c/second-brain/pkg/models"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

// Mode selects how an import treats entities whose ids already exist.
type Mode string

const (
	// ModeMerge keeps existing entities and only adds archive entries
	// with unseen ids.
	ModeMerge Mode = "merge"
	// ModeReplace substitutes the archive's collections wholesale.
	ModeReplace Mode = "replace"
)

// ParseMode validates a mode string from a flag or config value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeMerge:
		return ModeMerge, nil
	case ModeReplace:
		return ModeReplace, nil
	}
	return "", fmt.Errorf("unknown import mode %q (want merge or replace)", s)
}

// Stats summarizes what an import changed.
type Stats struct {
	FoldersAdded int
	NotesAdded   int
	NotesSkipped int
	TagsAdded    int
}

// Apply imports an archive into the store through its bulk entry points.
// Replace swaps every collection for the archive's; merge adds only the
// entries whose ids are new, counting skips. The store re-normalizes on
// its own (inbox recreation, orphaned notes), so a malformed hierarchy in
// the archive cannot corrupt the workspace.
func Apply(store *workspace.Store, a *Archive, mode Mode) (Stats, error) {
	folders, notes, tags := a.Collections()
	var stats Stats

	switch mode {
	case ModeReplace:
		store.SetFolders(folders)
		store.SetTags(tags)
		store.SetNotes(notes)
		stats.FoldersAdded = len(folders)
		stats.NotesAdded = len(notes)
		stats.TagsAdded = len(tags)
		return stats, nil

	case ModeMerge:
		snap := store.Snapshot()

		merged := append([]*models.Folder(nil), snap.Folders...)
		for _, f := range folders {
			if snap.FolderByID(f.ID) == nil {
				merged = append(merged, f)
				stats.FoldersAdded++
			}
		}
		if stats.FoldersAdded > 0 {
			store.SetFolders(merged)
		}

		mergedTags := append([]*models.Tag(nil), snap.Tags...)
		for _, t := range tags {
			if snap.TagByID(t.ID) == nil {
				mergedTags = append(mergedTags, t)
				stats.TagsAdded++
			}
		}
		if stats.TagsAdded > 0 {
			store.SetTags(mergedTags)
		}

		for _, n := range notes {
			err := store.RestoreNote(n)
			switch {
			case err == nil:
				stats.NotesAdded++
			case errors.Is(err, workspace.ErrExists):
				stats.NotesSkipped++
			default:
				return stats, fmt.Errorf("import note %s: %w", n.ID, err)
			}
		}
		return stats, nil
	}

	return stats, fmt.Errorf("unknown import mode %q", mode)
}
