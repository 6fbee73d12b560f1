// Package search filters notes and folders against a query string. There
// is no persistent index; every query scans the live snapshot, which stays
// fast at personal-workspace sizes and can never drift out of date.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/chelle-c/second-brain/pkg/models"
)

// previewLimit caps the content preview shown next to a note match.
const previewLimit = 120

// NoteMatch pairs a matched note with the preview line the UI displays.
// Title-only matches carry an empty preview.
type NoteMatch struct {
	Note         *models.Note
	Preview      string
	MatchedTitle bool
}

// Results groups a combined query's hits, folders first.
type Results struct {
	Folders []*models.Folder
	Notes   []NoteMatch
}

// Total counts hits across both groups.
func (r Results) Total() int {
	return len(r.Folders) + len(r.Notes)
}

// Empty reports whether the query matched nothing.
func (r Results) Empty() bool {
	return r.Total() == 0
}

// Search runs a combined query over a snapshot. A blank term returns empty
// results; queries are not triggered on empty input.
func Search(snap *models.Snapshot, term string) Results {
	if snap == nil || strings.TrimSpace(term) == "" {
		return Results{}
	}
	return Results{
		Folders: SearchFolders(snap.Folders, term),
		Notes:   SearchNotes(snap.Notes, term),
	}
}

// SearchNotes matches term against note titles and content blocks,
// case-folded. Title matches rank before content-only matches; within a
// rank, collection order is preserved. A matched note's preview is its
// first matching block.
func SearchNotes(notes []*models.Note, term string) []NoteMatch {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(term)

	var byTitle, byContent []NoteMatch
	for _, n := range notes {
		titleHit := strings.Contains(fold.String(n.Title), needle)

		preview := ""
		contentHit := false
		for _, block := range ExtractBlocks(n.Content) {
			if strings.Contains(fold.String(block), needle) {
				contentHit = true
				preview = Preview(block)
				break
			}
		}
		if !titleHit && !contentHit {
			continue
		}

		match := NoteMatch{Note: n, Preview: preview, MatchedTitle: titleHit}
		if titleHit {
			byTitle = append(byTitle, match)
		} else {
			byContent = append(byContent, match)
		}
	}
	return append(byTitle, byContent...)
}

// SearchFolders matches term against folder names only, case-folded.
func SearchFolders(folders []*models.Folder, term string) []*models.Folder {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(term)

	var out []*models.Folder
	for _, f := range folders {
		if strings.Contains(fold.String(f.Name), needle) {
			out = append(out, f)
		}
	}
	return out
}

// Preview trims a block and truncates it for display, appending an
// ellipsis when the block runs past the limit.
func Preview(block string) string {
	trimmed := strings.TrimSpace(block)
	runes := []rune(trimmed)
	if len(runes) <= previewLimit {
		return trimmed
	}
	return string(runes[:previewLimit]) + "..."
}
