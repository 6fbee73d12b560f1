package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chelle-c/second-brain/pkg/models"
)

func contentWith(blocks ...string) string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, text := range blocks {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(`"b` + string(rune('0'+i)) + `": {"value": [{"children": [{"text": "` + text + `"}]}], "meta": {"order": ` + string(rune('0'+i)) + `}}`)
	}
	sb.WriteString("}")
	return sb.String()
}

func TestSearchNotesContentMatch(t *testing.T) {
	notes := []*models.Note{
		{ID: "n1", Title: "Untitled", Content: contentWith("Hello world", "unrelated")},
	}

	matches := SearchNotes(notes, "world")
	require.Len(t, matches, 1)
	assert.Equal(t, "n1", matches[0].Note.ID)
	assert.Equal(t, "Hello world", matches[0].Preview)
	assert.False(t, matches[0].MatchedTitle)

	assert.Empty(t, SearchNotes(notes, "zzz"))
}

func TestSearchNotesTitleOnlyMatchHasEmptyPreview(t *testing.T) {
	notes := []*models.Note{
		{ID: "n1", Title: "Groceries", Content: contentWith("milk", "eggs")},
	}

	matches := SearchNotes(notes, "grocer")
	require.Len(t, matches, 1)
	assert.True(t, matches[0].MatchedTitle)
	assert.Equal(t, "", matches[0].Preview)
}

func TestSearchNotesCaseFolded(t *testing.T) {
	notes := []*models.Note{
		{ID: "n1", Title: "Straße Notizen", Content: contentWith("nothing here")},
		{ID: "n2", Title: "x", Content: contentWith("HELLO WORLD")},
	}

	require.Len(t, SearchNotes(notes, "STRASSE"), 1)
	require.Len(t, SearchNotes(notes, "hello"), 1)
}

func TestSearchNotesTitleMatchesRankFirst(t *testing.T) {
	notes := []*models.Note{
		{ID: "content-hit", Title: "x", Content: contentWith("about planning")},
		{ID: "title-hit", Title: "Planning", Content: contentWith("nothing")},
	}

	matches := SearchNotes(notes, "plan")
	require.Len(t, matches, 2)
	assert.Equal(t, "title-hit", matches[0].Note.ID)
	assert.Equal(t, "content-hit", matches[1].Note.ID)
}

func TestSearchNotesPlainTextContent(t *testing.T) {
	notes := []*models.Note{
		{ID: "n1", Title: "x", Content: "a plain note about fishing"},
	}

	matches := SearchNotes(notes, "fishing")
	require.Len(t, matches, 1)
	assert.Equal(t, "a plain note about fishing", matches[0].Preview)
}

func TestSearchNotesBlankTermMatchesNothing(t *testing.T) {
	notes := []*models.Note{{ID: "n1", Title: "anything"}}

	assert.Empty(t, SearchNotes(notes, ""))
	assert.Empty(t, SearchNotes(notes, "   "))
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("a", 121)
	got := Preview("  " + long + "  ")
	require.Len(t, got, 123)
	assert.True(t, strings.HasSuffix(got, "..."))

	exact := strings.Repeat("b", 120)
	assert.Equal(t, exact, Preview(exact))
	assert.Equal(t, "short", Preview("  short  "))
}

func TestSearchFolders(t *testing.T) {
	folders := []*models.Folder{
		{ID: "f1", Name: "Work Projects"},
		{ID: "f2", Name: "Personal"},
	}

	matches := SearchFolders(folders, "work")
	require.Len(t, matches, 1)
	assert.Equal(t, "f1", matches[0].ID)

	assert.Empty(t, SearchFolders(folders, ""))
	assert.Empty(t, SearchFolders(folders, "archive"))
}

func TestSearchCombined(t *testing.T) {
	snap := &models.Snapshot{
		Folders: []*models.Folder{
			{ID: "f1", Name: "Reading List"},
		},
		Notes: []*models.Note{
			{ID: "n1", Title: "Reading notes", Content: contentWith("chapter one")},
		},
	}

	results := Search(snap, "reading")
	assert.Equal(t, 2, results.Total())
	require.Len(t, results.Folders, 1)
	require.Len(t, results.Notes, 1)

	assert.True(t, Search(snap, "").Empty())
	assert.True(t, Search(nil, "reading").Empty())
}
