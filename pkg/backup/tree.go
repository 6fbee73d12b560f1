package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chelle-c/second-brain/pkg/foldertree"
	"github.com/chelle-c/second-brain/pkg/markdown"
	"github.com/chelle-c/second-brain/pkg/models"
)

// ExportTree writes every note as a markdown file under dir, mirroring the
// folder hierarchy as directories. Each file carries a frontmatter header
// so the tree can be re-imported without losing metadata.
func ExportTree(snap *models.Snapshot, dir string) error {
	if snap == nil {
		return fmt.Errorf("export tree: nil snapshot")
	}

	tagNames := make(map[string]string, len(snap.Tags))
	for _, tag := range snap.Tags {
		tagNames[tag.ID] = tag.Name
	}

	folderPaths := make(map[string]string, len(snap.Folders))
	for _, folder := range snap.Folders {
		folderPaths[folder.ID] = folderPath(snap.Folders, folder.ID)
	}

	for _, note := range snap.Notes {
		noteDir := dir
		if rel, ok := folderPaths[note.FolderID]; ok && rel != "" {
			noteDir = filepath.Join(dir, rel)
		}
		if err := os.MkdirAll(noteDir, 0o755); err != nil {
			return fmt.Errorf("export tree: %w", err)
		}

		doc := noteDocument(note, folderLabel(snap, note.FolderID), tagNames)
		path := filepath.Join(noteDir, NoteFilename(note))
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			return fmt.Errorf("export tree: %w", err)
		}
	}

	return nil
}

// NoteFilename builds a stable filename from the note title and a short
// id suffix to keep same-titled notes apart.
func NoteFilename(note *models.Note) string {
	slug := sanitizeFilename(note.Title)
	if slug == "" {
		slug = "untitled"
	}
	id := note.ID
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s.md", slug, id)
}

// NoteFromFile reads an exported markdown file back into a note. Files
// without a frontmatter header become plain notes titled after the file.
func NoteFromFile(path string) (*models.Note, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	fm, body, err := ParseFrontmatter(string(data))
	if err != nil {
		return nil, nil, err
	}

	conv := markdown.NewConverter()
	content, err := conv.FromMarkdown(strings.TrimSpace(body))
	if err != nil {
		return nil, nil, fmt.Errorf("parse note body: %w", err)
	}

	note := &models.Note{Content: content}
	var tags []string
	if fm != nil {
		note.ID = fm.ID
		note.Title = fm.Title
		note.Archived = fm.Archived
		tags = fm.Tags
		if t, err := ParseTime(fm.Created); err == nil {
			note.CreatedAt = t
		}
		if t, err := ParseTime(fm.Updated); err == nil {
			note.UpdatedAt = t
		}
	}
	if note.Title == "" {
		base := filepath.Base(path)
		note.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return note, tags, nil
}

// ParseTime reads a frontmatter timestamp.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	return time.Parse(TimeLayout, s)
}

func noteDocument(note *models.Note, folder string, tagNames map[string]string) string {
	names := make([]string, 0, len(note.Tags))
	for _, id := range note.Tags {
		if name, ok := tagNames[id]; ok {
			names = append(names, name)
		}
	}

	fm := &Frontmatter{
		ID:       note.ID,
		Title:    note.Title,
		Folder:   folder,
		Tags:     names,
		Archived: note.Archived,
		Created:  FormatTime(note.CreatedAt),
		Updated:  FormatTime(note.UpdatedAt),
	}
	if note.Reminder != nil {
		fm.Reminder = FormatTime(note.Reminder.DateTime)
	}

	return BuildDocument(fm, markdown.ToMarkdown(note.Content))
}

// folderPath renders the on-disk directory for a folder, sanitizing each
// breadcrumb segment.
func folderPath(folders []*models.Folder, id string) string {
	trail := foldertree.Breadcrumb(folders, id)
	if trail == nil {
		return ""
	}
	parts := make([]string, 0, len(trail))
	for _, folder := range trail {
		part := sanitizeFilename(folder.Name)
		if part == "" {
			part = folder.ID
		}
		parts = append(parts, part)
	}
	return filepath.Join(parts...)
}

// folderLabel is the human readable folder path kept in frontmatter.
func folderLabel(snap *models.Snapshot, id string) string {
	trail := foldertree.Breadcrumb(snap.Folders, id)
	if trail == nil {
		return ""
	}
	parts := make([]string, 0, len(trail))
	for _, folder := range trail {
		parts = append(parts, folder.Name)
	}
	return strings.Join(parts, "/")
}

// sanitizeFilename removes characters that cannot appear in filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")

	invalidChars := []string{"/", "\\", ":", "*", "?", `"`, "<", ">", "|"}
	for _, char := range invalidChars {
		s = strings.ReplaceAll(s, char, "")
	}

	return strings.ToLower(strings.TrimSpace(s))
}
