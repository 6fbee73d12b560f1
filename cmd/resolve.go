package cmd

import (
	"fmt"
	"strings"

	"github.com/chelle-c/second-brain/pkg/foldertree"
	"github.com/chelle-c/second-brain/pkg/models"
)

// resolveNote finds a note by full id, unique id prefix, or exact title
// match. Title matching is case-insensitive and must be unambiguous.
func resolveNote(snap *models.Snapshot, ref string) (*models.Note, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty note reference")
	}

	for _, note := range snap.Notes {
		if note.ID == ref {
			return note, nil
		}
	}

	var matches []*models.Note
	if len(ref) >= 4 {
		for _, note := range snap.Notes {
			if strings.HasPrefix(note.ID, ref) {
				matches = append(matches, note)
			}
		}
		if len(matches) == 1 {
			return matches[0], nil
		}
		if len(matches) > 1 {
			return nil, fmt.Errorf("note id prefix %q is ambiguous (%d matches)", ref, len(matches))
		}
	}

	lower := strings.ToLower(ref)
	for _, note := range snap.Notes {
		if strings.ToLower(note.Title) == lower {
			matches = append(matches, note)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no note matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		var ids []string
		for _, note := range matches {
			ids = append(ids, note.ID[:minInt(8, len(note.ID))])
		}
		return nil, fmt.Errorf("title %q is ambiguous, use an id: %s", ref, strings.Join(ids, ", "))
	}
}

// resolveFolder finds a folder by id, by slash-separated path from a root
// ("Work/Urgent"), or by unique name. Name matching is case-insensitive.
func resolveFolder(snap *models.Snapshot, ref string) (*models.Folder, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty folder reference")
	}

	for _, folder := range snap.Folders {
		if folder.ID == ref {
			return folder, nil
		}
	}

	if strings.Contains(ref, "/") {
		return resolveFolderPath(snap, ref)
	}

	lower := strings.ToLower(ref)
	var matches []*models.Folder
	for _, folder := range snap.Folders {
		if strings.ToLower(folder.Name) == lower {
			matches = append(matches, folder)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no folder matches %q", ref)
	case 1:
		return matches[0], nil
	default:
		var paths []string
		for _, folder := range matches {
			paths = append(paths, folderPathString(snap, folder.ID))
		}
		return nil, fmt.Errorf("folder name %q is ambiguous, use a path: %s", ref, strings.Join(paths, ", "))
	}
}

func resolveFolderPath(snap *models.Snapshot, ref string) (*models.Folder, error) {
	segments := strings.Split(strings.Trim(ref, "/"), "/")
	parentID := ""
	var current *models.Folder
	for _, segment := range segments {
		lower := strings.ToLower(strings.TrimSpace(segment))
		current = nil
		for _, folder := range snap.Folders {
			if folder.ParentID == parentID && strings.ToLower(folder.Name) == lower {
				current = folder
				break
			}
		}
		if current == nil {
			return nil, fmt.Errorf("no folder matches path %q", ref)
		}
		parentID = current.ID
	}
	return current, nil
}

// resolveTag finds a tag by id or case-insensitive name.
func resolveTag(snap *models.Snapshot, ref string) (*models.Tag, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("empty tag reference")
	}
	lower := strings.ToLower(ref)
	for _, tag := range snap.Tags {
		if tag.ID == ref || strings.ToLower(tag.Name) == lower {
			return tag, nil
		}
	}
	return nil, fmt.Errorf("no tag matches %q", ref)
}

// folderPathString renders a folder's position as "Work/Urgent".
func folderPathString(snap *models.Snapshot, folderID string) string {
	chain := foldertree.Breadcrumb(snap.Folders, folderID)
	if len(chain) == 0 {
		return folderID
	}
	names := make([]string, len(chain))
	for i, folder := range chain {
		names[i] = folder.Name
	}
	return strings.Join(names, "/")
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
