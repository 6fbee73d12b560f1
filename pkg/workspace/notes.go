package workspace

import (
	"fmt"
	"strings"

	"github.com/chelle-c/second-brain/pkg/models"
)

// DefaultNoteTitle is given to notes created without one.
const DefaultNoteTitle = "Untitled"

// NotePatch carries the updatable note fields. Nil means unchanged.
type NotePatch struct {
	Title   *string
	Content *string
	Tags    *[]string
}

// AddNote creates a note in folderID, or in the inbox when folderID is
// empty. A blank title becomes DefaultNoteTitle.
func (s *Store) AddNote(title, content, folderID string, tags []string) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if folderID == "" {
		folderID = models.InboxFolderID
	}
	if findFolder(s.snap.Folders, folderID) == nil {
		return nil, notFound("folder", folderID)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultNoteTitle
	}

	now := s.now()
	note := &models.Note{
		ID:        s.newID(),
		Title:     title,
		Content:   content,
		FolderID:  folderID,
		Tags:      append([]string(nil), tags...),
		CreatedAt: now,
		UpdatedAt: now,
	}

	notes := make([]*models.Note, 0, len(s.snap.Notes)+1)
	notes = append(notes, s.snap.Notes...)
	notes = append(notes, note)

	s.apply(&models.Snapshot{Folders: s.snap.Folders, Notes: notes, Tags: s.snap.Tags}, false)
	s.log.WithField("note", note.ID).Debug("note added")
	return note, nil
}

// UpdateNote applies a patch to a note and bumps its updated time. The
// recordHistory flag separates discrete user edits from autosave writes:
// autosave passes false so undo operates on whole actions, not keystrokes.
func (s *Store) UpdateNote(id string, patch NotePatch, recordHistory bool) (*models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findNote(s.snap.Notes, id)
	if current == nil {
		return nil, notFound("note", id)
	}

	updated := current.Clone()
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, fmt.Errorf("update note title: %w", ErrInvalidName)
		}
		updated.Title = title
	}
	if patch.Content != nil {
		updated.Content = *patch.Content
	}
	if patch.Tags != nil {
		updated.Tags = append([]string(nil), (*patch.Tags)...)
	}
	updated.UpdatedAt = s.now()

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   replaceNote(s.snap.Notes, updated),
		Tags:    s.snap.Tags,
	}, !recordHistory)
	return updated, nil
}

// MoveNote files a note under a different folder.
func (s *Store) MoveNote(id, folderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findNote(s.snap.Notes, id)
	if current == nil {
		return notFound("note", id)
	}
	if findFolder(s.snap.Folders, folderID) == nil {
		return notFound("folder", folderID)
	}
	if current.FolderID == folderID {
		return nil
	}

	updated := current.Clone()
	updated.FolderID = folderID

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   replaceNote(s.snap.Notes, updated),
		Tags:    s.snap.Tags,
	}, false)
	s.log.WithFields(map[string]any{"note": id, "folder": folderID}).Debug("note moved")
	return nil
}

// ArchiveNote hides a note from active lists without deleting it.
func (s *Store) ArchiveNote(id string) error {
	return s.setNoteArchived(id, true)
}

// UnarchiveNote returns an archived note to the active lists.
func (s *Store) UnarchiveNote(id string) error {
	return s.setNoteArchived(id, false)
}

func (s *Store) setNoteArchived(id string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findNote(s.snap.Notes, id)
	if current == nil {
		return notFound("note", id)
	}
	if current.Archived == archived {
		return nil
	}

	updated := current.Clone()
	updated.Archived = archived
	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   replaceNote(s.snap.Notes, updated),
		Tags:    s.snap.Tags,
	}, false)
	return nil
}

// DeleteNote removes a note permanently. Undo can still bring it back
// while the deletion remains in history.
func (s *Store) DeleteNote(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if findNote(s.snap.Notes, id) == nil {
		return notFound("note", id)
	}

	notes := make([]*models.Note, 0, len(s.snap.Notes)-1)
	for _, n := range s.snap.Notes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}

	s.apply(&models.Snapshot{Folders: s.snap.Folders, Notes: notes, Tags: s.snap.Tags}, false)
	s.log.WithField("note", id).Debug("note deleted")
	return nil
}

// RestoreNote inserts an externally held note, typically from a backup.
// An already present id is rejected so importers can implement skip
// semantics; a missing folder reference lands the note in the inbox. A
// note without an id gets a fresh one.
func (s *Store) RestoreNote(note *models.Note) error {
	if note == nil {
		return fmt.Errorf("restore note: %w", ErrNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	restored := note.Clone()
	if restored.ID == "" {
		restored.ID = s.newID()
	}
	if findNote(s.snap.Notes, restored.ID) != nil {
		return fmt.Errorf("restore note %s: %w", restored.ID, ErrExists)
	}
	if findFolder(s.snap.Folders, restored.FolderID) == nil {
		restored.FolderID = models.InboxFolderID
	}

	notes := make([]*models.Note, 0, len(s.snap.Notes)+1)
	notes = append(notes, s.snap.Notes...)
	notes = append(notes, restored)

	s.apply(&models.Snapshot{Folders: s.snap.Folders, Notes: notes, Tags: s.snap.Tags}, false)
	return nil
}

// TagNote attaches a tag to a note. Tagging twice is a no-op.
func (s *Store) TagNote(noteID, tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findNote(s.snap.Notes, noteID)
	if current == nil {
		return notFound("note", noteID)
	}
	if findTag(s.snap.Tags, tagID) == nil {
		return notFound("tag", tagID)
	}
	if current.HasTag(tagID) {
		return nil
	}

	updated := current.Clone()
	updated.Tags = append(updated.Tags, tagID)

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   replaceNote(s.snap.Notes, updated),
		Tags:    s.snap.Tags,
	}, false)
	return nil
}

// UntagNote detaches a tag from a note. Detaching an absent tag is a
// no-op.
func (s *Store) UntagNote(noteID, tagID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findNote(s.snap.Notes, noteID)
	if current == nil {
		return notFound("note", noteID)
	}
	if !current.HasTag(tagID) {
		return nil
	}

	updated := current.Clone()
	tags := make([]string, 0, len(updated.Tags)-1)
	for _, t := range updated.Tags {
		if t != tagID {
			tags = append(tags, t)
		}
	}
	updated.Tags = tags

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   replaceNote(s.snap.Notes, updated),
		Tags:    s.snap.Tags,
	}, false)
	return nil
}

// SetReminder attaches or replaces a note's reminder.
func (s *Store) SetReminder(noteID string, reminder models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findNote(s.snap.Notes, noteID)
	if current == nil {
		return notFound("note", noteID)
	}

	updated := current.Clone()
	updated.Reminder = reminder.Clone()

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   replaceNote(s.snap.Notes, updated),
		Tags:    s.snap.Tags,
	}, false)
	return nil
}

// ClearReminder removes a note's reminder. Clearing an absent reminder is
// a no-op.
func (s *Store) ClearReminder(noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findNote(s.snap.Notes, noteID)
	if current == nil {
		return notFound("note", noteID)
	}
	if current.Reminder == nil {
		return nil
	}

	updated := current.Clone()
	updated.Reminder = nil

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   replaceNote(s.snap.Notes, updated),
		Tags:    s.snap.Tags,
	}, false)
	return nil
}
