package workspace

import (
	"errors"
	"testing"
	"time"

	"github.com/chelle-c/second-brain/pkg/models"
)

func TestAddNoteDefaults(t *testing.T) {
	s := newTestStore(nil)

	note, err := s.AddNote("  ", "", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if note.Title != DefaultNoteTitle {
		t.Errorf("blank title should default, got %q", note.Title)
	}
	if note.FolderID != models.InboxFolderID {
		t.Errorf("empty folder should default to inbox, got %q", note.FolderID)
	}

	if _, err := s.AddNote("x", "", "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing folder: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateNote(t *testing.T) {
	s := newTestStore(nil)
	note, _ := s.AddNote("Draft", "old", "", nil)

	title := "Final"
	content := "new"
	updated, err := s.UpdateNote(note.ID, NotePatch{Title: &title, Content: &content}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != "Final" || updated.Content != "new" {
		t.Errorf("patch not applied: %+v", updated)
	}

	// The snapshot held before the update still shows the old values.
	if note.Title != "Draft" || note.Content != "old" {
		t.Error("update mutated a previously returned note")
	}

	blank := " "
	if _, err := s.UpdateNote(note.ID, NotePatch{Title: &blank}, true); !errors.Is(err, ErrInvalidName) {
		t.Errorf("blank title: expected ErrInvalidName, got %v", err)
	}
	if _, err := s.UpdateNote("missing", NotePatch{Title: &title}, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing note: expected ErrNotFound, got %v", err)
	}
}

func TestMoveNote(t *testing.T) {
	s := newTestStore(nil)
	work, _ := s.AddFolder("Work", "", "")
	note, _ := s.AddNote("n", "", "", nil)

	if err := s.MoveNote(note.ID, work.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot().NoteByID(note.ID).FolderID; got != work.ID {
		t.Errorf("expected note in %s, got %s", work.ID, got)
	}

	if err := s.MoveNote(note.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing target: expected ErrNotFound, got %v", err)
	}
	if err := s.MoveNote("missing", work.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing note: expected ErrNotFound, got %v", err)
	}

	// Moving to the current folder records nothing.
	before := s.Snapshot()
	if err := s.MoveNote(note.ID, work.ID); err != nil {
		t.Fatalf("same-folder move should be a no-op, got %v", err)
	}
	if s.Snapshot() != before {
		t.Error("no-op move must not swap the snapshot")
	}
}

func TestDeleteAndRestoreNote(t *testing.T) {
	s := newTestStore(nil)
	work, _ := s.AddFolder("Work", "", "")
	note, _ := s.AddNote("keep me", "body", work.ID, nil)

	if err := s.DeleteNote(note.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Snapshot().NoteByID(note.ID) != nil {
		t.Fatal("note should be gone")
	}
	if err := s.DeleteNote(note.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: expected ErrNotFound, got %v", err)
	}

	if err := s.RestoreNote(note); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	restored := s.Snapshot().NoteByID(note.ID)
	if restored == nil || restored.Title != "keep me" {
		t.Fatalf("restore lost the note: %+v", restored)
	}

	if err := s.RestoreNote(note); !errors.Is(err, ErrExists) {
		t.Errorf("restoring a present id: expected ErrExists, got %v", err)
	}
}

func TestRestoreNoteWithDanglingFolder(t *testing.T) {
	s := newTestStore(nil)

	err := s.RestoreNote(&models.Note{ID: "n9", Title: "stray", FolderID: "long-gone"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Snapshot().NoteByID("n9").FolderID; got != models.InboxFolderID {
		t.Errorf("dangling folder should fall back to inbox, got %s", got)
	}
}

func TestTagNoteLifecycle(t *testing.T) {
	s := newTestStore(nil)
	note, _ := s.AddNote("n", "", "", nil)
	tag, _ := s.AddTag("urgent", "", "#f00")

	if err := s.TagNote(note.ID, tag.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Snapshot().NoteByID(note.ID).HasTag(tag.ID) {
		t.Fatal("tag should be attached")
	}

	// Tagging twice stays a single reference.
	if err := s.TagNote(note.ID, tag.ID); err != nil {
		t.Fatalf("repeat tag should be a no-op, got %v", err)
	}
	if got := len(s.Snapshot().NoteByID(note.ID).Tags); got != 1 {
		t.Errorf("expected 1 tag reference, got %d", got)
	}

	if err := s.TagNote(note.ID, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing tag: expected ErrNotFound, got %v", err)
	}

	if err := s.UntagNote(note.ID, tag.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Snapshot().NoteByID(note.ID).HasTag(tag.ID) {
		t.Error("tag should be detached")
	}
}

func TestDeleteTagStripsReferences(t *testing.T) {
	s := newTestStore(nil)
	n1, _ := s.AddNote("a", "", "", nil)
	n2, _ := s.AddNote("b", "", "", nil)
	tag, _ := s.AddTag("shared", "", "")
	keep, _ := s.AddTag("keep", "", "")
	s.TagNote(n1.ID, tag.ID)
	s.TagNote(n1.ID, keep.ID)
	s.TagNote(n2.ID, tag.ID)

	if err := s.DeleteTag(tag.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := s.Snapshot()
	if snap.TagByID(tag.ID) != nil {
		t.Error("tag should be gone")
	}
	if snap.NoteByID(n1.ID).HasTag(tag.ID) || snap.NoteByID(n2.ID).HasTag(tag.ID) {
		t.Error("deleted tag id should be stripped from notes")
	}
	if !snap.NoteByID(n1.ID).HasTag(keep.ID) {
		t.Error("other tag references must survive")
	}
	if snap.NoteByID(n2.ID) == nil {
		t.Error("notes must never be deleted with their tags")
	}
}

func TestReminderLifecycle(t *testing.T) {
	s := newTestStore(nil)
	note, _ := s.AddNote("call dentist", "", "", nil)

	when := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	reminder := models.Reminder{
		DateTime: when,
		Notifications: []models.ReminderNotification{
			{Unit: models.UnitMinutes, Value: 30},
		},
	}
	if err := s.SetReminder(note.ID, reminder); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := s.Snapshot().NoteByID(note.ID).Reminder
	if got == nil || !got.DateTime.Equal(when) {
		t.Fatalf("reminder not stored: %+v", got)
	}

	// The stored reminder is a copy, not the caller's value.
	reminder.Notifications[0].Value = 999
	if s.Snapshot().NoteByID(note.ID).Reminder.Notifications[0].Value != 30 {
		t.Error("stored reminder aliases the caller's slice")
	}

	if err := s.ClearReminder(note.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Snapshot().NoteByID(note.ID).Reminder != nil {
		t.Error("reminder should be cleared")
	}

	if err := s.SetReminder("missing", reminder); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing note: expected ErrNotFound, got %v", err)
	}
}

func TestSetCollectionsNormalize(t *testing.T) {
	s := newTestStore(nil)
	work, _ := s.AddFolder("Work", "", "")
	note, _ := s.AddNote("n", "", work.ID, nil)

	// Replace folders with a set that lost both work and the inbox.
	s.SetFolders([]*models.Folder{{ID: "new", Name: "New"}})

	snap := s.Snapshot()
	if snap.FolderByID(models.InboxFolderID) == nil {
		t.Fatal("inbox must be recreated on replace")
	}
	if got := snap.NoteByID(note.ID).FolderID; got != models.InboxFolderID {
		t.Errorf("note should fall back to inbox, got %s", got)
	}

	s.SetNotes([]*models.Note{{ID: "imported", Title: "i", FolderID: "nowhere"}})
	if got := s.Snapshot().NoteByID("imported").FolderID; got != models.InboxFolderID {
		t.Errorf("imported orphan should land in inbox, got %s", got)
	}

	s.SetTags([]*models.Tag{{ID: "t1", Name: "imported"}})
	if s.Snapshot().TagByID("t1") == nil {
		t.Error("tag replacement failed")
	}
}
