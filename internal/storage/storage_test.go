package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/chelle-c/second-brain/pkg/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "workspace.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func storedSnapshot() *models.Snapshot {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return &models.Snapshot{
		Folders: []*models.Folder{
			{ID: "inbox", Name: "Inbox", Icon: "inbox", CreatedAt: created},
			{ID: "work", Name: "Work", ParentID: "", Order: 1, CreatedAt: created},
		},
		Notes: []*models.Note{
			{
				ID:        "n1",
				Title:     "Standup",
				Content:   `{"b1":{"type":"Paragraph"}}`,
				FolderID:  "work",
				Tags:      []string{"t1", "t2"},
				CreatedAt: created,
				UpdatedAt: created.Add(time.Hour),
				Reminder: &models.Reminder{
					DateTime: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
					Notifications: []models.ReminderNotification{
						{Unit: models.UnitHours, Value: 1},
					},
				},
			},
			{ID: "n2", Title: "Archived idea", FolderID: "inbox", Archived: true,
				CreatedAt: created, UpdatedAt: created},
		},
		Tags: []*models.Tag{
			{ID: "t1", Name: "meetings", Color: "#ff8800"},
			{ID: "t2", Name: "planning"},
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	want := storedSnapshot()

	if err := s.Save(want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(got.Folders) != 2 || len(got.Notes) != 2 || len(got.Tags) != 2 {
		t.Fatalf("loaded %d folders, %d notes, %d tags", len(got.Folders), len(got.Notes), len(got.Tags))
	}
	for i, f := range want.Folders {
		if got.Folders[i].ID != f.ID || got.Folders[i].Name != f.Name || got.Folders[i].Order != f.Order {
			t.Errorf("folder %d = %+v, want %+v", i, got.Folders[i], f)
		}
		if !got.Folders[i].CreatedAt.Equal(f.CreatedAt) {
			t.Errorf("folder %d created_at = %v, want %v", i, got.Folders[i].CreatedAt, f.CreatedAt)
		}
	}

	n := got.Notes[0]
	if n.Title != "Standup" || n.FolderID != "work" || n.Content != want.Notes[0].Content {
		t.Errorf("note fields did not survive: %+v", n)
	}
	if len(n.Tags) != 2 || n.Tags[0] != "t1" || n.Tags[1] != "t2" {
		t.Errorf("note tags = %v", n.Tags)
	}
	if !n.UpdatedAt.Equal(want.Notes[0].UpdatedAt) {
		t.Errorf("updated_at = %v, want %v", n.UpdatedAt, want.Notes[0].UpdatedAt)
	}
	if n.Reminder == nil {
		t.Fatal("reminder lost")
	}
	if !n.Reminder.DateTime.Equal(want.Notes[0].Reminder.DateTime) {
		t.Errorf("reminder time = %v", n.Reminder.DateTime)
	}
	if len(n.Reminder.Notifications) != 1 || n.Reminder.Notifications[0].Unit != models.UnitHours {
		t.Errorf("reminder notifications = %+v", n.Reminder.Notifications)
	}

	if got.Notes[1].Reminder != nil {
		t.Error("note without reminder loaded one")
	}
	if !got.Notes[1].Archived {
		t.Error("archived flag lost")
	}
	if got.Notes[1].Tags != nil {
		t.Errorf("empty tags loaded as %v", got.Notes[1].Tags)
	}

	if got.Tags[0].Color != "#ff8800" {
		t.Errorf("tag color = %q", got.Tags[0].Color)
	}
}

func TestSaveReplacesPrevious(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(storedSnapshot()); err != nil {
		t.Fatalf("first save: %v", err)
	}

	smaller := &models.Snapshot{
		Folders: []*models.Folder{{ID: "inbox", Name: "Inbox"}},
		Notes:   []*models.Note{{ID: "n9", Title: "Only one", FolderID: "inbox"}},
	}
	if err := s.Save(smaller); err != nil {
		t.Fatalf("second save: %v", err)
	}

	folders, notes, tags, err := s.Counts()
	if err != nil {
		t.Fatalf("Counts failed: %v", err)
	}
	if folders != 1 || notes != 1 || tags != 0 {
		t.Errorf("counts = %d/%d/%d, want 1/1/0", folders, notes, tags)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got.Notes) != 1 || got.Notes[0].ID != "n9" {
		t.Errorf("old rows survived the rewrite: %+v", got.Notes)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(snap.Folders) != 0 || len(snap.Notes) != 0 || len(snap.Tags) != 0 {
		t.Errorf("expected empty snapshot, got %+v", snap)
	}
}

func TestLoadPreservesOrder(t *testing.T) {
	s := openTestStore(t)

	snap := &models.Snapshot{
		Folders: []*models.Folder{
			{ID: "c", Name: "Third", Order: 2},
			{ID: "a", Name: "First", Order: 0},
			{ID: "b", Name: "Second", Order: 1},
		},
	}
	if err := s.Save(snap); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	var ids []string
	for _, f := range got.Folders {
		ids = append(ids, f.ID)
	}
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Errorf("folder order = %v, want save order preserved", ids)
	}
}
