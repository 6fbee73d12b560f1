package models

import (
	"testing"
	"time"
)

func TestReminderOffset(t *testing.T) {
	at := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	r := &Reminder{DateTime: at}

	tests := []struct {
		name  string
		n     ReminderNotification
		want  time.Time
	}{
		{"minutes", ReminderNotification{Unit: UnitMinutes, Value: 15}, at.Add(-15 * time.Minute)},
		{"hours", ReminderNotification{Unit: UnitHours, Value: 2}, at.Add(-2 * time.Hour)},
		{"days", ReminderNotification{Unit: UnitDays, Value: 1}, at.Add(-24 * time.Hour)},
		{"unknown unit fires at the reminder time", ReminderNotification{Unit: "weeks", Value: 1}, at},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Offset(tt.n); !got.Equal(tt.want) {
				t.Errorf("Offset(%+v) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestNoteClone(t *testing.T) {
	orig := &Note{
		ID:       "n1",
		Title:    "Original",
		FolderID: InboxFolderID,
		Tags:     []string{"t1", "t2"},
		Reminder: &Reminder{
			DateTime:      time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			Notifications: []ReminderNotification{{Unit: UnitMinutes, Value: 30}},
		},
	}

	clone := orig.Clone()
	clone.Title = "Changed"
	clone.Tags[0] = "other"
	clone.Reminder.Notifications[0].Value = 99

	if orig.Title != "Original" {
		t.Errorf("clone mutation leaked into original title: %s", orig.Title)
	}
	if orig.Tags[0] != "t1" {
		t.Errorf("clone mutation leaked into original tags: %v", orig.Tags)
	}
	if orig.Reminder.Notifications[0].Value != 30 {
		t.Errorf("clone mutation leaked into original reminder: %+v", orig.Reminder)
	}
}

func TestSnapshotClone(t *testing.T) {
	snap := Snapshot{
		Folders: []*Folder{NewInbox(time.Now()), {ID: "f1", Name: "Work"}},
		Notes:   []*Note{{ID: "n1", Title: "A", FolderID: "f1"}},
		Tags:    []*Tag{{ID: "t1", Name: "urgent", Color: "#ff0000"}},
	}

	clone := snap.Clone()
	clone.Folders[1].Name = "Play"
	clone.Notes[0].Title = "B"
	clone.Tags[0].Name = "calm"

	if snap.Folders[1].Name != "Work" {
		t.Error("folder mutation leaked through snapshot clone")
	}
	if snap.Notes[0].Title != "A" {
		t.Error("note mutation leaked through snapshot clone")
	}
	if snap.Tags[0].Name != "urgent" {
		t.Error("tag mutation leaked through snapshot clone")
	}
}

func TestSnapshotLookups(t *testing.T) {
	snap := Snapshot{
		Folders: []*Folder{{ID: "f1", Name: "Work"}},
		Notes:   []*Note{{ID: "n1", FolderID: "f1"}},
		Tags:    []*Tag{{ID: "t1", Name: "urgent"}},
	}

	if snap.FolderByID("f1") == nil || snap.FolderByID("missing") != nil {
		t.Error("FolderByID lookup incorrect")
	}
	if snap.NoteByID("n1") == nil || snap.NoteByID("missing") != nil {
		t.Error("NoteByID lookup incorrect")
	}
	if snap.TagByID("t1") == nil || snap.TagByID("missing") != nil {
		t.Error("TagByID lookup incorrect")
	}
}

func TestHasTag(t *testing.T) {
	n := &Note{Tags: []string{"a", "b"}}
	if !n.HasTag("a") || n.HasTag("c") {
		t.Error("HasTag membership incorrect")
	}
}

func TestValidFolderName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"Work", true},
		{"  padded  ", true},
		{"", false},
		{"   ", false},
		{"\t\n", false},
	}

	for _, tt := range tests {
		if got := ValidFolderName(tt.name); got != tt.valid {
			t.Errorf("ValidFolderName(%q) = %v, want %v", tt.name, got, tt.valid)
		}
	}
}
