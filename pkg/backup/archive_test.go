package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chelle-c/second-brain/pkg/models"
)

func archiveSnapshot() *models.Snapshot {
	created := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	return &models.Snapshot{
		Folders: []*models.Folder{
			{ID: "inbox", Name: "Inbox", Icon: "inbox", CreatedAt: created},
			{ID: "work", Name: "Work", Order: 1, CreatedAt: created},
		},
		Notes: []*models.Note{
			{
				ID:        "n1",
				Title:     "Standup",
				Content:   "Talk about the roadmap.",
				FolderID:  "work",
				Tags:      []string{"t1"},
				CreatedAt: created,
				UpdatedAt: created,
				Reminder: &models.Reminder{
					DateTime: time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC),
					Notifications: []models.ReminderNotification{
						{Unit: models.UnitMinutes, Value: 15},
					},
				},
			},
		},
		Tags: []*models.Tag{{ID: "t1", Name: "meetings", Color: "#ff8800"}},
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	snap := archiveSnapshot()
	exported := Export(snap, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	data, err := exported.MarshalIndent()
	require.NoError(t, err)

	imported, err := ImportJSON(data)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, imported.Version)

	folders, notes, tags := imported.Collections()
	assert.Equal(t, snap.Folders, folders)
	assert.Equal(t, snap.Notes, notes)
	assert.Equal(t, snap.Tags, tags)
}

func TestArchiveValidateVersion(t *testing.T) {
	a := Export(archiveSnapshot(), time.Now())
	a.Version = FormatVersion + 1

	err := a.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported archive version")
}

func TestArchiveValidateRequiredFields(t *testing.T) {
	a := Export(archiveSnapshot(), time.Now())
	a.Folders[0].Name = ""
	assert.Error(t, a.Validate())

	a = Export(archiveSnapshot(), time.Now())
	a.Notes[0].Title = ""
	assert.Error(t, a.Validate())
}

func TestArchiveValidateNotificationUnit(t *testing.T) {
	a := Export(archiveSnapshot(), time.Now())
	a.Notes[0].Reminder.Notifications[0].Unit = "weeks"
	assert.Error(t, a.Validate())
}

func TestImportJSONMalformed(t *testing.T) {
	_, err := ImportJSON([]byte("{not json"))
	assert.Error(t, err)

	_, err = ImportJSON([]byte(`{"folders": [], "notes": [], "tags": []}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported archive version")
}
