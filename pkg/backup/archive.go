// Package backup serializes workspace snapshots for export and restores
// them on import. The JSON archive is the lossless format; the markdown
// tree export mirrors the folder hierarchy as directories of .md files for
// reading outside the app.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/chelle-c/second-brain/pkg/models"
)

// FormatVersion is the archive version this build reads and writes.
const FormatVersion = 1

var validate = validator.New()

// Archive is the JSON export envelope. It carries wire copies of the
// collections rather than the live models so the file format can stay
// stable if the in-memory shapes move.
type Archive struct {
	Version    int             `json:"version" validate:"required"`
	ExportedAt time.Time       `json:"exported_at"`
	Folders    []ArchiveFolder `json:"folders" validate:"dive"`
	Notes      []ArchiveNote   `json:"notes" validate:"dive"`
	Tags       []ArchiveTag    `json:"tags" validate:"dive"`
}

// ArchiveFolder mirrors models.Folder on the wire.
type ArchiveFolder struct {
	ID        string    `json:"id" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	ParentID  string    `json:"parent_id"`
	Icon      string    `json:"icon"`
	Archived  bool      `json:"archived"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
}

// ArchiveNote mirrors models.Note on the wire.
type ArchiveNote struct {
	ID        string           `json:"id" validate:"required"`
	Title     string           `json:"title" validate:"required"`
	Content   string           `json:"content"`
	FolderID  string           `json:"folder_id"`
	Tags      []string         `json:"tags"`
	Archived  bool             `json:"archived"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Reminder  *ArchiveReminder `json:"reminder,omitempty"`
}

// ArchiveReminder mirrors models.Reminder on the wire.
type ArchiveReminder struct {
	DateTime      time.Time             `json:"date_time" validate:"required"`
	Notifications []ArchiveNotification `json:"notifications" validate:"dive"`
}

// ArchiveNotification mirrors models.ReminderNotification on the wire.
type ArchiveNotification struct {
	Unit  string `json:"unit" validate:"required,oneof=minutes hours days"`
	Value int    `json:"value" validate:"min=0"`
}

// ArchiveTag mirrors models.Tag on the wire.
type ArchiveTag struct {
	ID    string `json:"id" validate:"required"`
	Name  string `json:"name" validate:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Export copies a snapshot into an archive stamped with the export time.
func Export(snap *models.Snapshot, now time.Time) *Archive {
	a := &Archive{
		Version:    FormatVersion,
		ExportedAt: now.UTC(),
		Folders:    make([]ArchiveFolder, 0, len(snap.Folders)),
		Notes:      make([]ArchiveNote, 0, len(snap.Notes)),
		Tags:       make([]ArchiveTag, 0, len(snap.Tags)),
	}
	for _, f := range snap.Folders {
		a.Folders = append(a.Folders, folderToWire(f))
	}
	for _, n := range snap.Notes {
		a.Notes = append(a.Notes, noteToWire(n))
	}
	for _, t := range snap.Tags {
		a.Tags = append(a.Tags, ArchiveTag{ID: t.ID, Name: t.Name, Icon: t.Icon, Color: t.Color})
	}
	return a
}

// MarshalIndent renders the archive as indented JSON for on-disk exports.
func (a *Archive) MarshalIndent() ([]byte, error) {
	data, err := json.MarshalIndent(a, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode archive: %w", err)
	}
	return data, nil
}

// ImportJSON parses and validates an archive file.
func ImportJSON(data []byte) (*Archive, error) {
	var a Archive
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parse archive: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks the archive's version and field constraints.
func (a *Archive) Validate() error {
	if a.Version != FormatVersion {
		return fmt.Errorf("unsupported archive version %d (want %d)", a.Version, FormatVersion)
	}
	if err := validate.Struct(a); err != nil {
		return fmt.Errorf("invalid archive: %w", err)
	}
	return nil
}

// Collections converts the archive's wire entries back into models.
func (a *Archive) Collections() ([]*models.Folder, []*models.Note, []*models.Tag) {
	folders := make([]*models.Folder, 0, len(a.Folders))
	for _, f := range a.Folders {
		folders = append(folders, folderFromWire(f))
	}
	notes := make([]*models.Note, 0, len(a.Notes))
	for _, n := range a.Notes {
		notes = append(notes, noteFromWire(n))
	}
	tags := make([]*models.Tag, 0, len(a.Tags))
	for _, t := range a.Tags {
		tags = append(tags, &models.Tag{ID: t.ID, Name: t.Name, Icon: t.Icon, Color: t.Color})
	}
	return folders, notes, tags
}

func folderToWire(f *models.Folder) ArchiveFolder {
	return ArchiveFolder{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		Icon:      f.Icon,
		Archived:  f.Archived,
		Order:     f.Order,
		CreatedAt: f.CreatedAt,
	}
}

func folderFromWire(f ArchiveFolder) *models.Folder {
	return &models.Folder{
		ID:        f.ID,
		Name:      f.Name,
		ParentID:  f.ParentID,
		Icon:      f.Icon,
		Archived:  f.Archived,
		Order:     f.Order,
		CreatedAt: f.CreatedAt,
	}
}

func noteToWire(n *models.Note) ArchiveNote {
	wire := ArchiveNote{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		FolderID:  n.FolderID,
		Tags:      append([]string(nil), n.Tags...),
		Archived:  n.Archived,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Reminder != nil {
		rem := &ArchiveReminder{DateTime: n.Reminder.DateTime}
		for _, notif := range n.Reminder.Notifications {
			rem.Notifications = append(rem.Notifications, ArchiveNotification{
				Unit:  string(notif.Unit),
				Value: notif.Value,
			})
		}
		wire.Reminder = rem
	}
	return wire
}

func noteFromWire(n ArchiveNote) *models.Note {
	note := &models.Note{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		FolderID:  n.FolderID,
		Tags:      append([]string(nil), n.Tags...),
		Archived:  n.Archived,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.Reminder != nil {
		rem := &models.Reminder{DateTime: n.Reminder.DateTime}
		for _, notif := range n.Reminder.Notifications {
			rem.Notifications = append(rem.Notifications, models.ReminderNotification{
				Unit:  models.NotificationUnit(notif.Unit),
				Value: notif.Value,
			})
		}
		note.Reminder = rem
	}
	return note
}
