package models

import "time"

// NotificationUnit is the time unit for a reminder's advance notifications.
type NotificationUnit string

const (
	UnitMinutes NotificationUnit = "minutes"
	UnitHours   NotificationUnit = "hours"
	UnitDays    NotificationUnit = "days"
)

// ReminderNotification describes one advance notification for a reminder,
// e.g. {Unit: minutes, Value: 15} fires fifteen minutes before DateTime.
type ReminderNotification struct {
	Unit  NotificationUnit `json:"unit" yaml:"unit"`
	Value int              `json:"value" yaml:"value"`
}

// Reminder is owned exclusively by its note and has no independent
// lifecycle: deleting the note deletes the reminder.
type Reminder struct {
	DateTime      time.Time              `json:"date_time" yaml:"date_time"`
	Notifications []ReminderNotification `json:"notifications,omitempty" yaml:"notifications,omitempty"`
}

// Offset returns the moment a notification should fire for this reminder.
func (r *Reminder) Offset(n ReminderNotification) time.Time {
	var d time.Duration
	switch n.Unit {
	case UnitMinutes:
		d = time.Duration(n.Value) * time.Minute
	case UnitHours:
		d = time.Duration(n.Value) * time.Hour
	case UnitDays:
		d = time.Duration(n.Value) * 24 * time.Hour
	}
	return r.DateTime.Add(-d)
}

// Clone returns an independent copy of the reminder.
func (r *Reminder) Clone() *Reminder {
	if r == nil {
		return nil
	}
	c := *r
	c.Notifications = append([]ReminderNotification(nil), r.Notifications...)
	return &c
}

// Note represents a single note. Content holds the editor's block-document
// string; the engine stores and searches it but never interprets it
// semantically. FolderID always references an existing folder.
type Note struct {
	ID        string    `json:"id" yaml:"id"`
	Title     string    `json:"title" yaml:"title"`
	Content   string    `json:"content,omitempty" yaml:"-"`
	FolderID  string    `json:"folder_id" yaml:"folder_id"`
	Tags      []string  `json:"tags,omitempty" yaml:"tags,flow,omitempty"`
	Archived  bool      `json:"archived,omitempty" yaml:"archived,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
	Reminder  *Reminder `json:"reminder,omitempty" yaml:"reminder,omitempty"`
}

// HasTag reports whether the note references the given tag id.
func (n *Note) HasTag(tagID string) bool {
	for _, id := range n.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// Clone returns an independent deep copy of the note.
func (n *Note) Clone() *Note {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	c.Reminder = n.Reminder.Clone()
	return &c
}
