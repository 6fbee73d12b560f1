package models

import (
	"strings"
	"time"
)

// InboxFolderID is the id of the protected root folder. The inbox always
// exists, has no parent, accepts no child folders, and cannot be renamed,
// archived or deleted. Notes orphaned by a folder deletion are reassigned
// to it.
const InboxFolderID = "inbox"

// Folder represents a node in the workspace folder hierarchy.
// A ParentID of "" means the folder sits at the root level.
type Folder struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	ParentID  string    `json:"parent_id,omitempty" yaml:"parent_id,omitempty"`
	Icon      string    `json:"icon,omitempty" yaml:"icon,omitempty"`
	Archived  bool      `json:"archived,omitempty" yaml:"archived,omitempty"`
	Order     int       `json:"order" yaml:"order"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// IsInbox reports whether this folder is the protected inbox.
func (f *Folder) IsInbox() bool {
	return f.ID == InboxFolderID
}

// IsRoot reports whether the folder has no parent.
func (f *Folder) IsRoot() bool {
	return f.ParentID == ""
}

// Clone returns an independent copy of the folder.
func (f *Folder) Clone() *Folder {
	c := *f
	return &c
}

// NewInbox returns a fresh inbox folder. Callers use this when opening a
// workspace that does not contain one yet.
func NewInbox(now time.Time) *Folder {
	return &Folder{
		ID:        InboxFolderID,
		Name:      "Inbox",
		Icon:      "inbox",
		CreatedAt: now,
	}
}

// ValidFolderName reports whether a proposed folder name is acceptable
// after trimming surrounding whitespace.
func ValidFolderName(name string) bool {
	return strings.TrimSpace(name) != ""
}
