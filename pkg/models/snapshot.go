package models

// Snapshot is an immutable view of the three workspace collections.
// Consumers (search, rendering, persistence, backup) must treat every
// element as read-only; anything that needs to change goes back through
// the store's mutation API.
type Snapshot struct {
	Folders []*Folder `json:"folders"`
	Notes   []*Note   `json:"notes"`
	Tags    []*Tag    `json:"tags"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Clone returns a deep copy with no pointers shared with the receiver.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Folders: make([]*Folder, len(s.Folders)),
		Notes:   make([]*Note, len(s.Notes)),
		Tags:    make([]*Tag, len(s.Tags)),
	}
	for i, f := range s.Folders {
		c.Folders[i] = f.Clone()
	}
	for i, n := range s.Notes {
		c.Notes[i] = n.Clone()
	}
	for i, t := range s.Tags {
		c.Tags[i] = t.Clone()
	}
	return c
}

// FolderByID returns the folder with the given id, or nil.
func (s Snapshot) FolderByID(id string) *Folder {
	for _, f := range s.Folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// NoteByID returns the note with the given id, or nil.
func (s Snapshot) NoteByID(id string) *Note {
	for _, n := range s.Notes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

// TagByID returns the tag with the given id, or nil.
func (s Snapshot) TagByID(id string) *Tag {
	for _, t := range s.Tags {
		if t.ID == id {
			return t
		}
	}
	return nil
}
