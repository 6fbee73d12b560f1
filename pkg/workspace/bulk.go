package workspace

import "github.com/chelle-c/second-brain/pkg/models"

// The Set operations replace a whole collection at once. They exist for
// the backup importer's replace mode and always re-normalize afterwards:
// the inbox is re-added if the incoming set lost it, and notes pointing at
// folders that no longer exist fall back to the inbox. Each call is one
// history entry, so a whole import undoes in one step per collection.

// SetFolders replaces the folder collection.
func (s *Store) SetFolders(folders []*models.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ensureInbox(&models.Snapshot{
		Folders: cloneFolders(folders),
		Notes:   s.snap.Notes,
		Tags:    s.snap.Tags,
	}, s.now())
	s.apply(next, false)
	s.log.WithField("count", len(next.Folders)).Debug("folders replaced")
}

// SetNotes replaces the note collection.
func (s *Store) SetNotes(notes []*models.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := ensureInbox(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   cloneNotes(notes),
		Tags:    s.snap.Tags,
	}, s.now())
	s.apply(next, false)
	s.log.WithField("count", len(next.Notes)).Debug("notes replaced")
}

// SetTags replaces the tag collection.
func (s *Store) SetTags(tags []*models.Tag) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   s.snap.Notes,
		Tags:    cloneTags(tags),
	}, false)
	s.log.WithField("count", len(tags)).Debug("tags replaced")
}

func cloneFolders(folders []*models.Folder) []*models.Folder {
	out := make([]*models.Folder, len(folders))
	for i, f := range folders {
		out[i] = f.Clone()
	}
	return out
}

func cloneNotes(notes []*models.Note) []*models.Note {
	out := make([]*models.Note, len(notes))
	for i, n := range notes {
		out[i] = n.Clone()
	}
	return out
}

func cloneTags(tags []*models.Tag) []*models.Tag {
	out := make([]*models.Tag, len(tags))
	for i, t := range tags {
		out[i] = t.Clone()
	}
	return out
}
