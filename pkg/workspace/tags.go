package workspace

import (
	"fmt"
	"strings"

	"github.com/chelle-c/second-brain/pkg/models"
)

// TagPatch carries the updatable tag fields. Nil means unchanged.
type TagPatch struct {
	Name  *string
	Icon  *string
	Color *string
}

// AddTag creates a tag. Names only need to be non-blank; two tags may
// share a name, their ids keep them distinct.
func (s *Store) AddTag(name, icon, color string) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("add tag: %w", ErrInvalidName)
	}

	tag := &models.Tag{
		ID:    s.newID(),
		Name:  name,
		Icon:  icon,
		Color: color,
	}

	tags := make([]*models.Tag, 0, len(s.snap.Tags)+1)
	tags = append(tags, s.snap.Tags...)
	tags = append(tags, tag)

	s.apply(&models.Snapshot{Folders: s.snap.Folders, Notes: s.snap.Notes, Tags: tags}, false)
	s.log.WithField("tag", tag.ID).Debug("tag added")
	return tag, nil
}

// UpdateTag applies a patch to a tag.
func (s *Store) UpdateTag(id string, patch TagPatch) (*models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findTag(s.snap.Tags, id)
	if current == nil {
		return nil, notFound("tag", id)
	}

	updated := current.Clone()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("rename tag: %w", ErrInvalidName)
		}
		updated.Name = name
	}
	if patch.Icon != nil {
		updated.Icon = *patch.Icon
	}
	if patch.Color != nil {
		updated.Color = *patch.Color
	}

	s.apply(&models.Snapshot{
		Folders: s.snap.Folders,
		Notes:   s.snap.Notes,
		Tags:    replaceTag(s.snap.Tags, updated),
	}, false)
	return updated, nil
}

// DeleteTag removes a tag and strips its id from every note that carried
// it. The notes themselves survive.
func (s *Store) DeleteTag(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if findTag(s.snap.Tags, id) == nil {
		return notFound("tag", id)
	}

	tags := make([]*models.Tag, 0, len(s.snap.Tags)-1)
	for _, t := range s.snap.Tags {
		if t.ID != id {
			tags = append(tags, t)
		}
	}

	notes := s.snap.Notes
	touched := false
	for _, n := range s.snap.Notes {
		if n.HasTag(id) {
			touched = true
			break
		}
	}
	if touched {
		notes = make([]*models.Note, len(s.snap.Notes))
		for i, n := range s.snap.Notes {
			if !n.HasTag(id) {
				notes[i] = n
				continue
			}
			stripped := n.Clone()
			kept := make([]string, 0, len(stripped.Tags)-1)
			for _, t := range stripped.Tags {
				if t != id {
					kept = append(kept, t)
				}
			}
			stripped.Tags = kept
			notes[i] = stripped
		}
	}

	s.apply(&models.Snapshot{Folders: s.snap.Folders, Notes: notes, Tags: tags}, false)
	s.log.WithField("tag", id).Debug("tag deleted")
	return nil
}
