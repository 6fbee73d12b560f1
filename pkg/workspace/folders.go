package workspace

import (
	"fmt"
	"strings"

	"github.com/chelle-c/second-brain/pkg/foldertree"
	"github.com/chelle-c/second-brain/pkg/models"
)

// FolderPatch carries the updatable folder fields. Nil means unchanged.
type FolderPatch struct {
	Name  *string
	Icon  *string
	Order *int
}

// AddFolder creates a folder under parentID, or at the root when parentID
// is empty. The name must be non-blank and unique among its siblings. The
// inbox accepts no children.
func (s *Store) AddFolder(name, parentID, icon string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("add folder: %w", ErrInvalidName)
	}
	if parentID != "" {
		if parentID == models.InboxFolderID {
			return nil, fmt.Errorf("add folder under inbox: %w", foldertree.ErrInvalidMove)
		}
		if findFolder(s.snap.Folders, parentID) == nil {
			return nil, notFound("folder", parentID)
		}
	}
	if duplicateSibling(s.snap.Folders, parentID, name, "") {
		return nil, fmt.Errorf("add folder %q: %w", name, ErrDuplicateName)
	}

	folder := &models.Folder{
		ID:        s.newID(),
		Name:      name,
		ParentID:  parentID,
		Icon:      icon,
		Order:     nextSiblingOrder(s.snap.Folders, parentID),
		CreatedAt: s.now(),
	}

	folders := make([]*models.Folder, 0, len(s.snap.Folders)+1)
	folders = append(folders, s.snap.Folders...)
	folders = append(folders, folder)

	s.apply(&models.Snapshot{Folders: folders, Notes: s.snap.Notes, Tags: s.snap.Tags}, false)
	s.log.WithField("folder", folder.ID).Debug("folder added")
	return folder, nil
}

// UpdateFolder applies a patch to a folder. Renaming the inbox is
// rejected; renames otherwise follow the same rules as creation.
func (s *Store) UpdateFolder(id string, patch FolderPatch) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findFolder(s.snap.Folders, id)
	if current == nil {
		return nil, notFound("folder", id)
	}

	updated := current.Clone()
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if current.IsInbox() {
			return nil, fmt.Errorf("rename inbox: %w", foldertree.ErrProtectedFolder)
		}
		if name == "" {
			return nil, fmt.Errorf("rename folder: %w", ErrInvalidName)
		}
		if duplicateSibling(s.snap.Folders, current.ParentID, name, id) {
			return nil, fmt.Errorf("rename folder to %q: %w", name, ErrDuplicateName)
		}
		updated.Name = name
	}
	if patch.Icon != nil {
		updated.Icon = *patch.Icon
	}
	if patch.Order != nil {
		updated.Order = *patch.Order
	}

	s.apply(&models.Snapshot{
		Folders: replaceFolder(s.snap.Folders, updated),
		Notes:   s.snap.Notes,
		Tags:    s.snap.Tags,
	}, false)
	return updated, nil
}

// CanMoveFolder reports whether MoveFolder would accept the pair. Drop
// zones consult this while a drag is still hovering.
func (s *Store) CanMoveFolder(sourceID, targetID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return foldertree.CanMoveFolder(s.snap.Folders, sourceID, targetID)
}

// MoveFolder reparents sourceID under targetID, or to the root when
// targetID is empty.
func (s *Store) MoveFolder(sourceID, targetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := foldertree.MoveFolder(s.snap.Folders, sourceID, targetID)
	if err != nil {
		return fmt.Errorf("move folder %s: %w", sourceID, err)
	}

	s.apply(&models.Snapshot{Folders: folders, Notes: s.snap.Notes, Tags: s.snap.Tags}, false)
	s.log.WithFields(map[string]any{"folder": sourceID, "target": targetID}).Debug("folder moved")
	return nil
}

// DeleteFolder removes a folder and its whole subtree, relocating every
// note from the removed folders into the inbox.
func (s *Store) DeleteFolder(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, notes, err := foldertree.DeleteFolder(s.snap.Folders, s.snap.Notes, id)
	if err != nil {
		return fmt.Errorf("delete folder %s: %w", id, err)
	}

	s.apply(&models.Snapshot{Folders: folders, Notes: notes, Tags: s.snap.Tags}, false)
	s.log.WithField("folder", id).Debug("folder deleted")
	return nil
}

// ArchiveFolder hides a folder from the active tree. The inbox cannot be
// archived.
func (s *Store) ArchiveFolder(id string) error {
	return s.setFolderArchived(id, true)
}

// UnarchiveFolder returns an archived folder to the active tree.
func (s *Store) UnarchiveFolder(id string) error {
	return s.setFolderArchived(id, false)
}

func (s *Store) setFolderArchived(id string, archived bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := findFolder(s.snap.Folders, id)
	if current == nil {
		return notFound("folder", id)
	}
	if current.IsInbox() {
		return fmt.Errorf("archive inbox: %w", foldertree.ErrProtectedFolder)
	}
	if current.Archived == archived {
		return nil
	}

	updated := current.Clone()
	updated.Archived = archived
	s.apply(&models.Snapshot{
		Folders: replaceFolder(s.snap.Folders, updated),
		Notes:   s.snap.Notes,
		Tags:    s.snap.Tags,
	}, false)
	return nil
}

func duplicateSibling(folders []*models.Folder, parentID, name, excludeID string) bool {
	for _, f := range folders {
		if f.ID == excludeID {
			continue
		}
		if f.ParentID == parentID && strings.EqualFold(f.Name, name) {
			return true
		}
	}
	return false
}

func nextSiblingOrder(folders []*models.Folder, parentID string) int {
	next := 0
	for _, f := range folders {
		if f.ParentID == parentID && f.Order >= next {
			next = f.Order + 1
		}
	}
	return next
}
