// Package foldertree provides pure functions over a flat folder collection:
// building nested trees for rendering, computing descendant sets and
// breadcrumbs, validating moves, and cascading deletes. Nothing in this
// package mutates its inputs; every function returns fresh collections or
// an error, never a partially updated one.
package foldertree

import (
	"errors"
	"sort"
	"strings"

	"github.com/chelle-c/second-brain/pkg/models"
)

var (
	// ErrInvalidMove is returned when a reparenting would create a cycle,
	// target the folder itself, or point at a folder that cannot accept
	// children.
	ErrInvalidMove = errors.New("invalid folder move")

	// ErrProtectedFolder is returned for destructive operations on the inbox.
	ErrProtectedFolder = errors.New("folder is protected")

	// ErrFolderNotFound is returned when an id is absent from the collection.
	ErrFolderNotFound = errors.New("folder not found")
)

// Node is one element of a nested folder tree.
type Node struct {
	Folder   *models.Folder
	Children []*Node
}

// BuildTree groups folders under parentID recursively. Children are ordered
// by their Order field, then case-insensitively by name. Folders whose
// parent is missing from the collection are unreachable from any root and
// simply do not appear.
func BuildTree(folders []*models.Folder, parentID string) []*Node {
	byParent := make(map[string][]*models.Folder, len(folders))
	for _, f := range folders {
		byParent[f.ParentID] = append(byParent[f.ParentID], f)
	}
	return buildLevel(byParent, parentID)
}

func buildLevel(byParent map[string][]*models.Folder, parentID string) []*Node {
	children := byParent[parentID]
	sorted := make([]*models.Folder, len(children))
	copy(sorted, children)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return strings.ToLower(sorted[i].Name) < strings.ToLower(sorted[j].Name)
	})

	nodes := make([]*Node, 0, len(sorted))
	for _, f := range sorted {
		nodes = append(nodes, &Node{
			Folder:   f,
			Children: buildLevel(byParent, f.ID),
		})
	}
	return nodes
}

// DescendantIDs returns the ids of id's entire subtree, including id
// itself. An id absent from the collection yields a set containing only
// that id.
func DescendantIDs(folders []*models.Folder, id string) map[string]bool {
	byParent := make(map[string][]string, len(folders))
	for _, f := range folders {
		byParent[f.ParentID] = append(byParent[f.ParentID], f.ID)
	}

	set := map[string]bool{id: true}
	queue := []string{id}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, child := range byParent[current] {
			if !set[child] {
				set[child] = true
				queue = append(queue, child)
			}
		}
	}
	return set
}

// Breadcrumb returns the path from the root ancestor down to id. An
// unknown id yields nil. The walk is bounded by the collection size so a
// corrupted parent cycle cannot loop forever.
func Breadcrumb(folders []*models.Folder, id string) []*models.Folder {
	byID := make(map[string]*models.Folder, len(folders))
	for _, f := range folders {
		byID[f.ID] = f
	}

	var path []*models.Folder
	seen := make(map[string]bool)
	for current := byID[id]; current != nil && !seen[current.ID]; current = byID[current.ParentID] {
		seen[current.ID] = true
		path = append(path, current)
	}

	// Reverse into root-first order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CanMoveFolder reports whether reparenting sourceID under targetID keeps
// the collection valid. A targetID of "" means the root level, which is
// legal for any folder that is not already parentless. The inbox accepts
// no children, and a folder can never move onto itself or into its own
// subtree.
func CanMoveFolder(folders []*models.Folder, sourceID, targetID string) bool {
	var source *models.Folder
	for _, f := range folders {
		if f.ID == sourceID {
			source = f
			break
		}
	}
	if source == nil {
		return false
	}

	if targetID == "" {
		return source.ParentID != ""
	}
	if targetID == sourceID {
		return false
	}
	if targetID == models.InboxFolderID {
		return false
	}

	targetExists := false
	for _, f := range folders {
		if f.ID == targetID {
			targetExists = true
			break
		}
	}
	if !targetExists {
		return false
	}

	return !DescendantIDs(folders, sourceID)[targetID]
}

// MoveFolder reparents sourceID under targetID ("" for root) and returns
// the new collection. The move is re-validated; an invalid pair returns
// ErrInvalidMove and the input is left untouched.
func MoveFolder(folders []*models.Folder, sourceID, targetID string) ([]*models.Folder, error) {
	if !CanMoveFolder(folders, sourceID, targetID) {
		return nil, ErrInvalidMove
	}

	next := make([]*models.Folder, len(folders))
	for i, f := range folders {
		if f.ID == sourceID {
			moved := f.Clone()
			moved.ParentID = targetID
			next[i] = moved
		} else {
			next[i] = f
		}
	}
	return next, nil
}

// DeleteFolder removes id and its entire subtree. Every note living in any
// removed folder is reassigned to the inbox rather than discarded. Deleting
// the inbox returns ErrProtectedFolder; an unknown id returns
// ErrFolderNotFound.
func DeleteFolder(folders []*models.Folder, notes []*models.Note, id string) ([]*models.Folder, []*models.Note, error) {
	if id == models.InboxFolderID {
		return nil, nil, ErrProtectedFolder
	}

	found := false
	for _, f := range folders {
		if f.ID == id {
			found = true
			break
		}
	}
	if !found {
		return nil, nil, ErrFolderNotFound
	}

	removed := DescendantIDs(folders, id)

	nextFolders := make([]*models.Folder, 0, len(folders))
	for _, f := range folders {
		if !removed[f.ID] {
			nextFolders = append(nextFolders, f)
		}
	}

	nextNotes := make([]*models.Note, len(notes))
	for i, n := range notes {
		if removed[n.FolderID] {
			moved := n.Clone()
			moved.FolderID = models.InboxFolderID
			nextNotes[i] = moved
		} else {
			nextNotes[i] = n
		}
	}
	return nextFolders, nextNotes, nil
}

// SubtreeNoteCount counts the notes filed anywhere in id's subtree,
// excluding archived notes. Rendering uses this for the per-folder badge.
func SubtreeNoteCount(folders []*models.Folder, notes []*models.Note, id string) int {
	set := DescendantIDs(folders, id)
	count := 0
	for _, n := range notes {
		if !n.Archived && set[n.FolderID] {
			count++
		}
	}
	return count
}
