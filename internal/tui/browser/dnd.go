package browser

import (
	"github.com/chelle-c/second-brain/pkg/dragdrop"
	"github.com/chelle-c/second-brain/pkg/models"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

// dropTarget wraps the note and folder drop zones for the folder currently
// under the pointer. The drop callbacks run the store mutation and stash
// the outcome for the release handler to report.
type dropTarget struct {
	folderID string
	notes    *dragdrop.Zone[*models.Note]
	folders  *dragdrop.Zone[*models.Folder]
	dropped  bool
	err      error
}

func newDropTarget(store *workspace.Store, drag *dragdrop.Coordinator, folderID string) *dropTarget {
	t := &dropTarget{folderID: folderID}

	t.notes = dragdrop.NewZone(drag, dragdrop.ZoneConfig[*models.Note]{
		Accepts: []dragdrop.Kind{dragdrop.KindNote},
		CanDrop: func(item dragdrop.Item[*models.Note]) bool {
			return item.Data.FolderID != folderID
		},
		OnDrop: func(item dragdrop.Item[*models.Note]) {
			t.dropped = true
			t.err = store.MoveNote(item.ID, folderID)
		},
	})

	t.folders = dragdrop.NewZone(drag, dragdrop.ZoneConfig[*models.Folder]{
		Accepts: []dragdrop.Kind{dragdrop.KindFolder},
		CanDrop: func(item dragdrop.Item[*models.Folder]) bool {
			return store.CanMoveFolder(item.ID, folderID)
		},
		OnDrop: func(item dragdrop.Item[*models.Folder]) {
			t.dropped = true
			t.err = store.MoveFolder(item.ID, folderID)
		},
	})

	t.notes.SetOver(true)
	t.folders.SetOver(true)
	return t
}

func (t *dropTarget) leave() {
	t.notes.SetOver(false)
	t.folders.SetOver(false)
}

// canDrop reports whether the active drag may land here.
func (t *dropTarget) canDrop() bool {
	return t.notes.CanDrop() || t.folders.CanDrop()
}

// drop dispatches to whichever zone accepts the active drag kind.
func (t *dropTarget) drop() bool {
	if t.notes.Drop() {
		return true
	}
	return t.folders.Drop()
}

// beginDrag lifts the pressed row into an active drag.
func (m *Model) beginDrag(r *row) bool {
	if r == nil {
		return false
	}
	if r.isFolder() {
		if r.folder.IsInbox() {
			return false
		}
		src := dragdrop.NewSource(m.drag, dragdrop.Item[*models.Folder]{
			Kind: dragdrop.KindFolder,
			ID:   r.folder.ID,
			Data: r.folder,
		})
		if !src.Start() {
			return false
		}
		m.folderSrc = src
		return true
	}
	src := dragdrop.NewSource(m.drag, dragdrop.Item[*models.Note]{
		Kind: dragdrop.KindNote,
		ID:   r.note.ID,
		Data: r.note,
	})
	if !src.Start() {
		return false
	}
	m.noteSrc = src
	return true
}

// endDrag withdraws the active source and clears the hover target.
func (m *Model) endDrag() {
	if m.noteSrc != nil {
		m.noteSrc.End()
		m.noteSrc = nil
	}
	if m.folderSrc != nil {
		m.folderSrc.End()
		m.folderSrc = nil
	}
	if m.target != nil {
		m.target.leave()
		m.target = nil
	}
	m.hold.EndDrag()
	m.pressRow = -1
}

// hoverAt retargets the drop zones at the folder under the pointer.
func (m *Model) hoverAt(rowIdx int) {
	var folderID string
	if rowIdx >= 0 {
		folderID = m.rows[rowIdx].folderID()
	}

	if m.target != nil && m.target.folderID == folderID {
		return
	}
	if m.target != nil {
		m.target.leave()
		m.target = nil
	}
	if folderID != "" {
		m.target = newDropTarget(m.store, m.drag, folderID)
	}
}

// dragLabel names the item being dragged for the status line.
func (m *Model) dragLabel() string {
	if m.noteSrc != nil {
		return m.noteSrc.Item().Data.Title
	}
	if m.folderSrc != nil {
		return m.folderSrc.Item().Data.Name
	}
	return ""
}
