package browser

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chelle-c/second-brain/internal/tui/browser/components/confirm"
	"github.com/chelle-c/second-brain/pkg/dragdrop"
	"github.com/chelle-c/second-brain/pkg/foldertree"
	"github.com/chelle-c/second-brain/pkg/models"
	"github.com/chelle-c/second-brain/pkg/search"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.adjustScroll()
		return m, nil

	case holdTickMsg:
		return m.handleHoldTick(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case editorFinishedMsg:
		return m.handleEditorFinished(msg)

	case confirm.ConfirmedMsg:
		return m.handleDeleteConfirmed()

	case confirm.CancelledMsg:
		m.pendingDelete = nil
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active {
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeNewNote, modeNewFolder, modeRename:
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}

	return m, nil
}

func (m Model) handleHoldTick(msg holdTickMsg) (tea.Model, tea.Cmd) {
	if m.hold.Phase() != dragdrop.PhasePending {
		return m, nil
	}

	m.hold.Tick(msg.at)
	if !m.hold.Ready() {
		return m, holdTick()
	}

	if m.pressRow < 0 || m.pressRow >= len(m.rows) || !m.hold.StartDrag() {
		m.hold.Release()
		m.pressRow = -1
		return m, nil
	}
	if !m.beginDrag(m.rows[m.pressRow]) {
		m.hold.EndDrag()
		m.pressRow = -1
		return m, nil
	}

	m.hoverAt(m.pressRow)
	m.statusMessage = fmt.Sprintf("Dragging %q", m.dragLabel())
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if m.cursor > 0 {
				m.cursor--
				m.adjustScroll()
			}
			return m, nil
		case tea.MouseButtonWheelDown:
			if m.cursor < len(m.rows)-1 {
				m.cursor++
				m.adjustScroll()
			}
			return m, nil
		case tea.MouseButtonLeft:
			if m.mode != modeBrowse || m.confirm.Active {
				return m, nil
			}
			idx := m.rowAt(msg.Y)
			if idx < 0 {
				return m, nil
			}
			m.cursor = idx
			m.adjustScroll()
			m.pressRow = idx
			m.hold.Press(time.Now())
			return m, holdTick()
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.hold.Phase() == dragdrop.PhaseDragging {
			m.hoverAt(m.rowAt(msg.Y))
		}
		return m, nil

	case tea.MouseActionRelease:
		return m.handleMouseRelease()
	}

	return m, nil
}

func (m Model) handleMouseRelease() (tea.Model, tea.Cmd) {
	switch m.hold.Phase() {
	case dragdrop.PhaseDragging:
		label := m.dragLabel()
		if m.target != nil && m.target.drop() {
			if m.target.err != nil {
				m.statusMessage = friendlyError(m.target.err)
			} else {
				m.statusMessage = fmt.Sprintf("Moved %q", label)
			}
		} else {
			m.statusMessage = "Drop cancelled"
		}
		m.endDrag()
		m.rebuildRows()

	case dragdrop.PhasePending, dragdrop.PhaseReady:
		// Released before the hold armed: an ordinary click.
		m.hold.Release()
		m.pressRow = -1
		m.statusMessage = ""
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lastKey := m.lastKey
	m.lastKey = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		if m.hold.Phase() == dragdrop.PhaseDragging {
			m.endDrag()
			m.statusMessage = "Move cancelled"
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.GoToTop):
		if lastKey == "g" {
			m.cursor = 0
			m.adjustScroll()
		} else {
			m.lastKey = "g"
		}
		return m, nil

	case key.Matches(msg, m.keys.GoBottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
			m.adjustScroll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Collapse):
		if r := m.currentRow(); r != nil && r.isFolder() {
			m.collapsed[r.folder.ID] = true
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.Expand):
		if r := m.currentRow(); r != nil && r.isFolder() {
			delete(m.collapsed, r.folder.ID)
			m.rebuildRows()
		}
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.results = search.Results{}
		m.resultIndex = 0
		m.searchInput.Reset()
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NewNote):
		m.mode = modeNewNote
		m.inputFolderID = m.targetFolderID()
		m.titleInput.Placeholder = "Note title..."
		m.titleInput.Reset()
		m.titleInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.NewFolder):
		m.mode = modeNewFolder
		m.inputFolderID = m.newFolderParentID()
		m.titleInput.Placeholder = "Folder name..."
		m.titleInput.Reset()
		m.titleInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Rename):
		r := m.currentRow()
		if r == nil {
			return m, nil
		}
		if r.isFolder() && r.folder.IsInbox() {
			m.statusMessage = "The inbox cannot be renamed"
			return m, nil
		}
		m.mode = modeRename
		m.renameTarget = r
		m.titleInput.Placeholder = "New name..."
		if r.isFolder() {
			m.titleInput.SetValue(r.folder.Name)
		} else {
			m.titleInput.SetValue(r.note.Title)
		}
		m.titleInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Archive):
		m.toggleArchive()
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		r := m.currentRow()
		if r == nil {
			return m, nil
		}
		if r.isFolder() {
			if r.folder.IsInbox() {
				m.statusMessage = "The inbox cannot be deleted"
				return m, nil
			}
			m.confirm.Activate(fmt.Sprintf("Delete folder %q and its subfolders?\nIts notes move to the inbox.", r.folder.Name))
		} else {
			m.confirm.Activate(fmt.Sprintf("Delete note %q?", r.note.Title))
		}
		m.pendingDelete = r
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if r := m.currentRow(); r != nil && !r.isFolder() {
			return m, m.openInEditor(r.note)
		}
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		if m.store.Undo() {
			m.statusMessage = "Undid last change"
			m.rebuildRows()
		} else {
			m.statusMessage = "Nothing to undo"
		}
		return m, nil

	case key.Matches(msg, m.keys.Redo):
		if m.store.Redo() {
			m.statusMessage = "Redid last change"
			m.rebuildRows()
		} else {
			m.statusMessage = "Nothing to redo"
		}
		return m, nil

	case key.Matches(msg, m.keys.Archives):
		m.showArchived = !m.showArchived
		m.rebuildRows()
		if m.showArchived {
			m.statusMessage = "Showing archived items"
		} else {
			m.statusMessage = "Hiding archived items"
		}
		return m, nil
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.results = search.Results{}
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.jumpToResult()
		m.mode = modeBrowse
		m.searchInput.Blur()
		m.results = search.Results{}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.resultIndex > 0 {
			m.resultIndex--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.resultIndex < m.results.Total()-1 {
			m.resultIndex++
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.results = search.Search(m.store.Snapshot(), m.searchInput.Value())
	m.resultIndex = 0
	return m, cmd
}

// jumpToResult moves the cursor to the selected search hit, expanding
// whatever folders sit above it.
func (m *Model) jumpToResult() {
	idx := m.resultIndex
	if idx < len(m.results.Folders) {
		folder := m.results.Folders[idx]
		m.expandTo(folder.ID)
		m.rebuildRows()
		m.cursorTo(folder.ID)
		return
	}
	idx -= len(m.results.Folders)
	if idx < len(m.results.Notes) {
		note := m.results.Notes[idx].Note
		m.expandTo(note.FolderID)
		m.rebuildRows()
		m.cursorTo(note.ID)
	}
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.mode = modeBrowse
		m.renameTarget = nil
		m.titleInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		value := strings.TrimSpace(m.titleInput.Value())
		mode := m.mode
		target := m.renameTarget
		m.mode = modeBrowse
		m.renameTarget = nil
		m.titleInput.Blur()
		m.commitInput(mode, target, value)
		return m, nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return m, cmd
}

func (m *Model) commitInput(mode inputMode, target *row, value string) {
	switch mode {
	case modeNewNote:
		note, err := m.store.AddNote(value, "", m.inputFolderID, nil)
		if err != nil {
			m.statusMessage = friendlyError(err)
			return
		}
		m.expandTo(note.FolderID)
		m.rebuildRows()
		m.cursorTo(note.ID)
		m.statusMessage = fmt.Sprintf("Created note %q", note.Title)

	case modeNewFolder:
		folder, err := m.store.AddFolder(value, m.inputFolderID, "")
		if err != nil {
			m.statusMessage = friendlyError(err)
			return
		}
		if folder.ParentID != "" {
			m.expandTo(folder.ID)
		}
		m.rebuildRows()
		m.cursorTo(folder.ID)
		m.statusMessage = fmt.Sprintf("Created folder %q", folder.Name)

	case modeRename:
		if target == nil {
			return
		}
		var err error
		if target.isFolder() {
			_, err = m.store.UpdateFolder(target.folder.ID, workspace.FolderPatch{Name: &value})
		} else {
			_, err = m.store.UpdateNote(target.note.ID, workspace.NotePatch{Title: &value}, true)
		}
		if err != nil {
			m.statusMessage = friendlyError(err)
			return
		}
		m.rebuildRows()
		m.statusMessage = "Renamed"
	}
}

func (m *Model) toggleArchive() {
	r := m.currentRow()
	if r == nil {
		return
	}

	var err error
	var archivedNow bool
	if r.isFolder() {
		if r.folder.Archived {
			err = m.store.UnarchiveFolder(r.folder.ID)
		} else {
			err = m.store.ArchiveFolder(r.folder.ID)
			archivedNow = true
		}
	} else {
		if r.note.Archived {
			err = m.store.UnarchiveNote(r.note.ID)
		} else {
			err = m.store.ArchiveNote(r.note.ID)
			archivedNow = true
		}
	}
	if err != nil {
		m.statusMessage = friendlyError(err)
		return
	}

	m.rebuildRows()
	if archivedNow {
		m.statusMessage = "Archived"
	} else {
		m.statusMessage = "Unarchived"
	}
}

func (m Model) handleDeleteConfirmed() (tea.Model, tea.Cmd) {
	r := m.pendingDelete
	m.pendingDelete = nil
	if r == nil {
		return m, nil
	}

	var err error
	var what string
	if r.isFolder() {
		err = m.store.DeleteFolder(r.folder.ID)
		what = fmt.Sprintf("folder %q", r.folder.Name)
	} else {
		err = m.store.DeleteNote(r.note.ID)
		what = fmt.Sprintf("note %q", r.note.Title)
	}
	if err != nil {
		m.statusMessage = friendlyError(err)
		return m, nil
	}

	m.rebuildRows()
	m.statusMessage = fmt.Sprintf("Deleted %s", what)
	return m, nil
}

func (m Model) handleEditorFinished(msg editorFinishedMsg) (tea.Model, tea.Cmd) {
	defer func() {
		_ = os.Remove(msg.path)
	}()

	if msg.err != nil {
		m.statusMessage = fmt.Sprintf("Editor error: %v", msg.err)
		return m, nil
	}

	data, err := os.ReadFile(msg.path)
	if err != nil {
		m.statusMessage = fmt.Sprintf("Could not read edited note: %v", err)
		return m, nil
	}

	content, err := m.conv.FromMarkdown(strings.TrimSpace(string(data)))
	if err != nil {
		m.statusMessage = fmt.Sprintf("Could not parse edited note: %v", err)
		return m, nil
	}

	if _, err := m.store.UpdateNote(msg.noteID, workspace.NotePatch{Content: &content}, true); err != nil {
		m.statusMessage = friendlyError(err)
		return m, nil
	}

	m.rebuildRows()
	m.statusMessage = "Note saved"
	return m, nil
}

// targetFolderID is where a new note lands given the cursor position.
func (m *Model) targetFolderID() string {
	if r := m.currentRow(); r != nil {
		return r.folderID()
	}
	return models.InboxFolderID
}

// newFolderParentID is the parent for a new folder: the folder under the
// cursor, or the containing folder of the note under the cursor. The inbox
// accepts no children, so it maps to the root.
func (m *Model) newFolderParentID() string {
	r := m.currentRow()
	if r == nil {
		return ""
	}
	id := r.folderID()
	if id == models.InboxFolderID {
		return ""
	}
	return id
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, workspace.ErrDuplicateName):
		return "A sibling with that name already exists"
	case errors.Is(err, workspace.ErrInvalidName):
		return "Name cannot be empty"
	case errors.Is(err, foldertree.ErrProtectedFolder):
		return "The inbox cannot be changed"
	case errors.Is(err, foldertree.ErrInvalidMove):
		return "That move is not allowed"
	case errors.Is(err, workspace.ErrNotFound):
		return "Item no longer exists"
	}
	return err.Error()
}
