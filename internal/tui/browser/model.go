package browser

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/chelle-c/second-brain/internal/tui/browser/components/confirm"
	"github.com/chelle-c/second-brain/pkg/dragdrop"
	"github.com/chelle-c/second-brain/pkg/foldertree"
	"github.com/chelle-c/second-brain/pkg/markdown"
	"github.com/chelle-c/second-brain/pkg/models"
	"github.com/chelle-c/second-brain/pkg/search"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeNewNote
	modeNewFolder
	modeRename
)

// holdTickInterval is how often the press-and-hold timer is polled while a
// press is pending.
const holdTickInterval = 50 * time.Millisecond

// headerLines is the number of lines rendered above the first row; mouse
// hit testing subtracts it.
const headerLines = 2

// row is one rendered line: a folder at some depth, or a note under its
// folder.
type row struct {
	folder    *models.Folder
	note      *models.Note
	depth     int
	noteCount int
}

func (r *row) isFolder() bool { return r.folder != nil }

// folderID is the folder this row targets as a drop destination.
func (r *row) folderID() string {
	if r.folder != nil {
		return r.folder.ID
	}
	return r.note.FolderID
}

// Options tune the browser. Zero values fall back to the package defaults.
type Options struct {
	HoldDelay time.Duration
	Editor    string
}

// Model is the workspace browser TUI.
type Model struct {
	store  *workspace.Store
	conv   *markdown.Converter
	editor string

	rows         []*row
	cursor       int
	scrollOffset int
	collapsed    map[string]bool
	showArchived bool
	lastKey      string

	keys    KeyMap
	help    help.Model
	confirm confirm.Model

	mode        inputMode
	searchInput textinput.Model
	titleInput  textinput.Model
	results     search.Results
	resultIndex int

	drag      *dragdrop.Coordinator
	hold      *dragdrop.HoldTracker
	noteSrc   *dragdrop.Source[*models.Note]
	folderSrc *dragdrop.Source[*models.Folder]
	target    *dropTarget
	pressRow  int

	pendingDelete *row
	renameTarget  *row
	inputFolderID string

	width         int
	height        int
	statusMessage string
}

// New creates the browser model around an open store.
func New(store *workspace.Store, opts Options) Model {
	holdDelay := opts.HoldDelay
	if holdDelay <= 0 {
		holdDelay = dragdrop.DefaultHoldDelay
	}

	searchInput := textinput.New()
	searchInput.Placeholder = "Search notes and folders..."
	searchInput.CharLimit = 100

	titleInput := textinput.New()
	titleInput.CharLimit = 200
	titleInput.Width = 60

	m := Model{
		store:       store,
		conv:        markdown.NewConverter(),
		editor:      opts.Editor,
		collapsed:   make(map[string]bool),
		keys:        keys,
		help:        help.New(),
		confirm:     confirm.New(),
		searchInput: searchInput,
		titleInput:  titleInput,
		drag:        dragdrop.NewCoordinator(),
		hold:        dragdrop.NewHoldTracker(holdDelay),
		pressRow:    -1,
	}
	m.rebuildRows()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// rebuildRows flattens the folder tree plus the notes of expanded folders
// into the visible row list.
func (m *Model) rebuildRows() {
	snap := m.store.Snapshot()

	notesByFolder := make(map[string][]*models.Note)
	for _, n := range snap.Notes {
		if n.Archived && !m.showArchived {
			continue
		}
		notesByFolder[n.FolderID] = append(notesByFolder[n.FolderID], n)
	}

	var rows []*row
	var walk func(nodes []*foldertree.Node, depth int)
	walk = func(nodes []*foldertree.Node, depth int) {
		for _, node := range nodes {
			if node.Folder.Archived && !m.showArchived {
				continue
			}
			count := foldertree.SubtreeNoteCount(snap.Folders, snap.Notes, node.Folder.ID)
			rows = append(rows, &row{folder: node.Folder, depth: depth, noteCount: count})
			if m.collapsed[node.Folder.ID] {
				continue
			}
			for _, n := range notesByFolder[node.Folder.ID] {
				rows = append(rows, &row{note: n, depth: depth + 1})
			}
			walk(node.Children, depth+1)
		}
	}
	walk(foldertree.BuildTree(snap.Folders, ""), 0)

	m.rows = rows
	if m.cursor >= len(rows) {
		m.cursor = len(rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.adjustScroll()
}

// currentRow returns the row under the cursor or nil.
func (m *Model) currentRow() *row {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.rows[m.cursor]
}

// cursorTo moves the cursor to the row for the given entity id.
func (m *Model) cursorTo(id string) {
	for i, r := range m.rows {
		if r.isFolder() && r.folder.ID == id {
			m.cursor = i
			m.adjustScroll()
			return
		}
		if r.note != nil && r.note.ID == id {
			m.cursor = i
			m.adjustScroll()
			return
		}
	}
}

// expandTo uncollapses every ancestor of the given folder.
func (m *Model) expandTo(folderID string) {
	snap := m.store.Snapshot()
	for _, f := range foldertree.Breadcrumb(snap.Folders, folderID) {
		delete(m.collapsed, f.ID)
	}
}

func (m *Model) adjustScroll() {
	h := m.viewportHeight()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+h {
		m.scrollOffset = m.cursor - h + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

func (m *Model) viewportHeight() int {
	h := m.height - headerLines - 3
	if h < 1 {
		return 10
	}
	return h
}

// rowAt maps a terminal y coordinate to a row index, or -1.
func (m *Model) rowAt(y int) int {
	idx := y - headerLines + m.scrollOffset
	if idx < m.scrollOffset || idx >= m.scrollOffset+m.viewportHeight() {
		return -1
	}
	if idx < 0 || idx >= len(m.rows) {
		return -1
	}
	return idx
}

// editorFinishedMsg is sent when the external editor closes.
type editorFinishedMsg struct {
	noteID string
	path   string
	err    error
}

// holdTickMsg polls the press-and-hold timer.
type holdTickMsg struct {
	at time.Time
}

func holdTick() tea.Cmd {
	return tea.Tick(holdTickInterval, func(t time.Time) tea.Msg {
		return holdTickMsg{at: t}
	})
}

// openInEditor exports the note to markdown, opens the editor on it, and
// reports back when the editor exits.
func (m Model) openInEditor(note *models.Note) tea.Cmd {
	editor := m.editor
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim"
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("sb-edit-%s.md", note.ID))
	if err := os.WriteFile(path, []byte(markdown.ToMarkdown(note.Content)), 0600); err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{noteID: note.ID, path: path, err: err}
		}
	}

	cmd := exec.Command(editor, path)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{noteID: note.ID, path: path, err: err}
	})
}
