// Package manager is a table TUI for maintaining the workspace tag set.
package manager

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/chelle-c/second-brain/internal/tui/theme"
	"github.com/chelle-c/second-brain/pkg/workspace"
)

type managerKeyMap struct{}

func (k managerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (k managerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{
			key.NewBinding(key.WithKeys(""), key.WithHelp("", "Navigation")),
			key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓, j/k", "Move cursor")),
			key.NewBinding(key.WithKeys("g"), key.WithHelp("g/G", "Top / bottom")),
			key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Toggle sort order")),
			key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Filter tags")),
		},
		{
			key.NewBinding(key.WithKeys(""), key.WithHelp("", "Actions")),
			key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Add tag")),
			key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter/r", "Rename tag")),
			key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "Delete tag")),
			key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "Undo")),
			key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
		},
	}
}

var managerKeys = managerKeyMap{}

// tagRow pairs a tag with the number of notes carrying it.
type tagRow struct {
	id    string
	name  string
	color string
	notes int
}

// Model represents the state of the tag manager TUI
type Model struct {
	table       table.Model
	store       *workspace.Store
	allRows     []tagRow // master unfiltered list
	rows        []tagRow // currently visible (potentially filtered) list
	quitting    bool
	confirming  bool // confirmation mode for deleting
	message     string
	width       int
	height      int
	sortByUsage bool // false = by name, true = most used first
	filtering   bool
	filterInput textinput.Model
	editing     bool // add or rename input active
	editID      string
	editInput   textinput.Model
	help        help.Model
}

// Styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.DefaultColors.LightText).
			Background(theme.DefaultColors.SelectedBackground)

	dimStyle = lipgloss.NewStyle().
			Foreground(theme.DefaultColors.MutedText)

	helpStyle = lipgloss.NewStyle().
			Foreground(theme.DefaultColors.MutedText)

	messageStyle = lipgloss.NewStyle().
			Foreground(theme.DefaultColors.Green)

	warningStyle = lipgloss.NewStyle().
			Foreground(theme.DefaultColors.Yellow)
)

// New creates a new Model instance
func New(store *workspace.Store) Model {
	columns := []table.Column{
		{Title: "TAG", Width: 30},
		{Title: "COLOR", Width: 10},
		{Title: "NOTES", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.DefaultColors.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(theme.DefaultColors.LightText).
		Background(theme.DefaultColors.SelectedBackground).
		Bold(false)
	t.SetStyles(s)

	fi := textinput.New()
	fi.Placeholder = "Filter tags..."
	fi.CharLimit = 60

	ei := textinput.New()
	ei.Placeholder = "name #hexcolor"
	ei.CharLimit = 80
	ei.Width = 40

	m := Model{
		table:       t,
		store:       store,
		filterInput: fi,
		editInput:   ei,
		help:        help.New(),
	}
	m.reload()
	return m
}

// reload rebuilds the row set from the store snapshot, preserving the
// active filter and sort order.
func (m *Model) reload() {
	snap := m.store.Snapshot()

	usage := make(map[string]int)
	for _, note := range snap.Notes {
		for _, tagID := range note.Tags {
			usage[tagID]++
		}
	}

	m.allRows = make([]tagRow, 0, len(snap.Tags))
	for _, tag := range snap.Tags {
		m.allRows = append(m.allRows, tagRow{
			id:    tag.ID,
			name:  tag.Name,
			color: tag.Color,
			notes: usage[tag.ID],
		})
	}

	m.applyFilter()
}

// applyFilter narrows the visible rows by the filter input and resorts.
func (m *Model) applyFilter() {
	filter := strings.ToLower(strings.TrimSpace(m.filterInput.Value()))
	if filter == "" {
		m.rows = append([]tagRow(nil), m.allRows...)
	} else {
		m.rows = m.rows[:0]
		for _, r := range m.allRows {
			if strings.Contains(strings.ToLower(r.name), filter) {
				m.rows = append(m.rows, r)
			}
		}
	}
	m.sortRows()
}

func (m *Model) sortRows() {
	sort.SliceStable(m.rows, func(i, j int) bool {
		if m.sortByUsage && m.rows[i].notes != m.rows[j].notes {
			return m.rows[i].notes > m.rows[j].notes
		}
		return strings.ToLower(m.rows[i].name) < strings.ToLower(m.rows[j].name)
	})
	m.updateTableRows()
	if m.table.Cursor() >= len(m.rows) && len(m.rows) > 0 {
		m.table.SetCursor(len(m.rows) - 1)
	}
}

// updateTableRows rebuilds the table rows based on current state
func (m *Model) updateTableRows() {
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		color := r.color
		if color == "" {
			color = "-"
		}
		rows[i] = table.Row{
			truncate(r.name, 30),
			color,
			fmt.Sprintf("%d", r.notes),
		}
	}
	m.table.SetRows(rows)
}

// truncate shortens a string to fit within a given width
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}

// currentRow returns the row under the cursor, or nil.
func (m *Model) currentRow() *tagRow {
	cursor := m.table.Cursor()
	if cursor < 0 || cursor >= len(m.rows) {
		return nil
	}
	return &m.rows[cursor]
}

// parseTagInput splits "name #color" input into its parts. The color is
// optional and must be the last token.
func parseTagInput(value string) (name, color string) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return "", ""
	}
	last := fields[len(fields)-1]
	if strings.HasPrefix(last, "#") && len(fields) > 1 {
		return strings.Join(fields[:len(fields)-1], " "), last
	}
	return strings.Join(fields, " "), ""
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(m.height - 8) // leave space for header and help
		return m, nil

	case tea.KeyMsg:
		if m.help.ShowAll {
			m.help.ShowAll = false // any key closes help
			return m, nil
		}

		if m.confirming {
			return m.handleConfirmation(msg)
		}

		if m.editing {
			return m.handleEditInput(msg)
		}

		if m.filtering {
			switch msg.String() {
			case "enter":
				m.filtering = false
				m.filterInput.Blur()
				return m, nil
			case "esc":
				m.filterInput.SetValue("")
				m.applyFilter()
				m.filtering = false
				m.filterInput.Blur()
				return m, nil
			default:
				var filterCmd tea.Cmd
				m.filterInput, filterCmd = m.filterInput.Update(msg)
				m.applyFilter()
				return m, filterCmd
			}
		}

		switch msg.String() {
		case "?":
			m.help.ShowAll = true
			return m, nil

		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "/":
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink

		case "a":
			m.editing = true
			m.editID = ""
			m.editInput.Placeholder = "name #hexcolor"
			m.editInput.SetValue("")
			m.editInput.Focus()
			return m, textinput.Blink

		case "enter", "r":
			if r := m.currentRow(); r != nil {
				m.editing = true
				m.editID = r.id
				value := r.name
				if r.color != "" {
					value += " " + r.color
				}
				m.editInput.SetValue(value)
				m.editInput.Focus()
			}
			return m, textinput.Blink

		case "d":
			if r := m.currentRow(); r != nil {
				m.confirming = true
				if r.notes > 0 {
					m.message = fmt.Sprintf("Delete tag %q? It is on %d notes. (y/n)", r.name, r.notes)
				} else {
					m.message = fmt.Sprintf("Delete tag %q? (y/n)", r.name)
				}
			}
			return m, nil

		case "u":
			if m.store.Undo() {
				m.message = "Undid last change"
				m.reload()
			} else {
				m.message = "Nothing to undo"
			}
			return m, nil

		case "s":
			m.sortByUsage = !m.sortByUsage
			m.sortRows()
			if m.sortByUsage {
				m.message = "Sorted by most used"
			} else {
				m.message = "Sorted by name"
			}
			return m, nil

		default:
			m.table, cmd = m.table.Update(msg)
		}

	default:
		m.table, cmd = m.table.Update(msg)
	}

	return m, cmd
}

// handleConfirmation handles key presses during confirmation mode
func (m Model) handleConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		if r := m.currentRow(); r != nil {
			if err := m.store.DeleteTag(r.id); err != nil {
				m.message = fmt.Sprintf("Error deleting tag: %v", err)
			} else {
				m.message = fmt.Sprintf("Deleted tag %q", r.name)
				m.reload()
			}
		}
		m.confirming = false

	case "n", "esc":
		m.confirming = false
		m.message = "Delete cancelled"
	}

	return m, nil
}

// handleEditInput handles the add and rename input line.
func (m Model) handleEditInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editing = false
		m.editInput.Blur()
		return m, nil

	case "enter":
		name, color := parseTagInput(m.editInput.Value())
		editID := m.editID
		m.editing = false
		m.editInput.Blur()

		if editID == "" {
			tag, err := m.store.AddTag(name, "", color)
			if err != nil {
				m.message = fmt.Sprintf("Error adding tag: %v", err)
				return m, nil
			}
			m.message = fmt.Sprintf("Added tag %q", tag.Name)
		} else {
			patch := workspace.TagPatch{Name: &name}
			if color != "" {
				patch.Color = &color
			}
			tag, err := m.store.UpdateTag(editID, patch)
			if err != nil {
				m.message = fmt.Sprintf("Error updating tag: %v", err)
				return m, nil
			}
			m.message = fmt.Sprintf("Updated tag %q", tag.Name)
		}
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.editInput, cmd = m.editInput.Update(msg)
	return m, cmd
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.help.ShowAll {
		return m.help.View(managerKeys)
	}

	var s strings.Builder

	sortIndicator := "name"
	if m.sortByUsage {
		sortIndicator = "usage"
	}
	header := headerStyle.Render(fmt.Sprintf("  Tag Manager - sorted by %s  ", sortIndicator))
	s.WriteString(header + "\n\n")

	if m.filtering {
		s.WriteString("Filter: " + m.filterInput.View() + "\n\n")
	} else if m.filterInput.Value() != "" {
		s.WriteString(dimStyle.Render(fmt.Sprintf("Filter: %s", m.filterInput.Value())) + "\n\n")
	}

	if m.editing {
		label := "New tag: "
		if m.editID != "" {
			label = "Rename: "
		}
		s.WriteString(label + m.editInput.View() + "\n\n")
	}

	if m.message != "" {
		if m.confirming {
			s.WriteString(warningStyle.Render(m.message) + "\n\n")
		} else {
			s.WriteString(messageStyle.Render(m.message) + "\n\n")
		}
	}

	s.WriteString(m.table.View() + "\n")

	status := fmt.Sprintf("%d tags", len(m.rows))
	if len(m.rows) != len(m.allRows) {
		status = fmt.Sprintf("%d of %d tags", len(m.rows), len(m.allRows))
	}
	s.WriteString(dimStyle.Render(status) + "\n\n")

	s.WriteString(helpStyle.Render(m.help.View(managerKeys)))

	return s.String()
}
