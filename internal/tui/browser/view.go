package browser

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chelle-c/second-brain/internal/tui/theme"
	"github.com/chelle-c/second-brain/pkg/dragdrop"
)

func (m Model) View() string {
	if m.help.ShowAll {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			"",
			m.help.View(m.keys),
		)
	}

	if m.confirm.Active {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			"",
			m.confirm.View(),
		)
	}

	if m.mode == modeSearch {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.renderHeader(),
			"",
			m.renderSearch(),
		)
	}

	// The header and the blank line after it must stay two lines tall;
	// mouse hit testing counts on rows starting right below them.
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		"",
		m.renderTree(),
		"",
		m.renderStatus(),
		m.help.View(m.keys),
	)
}

func (m Model) renderHeader() string {
	title := theme.DefaultTheme.Header.Render("Second Brain")

	if m.hold.Phase() == dragdrop.PhaseDragging {
		hint := theme.DefaultTheme.Info.Render(
			fmt.Sprintf("[Moving %q: release on a folder, esc cancels]", m.dragLabel()))
		return title + "  " + hint
	}
	if m.showArchived {
		return title + "  " + theme.DefaultTheme.Muted.Render("[archives]")
	}
	return title
}

func (m Model) renderTree() string {
	if len(m.rows) == 0 {
		return theme.DefaultTheme.Muted.Render("No folders yet. Press n to create a note, N for a folder.")
	}

	var b strings.Builder

	viewportHeight := m.viewportHeight()
	start := m.scrollOffset
	end := m.scrollOffset + viewportHeight
	if end > len(m.rows) {
		end = len(m.rows)
	}

	dragging := m.hold.Phase() == dragdrop.PhaseDragging

	for i := start; i < end; i++ {
		r := m.rows[i]
		cursor := "  "
		if i == m.cursor {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}

		indent := strings.Repeat("  ", r.depth)

		var line string
		if r.isFolder() {
			fold := "▼ "
			if m.collapsed[r.folder.ID] {
				fold = "▶ "
			}
			label := fmt.Sprintf("%s (%d)", r.folder.Name, r.noteCount)
			if r.folder.Archived {
				label = theme.DefaultTheme.Muted.Render(label + " (archived)")
			}
			line = fmt.Sprintf("%s%s%s%s", cursor, indent, fold, label)
			if dragging && m.dropHighlight(r.folder.ID) {
				line = theme.DefaultTheme.Selected.Render(line)
			} else if i == m.cursor {
				line = lipgloss.NewStyle().Bold(true).Render(line)
			}
		} else {
			label := r.note.Title
			if r.note.Reminder != nil {
				label += " ⏰"
			}
			if r.note.Archived {
				label = theme.DefaultTheme.Muted.Render(label + " (archived)")
			}
			line = fmt.Sprintf("%s%s▢ %s", cursor, indent, label)
			if dragging && m.dropHighlight(r.note.FolderID) {
				line = theme.DefaultTheme.Selected.Render(line)
			} else if i == m.cursor {
				line = theme.DefaultTheme.Selected.Render(line)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.rows) > viewportHeight {
		b.WriteString(lipgloss.NewStyle().Faint(true).Render(
			fmt.Sprintf(" (%d-%d of %d)", start+1, end, len(m.rows))))
	}

	return b.String()
}

// dropHighlight reports whether rows belonging to a folder should light up
// as the current drop target.
func (m Model) dropHighlight(folderID string) bool {
	return m.target != nil && m.target.folderID == folderID && m.target.canDrop()
}

func (m Model) renderStatus() string {
	switch m.mode {
	case modeNewNote, modeNewFolder, modeRename:
		return m.titleInput.View()
	}
	if m.statusMessage != "" {
		return theme.DefaultTheme.Info.Render(m.statusMessage)
	}
	return ""
}

func (m Model) renderSearch() string {
	var b strings.Builder
	b.WriteString(m.searchInput.View())
	b.WriteString("\n\n")

	if m.results.Empty() {
		if strings.TrimSpace(m.searchInput.Value()) == "" {
			b.WriteString(theme.DefaultTheme.Muted.Render("Type to search notes and folders."))
		} else {
			b.WriteString(theme.DefaultTheme.Muted.Render("No matches."))
		}
		return b.String()
	}

	idx := 0
	for _, folder := range m.results.Folders {
		cursor := "  "
		if idx == m.resultIndex {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		line := fmt.Sprintf("%s▼ %s", cursor, folder.Name)
		if idx == m.resultIndex {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		idx++
	}
	for _, match := range m.results.Notes {
		cursor := "  "
		if idx == m.resultIndex {
			cursor = theme.DefaultTheme.Highlight.Render("▶ ")
		}
		age := theme.DefaultTheme.Muted.Render(formatRelativeTime(match.Note.UpdatedAt))
		line := fmt.Sprintf("%s▢ %s  %s", cursor, match.Note.Title, age)
		if idx == m.resultIndex {
			line = theme.DefaultTheme.Selected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
		if match.Preview != "" {
			b.WriteString(theme.DefaultTheme.Muted.Render("      " + match.Preview))
			b.WriteString("\n")
		}
		idx++
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("enter jumps to the selection, esc closes"))
	return b.String()
}

func formatRelativeTime(t time.Time) string {
	diff := time.Since(t)
	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	}
	if diff < 24*time.Hour {
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	}
	if diff < 7*24*time.Hour {
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	}
	return t.Format("2006-01-02")
}
