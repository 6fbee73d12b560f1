// Package theme holds the shared color palette and text styles for the
// terminal UIs.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the styles draw from.
type Palette struct {
	Orange             lipgloss.Color
	Green              lipgloss.Color
	Yellow             lipgloss.Color
	Red                lipgloss.Color
	Blue               lipgloss.Color
	Border             lipgloss.Color
	LightText          lipgloss.Color
	MutedText          lipgloss.Color
	SelectedBackground lipgloss.Color
}

// Theme bundles the palette with ready-to-use styles.
type Theme struct {
	Colors Palette

	Header    lipgloss.Style
	Info      lipgloss.Style
	Highlight lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
}

// DefaultColors is the stock palette.
var DefaultColors = Palette{
	Orange:             lipgloss.Color("214"),
	Green:              lipgloss.Color("78"),
	Yellow:             lipgloss.Color("220"),
	Red:                lipgloss.Color("196"),
	Blue:               lipgloss.Color("75"),
	Border:             lipgloss.Color("240"),
	LightText:          lipgloss.Color("255"),
	MutedText:          lipgloss.Color("243"),
	SelectedBackground: lipgloss.Color("236"),
}

// DefaultTheme is used by every TUI unless a caller builds its own.
var DefaultTheme = Theme{
	Colors:    DefaultColors,
	Header:    lipgloss.NewStyle().Bold(true).Foreground(DefaultColors.Orange),
	Info:      lipgloss.NewStyle().Foreground(DefaultColors.Blue),
	Highlight: lipgloss.NewStyle().Foreground(DefaultColors.Orange),
	Selected:  lipgloss.NewStyle().Foreground(DefaultColors.LightText).Background(DefaultColors.SelectedBackground),
	Muted:     lipgloss.NewStyle().Foreground(DefaultColors.MutedText),
	Error:     lipgloss.NewStyle().Foreground(DefaultColors.Red),
	Success:   lipgloss.NewStyle().Foreground(DefaultColors.Green),
}
