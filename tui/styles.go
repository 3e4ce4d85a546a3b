// Package tui presents a deck in the terminal with Bubble Tea.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared with the web stylesheet.
const (
	ColorInk    = "#f5f0e6"
	ColorMuted  = "#a8a29e"
	ColorAccent = "#d97706"
	ColorPanel  = "#44403c"
)

// Styles contains all styles for the terminal presenter.
type Styles struct {
	DeckTitle lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Heading   lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Quote     lipgloss.Style
	Card      lipgloss.Style
	Bar       lipgloss.Style
	BarEmpty  lipgloss.Style
	Notice    lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		DeckTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorInk)),
		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)),
		Heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorInk)),
		Body: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInk)),
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted)),
		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)),
		Quote: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(ColorAccent)).
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(lipgloss.Color(ColorAccent)).
			PaddingLeft(1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorPanel)).
			Padding(0, 1),
		Bar: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccent)),
		BarEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPanel)),
		Notice: lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color(ColorMuted)),
	}
}
