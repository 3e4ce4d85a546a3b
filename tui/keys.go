package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/eringen/deckengine/present"
)

// KeyMap binds terminal keys to presentation events.
type KeyMap struct {
	Next       key.Binding
	Previous   key.Binding
	First      key.Binding
	Last       key.Binding
	Export     key.Binding
	ExitExport key.Binding
	Print      key.Binding
	Quit       key.Binding
}

var _ help.KeyMap = KeyMap{}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l", " ", "pgdown"),
			key.WithHelp("→/space", "next"),
		),
		Previous: key.NewBinding(
			key.WithKeys("left", "h", "pgup"),
			key.WithHelp("←", "previous"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home", "first"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end", "last"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export view"),
		),
		ExitExport: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Print: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "print"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Previous, k.Export, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Previous, k.First, k.Last},
		{k.Export, k.ExitExport, k.Print, k.Quit},
	}
}

// EventFor resolves a key press to the event it emits.
func (k KeyMap) EventFor(msg tea.KeyMsg) (present.Event, bool) {
	switch {
	case key.Matches(msg, k.Next):
		return present.Next, true
	case key.Matches(msg, k.Previous):
		return present.Previous, true
	case key.Matches(msg, k.First):
		return present.First, true
	case key.Matches(msg, k.Last):
		return present.Last, true
	case key.Matches(msg, k.Export):
		return present.ToggleExport, true
	case key.Matches(msg, k.ExitExport):
		return present.ExitExport, true
	case key.Matches(msg, k.Print):
		return present.Print, true
	}
	return 0, false
}
