package present

import (
	"errors"
	"fmt"
	"strings"
)

// Event is a discrete user input.
type Event int

const (
	Next Event = iota + 1
	Previous
	First
	Last
	ToggleExport
	ExitExport
	// Print is delegated to the host (browser print dialog); the controller
	// only acknowledges it.
	Print
	// Reload is reported by Replace. It is not accepted as input.
	Reload
)

var eventNames = map[Event]string{
	Next:         "next",
	Previous:     "previous",
	First:        "first",
	Last:         "last",
	ToggleExport: "toggle-export",
	ExitExport:   "exit-export",
	Print:        "print",
	Reload:       "reload",
}

func (e Event) String() string {
	if n, ok := eventNames[e]; ok {
		return n
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ErrUnknownEvent is returned by ParseEvent for unrecognized names.
var ErrUnknownEvent = errors.New("present: unknown event")

// ParseEvent resolves an event by its name, e.g. "next" or "toggle-export".
func ParseEvent(name string) (Event, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for e, n := range eventNames {
		if n == name && e != Reload {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// EventForKey maps a key name to its event. Both DOM KeyboardEvent.key values
// ("ArrowRight", " ") and terminal key names ("right", "space") are accepted.
func EventForKey(key string) (Event, bool) {
	switch key {
	case "ArrowRight", "right", " ", "space", "Spacebar":
		return Next, true
	case "ArrowLeft", "left":
		return Previous, true
	case "Home", "home":
		return First, true
	case "End", "end":
		return Last, true
	}
	return 0, false
}

// Navigates reports whether e moves the position.
func (e Event) Navigates() bool {
	switch e {
	case Next, Previous, First, Last:
		return true
	}
	return false
}

// Transition records the snapshots on either side of one input event.
type Transition struct {
	Event Event
	From  State
	To    State
}

// Changed reports whether the event had any effect.
func (t Transition) Changed() bool { return t.From != t.To }

// Handle applies an input event. Navigation is suppressed while Exporting.
// The boolean reports whether the state changed.
func (c *Controller) Handle(e Event) (State, bool) {
	t := c.Apply(e)
	return t.To, t.Changed()
}

// Apply is Handle reporting both the state before and after the event.
func (c *Controller) Apply(e Event) Transition {
	from, to := c.apply(func() {
		if e.Navigates() && c.mode == Exporting {
			return
		}
		switch e {
		case Next:
			c.advance()
		case Previous:
			c.retreat()
		case First:
			c.pos = 0
		case Last:
			c.pos = c.deck.Len() - 1
		case ToggleExport:
			c.toggle()
		case ExitExport:
			c.mode = Presenting
		}
	})
	return Transition{Event: e, From: from, To: to}
}
