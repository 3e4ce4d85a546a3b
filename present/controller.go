// Package present implements the presentation controller: the single owner
// of the deck position and view mode, and the variant dispatch used by every
// renderer.
package present

import (
	"fmt"
	"sync"

	"github.com/eringen/deckengine/deck"
)

// Mode is the view mode of a presentation.
type Mode int

const (
	// Presenting shows one slide at a time with navigation enabled.
	Presenting Mode = iota
	// Exporting shows the whole deck in document order for printing.
	Exporting
)

func (m Mode) String() string {
	switch m {
	case Presenting:
		return "presenting"
	case Exporting:
		return "exporting"
	default:
		return "unknown"
	}
}

// MarshalText encodes the mode by name for JSON state snapshots.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name written by MarshalText.
func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "presenting":
		*m = Presenting
	case "exporting":
		*m = Exporting
	default:
		return fmt.Errorf("present: unknown mode %q", text)
	}
	return nil
}

// State is a snapshot of the controller.
type State struct {
	Position int  `json:"position"`
	Total    int  `json:"total"`
	Mode     Mode `json:"mode"`
	SlideID  int  `json:"slideId"`
	// Revision counts deck replacements so followers can tell a reload
	// apart from navigation.
	Revision int `json:"revision"`
}

// Current is the 1-based slide number shown in the progress indicator.
func (s State) Current() int { return s.Position + 1 }

// Percent is the progress bar fill, from (0, 100].
func (s State) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Position+1) / float64(s.Total) * 100
}

// AtStart reports whether retreating would be a no-op.
func (s State) AtStart() bool { return s.Position == 0 }

// AtEnd reports whether advancing would be a no-op.
func (s State) AtEnd() bool { return s.Position >= s.Total-1 }

// Controller owns the presentation state. All methods are safe for
// concurrent use; writes are serialized by one mutex.
type Controller struct {
	mu     sync.Mutex
	deck   *deck.Deck
	pos    int
	mode   Mode
	rev    int
	nextID int
	subs   map[int]chan State
}

// NewController starts at the first slide in Presenting mode.
func NewController(d *deck.Deck) *Controller {
	return &Controller{deck: d, subs: make(map[int]chan State)}
}

// Advance moves to the next slide, saturating at the last one.
func (c *Controller) Advance() State { return c.update(c.advance) }

// Retreat moves to the previous slide, saturating at the first one.
func (c *Controller) Retreat() State { return c.update(c.retreat) }

// Goto jumps to index i, clamped into the deck.
func (c *Controller) Goto(i int) State {
	return c.update(func() { c.pos = clamp(i, c.deck.Len()) })
}

// EnterExportMode switches to the full-deck view. Position is untouched.
func (c *Controller) EnterExportMode() State {
	return c.update(func() { c.mode = Exporting })
}

// ExitExportMode returns to single-slide presentation.
func (c *Controller) ExitExportMode() State {
	return c.update(func() { c.mode = Presenting })
}

// ToggleExportMode flips between the two modes.
func (c *Controller) ToggleExportMode() State { return c.update(c.toggle) }

func (c *Controller) advance() { c.pos = min(c.pos+1, c.deck.Len()-1) }

func (c *Controller) retreat() { c.pos = max(c.pos-1, 0) }

func (c *Controller) toggle() {
	if c.mode == Exporting {
		c.mode = Presenting
	} else {
		c.mode = Exporting
	}
}

// Replace swaps in a new deck, clamping the position to its bounds. Both
// snapshots in the returned transition are taken under one lock.
func (c *Controller) Replace(d *deck.Deck) Transition {
	from, to := c.apply(func() {
		c.deck = d
		c.rev++
		c.pos = clamp(c.pos, d.Len())
	})
	return Transition{Event: Reload, From: from, To: to}
}

// CurrentSlide returns the slide at the current position.
func (c *Controller) CurrentSlide() deck.Slide {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deck.At(c.pos)
}

// Deck returns the deck currently being presented.
func (c *Controller) Deck() *deck.Deck {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deck
}

// Snapshot returns the state together with the deck it refers to, taken
// under one lock so the position is always valid for that deck.
func (c *Controller) Snapshot() (State, *deck.Deck) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot(), c.deck
}

// State returns a snapshot of position and mode.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

// Subscribe returns a channel that receives the latest state after every
// change. Slow readers only ever see the most recent state; the writer never
// blocks. Call cancel to stop receiving and close the channel.
func (c *Controller) Subscribe() (<-chan State, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	ch := make(chan State, 1)
	c.subs[id] = ch
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Controller) update(fn func()) State {
	_, after := c.apply(fn)
	return after
}

// apply runs fn under the lock and notifies subscribers if the snapshot
// changed.
func (c *Controller) apply(fn func()) (before, after State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	before = c.snapshot()
	fn()
	after = c.snapshot()
	if after != before {
		c.publish(after)
	}
	return before, after
}

// publish must be called with c.mu held.
func (c *Controller) publish(s State) {
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

func (c *Controller) snapshot() State {
	return State{
		Position: c.pos,
		Total:    c.deck.Len(),
		Mode:     c.mode,
		SlideID:  c.deck.At(c.pos).ID,
		Revision: c.rev,
	}
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}
