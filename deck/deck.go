// Package deck holds the slide deck model: an ordered, immutable sequence of
// typed slides loaded from YAML and validated once at construction.
package deck

import (
	"errors"
	"fmt"
)

// Variant tags the shape of a slide's content and selects its renderer.
type Variant string

const (
	Title          Variant = "TITLE"
	SplitImageText Variant = "SPLIT_IMAGE_TEXT"
	Cards          Variant = "CARDS"
	ConceptBalance Variant = "CONCEPT_BALANCE"
	Diagram        Variant = "DIAGRAM"
	IconsGrid      Variant = "ICONS_GRID"
	ScriptTable    Variant = "SCRIPT_TABLE"
	Conclusion     Variant = "CONCLUSION"
)

// Variants lists the known tags in declaration order.
var Variants = []Variant{
	Title, SplitImageText, Cards, ConceptBalance,
	Diagram, IconsGrid, ScriptTable, Conclusion,
}

// Known reports whether v belongs to the closed set of renderable variants.
func (v Variant) Known() bool {
	for _, k := range Variants {
		if v == k {
			return true
		}
	}
	return false
}

// Slide is one unit of the deck.
type Slide struct {
	ID              int
	Variant         Variant
	Title           string
	Subtitle        string
	Content         Content
	BackgroundImage string
	Note            string
}

// ErrEmptyDeck is returned when a deck has no slides.
var ErrEmptyDeck = errors.New("deck: no slides")

// Deck is an ordered, read-only sequence of slides.
type Deck struct {
	title  string
	footer string
	slides []Slide
}

// New validates slides and returns a deck that owns a private copy of them.
func New(title, footer string, slides []Slide) (*Deck, error) {
	if err := Validate(slides); err != nil {
		return nil, err
	}
	cp := make([]Slide, len(slides))
	copy(cp, slides)
	return &Deck{title: title, footer: footer, slides: cp}, nil
}

// Title is the deck-level title used for page titles and previews.
func (d *Deck) Title() string { return d.title }

// Footer is the caption shown alongside the navigation bar.
func (d *Deck) Footer() string { return d.footer }

// Len returns the number of slides.
func (d *Deck) Len() int { return len(d.slides) }

// At returns the slide at index i. It panics if i is out of range, like a
// slice index; callers hold positions that are bounded by Len.
func (d *Deck) At(i int) Slide { return d.slides[i] }

// Slides returns a copy of the slides in deck order.
func (d *Deck) Slides() []Slide {
	cp := make([]Slide, len(d.slides))
	copy(cp, d.slides)
	return cp
}

// Index returns the position of the slide with the given id, or -1.
func (d *Deck) Index(id int) int {
	for i, s := range d.slides {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// ValidationError identifies the slide and field that broke the deck contract.
type ValidationError struct {
	SlideID int
	Field   string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("slide %d: %s", e.SlideID, e.Reason)
	}
	return fmt.Sprintf("slide %d: %s: %s", e.SlideID, e.Field, e.Reason)
}

// Validate checks the whole deck against the variant-to-payload contract.
// All problems are reported together.
func Validate(slides []Slide) error {
	if len(slides) == 0 {
		return ErrEmptyDeck
	}
	var errs []error
	seen := make(map[int]bool, len(slides))
	for _, s := range slides {
		fail := func(field, reason string) {
			errs = append(errs, &ValidationError{SlideID: s.ID, Field: field, Reason: reason})
		}
		if s.ID <= 0 {
			fail("id", "must be positive")
		} else if seen[s.ID] {
			fail("id", "duplicate")
		}
		seen[s.ID] = true
		if s.Title == "" {
			fail("title", "required")
		}
		if s.Content == nil {
			fail("content", "required")
			continue
		}
		want := s.Variant
		if !want.Known() {
			want = Cards
		}
		if got := s.Content.variant(); got != want {
			fail("content", fmt.Sprintf("%s payload does not match variant %s", got, s.Variant))
			continue
		}
		for _, p := range s.Content.problems() {
			fail(p.field, p.reason)
		}
	}
	return errors.Join(errs...)
}
