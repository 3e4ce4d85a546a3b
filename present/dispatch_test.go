package present

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/deckengine/deck"
)

// tagRenderer reports which method handled a slide.
type tagRenderer struct{}

func (tagRenderer) Title(deck.Slide, deck.TitleContent) deck.Variant     { return deck.Title }
func (tagRenderer) Split(deck.Slide, deck.SplitContent) deck.Variant     { return deck.SplitImageText }
func (tagRenderer) Cards(deck.Slide, deck.CardsContent) deck.Variant     { return deck.Cards }
func (tagRenderer) Balance(deck.Slide, deck.BalanceContent) deck.Variant { return deck.ConceptBalance }
func (tagRenderer) Diagram(deck.Slide, deck.DiagramContent) deck.Variant { return deck.Diagram }
func (tagRenderer) IconsGrid(deck.Slide, deck.IconsGridContent) deck.Variant {
	return deck.IconsGrid
}
func (tagRenderer) Script(deck.Slide, deck.ScriptContent) deck.Variant { return deck.ScriptTable }
func (tagRenderer) Conclusion(deck.Slide, deck.ConclusionContent) deck.Variant {
	return deck.Conclusion
}

func TestDispatchIsTotal(t *testing.T) {
	for _, s := range deck.Sample().Slides() {
		got := Dispatch[deck.Variant](tagRenderer{}, s)
		assert.Equal(t, s.Variant, got, "slide %d", s.ID)
	}
}

func TestDispatchUnknownVariant(t *testing.T) {
	d, err := deck.Parse([]byte(`
slides:
  - id: 1
    type: FOOTER
    title: footer
    content:
      - title: only card
`))
	require.NoError(t, err)

	s := d.At(0)
	assert.Equal(t, deck.Cards, Dispatch[deck.Variant](tagRenderer{}, s))
	assert.Equal(t, deck.Cards, Route(s.Variant))
	assert.Equal(t, deck.Diagram, Route(deck.Diagram))
}

func TestDispatchNilContent(t *testing.T) {
	s := deck.Slide{ID: 1, Variant: "FOOTER", Title: "x"}
	assert.Equal(t, deck.Cards, Dispatch[deck.Variant](tagRenderer{}, s))
}

func TestParseEvent(t *testing.T) {
	e, err := ParseEvent(" Toggle-Export ")
	require.NoError(t, err)
	assert.Equal(t, ToggleExport, e)

	_, err = ParseEvent("jump")
	assert.ErrorIs(t, err, ErrUnknownEvent)

	// Reload only comes from Replace.
	_, err = ParseEvent("reload")
	assert.ErrorIs(t, err, ErrUnknownEvent)
	assert.Equal(t, "reload", Reload.String())

	for key, want := range map[string]Event{"ArrowRight": Next, " ": Next, "left": Previous, "End": Last} {
		got, ok := EventForKey(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}
	_, ok := EventForKey("q")
	assert.False(t, ok)
}
