package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eringen/deckengine/deck"
)

func TestRenderEveryVariant(t *testing.T) {
	r := TextRenderer{Styles: DefaultStyles(), Width: 150}
	for _, s := range deck.Sample().Slides() {
		t.Run(string(s.Variant), func(t *testing.T) {
			out := r.Render(s)
			assert.Contains(t, out, s.Title)
			assert.NotEmpty(t, strings.TrimSpace(out))
		})
	}
}

func TestRenderUnknownPayloadAsCards(t *testing.T) {
	r := TextRenderer{Styles: DefaultStyles(), Width: 100}
	out := r.Render(deck.Slide{ID: 7, Variant: "BULLET_POINTS", Title: "Bullets"})
	assert.Contains(t, out, "Bullets")
}

func TestRenderScriptTable(t *testing.T) {
	r := TextRenderer{Styles: DefaultStyles(), Width: 120}
	out := r.Script(deck.Slide{Title: "Script"}, deck.ScriptContent{
		Rows: []deck.ScriptRow{{Time: "00:10", Reality: "beep", World: "fog", Monologue: "“where am I”"}},
	})
	assert.Contains(t, out, "00:10")
	assert.Contains(t, out, "Reality (Audio)")
	assert.Contains(t, out, "“where am I”")
	assert.NotContains(t, out, "““")
}

func TestRenderDiagramAxisDetail(t *testing.T) {
	r := TextRenderer{Styles: DefaultStyles(), Width: 120}
	out := r.Diagram(deck.Slide{Title: "Logic"}, deck.DiagramContent{
		Time:   "Ten minutes | countdown",
		Space:  "Room",
		Layers: []deck.Layer{{Name: "Body", Description: "locked"}},
	})
	assert.Contains(t, out, "Ten minutes")
	assert.Contains(t, out, "countdown")
	assert.NotContains(t, out, "|")
	assert.Contains(t, out, "1. Body")
}

func TestRenderNoteAndIcons(t *testing.T) {
	r := TextRenderer{Styles: DefaultStyles(), Width: 120}
	out := r.IconsGrid(deck.Slide{Title: "Grid", Note: "speaker note"}, deck.IconsGridContent{
		Items: []deck.GridItem{{Title: "Brain", Icon: "BRAIN"}, {Title: "Other", Icon: "nope"}},
	})
	assert.Contains(t, out, "speaker note")
	assert.Contains(t, out, "◉ Brain")
	assert.Contains(t, out, "• Other")
}

func TestRenderProseThroughGlamour(t *testing.T) {
	r := NewTextRenderer(DefaultStyles(), nil, 100)
	if r.Prose == nil {
		t.Fatal("expected a prose renderer")
	}
	out := r.Title(deck.Slide{Title: "Intro", Note: "read *slowly*"}, deck.TitleContent{Details: "a **bold** claim"})
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "bold")
	assert.Contains(t, out, "slowly")
	assert.False(t, strings.HasSuffix(out, "\n"))
}
