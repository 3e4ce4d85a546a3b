package views

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/present"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

var testLabels = Labels{
	Lang: "en", Previous: "Previous", Next: "Next", Export: "Export", Close: "Close",
	Print: "Print", Progress: "1 / 10", SlideOf: "Slide 1 of 10", Time: "Time", Fin: "Fin.", Message: "The Message",
	Spiral: "Spiral", NotFound: "Not found", ServerError: "Something went wrong", Back: "Back",
	History: "History", HistoryEmpty: "No transitions yet",
}

func TestSlideRendererVariants(t *testing.T) {
	r := SlideRenderer{Labels: testLabels}
	d := deck.Sample()
	for _, s := range d.Slides() {
		html := render(t, r.Slide(s, ""))
		assert.Contains(t, html, `data-variant="`+string(s.Variant)+`"`, "slide %d", s.ID)
		assert.Contains(t, html, templ.EscapeString(s.Title), "slide %d", s.ID)
	}
}

func TestSlideEscapesText(t *testing.T) {
	s := deck.Slide{
		ID: 1, Variant: deck.Conclusion, Title: "<script>alert(1)</script>",
		Content: deck.ConclusionContent{Metaphor: `"quoted" & <b>`},
	}
	html := render(t, SlideRenderer{}.Slide(s, ""))
	assert.NotContains(t, html, "<script>alert")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "&amp; &lt;b&gt;")
}

func TestSlideBackgroundOnlyWhenSet(t *testing.T) {
	s := deck.Slide{ID: 1, Variant: deck.Title, Title: "t", Content: deck.TitleContent{}}
	assert.NotContains(t, render(t, SlideRenderer{}.Slide(s, "")), "slide-bg")

	s.BackgroundImage = "https://example.com/bg.jpg"
	assert.Contains(t, render(t, SlideRenderer{}.Slide(s, "")), `class="slide-bg" src="https://example.com/bg.jpg"`)
}

func TestUnknownVariantRendersAsCards(t *testing.T) {
	s := deck.Slide{
		ID: 3, Variant: "FOOTER", Title: "t",
		Content: deck.CardsContent{Cards: []deck.Card{{Title: "only card"}}},
	}
	html := render(t, SlideRenderer{}.Slide(s, ""))
	assert.Contains(t, html, "slide-CARDS")
	assert.Contains(t, html, "only card")
}

func TestScriptTable(t *testing.T) {
	s := deck.Slide{ID: 9, Variant: deck.ScriptTable, Title: "Script", Content: deck.ScriptContent{
		Rows: []deck.ScriptRow{{Time: "00:00", Reality: "rain", World: "void", Monologue: "“Where am I?”"}},
	}}
	html := render(t, SlideRenderer{Labels: testLabels}.Slide(s, ""))
	for _, h := range deck.DefaultScriptColumns {
		assert.Contains(t, html, "<th>"+templ.EscapeString(h)+"</th>")
	}
	assert.Contains(t, html, "&ldquo;Where am I?&rdquo;")
	assert.Equal(t, 1, strings.Count(html, "<tr><td"))
}

func TestDiagramSplitsDetail(t *testing.T) {
	tests := []struct {
		input, label, detail string
	}{
		{"Linear | 00:00 → 10:00", "Linear", "00:00 → 10:00"},
		{"Vertical", "Vertical", ""},
		{" a|b ", "a", "b"},
	}
	for _, tt := range tests {
		label, detail := splitDetail(tt.input)
		if label != tt.label || detail != tt.detail {
			t.Errorf("splitDetail(%q) = %q, %q, want %q, %q", tt.input, label, detail, tt.label, tt.detail)
		}
	}
}

func TestPageChrome(t *testing.T) {
	d := deck.Sample()
	data := PageData{
		DeckTitle: d.Title(), Footer: d.Footer(), Slide: d.At(0),
		State:  present.State{Position: 0, Total: d.Len(), SlideID: 1},
		Labels: testLabels, CSRFToken: "tok", CanControl: true,
	}
	html := render(t, Page(data))

	assert.Contains(t, html, `<meta name="csrf-token" content="tok">`)
	assert.Contains(t, html, "1 / 10")
	assert.Contains(t, html, `style="width:10.00%;"`)
	assert.Contains(t, html, `aria-valuenow="1" aria-valuetext="Slide 1 of 10"`)
	assert.Contains(t, html, "Ecce Homo: Capstone Presentation")
	assert.Contains(t, html, `data-position="0" data-mode="presenting" data-revision="0"`)
	// Previous is disabled on the first slide, Next is not.
	assert.Contains(t, html, `value="previous"> <button type="submit" disabled>`)
	assert.Contains(t, html, `value="next"> <button type="submit">`)
	assert.Contains(t, html, "/input/")

	data.State.Position = d.Len() - 1
	html = render(t, Page(data))
	assert.Contains(t, html, `value="next"> <button type="submit" disabled>`)
	assert.Contains(t, html, `style="width:100.00%;"`)
}

func TestPageWithoutControl(t *testing.T) {
	d := deck.Sample()
	html := render(t, Page(PageData{Slide: d.At(1), State: present.State{Position: 1, Total: d.Len()}, Labels: testLabels}))
	assert.NotContains(t, html, `action="/input/"`)
	assert.Contains(t, html, "/ws")
}

func TestExportPage(t *testing.T) {
	d := deck.Sample()
	r := SlideRenderer{Labels: testLabels}
	html := render(t, ExportPage(ExportData{
		DeckTitle: d.Title(), Slides: ExportSlides(r, d),
		State: present.State{Total: d.Len(), Mode: present.Exporting}, Labels: testLabels, CanControl: true,
	}))
	assert.Equal(t, d.Len(), strings.Count(html, `export-slide" id="slide-`))
	assert.Contains(t, html, "window.print()")
	assert.Contains(t, html, `value="exit-export"`)
	assert.Contains(t, html, `data-mode="exporting"`)

	// Document order.
	last := -1
	for _, s := range d.Slides() {
		idx := strings.Index(html, `id="slide-`+strconv.Itoa(s.ID)+`"`)
		assert.Greater(t, idx, last, "slide %d", s.ID)
		last = idx
	}
}

func TestExportDocumentHasNoControls(t *testing.T) {
	d := deck.Sample()
	html := render(t, ExportDocument(d.Title(), d.Footer(), testLabels, ExportSlides(SlideRenderer{}, d)))
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<form")
	assert.True(t, strings.HasPrefix(html, "<!doctype html>"))
}

func TestHistoryAndErrors(t *testing.T) {
	html := render(t, History(testLabels, nil, 0))
	assert.Contains(t, html, "No transitions yet")

	html = render(t, History(testLabels, []Transition{{At: "12:00:00", Event: "next", From: 0, To: 1, SlideID: 2, Mode: "presenting"}}, 7))
	assert.Contains(t, html, "1 &rarr; 2")
	assert.Contains(t, html, "#2")
	assert.Contains(t, html, `<p class="history-count">1 / 7</p>`)

	assert.Contains(t, render(t, NotFound(testLabels)), "Not found")
	assert.Contains(t, render(t, ServerError(testLabels)), "Something went wrong")
}

func TestIconFallback(t *testing.T) {
	assert.Contains(t, iconSVG("Brain"), iconPaths["brain"])
	assert.Contains(t, iconSVG("unknown"), fallbackIcon)
	assert.Contains(t, iconSVG(""), fallbackIcon)
}

func TestAttributesAreEscaped(t *testing.T) {
	s := deck.Slide{ID: 1, Variant: deck.Title, Title: "t", Content: deck.TitleContent{}}
	html := render(t, SlideRenderer{}.Slide(s, `x" onload="alert(1)`))
	assert.NotContains(t, html, `onload="alert(1)"`)
	assert.Contains(t, html, `class="slide slide-TITLE x&#34; onload=&#34;alert(1)"`)

	// An empty extra class leaves no trailing space behind.
	assert.Contains(t, render(t, SlideRenderer{}.Slide(s, "")), `class="slide slide-TITLE" id="slide-1"`)

	html = render(t, Page(PageData{
		Slide: s, State: present.State{Total: 1, Mode: present.Exporting},
		Labels: Labels{Lang: `en"><script>`}, CSRFToken: `"><script>`,
	}))
	assert.NotContains(t, html, `"><script>`)
	assert.Contains(t, html, `<html lang="en&#34;&gt;&lt;script&gt;">`)
	assert.Contains(t, html, `data-position="0" data-mode="exporting" data-revision="0"`)
}

func TestAxisSkipsEmptyParts(t *testing.T) {
	s := deck.Slide{ID: 4, Variant: deck.Diagram, Title: "t", Content: deck.DiagramContent{Time: "Linear | 00:00 → 10:00", Space: "Vertical"}}
	html := render(t, SlideRenderer{Labels: testLabels}.Slide(s, ""))
	assert.Contains(t, html, `<div class="diagram-time"><span class="label">Time</span><strong class="axis-label">Linear</strong> <span class="axis-detail">00:00 → 10:00</span></div>`)
	assert.Contains(t, html, `<div class="diagram-space"><strong class="axis-label">Vertical</strong> </div>`)
}
