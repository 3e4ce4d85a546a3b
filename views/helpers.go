package views

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/present"
)

var _ present.Renderer[templ.Component] = SlideRenderer{}

// SlideRenderer renders each variant's layout as HTML.
type SlideRenderer struct {
	Labels Labels
}

// variant picks the layout for s, falling back to Cards.
func (r SlideRenderer) variant(s deck.Slide) templ.Component {
	return present.Dispatch[templ.Component](r, s)
}

func slideClass(s deck.Slide) string {
	return "slide-" + string(present.Route(s.Variant))
}

func langOf(l Labels) string {
	return cmp.Or(l.Lang, "en")
}

// pageMeta titles a Presenting page "slide | deck".
func pageMeta(d PageData) PageMeta {
	meta := d.Meta
	meta.Title = d.Slide.Title
	if d.DeckTitle != "" {
		meta.Title = d.Slide.Title + " | " + d.DeckTitle
	}
	return meta
}

func progressWidth(s present.State) templ.SafeCSS {
	return templ.SafeCSS(fmt.Sprintf("width:%.2f%%;", s.Percent()))
}

// inlineStyle and inlineScript embed the page assets so a page, and the
// exported document, never fetch anything.
func inlineStyle() templ.Component {
	return templ.Raw("<style>" + stylesheet + "</style>")
}

func inlineScript(src string) templ.Component {
	return templ.Raw("<script>" + src + "</script>")
}

// splitDetail splits "label | detail" notation.
func splitDetail(s string) (label, detail string) {
	label, detail, found := strings.Cut(s, "|")
	if !found {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(label), strings.TrimSpace(detail)
}

func axisLabel(s string) string {
	label, _ := splitDetail(s)
	return label
}

func axisDetail(s string) string {
	_, detail := splitDetail(s)
	return detail
}

// stripQuotes removes the curly quotes a monologue is usually typed with.
func stripQuotes(s string) string {
	return strings.NewReplacer("“", "", "”", "").Replace(s)
}

func (d PageData) renderer() SlideRenderer {
	return SlideRenderer{Labels: d.Labels}
}
