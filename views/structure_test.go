package views

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/eringen/deckengine/deck"
)

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

// An unclosed element would nest the next slide inside the previous one
// once a browser parses the document.
func TestExportDocumentIsWellNested(t *testing.T) {
	d := deck.Sample()
	out := render(t, ExportDocument(d.Title(), d.Footer(), testLabels, ExportSlides(SlideRenderer{Labels: testLabels}, d)))

	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)

	body := findElement(doc, func(n *html.Node) bool {
		return n.DataAtom == atom.Main && strings.Contains(attrOf(n, "class"), "export")
	})
	require.NotNil(t, body)

	var ids, variants []string
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Section {
			ids = append(ids, attrOf(c, "id"))
			variants = append(variants, attrOf(c, "data-variant"))
		}
	}
	var wantIDs, wantVariants []string
	for _, s := range d.Slides() {
		wantIDs = append(wantIDs, "slide-"+strconv.Itoa(s.ID))
		wantVariants = append(wantVariants, string(s.Variant))
	}
	assert.Equal(t, wantIDs, ids)
	assert.Equal(t, wantVariants, variants)

	footer := findElement(body, func(n *html.Node) bool { return attrOf(n, "class") == "deck-footer" })
	require.NotNil(t, footer)
	assert.Equal(t, body, footer.Parent)
}

func TestPageHeadCarriesOpenGraph(t *testing.T) {
	d := deck.Sample()
	meta := PageMeta{Title: "Deck", Description: d.Footer(), URL: "https://talk.example.com/", Image: "https://talk.example.com/preview.png"}
	out := render(t, ExportDocument("Deck", d.Footer(), testLabels, ExportSlides(SlideRenderer{}, d)))
	doc, err := html.Parse(strings.NewReader(out))
	require.NoError(t, err)
	// The export document is offline and carries no link preview.
	assert.Nil(t, findElement(doc, func(n *html.Node) bool { return attrOf(n, "property") == "og:url" }))

	head, err := html.Parse(strings.NewReader("<head>" + render(t, openGraph(meta)) + "</head>"))
	require.NoError(t, err)
	og := findElement(head, func(n *html.Node) bool { return attrOf(n, "property") == "og:image" })
	require.NotNil(t, og)
	assert.Equal(t, meta.Image, attrOf(og, "content"))
}
