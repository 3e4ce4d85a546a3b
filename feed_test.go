package deckengine

import (
	"encoding/xml"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"http://localhost:3000", nil, "http://localhost:3000/"},
		{"https://talk.example.com/deck", []string{"presenter"}, "https://talk.example.com/deck/presenter/"},
		{"https://talk.example.com", []string{"preview.png"}, "https://talk.example.com/preview.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildURL(tt.base, tt.segs...))
	}
}

func TestOutlineFeed(t *testing.T) {
	a := newTestApp(t, Config{SiteURL: "https://talk.example.com"})
	rec := newClient(t, a).get("/outline.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/rss+xml")

	var feed rssXML
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Equal(t, "Ecce Homo: The Last Lucid Dream", feed.Channel.Title)
	require.Len(t, feed.Channel.Items, 10)
	assert.Equal(t, "Project Overview", feed.Channel.Items[1].Title)
	assert.Equal(t, "https://talk.example.com/#slide-2", feed.Channel.Items[1].Link)
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t, Config{SiteURL: "https://talk.example.com"})
	rec := newClient(t, a).get("/sitemap.xml")

	require.Equal(t, http.StatusOK, rec.Code)
	var sm sitemapURLSet
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &sm))
	require.Len(t, sm.URLs, 2)
	assert.Equal(t, "https://talk.example.com/", sm.URLs[0].Loc)
	assert.Equal(t, "https://talk.example.com/outline.xml", sm.URLs[1].Loc)
}

func TestIndexCarriesLinkPreview(t *testing.T) {
	a := newTestApp(t, Config{SiteURL: "https://talk.example.com"})
	body := newClient(t, a).get("/").Body.String()

	assert.Contains(t, body, `<meta property="og:image" content="https://talk.example.com/preview.png">`)
	assert.Contains(t, body, `<link rel="canonical" href="https://talk.example.com/">`)
	assert.Contains(t, body, `<meta property="og:description" content="Ecce Homo: Capstone Presentation">`)
}
