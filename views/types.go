package views

import (
	"github.com/a-h/templ"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/present"
)

// Labels carries the localized chrome strings. The caller resolves them so
// this package stays free of locale lookups.
type Labels struct {
	Lang         string
	Previous     string
	Next         string
	Export       string
	Close        string
	Print        string
	Progress     string // already formatted, e.g. "3 / 10"
	SlideOf      string // spoken progress, e.g. "Slide 3 of 10"
	Presenter    string
	Password     string
	Login        string
	Logout       string
	LoginFailed  string
	History      string
	HistoryEmpty string
	NotFound     string
	ServerError  string
	Back         string
	Time         string
	Fin          string
	Message      string
	Spiral       string
}

// PageData is everything the Presenting view needs.
type PageData struct {
	DeckTitle  string
	Footer     string
	Slide      deck.Slide
	State      present.State
	Labels     Labels
	CSRFToken  string
	CanControl bool
	Meta       PageMeta
}

// PageMeta carries the page title and link-preview metadata into <head>.
// Title is filled in by the page itself.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url; empty omits the preview tags
	Image       string // absolute og:image URL
	OGType      string // default "website"
}

// ExportData is everything the Exporting view needs. Slides is usually the
// cached output of ExportSlides.
type ExportData struct {
	DeckTitle  string
	Footer     string
	Slides     templ.Component
	State      present.State
	Labels     Labels
	CSRFToken  string
	CanControl bool
}

// Transition mirrors one row of the transition log for templating.
type Transition struct {
	At      string
	Event   string
	From    int
	To      int
	SlideID int
	Mode    string
}
