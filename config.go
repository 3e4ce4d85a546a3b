package deckengine

import (
	"go.uber.org/zap"

	"github.com/eringen/deckengine/telemetry"
)

// Config holds everything the server needs besides the deck itself.
type Config struct {
	Addr    string // Listen address (default ":3000")
	SiteURL string // Public base URL (default "http://localhost:3000")

	DeckPath    string // Deck YAML file; empty serves the built-in sample
	HistoryPath string // SQLite transition log; empty disables it

	PresenterPassword string // When set, only signed-in presenters may navigate
	SessionSecret     string // Cookie signing secret; required with a password
	CookieSecure      bool   // Set true for HTTPS

	Locale       string // Fallback UI language (default "en")
	HistoryLimit int    // Rows shown on the history page (default 50)
}

func (c *Config) setDefaults() {
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = 50
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger replaces the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithTelemetry sets the tracer provider used for request spans.
func WithTelemetry(p *telemetry.Provider) Option {
	return func(a *App) {
		a.telemetry = p
	}
}

// WithHistory attaches an already opened transition log. Without it Init
// opens Config.HistoryPath.
func WithHistory(h *HistoryStore) Option {
	return func(a *App) {
		a.History = h
	}
}
