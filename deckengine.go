// Package deckengine serves a slide deck over HTTP with Echo and templ.
// One shared presentation controller drives every connected browser: the
// presenter navigates, the audience follows over a websocket, and the whole
// deck can be switched into a printable export view.
package deckengine

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/present"
	"github.com/eringen/deckengine/telemetry"
)

// App is the deckengine server. It wires the controller, views, transition
// log, follower connections, middleware, and routes together.
type App struct {
	Config     Config
	Echo       *echo.Echo
	Controller *present.Controller
	History    *HistoryStore
	Exports    *ExportCache
	Logger     *zap.Logger

	locales      *locale.Bundle
	telemetry    *telemetry.Provider
	tracer       trace.Tracer
	loginLimiter *LoginLimiter
	followers    *followers
	ownsHistory  bool
}

// New creates an App presenting whatever ctrl holds.
func New(cfg Config, ctrl *present.Controller, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:     cfg,
		Echo:       echo.New(),
		Controller: ctrl,
		Logger:     zap.NewNop(),
		followers:  newFollowers(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Init validates the configuration, opens the transition log, and registers
// middleware and routes. Serve needs it; tests call it directly and drive
// a.Echo through httptest.
func (a *App) Init() error {
	if a.Controller == nil {
		return errors.New("deckengine: controller is required")
	}
	if a.Config.PresenterPassword != "" && a.Config.SessionSecret == "" {
		return errors.New("deckengine: SessionSecret is required when PresenterPassword is set")
	}
	if a.Config.SessionSecret == "" {
		// Nothing is signed in without a password, but the session store
		// still needs a key.
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("deckengine: session secret: %w", err)
		}
		a.Config.SessionSecret = secret
	}

	bundle, err := locale.New()
	if err != nil {
		return fmt.Errorf("deckengine: %w", err)
	}
	a.locales = bundle

	if a.History == nil && a.Config.HistoryPath != "" {
		h, err := NewHistoryStore(a.Config.HistoryPath)
		if err != nil {
			return fmt.Errorf("deckengine: init history: %w", err)
		}
		a.History = h
		a.ownsHistory = true
	}

	a.Exports = NewExportCache()
	a.loginLimiter = NewLoginLimiter(5, time.Minute)
	a.tracer = a.telemetry.Tracer("github.com/eringen/deckengine")

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Serve listens on Config.Addr. Init must have been called.
func (a *App) Serve() error {
	a.Logger.Info("serving deck",
		zap.String("addr", a.Config.Addr),
		zap.String("url", a.Config.SiteURL),
		zap.Int("slides", a.Controller.Deck().Len()),
		zap.Bool("presenter_auth", a.Config.PresenterPassword != ""),
	)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("deckengine: serve: %w", err)
	}
	return nil
}

// Shutdown closes follower connections and stops the HTTP server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	a.followers.closeAll()
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/favicon.svg", handleFavicon)
	e.GET("/robots.txt", handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/outline.xml", a.handleOutline)

	e.GET("/", a.handleIndex)
	e.GET("/state", a.handleState)
	e.POST("/input/", a.handleInput)
	e.GET("/ws", a.handleFollow)
	e.GET("/preview.png", a.handlePreview)

	e.GET("/presenter/", a.handlePresenter)
	e.POST("/presenter/login/", a.handlePresenterLogin)
	e.POST("/presenter/logout/", handlePresenterLogout)
	e.GET("/presenter/history/", a.handleHistory)
}

// Close releases resources. Call it after Shutdown.
func (a *App) Close() error {
	var errs []error
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.History != nil && a.ownsHistory {
		errs = append(errs, a.History.Close())
	}
	return errors.Join(errs...)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
