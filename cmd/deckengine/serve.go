package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/deckengine"
	"github.com/eringen/deckengine/telemetry"
	"github.com/eringen/deckengine/watch"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deck over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, s)
		},
	}
	f := cmd.Flags()
	f.String("addr", ":3000", "listen address")
	f.String("site-url", "http://localhost:3000", "public base URL")
	f.String("history", "", "SQLite file for the transition log (empty disables it)")
	f.Bool("cookie-secure", false, "mark session cookies secure (HTTPS)")
	f.Bool("watch", false, "reload the deck when the file changes")
	f.Int("slide", 0, "start at the slide with this id")
	return cmd
}

func runServe(ctx context.Context, s settings) error {
	logger, err := s.logger()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if s.Watch && s.Deck == "" {
		return errors.New("--watch needs --deck")
	}
	d, err := s.loadDeck()
	if err != nil {
		return err
	}
	ctrl, err := s.controller(d)
	if err != nil {
		return err
	}

	tp, err := telemetry.Setup(ctx, "deckengine")
	if err != nil {
		return err
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tp.Shutdown(sctx); err != nil {
			logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	app := deckengine.New(deckengine.Config{
		Addr:              s.Addr,
		SiteURL:           s.SiteURL,
		DeckPath:          s.Deck,
		HistoryPath:       s.HistoryPath,
		PresenterPassword: s.PresenterPassword,
		SessionSecret:     s.SessionSecret,
		CookieSecure:      s.CookieSecure,
		Locale:            s.Locale,
	}, ctrl,
		deckengine.WithLogger(logger),
		deckengine.WithTelemetry(tp),
	)
	if err := app.Init(); err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("close", zap.Error(err))
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(app.Serve)
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return app.Shutdown(sctx)
	})
	if s.Watch {
		w := watch.New(s.Deck, app.ReplaceDeck,
			watch.WithLogger(logger),
			watch.WithParseOptions(s.parseOptions()...),
		)
		g.Go(func() error { return w.Run(gctx) })
	}
	return g.Wait()
}
