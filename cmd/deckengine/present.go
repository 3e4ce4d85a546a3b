package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/eringen/deckengine/deck"
	"github.com/eringen/deckengine/locale"
	"github.com/eringen/deckengine/logging"
	"github.com/eringen/deckengine/tui"
	"github.com/eringen/deckengine/watch"
)

func newPresentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "present",
		Short: "Present the deck in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal(cmd.OutOrStdout()) {
				return errors.New("present needs a terminal; use export for files")
			}
			s, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()
			return runPresent(ctx, s)
		},
	}
	cmd.Flags().Bool("watch", false, "reload the deck when the file changes")
	cmd.Flags().Int("slide", 0, "start at the slide with this id")
	return cmd
}

func runPresent(ctx context.Context, s settings) error {
	d, err := s.loadDeck()
	if err != nil {
		return err
	}
	bundle, err := locale.New()
	if err != nil {
		return err
	}
	ctrl, err := s.controller(d)
	if err != nil {
		return err
	}

	// The terminal belongs to the UI; keep log output out of it.
	logger := logging.Nop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, ctrl, bundle.Translator(s.Locale))
	})
	if s.Watch && s.Deck != "" {
		w := watch.New(s.Deck, func(_ context.Context, d *deck.Deck) { ctrl.Replace(d) },
			watch.WithLogger(logger),
			watch.WithParseOptions(s.parseOptions()...),
		)
		g.Go(func() error { return w.Run(gctx) })
	}
	return g.Wait()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
