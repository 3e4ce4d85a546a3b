// Package watch reloads a deck file when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/eringen/deckengine/deck"
)

// DefaultDebounce absorbs the burst of events an editor produces on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher re-parses one deck file after it changes and hands every valid
// result to a callback. Invalid edits are logged and skipped, so the
// running deck stays in place until the file is fixed.
type Watcher struct {
	path     string
	onChange func(context.Context, *deck.Deck)
	debounce time.Duration
	logger   *zap.Logger
	parse    []deck.ParseOption

	reloads  atomic.Int64
	failures atomic.Int64
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period after the last event before reloading.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithLogger sets the logger (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithParseOptions passes options such as deck.Strict to every reload.
func WithParseOptions(opts ...deck.ParseOption) Option {
	return func(w *Watcher) { w.parse = append(w.parse, opts...) }
}

// New creates a Watcher for path. Nothing happens until Run.
func New(path string, onChange func(context.Context, *deck.Deck), opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Reloads counts decks handed to the callback.
func (w *Watcher) Reloads() int64 { return w.reloads.Load() }

// Failures counts changes that did not produce a valid deck.
func (w *Watcher) Failures() int64 { return w.failures.Load() }

// Run watches until ctx is canceled. The file's directory is watched rather
// than the file itself because most editors save by renaming a temp file
// over the old one.
func (w *Watcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch: add %s: %w", filepath.Dir(abs), err)
	}
	w.logger.Info("watching deck", zap.String("path", abs))

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("deck file event", zap.String("op", ev.Op.String()))
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))

		case <-timer.C:
			w.reload(ctx, abs)
		}
	}
}

func (w *Watcher) reload(ctx context.Context, path string) {
	d, err := deck.Load(path, w.parse...)
	if err != nil {
		w.failures.Add(1)
		w.logger.Warn("deck reload rejected; keeping the current deck", zap.Error(err))
		return
	}
	w.reloads.Add(1)
	w.logger.Info("deck reloaded", zap.Int("slides", d.Len()))
	w.onChange(ctx, d)
}
