package deckengine

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Transition is one logged change of the presentation state.
type Transition struct {
	At       time.Time
	Event    string
	From     int
	To       int
	SlideID  int
	Mode     string
	Revision int
}

// HistoryStore is an append-only SQLite log of transitions. It is never read
// back into the controller: a restarted server always opens at slide one.
// A nil *HistoryStore accepts every call and records nothing.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func NewHistoryStore(path string) (*HistoryStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the history page read while a transition is being written.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &HistoryStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *HistoryStore) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

func (s *HistoryStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS transitions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    at TEXT NOT NULL,
    event TEXT NOT NULL,
    from_pos INTEGER NOT NULL,
    to_pos INTEGER NOT NULL,
    slide_id INTEGER NOT NULL,
    mode TEXT NOT NULL,
    revision INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_transitions_at ON transitions(at);
`)
	return err
}

// Record appends t. A zero At is stamped with the current time.
func (s *HistoryStore) Record(ctx context.Context, t Transition) error {
	if s == nil {
		return nil
	}
	if t.At.IsZero() {
		t.At = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO transitions (at, event, from_pos, to_pos, slide_id, mode, revision) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.At.UTC().Format(time.RFC3339Nano), t.Event, t.From, t.To, t.SlideID, t.Mode, t.Revision,
	)
	if err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return nil
}

// Recent returns up to limit transitions, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]Transition, error) {
	if s == nil {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, event, from_pos, to_pos, slide_id, mode, revision FROM transitions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var at string
		var t Transition
		if err := rows.Scan(&at, &t.Event, &t.From, &t.To, &t.SlideID, &t.Mode, &t.Revision); err != nil {
			return nil, err
		}
		t.At, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parse transition time %q: %w", at, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Count returns the number of logged transitions.
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	if s == nil {
		return 0, nil
	}
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transitions`).Scan(&n)
	return n, err
}
