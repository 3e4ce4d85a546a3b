package deckengine

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *HistoryStore {
	t.Helper()
	s, err := NewHistoryStore(filepath.Join(t.TempDir(), "data", "history.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewHistoryStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
	n, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty log, got %d rows", n)
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, ev := range []string{"next", "next", "toggle-export"} {
		err := s.Record(ctx, Transition{
			At: base.Add(time.Duration(i) * time.Second), Event: ev,
			From: i, To: i + 1, SlideID: i + 2, Mode: "presenting",
		})
		if err != nil {
			t.Fatalf("Record(%s): %v", ev, err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Event != "toggle-export" || got[1].Event != "next" {
		t.Errorf("expected newest first, got %q then %q", got[0].Event, got[1].Event)
	}
	if !got[0].At.Equal(base.Add(2 * time.Second)) {
		t.Errorf("At = %v, want %v", got[0].At, base.Add(2*time.Second))
	}
	if got[0].From != 2 || got[0].To != 3 || got[0].SlideID != 4 {
		t.Errorf("unexpected row %+v", got[0])
	}
}

func TestRecordStampsTime(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	before := time.Now().Add(-time.Second)
	if err := s.Record(ctx, Transition{Event: "next", Mode: "presenting"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].At.Before(before) {
		t.Fatalf("expected a fresh timestamp, got %+v", got)
	}
}

func TestNilHistoryStore(t *testing.T) {
	var s *HistoryStore
	ctx := context.Background()
	if err := s.Record(ctx, Transition{Event: "next"}); err != nil {
		t.Fatalf("Record on nil store: %v", err)
	}
	got, err := s.Recent(ctx, 5)
	if err != nil || got != nil {
		t.Fatalf("Recent on nil store = %v, %v", got, err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil store: %v", err)
	}
}
