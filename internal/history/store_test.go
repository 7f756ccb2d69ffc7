// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/laurentftech/kidsearch/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.HistoryConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndRecent(t *testing.T) {
	s := newTestStore(t)

	queries := []string{"dinosaure", "volcan", "chevaliers"}
	for _, q := range queries {
		if err := s.Record(Entry{Query: q, Mode: types.ModeWeb, Lang: "fr", ResultCount: 12}); err != nil {
			t.Fatalf("Record(%q): %v", q, err)
		}
	}

	entries, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Query != "chevaliers" || entries[1].Query != "volcan" {
		t.Errorf("entries = %+v", entries)
	}
	if entries[0].Mode != types.ModeWeb || entries[0].ResultCount != 12 {
		t.Errorf("entry fields not round-tripped: %+v", entries[0])
	}
	if entries[0].At.IsZero() {
		t.Error("timestamp missing")
	}
}

func TestCountPrimaryToday(t *testing.T) {
	s := newTestStore(t)

	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	// Two primary calls today, one secondary-only, one primary yesterday.
	for _, e := range []Entry{
		{Query: "a", Mode: types.ModeWeb, UsedPrimary: true},
		{Query: "b", Mode: types.ModeImages, UsedPrimary: true},
		{Query: "c", Mode: types.ModeWeb},
		{Query: "d", Mode: types.ModeWeb, UsedPrimary: true, At: now.Add(-24 * time.Hour)},
	} {
		if err := s.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	n, err := s.CountPrimaryToday()
	if err != nil {
		t.Fatalf("CountPrimaryToday: %v", err)
	}
	if n != 2 {
		t.Errorf("CountPrimaryToday = %d, want 2", n)
	}
}

func TestCountPrimaryTodayUsesLocalCalendarDay(t *testing.T) {
	s := newTestStore(t)

	// Shortly after local midnight in a UTC+2 zone the UTC date is still
	// yesterday. The count must follow the local date, like the quota
	// reset does.
	zone := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, 3, 10, 1, 0, 0, 0, zone)
	s.now = func() time.Time { return now }

	for _, e := range []Entry{
		// Same local day, previous UTC day.
		{Query: "a", Mode: types.ModeWeb, UsedPrimary: true, At: now},
		// Previous local day.
		{Query: "b", Mode: types.ModeWeb, UsedPrimary: true, At: now.Add(-2 * time.Hour)},
	} {
		if err := s.Record(e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	n, err := s.CountPrimaryToday()
	if err != nil {
		t.Fatalf("CountPrimaryToday: %v", err)
	}
	if n != 1 {
		t.Errorf("CountPrimaryToday = %d, want 1", n)
	}
}

func TestSchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := NewStore(types.HistoryConfig{Path: path})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s1.Record(Entry{Query: "dinosaure", Mode: types.ModeWeb}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	s1.Close()

	// Reopening must preserve existing rows.
	s2, err := NewStore(types.HistoryConfig{Path: path})
	if err != nil {
		t.Fatalf("NewStore (reopen): %v", err)
	}
	defer s2.Close()

	entries, err := s2.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Query != "dinosaure" {
		t.Errorf("entries = %+v", entries)
	}
}
