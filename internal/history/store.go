// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists the search log in SQLite. The log backs the
// recent-searches view and lets the primary quota counter survive
// restarts: used calls are recounted from today's logged primary queries.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/laurentftech/kidsearch/pkg/types"
)

const defaultDBPath = "data/kidsearch.db"

// Entry is one logged search.
type Entry struct {
	Query       string     `json:"query"`
	Mode        types.Mode `json:"mode"`
	Lang        string     `json:"lang"`
	ResultCount int        `json:"resultCount"`
	UsedPrimary bool       `json:"usedPrimary"`
	At          time.Time  `json:"at"`
}

// Store manages the search log SQLite database.
type Store struct {
	db *sql.DB

	// now is injectable for tests.
	now func() time.Time
}

// NewStore opens or creates the search log database. It creates the
// schema and the parent directory if they do not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			mode TEXT NOT NULL,
			lang TEXT,
			result_count INTEGER NOT NULL DEFAULT 0,
			used_primary INTEGER NOT NULL DEFAULT 0,
			searched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_at ON searches(searched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one search to the log.
func (s *Store) Record(e Entry) error {
	at := e.At
	if at.IsZero() {
		at = s.now()
	}
	_, err := s.db.Exec(
		`INSERT INTO searches (query, mode, lang, result_count, used_primary, searched_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Query, string(e.Mode), e.Lang, e.ResultCount, e.UsedPrimary, at.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// Recent returns the latest searches, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT query, mode, lang, result_count, used_primary, searched_at
		 FROM searches ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var mode, at string
		if err := rows.Scan(&e.Query, &mode, &e.Lang, &e.ResultCount, &e.UsedPrimary, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Mode = types.Mode(mode)
		if t, err := time.Parse(time.RFC3339, at); err == nil {
			e.At = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// CountPrimaryToday counts searches logged since local midnight that
// consumed a primary API call. Used to restore the quota counter after a
// restart; the quota resets on the local calendar date, so the restore
// must bucket days the same way.
func (s *Store) CountPrimaryToday() (int, error) {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		UTC().Format(time.RFC3339)
	var n int
	err := s.db.QueryRow(
		`SELECT count(*) FROM searches WHERE used_primary = 1 AND searched_at >= ?`, dayStart,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting primary searches: %w", err)
	}
	return n, nil
}
