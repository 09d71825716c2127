// Package storage owns the local SQLite database holding habit and focus
// session counters. Tables are created idempotently on startup.
package storage

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store wraps the local SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and ensures the
// schema exists.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*Store, error) {
	return New(":memory:")
}

// DB exposes the underlying connection for the habit and analytics stores.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS habits (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		name  TEXT UNIQUE NOT NULL
	);

	CREATE TABLE IF NOT EXISTS habit_logs (
		id        INTEGER PRIMARY KEY AUTOINCREMENT,
		habit_id  INTEGER NOT NULL REFERENCES habits(id),
		logged_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS pomodoro_sessions (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id    INTEGER NOT NULL,
		kind       TEXT NOT NULL,
		started_at TEXT NOT NULL,
		ended_at   TEXT,
		task       TEXT
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}
