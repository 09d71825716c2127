// Package habit tracks named habits and their append-only daily logs.
package habit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is reported when a habit name has never been added.
var ErrNotFound = errors.New("habit not found")

// ErrEmptyName is reported when no habit name was given.
var ErrEmptyName = errors.New("habit name cannot be empty")

// Entry is one habit with its total log count.
type Entry struct {
	Name  string
	Count int
}

// Store reads and writes habit rows in the local database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a habit store over the shared local database.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// SetNow overrides the clock for testing purposes.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

// Add inserts a habit, ignoring duplicates. Adding an existing habit is a
// success.
func (s *Store) Add(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	_, err := s.db.ExecContext(ctx, "INSERT OR IGNORE INTO habits(name) VALUES (?)", name)
	if err != nil {
		return fmt.Errorf("add habit: %w", err)
	}
	return nil
}

// Log appends a timestamped log row for an existing habit.
func (s *Store) Log(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}

	var habitID int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM habits WHERE name = ?", name).Scan(&habitID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find habit: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO habit_logs(habit_id, logged_at) VALUES (?, ?)",
		habitID, s.now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("log habit: %w", err)
	}
	return nil
}

// List returns all habits with their log counts, ordered by name.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT h.name, COUNT(l.id)
		FROM habits h
		LEFT JOIN habit_logs l ON l.habit_id = h.id
		GROUP BY h.id
		ORDER BY h.name`)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Count); err != nil {
			return nil, fmt.Errorf("scan habit row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Streak derives the count of consecutive calendar days (including today)
// with at least one log, scanning backward until the first gap. A habit with
// no logs has a streak of zero.
func (s *Store) Streak(ctx context.Context, name string) (int, error) {
	var habitID int64
	err := s.db.QueryRowContext(ctx, "SELECT id FROM habits WHERE name = ?", strings.TrimSpace(name)).Scan(&habitID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("find habit: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT DISTINCT date(logged_at) FROM habit_logs WHERE habit_id = ? ORDER BY date(logged_at) DESC",
		habitID)
	if err != nil {
		return 0, fmt.Errorf("query habit logs: %w", err)
	}
	defer rows.Close()

	logged := map[string]bool{}
	for rows.Next() {
		var day string
		if err := rows.Scan(&day); err != nil {
			return 0, fmt.Errorf("scan log day: %w", err)
		}
		logged[day] = true
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	streak := 0
	day := s.now()
	for logged[day.Format("2006-01-02")] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}

// LogsToday counts habit logs made today (UTC), across all habits.
func (s *Store) LogsToday(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM habit_logs WHERE date(logged_at) = ?",
		s.now().Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count today's logs: %w", err)
	}
	return count, nil
}

// LogsSince counts habit logs on or after the cutoff, across all habits.
func (s *Store) LogsSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM habit_logs WHERE logged_at >= ?",
		cutoff.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count logs since: %w", err)
	}
	return count, nil
}

// DailyCounts returns per-day log counts (YYYY-MM-DD keys) on or after the
// cutoff.
func (s *Store) DailyCounts(ctx context.Context, cutoff time.Time) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(logged_at), COUNT(*)
		FROM habit_logs
		WHERE logged_at >= ?
		GROUP BY date(logged_at)`,
		cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("daily habit counts: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var day string
		var n int
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("scan daily count: %w", err)
		}
		counts[day] = n
	}
	return counts, rows.Err()
}
