// Package analytics records focus sessions and produces weekly summaries.
package analytics

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Session kinds recorded in the sessions table.
const (
	KindWork  = "work"
	KindBreak = "break"
)

// Store reads and writes focus session rows in the local database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a session store over the shared local database.
func New(db *sql.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// SetNow overrides the clock for testing purposes.
func (s *Store) SetNow(now func() time.Time) {
	s.now = now
}

// LogSessionStart appends an open session row for the user.
func (s *Store) LogSessionStart(ctx context.Context, userID int64, kind, task string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO pomodoro_sessions(user_id, kind, started_at, task) VALUES (?, ?, ?, ?)",
		userID, kind, s.now().Format(time.RFC3339), task)
	if err != nil {
		return fmt.Errorf("log session start: %w", err)
	}
	return nil
}

// LogSessionEnd closes the most recent open session of the given kind for the
// user. Ending with no open session is a no-op.
func (s *Store) LogSessionEnd(ctx context.Context, userID int64, kind string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE pomodoro_sessions SET ended_at = ?
		WHERE id = (
			SELECT id FROM pomodoro_sessions
			WHERE user_id = ? AND kind = ? AND ended_at IS NULL
			ORDER BY started_at DESC LIMIT 1
		)`,
		s.now().Format(time.RFC3339), userID, kind)
	if err != nil {
		return fmt.Errorf("log session end: %w", err)
	}
	return nil
}

// WorkSessionsToday counts work sessions the user started today (UTC).
func (s *Store) WorkSessionsToday(ctx context.Context, userID int64) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pomodoro_sessions WHERE user_id = ? AND kind = ? AND date(started_at) = ?",
		userID, KindWork, s.now().Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count today's work sessions: %w", err)
	}
	return count, nil
}

// WorkSessionsSince counts work sessions started on or after the cutoff,
// across all users.
func (s *Store) WorkSessionsSince(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM pomodoro_sessions WHERE kind = ? AND started_at >= ?",
		KindWork, cutoff.UTC().Format(time.RFC3339)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count work sessions since: %w", err)
	}
	return count, nil
}

// DailyWorkCounts returns per-day work session counts (YYYY-MM-DD keys) on
// or after the cutoff.
func (s *Store) DailyWorkCounts(ctx context.Context, cutoff time.Time) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(started_at), COUNT(*)
		FROM pomodoro_sessions
		WHERE kind = ? AND started_at >= ?
		GROUP BY date(started_at)`,
		KindWork, cutoff.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("daily work counts: %w", err)
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
