package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kairos/internal/habit"
	"kairos/internal/model"
	"kairos/internal/task/repository"
	"kairos/pkg/log"
)

// Activity score weights and trend thresholds.
const (
	workWeight      = 2
	habitWeight     = 1
	completedWeight = 3

	trendOnFire   = 50
	trendStrong   = 30
	trendSteady   = 15
	lookbackDays  = 7
)

// Reporter builds the weekly productivity summary from sessions, habit logs
// and the task board.
type Reporter struct {
	l        log.Logger
	sessions *Store
	habits   *habit.Store
	tasks    repository.TaskRepository
	now      func() time.Time
}

// NewReporter creates a reporter.
func NewReporter(l log.Logger, sessions *Store, habits *habit.Store, tasks repository.TaskRepository) *Reporter {
	return &Reporter{
		l:        l,
		sessions: sessions,
		habits:   habits,
		tasks:    tasks,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetNow overrides the clock for testing purposes.
func (r *Reporter) SetNow(now func() time.Time) {
	r.now = now
}

// Summary is the aggregated last-7-days view.
type Summary struct {
	WorkSessions   int
	HabitLogs      int
	CompletedTasks int
	OpenTasks      int
	Score          int
	Trend          string
}

// Build computes the summary over the trailing week.
func (r *Reporter) Build(ctx context.Context) (Summary, error) {
	now := r.now()
	cutoff := now.AddDate(0, 0, -lookbackDays)

	work, err := r.sessions.WorkSessionsSince(ctx, cutoff)
	if err != nil {
		return Summary{}, err
	}
	logs, err := r.habits.LogsSince(ctx, cutoff)
	if err != nil {
		return Summary{}, err
	}

	var completed, open int
	for _, t := range r.tasks.Query(ctx, repository.DefaultQueryLimit) {
		if t.Status == model.StatusCompleted {
			completed++
		} else {
			open++
		}
	}

	score := work*workWeight + logs*habitWeight + completed*completedWeight
	return Summary{
		WorkSessions:   work,
		HabitLogs:      logs,
		CompletedTasks: completed,
		OpenTasks:      open,
		Score:          score,
		Trend:          trendLabel(score),
	}, nil
}

func trendLabel(score int) string {
	switch {
	case score >= trendOnFire:
		return "On fire"
	case score >= trendStrong:
		return "Strong momentum"
	case score >= trendSteady:
		return "Steady progress"
	default:
		return "Building habits"
	}
}

// Format renders the full summary message: headline counts, the trend label,
// and a Monday-anchored table of this week's daily activity.
func (r *Reporter) Format(ctx context.Context) (string, error) {
	sum, err := r.Build(ctx)
	if err != nil {
		r.l.Errorf(ctx, "analytics.Reporter.Format: %v", err)
		return "", err
	}

	now := r.now()
	cutoff := now.AddDate(0, 0, -lookbackDays)
	workByDay, err := r.sessions.DailyWorkCounts(ctx, cutoff)
	if err != nil {
		return "", err
	}
	habitsByDay, err := r.habits.DailyCounts(ctx, cutoff)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("*Weekly summary*\n")
	fmt.Fprintf(&b, "Work sessions: %d\n", sum.WorkSessions)
	fmt.Fprintf(&b, "Habit logs: %d\n", sum.HabitLogs)
	fmt.Fprintf(&b, "Tasks completed: %d (%d still open)\n", sum.CompletedTasks, sum.OpenTasks)
	fmt.Fprintf(&b, "Activity score: %d\n", sum.Score)
	fmt.Fprintf(&b, "Trend: %s\n\n", sum.Trend)

	b.WriteString("*This week*\n")
	monday := startOfWeek(now)
	for i := 0; i < 7; i++ {
		day := monday.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		marker := ""
		if key == now.Format("2006-01-02") {
			marker = " (today)"
		}
		fmt.Fprintf(&b, "%s%s: %d work, %d habits\n",
			day.Format("Mon"), marker, workByDay[key], habitsByDay[key])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// startOfWeek returns midnight of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	day := t.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, t.Location())
}
