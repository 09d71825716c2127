// Package pomodoro runs one focus or break timer per user and records
// finished sessions for the weekly summary.
package pomodoro

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kairos/internal/analytics"
	"kairos/internal/scheduler"
	"kairos/pkg/log"
)

// Timer durations.
const (
	WorkDuration  = 25 * time.Minute
	BreakDuration = 5 * time.Minute
)

// Notifier delivers the completion message to the user's chat.
type Notifier func(ctx context.Context, chatID int64, text string)

// ActiveTimer is the in-flight timer for one user.
type ActiveTimer struct {
	Kind    string
	EndTime time.Time
	Task    string
	ChatID  int64
}

// Manager owns per-user timers. A user has at most one running timer; a
// second start is rejected with the remaining time.
type Manager struct {
	l        log.Logger
	sched    *scheduler.Scheduler
	sessions *analytics.Store
	notify   Notifier
	now      func() time.Time

	mu     sync.Mutex
	active map[int64]ActiveTimer
}

// New creates a pomodoro manager.
func New(l log.Logger, sched *scheduler.Scheduler, sessions *analytics.Store, notify Notifier) *Manager {
	return &Manager{
		l:        l,
		sched:    sched,
		sessions: sessions,
		notify:   notify,
		now:      func() time.Time { return time.Now().UTC() },
		active:   map[int64]ActiveTimer{},
	}
}

// SetNow overrides the clock for testing purposes.
func (m *Manager) SetNow(now func() time.Time) {
	m.now = now
}

// StartWork begins a 25 minute focus timer, optionally tagged with a task
// name.
func (m *Manager) StartWork(ctx context.Context, userID, chatID int64, task string) string {
	return m.start(ctx, userID, chatID, analytics.KindWork, WorkDuration, task)
}

// StartBreak begins a 5 minute break timer.
func (m *Manager) StartBreak(ctx context.Context, userID, chatID int64) string {
	return m.start(ctx, userID, chatID, analytics.KindBreak, BreakDuration, "")
}

func (m *Manager) start(ctx context.Context, userID, chatID int64, kind string, d time.Duration, task string) string {
	m.mu.Lock()
	if cur, ok := m.active[userID]; ok {
		remaining := formatRemaining(cur.EndTime.Sub(m.now()))
		m.mu.Unlock()
		return fmt.Sprintf("A %s timer is already running (%s left). Stop it with /pomodoro_stop first.", cur.Kind, remaining)
	}
	m.active[userID] = ActiveTimer{
		Kind:    kind,
		EndTime: m.now().Add(d),
		Task:    task,
		ChatID:  chatID,
	}
	m.mu.Unlock()

	if err := m.sessions.LogSessionStart(ctx, userID, kind, task); err != nil {
		m.l.Warnf(ctx, "pomodoro.Manager.start log session: %v", err)
	}

	m.sched.ScheduleOnce(jobName(kind, userID), d, func() {
		m.complete(userID, kind)
	})

	if kind == analytics.KindBreak {
		return fmt.Sprintf("Break started. Back in %d minutes.", int(d.Minutes()))
	}
	if task != "" {
		return fmt.Sprintf("Focus timer started for %q. %d minutes on the clock.", task, int(d.Minutes()))
	}
	return fmt.Sprintf("Focus timer started. %d minutes on the clock.", int(d.Minutes()))
}

// complete fires when a timer runs out. A missing entry means the timer was
// stopped in the meantime and there is nothing to announce.
func (m *Manager) complete(userID int64, kind string) {
	m.mu.Lock()
	cur, ok := m.active[userID]
	if !ok || cur.Kind != kind {
		m.mu.Unlock()
		return
	}
	delete(m.active, userID)
	m.mu.Unlock()

	ctx := context.Background()
	if err := m.sessions.LogSessionEnd(ctx, userID, kind); err != nil {
		m.l.Warnf(ctx, "pomodoro.Manager.complete log session: %v", err)
	}

	text := "Break is over. Ready for another focus session? /pomodoro_start"
	if kind == analytics.KindWork {
		text = "Focus session complete. Take a break with /pomodoro_break"
		if cur.Task != "" {
			text = fmt.Sprintf("Focus session on %q complete. Take a break with /pomodoro_break", cur.Task)
		}
	}
	m.notify(ctx, cur.ChatID, text)
}

// Status reports the user's running timer, if any.
func (m *Manager) Status(userID int64) string {
	m.mu.Lock()
	cur, ok := m.active[userID]
	m.mu.Unlock()
	if !ok {
		return "No timer running. Start one with /pomodoro_start"
	}
	remaining := formatRemaining(cur.EndTime.Sub(m.now()))
	if cur.Kind == analytics.KindWork && cur.Task != "" {
		return fmt.Sprintf("Focusing on %q, %s remaining.", cur.Task, remaining)
	}
	return fmt.Sprintf("%s timer running, %s remaining.", capitalize(cur.Kind), remaining)
}

// Stop cancels the user's running timer and closes its session row.
func (m *Manager) Stop(ctx context.Context, userID int64) string {
	m.mu.Lock()
	cur, ok := m.active[userID]
	if ok {
		delete(m.active, userID)
	}
	m.mu.Unlock()
	if !ok {
		return "No timer to stop."
	}

	m.sched.Cancel(jobName(analytics.KindWork, userID))
	m.sched.Cancel(jobName(analytics.KindBreak, userID))

	if err := m.sessions.LogSessionEnd(ctx, userID, cur.Kind); err != nil {
		m.l.Warnf(ctx, "pomodoro.Manager.Stop log session: %v", err)
	}
	return fmt.Sprintf("%s timer stopped.", capitalize(cur.Kind))
}

func jobName(kind string, userID int64) string {
	return fmt.Sprintf("pomodoro_%s_%d", kind, userID)
}

// formatRemaining renders a duration as MM:SS, clamping at zero.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Truncate(time.Second).Seconds())
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
