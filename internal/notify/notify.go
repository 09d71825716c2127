// Package notify schedules the daily reminder and evening nudge messages.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kairos/internal/analytics"
	"kairos/internal/habit"
	"kairos/internal/model"
	"kairos/internal/scheduler"
	"kairos/internal/task/repository"
	"kairos/pkg/log"
	"kairos/pkg/sendgrid"
)

// Daily job schedule.
const (
	reminderHour = 8
	nudgeHour    = 18

	reminderWindow = 24 * time.Hour
	nudgeTarget    = 2
)

// Sender delivers a message to a chat.
type Sender func(ctx context.Context, chatID int64, text string)

// Service registers per-user daily jobs and builds their message bodies.
type Service struct {
	l        log.Logger
	sched    *scheduler.Scheduler
	tasks    repository.TaskRepository
	sessions *analytics.Store
	habits   *habit.Store
	send     Sender
	mail     *sendgrid.Client
	mailTo   string
	now      func() time.Time
}

// New creates a notify service. mail may be nil when email delivery is not
// configured.
func New(l log.Logger, sched *scheduler.Scheduler, tasks repository.TaskRepository,
	sessions *analytics.Store, habits *habit.Store, send Sender, mail *sendgrid.Client, mailTo string) *Service {
	return &Service{
		l:        l,
		sched:    sched,
		tasks:    tasks,
		sessions: sessions,
		habits:   habits,
		send:     send,
		mail:     mail,
		mailTo:   mailTo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetNow overrides the clock for testing purposes.
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// EnableReminders schedules the 08:00 due-soon reminder for the user.
// Re-enabling replaces the existing job.
func (s *Service) EnableReminders(ctx context.Context, userID, chatID int64) string {
	err := s.sched.ScheduleDaily(reminderJob(userID), reminderHour, 0, func() {
		s.runReminder(chatID)
	})
	if err != nil {
		s.l.Errorf(ctx, "notify.Service.EnableReminders: %v", err)
		return "Could not schedule reminders, try again later."
	}
	return "Daily reminders on. I'll ping you at 08:00 with tasks due soon."
}

// DisableReminders cancels the user's reminder job.
func (s *Service) DisableReminders(userID int64) string {
	if s.sched.Cancel(reminderJob(userID)) {
		return "Daily reminders off."
	}
	return "Reminders were not on."
}

// EnableNudges schedules the 18:00 activity nudge for the user.
func (s *Service) EnableNudges(ctx context.Context, userID, chatID int64) string {
	err := s.sched.ScheduleDaily(nudgeJob(userID), nudgeHour, 0, func() {
		s.runNudge(userID, chatID)
	})
	if err != nil {
		s.l.Errorf(ctx, "notify.Service.EnableNudges: %v", err)
		return "Could not schedule nudges, try again later."
	}
	return "Evening nudges on. I'll check in at 18:00."
}

// DisableNudges cancels the user's nudge job.
func (s *Service) DisableNudges(userID int64) string {
	if s.sched.Cancel(nudgeJob(userID)) {
		return "Evening nudges off."
	}
	return "Nudges were not on."
}

// RemindersEnabled reports whether the user's reminder job exists.
func (s *Service) RemindersEnabled(userID int64) bool {
	return s.sched.Has(reminderJob(userID))
}

// NudgesEnabled reports whether the user's nudge job exists.
func (s *Service) NudgesEnabled(userID int64) bool {
	return s.sched.Has(nudgeJob(userID))
}

// runReminder sends the due-soon digest. Nothing due means nothing sent.
func (s *Service) runReminder(chatID int64) {
	ctx := context.Background()
	text := s.BuildReminder(ctx)
	if text == "" {
		return
	}
	s.send(ctx, chatID, text)
	if s.mail != nil && s.mailTo != "" {
		if err := s.mail.Send(ctx, s.mailTo, "Tasks due soon", text); err != nil {
			s.l.Warnf(ctx, "notify.Service.runReminder email: %v", err)
		}
	}
}

// BuildReminder lists incomplete tasks due between the start of today and
// 24 hours from now. Older overdue tasks stay out of the digest. Returns the
// empty string when there is nothing to report.
func (s *Service) BuildReminder(ctx context.Context) string {
	now := s.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	deadline := now.Add(reminderWindow)

	var due []string
	for _, t := range s.tasks.Query(ctx, repository.DefaultQueryLimit) {
		if t.Status == model.StatusCompleted || t.DueDate == nil {
			continue
		}
		if t.DueDate.Before(dayStart) || t.DueDate.After(deadline) {
			continue
		}
		due = append(due, fmt.Sprintf("- %s (due %s)", t.Name, t.DueDate.Format("Jan 02")))
	}
	if len(due) == 0 {
		return ""
	}
	return "*Due within 24 hours*\n" + strings.Join(due, "\n")
}

// runNudge sends the evening check-in when today's activity is light.
func (s *Service) runNudge(userID, chatID int64) {
	ctx := context.Background()
	text, err := s.BuildNudge(ctx, userID)
	if err != nil {
		s.l.Warnf(ctx, "notify.Service.runNudge: %v", err)
		return
	}
	if text == "" {
		return
	}
	s.send(ctx, chatID, text)
}

// BuildNudge inspects today's sessions and habit logs. No activity at all
// prompts a start; light activity asks for one more session; a solid day
// yields no message.
func (s *Service) BuildNudge(ctx context.Context, userID int64) (string, error) {
	sessions, err := s.sessions.WorkSessionsToday(ctx, userID)
	if err != nil {
		return "", err
	}
	logs, err := s.habits.LogsToday(ctx)
	if err != nil {
		return "", err
	}
	switch {
	case sessions == 0 && logs == 0:
		return "Nothing logged today. A single /pomodoro_start still counts.", nil
	case sessions < nudgeTarget:
		return fmt.Sprintf("%d focus session(s) so far today. One more would round it off: /pomodoro_start", sessions), nil
	default:
		return "", nil
	}
}

func reminderJob(userID int64) string {
	return fmt.Sprintf("daily_reminder_%d", userID)
}

func nudgeJob(userID int64) string {
	return fmt.Sprintf("daily_nudge_%d", userID)
}
