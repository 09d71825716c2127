package habit

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kairos/pkg/log"
)

// Service wraps the store with user-facing message composition.
type Service struct {
	l     log.Logger
	store *Store
}

// NewService creates a habit service.
func NewService(l log.Logger, store *Store) *Service {
	return &Service{l: l, store: store}
}

// Add registers a habit and returns a confirmation message.
func (s *Service) Add(ctx context.Context, name string) (string, error) {
	if err := s.store.Add(ctx, name); err != nil {
		if errors.Is(err, ErrEmptyName) {
			return "Usage: /habit_add <name>", nil
		}
		s.l.Errorf(ctx, "habit.Service.Add: %v", err)
		return "", err
	}
	return fmt.Sprintf("Habit %q is being tracked. Log it with /habit_log %s", strings.TrimSpace(name), strings.TrimSpace(name)), nil
}

// Log records a completion for today and reports the running streak.
func (s *Service) Log(ctx context.Context, name string) (string, error) {
	if err := s.store.Log(ctx, name); err != nil {
		if errors.Is(err, ErrEmptyName) {
			return "Usage: /habit_log <name>", nil
		}
		if errors.Is(err, ErrNotFound) {
			return fmt.Sprintf("Habit %q not found. Add it first with /habit_add %s", strings.TrimSpace(name), strings.TrimSpace(name)), nil
		}
		s.l.Errorf(ctx, "habit.Service.Log: %v", err)
		return "", err
	}
	streak, err := s.store.Streak(ctx, name)
	if err != nil {
		s.l.Warnf(ctx, "habit.Service.Log streak: %v", err)
		return fmt.Sprintf("Logged %q.", strings.TrimSpace(name)), nil
	}
	return fmt.Sprintf("Logged %q. Current streak: %d day(s).", strings.TrimSpace(name), streak), nil
}

// List formats all habits with their totals.
func (s *Service) List(ctx context.Context) (string, error) {
	entries, err := s.store.List(ctx)
	if err != nil {
		s.l.Errorf(ctx, "habit.Service.List: %v", err)
		return "", err
	}
	if len(entries) == 0 {
		return "No habits yet. Add one with /habit_add <name>", nil
	}
	var b strings.Builder
	b.WriteString("*Your habits*\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "- %s: %d log(s)\n", e.Name, e.Count)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// Streak formats the current streak for one habit.
func (s *Service) Streak(ctx context.Context, name string) (string, error) {
	streak, err := s.store.Streak(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Sprintf("Habit %q not found.", strings.TrimSpace(name)), nil
		}
		s.l.Errorf(ctx, "habit.Service.Streak: %v", err)
		return "", err
	}
	if streak == 0 {
		return fmt.Sprintf("No logs yet for %q. Start today with /habit_log %s", strings.TrimSpace(name), strings.TrimSpace(name)), nil
	}
	return fmt.Sprintf("%q streak: %d day(s). Keep it going.", strings.TrimSpace(name), streak), nil
}
