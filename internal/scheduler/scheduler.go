// Package scheduler runs named recurring and one-shot jobs. Job names are
// the only de-duplication mechanism: scheduling under an existing name
// cancels the previous job first.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler owns a cron runner for daily jobs and a timer table for
// one-shot delayed callbacks. Safe for concurrent use.
type Scheduler struct {
	cron *cron.Cron

	mu    sync.Mutex
	daily map[string]cron.EntryID
	once  map[string]*time.Timer
}

// New creates a scheduler firing in the given timezone.
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:  cron.New(cron.WithLocation(loc)),
		daily: make(map[string]cron.EntryID),
		once:  make(map[string]*time.Timer),
	}
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops the cron runner and cancels all pending one-shot timers.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, timer := range s.once {
		timer.Stop()
		delete(s.once, name)
	}
}

// ScheduleDaily registers fn to run every day at hour:minute under name,
// replacing any existing job of that name.
func (s *Scheduler) ScheduleDaily(name string, hour, minute int, fn func()) error {
	spec := fmt.Sprintf("%d %d * * *", minute, hour)

	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.daily[name]; ok {
		s.cron.Remove(id)
		delete(s.daily, name)
	}

	id, err := s.cron.AddFunc(spec, fn)
	if err != nil {
		return fmt.Errorf("scheduler: invalid daily spec %q: %w", spec, err)
	}
	s.daily[name] = id
	return nil
}

// ScheduleOnce registers fn to fire once after d under name, replacing any
// existing one-shot of that name. The entry removes itself when it fires.
func (s *Scheduler) ScheduleOnce(name string, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.once[name]; ok {
		timer.Stop()
		delete(s.once, name)
	}

	s.once[name] = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.once, name)
		s.mu.Unlock()
		fn()
	})
}

// Cancel removes the job registered under name, reporting whether one
// existed.
func (s *Scheduler) Cancel(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := false
	if id, ok := s.daily[name]; ok {
		s.cron.Remove(id)
		delete(s.daily, name)
		removed = true
	}
	if timer, ok := s.once[name]; ok {
		timer.Stop()
		delete(s.once, name)
		removed = true
	}
	return removed
}

// Has reports whether a job is registered under name.
func (s *Scheduler) Has(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, daily := s.daily[name]
	_, once := s.once[name]
	return daily || once
}
