// Package recommend ranks open tasks by a priority/due-date heuristic.
package recommend

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"kairos/internal/model"
	"kairos/pkg/dateparse"
)

// DefaultLimit is how many recommendations are returned by default.
const DefaultLimit = 3

const priorityFactor = 15

// urgency steps by days-until-due.
const (
	urgencyOverdueBase = 25
	urgencyOverdueCap  = 40
	urgencyToday       = 20
	urgencyTomorrow    = 16
	urgencyThreeDays   = 12
	urgencyWeek        = 8
	urgencyLater       = 4
	urgencyNoDate      = 2
)

// Scorer ranks tasks.
type Scorer struct {
	dates *dateparse.Parser
	now   func() time.Time
}

// New creates a scorer using dates for day arithmetic.
func New(dates *dateparse.Parser) *Scorer {
	return &Scorer{dates: dates, now: time.Now}
}

// SetNow overrides the clock for testing purposes.
func (s *Scorer) SetNow(now func() time.Time) {
	s.now = now
}

// Score computes a task's recommendation score. Higher is more urgent.
func (s *Scorer) Score(t model.Task) int {
	weight := t.Priority.Weight()
	return weight*priorityFactor + s.urgency(t, weight)
}

func (s *Scorer) urgency(t model.Task, weight int) int {
	if t.DueDate == nil {
		return urgencyNoDate
	}

	today := s.dates.StartOfDay(s.now())
	due := s.dates.StartOfDay(*t.DueDate)
	days := int(due.Sub(today).Hours() / 24)

	switch {
	case days < 0:
		// Overdue tasks outrank everything; scale by priority, capped.
		u := urgencyOverdueBase + 5*weight
		if u > urgencyOverdueCap {
			u = urgencyOverdueCap
		}
		return u
	case days == 0:
		return urgencyToday
	case days == 1:
		return urgencyTomorrow
	case days <= 3:
		return urgencyThreeDays
	case days <= 7:
		return urgencyWeek
	default:
		return urgencyLater
	}
}

// Recommend returns the top-limit open tasks sorted by score descending.
// Completed tasks are excluded; ties keep input order.
func (s *Scorer) Recommend(tasks []model.Task, limit int) []model.Task {
	if limit <= 0 {
		limit = DefaultLimit
	}

	open := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == model.StatusCompleted {
			continue
		}
		open = append(open, t)
	}

	sort.SliceStable(open, func(i, j int) bool {
		return s.Score(open[i]) > s.Score(open[j])
	})

	if len(open) > limit {
		open = open[:limit]
	}
	return open
}

// FormatRecommendations renders ranked tasks as a numbered list.
func FormatRecommendations(tasks []model.Task) string {
	if len(tasks) == 0 {
		return "No recommendations right now."
	}

	lines := []string{"Try these next:"}
	for i, t := range tasks {
		dueStr := "No date"
		if t.DueDate != nil {
			dueStr = t.DueDate.Format("Jan 02, 2006")
		}
		lines = append(lines, fmt.Sprintf("%d. %s — %s priority — Due: %s", i+1, t.Name, t.Priority, dueStr))
	}
	return strings.Join(lines, "\n")
}
