// Package view renders task records into grouped, truncated chat text.
package view

import (
	"fmt"
	"strings"
	"time"

	"kairos/internal/model"
	"kairos/pkg/dateparse"
)

// DateFilter restricts a listing to tasks due in a window.
type DateFilter string

const (
	FilterNone     DateFilter = ""
	FilterToday    DateFilter = "today"
	FilterTomorrow DateFilter = "tomorrow"
	FilterWeek     DateFilter = "week"
)

// bucketLimit is how many tasks each status bucket shows unless show-all is
// set.
const bucketLimit = 3

var priorityMarker = map[model.Priority]string{
	model.PriorityHigh:   "🔴",
	model.PriorityMedium: "🟡",
	model.PriorityLow:    "🔵",
}

// Formatter renders task lists.
type Formatter struct {
	dates *dateparse.Parser
	now   func() time.Time
}

// New creates a formatter using dates for day arithmetic.
func New(dates *dateparse.Parser) *Formatter {
	return &Formatter{dates: dates, now: time.Now}
}

// SetNow overrides the clock for testing purposes.
func (f *Formatter) SetNow(now func() time.Time) {
	f.now = now
}

// FilterByDate returns the subset of tasks whose due date falls in the
// filter's window. Tasks without a due date are always excluded under an
// active filter. The week window spans today through today+7 inclusive,
// matching the long-standing behavior downstream users rely on.
func (f *Formatter) FilterByDate(tasks []model.Task, filter DateFilter) []model.Task {
	if filter == FilterNone {
		return tasks
	}

	today := f.dates.StartOfDay(f.now())
	var from, to time.Time
	switch filter {
	case FilterToday:
		from, to = today, today
	case FilterTomorrow:
		from, to = today.AddDate(0, 0, 1), today.AddDate(0, 0, 1)
	case FilterWeek:
		from, to = today, today.AddDate(0, 0, 7)
	default:
		return tasks
	}

	filtered := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := f.dates.StartOfDay(*t.DueDate)
		if !due.Before(from) && !due.After(to) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// FormatTaskList renders tasks grouped by status. Each of the three known
// buckets is truncated to three entries unless showAll is set; tasks with
// unknown statuses go to a trailing Other bucket that is never truncated.
func (f *Formatter) FormatTaskList(tasks []model.Task, filter DateFilter, showAll bool) string {
	if filter != FilterNone {
		tasks = f.FilterByDate(tasks, filter)
	}

	if len(tasks) == 0 {
		switch filter {
		case FilterToday:
			return "No tasks found for today."
		case FilterTomorrow:
			return "No tasks found for tomorrow."
		case FilterWeek:
			return "No tasks found for this week."
		}
		return "No tasks found."
	}

	buckets := map[model.Status][]string{}
	var other []string
	for _, t := range tasks {
		line := f.taskLine(t)
		switch t.Status {
		case model.StatusInProgress, model.StatusNotStarted, model.StatusCompleted:
			buckets[t.Status] = append(buckets[t.Status], line)
		default:
			other = append(other, line)
		}
	}

	limit := -1
	if !showAll {
		limit = bucketLimit
	}

	var sections []string
	appendBucket := func(header string, lines []string, max int) {
		if len(lines) == 0 {
			return
		}
		if max >= 0 && len(lines) > max {
			lines = lines[:max]
		}
		sections = append(sections, "*"+header+"*\n"+strings.Join(lines, "\n"))
	}

	appendBucket("IN PROGRESS", buckets[model.StatusInProgress], limit)
	appendBucket("NOT STARTED", buckets[model.StatusNotStarted], limit)
	appendBucket("COMPLETED", buckets[model.StatusCompleted], limit)
	appendBucket("OTHER", other, -1)

	out := strings.TrimSpace(strings.Join(sections, "\n\n"))
	if out == "" {
		return "No tasks found."
	}
	return out
}

func (f *Formatter) taskLine(t model.Task) string {
	marker, ok := priorityMarker[t.Priority]
	if !ok {
		marker = priorityMarker[model.PriorityLow]
	}

	dateStr := "No date"
	if t.DueDate != nil {
		dateStr = "Due: " + t.DueDate.Format("Jan 02, 2006")
	}
	return fmt.Sprintf("%s %s — %s", marker, t.Name, dateStr)
}
