package view_test

import (
	"strings"
	"testing"
	"time"

	"kairos/internal/model"
	"kairos/internal/view"
	"kairos/pkg/dateparse"
)

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newFormatter(t *testing.T) *view.Formatter {
	t.Helper()
	dates, err := dateparse.NewParser("UTC")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	f := view.New(dates)
	f.SetNow(func() time.Time { return testNow })
	return f
}

func dayPtr(offset int) *time.Time {
	d := testNow.AddDate(0, 0, offset)
	return &d
}

func task(name string, status model.Status, due *time.Time) model.Task {
	return model.Task{Name: name, Status: status, Priority: model.PriorityMedium, DueDate: due}
}

func TestFilterByDate_Today(t *testing.T) {
	f := newFormatter(t)
	tasks := []model.Task{
		task("a", model.StatusNotStarted, dayPtr(0)),
		task("b", model.StatusNotStarted, dayPtr(1)),
		task("c", model.StatusNotStarted, nil),
	}

	got := f.FilterByDate(tasks, view.FilterToday)
	if len(got) != 1 || got[0].Name != "a" {
		t.Errorf("FilterToday = %v", names(got))
	}
}

func TestFilterByDate_WeekSpansEightDaysInclusive(t *testing.T) {
	f := newFormatter(t)
	tasks := []model.Task{
		task("today", model.StatusNotStarted, dayPtr(0)),
		task("plus7", model.StatusNotStarted, dayPtr(7)),
		task("plus8", model.StatusNotStarted, dayPtr(8)),
		task("yesterday", model.StatusNotStarted, dayPtr(-1)),
	}

	got := f.FilterByDate(tasks, view.FilterWeek)
	if len(got) != 2 || got[0].Name != "today" || got[1].Name != "plus7" {
		t.Errorf("FilterWeek = %v", names(got))
	}
}

func TestFilterByDate_ExcludesNoDateUnderFilter(t *testing.T) {
	f := newFormatter(t)
	tasks := []model.Task{task("nodate", model.StatusNotStarted, nil)}

	if got := f.FilterByDate(tasks, view.FilterWeek); len(got) != 0 {
		t.Errorf("expected no-date task excluded, got %v", names(got))
	}
}

func TestFilterByDate_Idempotent(t *testing.T) {
	f := newFormatter(t)
	tasks := []model.Task{
		task("a", model.StatusNotStarted, dayPtr(0)),
		task("b", model.StatusNotStarted, dayPtr(2)),
	}

	once := f.FilterByDate(tasks, view.FilterWeek)
	twice := f.FilterByDate(once, view.FilterWeek)
	if len(once) != len(twice) {
		t.Errorf("re-filter changed result: %v vs %v", names(once), names(twice))
	}
}

func TestFormatTaskList_BucketsAndTruncation(t *testing.T) {
	f := newFormatter(t)
	var tasks []model.Task
	for _, n := range []string{"n1", "n2", "n3", "n4"} {
		tasks = append(tasks, task(n, model.StatusNotStarted, dayPtr(1)))
	}
	tasks = append(tasks, task("p1", model.StatusInProgress, nil))
	tasks = append(tasks, task("d1", model.StatusCompleted, nil))

	out := f.FormatTaskList(tasks, view.FilterNone, false)

	for _, header := range []string{"*IN PROGRESS*", "*NOT STARTED*", "*COMPLETED*"} {
		if !strings.Contains(out, header) {
			t.Errorf("missing header %q in:\n%s", header, out)
		}
	}
	// In-progress bucket must come first.
	if strings.Index(out, "*IN PROGRESS*") > strings.Index(out, "*NOT STARTED*") {
		t.Error("bucket order wrong")
	}
	if strings.Contains(out, "n4") {
		t.Errorf("bucket not truncated to 3:\n%s", out)
	}
	if !strings.Contains(out, "No date") {
		t.Errorf("expected No date rendering:\n%s", out)
	}
}

func TestFormatTaskList_ShowAll(t *testing.T) {
	f := newFormatter(t)
	var tasks []model.Task
	for _, n := range []string{"n1", "n2", "n3", "n4"} {
		tasks = append(tasks, task(n, model.StatusNotStarted, nil))
	}

	out := f.FormatTaskList(tasks, view.FilterNone, true)
	if !strings.Contains(out, "n4") {
		t.Errorf("showAll lost entries:\n%s", out)
	}
}

func TestFormatTaskList_OtherBucketNeverTruncated(t *testing.T) {
	f := newFormatter(t)
	var tasks []model.Task
	for _, n := range []string{"o1", "o2", "o3", "o4", "o5"} {
		tasks = append(tasks, task(n, model.Status("Blocked"), nil))
	}

	out := f.FormatTaskList(tasks, view.FilterNone, false)
	if !strings.Contains(out, "*OTHER*") {
		t.Fatalf("missing OTHER bucket:\n%s", out)
	}
	if !strings.Contains(out, "o5") {
		t.Errorf("other bucket truncated:\n%s", out)
	}
}

func TestFormatTaskList_EmptyMessages(t *testing.T) {
	f := newFormatter(t)

	cases := []struct {
		filter view.DateFilter
		want   string
	}{
		{view.FilterNone, "No tasks found."},
		{view.FilterToday, "No tasks found for today."},
		{view.FilterTomorrow, "No tasks found for tomorrow."},
		{view.FilterWeek, "No tasks found for this week."},
	}
	for _, tc := range cases {
		if got := f.FormatTaskList(nil, tc.filter, false); got != tc.want {
			t.Errorf("FormatTaskList(nil, %q) = %q, want %q", tc.filter, got, tc.want)
		}
	}
}

func names(tasks []model.Task) []string {
	var out []string
	for _, t := range tasks {
		out = append(out, t.Name)
	}
	return out
}
