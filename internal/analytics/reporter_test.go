package analytics_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"kairos/internal/analytics"
	"kairos/internal/habit"
	"kairos/internal/model"
	"kairos/internal/storage"
	"kairos/internal/task/repository"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Info(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, args ...interface{})                  {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...interface{})  {}
func (m *mockLogger) Error(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...interface{}) {}
func (m *mockLogger) Fatal(ctx context.Context, args ...interface{})                 {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...interface{}) {}

type mockTaskRepo struct {
	tasks []model.Task
}

func (m *mockTaskRepo) Query(ctx context.Context, limit int) []model.Task {
	return m.tasks
}
func (m *mockTaskRepo) Create(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	return model.Task{}, nil
}
func (m *mockTaskRepo) FindByName(ctx context.Context, name string) (model.Task, bool, error) {
	return model.Task{}, false, nil
}
func (m *mockTaskRepo) UpdateStatus(ctx context.Context, recordID string, status model.Status) error {
	return nil
}
func (m *mockTaskRepo) UpdateDueDate(ctx context.Context, recordID string, due time.Time) error {
	return nil
}
func (m *mockTaskRepo) Archive(ctx context.Context, recordID string) error { return nil }

func newReporter(t *testing.T, tasks []model.Task) (*analytics.Reporter, *analytics.Store, *habit.Store) {
	t.Helper()
	db, err := storage.NewMemory()
	if err != nil {
		t.Fatalf("NewMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	sessions := analytics.New(db.DB())
	sessions.SetNow(func() time.Time { return testNow })
	habits := habit.New(db.DB())
	habits.SetNow(func() time.Time { return testNow })

	r := analytics.NewReporter(&mockLogger{}, sessions, habits, &mockTaskRepo{tasks: tasks})
	r.SetNow(func() time.Time { return testNow })
	return r, sessions, habits
}

func TestBuild_ScoreAndTrend(t *testing.T) {
	tasks := []model.Task{
		{Name: "done1", Status: model.StatusCompleted},
		{Name: "done2", Status: model.StatusCompleted},
		{Name: "open", Status: model.StatusInProgress},
	}
	r, sessions, habits := newReporter(t, tasks)
	ctx := context.Background()

	// 3 work sessions, 2 habit logs, 2 completed tasks:
	// score = 3*2 + 2*1 + 2*3 = 14 -> "Building habits".
	for i := 0; i < 3; i++ {
		if err := sessions.LogSessionStart(ctx, 1, analytics.KindWork, ""); err != nil {
			t.Fatalf("LogSessionStart: %v", err)
		}
	}
	if err := habits.Add(ctx, "reading"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := habits.Log(ctx, "reading"); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	sum, err := r.Build(ctx)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sum.WorkSessions != 3 || sum.HabitLogs != 2 || sum.CompletedTasks != 2 || sum.OpenTasks != 1 {
		t.Errorf("summary = %+v", sum)
	}
	if sum.Score != 14 {
		t.Errorf("Score = %d, want 14", sum.Score)
	}
	if sum.Trend != "Building habits" {
		t.Errorf("Trend = %q", sum.Trend)
	}
}

func TestTrendThresholds(t *testing.T) {
	// 25 completed tasks push the score to 75: "On fire".
	var tasks []model.Task
	for i := 0; i < 25; i++ {
		tasks = append(tasks, model.Task{Status: model.StatusCompleted})
	}
	r, _, _ := newReporter(t, tasks)

	sum, err := r.Build(context.Background())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if sum.Trend != "On fire" {
		t.Errorf("Trend = %q, want On fire", sum.Trend)
	}
}

func TestFormat_MondayAnchoredTable(t *testing.T) {
	r, _, _ := newReporter(t, nil)

	out, err := r.Format(context.Background())
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	// testNow is Tuesday 2026-03-10; the table runs Mon..Sun with the
	// marker mid-table.
	lines := strings.Split(out, "\n")
	var dayLines []string
	for _, l := range lines {
		for _, d := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
			if strings.HasPrefix(l, d) {
				dayLines = append(dayLines, l)
				break
			}
		}
	}
	if len(dayLines) != 7 {
		t.Fatalf("got %d day rows, want 7:\n%s", len(dayLines), out)
	}
	if !strings.HasPrefix(dayLines[0], "Mon") {
		t.Errorf("first row = %q, want Monday anchor", dayLines[0])
	}
	if !strings.Contains(dayLines[1], "(today)") {
		t.Errorf("Tuesday row missing (today) marker: %q", dayLines[1])
	}
	if !strings.HasPrefix(dayLines[6], "Sun") {
		t.Errorf("last row = %q, want Sunday", dayLines[6])
	}
}
