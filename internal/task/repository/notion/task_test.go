package notion_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kairos/internal/model"
	"kairos/internal/task/repository"
	repoNotion "kairos/internal/task/repository/notion"
	pkgNotion "kairos/pkg/notion"
)

type mockLogger struct{}

func (mockLogger) Debug(ctx context.Context, args ...interface{})                 {}
func (mockLogger) Debugf(ctx context.Context, format string, args ...interface{}) {}
func (mockLogger) Info(ctx context.Context, args ...interface{})                  {}
func (mockLogger) Infof(ctx context.Context, format string, args ...interface{})  {}
func (mockLogger) Warn(ctx context.Context, args ...interface{})                  {}
func (mockLogger) Warnf(ctx context.Context, format string, args ...interface{})  {}
func (mockLogger) Error(ctx context.Context, args ...interface{})                 {}
func (mockLogger) Errorf(ctx context.Context, format string, args ...interface{}) {}
func (mockLogger) Fatal(ctx context.Context, args ...interface{})                 {}
func (mockLogger) Fatalf(ctx context.Context, format string, args ...interface{}) {}

const queryBody = `{
	"results": [
		{
			"id": "page-1",
			"properties": {
				"Task": {"title": [{"plain_text": "Math homework"}]},
				"Status": {"status": {"name": "in progress"}},
				"Priority": {"select": {"name": "HIGH"}},
				"Due date": {"date": {"start": "2026-03-10T00:00:00.000Z"}},
				"Project": {"rich_text": [{"plain_text": "School"}]}
			}
		},
		{
			"id": "page-2",
			"properties": {
				"Task": {"title": []},
				"Status": {"status": {"name": "Blocked"}}
			}
		}
	]
}`

func newTestRepo(t *testing.T, handler http.HandlerFunc) repository.TaskRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := pkgNotion.NewClient("secret", "db-1", "2022-06-28")
	client.SetAPIURL(server.URL)
	return repoNotion.New(client, mockLogger{})
}

func TestQueryMapsPages(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(queryBody))
	})

	tasks := repo.Query(context.Background(), 10)
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}

	first := tasks[0]
	if first.ID != "page-1" || first.Name != "Math homework" {
		t.Errorf("unexpected first task: %+v", first)
	}
	if first.Status != model.StatusInProgress {
		t.Errorf("expected normalized status, got %q", first.Status)
	}
	if first.Priority != model.PriorityHigh {
		t.Errorf("expected normalized priority, got %q", first.Priority)
	}
	if first.DueDate == nil {
		t.Fatal("expected due date to be parsed")
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !first.DueDate.Equal(want) {
		t.Errorf("expected due %v, got %v", want, *first.DueDate)
	}
	if first.Project != "School" {
		t.Errorf("expected project School, got %q", first.Project)
	}

	second := tasks[1]
	if second.Name != "Untitled" {
		t.Errorf("expected missing title to fall back to Untitled, got %q", second.Name)
	}
	if second.Status != model.Status("Blocked") {
		t.Errorf("expected unknown status preserved, got %q", second.Status)
	}
	if second.Priority != model.PriorityMedium {
		t.Errorf("expected default medium priority, got %q", second.Priority)
	}
	if second.DueDate != nil {
		t.Errorf("expected no due date, got %v", *second.DueDate)
	}
}

func TestQueryReturnsEmptyOnFailure(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	tasks := repo.Query(context.Background(), 10)
	if tasks == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(tasks) != 0 {
		t.Errorf("expected no tasks, got %d", len(tasks))
	}
}

func TestCreateRejectsEmptyName(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an empty name")
	})

	_, err := repo.Create(context.Background(), repository.CreateTaskOptions{Name: "   "})
	if !errors.Is(err, repoNotion.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
}

func TestCreateSendsDefaults(t *testing.T) {
	var props map[string]json.RawMessage
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Properties map[string]json.RawMessage `json:"properties"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		props = body.Properties
		w.Write([]byte(`{"id": "page-3", "properties": {"Task": {"title": [{"plain_text": "Essay"}]}}}`))
	})

	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	task, err := repo.Create(context.Background(), repository.CreateTaskOptions{
		Name:    "Essay",
		DueDate: &due,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID != "page-3" || task.Name != "Essay" {
		t.Errorf("unexpected created task: %+v", task)
	}

	var status pkgNotion.PropStatus
	if err := json.Unmarshal(props["Status"], &status); err != nil || status.Status == nil {
		t.Fatalf("missing status property: %v", err)
	}
	if status.Status.Name != string(model.StatusNotStarted) {
		t.Errorf("expected new tasks to start as Not started, got %q", status.Status.Name)
	}

	var priority pkgNotion.PropSelect
	if err := json.Unmarshal(props["Priority"], &priority); err != nil || priority.Select == nil {
		t.Fatalf("missing priority property: %v", err)
	}
	if priority.Select.Name != string(model.PriorityMedium) {
		t.Errorf("expected default medium priority, got %q", priority.Select.Name)
	}

	var date pkgNotion.PropDate
	if err := json.Unmarshal(props["Due date"], &date); err != nil || date.Date == nil {
		t.Fatalf("missing due date property: %v", err)
	}
	if date.Date.Start != "2026-09-01" {
		t.Errorf("expected date-only due value, got %q", date.Date.Start)
	}

	if _, ok := props["Project"]; ok {
		t.Error("project property should be omitted when empty")
	}
}

func TestFindByNameIsCaseInsensitive(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(queryBody))
	})

	task, found, err := repo.FindByName(context.Background(), "  MATH HOMEWORK ")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if !found {
		t.Fatal("expected task to be found")
	}
	if task.ID != "page-1" {
		t.Errorf("expected page-1, got %q", task.ID)
	}

	_, found, err = repo.FindByName(context.Background(), "chemistry lab")
	if err != nil {
		t.Fatalf("FindByName failed: %v", err)
	}
	if found {
		t.Error("expected no match for unknown name")
	}
}

func TestUpdateStatusPatchesPage(t *testing.T) {
	var path string
	var props map[string]json.RawMessage
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		var body struct {
			Properties map[string]json.RawMessage `json:"properties"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		props = body.Properties
		w.Write([]byte(`{}`))
	})

	if err := repo.UpdateStatus(context.Background(), "page-1", model.StatusCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if path != "/v1/pages/page-1" {
		t.Errorf("unexpected path %q", path)
	}

	var status pkgNotion.PropStatus
	if err := json.Unmarshal(props["Status"], &status); err != nil || status.Status == nil {
		t.Fatalf("missing status property: %v", err)
	}
	if status.Status.Name != string(model.StatusCompleted) {
		t.Errorf("expected Completed, got %q", status.Status.Name)
	}
}
