package qa_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"kairos/internal/model"
	"kairos/internal/qa"
	"kairos/internal/task/repository"
	"kairos/pkg/gemini"
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

type mockLLM struct {
	lastPrompt string
	reply      string
	err        error
}

func (m *mockLLM) GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	return nil, nil
}

func (m *mockLLM) GenerateText(ctx context.Context, prompt string, temperature float64) (string, error) {
	m.lastPrompt = prompt
	return m.reply, m.err
}

func (m *mockLLM) Model() string { return "test-model" }

type mockTaskRepo struct {
	tasks []model.Task
}

func (m *mockTaskRepo) Query(ctx context.Context, limit int) []model.Task { return m.tasks }
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

func TestReplyIncludesTaskBoard(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	llm := &mockLLM{reply: "  Start with the essay.  "}
	repo := &mockTaskRepo{tasks: []model.Task{
		{Name: "Essay", Status: model.StatusInProgress, Priority: model.PriorityHigh, DueDate: &due},
		{Name: "Laundry", Status: model.StatusNotStarted, Priority: model.PriorityLow},
	}}

	r := qa.New(&mockLogger{}, llm, repo)
	out, err := r.Reply(context.Background(), "what should I do first?", "en")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if out != "Start with the essay." {
		t.Errorf("expected trimmed reply, got %q", out)
	}

	if !strings.Contains(llm.lastPrompt, "- Essay [In progress, High], due 2026-09-01") {
		t.Errorf("prompt missing task line:\n%s", llm.lastPrompt)
	}
	if !strings.Contains(llm.lastPrompt, "- Laundry [Not started, Low]") {
		t.Errorf("prompt missing undated task line:\n%s", llm.lastPrompt)
	}
	if !strings.Contains(llm.lastPrompt, "what should I do first?") {
		t.Errorf("prompt missing user message:\n%s", llm.lastPrompt)
	}
}

func TestReplyEmptyBoard(t *testing.T) {
	llm := &mockLLM{reply: "ok"}
	r := qa.New(&mockLogger{}, llm, &mockTaskRepo{})

	if _, err := r.Reply(context.Background(), "hi", "en"); err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(llm.lastPrompt, "(no tasks)") {
		t.Errorf("expected empty-board placeholder in prompt:\n%s", llm.lastPrompt)
	}
}

func TestReplyPropagatesError(t *testing.T) {
	llm := &mockLLM{err: errors.New("quota")}
	r := qa.New(&mockLogger{}, llm, &mockTaskRepo{})

	if _, err := r.Reply(context.Background(), "hi", "en"); err == nil {
		t.Fatal("expected error from model failure")
	}
}

func TestTranslate(t *testing.T) {
	llm := &mockLLM{reply: "Hola"}
	r := qa.New(&mockLogger{}, llm, &mockTaskRepo{})
	ctx := context.Background()

	if got := r.Translate(ctx, "Hello", "es"); got != "Hola" {
		t.Errorf("expected translation, got %q", got)
	}

	// English and unset languages skip the model entirely.
	llm.lastPrompt = ""
	if got := r.Translate(ctx, "Hello", "en"); got != "Hello" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if got := r.Translate(ctx, "Hello", ""); got != "Hello" {
		t.Errorf("expected passthrough, got %q", got)
	}
	if llm.lastPrompt != "" {
		t.Error("passthrough should not call the model")
	}

	llm.err = errors.New("quota")
	if got := r.Translate(ctx, "Hello", "es"); got != "Hello" {
		t.Errorf("expected original text on failure, got %q", got)
	}

	llm.err = nil
	llm.reply = "   "
	if got := r.Translate(ctx, "Hello", "es"); got != "Hello" {
		t.Errorf("expected original text on blank translation, got %q", got)
	}
}

func TestMotivateCountsOpenTasks(t *testing.T) {
	llm := &mockLLM{reply: "Keep going."}
	repo := &mockTaskRepo{tasks: []model.Task{
		{Name: "a", Status: model.StatusNotStarted},
		{Name: "b", Status: model.StatusCompleted},
		{Name: "c", Status: model.StatusInProgress},
	}}

	r := qa.New(&mockLogger{}, llm, repo)
	out, err := r.Motivate(context.Background(), "en")
	if err != nil {
		t.Fatalf("Motivate failed: %v", err)
	}
	if out != "Keep going." {
		t.Errorf("unexpected reply %q", out)
	}
	if !strings.Contains(llm.lastPrompt, "2 open tasks") {
		t.Errorf("expected open count in prompt:\n%s", llm.lastPrompt)
	}
}
