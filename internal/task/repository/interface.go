package repository

import (
	"context"
	"time"

	"kairos/internal/model"
)

// DefaultQueryLimit bounds how many records name-based lookups scan.
// Records beyond the first page are unreachable by name (known gap).
const DefaultQueryLimit = 50

// TaskRepository is the interface for task data access against the external
// document database.
type TaskRepository interface {
	// Query returns up to limit tasks sorted by due date ascending. Upstream
	// failures are logged and yield an empty slice, not an error.
	Query(ctx context.Context, limit int) []model.Task

	// Create adds a new task. It fails before any network call when name is
	// empty.
	Create(ctx context.Context, opt CreateTaskOptions) (model.Task, error)

	// FindByName returns the first task whose title equals name
	// case-insensitively, scanning at most the first page of results.
	// A missing task is reported via found=false, not an error.
	FindByName(ctx context.Context, name string) (task model.Task, found bool, err error)

	UpdateStatus(ctx context.Context, recordID string, status model.Status) error
	UpdateDueDate(ctx context.Context, recordID string, due time.Time) error
	Archive(ctx context.Context, recordID string) error
}

// CreateTaskOptions carries the fields of a new task.
type CreateTaskOptions struct {
	Name     string
	Priority model.Priority
	DueDate  *time.Time
	Project  string
}
