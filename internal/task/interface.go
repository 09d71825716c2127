package task

import (
	"context"

	"kairos/internal/view"
)

// UseCase is the chat-facing task API. Every method returns the message to
// show the user; errors are reserved for upstream failures the caller should
// apologize for.
type UseCase interface {
	// Add creates a task from shorthand text.
	Add(ctx context.Context, text string) (string, error)

	// List renders the task board, optionally filtered by date.
	List(ctx context.Context, filter view.DateFilter, showAll bool) (string, error)

	// Done marks the named task completed.
	Done(ctx context.Context, name string) (string, error)

	// UpdateStatus moves the named task to the given status.
	UpdateStatus(ctx context.Context, name, status string) (string, error)

	// Remove archives the named task.
	Remove(ctx context.Context, name string) (string, error)

	// UpdateDueDate reschedules the named task. due accepts the same tokens
	// as the add shorthand.
	UpdateDueDate(ctx context.Context, name, due string) (string, error)

	// Recommend suggests what to work on next.
	Recommend(ctx context.Context) (string, error)

	// ImportSchedule bulk-creates tasks from pasted multi-line text.
	ImportSchedule(ctx context.Context, text string) (string, error)
}
