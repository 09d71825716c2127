package model

import (
	"strings"
	"time"
)

// Status is a task's workflow state in the external database.
type Status string

const (
	StatusNotStarted Status = "Not started"
	StatusInProgress Status = "In progress"
	StatusCompleted  Status = "Completed"
)

// NormalizeStatus maps free-form status phrasing to one of the canonical
// values. The second return is false for anything unrecognized.
func NormalizeStatus(s string) (Status, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not started":
		return StatusNotStarted, true
	case "in progress":
		return StatusInProgress, true
	case "completed":
		return StatusCompleted, true
	}
	return "", false
}

// Priority is a task's priority level.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// NormalizePriority maps free-form priority text to a canonical value,
// defaulting to Medium.
func NormalizePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// Weight returns the numeric weight used by the recommendation scorer.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	default:
		return 1
	}
}

// Task is a task record from the external database. ID is the opaque record
// id issued upstream; DueDate is nil when the record has no due date.
type Task struct {
	ID       string
	Name     string
	Status   Status
	Priority Priority
	DueDate  *time.Time
	Project  string
}
