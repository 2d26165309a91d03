package task

import (
	"errors"
	"time"
)

// Status is the stored task status vocabulary.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

// Priority orders tasks within a project.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var (
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidPriority = errors.New("invalid task priority")
)

type Task struct {
	ID          string
	ProjectID   string
	Title       string
	Description string
	Status      Status
	Priority    Priority
	CreatedAt   time.Time
}

func (t Task) Done() bool {
	return t.Status == StatusDone
}

// Detail is the read model returned to clients: a task together with its
// project name and total logged duration in seconds.
type Detail struct {
	Task
	ProjectName   string
	TotalDuration int64
}

// ValidStatus reports whether s belongs to the stored vocabulary.
func ValidStatus(s Status) bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

func ValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// ExternalStatus maps the stored vocabulary to the one exposed over the API.
// Unknown values pass through unchanged so reads never fail on legacy rows.
func ExternalStatus(s Status) string {
	switch s {
	case StatusTodo:
		return "pending"
	case StatusDone:
		return "completed"
	default:
		return string(s)
	}
}
