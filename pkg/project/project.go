package project

import (
	"errors"
	"time"
)

var ErrProjectNotFound = errors.New("project not found")

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

type Project struct {
	ID          string
	UserID      int
	Name        string
	ColorHex    string
	Icon        string
	Description string
	Status      Status
	CreatedAt   time.Time
}

// Overview is the read model returned by listing endpoints: the project plus
// aggregates derived at query time. Derived values never live on Project.
type Overview struct {
	Project
	EnergyPercent  int
	TotalTasks     int
	CompletedTasks int
	TotalDuration  int64
}

func (o Overview) IsCompleted() bool {
	return o.Status == StatusCompleted
}

// TaskCounts summarizes a project's tasks.
type TaskCounts struct {
	Total     int
	Completed int
}
