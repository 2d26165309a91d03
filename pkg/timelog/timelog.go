package timelog

import (
	"errors"
	"time"
)

// LogType distinguishes timer-produced entries from manually reported ones.
type LogType string

const (
	TypeTimer  LogType = "TIMER"
	TypeManual LogType = "MANUAL"
)

// DateLayout is the format of the log_date column.
const DateLayout = "2006-01-02"

var (
	ErrNoActiveTimer   = errors.New("no active timer")
	ErrTaskNotFound    = errors.New("task not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrInvalidDuration = errors.New("duration must not be negative")
)

// TimeLog is one ledger entry. An entry with a nil EndAt is an open timer.
type TimeLog struct {
	ID              string
	ProjectID       string
	TaskID          *string
	UserID          int
	LogType         LogType
	StartAt         time.Time
	EndAt           *time.Time
	DurationSeconds int64
	LogDate         string
	CreatedAt       time.Time
}

func (l TimeLog) Open() bool {
	return l.EndAt == nil
}

// Entry is a ledger row enriched with task and project context.
type Entry struct {
	TimeLog
	TaskTitle   string
	ProjectName string
}
