package timelog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/yann-lu/mind-balance/internal/event_bus"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
)

// TimerStatus describes the user's running timer, if any.
type TimerStatus struct {
	Entry       TimeLog
	TaskTitle   string
	ProjectName string
}

type TimeLogService interface {
	StartTimer(ctx context.Context, taskId string) (TimeLog, error)
	StopTimer(ctx context.Context, taskId string) (TimeLog, error)
	PauseTimer(ctx context.Context, taskId string) (TimeLog, error)
	CurrentTimer(ctx context.Context) (*TimerStatus, error)
	LogManual(ctx context.Context, taskId string, durationSeconds int64) (TimeLog, error)
	Create(ctx context.Context, entry TimeLog) (TimeLog, error)
	List(ctx context.Context) ([]Entry, error)
}

type TimeLogServiceImpl struct {
	repo  TimeLogRepo
	clock utils.Clock
}

func NewTimeLogService(repo TimeLogRepo, clock utils.Clock) *TimeLogServiceImpl {
	return &TimeLogServiceImpl{repo: repo, clock: clock}
}

// SubscribeToTaskCompletions closes running timers when their task is completed.
func (s *TimeLogServiceImpl) SubscribeToTaskCompletions(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.TaskCompleted](bus, event_bus.TaskCompletedEvent,
		func(e event_bus.EventT[event_bus.TaskCompleted]) error {
			log.Debugf("Stopping timers of completed task %s", e.Data.TaskID)
			return s.repo.CloseOpenByTask(e.Context(), e.Data.TaskID, s.clock.Now())
		})
}

func (s *TimeLogServiceImpl) StartTimer(ctx context.Context, taskId string) (TimeLog, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeLog{}, err
	}
	projectId, owned, err := s.repo.TaskOwned(ctx, userId, taskId)
	if err != nil {
		return TimeLog{}, err
	}
	if !owned {
		return TimeLog{}, ErrTaskNotFound
	}

	now := s.clock.Now()
	entry := TimeLog{
		ID:        uuid.NewString(),
		ProjectID: projectId,
		TaskID:    &taskId,
		UserID:    userId,
		LogType:   TypeTimer,
		StartAt:   now,
		LogDate:   now.Format(DateLayout),
		CreatedAt: now,
	}
	if err := s.repo.Store(ctx, entry); err != nil {
		return TimeLog{}, err
	}
	return entry, nil
}

func (s *TimeLogServiceImpl) StopTimer(ctx context.Context, taskId string) (TimeLog, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeLog{}, err
	}
	open, err := s.repo.FindOpenByTask(ctx, userId, taskId)
	if err != nil {
		return TimeLog{}, err
	}
	if open == nil {
		return TimeLog{}, ErrNoActiveTimer
	}

	endAt := s.clock.Now()
	duration := endAt.Unix() - open.StartAt.Unix()
	if duration < 0 {
		duration = 0
	}
	if err := s.repo.CloseEntry(ctx, open.ID, endAt, duration); err != nil {
		return TimeLog{}, err
	}
	open.EndAt = &endAt
	open.DurationSeconds = duration
	return *open, nil
}

// PauseTimer closes the running entry like StopTimer does. Resuming later
// starts a fresh entry, so the ledger keeps one row per working stretch.
func (s *TimeLogServiceImpl) PauseTimer(ctx context.Context, taskId string) (TimeLog, error) {
	return s.StopTimer(ctx, taskId)
}

func (s *TimeLogServiceImpl) CurrentTimer(ctx context.Context) (*TimerStatus, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	open, err := s.repo.FindOpenByUser(ctx, userId)
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, nil
	}
	taskTitle, projectName, err := s.repo.EntryContext(ctx, *open)
	if err != nil {
		return nil, err
	}
	return &TimerStatus{Entry: *open, TaskTitle: taskTitle, ProjectName: projectName}, nil
}

func (s *TimeLogServiceImpl) LogManual(ctx context.Context, taskId string, durationSeconds int64) (TimeLog, error) {
	if durationSeconds < 0 {
		return TimeLog{}, fmt.Errorf("%w: %d", ErrInvalidDuration, durationSeconds)
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeLog{}, err
	}
	projectId, owned, err := s.repo.TaskOwned(ctx, userId, taskId)
	if err != nil {
		return TimeLog{}, err
	}
	if !owned {
		return TimeLog{}, ErrTaskNotFound
	}

	now := s.clock.Now()
	entry := TimeLog{
		ID:              uuid.NewString(),
		ProjectID:       projectId,
		TaskID:          &taskId,
		UserID:          userId,
		LogType:         TypeManual,
		StartAt:         now,
		EndAt:           &now,
		DurationSeconds: durationSeconds,
		LogDate:         now.Format(DateLayout),
		CreatedAt:       now,
	}
	if err := s.repo.Store(ctx, entry); err != nil {
		return TimeLog{}, err
	}
	return entry, nil
}

// Create inserts a ledger entry as given, for clients that record time
// after the fact. The project must belong to the user and a task, when
// set, must belong to that user too.
func (s *TimeLogServiceImpl) Create(ctx context.Context, entry TimeLog) (TimeLog, error) {
	if entry.DurationSeconds < 0 {
		return TimeLog{}, fmt.Errorf("%w: %d", ErrInvalidDuration, entry.DurationSeconds)
	}
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return TimeLog{}, err
	}

	if entry.TaskID != nil {
		projectId, owned, err := s.repo.TaskOwned(ctx, userId, *entry.TaskID)
		if err != nil {
			return TimeLog{}, err
		}
		if !owned {
			return TimeLog{}, ErrTaskNotFound
		}
		entry.ProjectID = projectId
	} else {
		owned, err := s.repo.ProjectOwned(ctx, userId, entry.ProjectID)
		if err != nil {
			return TimeLog{}, err
		}
		if !owned {
			return TimeLog{}, ErrProjectNotFound
		}
	}

	now := s.clock.Now()
	entry.ID = uuid.NewString()
	entry.UserID = userId
	entry.CreatedAt = now
	if entry.LogType == "" {
		entry.LogType = TypeManual
	}
	if entry.StartAt.IsZero() {
		entry.StartAt = now
	}
	if entry.LogDate == "" {
		entry.LogDate = now.Format(DateLayout)
	}
	if entry.EndAt == nil {
		endAt := entry.StartAt.Add(time.Duration(entry.DurationSeconds) * time.Second)
		entry.EndAt = &endAt
	}
	if err := s.repo.Store(ctx, entry); err != nil {
		return TimeLog{}, err
	}
	return entry, nil
}

func (s *TimeLogServiceImpl) List(ctx context.Context) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.GetAll(ctx, userId)
}
