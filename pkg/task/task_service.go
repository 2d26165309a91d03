package task

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/yann-lu/mind-balance/internal/event_bus"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
)

// Update carries a partial task update. Nil fields are left unchanged.
type Update struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
}

type TaskService interface {
	List(ctx context.Context, projectId string) ([]Detail, error)
	Get(ctx context.Context, taskId string) (Task, error)
	Create(ctx context.Context, task Task) (Task, error)
	Update(ctx context.Context, taskId string, changes Update) (Task, error)
	Delete(ctx context.Context, taskId string) error
}

type TaskServiceImpl struct {
	repo  TaskRepo
	bus   *event_bus.EventBus
	clock utils.Clock
}

func NewTaskService(repo TaskRepo, bus *event_bus.EventBus, clock utils.Clock) *TaskServiceImpl {
	return &TaskServiceImpl{repo: repo, bus: bus, clock: clock}
}

func (s *TaskServiceImpl) List(ctx context.Context, projectId string) ([]Detail, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	if projectId != "" {
		owned, err := s.repo.ProjectOwned(ctx, userId, projectId)
		if err != nil {
			return nil, err
		}
		if !owned {
			return nil, ErrProjectNotFound
		}
	}
	return s.repo.GetAll(ctx, userId, projectId)
}

func (s *TaskServiceImpl) Get(ctx context.Context, taskId string) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, err
	}
	return s.repo.Get(ctx, userId, taskId)
}

func (s *TaskServiceImpl) Create(ctx context.Context, task Task) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, err
	}
	owned, err := s.repo.ProjectOwned(ctx, userId, task.ProjectID)
	if err != nil {
		return Task{}, err
	}
	if !owned {
		return Task{}, ErrProjectNotFound
	}

	if task.Status == "" {
		task.Status = StatusTodo
	}
	if !ValidStatus(task.Status) {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, task.Status)
	}
	if task.Priority == "" {
		task.Priority = PriorityMedium
	}
	if !ValidPriority(task.Priority) {
		return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, task.Priority)
	}

	task.ID = uuid.NewString()
	task.CreatedAt = s.clock.Now()
	if err := s.repo.Store(ctx, task); err != nil {
		return Task{}, err
	}
	return task, nil
}

func (s *TaskServiceImpl) Update(ctx context.Context, taskId string, changes Update) (Task, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Task{}, err
	}
	task, err := s.repo.Get(ctx, userId, taskId)
	if err != nil {
		return Task{}, err
	}
	wasDone := task.Done()

	if changes.Title != nil {
		task.Title = *changes.Title
	}
	if changes.Description != nil {
		task.Description = *changes.Description
	}
	if changes.Status != nil {
		if !ValidStatus(*changes.Status) {
			return Task{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *changes.Status)
		}
		task.Status = *changes.Status
	}
	if changes.Priority != nil {
		if !ValidPriority(*changes.Priority) {
			return Task{}, fmt.Errorf("%w: %q", ErrInvalidPriority, *changes.Priority)
		}
		task.Priority = *changes.Priority
	}

	updated, err := s.repo.Update(ctx, userId, task)
	if err != nil {
		return Task{}, err
	}
	if !updated {
		return Task{}, ErrTaskNotFound
	}

	if !wasDone && task.Done() {
		event := event_bus.NewEvent(ctx, event_bus.TaskCompletedEvent, event_bus.TaskCompleted{
			TaskID:    task.ID,
			ProjectID: task.ProjectID,
		})
		if err := s.bus.Publish(event); err != nil {
			log.Errorf("task completion event failed for task %s: %v", task.ID, err)
		}
	}
	return task, nil
}

func (s *TaskServiceImpl) Delete(ctx context.Context, taskId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userId, taskId)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTaskNotFound
	}
	return nil
}
