package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yann-lu/mind-balance/internal/event_bus"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "tester"})
}

func newService() (*TaskServiceImpl, *StubTaskRepo, *event_bus.EventBus) {
	repo := NewStubTaskRepo()
	repo.AddProject("proj-1", 1, "Learn Go")
	bus := event_bus.NewEventBus()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	return NewTaskService(repo, bus, clock), repo, bus
}

func TestCreateTask(t *testing.T) {
	ctx := testContext()

	t.Run("applies defaults", func(t *testing.T) {
		service, _, _ := newService()

		created, err := service.Create(ctx, Task{ProjectID: "proj-1", Title: "Read chapter 3"})
		assert.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Equal(t, StatusTodo, created.Status)
		assert.Equal(t, PriorityMedium, created.Priority)
	})

	t.Run("rejects unknown project", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.Create(ctx, Task{ProjectID: "missing", Title: "Read chapter 3"})
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})

	t.Run("rejects external status vocabulary on writes", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.Create(ctx, Task{ProjectID: "proj-1", Title: "Read", Status: "pending"})
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})

	t.Run("rejects unknown priority", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.Create(ctx, Task{ProjectID: "proj-1", Title: "Read", Priority: "urgent"})
		assert.ErrorIs(t, err, ErrInvalidPriority)
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := testContext()

	t.Run("partial update keeps unset fields", func(t *testing.T) {
		service, _, _ := newService()
		created, err := service.Create(ctx, Task{ProjectID: "proj-1", Title: "Read", Description: "ch. 3"})
		assert.NoError(t, err)

		title := "Read carefully"
		updated, err := service.Update(ctx, created.ID, Update{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "Read carefully", updated.Title)
		assert.Equal(t, "ch. 3", updated.Description)
		assert.Equal(t, StatusTodo, updated.Status)
	})

	t.Run("completing publishes task.completed once", func(t *testing.T) {
		service, _, bus := newService()
		created, err := service.Create(ctx, Task{ProjectID: "proj-1", Title: "Read"})
		assert.NoError(t, err)

		var completions []event_bus.TaskCompleted
		event_bus.SubscribeTyped[event_bus.TaskCompleted](bus, event_bus.TaskCompletedEvent,
			func(e event_bus.EventT[event_bus.TaskCompleted]) error {
				completions = append(completions, e.Data)
				return nil
			})

		done := StatusDone
		_, err = service.Update(ctx, created.ID, Update{Status: &done})
		assert.NoError(t, err)
		assert.Len(t, completions, 1)
		assert.Equal(t, created.ID, completions[0].TaskID)
		assert.Equal(t, "proj-1", completions[0].ProjectID)

		// already done, no second event
		_, err = service.Update(ctx, created.ID, Update{Status: &done})
		assert.NoError(t, err)
		assert.Len(t, completions, 1)
	})

	t.Run("unknown task", func(t *testing.T) {
		service, _, _ := newService()
		title := "Renamed"
		_, err := service.Update(ctx, "missing", Update{Title: &title})
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := testContext()
	service, _, _ := newService()

	created, err := service.Create(ctx, Task{ProjectID: "proj-1", Title: "Read"})
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(ctx, created.ID))
	assert.ErrorIs(t, service.Delete(ctx, created.ID), ErrTaskNotFound)
}

func TestListTasks(t *testing.T) {
	ctx := testContext()
	service, repo, _ := newService()
	repo.AddProject("proj-2", 1, "Piano")

	first, err := service.Create(ctx, Task{ProjectID: "proj-1", Title: "Read"})
	assert.NoError(t, err)
	_, err = service.Create(ctx, Task{ProjectID: "proj-2", Title: "Practice scales"})
	assert.NoError(t, err)
	repo.SetDuration(first.ID, 1800)

	all, err := service.List(ctx, "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := service.List(ctx, "proj-1")
	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Learn Go", filtered[0].ProjectName)
	assert.Equal(t, int64(1800), filtered[0].TotalDuration)

	_, err = service.List(ctx, "missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestExternalStatus(t *testing.T) {
	assert.Equal(t, "pending", ExternalStatus(StatusTodo))
	assert.Equal(t, "in_progress", ExternalStatus(StatusInProgress))
	assert.Equal(t, "completed", ExternalStatus(StatusDone))
	// legacy rows pass through untouched
	assert.Equal(t, "archived", ExternalStatus(Status("archived")))
}
