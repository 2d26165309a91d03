package timelog

import (
	"context"
	"strings"
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

func newService() (*TimeLogServiceImpl, *StubTimeLogRepo, *utils.MockClock) {
	repo := NewStubTimeLogRepo()
	repo.AddProject("proj-1", 1, "Learn Go")
	repo.AddTask("task-1", "proj-1", "Read chapter 3", 1)
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	return NewTimeLogService(repo, clock), repo, clock
}

func TestStartTimer(t *testing.T) {
	ctx := testContext()

	t.Run("creates an open timer entry", func(t *testing.T) {
		service, _, clock := newService()

		entry, err := service.StartTimer(ctx, "task-1")
		assert.NoError(t, err)
		assert.True(t, entry.Open())
		assert.Equal(t, TypeTimer, entry.LogType)
		assert.Equal(t, "proj-1", entry.ProjectID)
		assert.Equal(t, clock.FixedNow, entry.StartAt)
		assert.Equal(t, "2025-03-10", entry.LogDate)
	})

	t.Run("unknown task", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.StartTimer(ctx, "missing")
		assert.ErrorIs(t, err, ErrTaskNotFound)
	})
}

func TestStopTimer(t *testing.T) {
	ctx := testContext()

	t.Run("truncates the duration to whole seconds", func(t *testing.T) {
		service, _, clock := newService()

		_, err := service.StartTimer(ctx, "task-1")
		assert.NoError(t, err)

		clock.SetNow(clock.FixedNow.Add(125*time.Second + 900*time.Millisecond))
		stopped, err := service.StopTimer(ctx, "task-1")
		assert.NoError(t, err)
		assert.False(t, stopped.Open())
		assert.Equal(t, int64(125), stopped.DurationSeconds)
	})

	t.Run("no running timer yields ErrNoActiveTimer", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.StopTimer(ctx, "task-1")
		assert.ErrorIs(t, err, ErrNoActiveTimer)
	})

	t.Run("stops the most recently started entry", func(t *testing.T) {
		service, repo, clock := newService()

		first, err := service.StartTimer(ctx, "task-1")
		assert.NoError(t, err)
		clock.SetNow(clock.FixedNow.Add(10 * time.Second))
		second, err := service.StartTimer(ctx, "task-1")
		assert.NoError(t, err)

		clock.SetNow(clock.FixedNow.Add(20 * time.Second))
		stopped, err := service.StopTimer(ctx, "task-1")
		assert.NoError(t, err)
		assert.Equal(t, second.ID, stopped.ID)

		remaining, _ := repo.Entry(first.ID)
		assert.True(t, remaining.Open())
	})
}

func TestCurrentTimer(t *testing.T) {
	ctx := testContext()

	t.Run("nil when nothing runs", func(t *testing.T) {
		service, _, _ := newService()

		status, err := service.CurrentTimer(ctx)
		assert.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("returns task and project context", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.StartTimer(ctx, "task-1")
		assert.NoError(t, err)

		status, err := service.CurrentTimer(ctx)
		assert.NoError(t, err)
		assert.NotNil(t, status)
		assert.Equal(t, "Read chapter 3", status.TaskTitle)
		assert.Equal(t, "Learn Go", status.ProjectName)
	})
}

func TestLogManual(t *testing.T) {
	ctx := testContext()

	t.Run("records a closed manual entry", func(t *testing.T) {
		service, _, _ := newService()

		entry, err := service.LogManual(ctx, "task-1", 1800)
		assert.NoError(t, err)
		assert.Equal(t, TypeManual, entry.LogType)
		assert.False(t, entry.Open())
		assert.Equal(t, int64(1800), entry.DurationSeconds)
	})

	t.Run("rejects negative duration", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.LogManual(ctx, "task-1", -5)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestCreateTimeLog(t *testing.T) {
	ctx := testContext()

	t.Run("project-only entry", func(t *testing.T) {
		service, _, _ := newService()

		entry, err := service.Create(ctx, TimeLog{ProjectID: "proj-1", DurationSeconds: 600})
		assert.NoError(t, err)
		assert.Equal(t, TypeManual, entry.LogType)
		assert.Equal(t, "2025-03-10", entry.LogDate)
		assert.NotNil(t, entry.EndAt)
	})

	t.Run("task entry inherits the task's project", func(t *testing.T) {
		service, _, _ := newService()

		taskId := "task-1"
		entry, err := service.Create(ctx, TimeLog{TaskID: &taskId, DurationSeconds: 600})
		assert.NoError(t, err)
		assert.Equal(t, "proj-1", entry.ProjectID)
	})

	t.Run("unknown project", func(t *testing.T) {
		service, _, _ := newService()

		_, err := service.Create(ctx, TimeLog{ProjectID: "missing", DurationSeconds: 600})
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestTaskCompletionStopsTimer(t *testing.T) {
	ctx := testContext()
	service, repo, clock := newService()
	bus := event_bus.NewEventBus()
	service.SubscribeToTaskCompletions(bus)

	started, err := service.StartTimer(ctx, "task-1")
	assert.NoError(t, err)

	clock.SetNow(clock.FixedNow.Add(90 * time.Second))
	err = bus.Publish(event_bus.NewEvent(ctx, event_bus.TaskCompletedEvent, event_bus.TaskCompleted{
		TaskID:    "task-1",
		ProjectID: "proj-1",
	}))
	assert.NoError(t, err)

	entry, ok := repo.Entry(started.ID)
	assert.True(t, ok)
	assert.False(t, entry.Open())
	assert.Equal(t, int64(90), entry.DurationSeconds)
}

func TestRenderLedgerCsv(t *testing.T) {
	ctx := testContext()
	service, _, _ := newService()

	_, err := service.LogManual(ctx, "task-1", 3725)
	assert.NoError(t, err)

	entries, err := service.List(ctx)
	assert.NoError(t, err)

	csvData, err := NewCsvLedgerRenderer().RenderLedger(entries)
	assert.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(csvData), "\n")
	assert.Len(t, lines, 2)
	assert.Equal(t, "Date,Project,Task,Type,Started,Ended,Duration", lines[0])
	assert.Contains(t, lines[1], "2025-03-10")
	assert.Contains(t, lines[1], "Learn Go")
	assert.Contains(t, lines[1], "01:02:05")
}
