package task

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yann-lu/mind-balance/internal/test_utils"
)

func setupRepoTest(t *testing.T) (*TaskRepoImpl, *sql.DB, context.Context, int) {
	db := test_utils.SetupTestDB(t)
	u, ctx := test_utils.SeedUser(t, db, "task-tests")
	return NewTaskRepo(db), db, ctx, u.Id
}

func insertProject(t *testing.T, db *sql.DB, userId int, projectId, name string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO projects (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		projectId, userId, name, time.Now().Unix(),
	)
	require.NoError(t, err)
}

func insertLog(t *testing.T, db *sql.DB, userId int, taskId, projectId string, seconds int64) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO time_logs (id, task_id, project_id, user_id, log_type, duration_seconds, log_date, created_at)
		 VALUES (?, ?, ?, ?, 'MANUAL', ?, '2025-03-10', ?)`,
		uuid.NewString(), taskId, projectId, userId, seconds, time.Now().Unix(),
	)
	require.NoError(t, err)
}

func newStoredTask(t *testing.T, repo *TaskRepoImpl, ctx context.Context, projectId, title string, createdAt time.Time) Task {
	t.Helper()
	task := Task{
		ID:        uuid.NewString(),
		ProjectID: projectId,
		Title:     title,
		Status:    StatusTodo,
		Priority:  PriorityMedium,
		CreatedAt: createdAt,
	}
	require.NoError(t, repo.Store(ctx, task))
	return task
}

func TestTaskRepoRoundTrip(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	insertProject(t, db, userId, "go", "Learn Go")

	createdAt := time.Unix(time.Now().Unix(), 0)
	stored := newStoredTask(t, repo, ctx, "go", "Read chapter 3", createdAt)

	fetched, err := repo.Get(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, fetched.ID)
	assert.Equal(t, "Read chapter 3", fetched.Title)
	assert.Equal(t, StatusTodo, fetched.Status)
	assert.Equal(t, PriorityMedium, fetched.Priority)
	assert.Equal(t, createdAt, fetched.CreatedAt)
}

func TestTaskRepoOwnership(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	insertProject(t, db, userId, "go", "Learn Go")
	stored := newStoredTask(t, repo, ctx, "go", "Read", time.Now())

	owned, err := repo.ProjectOwned(ctx, userId, "go")
	require.NoError(t, err)
	assert.True(t, owned)

	owned, err = repo.ProjectOwned(ctx, userId+1, "go")
	require.NoError(t, err)
	assert.False(t, owned)

	_, err = repo.Get(ctx, userId+1, stored.ID)
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskRepoGetAll(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	insertProject(t, db, userId, "go", "Learn Go")
	insertProject(t, db, userId, "piano", "Piano")

	older := newStoredTask(t, repo, ctx, "go", "Read", time.Now().Add(-time.Hour))
	newer := newStoredTask(t, repo, ctx, "piano", "Scales", time.Now())
	insertLog(t, db, userId, older.ID, "go", 600)
	insertLog(t, db, userId, older.ID, "go", 300)

	details, err := repo.GetAll(ctx, userId, "")
	require.NoError(t, err)
	require.Len(t, details, 2)

	// Newest first; durations are summed across ledger entries.
	assert.Equal(t, newer.ID, details[0].ID)
	assert.Equal(t, "Piano", details[0].ProjectName)
	assert.Equal(t, int64(0), details[0].TotalDuration)
	assert.Equal(t, older.ID, details[1].ID)
	assert.Equal(t, int64(900), details[1].TotalDuration)

	details, err = repo.GetAll(ctx, userId, "go")
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, older.ID, details[0].ID)
}

func TestTaskRepoUpdateAndDelete(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	insertProject(t, db, userId, "go", "Learn Go")
	stored := newStoredTask(t, repo, ctx, "go", "Read", time.Now())

	stored.Title = "Read chapter 4"
	stored.Status = StatusDone
	updated, err := repo.Update(ctx, userId, stored)
	require.NoError(t, err)
	assert.True(t, updated)

	fetched, err := repo.Get(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read chapter 4", fetched.Title)
	assert.Equal(t, StatusDone, fetched.Status)

	deleted, err := repo.Delete(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, userId, stored.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
