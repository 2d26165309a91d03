package timelog

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

func setupRepoTest(t *testing.T) (*TimeLogRepoImpl, *sql.DB, context.Context, int) {
	db := test_utils.SetupTestDB(t)
	u, ctx := test_utils.SeedUser(t, db, "timelog-tests")
	return NewTimeLogRepo(db), db, ctx, u.Id
}

func seedProject(t *testing.T, db *sql.DB, userId int, projectId, name string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO projects (id, user_id, name, created_at) VALUES (?, ?, ?, ?)",
		projectId, userId, name, time.Now().Unix(),
	)
	require.NoError(t, err)
}

func seedTask(t *testing.T, db *sql.DB, taskId, projectId, title string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO tasks (id, project_id, title, created_at) VALUES (?, ?, ?, ?)",
		taskId, projectId, title, time.Now().Unix(),
	)
	require.NoError(t, err)
}

func openEntry(userId int, taskId string, startAt time.Time) TimeLog {
	return TimeLog{
		ID:        uuid.NewString(),
		ProjectID: "go",
		TaskID:    &taskId,
		UserID:    userId,
		LogType:   TypeTimer,
		StartAt:   startAt,
		LogDate:   startAt.Format(DateLayout),
		CreatedAt: startAt,
	}
}

func TestTimeLogRepoFindOpen(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	seedProject(t, db, userId, "go", "Learn Go")
	seedTask(t, db, "t1", "go", "Read")
	seedTask(t, db, "t2", "go", "Exercises")

	start := time.Unix(time.Now().Unix(), 0)
	first := openEntry(userId, "t1", start.Add(-time.Hour))
	second := openEntry(userId, "t2", start)
	require.NoError(t, repo.Store(ctx, first))
	require.NoError(t, repo.Store(ctx, second))

	open, err := repo.FindOpenByTask(ctx, userId, "t1")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, first.ID, open.ID)
	assert.Nil(t, open.EndAt)

	// Across tasks the most recently started entry wins.
	open, err = repo.FindOpenByUser(ctx, userId)
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, second.ID, open.ID)

	open, err = repo.FindOpenByTask(ctx, userId, "missing")
	require.NoError(t, err)
	assert.Nil(t, open)
}

func TestTimeLogRepoCloseEntry(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	seedProject(t, db, userId, "go", "Learn Go")
	seedTask(t, db, "t1", "go", "Read")

	start := time.Unix(time.Now().Unix(), 0)
	entry := openEntry(userId, "t1", start)
	require.NoError(t, repo.Store(ctx, entry))

	endAt := start.Add(90 * time.Second)
	require.NoError(t, repo.CloseEntry(ctx, entry.ID, endAt, 90))

	open, err := repo.FindOpenByTask(ctx, userId, "t1")
	require.NoError(t, err)
	assert.Nil(t, open)

	entries, err := repo.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(90), entries[0].DurationSeconds)
	require.NotNil(t, entries[0].EndAt)
	assert.Equal(t, endAt, *entries[0].EndAt)
}

func TestTimeLogRepoCloseOpenByTask(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	seedProject(t, db, userId, "go", "Learn Go")
	seedTask(t, db, "t1", "go", "Read")
	seedTask(t, db, "t2", "go", "Exercises")

	start := time.Unix(time.Now().Unix(), 0)
	closing := openEntry(userId, "t1", start.Add(-120*time.Second))
	unrelated := openEntry(userId, "t2", start)
	require.NoError(t, repo.Store(ctx, closing))
	require.NoError(t, repo.Store(ctx, unrelated))

	require.NoError(t, repo.CloseOpenByTask(ctx, "t1", start))

	// Duration is derived from each entry's own start time.
	entries, err := repo.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		switch entry.ID {
		case closing.ID:
			assert.Equal(t, int64(120), entry.DurationSeconds)
			assert.NotNil(t, entry.EndAt)
		case unrelated.ID:
			assert.Nil(t, entry.EndAt)
		}
	}
}

func TestTimeLogRepoOwnershipAndContext(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	seedProject(t, db, userId, "go", "Learn Go")
	seedTask(t, db, "t1", "go", "Read")

	projectId, owned, err := repo.TaskOwned(ctx, userId, "t1")
	require.NoError(t, err)
	assert.True(t, owned)
	assert.Equal(t, "go", projectId)

	_, owned, err = repo.TaskOwned(ctx, userId+1, "t1")
	require.NoError(t, err)
	assert.False(t, owned)

	owned, err = repo.ProjectOwned(ctx, userId, "go")
	require.NoError(t, err)
	assert.True(t, owned)

	taskId := "t1"
	title, name, err := repo.EntryContext(ctx, TimeLog{ProjectID: "go", TaskID: &taskId})
	require.NoError(t, err)
	assert.Equal(t, "Read", title)
	assert.Equal(t, "Learn Go", name)
}

func TestTimeLogRepoGetAllJoins(t *testing.T) {
	repo, db, ctx, userId := setupRepoTest(t)
	seedProject(t, db, userId, "go", "Learn Go")

	// A project-only entry has no task context.
	start := time.Unix(time.Now().Unix(), 0)
	entry := TimeLog{
		ID:              uuid.NewString(),
		ProjectID:       "go",
		UserID:          userId,
		LogType:         TypeManual,
		StartAt:         start,
		DurationSeconds: 600,
		LogDate:         start.Format(DateLayout),
		CreatedAt:       start,
	}
	require.NoError(t, repo.Store(ctx, entry))

	entries, err := repo.GetAll(ctx, userId)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].TaskID)
	assert.Equal(t, "", entries[0].TaskTitle)
	assert.Equal(t, "Learn Go", entries[0].ProjectName)
}
