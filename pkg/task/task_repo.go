package task

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type TaskRepo interface {
	// Store inserts a new task.
	Store(ctx context.Context, task Task) error
	// Get returns a task belonging to one of the user's projects.
	Get(ctx context.Context, userId int, taskId string) (Task, error)
	// GetAll returns all tasks of the user, newest first. When projectId is
	// non-empty the result is limited to that project.
	GetAll(ctx context.Context, userId int, projectId string) ([]Detail, error)
	// Update rewrites a task's mutable fields. Returns false when no row matched.
	Update(ctx context.Context, userId int, task Task) (bool, error)
	// Delete removes a task. Returns false when no row matched.
	Delete(ctx context.Context, userId int, taskId string) (bool, error)
	// ProjectOwned reports whether the project exists and belongs to the user.
	ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error)
}

type TaskRepoImpl struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepoImpl {
	return &TaskRepoImpl{db: db}
}

func (t *TaskRepoImpl) Store(ctx context.Context, task Task) error {
	query := `INSERT INTO tasks (id, project_id, title, description, status, priority, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := t.db.ExecContext(ctx, query,
		task.ID, task.ProjectID, task.Title, task.Description, task.Status, task.Priority, task.CreatedAt.Unix())
	if err != nil {
		err := fmt.Errorf("could not store task: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (t *TaskRepoImpl) Get(ctx context.Context, userId int, taskId string) (Task, error) {
	query := `SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority, t.created_at
			  FROM tasks t
			  JOIN projects p ON p.id = t.project_id
			  WHERE t.id = ? AND p.user_id = ?`

	task, err := scanTask(t.db.QueryRowContext(ctx, query, taskId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return Task{}, ErrTaskNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get task: %w", err)
		log.Error(err)
		return Task{}, err
	}
	return task, nil
}

func (t *TaskRepoImpl) GetAll(ctx context.Context, userId int, projectId string) ([]Detail, error) {
	query := `SELECT t.id, t.project_id, t.title, t.description, t.status, t.priority, t.created_at,
					 p.name, COALESCE(SUM(tl.duration_seconds), 0)
			  FROM tasks t
			  JOIN projects p ON p.id = t.project_id
			  LEFT JOIN time_logs tl ON tl.task_id = t.id
			  WHERE p.user_id = ?`
	args := []any{userId}
	if projectId != "" {
		query += ` AND t.project_id = ?`
		args = append(args, projectId)
	}
	query += ` GROUP BY t.id ORDER BY t.created_at DESC, t.id`

	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var details []Detail
	for rows.Next() {
		var detail Detail
		var createdAtUnix int64
		err := rows.Scan(&detail.ID, &detail.ProjectID, &detail.Title, &detail.Description,
			&detail.Status, &detail.Priority, &createdAtUnix, &detail.ProjectName, &detail.TotalDuration)
		if err != nil {
			err := fmt.Errorf("could not scan task: %w", err)
			log.Error(err)
			return nil, err
		}
		detail.CreatedAt = time.Unix(createdAtUnix, 0)
		details = append(details, detail)
	}
	return details, rows.Err()
}

func (t *TaskRepoImpl) Update(ctx context.Context, userId int, task Task) (bool, error) {
	query := `UPDATE tasks SET title = ?, description = ?, status = ?, priority = ?
			  WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)`

	result, err := t.db.ExecContext(ctx, query,
		task.Title, task.Description, task.Status, task.Priority, task.ID, userId)
	if err != nil {
		err := fmt.Errorf("could not update task: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (t *TaskRepoImpl) Delete(ctx context.Context, userId int, taskId string) (bool, error) {
	query := `DELETE FROM tasks
			  WHERE id = ? AND project_id IN (SELECT id FROM projects WHERE user_id = ?)`

	result, err := t.db.ExecContext(ctx, query, taskId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete task: %w", err)
		log.Error(err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (t *TaskRepoImpl) ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error) {
	query := `SELECT COUNT(*) FROM projects WHERE id = ? AND user_id = ?`
	var count int
	if err := t.db.QueryRowContext(ctx, query, projectId, userId).Scan(&count); err != nil {
		err := fmt.Errorf("could not check project ownership: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (Task, error) {
	var task Task
	var createdAtUnix int64
	err := row.Scan(&task.ID, &task.ProjectID, &task.Title, &task.Description,
		&task.Status, &task.Priority, &createdAtUnix)
	if err != nil {
		return Task{}, err
	}
	task.CreatedAt = time.Unix(createdAtUnix, 0)
	return task, nil
}
