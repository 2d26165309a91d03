package timelog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type TimeLogRepo interface {
	// Store inserts a new ledger entry.
	Store(ctx context.Context, entry TimeLog) error
	// FindOpenByTask returns the most recently started open entry for the
	// task, or nil when none exists.
	FindOpenByTask(ctx context.Context, userId int, taskId string) (*TimeLog, error)
	// FindOpenByUser returns the user's most recently started open entry
	// across all tasks, or nil when none exists.
	FindOpenByUser(ctx context.Context, userId int) (*TimeLog, error)
	// CloseEntry stamps end_at and duration_seconds on an open entry.
	CloseEntry(ctx context.Context, entryId string, endAt time.Time, durationSeconds int64) error
	// CloseOpenByTask closes every open entry of the task, computing each
	// duration from its own start_at.
	CloseOpenByTask(ctx context.Context, taskId string, endAt time.Time) error
	// GetAll returns the user's ledger, newest first, with task and project context.
	GetAll(ctx context.Context, userId int) ([]Entry, error)
	// TaskOwned reports whether the task exists within the user's projects,
	// returning its project id when it does.
	TaskOwned(ctx context.Context, userId int, taskId string) (string, bool, error)
	// ProjectOwned reports whether the project exists and belongs to the user.
	ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error)
	// EntryContext returns the task title and project name of an entry.
	EntryContext(ctx context.Context, entry TimeLog) (taskTitle string, projectName string, err error)
}

type TimeLogRepoImpl struct {
	db *sql.DB
}

func NewTimeLogRepo(db *sql.DB) *TimeLogRepoImpl {
	return &TimeLogRepoImpl{db: db}
}

func (t *TimeLogRepoImpl) Store(ctx context.Context, entry TimeLog) error {
	query := `INSERT INTO time_logs (id, task_id, project_id, user_id, log_type, start_at, end_at, duration_seconds, log_date, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	var endAt interface{}
	if entry.EndAt != nil {
		endAt = entry.EndAt.Unix()
	}
	var taskId interface{}
	if entry.TaskID != nil {
		taskId = *entry.TaskID
	}
	_, err := t.db.ExecContext(ctx, query,
		entry.ID, taskId, entry.ProjectID, entry.UserID, entry.LogType,
		entry.StartAt.Unix(), endAt, entry.DurationSeconds, entry.LogDate, entry.CreatedAt.Unix())
	if err != nil {
		err := fmt.Errorf("could not store time log: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (t *TimeLogRepoImpl) FindOpenByTask(ctx context.Context, userId int, taskId string) (*TimeLog, error) {
	query := `SELECT id, task_id, project_id, user_id, log_type, start_at, end_at, duration_seconds, log_date, created_at
			  FROM time_logs
			  WHERE user_id = ? AND task_id = ? AND end_at IS NULL
			  ORDER BY start_at DESC, id LIMIT 1`

	return t.findOpen(ctx, query, userId, taskId)
}

func (t *TimeLogRepoImpl) FindOpenByUser(ctx context.Context, userId int) (*TimeLog, error) {
	query := `SELECT id, task_id, project_id, user_id, log_type, start_at, end_at, duration_seconds, log_date, created_at
			  FROM time_logs
			  WHERE user_id = ? AND end_at IS NULL
			  ORDER BY start_at DESC, id LIMIT 1`

	return t.findOpen(ctx, query, userId)
}

func (t *TimeLogRepoImpl) findOpen(ctx context.Context, query string, args ...any) (*TimeLog, error) {
	entry, err := scanTimeLog(t.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		err := fmt.Errorf("could not find open time log: %w", err)
		log.Error(err)
		return nil, err
	}
	return &entry, nil
}

func (t *TimeLogRepoImpl) CloseEntry(ctx context.Context, entryId string, endAt time.Time, durationSeconds int64) error {
	query := `UPDATE time_logs SET end_at = ?, duration_seconds = ? WHERE id = ? AND end_at IS NULL`
	if _, err := t.db.ExecContext(ctx, query, endAt.Unix(), durationSeconds, entryId); err != nil {
		err := fmt.Errorf("could not close time log: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (t *TimeLogRepoImpl) CloseOpenByTask(ctx context.Context, taskId string, endAt time.Time) error {
	query := `UPDATE time_logs SET end_at = ?, duration_seconds = ? - start_at
			  WHERE task_id = ? AND end_at IS NULL`
	if _, err := t.db.ExecContext(ctx, query, endAt.Unix(), endAt.Unix(), taskId); err != nil {
		err := fmt.Errorf("could not close open time logs of task: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (t *TimeLogRepoImpl) GetAll(ctx context.Context, userId int) ([]Entry, error) {
	query := `SELECT tl.id, tl.task_id, tl.project_id, tl.user_id, tl.log_type, tl.start_at, tl.end_at,
					 tl.duration_seconds, tl.log_date, tl.created_at,
					 COALESCE(tk.title, ''), p.name
			  FROM time_logs tl
			  JOIN projects p ON p.id = tl.project_id
			  LEFT JOIN tasks tk ON tk.id = tl.task_id
			  WHERE tl.user_id = ?
			  ORDER BY tl.start_at DESC, tl.id`

	rows, err := t.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query time logs: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var taskId sql.NullString
		var startAtUnix, createdAtUnix int64
		var endAtUnix sql.NullInt64
		err := rows.Scan(&entry.ID, &taskId, &entry.ProjectID, &entry.UserID, &entry.LogType,
			&startAtUnix, &endAtUnix, &entry.DurationSeconds, &entry.LogDate, &createdAtUnix,
			&entry.TaskTitle, &entry.ProjectName)
		if err != nil {
			err := fmt.Errorf("could not scan time log: %w", err)
			log.Error(err)
			return nil, err
		}
		if taskId.Valid {
			entry.TaskID = &taskId.String
		}
		entry.StartAt = time.Unix(startAtUnix, 0)
		if endAtUnix.Valid {
			endAt := time.Unix(endAtUnix.Int64, 0)
			entry.EndAt = &endAt
		}
		entry.CreatedAt = time.Unix(createdAtUnix, 0)
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (t *TimeLogRepoImpl) TaskOwned(ctx context.Context, userId int, taskId string) (string, bool, error) {
	query := `SELECT t.project_id FROM tasks t
			  JOIN projects p ON p.id = t.project_id
			  WHERE t.id = ? AND p.user_id = ?`

	var projectId string
	err := t.db.QueryRowContext(ctx, query, taskId, userId).Scan(&projectId)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		err := fmt.Errorf("could not check task ownership: %w", err)
		log.Error(err)
		return "", false, err
	}
	return projectId, true, nil
}

func (t *TimeLogRepoImpl) ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error) {
	query := `SELECT COUNT(*) FROM projects WHERE id = ? AND user_id = ?`
	var count int
	if err := t.db.QueryRowContext(ctx, query, projectId, userId).Scan(&count); err != nil {
		err := fmt.Errorf("could not check project ownership: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

func (t *TimeLogRepoImpl) EntryContext(ctx context.Context, entry TimeLog) (string, string, error) {
	var taskTitle string
	if entry.TaskID != nil {
		query := `SELECT title FROM tasks WHERE id = ?`
		err := t.db.QueryRowContext(ctx, query, *entry.TaskID).Scan(&taskTitle)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return "", "", fmt.Errorf("could not load task title: %w", err)
		}
	}

	var projectName string
	query := `SELECT name FROM projects WHERE id = ?`
	err := t.db.QueryRowContext(ctx, query, entry.ProjectID).Scan(&projectName)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", "", fmt.Errorf("could not load project name: %w", err)
	}
	return taskTitle, projectName, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimeLog(row rowScanner) (TimeLog, error) {
	var entry TimeLog
	var taskId sql.NullString
	var startAtUnix, createdAtUnix int64
	var endAtUnix sql.NullInt64
	err := row.Scan(&entry.ID, &taskId, &entry.ProjectID, &entry.UserID, &entry.LogType,
		&startAtUnix, &endAtUnix, &entry.DurationSeconds, &entry.LogDate, &createdAtUnix)
	if err != nil {
		return TimeLog{}, err
	}
	if taskId.Valid {
		entry.TaskID = &taskId.String
	}
	entry.StartAt = time.Unix(startAtUnix, 0)
	if endAtUnix.Valid {
		endAt := time.Unix(endAtUnix.Int64, 0)
		entry.EndAt = &endAt
	}
	entry.CreatedAt = time.Unix(createdAtUnix, 0)
	return entry, nil
}
