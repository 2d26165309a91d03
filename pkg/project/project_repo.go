package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type ProjectRepo interface {
	Store(ctx context.Context, project Project) error
	Get(ctx context.Context, userId int, projectId string) (Project, error)
	GetAll(ctx context.Context, userId int) ([]Project, error)
	Update(ctx context.Context, userId int, project Project) (bool, error)
	UpdateStatus(ctx context.Context, userId int, projectId string, status Status) (bool, error)
	// Delete removes the project; tasks, time logs, and budget periods go with
	// it through the schema's cascade rules.
	Delete(ctx context.Context, userId int, projectId string) (bool, error)
	TaskCountsByProject(ctx context.Context, userId int) (map[string]TaskCounts, error)
	DurationByProject(ctx context.Context, userId int) (map[string]int64, error)
}

type ProjectRepoImpl struct {
	db *sql.DB
}

func NewProjectRepo(db *sql.DB) *ProjectRepoImpl {
	return &ProjectRepoImpl{db: db}
}

func (p *ProjectRepoImpl) Store(ctx context.Context, project Project) error {
	query := `INSERT INTO projects (id, user_id, name, color_hex, icon, description, status, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := p.db.ExecContext(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		project.ColorHex,
		project.Icon,
		project.Description,
		project.Status,
		project.CreatedAt.Unix(),
	)
	if err != nil {
		err := fmt.Errorf("could not store project: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (p *ProjectRepoImpl) Get(ctx context.Context, userId int, projectId string) (Project, error) {
	query := `SELECT id, user_id, name, color_hex, icon, description, status, created_at
			  FROM projects WHERE id = ? AND user_id = ?`

	project, err := scanProject(p.db.QueryRowContext(ctx, query, projectId, userId))
	if errors.Is(err, sql.ErrNoRows) {
		return Project{}, ErrProjectNotFound
	}
	if err != nil {
		err := fmt.Errorf("could not get project: %w", err)
		log.Error(err)
		return Project{}, err
	}
	return project, nil
}

func (p *ProjectRepoImpl) GetAll(ctx context.Context, userId int) ([]Project, error) {
	query := `SELECT id, user_id, name, color_hex, icon, description, status, created_at
			  FROM projects WHERE user_id = ? ORDER BY created_at, id`

	rows, err := p.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			err := fmt.Errorf("could not scan project: %w", err)
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (p *ProjectRepoImpl) Update(ctx context.Context, userId int, project Project) (bool, error) {
	query := `UPDATE projects SET name = ?, color_hex = ?, icon = ?, description = ?
			  WHERE id = ? AND user_id = ?`

	result, err := p.db.ExecContext(ctx, query,
		project.Name,
		project.ColorHex,
		project.Icon,
		project.Description,
		project.ID,
		userId,
	)
	if err != nil {
		err := fmt.Errorf("could not update project: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (p *ProjectRepoImpl) UpdateStatus(ctx context.Context, userId int, projectId string, status Status) (bool, error) {
	query := `UPDATE projects SET status = ? WHERE id = ? AND user_id = ?`

	result, err := p.db.ExecContext(ctx, query, status, projectId, userId)
	if err != nil {
		err := fmt.Errorf("could not update project status: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (p *ProjectRepoImpl) Delete(ctx context.Context, userId int, projectId string) (bool, error) {
	query := `DELETE FROM projects WHERE id = ? AND user_id = ?`

	result, err := p.db.ExecContext(ctx, query, projectId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete project: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (p *ProjectRepoImpl) TaskCountsByProject(ctx context.Context, userId int) (map[string]TaskCounts, error) {
	query := `SELECT t.project_id,
					 COUNT(t.id),
					 SUM(CASE WHEN t.status = 'done' THEN 1 ELSE 0 END)
			  FROM tasks t
			  JOIN projects p ON p.id = t.project_id
			  WHERE p.user_id = ?
			  GROUP BY t.project_id`

	rows, err := p.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query task counts: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	counts := map[string]TaskCounts{}
	for rows.Next() {
		var projectId string
		var c TaskCounts
		if err := rows.Scan(&projectId, &c.Total, &c.Completed); err != nil {
			err := fmt.Errorf("could not scan task counts: %w", err)
			log.Error(err)
			return nil, err
		}
		counts[projectId] = c
	}
	return counts, rows.Err()
}

func (p *ProjectRepoImpl) DurationByProject(ctx context.Context, userId int) (map[string]int64, error) {
	query := `SELECT tl.project_id, SUM(tl.duration_seconds)
			  FROM time_logs tl
			  JOIN projects p ON p.id = tl.project_id
			  WHERE p.user_id = ?
			  GROUP BY tl.project_id`

	rows, err := p.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query project durations: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	durations := map[string]int64{}
	for rows.Next() {
		var projectId string
		var duration sql.NullInt64
		if err := rows.Scan(&projectId, &duration); err != nil {
			err := fmt.Errorf("could not scan project duration: %w", err)
			log.Error(err)
			return nil, err
		}
		durations[projectId] = duration.Int64
	}
	return durations, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (Project, error) {
	var project Project
	var description sql.NullString
	var createdAtUnix int64
	if err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.ColorHex,
		&project.Icon,
		&description,
		&project.Status,
		&createdAtUnix,
	); err != nil {
		return Project{}, err
	}
	project.Description = description.String
	project.CreatedAt = time.Unix(createdAtUnix, 0)
	return project, nil
}
