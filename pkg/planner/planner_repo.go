package planner

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ProjectSnapshot is the slice of a project the planner reasons about.
type ProjectSnapshot struct {
	ID   string
	Name string
}

// PendingTask is a todo task eligible for recommendation.
type PendingTask struct {
	ID        string
	Title     string
	ProjectID string
	Priority  string
}

type PlannerRepo interface {
	// Projects returns the user's projects, oldest first.
	Projects(ctx context.Context, userId int) ([]ProjectSnapshot, error)
	// DurationsByProject sums logged seconds per project since fromDate.
	DurationsByProject(ctx context.Context, userId int, fromDate string) (map[string]int64, error)
	// PendingTasks returns the user's todo tasks, oldest first.
	PendingTasks(ctx context.Context, userId int) ([]PendingTask, error)
}

type PlannerRepoImpl struct {
	db *sql.DB
}

func NewPlannerRepo(db *sql.DB) *PlannerRepoImpl {
	return &PlannerRepoImpl{db: db}
}

func (p *PlannerRepoImpl) Projects(ctx context.Context, userId int) ([]ProjectSnapshot, error) {
	query := `SELECT id, name FROM projects WHERE user_id = ? ORDER BY created_at, id`

	rows, err := p.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []ProjectSnapshot
	for rows.Next() {
		var project ProjectSnapshot
		if err := rows.Scan(&project.ID, &project.Name); err != nil {
			err := fmt.Errorf("could not scan project: %w", err)
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (p *PlannerRepoImpl) DurationsByProject(ctx context.Context, userId int, fromDate string) (map[string]int64, error) {
	query := `SELECT project_id, SUM(duration_seconds) FROM time_logs
			  WHERE user_id = ? AND log_date >= ?
			  GROUP BY project_id`

	rows, err := p.db.QueryContext(ctx, query, userId, fromDate)
	if err != nil {
		err := fmt.Errorf("could not query logged time per project: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	durations := map[string]int64{}
	for rows.Next() {
		var projectId string
		var seconds int64
		if err := rows.Scan(&projectId, &seconds); err != nil {
			err := fmt.Errorf("could not scan logged time: %w", err)
			log.Error(err)
			return nil, err
		}
		durations[projectId] = seconds
	}
	return durations, rows.Err()
}

func (p *PlannerRepoImpl) PendingTasks(ctx context.Context, userId int) ([]PendingTask, error) {
	query := `SELECT t.id, t.title, t.project_id, t.priority
			  FROM tasks t
			  JOIN projects p ON p.id = t.project_id
			  WHERE p.user_id = ? AND t.status = 'todo'
			  ORDER BY t.created_at, t.id`

	rows, err := p.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query pending tasks: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var tasks []PendingTask
	for rows.Next() {
		var task PendingTask
		if err := rows.Scan(&task.ID, &task.Title, &task.ProjectID, &task.Priority); err != nil {
			err := fmt.Errorf("could not scan pending task: %w", err)
			log.Error(err)
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}
