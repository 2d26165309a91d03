package stats

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ProjectInfo is the descriptive slice of a project used in reports.
type ProjectInfo struct {
	ID       string
	Name     string
	ColorHex string
	Icon     string
	Status   string
}

// TaskCounts holds a project's all-time task totals.
type TaskCounts struct {
	Total     int
	Completed int
}

type StatsRepo interface {
	// TotalDuration sums logged seconds within the inclusive log_date range.
	TotalDuration(ctx context.Context, userId int, from, to string) (int64, error)
	// StudyDays counts distinct log dates within the range.
	StudyDays(ctx context.Context, userId int, from, to string) (int, error)
	// CompletedTasks counts the user's done tasks across all time.
	CompletedTasks(ctx context.Context, userId int) (int, error)
	// PendingTasks counts the user's todo tasks across all time.
	PendingTasks(ctx context.Context, userId int) (int, error)
	// ActiveProjects counts the user's projects with active status.
	ActiveProjects(ctx context.Context, userId int) (int, error)
	// AllProjects returns every project of the user.
	AllProjects(ctx context.Context, userId int) ([]ProjectInfo, error)
	// ProjectDistribution sums logged seconds per project within the range.
	// Projects without entries in the range are absent.
	ProjectDistribution(ctx context.Context, userId int, from, to string) ([]ProjectTime, error)
	// DailyTrend sums logged seconds per day within the range, date ascending.
	DailyTrend(ctx context.Context, userId int, from, to string) ([]DailyDuration, error)
	// TaskCountsByProject returns all-time task totals per project.
	TaskCountsByProject(ctx context.Context, userId int) (map[string]TaskCounts, error)
}

type StatsRepoImpl struct {
	db *sql.DB
}

func NewStatsRepo(db *sql.DB) *StatsRepoImpl {
	return &StatsRepoImpl{db: db}
}

func (s *StatsRepoImpl) TotalDuration(ctx context.Context, userId int, from, to string) (int64, error) {
	query := `SELECT COALESCE(SUM(duration_seconds), 0) FROM time_logs
			  WHERE user_id = ? AND log_date >= ? AND log_date <= ?`

	var total int64
	if err := s.db.QueryRowContext(ctx, query, userId, from, to).Scan(&total); err != nil {
		err := fmt.Errorf("could not sum logged time: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

func (s *StatsRepoImpl) StudyDays(ctx context.Context, userId int, from, to string) (int, error) {
	query := `SELECT COUNT(DISTINCT log_date) FROM time_logs
			  WHERE user_id = ? AND log_date >= ? AND log_date <= ?`

	var days int
	if err := s.db.QueryRowContext(ctx, query, userId, from, to).Scan(&days); err != nil {
		err := fmt.Errorf("could not count study days: %w", err)
		log.Error(err)
		return 0, err
	}
	return days, nil
}

func (s *StatsRepoImpl) CompletedTasks(ctx context.Context, userId int) (int, error) {
	return s.countTasks(ctx, userId, "done")
}

func (s *StatsRepoImpl) PendingTasks(ctx context.Context, userId int) (int, error) {
	return s.countTasks(ctx, userId, "todo")
}

func (s *StatsRepoImpl) countTasks(ctx context.Context, userId int, status string) (int, error) {
	query := `SELECT COUNT(t.id) FROM tasks t
			  JOIN projects p ON p.id = t.project_id
			  WHERE p.user_id = ? AND t.status = ?`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userId, status).Scan(&count); err != nil {
		err := fmt.Errorf("could not count %s tasks: %w", status, err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (s *StatsRepoImpl) ActiveProjects(ctx context.Context, userId int) (int, error) {
	query := `SELECT COUNT(*) FROM projects WHERE user_id = ? AND status = 'active'`

	var count int
	if err := s.db.QueryRowContext(ctx, query, userId).Scan(&count); err != nil {
		err := fmt.Errorf("could not count active projects: %w", err)
		log.Error(err)
		return 0, err
	}
	return count, nil
}

func (s *StatsRepoImpl) AllProjects(ctx context.Context, userId int) ([]ProjectInfo, error) {
	query := `SELECT id, name, color_hex, icon, status FROM projects
			  WHERE user_id = ? ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query projects: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var projects []ProjectInfo
	for rows.Next() {
		var project ProjectInfo
		if err := rows.Scan(&project.ID, &project.Name, &project.ColorHex, &project.Icon, &project.Status); err != nil {
			err := fmt.Errorf("could not scan project: %w", err)
			log.Error(err)
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (s *StatsRepoImpl) ProjectDistribution(ctx context.Context, userId int, from, to string) ([]ProjectTime, error) {
	query := `SELECT p.id, p.name, p.color_hex, p.icon, SUM(tl.duration_seconds)
			  FROM projects p
			  JOIN time_logs tl ON tl.project_id = p.id
			  WHERE p.user_id = ? AND tl.log_date >= ? AND tl.log_date <= ?
			  GROUP BY p.id, p.name, p.color_hex, p.icon
			  ORDER BY SUM(tl.duration_seconds) DESC`

	rows, err := s.db.QueryContext(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query project distribution: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var distribution []ProjectTime
	for rows.Next() {
		var entry ProjectTime
		if err := rows.Scan(&entry.ProjectID, &entry.Name, &entry.ColorHex, &entry.Icon, &entry.Duration); err != nil {
			err := fmt.Errorf("could not scan project distribution: %w", err)
			log.Error(err)
			return nil, err
		}
		distribution = append(distribution, entry)
	}
	return distribution, rows.Err()
}

func (s *StatsRepoImpl) DailyTrend(ctx context.Context, userId int, from, to string) ([]DailyDuration, error) {
	query := `SELECT log_date, SUM(duration_seconds) FROM time_logs
			  WHERE user_id = ? AND log_date >= ? AND log_date <= ?
			  GROUP BY log_date ORDER BY log_date`

	rows, err := s.db.QueryContext(ctx, query, userId, from, to)
	if err != nil {
		err := fmt.Errorf("could not query daily trend: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var trend []DailyDuration
	for rows.Next() {
		var day DailyDuration
		if err := rows.Scan(&day.Date, &day.Duration); err != nil {
			err := fmt.Errorf("could not scan daily trend: %w", err)
			log.Error(err)
			return nil, err
		}
		trend = append(trend, day)
	}
	return trend, rows.Err()
}

func (s *StatsRepoImpl) TaskCountsByProject(ctx context.Context, userId int) (map[string]TaskCounts, error) {
	query := `SELECT t.project_id,
					 COUNT(t.id),
					 SUM(CASE WHEN t.status = 'done' THEN 1 ELSE 0 END)
			  FROM tasks t
			  JOIN projects p ON p.id = t.project_id
			  WHERE p.user_id = ?
			  GROUP BY t.project_id`

	rows, err := s.db.QueryContext(ctx, query, userId)
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
