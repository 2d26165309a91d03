package analysis

import (
	"context"
	"database/sql"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// ProjectDuration is the summed logged time of one project within a window.
type ProjectDuration struct {
	ProjectID   string
	ProjectName string
	Seconds     int64
}

type AnalysisRepo interface {
	// TotalDuration sums all of the user's logged seconds since fromDate.
	TotalDuration(ctx context.Context, userId int, fromDate string) (int64, error)
	// DurationsByProject sums the user's logged seconds per project since
	// fromDate. Projects without activity are absent.
	DurationsByProject(ctx context.Context, userId int, fromDate string) ([]ProjectDuration, error)
}

type AnalysisRepoImpl struct {
	db *sql.DB
}

func NewAnalysisRepo(db *sql.DB) *AnalysisRepoImpl {
	return &AnalysisRepoImpl{db: db}
}

func (a *AnalysisRepoImpl) TotalDuration(ctx context.Context, userId int, fromDate string) (int64, error) {
	query := `SELECT COALESCE(SUM(duration_seconds), 0) FROM time_logs
			  WHERE user_id = ? AND log_date >= ?`

	var total int64
	if err := a.db.QueryRowContext(ctx, query, userId, fromDate).Scan(&total); err != nil {
		err := fmt.Errorf("could not sum logged time: %w", err)
		log.Error(err)
		return 0, err
	}
	return total, nil
}

func (a *AnalysisRepoImpl) DurationsByProject(ctx context.Context, userId int, fromDate string) ([]ProjectDuration, error) {
	query := `SELECT tl.project_id, COALESCE(p.name, 'Unknown'), SUM(tl.duration_seconds)
			  FROM time_logs tl
			  LEFT JOIN projects p ON p.id = tl.project_id
			  WHERE tl.user_id = ? AND tl.log_date >= ?
			  GROUP BY tl.project_id
			  ORDER BY SUM(tl.duration_seconds) DESC`

	rows, err := a.db.QueryContext(ctx, query, userId, fromDate)
	if err != nil {
		err := fmt.Errorf("could not query logged time per project: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var durations []ProjectDuration
	for rows.Next() {
		var duration ProjectDuration
		if err := rows.Scan(&duration.ProjectID, &duration.ProjectName, &duration.Seconds); err != nil {
			err := fmt.Errorf("could not scan logged time per project: %w", err)
			log.Error(err)
			return nil, err
		}
		durations = append(durations, duration)
	}
	return durations, rows.Err()
}
