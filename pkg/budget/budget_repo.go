package budget

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

type BudgetRepo interface {
	// Store inserts a new period and returns its id.
	Store(ctx context.Context, period Period) (int, error)
	// FindCurrent returns the open period for a project, or nil when none exists.
	FindCurrent(ctx context.Context, projectId string) (*Period, error)
	// Close stamps valid_to on an open period.
	Close(ctx context.Context, periodId int, at time.Time) error
	// History returns all periods of a project, oldest first.
	History(ctx context.Context, projectId string) ([]Period, error)
	// CurrentTargets returns the open target of every project owned by the user.
	CurrentTargets(ctx context.Context, userId int) (map[string]int, error)
	// ProjectOwned reports whether the project exists and belongs to the user.
	ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error)
}

type BudgetRepoImpl struct {
	db *sql.DB
}

func NewBudgetRepo(db *sql.DB) *BudgetRepoImpl {
	return &BudgetRepoImpl{db: db}
}

func (b *BudgetRepoImpl) Store(ctx context.Context, period Period) (int, error) {
	query := `INSERT INTO project_budgets (project_id, target_percentage, valid_from, valid_to) VALUES (?, ?, ?, ?)`

	var validTo interface{}
	if period.ValidTo != nil {
		validTo = period.ValidTo.Unix()
	}
	result, err := b.db.ExecContext(ctx, query, period.ProjectID, period.TargetPercentage, period.ValidFrom.Unix(), validTo)
	if err != nil {
		err := fmt.Errorf("could not store budget period: %w", err)
		log.Error(err)
		return 0, err
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (b *BudgetRepoImpl) FindCurrent(ctx context.Context, projectId string) (*Period, error) {
	query := `SELECT id, project_id, target_percentage, valid_from, valid_to
			  FROM project_budgets WHERE project_id = ? AND valid_to IS NULL`

	period, err := scanPeriod(b.db.QueryRowContext(ctx, query, projectId))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		err := fmt.Errorf("could not find current budget period: %w", err)
		log.Error(err)
		return nil, err
	}
	return &period, nil
}

func (b *BudgetRepoImpl) Close(ctx context.Context, periodId int, at time.Time) error {
	query := `UPDATE project_budgets SET valid_to = ? WHERE id = ? AND valid_to IS NULL`
	if _, err := b.db.ExecContext(ctx, query, at.Unix(), periodId); err != nil {
		err := fmt.Errorf("could not close budget period: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (b *BudgetRepoImpl) History(ctx context.Context, projectId string) ([]Period, error) {
	query := `SELECT id, project_id, target_percentage, valid_from, valid_to
			  FROM project_budgets WHERE project_id = ? ORDER BY valid_from, id`

	rows, err := b.db.QueryContext(ctx, query, projectId)
	if err != nil {
		err := fmt.Errorf("could not query budget history: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var periods []Period
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			err := fmt.Errorf("could not scan budget period: %w", err)
			log.Error(err)
			return nil, err
		}
		periods = append(periods, period)
	}
	return periods, rows.Err()
}

func (b *BudgetRepoImpl) CurrentTargets(ctx context.Context, userId int) (map[string]int, error) {
	query := `SELECT pb.project_id, pb.target_percentage
			  FROM project_budgets pb
			  JOIN projects p ON p.id = pb.project_id
			  WHERE p.user_id = ? AND pb.valid_to IS NULL`

	rows, err := b.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query current targets: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	targets := map[string]int{}
	for rows.Next() {
		var projectId string
		var target int
		if err := rows.Scan(&projectId, &target); err != nil {
			err := fmt.Errorf("could not scan current target: %w", err)
			log.Error(err)
			return nil, err
		}
		targets[projectId] = target
	}
	return targets, rows.Err()
}

func (b *BudgetRepoImpl) ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error) {
	query := `SELECT COUNT(*) FROM projects WHERE id = ? AND user_id = ?`
	var count int
	if err := b.db.QueryRowContext(ctx, query, projectId, userId).Scan(&count); err != nil {
		err := fmt.Errorf("could not check project ownership: %w", err)
		log.Error(err)
		return false, err
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPeriod(row rowScanner) (Period, error) {
	var period Period
	var validFromUnix int64
	var validToUnix sql.NullInt64
	if err := row.Scan(&period.ID, &period.ProjectID, &period.TargetPercentage, &validFromUnix, &validToUnix); err != nil {
		return Period{}, err
	}
	period.ValidFrom = time.Unix(validFromUnix, 0)
	if validToUnix.Valid {
		validTo := time.Unix(validToUnix.Int64, 0)
		period.ValidTo = &validTo
	}
	return period, nil
}
