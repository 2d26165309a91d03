package budget

import (
	"context"
	"fmt"

	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
	log "github.com/sirupsen/logrus"
)

type BudgetService interface {
	// SetTarget replaces the project's current target. Setting the value the
	// current open period already has is a no-op and returns that period
	// unchanged; otherwise the open period is closed at the clock's now and a
	// new one opened.
	SetTarget(ctx context.Context, projectId string, target int) (Period, error)
	// CurrentTarget returns the open period's target, 0 when the project has
	// no budget. Reports over past windows are still evaluated against this
	// value; there is no interval-containment lookup.
	CurrentTarget(ctx context.Context, projectId string) (int, error)
	CurrentTargets(ctx context.Context) (map[string]int, error)
	History(ctx context.Context, projectId string) ([]Period, error)
}

type BudgetServiceImpl struct {
	repo  BudgetRepo
	clock utils.Clock
}

func NewBudgetService(repo BudgetRepo, clock utils.Clock) *BudgetServiceImpl {
	return &BudgetServiceImpl{repo: repo, clock: clock}
}

func (s *BudgetServiceImpl) SetTarget(ctx context.Context, projectId string, target int) (Period, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Period{}, fmt.Errorf("failed to get current user: %w", err)
	}
	if target < 0 || target > 100 {
		return Period{}, ErrInvalidTarget
	}

	owned, err := s.repo.ProjectOwned(ctx, userId, projectId)
	if err != nil {
		return Period{}, err
	}
	if !owned {
		return Period{}, ErrProjectNotFound
	}

	current, err := s.repo.FindCurrent(ctx, projectId)
	if err != nil {
		return Period{}, err
	}

	if current != nil && current.TargetPercentage == target {
		log.Debugf("target for project %s already at %d%%, keeping period %d", projectId, target, current.ID)
		return *current, nil
	}

	now := s.clock.Now()
	if current != nil {
		if err := s.repo.Close(ctx, current.ID, now); err != nil {
			return Period{}, err
		}
	}

	period := Period{
		ProjectID:        projectId,
		TargetPercentage: target,
		ValidFrom:        now,
	}
	id, err := s.repo.Store(ctx, period)
	if err != nil {
		return Period{}, err
	}
	period.ID = id
	return period, nil
}

func (s *BudgetServiceImpl) CurrentTarget(ctx context.Context, projectId string) (int, error) {
	current, err := s.repo.FindCurrent(ctx, projectId)
	if err != nil {
		return 0, err
	}
	if current == nil {
		return 0, nil
	}
	return current.TargetPercentage, nil
}

func (s *BudgetServiceImpl) CurrentTargets(ctx context.Context) (map[string]int, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.repo.CurrentTargets(ctx, userId)
}

func (s *BudgetServiceImpl) History(ctx context.Context, projectId string) ([]Period, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	owned, err := s.repo.ProjectOwned(ctx, userId, projectId)
	if err != nil {
		return nil, err
	}
	if !owned {
		return nil, ErrProjectNotFound
	}
	return s.repo.History(ctx, projectId)
}
