package analysis

import (
	"context"
	"math"

	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
)

const DefaultWindowDays = 7

// TargetSource provides the open budget target of every project owned by
// the current user.
type TargetSource interface {
	CurrentTargets(ctx context.Context) (map[string]int, error)
}

type AnalysisService interface {
	// Variance compares each active project's share of logged time over the
	// past days against its current budget target. An empty report is
	// returned when nothing was logged in the window.
	Variance(ctx context.Context, days int) ([]VarianceResult, error)
}

type AnalysisServiceImpl struct {
	repo    AnalysisRepo
	targets TargetSource
	clock   utils.Clock
}

func NewAnalysisService(repo AnalysisRepo, targets TargetSource, clock utils.Clock) *AnalysisServiceImpl {
	return &AnalysisServiceImpl{repo: repo, targets: targets, clock: clock}
}

func (s *AnalysisServiceImpl) Variance(ctx context.Context, days int) ([]VarianceResult, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = DefaultWindowDays
	}
	fromDate := s.clock.Now().AddDate(0, 0, -days).Format("2006-01-02")

	total, err := s.repo.TotalDuration(ctx, userId, fromDate)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return []VarianceResult{}, nil
	}

	durations, err := s.repo.DurationsByProject(ctx, userId, fromDate)
	if err != nil {
		return nil, err
	}
	targets, err := s.targets.CurrentTargets(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]VarianceResult, 0, len(durations))
	for _, duration := range durations {
		actualPct := float64(duration.Seconds) / float64(total) * 100
		targetPct := targets[duration.ProjectID]
		variance := actualPct - float64(targetPct)

		status := StatusBalanced
		if variance > 10 {
			status = StatusOverInvested
		} else if variance < -10 {
			status = StatusUnderInvested
		}

		results = append(results, VarianceResult{
			ProjectID:        duration.ProjectID,
			ProjectName:      duration.ProjectName,
			TargetPercentage: targetPct,
			ActualPercentage: round1(actualPct),
			Variance:         round1(variance),
			Status:           status,
		})
	}
	return results, nil
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}
