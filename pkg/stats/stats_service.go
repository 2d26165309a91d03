package stats

import (
	"context"
	"math"

	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
)

// TargetSource provides the open budget target of every project owned by
// the current user.
type TargetSource interface {
	CurrentTargets(ctx context.Context) (map[string]int, error)
}

type StatsService interface {
	Overview(ctx context.Context, period Period) (Overview, error)
	ProjectDistribution(ctx context.Context, period Period) ([]ProjectTime, error)
	DailyTrend(ctx context.Context, period Period) ([]DailyDuration, error)
	EnergyDistribution(ctx context.Context, period Period) ([]EnergyDistribution, error)
}

type StatsServiceImpl struct {
	repo    StatsRepo
	targets TargetSource
	clock   utils.Clock
}

func NewStatsService(repo StatsRepo, targets TargetSource, clock utils.Clock) *StatsServiceImpl {
	return &StatsServiceImpl{repo: repo, targets: targets, clock: clock}
}

func (s *StatsServiceImpl) Overview(ctx context.Context, period Period) (Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Overview{}, err
	}
	from, to := period.DateRange(s.clock.Now())

	totalDuration, err := s.repo.TotalDuration(ctx, userId, from, to)
	if err != nil {
		return Overview{}, err
	}
	studyDays, err := s.repo.StudyDays(ctx, userId, from, to)
	if err != nil {
		return Overview{}, err
	}
	completedTasks, err := s.repo.CompletedTasks(ctx, userId)
	if err != nil {
		return Overview{}, err
	}
	pendingTasks, err := s.repo.PendingTasks(ctx, userId)
	if err != nil {
		return Overview{}, err
	}
	activeProjects, err := s.repo.ActiveProjects(ctx, userId)
	if err != nil {
		return Overview{}, err
	}
	todayDuration, err := s.repo.TotalDuration(ctx, userId, to, to)
	if err != nil {
		return Overview{}, err
	}
	energyRate, err := s.energyRate(ctx, userId, from, to, totalDuration)
	if err != nil {
		return Overview{}, err
	}

	var avgDaily int64
	if studyDays > 0 {
		avgDaily = totalDuration / int64(studyDays)
	}
	return Overview{
		TotalDuration:    totalDuration,
		CompletedTasks:   completedTasks,
		StudyDays:        studyDays,
		AvgDailyDuration: avgDaily,
		TodayDuration:    todayDuration,
		ActiveProjects:   activeProjects,
		PendingTasks:     pendingTasks,
		EnergyRate:       energyRate,
	}, nil
}

// energyRate is the share of budgeted projects whose actual allocation in
// the window lands within ten points of their target.
func (s *StatsServiceImpl) energyRate(ctx context.Context, userId int, from, to string, totalDuration int64) (int, error) {
	targets, err := s.targets.CurrentTargets(ctx)
	if err != nil {
		return 0, err
	}
	if len(targets) == 0 {
		return 0, nil
	}

	durations := map[string]int64{}
	if totalDuration > 0 {
		distribution, err := s.repo.ProjectDistribution(ctx, userId, from, to)
		if err != nil {
			return 0, err
		}
		for _, entry := range distribution {
			durations[entry.ProjectID] = entry.Duration
		}
	}

	balanced := 0
	for projectId, target := range targets {
		actual := 0.0
		if totalDuration > 0 {
			actual = float64(durations[projectId]) / float64(totalDuration) * 100
		}
		if math.Abs(actual-float64(target)) <= 10 {
			balanced++
		}
	}
	return int(math.Round(float64(balanced) / float64(len(targets)) * 100)), nil
}

func (s *StatsServiceImpl) ProjectDistribution(ctx context.Context, period Period) ([]ProjectTime, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	from, to := period.DateRange(s.clock.Now())
	return s.repo.ProjectDistribution(ctx, userId, from, to)
}

func (s *StatsServiceImpl) DailyTrend(ctx context.Context, period Period) ([]DailyDuration, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	from, to := period.DateRange(s.clock.Now())
	return s.repo.DailyTrend(ctx, userId, from, to)
}

func (s *StatsServiceImpl) EnergyDistribution(ctx context.Context, period Period) ([]EnergyDistribution, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	from, to := period.DateRange(s.clock.Now())

	projects, err := s.repo.AllProjects(ctx, userId)
	if err != nil {
		return nil, err
	}
	targets, err := s.targets.CurrentTargets(ctx)
	if err != nil {
		return nil, err
	}
	taskCounts, err := s.repo.TaskCountsByProject(ctx, userId)
	if err != nil {
		return nil, err
	}
	totalDuration, err := s.repo.TotalDuration(ctx, userId, from, to)
	if err != nil {
		return nil, err
	}
	durations := map[string]int64{}
	if totalDuration > 0 {
		distribution, err := s.repo.ProjectDistribution(ctx, userId, from, to)
		if err != nil {
			return nil, err
		}
		for _, entry := range distribution {
			durations[entry.ProjectID] = entry.Duration
		}
	}

	results := make([]EnergyDistribution, 0, len(projects))
	for _, project := range projects {
		duration := durations[project.ID]
		actualEnergy := 0
		if totalDuration > 0 {
			actualEnergy = int(math.Round(float64(duration) / float64(totalDuration) * 100))
		}
		counts := taskCounts[project.ID]
		results = append(results, EnergyDistribution{
			ProjectID:      project.ID,
			Name:           project.Name,
			ColorHex:       project.ColorHex,
			Icon:           project.Icon,
			TargetEnergy:   targets[project.ID],
			ActualEnergy:   actualEnergy,
			TotalDuration:  duration,
			CompletedTasks: counts.Completed,
			TotalTasks:     counts.Total,
		})
	}
	return results, nil
}
