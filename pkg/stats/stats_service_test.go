package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
)

type stubTargetSource struct {
	targets map[string]int
}

func (s *stubTargetSource) CurrentTargets(ctx context.Context) (map[string]int, error) {
	return s.targets, nil
}

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "tester"})
}

// today is fixed to 2025-03-10 in every test.
func newService(targets map[string]int) (*StatsServiceImpl, *StubStatsRepo) {
	repo := NewStubStatsRepo()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	return NewStatsService(repo, &stubTargetSource{targets: targets}, clock), repo
}

func TestParsePeriod(t *testing.T) {
	assert.Equal(t, PeriodWeek, ParsePeriod("week"))
	assert.Equal(t, PeriodMonth, ParsePeriod("month"))
	assert.Equal(t, PeriodAll, ParsePeriod("all"))
	assert.Equal(t, PeriodWeek, ParsePeriod(""))
	assert.Equal(t, PeriodWeek, ParsePeriod("year"))
}

func TestDateRange(t *testing.T) {
	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

	from, to := PeriodWeek.DateRange(now)
	assert.Equal(t, "2025-03-03", from)
	assert.Equal(t, "2025-03-10", to)

	from, to = PeriodMonth.DateRange(now)
	assert.Equal(t, "2025-03-01", from)
	assert.Equal(t, "2025-03-10", to)

	from, _ = PeriodAll.DateRange(now)
	assert.Equal(t, "0001-01-01", from)
}

func TestOverview(t *testing.T) {
	ctx := testContext()

	t.Run("zeroes when nothing was logged", func(t *testing.T) {
		service, _ := newService(map[string]int{})

		overview, err := service.Overview(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Equal(t, Overview{}, overview)
	})

	t.Run("aggregates the window", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 60})
		repo.AddProject(ProjectInfo{ID: "go", Name: "Learn Go", Status: "active"})
		repo.SetTaskCounts("go", TaskCounts{Total: 4, Completed: 1})
		repo.AddLog("go", "2025-03-08", 3600)
		repo.AddLog("go", "2025-03-10", 1800)
		// outside the weekly window
		repo.AddLog("go", "2025-02-01", 9999)

		overview, err := service.Overview(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Equal(t, int64(5400), overview.TotalDuration)
		assert.Equal(t, 2, overview.StudyDays)
		assert.Equal(t, int64(2700), overview.AvgDailyDuration)
		assert.Equal(t, int64(1800), overview.TodayDuration)
		assert.Equal(t, 1, overview.CompletedTasks)
		assert.Equal(t, 3, overview.PendingTasks)
		assert.Equal(t, 1, overview.ActiveProjects)
	})

	t.Run("average duration floors", func(t *testing.T) {
		service, repo := newService(map[string]int{})
		repo.AddLog("go", "2025-03-08", 500)
		repo.AddLog("go", "2025-03-09", 500)
		repo.AddLog("go", "2025-03-10", 500)

		overview, err := service.Overview(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Equal(t, int64(500), overview.AvgDailyDuration)

		repo.AddLog("go", "2025-03-10", 1)
		overview, err = service.Overview(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Equal(t, int64(500), overview.AvgDailyDuration)
	})

	t.Run("energy rate counts budgeted projects near target", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 60, "piano": 40})
		// go gets 65%, piano 35%: both within ten points
		repo.AddLog("go", "2025-03-09", 650)
		repo.AddLog("piano", "2025-03-09", 350)
		repo.AddProject(ProjectInfo{ID: "go", Name: "Learn Go", Status: "active"})
		repo.AddProject(ProjectInfo{ID: "piano", Name: "Piano", Status: "active"})

		overview, err := service.Overview(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Equal(t, 100, overview.EnergyRate)
	})

	t.Run("energy rate halves when one project drifts", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 60, "piano": 40})
		repo.AddLog("go", "2025-03-09", 900)
		repo.AddLog("piano", "2025-03-09", 100)

		overview, err := service.Overview(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Equal(t, 0, overview.EnergyRate)
	})
}

func TestDailyTrend(t *testing.T) {
	ctx := testContext()
	service, repo := newService(map[string]int{})
	repo.AddLog("go", "2025-03-08", 600)
	repo.AddLog("go", "2025-03-10", 300)
	repo.AddLog("go", "2025-03-10", 100)

	trend, err := service.DailyTrend(ctx, PeriodWeek)
	assert.NoError(t, err)
	// only days with entries appear, ascending
	assert.Equal(t, []DailyDuration{
		{Date: "2025-03-08", Duration: 600},
		{Date: "2025-03-10", Duration: 400},
	}, trend)
}

func TestProjectDistribution(t *testing.T) {
	ctx := testContext()
	service, repo := newService(map[string]int{})
	repo.AddProject(ProjectInfo{ID: "go", Name: "Learn Go", ColorHex: "#112233", Icon: "fas fa-book", Status: "active"})
	repo.AddProject(ProjectInfo{ID: "idle", Name: "Idle", Status: "active"})
	repo.AddLog("go", "2025-03-09", 1200)

	distribution, err := service.ProjectDistribution(ctx, PeriodWeek)
	assert.NoError(t, err)
	// projects without activity are excluded
	assert.Len(t, distribution, 1)
	assert.Equal(t, "Learn Go", distribution[0].Name)
	assert.Equal(t, int64(1200), distribution[0].Duration)
}

func TestEnergyDistribution(t *testing.T) {
	ctx := testContext()

	t.Run("covers every project including idle ones", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 60})
		repo.AddProject(ProjectInfo{ID: "go", Name: "Learn Go", Status: "active"})
		repo.AddProject(ProjectInfo{ID: "idle", Name: "Idle", Status: "active"})
		repo.SetTaskCounts("go", TaskCounts{Total: 3, Completed: 2})
		repo.AddLog("go", "2025-03-09", 2000)
		repo.AddLog("idle", "2025-02-01", 500)

		results, err := service.EnergyDistribution(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Len(t, results, 2)

		assert.Equal(t, 60, results[0].TargetEnergy)
		assert.Equal(t, 100, results[0].ActualEnergy)
		assert.Equal(t, int64(2000), results[0].TotalDuration)
		assert.Equal(t, 3, results[0].TotalTasks)
		assert.Equal(t, 2, results[0].CompletedTasks)

		assert.Equal(t, 0, results[1].TargetEnergy)
		assert.Equal(t, 0, results[1].ActualEnergy)
		assert.Equal(t, int64(0), results[1].TotalDuration)
	})

	t.Run("zero denominator yields zero shares", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 60})
		repo.AddProject(ProjectInfo{ID: "go", Name: "Learn Go", Status: "active"})

		results, err := service.EnergyDistribution(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Len(t, results, 1)
		assert.Equal(t, 0, results[0].ActualEnergy)
	})

	t.Run("rounds the actual share", func(t *testing.T) {
		service, repo := newService(map[string]int{})
		repo.AddProject(ProjectInfo{ID: "go", Name: "Learn Go", Status: "active"})
		repo.AddProject(ProjectInfo{ID: "piano", Name: "Piano", Status: "active"})
		repo.AddLog("go", "2025-03-09", 1)
		repo.AddLog("piano", "2025-03-09", 2)

		results, err := service.EnergyDistribution(ctx, PeriodWeek)
		assert.NoError(t, err)
		assert.Equal(t, 33, results[0].ActualEnergy)
		assert.Equal(t, 67, results[1].ActualEnergy)
	})
}
