package analysis

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

func newService(targets map[string]int) (*AnalysisServiceImpl, *StubAnalysisRepo) {
	repo := NewStubAnalysisRepo()
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	return NewAnalysisService(repo, &stubTargetSource{targets: targets}, clock), repo
}

func TestVariance(t *testing.T) {
	ctx := testContext()

	t.Run("empty report when nothing was logged", func(t *testing.T) {
		service, _ := newService(map[string]int{})

		results, err := service.Variance(ctx, 7)
		assert.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("boundary variance of exactly ten is balanced", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 50, "piano": 40})
		repo.SetDurations([]ProjectDuration{
			{ProjectID: "go", ProjectName: "Learn Go", Seconds: 600},
			{ProjectID: "piano", ProjectName: "Piano", Seconds: 400},
		})

		results, err := service.Variance(ctx, 7)
		assert.NoError(t, err)
		assert.Len(t, results, 2)

		assert.Equal(t, 60.0, results[0].ActualPercentage)
		assert.Equal(t, 10.0, results[0].Variance)
		assert.Equal(t, StatusBalanced, results[0].Status)

		assert.Equal(t, 40.0, results[1].ActualPercentage)
		assert.Equal(t, 0.0, results[1].Variance)
		assert.Equal(t, StatusBalanced, results[1].Status)
	})

	t.Run("over ten points above target is over-invested", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 30})
		repo.SetDurations([]ProjectDuration{
			{ProjectID: "go", ProjectName: "Learn Go", Seconds: 600},
			{ProjectID: "piano", ProjectName: "Piano", Seconds: 400},
		})

		results, err := service.Variance(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, 30.0, results[0].Variance)
		assert.Equal(t, StatusOverInvested, results[0].Status)
	})

	t.Run("projects without a target measure against zero", func(t *testing.T) {
		service, repo := newService(map[string]int{"go": 80})
		repo.SetDurations([]ProjectDuration{
			{ProjectID: "go", ProjectName: "Learn Go", Seconds: 100},
			{ProjectID: "piano", ProjectName: "Piano", Seconds: 900},
		})

		results, err := service.Variance(ctx, 7)
		assert.NoError(t, err)

		assert.Equal(t, 10.0, results[0].ActualPercentage)
		assert.Equal(t, -70.0, results[0].Variance)
		assert.Equal(t, StatusUnderInvested, results[0].Status)

		assert.Equal(t, 0, results[1].TargetPercentage)
		assert.Equal(t, 90.0, results[1].ActualPercentage)
		assert.Equal(t, StatusOverInvested, results[1].Status)
	})

	t.Run("percentages are rounded to one decimal", func(t *testing.T) {
		service, repo := newService(map[string]int{})
		repo.SetDurations([]ProjectDuration{
			{ProjectID: "go", ProjectName: "Learn Go", Seconds: 1},
			{ProjectID: "piano", ProjectName: "Piano", Seconds: 2},
		})

		results, err := service.Variance(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, 33.3, results[0].ActualPercentage)
		assert.Equal(t, 66.7, results[1].ActualPercentage)
	})
}
