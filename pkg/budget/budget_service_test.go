package budget

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/user"
)

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "tester"})
}

func TestSetTarget(t *testing.T) {
	ctx := testContext()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("first target opens a period", func(t *testing.T) {
		repo := NewStubBudgetRepo()
		repo.AddProject("p-1", 1)
		service := NewBudgetService(repo, &utils.MockClock{FixedNow: now})

		period, err := service.SetTarget(ctx, "p-1", 40)
		assert.NoError(t, err)
		assert.Equal(t, 40, period.TargetPercentage)
		assert.Equal(t, now, period.ValidFrom)
		assert.Nil(t, period.ValidTo)
	})

	t.Run("changing the target closes the old period and opens a new one", func(t *testing.T) {
		repo := NewStubBudgetRepo()
		repo.AddProject("p-1", 1)
		clock := &utils.MockClock{FixedNow: now}
		service := NewBudgetService(repo, clock)

		first, err := service.SetTarget(ctx, "p-1", 40)
		assert.NoError(t, err)

		later := now.Add(48 * time.Hour)
		clock.SetNow(later)
		second, err := service.SetTarget(ctx, "p-1", 60)
		assert.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, later, second.ValidFrom)

		history, err := service.History(ctx, "p-1")
		assert.NoError(t, err)
		assert.Len(t, history, 2)
		assert.NotNil(t, history[0].ValidTo)
		assert.Equal(t, later, *history[0].ValidTo)
		assert.Nil(t, history[1].ValidTo)
	})

	t.Run("setting the same target twice is a no-op", func(t *testing.T) {
		repo := NewStubBudgetRepo()
		repo.AddProject("p-1", 1)
		clock := &utils.MockClock{FixedNow: now}
		service := NewBudgetService(repo, clock)

		first, err := service.SetTarget(ctx, "p-1", 40)
		assert.NoError(t, err)

		clock.SetNow(now.Add(time.Hour))
		second, err := service.SetTarget(ctx, "p-1", 40)
		assert.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.ValidFrom, second.ValidFrom)

		history, err := service.History(ctx, "p-1")
		assert.NoError(t, err)
		assert.Len(t, history, 1)
		assert.Nil(t, history[0].ValidTo)
	})

	t.Run("rejects target outside 0-100", func(t *testing.T) {
		repo := NewStubBudgetRepo()
		repo.AddProject("p-1", 1)
		service := NewBudgetService(repo, &utils.MockClock{FixedNow: now})

		_, err := service.SetTarget(ctx, "p-1", 101)
		assert.ErrorIs(t, err, ErrInvalidTarget)
		_, err = service.SetTarget(ctx, "p-1", -1)
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("rejects project the user does not own", func(t *testing.T) {
		repo := NewStubBudgetRepo()
		repo.AddProject("p-other", 99)
		service := NewBudgetService(repo, &utils.MockClock{FixedNow: now})

		_, err := service.SetTarget(ctx, "p-other", 40)
		assert.ErrorIs(t, err, ErrProjectNotFound)
	})
}

func TestCurrentTarget(t *testing.T) {
	ctx := testContext()
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

	t.Run("returns zero when no budget exists", func(t *testing.T) {
		repo := NewStubBudgetRepo()
		repo.AddProject("p-1", 1)
		service := NewBudgetService(repo, &utils.MockClock{FixedNow: now})

		target, err := service.CurrentTarget(ctx, "p-1")
		assert.NoError(t, err)
		assert.Equal(t, 0, target)
	})

	t.Run("returns the open period's target after changes", func(t *testing.T) {
		repo := NewStubBudgetRepo()
		repo.AddProject("p-1", 1)
		clock := &utils.MockClock{FixedNow: now}
		service := NewBudgetService(repo, clock)

		_, err := service.SetTarget(ctx, "p-1", 30)
		assert.NoError(t, err)
		clock.SetNow(now.Add(time.Hour))
		_, err = service.SetTarget(ctx, "p-1", 55)
		assert.NoError(t, err)

		target, err := service.CurrentTarget(ctx, "p-1")
		assert.NoError(t, err)
		assert.Equal(t, 55, target)
	})
}
