package project

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/budget"
	"github.com/yann-lu/mind-balance/pkg/user"
)

type stubTargetStore struct {
	targets map[string]int
}

func (s *stubTargetStore) SetTarget(ctx context.Context, projectId string, target int) (budget.Period, error) {
	s.targets[projectId] = target
	return budget.Period{ProjectID: projectId, TargetPercentage: target}, nil
}

func (s *stubTargetStore) CurrentTargets(ctx context.Context) (map[string]int, error) {
	return s.targets, nil
}

func testContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1, Uid: "u-1", Username: "tester"})
}

func newService() (*ProjectServiceImpl, *StubProjectRepo, *stubTargetStore) {
	repo := NewStubProjectRepo()
	targets := &stubTargetStore{targets: map[string]int{}}
	clock := &utils.MockClock{FixedNow: time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)}
	return NewProjectService(repo, targets, clock), repo, targets
}

func TestCreateProject(t *testing.T) {
	ctx := testContext()

	t.Run("applies defaults and opens initial budget", func(t *testing.T) {
		service, _, targets := newService()

		overview, err := service.Create(ctx, Project{Name: "Learn Go"}, 50)
		assert.NoError(t, err)
		assert.NotEmpty(t, overview.ID)
		assert.Equal(t, StatusActive, overview.Status)
		assert.Equal(t, "#000000", overview.ColorHex)
		assert.Equal(t, "fas fa-book", overview.Icon)
		assert.Equal(t, 50, overview.EnergyPercent)
		assert.Equal(t, 50, targets.targets[overview.ID])
	})

	t.Run("zero energy percent opens no budget", func(t *testing.T) {
		service, _, targets := newService()

		overview, err := service.Create(ctx, Project{Name: "Side quest"}, 0)
		assert.NoError(t, err)
		assert.Empty(t, targets.targets)
		assert.Equal(t, 0, overview.EnergyPercent)
	})
}

func TestListProjects(t *testing.T) {
	ctx := testContext()
	service, repo, targets := newService()

	created, err := service.Create(ctx, Project{Name: "Learn Go"}, 40)
	assert.NoError(t, err)
	repo.SetAggregates(created.ID, TaskCounts{Total: 5, Completed: 2}, 3600)
	targets.targets[created.ID] = 40

	overviews, err := service.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, overviews, 1)
	assert.Equal(t, 40, overviews[0].EnergyPercent)
	assert.Equal(t, 5, overviews[0].TotalTasks)
	assert.Equal(t, 2, overviews[0].CompletedTasks)
	assert.Equal(t, int64(3600), overviews[0].TotalDuration)
	assert.False(t, overviews[0].IsCompleted())
}

func TestCompleteProject(t *testing.T) {
	ctx := testContext()
	service, repo, _ := newService()

	created, err := service.Create(ctx, Project{Name: "Learn Go"}, 0)
	assert.NoError(t, err)

	assert.NoError(t, service.Complete(ctx, created.ID))
	stored, err := repo.Get(ctx, 1, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, StatusCompleted, stored.Status)

	assert.ErrorIs(t, service.Complete(ctx, "missing"), ErrProjectNotFound)
}

func TestDeleteProject(t *testing.T) {
	ctx := testContext()
	service, repo, _ := newService()

	created, err := service.Create(ctx, Project{Name: "Learn Go"}, 0)
	assert.NoError(t, err)

	assert.NoError(t, service.Delete(ctx, created.ID))
	_, err = repo.Get(ctx, 1, created.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)

	assert.ErrorIs(t, service.Delete(ctx, created.ID), ErrProjectNotFound)
}

func TestUpdateProject(t *testing.T) {
	ctx := testContext()
	service, _, _ := newService()

	_, err := service.Update(ctx, Project{ID: "missing", Name: "Renamed"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	created, err := service.Create(ctx, Project{Name: "Learn Go"}, 0)
	assert.NoError(t, err)

	updated, err := service.Update(ctx, Project{ID: created.ID, Name: "Learn Go deeply", ColorHex: "#112233"})
	assert.NoError(t, err)
	assert.Equal(t, "Learn Go deeply", updated.Name)
	assert.Equal(t, "#112233", updated.ColorHex)
}
