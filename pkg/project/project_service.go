package project

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/yann-lu/mind-balance/internal/utils"
	"github.com/yann-lu/mind-balance/pkg/budget"
	"github.com/yann-lu/mind-balance/pkg/user"
	log "github.com/sirupsen/logrus"
)

// TargetStore is the slice of the budget service this package needs.
type TargetStore interface {
	SetTarget(ctx context.Context, projectId string, target int) (budget.Period, error)
	CurrentTargets(ctx context.Context) (map[string]int, error)
}

type ProjectService interface {
	List(ctx context.Context) ([]Overview, error)
	Get(ctx context.Context, projectId string) (Overview, error)
	Create(ctx context.Context, project Project, energyPercent int) (Overview, error)
	Update(ctx context.Context, project Project) (Overview, error)
	Complete(ctx context.Context, projectId string) error
	Delete(ctx context.Context, projectId string) error
}

type ProjectServiceImpl struct {
	repo    ProjectRepo
	targets TargetStore
	clock   utils.Clock
}

func NewProjectService(repo ProjectRepo, targets TargetStore, clock utils.Clock) *ProjectServiceImpl {
	return &ProjectServiceImpl{repo: repo, targets: targets, clock: clock}
}

func (s *ProjectServiceImpl) List(ctx context.Context) ([]Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	projects, err := s.repo.GetAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	overviews, err := s.buildOverviews(ctx, userId, projects)
	if err != nil {
		return nil, err
	}
	return overviews, nil
}

func (s *ProjectServiceImpl) Get(ctx context.Context, projectId string) (Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get current user: %w", err)
	}

	project, err := s.repo.Get(ctx, userId, projectId)
	if err != nil {
		return Overview{}, err
	}
	overviews, err := s.buildOverviews(ctx, userId, []Project{project})
	if err != nil {
		return Overview{}, err
	}
	return overviews[0], nil
}

func (s *ProjectServiceImpl) Create(ctx context.Context, project Project, energyPercent int) (Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get current user: %w", err)
	}

	project.ID = uuid.NewString()
	project.UserID = userId
	project.CreatedAt = s.clock.Now()
	if project.Status == "" {
		project.Status = StatusActive
	}
	if project.ColorHex == "" {
		project.ColorHex = "#000000"
	}
	if project.Icon == "" {
		project.Icon = "fas fa-book"
	}

	if err := s.repo.Store(ctx, project); err != nil {
		return Overview{}, err
	}

	if energyPercent > 0 {
		if _, err := s.targets.SetTarget(ctx, project.ID, energyPercent); err != nil {
			return Overview{}, fmt.Errorf("failed to set initial budget target: %w", err)
		}
	}

	return Overview{Project: project, EnergyPercent: energyPercent}, nil
}

func (s *ProjectServiceImpl) Update(ctx context.Context, project Project) (Overview, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.Update(ctx, userId, project)
	if err != nil {
		return Overview{}, err
	}
	if !updated {
		log.Warnf("project %s not updated, it does not exist or user %d is not the owner", project.ID, userId)
		return Overview{}, ErrProjectNotFound
	}
	return s.Get(ctx, project.ID)
}

func (s *ProjectServiceImpl) Complete(ctx context.Context, projectId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	updated, err := s.repo.UpdateStatus(ctx, userId, projectId, StatusCompleted)
	if err != nil {
		return err
	}
	if !updated {
		return ErrProjectNotFound
	}
	return nil
}

func (s *ProjectServiceImpl) Delete(ctx context.Context, projectId string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	deleted, err := s.repo.Delete(ctx, userId, projectId)
	if err != nil {
		return err
	}
	if !deleted {
		log.Warnf("project %s not deleted, it does not exist or user %d is not the owner", projectId, userId)
		return ErrProjectNotFound
	}
	return nil
}

func (s *ProjectServiceImpl) buildOverviews(ctx context.Context, userId int, projects []Project) ([]Overview, error) {
	targets, err := s.targets.CurrentTargets(ctx)
	if err != nil {
		return nil, err
	}
	taskCounts, err := s.repo.TaskCountsByProject(ctx, userId)
	if err != nil {
		return nil, err
	}
	durations, err := s.repo.DurationByProject(ctx, userId)
	if err != nil {
		return nil, err
	}

	overviews := make([]Overview, 0, len(projects))
	for _, project := range projects {
		counts := taskCounts[project.ID]
		overviews = append(overviews, Overview{
			Project:        project,
			EnergyPercent:  targets[project.ID],
			TotalTasks:     counts.Total,
			CompletedTasks: counts.Completed,
			TotalDuration:  durations[project.ID],
		})
	}
	return overviews, nil
}
