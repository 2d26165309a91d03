package budget

import (
	"context"
	"time"
)

type StubBudgetRepo struct {
	nextId        int
	data          map[int]Period
	ownedProjects map[string]int
}

func NewStubBudgetRepo() *StubBudgetRepo {
	return &StubBudgetRepo{
		data:          map[int]Period{},
		ownedProjects: map[string]int{},
	}
}

// AddProject registers a project as owned by userId so ownership checks pass.
func (s *StubBudgetRepo) AddProject(projectId string, userId int) {
	s.ownedProjects[projectId] = userId
}

func (s *StubBudgetRepo) Store(ctx context.Context, period Period) (int, error) {
	s.nextId++
	period.ID = s.nextId
	s.data[period.ID] = period
	return period.ID, nil
}

func (s *StubBudgetRepo) FindCurrent(ctx context.Context, projectId string) (*Period, error) {
	for _, period := range s.data {
		if period.ProjectID == projectId && period.ValidTo == nil {
			p := period
			return &p, nil
		}
	}
	return nil, nil
}

func (s *StubBudgetRepo) Close(ctx context.Context, periodId int, at time.Time) error {
	period, ok := s.data[periodId]
	if ok && period.ValidTo == nil {
		period.ValidTo = &at
		s.data[periodId] = period
	}
	return nil
}

func (s *StubBudgetRepo) History(ctx context.Context, projectId string) ([]Period, error) {
	var periods []Period
	for id := 1; id <= s.nextId; id++ {
		if period, ok := s.data[id]; ok && period.ProjectID == projectId {
			periods = append(periods, period)
		}
	}
	return periods, nil
}

func (s *StubBudgetRepo) CurrentTargets(ctx context.Context, userId int) (map[string]int, error) {
	targets := map[string]int{}
	for _, period := range s.data {
		if period.ValidTo != nil {
			continue
		}
		if owner, ok := s.ownedProjects[period.ProjectID]; ok && owner == userId {
			targets[period.ProjectID] = period.TargetPercentage
		}
	}
	return targets, nil
}

func (s *StubBudgetRepo) ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error) {
	owner, ok := s.ownedProjects[projectId]
	return ok && owner == userId, nil
}
