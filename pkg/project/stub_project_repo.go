package project

import (
	"context"
	"sort"
)

type StubProjectRepo struct {
	data      map[string]Project
	counts    map[string]TaskCounts
	durations map[string]int64
}

func NewStubProjectRepo() *StubProjectRepo {
	return &StubProjectRepo{
		data:      map[string]Project{},
		counts:    map[string]TaskCounts{},
		durations: map[string]int64{},
	}
}

func (s *StubProjectRepo) SetAggregates(projectId string, counts TaskCounts, duration int64) {
	s.counts[projectId] = counts
	s.durations[projectId] = duration
}

func (s *StubProjectRepo) Store(ctx context.Context, project Project) error {
	s.data[project.ID] = project
	return nil
}

func (s *StubProjectRepo) Get(ctx context.Context, userId int, projectId string) (Project, error) {
	project, ok := s.data[projectId]
	if !ok || project.UserID != userId {
		return Project{}, ErrProjectNotFound
	}
	return project, nil
}

func (s *StubProjectRepo) GetAll(ctx context.Context, userId int) ([]Project, error) {
	var projects []Project
	for _, project := range s.data {
		if project.UserID == userId {
			projects = append(projects, project)
		}
	}
	sort.Slice(projects, func(i, j int) bool { return projects[i].ID < projects[j].ID })
	return projects, nil
}

func (s *StubProjectRepo) Update(ctx context.Context, userId int, project Project) (bool, error) {
	existing, ok := s.data[project.ID]
	if !ok || existing.UserID != userId {
		return false, nil
	}
	existing.Name = project.Name
	existing.ColorHex = project.ColorHex
	existing.Icon = project.Icon
	existing.Description = project.Description
	s.data[project.ID] = existing
	return true, nil
}

func (s *StubProjectRepo) UpdateStatus(ctx context.Context, userId int, projectId string, status Status) (bool, error) {
	existing, ok := s.data[projectId]
	if !ok || existing.UserID != userId {
		return false, nil
	}
	existing.Status = status
	s.data[projectId] = existing
	return true, nil
}

func (s *StubProjectRepo) Delete(ctx context.Context, userId int, projectId string) (bool, error) {
	existing, ok := s.data[projectId]
	if !ok || existing.UserID != userId {
		return false, nil
	}
	delete(s.data, projectId)
	return true, nil
}

func (s *StubProjectRepo) TaskCountsByProject(ctx context.Context, userId int) (map[string]TaskCounts, error) {
	return s.counts, nil
}

func (s *StubProjectRepo) DurationByProject(ctx context.Context, userId int) (map[string]int64, error) {
	return s.durations, nil
}
