package task

import (
	"context"
	"sort"
)

type StubTaskRepo struct {
	tasks         map[string]Task
	projectOwners map[string]int
	projectNames  map[string]string
	durations     map[string]int64
}

func NewStubTaskRepo() *StubTaskRepo {
	return &StubTaskRepo{
		tasks:         map[string]Task{},
		projectOwners: map[string]int{},
		projectNames:  map[string]string{},
		durations:     map[string]int64{},
	}
}

func (s *StubTaskRepo) AddProject(projectId string, userId int, name string) {
	s.projectOwners[projectId] = userId
	s.projectNames[projectId] = name
}

func (s *StubTaskRepo) SetDuration(taskId string, seconds int64) {
	s.durations[taskId] = seconds
}

func (s *StubTaskRepo) Store(ctx context.Context, task Task) error {
	s.tasks[task.ID] = task
	return nil
}

func (s *StubTaskRepo) Get(ctx context.Context, userId int, taskId string) (Task, error) {
	task, ok := s.tasks[taskId]
	if !ok || s.projectOwners[task.ProjectID] != userId {
		return Task{}, ErrTaskNotFound
	}
	return task, nil
}

func (s *StubTaskRepo) GetAll(ctx context.Context, userId int, projectId string) ([]Detail, error) {
	var details []Detail
	for _, task := range s.tasks {
		if s.projectOwners[task.ProjectID] != userId {
			continue
		}
		if projectId != "" && task.ProjectID != projectId {
			continue
		}
		details = append(details, Detail{
			Task:          task,
			ProjectName:   s.projectNames[task.ProjectID],
			TotalDuration: s.durations[task.ID],
		})
	}
	sort.Slice(details, func(i, j int) bool {
		if !details[i].CreatedAt.Equal(details[j].CreatedAt) {
			return details[i].CreatedAt.After(details[j].CreatedAt)
		}
		return details[i].ID < details[j].ID
	})
	return details, nil
}

func (s *StubTaskRepo) Update(ctx context.Context, userId int, task Task) (bool, error) {
	existing, ok := s.tasks[task.ID]
	if !ok || s.projectOwners[existing.ProjectID] != userId {
		return false, nil
	}
	task.ProjectID = existing.ProjectID
	task.CreatedAt = existing.CreatedAt
	s.tasks[task.ID] = task
	return true, nil
}

func (s *StubTaskRepo) Delete(ctx context.Context, userId int, taskId string) (bool, error) {
	task, ok := s.tasks[taskId]
	if !ok || s.projectOwners[task.ProjectID] != userId {
		return false, nil
	}
	delete(s.tasks, taskId)
	return true, nil
}

func (s *StubTaskRepo) ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error) {
	owner, ok := s.projectOwners[projectId]
	return ok && owner == userId, nil
}
