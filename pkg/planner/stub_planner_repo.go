package planner

import "context"

type StubPlannerRepo struct {
	projects  []ProjectSnapshot
	durations map[string]int64
	pending   []PendingTask
}

func NewStubPlannerRepo() *StubPlannerRepo {
	return &StubPlannerRepo{durations: map[string]int64{}}
}

func (s *StubPlannerRepo) AddProject(projectId, name string) {
	s.projects = append(s.projects, ProjectSnapshot{ID: projectId, Name: name})
}

func (s *StubPlannerRepo) SetDuration(projectId string, seconds int64) {
	s.durations[projectId] = seconds
}

func (s *StubPlannerRepo) AddPendingTask(task PendingTask) {
	s.pending = append(s.pending, task)
}

func (s *StubPlannerRepo) Projects(ctx context.Context, userId int) ([]ProjectSnapshot, error) {
	return s.projects, nil
}

func (s *StubPlannerRepo) DurationsByProject(ctx context.Context, userId int, fromDate string) (map[string]int64, error) {
	return s.durations, nil
}

func (s *StubPlannerRepo) PendingTasks(ctx context.Context, userId int) ([]PendingTask, error) {
	return s.pending, nil
}
