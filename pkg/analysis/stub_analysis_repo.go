package analysis

import "context"

type StubAnalysisRepo struct {
	durations []ProjectDuration
}

func NewStubAnalysisRepo() *StubAnalysisRepo {
	return &StubAnalysisRepo{}
}

func (s *StubAnalysisRepo) SetDurations(durations []ProjectDuration) {
	s.durations = durations
}

func (s *StubAnalysisRepo) TotalDuration(ctx context.Context, userId int, fromDate string) (int64, error) {
	var total int64
	for _, duration := range s.durations {
		total += duration.Seconds
	}
	return total, nil
}

func (s *StubAnalysisRepo) DurationsByProject(ctx context.Context, userId int, fromDate string) ([]ProjectDuration, error) {
	return s.durations, nil
}
