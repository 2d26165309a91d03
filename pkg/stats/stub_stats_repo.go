package stats

import (
	"context"
	"sort"
)

type stubLogEntry struct {
	projectId string
	logDate   string
	seconds   int64
}

type StubStatsRepo struct {
	projects   []ProjectInfo
	logs       []stubLogEntry
	taskCounts map[string]TaskCounts
}

func NewStubStatsRepo() *StubStatsRepo {
	return &StubStatsRepo{taskCounts: map[string]TaskCounts{}}
}

func (s *StubStatsRepo) AddProject(project ProjectInfo) {
	s.projects = append(s.projects, project)
}

func (s *StubStatsRepo) AddLog(projectId, logDate string, seconds int64) {
	s.logs = append(s.logs, stubLogEntry{projectId: projectId, logDate: logDate, seconds: seconds})
}

func (s *StubStatsRepo) SetTaskCounts(projectId string, counts TaskCounts) {
	s.taskCounts[projectId] = counts
}

func (s *StubStatsRepo) inRange(entry stubLogEntry, from, to string) bool {
	return entry.logDate >= from && entry.logDate <= to
}

func (s *StubStatsRepo) TotalDuration(ctx context.Context, userId int, from, to string) (int64, error) {
	var total int64
	for _, entry := range s.logs {
		if s.inRange(entry, from, to) {
			total += entry.seconds
		}
	}
	return total, nil
}

func (s *StubStatsRepo) StudyDays(ctx context.Context, userId int, from, to string) (int, error) {
	days := map[string]bool{}
	for _, entry := range s.logs {
		if s.inRange(entry, from, to) {
			days[entry.logDate] = true
		}
	}
	return len(days), nil
}

func (s *StubStatsRepo) CompletedTasks(ctx context.Context, userId int) (int, error) {
	total := 0
	for _, counts := range s.taskCounts {
		total += counts.Completed
	}
	return total, nil
}

func (s *StubStatsRepo) PendingTasks(ctx context.Context, userId int) (int, error) {
	total := 0
	for _, counts := range s.taskCounts {
		total += counts.Total - counts.Completed
	}
	return total, nil
}

func (s *StubStatsRepo) ActiveProjects(ctx context.Context, userId int) (int, error) {
	count := 0
	for _, project := range s.projects {
		if project.Status == "active" {
			count++
		}
	}
	return count, nil
}

func (s *StubStatsRepo) AllProjects(ctx context.Context, userId int) ([]ProjectInfo, error) {
	return s.projects, nil
}

func (s *StubStatsRepo) ProjectDistribution(ctx context.Context, userId int, from, to string) ([]ProjectTime, error) {
	byProject := map[string]int64{}
	for _, entry := range s.logs {
		if s.inRange(entry, from, to) {
			byProject[entry.projectId] += entry.seconds
		}
	}

	var distribution []ProjectTime
	for _, project := range s.projects {
		duration, ok := byProject[project.ID]
		if !ok {
			continue
		}
		distribution = append(distribution, ProjectTime{
			ProjectID: project.ID,
			Name:      project.Name,
			ColorHex:  project.ColorHex,
			Icon:      project.Icon,
			Duration:  duration,
		})
	}
	sort.Slice(distribution, func(i, j int) bool {
		return distribution[i].Duration > distribution[j].Duration
	})
	return distribution, nil
}

func (s *StubStatsRepo) DailyTrend(ctx context.Context, userId int, from, to string) ([]DailyDuration, error) {
	byDay := map[string]int64{}
	for _, entry := range s.logs {
		if s.inRange(entry, from, to) {
			byDay[entry.logDate] += entry.seconds
		}
	}

	var trend []DailyDuration
	for date, duration := range byDay {
		trend = append(trend, DailyDuration{Date: date, Duration: duration})
	}
	sort.Slice(trend, func(i, j int) bool {
		return trend[i].Date < trend[j].Date
	})
	return trend, nil
}

func (s *StubStatsRepo) TaskCountsByProject(ctx context.Context, userId int) (map[string]TaskCounts, error) {
	return s.taskCounts, nil
}
