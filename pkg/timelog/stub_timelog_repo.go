package timelog

import (
	"context"
	"sort"
	"time"
)

type stubTask struct {
	projectId string
	title     string
	userId    int
}

type StubTimeLogRepo struct {
	entries       map[string]TimeLog
	tasks         map[string]stubTask
	projectOwners map[string]int
	projectNames  map[string]string
}

func NewStubTimeLogRepo() *StubTimeLogRepo {
	return &StubTimeLogRepo{
		entries:       map[string]TimeLog{},
		tasks:         map[string]stubTask{},
		projectOwners: map[string]int{},
		projectNames:  map[string]string{},
	}
}

func (s *StubTimeLogRepo) AddProject(projectId string, userId int, name string) {
	s.projectOwners[projectId] = userId
	s.projectNames[projectId] = name
}

func (s *StubTimeLogRepo) AddTask(taskId, projectId, title string, userId int) {
	s.tasks[taskId] = stubTask{projectId: projectId, title: title, userId: userId}
}

func (s *StubTimeLogRepo) Entry(entryId string) (TimeLog, bool) {
	entry, ok := s.entries[entryId]
	return entry, ok
}

func (s *StubTimeLogRepo) Store(ctx context.Context, entry TimeLog) error {
	s.entries[entry.ID] = entry
	return nil
}

func (s *StubTimeLogRepo) FindOpenByTask(ctx context.Context, userId int, taskId string) (*TimeLog, error) {
	return s.findOpen(func(entry TimeLog) bool {
		return entry.UserID == userId && entry.TaskID != nil && *entry.TaskID == taskId
	}), nil
}

func (s *StubTimeLogRepo) FindOpenByUser(ctx context.Context, userId int) (*TimeLog, error) {
	return s.findOpen(func(entry TimeLog) bool {
		return entry.UserID == userId
	}), nil
}

func (s *StubTimeLogRepo) findOpen(match func(TimeLog) bool) *TimeLog {
	var latest *TimeLog
	for id := range s.entries {
		entry := s.entries[id]
		if !entry.Open() || !match(entry) {
			continue
		}
		if latest == nil || entry.StartAt.After(latest.StartAt) {
			copied := entry
			latest = &copied
		}
	}
	return latest
}

func (s *StubTimeLogRepo) CloseEntry(ctx context.Context, entryId string, endAt time.Time, durationSeconds int64) error {
	entry, ok := s.entries[entryId]
	if !ok || !entry.Open() {
		return nil
	}
	entry.EndAt = &endAt
	entry.DurationSeconds = durationSeconds
	s.entries[entryId] = entry
	return nil
}

func (s *StubTimeLogRepo) CloseOpenByTask(ctx context.Context, taskId string, endAt time.Time) error {
	for id, entry := range s.entries {
		if !entry.Open() || entry.TaskID == nil || *entry.TaskID != taskId {
			continue
		}
		duration := endAt.Unix() - entry.StartAt.Unix()
		if duration < 0 {
			duration = 0
		}
		entry.EndAt = &endAt
		entry.DurationSeconds = duration
		s.entries[id] = entry
	}
	return nil
}

func (s *StubTimeLogRepo) GetAll(ctx context.Context, userId int) ([]Entry, error) {
	var result []Entry
	for _, entry := range s.entries {
		if entry.UserID != userId {
			continue
		}
		enriched := Entry{TimeLog: entry, ProjectName: s.projectNames[entry.ProjectID]}
		if entry.TaskID != nil {
			enriched.TaskTitle = s.tasks[*entry.TaskID].title
		}
		result = append(result, enriched)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].StartAt.Equal(result[j].StartAt) {
			return result[i].StartAt.After(result[j].StartAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *StubTimeLogRepo) TaskOwned(ctx context.Context, userId int, taskId string) (string, bool, error) {
	task, ok := s.tasks[taskId]
	if !ok || task.userId != userId {
		return "", false, nil
	}
	return task.projectId, true, nil
}

func (s *StubTimeLogRepo) ProjectOwned(ctx context.Context, userId int, projectId string) (bool, error) {
	owner, ok := s.projectOwners[projectId]
	return ok && owner == userId, nil
}

func (s *StubTimeLogRepo) EntryContext(ctx context.Context, entry TimeLog) (string, string, error) {
	taskTitle := ""
	if entry.TaskID != nil {
		taskTitle = s.tasks[*entry.TaskID].title
	}
	return taskTitle, s.projectNames[entry.ProjectID], nil
}
