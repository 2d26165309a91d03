package stats

// Overview aggregates the user's headline numbers for a period.
type Overview struct {
	TotalDuration    int64
	CompletedTasks   int
	StudyDays        int
	AvgDailyDuration int64
	TodayDuration    int64
	ActiveProjects   int
	PendingTasks     int
	EnergyRate       int
}

// ProjectTime is one project's share of the period in the distribution chart.
type ProjectTime struct {
	ProjectID string
	Name      string
	ColorHex  string
	Icon      string
	Duration  int64
}

// DailyDuration is one day's logged total. Days without entries are absent.
type DailyDuration struct {
	Date     string
	Duration int64
}

// EnergyDistribution compares a project's target share against its actual
// share of logged time. Task counts are all-time.
type EnergyDistribution struct {
	ProjectID      string
	Name           string
	ColorHex       string
	Icon           string
	TargetEnergy   int
	ActualEnergy   int
	TotalDuration  int64
	CompletedTasks int
	TotalTasks     int
}
