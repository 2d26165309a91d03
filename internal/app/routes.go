package app

import (
	"github.com/gorilla/mux"
	"github.com/yann-lu/mind-balance/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")

	// Projects
	r.HandleFunc("/api/projects", deps.ProjectHandler.List).Methods("GET")
	r.HandleFunc("/api/projects", deps.ProjectHandler.Create).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.Get).Methods("GET")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.Update).Methods("PUT")
	r.HandleFunc("/api/projects/{projectId}", deps.ProjectHandler.Delete).Methods("DELETE")
	r.HandleFunc("/api/projects/{projectId}/complete", deps.ProjectHandler.Complete).Methods("POST")

	// Energy budgets
	r.HandleFunc("/api/budgets", deps.BudgetHandler.SetTarget).Methods("POST")
	r.HandleFunc("/api/projects/{projectId}/budgets", deps.BudgetHandler.GetHistory).Methods("GET")

	// Tasks
	r.HandleFunc("/api/tasks", deps.TaskHandler.ListTasks).Methods("GET")
	r.HandleFunc("/api/tasks", deps.TaskHandler.CreateTask).Methods("POST")
	r.HandleFunc("/api/tasks/timer/status", deps.TimeLogHandler.TimerStatus).Methods("GET")
	r.HandleFunc("/api/tasks/{taskId}", deps.TaskHandler.UpdateTask).Methods("PUT")
	r.HandleFunc("/api/tasks/{taskId}", deps.TaskHandler.DeleteTask).Methods("DELETE")

	// Timer
	r.HandleFunc("/api/tasks/{taskId}/timer/start", deps.TimeLogHandler.StartTimer).Methods("POST")
	r.HandleFunc("/api/tasks/{taskId}/timer/pause", deps.TimeLogHandler.PauseTimer).Methods("POST")
	r.HandleFunc("/api/tasks/{taskId}/timer/stop", deps.TimeLogHandler.StopTimer).Methods("POST")
	r.HandleFunc("/api/tasks/{taskId}/time-manual", deps.TimeLogHandler.LogManual).Methods("POST")

	// Time ledger
	r.HandleFunc("/api/timelogs", deps.TimeLogHandler.ListTimeLogs).Methods("GET")
	r.HandleFunc("/api/timelogs", deps.TimeLogHandler.CreateTimeLog).Methods("POST")

	// Analysis
	r.HandleFunc("/api/analysis/variance", deps.AnalysisHandler.GetVariance).Methods("GET")

	// Statistics
	r.HandleFunc("/api/statistics/overview", deps.StatsHandler.GetOverview).Methods("GET")
	r.HandleFunc("/api/statistics/project-time", deps.StatsHandler.GetProjectDistribution).Methods("GET")
	r.HandleFunc("/api/statistics/daily-trend", deps.StatsHandler.GetDailyTrend).Methods("GET")
	r.HandleFunc("/api/statistics/energy", deps.StatsHandler.GetEnergyDistribution).Methods("GET")

	// AI planning
	r.HandleFunc("/api/ai/recommendations", deps.PlannerHandler.GetRecommendations).Methods("GET")
	r.HandleFunc("/api/ai/warnings", deps.PlannerHandler.GetWarnings).Methods("GET")
	r.HandleFunc("/api/ai/generate-plan", deps.PlannerHandler.GeneratePlan).Methods("POST")
	r.HandleFunc("/api/ai/generate-plan/stream", deps.PlannerHandler.StreamPlan).Methods("GET")

	// AI provider configuration
	r.HandleFunc("/api/ai/config", deps.AIConfigHandler.GetConfig).Methods("GET")
	r.HandleFunc("/api/ai/config", deps.AIConfigHandler.SaveConfig).Methods("PUT")
	r.HandleFunc("/api/ai/config", deps.AIConfigHandler.DisableConfig).Methods("DELETE")

	// Settings
	r.HandleFunc("/api/settings/export", deps.ExportHandler.ExportCsv).Methods("GET")
}
