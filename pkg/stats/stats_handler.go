package stats

import (
	"net/http"

	"github.com/yann-lu/mind-balance/internal/rest"
)

type OverviewDTO struct {
	TotalDuration    int64 `json:"totalDuration"`
	CompletedTasks   int   `json:"completedTasks"`
	StudyDays        int   `json:"studyDays"`
	AvgDailyDuration int64 `json:"avgDailyDuration"`
	TodayDuration    int64 `json:"todayDuration"`
	ActiveProjects   int   `json:"activeProjects"`
	PendingTasks     int   `json:"pendingTasks"`
	EnergyRate       int   `json:"energyRate"`
}

type ProjectTimeDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ColorHex string `json:"colorHex"`
	Icon     string `json:"icon"`
	Duration int64  `json:"duration"`
}

type DailyTrendDTO struct {
	Date     string `json:"date"`
	Duration int64  `json:"duration"`
}

type EnergyDistributionDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ColorHex       string `json:"colorHex"`
	Icon           string `json:"icon"`
	TargetEnergy   int    `json:"targetEnergy"`
	ActualEnergy   int    `json:"actualEnergy"`
	TotalDuration  int64  `json:"totalDuration"`
	CompletedTasks int    `json:"completedTasks"`
	TotalTasks     int    `json:"totalTasks"`
}

type StatsHandler struct {
	statsService StatsService
}

func NewStatsHandler(statsService StatsService) *StatsHandler {
	return &StatsHandler{statsService}
}

func (handler *StatsHandler) GetOverview(w http.ResponseWriter, r *http.Request) {
	period := ParsePeriod(r.URL.Query().Get("period"))

	overview, err := handler.statsService.Overview(r.Context(), period)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, OverviewDTO{
		TotalDuration:    overview.TotalDuration,
		CompletedTasks:   overview.CompletedTasks,
		StudyDays:        overview.StudyDays,
		AvgDailyDuration: overview.AvgDailyDuration,
		TodayDuration:    overview.TodayDuration,
		ActiveProjects:   overview.ActiveProjects,
		PendingTasks:     overview.PendingTasks,
		EnergyRate:       overview.EnergyRate,
	})
}

func (handler *StatsHandler) GetProjectDistribution(w http.ResponseWriter, r *http.Request) {
	period := ParsePeriod(r.URL.Query().Get("period"))

	distribution, err := handler.statsService.ProjectDistribution(r.Context(), period)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]ProjectTimeDTO, 0, len(distribution))
	for _, entry := range distribution {
		dtos = append(dtos, ProjectTimeDTO{
			ID:       entry.ProjectID,
			Name:     entry.Name,
			ColorHex: entry.ColorHex,
			Icon:     entry.Icon,
			Duration: entry.Duration,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (handler *StatsHandler) GetDailyTrend(w http.ResponseWriter, r *http.Request) {
	period := ParsePeriod(r.URL.Query().Get("period"))

	trend, err := handler.statsService.DailyTrend(r.Context(), period)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]DailyTrendDTO, 0, len(trend))
	for _, day := range trend {
		dtos = append(dtos, DailyTrendDTO{Date: day.Date, Duration: day.Duration})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (handler *StatsHandler) GetEnergyDistribution(w http.ResponseWriter, r *http.Request) {
	period := ParsePeriod(r.URL.Query().Get("period"))

	distribution, err := handler.statsService.EnergyDistribution(r.Context(), period)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]EnergyDistributionDTO, 0, len(distribution))
	for _, entry := range distribution {
		dtos = append(dtos, EnergyDistributionDTO{
			ID:             entry.ProjectID,
			Name:           entry.Name,
			ColorHex:       entry.ColorHex,
			Icon:           entry.Icon,
			TargetEnergy:   entry.TargetEnergy,
			ActualEnergy:   entry.ActualEnergy,
			TotalDuration:  entry.TotalDuration,
			CompletedTasks: entry.CompletedTasks,
			TotalTasks:     entry.TotalTasks,
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}
