package analysis

import (
	"net/http"
	"strconv"

	"github.com/yann-lu/mind-balance/internal/rest"
)

type VarianceResultDTO struct {
	ProjectID        string  `json:"projectId"`
	ProjectName      string  `json:"projectName"`
	TargetPercentage int     `json:"targetPercentage"`
	ActualPercentage float64 `json:"actualPercentage"`
	Variance         float64 `json:"variance"`
	Status           string  `json:"status"`
}

type AnalysisHandler struct {
	analysisService AnalysisService
}

func NewAnalysisHandler(analysisService AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService}
}

func (handler *AnalysisHandler) GetVariance(w http.ResponseWriter, r *http.Request) {
	days := DefaultWindowDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			rest.WriteError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	results, err := handler.analysisService.Variance(r.Context(), days)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]VarianceResultDTO, 0, len(results))
	for _, result := range results {
		dtos = append(dtos, VarianceResultDTO{
			ProjectID:        result.ProjectID,
			ProjectName:      result.ProjectName,
			TargetPercentage: result.TargetPercentage,
			ActualPercentage: result.ActualPercentage,
			Variance:         result.Variance,
			Status:           string(result.Status),
		})
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}
