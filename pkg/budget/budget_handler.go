package budget

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/yann-lu/mind-balance/internal/rest"
	log "github.com/sirupsen/logrus"
)

type PeriodDTO struct {
	ID               int        `json:"id"`
	ProjectID        string     `json:"projectId"`
	TargetPercentage int        `json:"targetPercentage"`
	ValidFrom        time.Time  `json:"validFrom"`
	ValidTo          *time.Time `json:"validTo,omitempty"`
}

type SetTargetDTO struct {
	ProjectID        string `json:"projectId"`
	TargetPercentage int    `json:"targetPercentage"`
}

type BudgetHandler struct {
	budgetService BudgetService
}

func NewBudgetHandler(budgetService BudgetService) *BudgetHandler {
	return &BudgetHandler{budgetService}
}

func (handler *BudgetHandler) SetTarget(w http.ResponseWriter, r *http.Request) {
	log.Debug("Setting budget target")

	var dto SetTargetDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ProjectID == "" {
		rest.WriteError(w, http.StatusBadRequest, "projectId is required")
		return
	}

	period, err := handler.budgetService.SetTarget(r.Context(), dto.ProjectID, dto.TargetPercentage)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidTarget):
			rest.WriteError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrProjectNotFound):
			rest.WriteError(w, http.StatusNotFound, err.Error())
		default:
			rest.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, periodToDTO(period))
}

func (handler *BudgetHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]

	periods, err := handler.budgetService.History(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			rest.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]PeriodDTO, 0, len(periods))
	for _, period := range periods {
		dtos = append(dtos, periodToDTO(period))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func periodToDTO(period Period) PeriodDTO {
	return PeriodDTO{
		ID:               period.ID,
		ProjectID:        period.ProjectID,
		TargetPercentage: period.TargetPercentage,
		ValidFrom:        period.ValidFrom,
		ValidTo:          period.ValidTo,
	}
}
