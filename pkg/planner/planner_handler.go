package planner

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/yann-lu/mind-balance/internal/rest"
)

type PlanResponseDTO struct {
	Plan
	Mode string `json:"mode"`
}

type PlannerHandler struct {
	plannerService PlannerService
}

func NewPlannerHandler(plannerService PlannerService) *PlannerHandler {
	return &PlannerHandler{plannerService}
}

func (handler *PlannerHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating daily plan")

	plan, mode, err := handler.plannerService.GeneratePlan(r.Context())
	if err != nil {
		writePlannerError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, PlanResponseDTO{Plan: plan, Mode: mode})
}

func (handler *PlannerHandler) GetWarnings(w http.ResponseWriter, r *http.Request) {
	warnings, err := handler.plannerService.EnergyWarnings(r.Context())
	if err != nil {
		writePlannerError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, warnings)
}

func (handler *PlannerHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	recommendations, err := handler.plannerService.Recommendations(r.Context())
	if err != nil {
		writePlannerError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, recommendations)
}

// StreamPlan serves the plan over SSE: the rule-based plan arrives as an
// init event, followed by an update with the AI-enhanced plan when one
// could be produced, and a final complete event.
func (handler *PlannerHandler) StreamPlan(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		rest.WriteError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	emit := func(event string, data any) error {
		payload, err := json.Marshal(data)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := handler.plannerService.StreamPlan(r.Context(), emit); err != nil {
		log.Errorf("Plan stream failed: %v", err)
		_ = emit("error", map[string]string{"message": err.Error()})
	}
}

func writePlannerError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNoProjects) {
		rest.WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	rest.WriteError(w, http.StatusInternalServerError, err.Error())
}
