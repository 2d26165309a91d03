package project

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/yann-lu/mind-balance/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ProjectDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ColorHex       string    `json:"colorHex"`
	Icon           string    `json:"icon"`
	Description    string    `json:"description,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	EnergyPercent  int       `json:"energyPercent"`
	TotalTasks     int       `json:"totalTasks"`
	CompletedTasks int       `json:"completedTasks"`
	TotalDuration  int64     `json:"totalDuration"`
	IsCompleted    bool      `json:"isCompleted"`
}

type CreateProjectDTO struct {
	Name          string `json:"name"`
	ColorHex      string `json:"colorHex"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
	EnergyPercent int    `json:"energyPercent"`
}

type ProjectHandler struct {
	projectService ProjectService
}

func NewProjectHandler(projectService ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService}
}

func (handler *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	overviews, err := handler.projectService.List(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dtos := make([]ProjectDTO, 0, len(overviews))
	for _, overview := range overviews {
		dtos = append(dtos, overviewToDTO(overview))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (handler *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]

	overview, err := handler.projectService.Get(r.Context(), projectId)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Project not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, overviewToDTO(overview))
}

func (handler *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new project")

	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}
	if dto.EnergyPercent < 0 || dto.EnergyPercent > 100 {
		rest.WriteError(w, http.StatusBadRequest, "energyPercent must be between 0 and 100")
		return
	}

	overview, err := handler.projectService.Create(r.Context(), Project{
		Name:        dto.Name,
		ColorHex:    dto.ColorHex,
		Icon:        dto.Icon,
		Description: dto.Description,
	}, dto.EnergyPercent)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusCreated, overviewToDTO(overview))
}

func (handler *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]

	var dto CreateProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Name == "" {
		rest.WriteError(w, http.StatusBadRequest, "name is required")
		return
	}

	overview, err := handler.projectService.Update(r.Context(), Project{
		ID:          projectId,
		Name:        dto.Name,
		ColorHex:    dto.ColorHex,
		Icon:        dto.Icon,
		Description: dto.Description,
	})
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Project not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, overviewToDTO(overview))
}

func (handler *ProjectHandler) Complete(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]

	if err := handler.projectService.Complete(r.Context(), projectId); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Project not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]string{"message": "Project completed"})
}

func (handler *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	projectId := mux.Vars(r)["projectId"]

	if err := handler.projectService.Delete(r.Context(), projectId); err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			rest.WriteError(w, http.StatusNotFound, "Project not found")
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func overviewToDTO(overview Overview) ProjectDTO {
	return ProjectDTO{
		ID:             overview.ID,
		Name:           overview.Name,
		ColorHex:       overview.ColorHex,
		Icon:           overview.Icon,
		Description:    overview.Description,
		Status:         string(overview.Status),
		CreatedAt:      overview.CreatedAt,
		EnergyPercent:  overview.EnergyPercent,
		TotalTasks:     overview.TotalTasks,
		CompletedTasks: overview.CompletedTasks,
		TotalDuration:  overview.TotalDuration,
		IsCompleted:    overview.IsCompleted(),
	}
}
