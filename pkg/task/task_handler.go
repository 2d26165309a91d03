package task

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/yann-lu/mind-balance/internal/rest"
)

type TaskDTO struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"projectId"`
	ProjectName   string    `json:"projectName,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	Priority      string    `json:"priority"`
	TotalDuration int64     `json:"totalDuration"`
	CreatedAt     time.Time `json:"createdAt"`
}

type CreateTaskDTO struct {
	ProjectID   string `json:"projectId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

type UpdateTaskDTO struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
}

type TaskHandler struct {
	taskService TaskService
}

func NewTaskHandler(taskService TaskService) *TaskHandler {
	return &TaskHandler{taskService}
}

func (handler *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	projectId := r.URL.Query().Get("projectId")

	details, err := handler.taskService.List(r.Context(), projectId)
	if err != nil {
		writeTaskError(w, err)
		return
	}

	dtos := make([]TaskDTO, 0, len(details))
	for _, detail := range details {
		dtos = append(dtos, detailToDTO(detail))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (handler *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating task")

	var dto CreateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ProjectID == "" {
		rest.WriteError(w, http.StatusBadRequest, "projectId is required")
		return
	}
	if dto.Title == "" {
		rest.WriteError(w, http.StatusBadRequest, "title is required")
		return
	}

	created, err := handler.taskService.Create(r.Context(), Task{
		ProjectID:   dto.ProjectID,
		Title:       dto.Title,
		Description: dto.Description,
		Status:      Status(dto.Status),
		Priority:    Priority(dto.Priority),
	})
	if err != nil {
		writeTaskError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, taskToDTO(created))
}

func (handler *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskId := mux.Vars(r)["taskId"]

	var dto UpdateTaskDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	changes := Update{
		Title:       dto.Title,
		Description: dto.Description,
	}
	if dto.Status != nil {
		status := Status(*dto.Status)
		changes.Status = &status
	}
	if dto.Priority != nil {
		priority := Priority(*dto.Priority)
		changes.Priority = &priority
	}

	updated, err := handler.taskService.Update(r.Context(), taskId, changes)
	if err != nil {
		writeTaskError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, taskToDTO(updated))
}

func (handler *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskId := mux.Vars(r)["taskId"]

	if err := handler.taskService.Delete(r.Context(), taskId); err != nil {
		writeTaskError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeTaskError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrProjectNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidPriority):
		rest.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func taskToDTO(task Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		Title:       task.Title,
		Description: task.Description,
		Status:      ExternalStatus(task.Status),
		Priority:    string(task.Priority),
		CreatedAt:   task.CreatedAt,
	}
}

func detailToDTO(detail Detail) TaskDTO {
	dto := taskToDTO(detail.Task)
	dto.ProjectName = detail.ProjectName
	dto.TotalDuration = detail.TotalDuration
	return dto
}
