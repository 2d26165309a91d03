package timelog

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/yann-lu/mind-balance/internal/rest"
)

type TimeLogDTO struct {
	ID              string     `json:"id"`
	ProjectID       string     `json:"projectId"`
	TaskID          *string    `json:"taskId,omitempty"`
	LogType         string     `json:"logType"`
	StartAt         time.Time  `json:"startAt"`
	EndAt           *time.Time `json:"endAt,omitempty"`
	DurationSeconds int64      `json:"durationSeconds"`
	LogDate         string     `json:"logDate"`
}

type TimerStatusDTO struct {
	TimeLogDTO
	TaskTitle   string `json:"taskTitle"`
	ProjectName string `json:"projectName"`
}

type ManualLogDTO struct {
	DurationSeconds int64 `json:"durationSeconds"`
}

type CreateTimeLogDTO struct {
	ProjectID       string  `json:"projectId"`
	TaskID          *string `json:"taskId"`
	LogType         string  `json:"logType"`
	DurationSeconds int64   `json:"durationSeconds"`
	LogDate         string  `json:"logDate"`
}

type TimeLogHandler struct {
	timeLogService TimeLogService
}

func NewTimeLogHandler(timeLogService TimeLogService) *TimeLogHandler {
	return &TimeLogHandler{timeLogService}
}

func (handler *TimeLogHandler) StartTimer(w http.ResponseWriter, r *http.Request) {
	taskId := mux.Vars(r)["taskId"]
	log.Debugf("Starting timer for task %s", taskId)

	entry, err := handler.timeLogService.StartTimer(r.Context(), taskId)
	if err != nil {
		writeTimeLogError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, timeLogToDTO(entry))
}

func (handler *TimeLogHandler) StopTimer(w http.ResponseWriter, r *http.Request) {
	taskId := mux.Vars(r)["taskId"]

	entry, err := handler.timeLogService.StopTimer(r.Context(), taskId)
	if err != nil {
		writeTimeLogError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, timeLogToDTO(entry))
}

func (handler *TimeLogHandler) PauseTimer(w http.ResponseWriter, r *http.Request) {
	taskId := mux.Vars(r)["taskId"]

	entry, err := handler.timeLogService.PauseTimer(r.Context(), taskId)
	if err != nil {
		writeTimeLogError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, timeLogToDTO(entry))
}

func (handler *TimeLogHandler) TimerStatus(w http.ResponseWriter, r *http.Request) {
	status, err := handler.timeLogService.CurrentTimer(r.Context())
	if err != nil {
		writeTimeLogError(w, err)
		return
	}
	if status == nil {
		rest.WriteJSON(w, http.StatusOK, nil)
		return
	}
	rest.WriteJSON(w, http.StatusOK, TimerStatusDTO{
		TimeLogDTO:  timeLogToDTO(status.Entry),
		TaskTitle:   status.TaskTitle,
		ProjectName: status.ProjectName,
	})
}

func (handler *TimeLogHandler) LogManual(w http.ResponseWriter, r *http.Request) {
	taskId := mux.Vars(r)["taskId"]

	var dto ManualLogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := handler.timeLogService.LogManual(r.Context(), taskId, dto.DurationSeconds)
	if err != nil {
		writeTimeLogError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, timeLogToDTO(entry))
}

func (handler *TimeLogHandler) CreateTimeLog(w http.ResponseWriter, r *http.Request) {
	var dto CreateTimeLogDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.ProjectID == "" && dto.TaskID == nil {
		rest.WriteError(w, http.StatusBadRequest, "projectId or taskId is required")
		return
	}

	entry, err := handler.timeLogService.Create(r.Context(), TimeLog{
		ProjectID:       dto.ProjectID,
		TaskID:          dto.TaskID,
		LogType:         LogType(dto.LogType),
		DurationSeconds: dto.DurationSeconds,
		LogDate:         dto.LogDate,
	})
	if err != nil {
		writeTimeLogError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, timeLogToDTO(entry))
}

func (handler *TimeLogHandler) ListTimeLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := handler.timeLogService.List(r.Context())
	if err != nil {
		writeTimeLogError(w, err)
		return
	}

	dtos := make([]TimeLogDTO, 0, len(entries))
	for _, entry := range entries {
		dtos = append(dtos, timeLogToDTO(entry.TimeLog))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func writeTimeLogError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoActiveTimer):
		rest.WriteError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrTaskNotFound), errors.Is(err, ErrProjectNotFound):
		rest.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidDuration):
		rest.WriteError(w, http.StatusBadRequest, err.Error())
	default:
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func timeLogToDTO(entry TimeLog) TimeLogDTO {
	return TimeLogDTO{
		ID:              entry.ID,
		ProjectID:       entry.ProjectID,
		TaskID:          entry.TaskID,
		LogType:         string(entry.LogType),
		StartAt:         entry.StartAt,
		EndAt:           entry.EndAt,
		DurationSeconds: entry.DurationSeconds,
		LogDate:         entry.LogDate,
	}
}
