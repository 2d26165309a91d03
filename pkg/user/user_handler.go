package user

import (
	"encoding/json"
	"net/http"

	"github.com/yann-lu/mind-balance/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string `json:"uid"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format")
		return
	}
	if len(dto.Username) == 0 {
		rest.WriteError(w, http.StatusBadRequest, "Username is required")
		return
	}

	created, err := h.userService.CreateUser(r.Context(), User{
		Username:    dto.Username,
		DisplayName: dto.DisplayName,
	})
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	rest.WriteJSON(w, http.StatusCreated, userToDTO(created))
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	current, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusForbidden, "no user identified")
		return
	}
	rest.WriteJSON(w, http.StatusOK, userToDTO(current))
}

func (h *Handler) GetAvailableUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAllUsers(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	dtos := make([]UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, userToDTO(u))
	}
	rest.WriteJSON(w, http.StatusOK, dtos)
}

func (h *Handler) IsUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		rest.WriteError(w, http.StatusBadRequest, "username query parameter is required")
		return
	}
	available, err := h.userService.IsUsernameAvailable(r.Context(), username)
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, map[string]bool{"available": available})
}

func userToDTO(u User) UserDTO {
	return UserDTO{
		Uid:         u.Uid,
		Username:    u.Username,
		DisplayName: u.DisplayName,
	}
}
