package ai

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yann-lu/mind-balance/internal/rest"
)

// ConfigDTO never echoes the stored API key back to clients.
type ConfigDTO struct {
	Provider string `json:"provider"`
	APIBase  string `json:"apiBase,omitempty"`
	Model    string `json:"model,omitempty"`
	IsActive bool   `json:"isActive"`
}

type SaveConfigDTO struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	APIBase  string `json:"apiBase"`
	Model    string `json:"model"`
}

type ConfigHandler struct {
	configService ConfigService
}

func NewConfigHandler(configService ConfigService) *ConfigHandler {
	return &ConfigHandler{configService}
}

func (handler *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := handler.configService.ActiveConfig(r.Context())
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if cfg == nil {
		rest.WriteJSON(w, http.StatusOK, nil)
		return
	}
	rest.WriteJSON(w, http.StatusOK, ConfigDTO{
		Provider: cfg.Provider,
		APIBase:  cfg.APIBase,
		Model:    cfg.Model,
		IsActive: cfg.IsActive,
	})
}

func (handler *ConfigHandler) SaveConfig(w http.ResponseWriter, r *http.Request) {
	var dto SaveConfigDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if dto.Provider == "" || dto.APIKey == "" {
		rest.WriteError(w, http.StatusBadRequest, "provider and apiKey are required")
		return
	}

	saved, err := handler.configService.SaveConfig(r.Context(), Config{
		Provider: dto.Provider,
		APIKey:   dto.APIKey,
		APIBase:  dto.APIBase,
		Model:    dto.Model,
	})
	if err != nil {
		if errors.Is(err, ErrUnsupportedProvider) {
			rest.WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, ConfigDTO{
		Provider: saved.Provider,
		APIBase:  saved.APIBase,
		Model:    saved.Model,
		IsActive: saved.IsActive,
	})
}

func (handler *ConfigHandler) DisableConfig(w http.ResponseWriter, r *http.Request) {
	if err := handler.configService.DisableConfig(r.Context()); err != nil {
		rest.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
