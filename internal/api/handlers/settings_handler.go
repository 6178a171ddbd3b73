package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vodomont/backend/internal/domain/entities"
)

// SettingsService defines the site settings operations used by the handler.
type SettingsService interface {
	Get(ctx context.Context) (*entities.SiteSettings, error)
	Update(ctx context.Context, settings *entities.SiteSettings) (*entities.SiteSettings, error)
}

// SettingsHandler handles site settings HTTP requests
type SettingsHandler struct {
	service SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(service SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

// GetSettings handles GET /api/settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.Get(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings handles PUT /api/settings
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings entities.SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	updated, err := h.service.Update(r.Context(), &settings)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"settings": updated,
	})
}
