package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/entities"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// StatsService defines the page view operations used by the handler.
type StatsService interface {
	Track(ctx context.Context, path string) error
	Totals(ctx context.Context) ([]*entities.PageView, error)
}

// StatsHandler handles page view tracking and reporting
type StatsHandler struct {
	service StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(service StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

type trackRequest struct {
	Path string `json:"path"`
}

// TrackPageView handles POST /api/track/pageview. Tracking is fire and
// forget from the client's perspective; a failed write is logged, never
// surfaced as an error page.
func (h *StatsHandler) TrackPageView(w http.ResponseWriter, r *http.Request) {
	var payload trackRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Track(r.Context(), payload.Path); err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
			respondWithAppError(w, err)
			return
		}
		log.Warn().Err(err).Str("path", payload.Path).Msg("Failed to record page view")
	}

	respondWithJSON(w, http.StatusAccepted, map[string]string{
		"status": "recorded",
	})
}

// GetStats handles GET /api/admin/stats
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"page_views": totals,
		"count":      len(totals),
	})
}
