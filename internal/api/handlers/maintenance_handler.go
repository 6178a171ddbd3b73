package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vodomont/backend/internal/application/services"
)

// MaintenanceService defines the storage maintenance operations used by the handler.
type MaintenanceService interface {
	Reconcile(ctx context.Context) (*services.ReconcileReport, error)
	FullCleanup(ctx context.Context, confirmation string) (*services.ReconcileReport, error)
}

// MaintenanceHandler handles storage maintenance HTTP requests
type MaintenanceHandler struct {
	service MaintenanceService
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(service MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// Reconcile handles POST /api/admin/maintenance/reconcile
func (h *MaintenanceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.Reconcile(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}

type resetRequest struct {
	Confirmation string `json:"confirmation"`
}

// Reset handles POST /api/admin/maintenance/reset. The body must carry the
// exact confirmation phrase; anything else is refused before any deletion.
func (h *MaintenanceHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var payload resetRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	report, err := h.service.FullCleanup(r.Context(), payload.Confirmation)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"report":  report,
	})
}
