package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vodomont/backend/internal/domain/entities"
)

// CacheService defines the cache administration operations used by the handler.
type CacheService interface {
	Invalidate(ctx context.Context, paths, tags []string) (int, error)
	InvalidateAndBroadcast(ctx context.Context, event *entities.ContentEvent) bool
	PurgeAll(ctx context.Context) (int, error)
	PurgeEdge(ctx context.Context) error
}

// CacheHandler handles manual cache administration
type CacheHandler struct {
	service CacheService
}

// NewCacheHandler creates a new cache handler
func NewCacheHandler(service CacheService) *CacheHandler {
	return &CacheHandler{service: service}
}

type revalidateRequest struct {
	Paths []string `json:"paths"`
	Tags  []string `json:"tags"`
}

// Revalidate handles POST /api/admin/cache/revalidate. The invalidation is
// broadcast so every replica drops the same keys, not just this one.
func (h *CacheHandler) Revalidate(w http.ResponseWriter, r *http.Request) {
	var payload revalidateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if len(payload.Paths) == 0 && len(payload.Tags) == 0 {
		respondWithError(w, http.StatusBadRequest, "at least one path or tag is required")
		return
	}

	event := entities.NewContentEvent("", "", entities.ContentEventUpdated, payload.Paths, payload.Tags)
	invalidated := h.service.InvalidateAndBroadcast(r.Context(), event)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": invalidated,
		"paths":   payload.Paths,
		"tags":    payload.Tags,
	})
}

// Purge handles POST /api/admin/cache/purge. The response reports each
// step separately; a failed edge purge does not undo the local one.
func (h *CacheHandler) Purge(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.PurgeAll(r.Context())

	result := map[string]interface{}{
		"success":      err == nil,
		"keys_deleted": deleted,
	}
	if err != nil {
		result["error"] = "failed to purge response cache"
	}

	if edgeErr := h.service.PurgeEdge(r.Context()); edgeErr != nil {
		result["edge_purged"] = false
		result["edge_error"] = "CDN purge failed"
	} else {
		result["edge_purged"] = true
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusInternalServerError
	}
	respondWithJSON(w, status, result)
}
