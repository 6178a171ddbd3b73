package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/entities"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// maxUploadMemory bounds how much of a multipart body is held in memory.
const maxUploadMemory = 8 << 20

// GalleryService defines the gallery operations used by the handler. Upload
// and Delete report whether the cache invalidation went through alongside
// their primary result.
type GalleryService interface {
	Upload(ctx context.Context, upload *services.PhotoUpload) (*entities.Photo, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*entities.Photo, error)
	ListPublic(ctx context.Context) ([]*entities.Photo, bool)
}

// GalleryHandler handles gallery photo HTTP requests
type GalleryHandler struct {
	service GalleryService
}

// NewGalleryHandler creates a new gallery handler
func NewGalleryHandler(service GalleryService) *GalleryHandler {
	return &GalleryHandler{service: service}
}

// UploadPhoto handles POST /api/gallery/upload
func (h *GalleryHandler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	photo, invalidated, err := h.service.Upload(r.Context(), &services.PhotoUpload{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		AltText:     r.FormValue("alt_text"),
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":           true,
		"photo":             photo,
		"cache_invalidated": invalidated,
	})
}

// DeletePhoto handles DELETE /api/gallery/{id}
func (h *GalleryHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "photo ID is required")
		return
	}

	invalidated, err := h.service.Delete(r.Context(), id)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":           true,
		"cache_invalidated": invalidated,
	})
}

// ListPhotos handles GET /api/gallery
func (h *GalleryHandler) ListPhotos(w http.ResponseWriter, r *http.Request) {
	photos, demo := h.service.ListPublic(r.Context())

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"photos":  photos,
		"count":   len(photos),
		"demo":    demo,
	})
}

// ListPhotosAdmin handles GET /api/admin/gallery. Unlike the public list,
// a storage failure here is an error the operator should see.
func (h *GalleryHandler) ListPhotosAdmin(w http.ResponseWriter, r *http.Request) {
	photos, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if photos == nil {
		photos = []*entities.Photo{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"photos": photos,
		"count":  len(photos),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps an application error to its HTTP status. Internal
// details never leak to the client.
func respondWithAppError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		respondWithError(w, status, "internal server error")
		return
	}
	if appErr, ok := err.(*apperrors.AppError); ok {
		respondWithError(w, status, appErr.Message)
		return
	}
	respondWithError(w, status, err.Error())
}
