package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vodomont/backend/internal/api/handlers"
	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/entities"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

type stubGalleryService struct {
	uploads   []*services.PhotoUpload
	store     map[string]*entities.Photo
	demo      bool
	cacheDown bool
}

func newStubGalleryService() *stubGalleryService {
	return &stubGalleryService{store: map[string]*entities.Photo{}}
}

func (s *stubGalleryService) Upload(ctx context.Context, upload *services.PhotoUpload) (*entities.Photo, bool, error) {
	if strings.TrimSpace(upload.Title) == "" {
		return nil, false, apperrors.NewValidationError("title is required")
	}
	if strings.TrimSpace(upload.Description) == "" {
		return nil, false, apperrors.NewValidationError("description is required")
	}
	// Drain the body the way the real service does
	if upload.Body != nil {
		_, _ = io.Copy(io.Discard, upload.Body)
	}
	s.uploads = append(s.uploads, upload)
	photo := &entities.Photo{ID: "p-1", Title: upload.Title, Description: upload.Description}
	s.store[photo.ID] = photo
	return photo, !s.cacheDown, nil
}

func (s *stubGalleryService) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := s.store[id]; !ok {
		return false, apperrors.NewNotFoundError("photo not found")
	}
	delete(s.store, id)
	return !s.cacheDown, nil
}

func (s *stubGalleryService) List(ctx context.Context) ([]*entities.Photo, error) {
	var photos []*entities.Photo
	for _, p := range s.store {
		photos = append(photos, p)
	}
	return photos, nil
}

func (s *stubGalleryService) ListPublic(ctx context.Context) ([]*entities.Photo, bool) {
	photos, _ := s.List(ctx)
	if len(photos) == 0 && s.demo {
		return entities.DemoPhotos(), true
	}
	if photos == nil {
		photos = []*entities.Photo{}
	}
	return photos, false
}

func multipartUpload(t *testing.T, title, description string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if title != "" {
		assert.NoError(t, writer.WriteField("title", title))
	}
	if description != "" {
		assert.NoError(t, writer.WriteField("description", description))
	}
	part, err := writer.CreateFormFile("file", "bathroom.jpg")
	assert.NoError(t, err)
	_, err = part.Write([]byte("jpegdata"))
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func TestGalleryHandler_UploadPhoto_Success(t *testing.T) {
	service := newStubGalleryService()
	handler := handlers.NewGalleryHandler(service)

	body, contentType := multipartUpload(t, "Renovirano kupatilo", "Kompletno renoviranje")
	req := httptest.NewRequest("POST", "/api/gallery/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.UploadPhoto(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, service.uploads, 1)
	assert.Equal(t, "bathroom.jpg", service.uploads[0].Filename)

	var response struct {
		Success          bool            `json:"success"`
		Photo            *entities.Photo `json:"photo"`
		CacheInvalidated bool            `json:"cache_invalidated"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.True(t, response.CacheInvalidated)
	assert.Equal(t, "Renovirano kupatilo", response.Photo.Title)
}

func TestGalleryHandler_UploadPhoto_CacheInvalidationFails(t *testing.T) {
	service := newStubGalleryService()
	service.cacheDown = true
	handler := handlers.NewGalleryHandler(service)

	body, contentType := multipartUpload(t, "Nova slika", "Slika uprkos kesu")
	req := httptest.NewRequest("POST", "/api/gallery/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.UploadPhoto(w, req)

	// The upload still succeeds, the flag just reports the stale cache
	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success          bool `json:"success"`
		CacheInvalidated bool `json:"cache_invalidated"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.False(t, response.CacheInvalidated)
}

func TestGalleryHandler_UploadPhoto_MissingFile(t *testing.T) {
	service := newStubGalleryService()
	handler := handlers.NewGalleryHandler(service)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	assert.NoError(t, writer.WriteField("title", "No file"))
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/api/gallery/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()

	handler.UploadPhoto(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.uploads)
}

func TestGalleryHandler_UploadPhoto_MissingTitle(t *testing.T) {
	service := newStubGalleryService()
	handler := handlers.NewGalleryHandler(service)

	body, contentType := multipartUpload(t, "", "Opis bez naslova")
	req := httptest.NewRequest("POST", "/api/gallery/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.UploadPhoto(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGalleryHandler_UploadPhoto_MissingDescription(t *testing.T) {
	service := newStubGalleryService()
	handler := handlers.NewGalleryHandler(service)

	body, contentType := multipartUpload(t, "Naslov bez opisa", "")
	req := httptest.NewRequest("POST", "/api/gallery/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()

	handler.UploadPhoto(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, service.uploads)
}

func TestGalleryHandler_DeletePhoto(t *testing.T) {
	service := newStubGalleryService()
	service.store["p-1"] = &entities.Photo{ID: "p-1"}
	handler := handlers.NewGalleryHandler(service)

	req := httptest.NewRequest("DELETE", "/api/gallery/p-1", nil)
	req.SetPathValue("id", "p-1")
	w := httptest.NewRecorder()

	handler.DeletePhoto(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, service.store)

	var response struct {
		Success          bool `json:"success"`
		CacheInvalidated bool `json:"cache_invalidated"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.True(t, response.CacheInvalidated)
}

func TestGalleryHandler_DeletePhoto_NotFound(t *testing.T) {
	service := newStubGalleryService()
	handler := handlers.NewGalleryHandler(service)

	req := httptest.NewRequest("DELETE", "/api/gallery/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler.DeletePhoto(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGalleryHandler_ListPhotos_DemoFallback(t *testing.T) {
	service := newStubGalleryService()
	service.demo = true
	handler := handlers.NewGalleryHandler(service)

	req := httptest.NewRequest("GET", "/api/gallery", nil)
	w := httptest.NewRecorder()

	handler.ListPhotos(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success bool              `json:"success"`
		Photos  []*entities.Photo `json:"photos"`
		Count   int               `json:"count"`
		Demo    bool              `json:"demo"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.True(t, response.Demo)
	assert.NotEmpty(t, response.Photos)
	assert.Equal(t, len(response.Photos), response.Count)
}
