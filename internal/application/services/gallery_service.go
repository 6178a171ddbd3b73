package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/providers"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// PhotoUpload carries a validated multipart upload into the service.
type PhotoUpload struct {
	Title       string
	Description string
	AltText     string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// GalleryService handles the gallery photo lifecycle. The photo record is
// authoritative: the bucket object is created before the record and removed
// after it, and reconciliation sweeps up whatever that ordering leaves behind.
type GalleryService struct {
	repo         repositories.PhotoRepository
	storage      providers.ObjectStorage
	invalidation *CacheInvalidationService
	keyPrefix    string
}

// NewGalleryService creates a new gallery service.
func NewGalleryService(
	repo repositories.PhotoRepository,
	storage providers.ObjectStorage,
	invalidation *CacheInvalidationService,
	keyPrefix string,
) *GalleryService {
	if keyPrefix == "" {
		keyPrefix = "gallery/"
	}
	return &GalleryService{
		repo:         repo,
		storage:      storage,
		invalidation: invalidation,
		keyPrefix:    keyPrefix,
	}
}

var galleryPaths = []string{"/", "/admin", "/api/gallery"}
var galleryTags = []string{"gallery", "photos"}

// Upload validates the upload, stores the object, then inserts the record.
// An insert failure after a successful object write leaves an orphan in the
// bucket; reconciliation removes those, there is no transactional cleanup.
// The returned bool reports whether the cache invalidation went through; a
// false value still means the photo was created.
func (s *GalleryService) Upload(ctx context.Context, upload *PhotoUpload) (*entities.Photo, bool, error) {
	title := strings.TrimSpace(upload.Title)
	if title == "" {
		return nil, false, apperrors.NewValidationError("title is required")
	}
	description := strings.TrimSpace(upload.Description)
	if description == "" {
		return nil, false, apperrors.NewValidationError("description is required")
	}
	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, false, apperrors.NewValidationError("file must be an image")
	}
	if upload.Size > providers.MaxUploadBytes {
		return nil, false, apperrors.NewValidationError(
			fmt.Sprintf("file size exceeds limit of %d bytes", providers.MaxUploadBytes))
	}

	key := s.objectKey(upload.Filename)
	url, err := s.storage.Upload(ctx, key, upload.ContentType, upload.Size, upload.Body)
	if err != nil {
		return nil, false, err
	}

	photo := &entities.Photo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		ImageURL:    url,
		AltText:     strings.TrimSpace(upload.AltText),
		CreatedAt:   time.Now().UTC(),
	}
	if photo.AltText == "" {
		photo.AltText = title
	}

	if err := s.repo.Create(ctx, photo); err != nil {
		log.Error().Err(err).Str("key", key).
			Msg("Photo record insert failed after object upload, object is now orphaned")
		return nil, false, err
	}

	invalidated := s.invalidation.InvalidateAndBroadcast(ctx, entities.NewContentEvent(
		entities.SurfaceGallery, photo.ID, entities.ContentEventCreated, galleryPaths, galleryTags))

	return photo, invalidated, nil
}

// Delete removes the photo record first, then best-effort deletes the
// backing object when the URL points inside the managed bucket. The bool
// mirrors Upload's cache invalidation flag.
func (s *GalleryService) Delete(ctx context.Context, id string) (bool, error) {
	photo, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return false, err
	}

	if key, ok := s.storage.KeyFromURL(photo.ImageURL); ok {
		if err := s.storage.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).
				Msg("Failed to delete storage object, reconciliation will remove it")
		}
	}

	invalidated := s.invalidation.InvalidateAndBroadcast(ctx, entities.NewContentEvent(
		entities.SurfaceGallery, id, entities.ContentEventDeleted, galleryPaths, galleryTags))

	return invalidated, nil
}

// List returns all photos newest-first for the admin panel. Errors surface.
func (s *GalleryService) List(ctx context.Context) ([]*entities.Photo, error) {
	return s.repo.List(ctx)
}

// ListPublic returns the gallery for the public page. When the record store
// is unreachable it falls back to the demo photos so the page still renders.
func (s *GalleryService) ListPublic(ctx context.Context) ([]*entities.Photo, bool) {
	photos, err := s.repo.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Photo listing failed, serving demo gallery")
		return entities.DemoPhotos(), true
	}
	if photos == nil {
		photos = []*entities.Photo{}
	}
	return photos, false
}

// objectKey builds `<prefix><unix-ts>-<random8>.<ext>` with a lowercased
// extension taken from the original filename.
func (s *GalleryService) objectKey(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ext == "" {
		ext = "jpg"
	}
	return fmt.Sprintf("%s%d-%s.%s", s.keyPrefix, time.Now().Unix(), randomHex(8), ext)
}

func randomHex(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("%08d", time.Now().UnixNano()%1e8)
	}
	return hex.EncodeToString(bytes)[:length]
}
