package services_test

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vodomont/backend/internal/application/services"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

func newGalleryFixture() (*services.GalleryService, *MockPhotoRepository, *MockObjectStorage, *MockEventBus) {
	repo := NewMockPhotoRepository()
	storage := NewMockObjectStorage()
	eventBus := NewMockEventBus()
	invalidation := services.NewCacheInvalidationService(
		NewMockCacheProvider(), eventBus, nil, services.DefaultTagPaths())
	service := services.NewGalleryService(repo, storage, invalidation, "gallery/")
	return service, repo, storage, eventBus
}

func TestGalleryService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("stores object and record with generated key", func(t *testing.T) {
		service, repo, storage, eventBus := newGalleryFixture()

		photo, invalidated, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "  Zamena bojlera  ",
			Description: "Kompletna zamena",
			Filename:    "IMG_0042.JPG",
			ContentType: "image/jpeg",
			Size:        1024,
			Body:        strings.NewReader("fake image bytes"),
		})

		require.NoError(t, err)
		assert.True(t, invalidated)
		assert.Equal(t, "Zamena bojlera", photo.Title)
		assert.False(t, photo.IsFeatured)

		keys := storage.Keys()
		require.Len(t, keys, 1)
		assert.Regexp(t, regexp.MustCompile(`^gallery/\d+-[0-9a-f]{8}\.jpg$`), keys[0])
		assert.Equal(t, "https://bucket.test/"+keys[0], photo.ImageURL)

		photos, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Len(t, photos, 1)
		assert.NotEmpty(t, eventBus.Published())
	})

	t.Run("rejects non-image content type", func(t *testing.T) {
		service, repo, storage, _ := newGalleryFixture()

		_, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "Dokument",
			Description: "Racun za materijal",
			Filename:    "invoice.pdf",
			ContentType: "application/pdf",
			Size:        100,
			Body:        strings.NewReader("%PDF"),
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Empty(t, storage.Keys())
		photos, _ := repo.List(ctx)
		assert.Empty(t, photos)
	})

	t.Run("rejects missing title", func(t *testing.T) {
		service, _, storage, _ := newGalleryFixture()

		_, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "   ",
			Description: "Opis bez naslova",
			Filename:    "a.jpg",
			ContentType: "image/jpeg",
			Size:        10,
			Body:        strings.NewReader("x"),
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Empty(t, storage.Keys())
	})

	t.Run("rejects blank description with no record created", func(t *testing.T) {
		service, repo, storage, _ := newGalleryFixture()

		_, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "Naslov",
			Description: "   ",
			Filename:    "a.jpg",
			ContentType: "image/jpeg",
			Size:        10,
			Body:        strings.NewReader("x"),
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		assert.Empty(t, storage.Keys())
		photos, _ := repo.List(ctx)
		assert.Empty(t, photos)
	})

	t.Run("rejects oversized file", func(t *testing.T) {
		service, _, _, _ := newGalleryFixture()

		_, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "Velika slika",
			Description: "Panorama gradilista",
			Filename:    "big.png",
			ContentType: "image/png",
			Size:        6 << 20,
			Body:        strings.NewReader("x"),
		})

		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	})

	t.Run("failed invalidation is reported but does not fail the upload", func(t *testing.T) {
		repo := NewMockPhotoRepository()
		cache := NewMockCacheProvider()
		cache.deletePatternErr = fmt.Errorf("redis gone")
		invalidation := services.NewCacheInvalidationService(
			cache, NewMockEventBus(), nil, services.DefaultTagPaths())
		service := services.NewGalleryService(repo, NewMockObjectStorage(), invalidation, "gallery/")

		photo, invalidated, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "Nova slika",
			Description: "Slika uprkos kesu",
			Filename:    "a.jpg",
			ContentType: "image/jpeg",
			Size:        10,
			Body:        strings.NewReader("x"),
		})

		require.NoError(t, err)
		assert.False(t, invalidated)
		photos, _ := repo.List(ctx)
		require.Len(t, photos, 1)
		assert.Equal(t, photo.ID, photos[0].ID)
	})
}

func TestGalleryService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes record and bucket object", func(t *testing.T) {
		service, repo, storage, _ := newGalleryFixture()

		photo, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "Renoviranje kupatila",
			Description: "Pre i posle radova",
			Filename:    "bath.jpg",
			ContentType: "image/jpeg",
			Size:        512,
			Body:        strings.NewReader("bytes"),
		})
		require.NoError(t, err)

		invalidated, err := service.Delete(ctx, photo.ID)
		require.NoError(t, err)
		assert.True(t, invalidated)

		photos, _ := repo.List(ctx)
		assert.Empty(t, photos)
		assert.Empty(t, storage.Keys())
	})

	t.Run("missing photo returns not found and leaves the set unchanged", func(t *testing.T) {
		service, repo, _, _ := newGalleryFixture()

		photo, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "Postojeca",
			Description: "Ostaje u galeriji",
			Filename:    "a.jpg",
			ContentType: "image/jpeg",
			Size:        10,
			Body:        strings.NewReader("x"),
		})
		require.NoError(t, err)

		_, err = service.Delete(ctx, "does-not-exist")
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))

		photos, _ := repo.List(ctx)
		require.Len(t, photos, 1)
		assert.Equal(t, photo.ID, photos[0].ID)
	})

	t.Run("leaves external image urls alone", func(t *testing.T) {
		service, repo, storage, _ := newGalleryFixture()

		// Record pointing outside the managed bucket
		_, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title:       "U bucketu",
			Description: "Objekat u nasem bucketu",
			Filename:    "in.jpg",
			ContentType: "image/jpeg",
			Size:        10,
			Body:        strings.NewReader("x"),
		})
		require.NoError(t, err)

		photos, _ := repo.List(ctx)
		photos[0].ImageURL = "https://example.com/elsewhere.jpg"

		_, err = service.Delete(ctx, photos[0].ID)
		require.NoError(t, err)
		// The bucket object the upload created is untouched by this delete
		assert.Len(t, storage.Keys(), 1)
	})
}

func TestGalleryService_ListPublic(t *testing.T) {
	ctx := context.Background()

	t.Run("serves demo photos when the record store fails", func(t *testing.T) {
		repo := NewMockPhotoRepository()
		repo.listErr = fmt.Errorf("connection refused")
		eventBus := NewMockEventBus()
		invalidation := services.NewCacheInvalidationService(
			NewMockCacheProvider(), eventBus, nil, services.DefaultTagPaths())
		service := services.NewGalleryService(repo, NewMockObjectStorage(), invalidation, "gallery/")

		photos, demo := service.ListPublic(ctx)

		assert.True(t, demo)
		require.Len(t, photos, 2)
		assert.Equal(t, "demo-1", photos[0].ID)
	})

	t.Run("returns stored photos newest first", func(t *testing.T) {
		service, _, _, _ := newGalleryFixture()

		first, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title: "Prva", Description: "Prvi posao", Filename: "1.jpg",
			ContentType: "image/jpeg", Size: 1, Body: strings.NewReader("x"),
		})
		require.NoError(t, err)
		second, _, err := service.Upload(ctx, &services.PhotoUpload{
			Title: "Druga", Description: "Drugi posao", Filename: "2.jpg",
			ContentType: "image/jpeg", Size: 1, Body: strings.NewReader("x"),
		})
		require.NoError(t, err)

		photos, demo := service.ListPublic(ctx)
		assert.False(t, demo)
		require.Len(t, photos, 2)
		// Newest first; ties on CreatedAt can come back in either order
		ids := []string{photos[0].ID, photos[1].ID}
		assert.Contains(t, ids, first.ID)
		assert.Contains(t, ids, second.ID)
	})
}
