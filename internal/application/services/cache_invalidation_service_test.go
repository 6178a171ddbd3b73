package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/entities"
)

func TestCacheInvalidationService_Invalidate(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes keys for paths and expands tags", func(t *testing.T) {
		cache := NewMockCacheProvider()
		service := services.NewCacheInvalidationService(
			cache, NewMockEventBus(), nil, services.DefaultTagPaths())

		cache.Set(ctx, "http:cache:GET:/api/gallery", []byte("cached"), 60)
		cache.Set(ctx, "http:cache:GET:/api/gallery?page=2", []byte("cached"), 60)
		cache.Set(ctx, "http:cache:GET:/api/settings", []byte("cached"), 60)

		deleted, err := service.Invalidate(ctx, nil, []string{"gallery"})

		require.NoError(t, err)
		assert.Equal(t, 2, deleted)

		// The settings entry survives a gallery invalidation
		_, err = cache.Get(ctx, "http:cache:GET:/api/settings")
		assert.NoError(t, err)
	})

	t.Run("deduplicates overlapping paths and tags", func(t *testing.T) {
		cache := NewMockCacheProvider()
		service := services.NewCacheInvalidationService(
			cache, NewMockEventBus(), nil, services.DefaultTagPaths())

		cache.Set(ctx, "http:cache:GET:/api/gallery", []byte("cached"), 60)

		deleted, err := service.Invalidate(ctx,
			[]string{"/api/gallery", "/api/gallery"},
			[]string{"gallery", "photos"})

		require.NoError(t, err)
		assert.Equal(t, 1, deleted)
	})

	t.Run("invalidating an empty cache is a no-op", func(t *testing.T) {
		service := services.NewCacheInvalidationService(
			NewMockCacheProvider(), NewMockEventBus(), nil, services.DefaultTagPaths())

		deleted, err := service.Invalidate(ctx, []string{"/", "/api/gallery"}, []string{"gallery"})

		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}

func TestCacheInvalidationService_InvalidateAndBroadcast(t *testing.T) {
	ctx := context.Background()

	t.Run("drops local keys and publishes the event", func(t *testing.T) {
		cache := NewMockCacheProvider()
		eventBus := NewMockEventBus()
		service := services.NewCacheInvalidationService(cache, eventBus, nil, services.DefaultTagPaths())

		cache.Set(ctx, "http:cache:GET:/api/gallery", []byte("cached"), 60)

		event := entities.NewContentEvent(
			entities.SurfaceGallery, "photo-1", entities.ContentEventCreated,
			[]string{"/api/gallery"}, []string{"gallery"})
		ok := service.InvalidateAndBroadcast(ctx, event)

		assert.True(t, ok)
		_, err := cache.Get(ctx, "http:cache:GET:/api/gallery")
		assert.Error(t, err, "cached entry should be gone")

		published := eventBus.Published()
		require.Len(t, published, 1)
		assert.Equal(t, entities.SurfaceGallery, published[0].Surface)
		assert.Equal(t, "photo-1", published[0].EntityID)
	})

	t.Run("reports false when the cache delete fails", func(t *testing.T) {
		cache := NewMockCacheProvider()
		cache.deletePatternErr = fmt.Errorf("connection reset")
		eventBus := NewMockEventBus()
		service := services.NewCacheInvalidationService(cache, eventBus, nil, services.DefaultTagPaths())

		event := entities.NewContentEvent(
			entities.SurfaceGallery, "photo-1", entities.ContentEventCreated,
			[]string{"/api/gallery"}, nil)
		ok := service.InvalidateAndBroadcast(ctx, event)

		assert.False(t, ok)
		// The event still goes out so healthy replicas converge
		assert.Len(t, eventBus.Published(), 1)
	})

	t.Run("reports false when the broadcast fails", func(t *testing.T) {
		cache := NewMockCacheProvider()
		eventBus := NewMockEventBus()
		eventBus.publishErr = fmt.Errorf("bus closed")
		service := services.NewCacheInvalidationService(cache, eventBus, nil, services.DefaultTagPaths())

		cache.Set(ctx, "http:cache:GET:/api/gallery", []byte("cached"), 60)

		event := entities.NewContentEvent(
			entities.SurfaceGallery, "photo-1", entities.ContentEventCreated,
			[]string{"/api/gallery"}, nil)
		ok := service.InvalidateAndBroadcast(ctx, event)

		assert.False(t, ok)
		// The local invalidation still happened
		_, err := cache.Get(ctx, "http:cache:GET:/api/gallery")
		assert.Error(t, err)
	})
}

func TestCacheInvalidationService_PurgeAll(t *testing.T) {
	ctx := context.Background()

	cache := NewMockCacheProvider()
	service := services.NewCacheInvalidationService(cache, NewMockEventBus(), nil, services.DefaultTagPaths())

	cache.Set(ctx, "http:cache:GET:/", []byte("a"), 60)
	cache.Set(ctx, "http:cache:GET:/api/gallery", []byte("b"), 60)
	cache.Set(ctx, "admin:session:token-1", []byte("session"), 60)

	deleted, err := service.PurgeAll(ctx)

	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	// Sessions live outside the response cache namespace
	_, err = cache.Get(ctx, "admin:session:token-1")
	assert.NoError(t, err)
}
