package services

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/providers"
	"github.com/vodomont/backend/pkg/config"
)

// cacheKeyPrefix matches the keys written by the response cache middleware.
const cacheKeyPrefix = "http:cache:"

// CacheInvalidationService drops cached responses after content mutations
// and keeps horizontally-scaled replicas in sync through the event bus.
// Invalidation is best-effort: callers log failures and move on, a mutation
// never fails because a cache key survived.
type CacheInvalidationService struct {
	cache      providers.CacheProvider
	eventBus   providers.EventBus
	cdn        *config.CDNConfig
	tagPaths   map[string][]string
	httpClient *http.Client
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service.
// tagPaths maps a content tag to the request paths whose cached responses
// depend on it.
func NewCacheInvalidationService(
	cache providers.CacheProvider,
	eventBus providers.EventBus,
	cdn *config.CDNConfig,
	tagPaths map[string][]string,
) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:      cache,
		eventBus:   eventBus,
		cdn:        cdn,
		tagPaths:   tagPaths,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		ctx:        ctx,
		cancel:     cancel,
	}
}

// DefaultTagPaths is the tag registry for the cached API surfaces. Frontend
// paths like "/" are carried in events for the CDN and the frontend's own
// revalidation; only /api/ paths live in the response cache.
func DefaultTagPaths() map[string][]string {
	return map[string][]string{
		"gallery":      {"/api/gallery"},
		"photos":       {"/api/gallery"},
		"testimonials": {"/api/testimonials/published", "/api/testimonials/featured"},
		"settings":     {"/api/settings"},
	}
}

// Start subscribes to content updates so invalidations published by other
// replicas are applied locally too.
//
// All public methods tolerate a nil receiver: when Redis is unavailable the
// rest of the application keeps mutating content, just without any cache to
// invalidate.
func (s *CacheInvalidationService) Start() error {
	if s == nil {
		return nil
	}
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelContentUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to content updates: %w", err)
	}

	go s.processEvents(eventChan)
	log.Info().Msg("Cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service.
func (s *CacheInvalidationService) Stop() {
	if s == nil {
		return
	}
	s.cancel()
	log.Info().Msg("Cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.ContentEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.ContentEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	deleted, err := s.Invalidate(ctx, event.Paths, event.Tags)
	if err != nil {
		log.Warn().Err(err).Str("event_id", event.ID).Msg("Failed to apply remote invalidation")
		return
	}
	log.Debug().Str("event_id", event.ID).Str("surface", string(event.Surface)).
		Int("keys_deleted", deleted).Msg("Applied content event invalidation")
}

// Invalidate deletes the cached responses for the given paths and every
// path registered under the given tags. Re-invalidating keys that are
// already gone is a no-op, so duplicate events are harmless.
func (s *CacheInvalidationService) Invalidate(ctx context.Context, paths, tags []string) (int, error) {
	if s == nil {
		return 0, nil
	}
	seen := make(map[string]struct{})
	var targets []string
	for _, path := range paths {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			targets = append(targets, path)
		}
	}
	for _, tag := range tags {
		for _, path := range s.tagPaths[tag] {
			if _, ok := seen[path]; !ok {
				seen[path] = struct{}{}
				targets = append(targets, path)
			}
		}
	}

	var deleted int
	for _, path := range targets {
		// Non-API paths are frontend pages, not response-cache entries
		if !strings.HasPrefix(path, "/api/") {
			continue
		}
		pattern := cacheKeyPrefix + "GET:" + path + "*"
		n, err := s.cache.DeletePattern(ctx, pattern)
		if err != nil {
			return deleted, fmt.Errorf("failed to invalidate pattern %s: %w", pattern, err)
		}
		deleted += n
	}

	return deleted, nil
}

// InvalidateAndBroadcast applies the invalidation locally and publishes the
// event so other replicas converge. Both halves are best-effort; it reports
// whether they succeeded so responses can carry the flag, but a failure only
// produces a log line, never an error. A nil receiver reports success: with
// no cache configured there is nothing that can go stale.
func (s *CacheInvalidationService) InvalidateAndBroadcast(ctx context.Context, event *entities.ContentEvent) bool {
	if s == nil {
		return true
	}
	ok := true
	if _, err := s.Invalidate(ctx, event.Paths, event.Tags); err != nil {
		log.Warn().Err(err).Str("surface", string(event.Surface)).Msg("Cache invalidation failed")
		ok = false
	}

	if err := s.eventBus.Publish(ctx, providers.EventChannelContentUpdates, event); err != nil {
		log.Warn().Err(err).Str("surface", string(event.Surface)).Msg("Failed to publish content event")
		ok = false
	}
	return ok
}

// PurgeAll drops every cached response on this Redis.
func (s *CacheInvalidationService) PurgeAll(ctx context.Context) (int, error) {
	if s == nil {
		return 0, nil
	}
	return s.cache.DeletePattern(ctx, cacheKeyPrefix+"*")
}

// PurgeEdge asks the external CDN to drop its cached copies. Skipped when
// no CDN credentials are configured.
func (s *CacheInvalidationService) PurgeEdge(ctx context.Context) error {
	if s == nil || s.cdn == nil || s.cdn.PurgeURL == "" {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cdn.PurgeURL,
		bytes.NewBufferString(`{"purge_everything":true}`))
	if err != nil {
		return fmt.Errorf("failed to create purge request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cdn.Token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call CDN purge API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("CDN purge API returned status %d", resp.StatusCode)
	}

	return nil
}
