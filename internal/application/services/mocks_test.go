package services_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/providers"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// MockCacheProvider is an in-memory cache for testing
type MockCacheProvider struct {
	mu               sync.RWMutex
	data             map[string][]byte
	deleted          []string
	deletePatternErr error
}

func NewMockCacheProvider() *MockCacheProvider {
	return &MockCacheProvider{
		data:    make(map[string][]byte),
		deleted: make([]string, 0),
	}
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if val, ok := m.data[key]; ok {
		return val, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *MockCacheProvider) DeletePattern(ctx context.Context, pattern string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deletePatternErr != nil {
		return 0, m.deletePatternErr
	}
	// Only prefix* patterns are used in this codebase
	prefix := strings.TrimSuffix(pattern, "*")
	var deleted int
	for key := range m.data {
		if strings.HasPrefix(key, prefix) {
			delete(m.data, key)
			m.deleted = append(m.deleted, key)
			deleted++
		}
	}
	return deleted, nil
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

// MockEventBus records published events
type MockEventBus struct {
	mu         sync.Mutex
	published  []*entities.ContentEvent
	channel    chan *entities.ContentEvent
	publishErr error
}

func NewMockEventBus() *MockEventBus {
	return &MockEventBus{channel: make(chan *entities.ContentEvent, 10)}
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.ContentEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, event)
	return nil
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ContentEvent, error) {
	return m.channel, nil
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error { return nil }
func (m *MockEventBus) Close() error                                          { return nil }

func (m *MockEventBus) Published() []*entities.ContentEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*entities.ContentEvent(nil), m.published...)
}

// MockObjectStorage is an in-memory bucket
type MockObjectStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	baseURL string
	listErr error
}

func NewMockObjectStorage() *MockObjectStorage {
	return &MockObjectStorage{
		objects: make(map[string][]byte),
		baseURL: "https://bucket.test",
	}
}

func (m *MockObjectStorage) Upload(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = []byte{}
	return m.baseURL + "/" + key, nil
}

func (m *MockObjectStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *MockObjectStorage) List(ctx context.Context, prefix string) ([]providers.StoredObject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var objects []providers.StoredObject
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, providers.StoredObject{Key: key})
		}
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

func (m *MockObjectStorage) PublicURL(key string) string {
	return m.baseURL + "/" + key
}

func (m *MockObjectStorage) KeyFromURL(url string) (string, bool) {
	if !strings.HasPrefix(url, m.baseURL+"/") {
		return "", false
	}
	return strings.TrimPrefix(url, m.baseURL+"/"), true
}

func (m *MockObjectStorage) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for key := range m.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (m *MockObjectStorage) Put(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = []byte{}
}

// MockPhotoRepository is an in-memory photo store
type MockPhotoRepository struct {
	mu      sync.Mutex
	photos  []*entities.Photo
	listErr error
}

func NewMockPhotoRepository() *MockPhotoRepository {
	return &MockPhotoRepository{}
}

func (m *MockPhotoRepository) Create(ctx context.Context, photo *entities.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos = append(m.photos, photo)
	return nil
}

func (m *MockPhotoRepository) GetByID(ctx context.Context, id string) (*entities.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, photo := range m.photos {
		if photo.ID == id {
			return photo, nil
		}
	}
	return nil, apperrors.NewNotFoundError("photo not found")
}

func (m *MockPhotoRepository) List(ctx context.Context) ([]*entities.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	sorted := append([]*entities.Photo(nil), m.photos...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })
	return sorted, nil
}

func (m *MockPhotoRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, photo := range m.photos {
		if photo.ID == id {
			m.photos = append(m.photos[:i], m.photos[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("photo not found")
}

func (m *MockPhotoRepository) ImageURLs(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	urls := make([]string, 0, len(m.photos))
	for _, photo := range m.photos {
		urls = append(urls, photo.ImageURL)
	}
	return urls, nil
}

func (m *MockPhotoRepository) DeleteAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.photos = nil
	return nil
}

// MockTestimonialRepository is an in-memory testimonial store
type MockTestimonialRepository struct {
	mu           sync.Mutex
	testimonials []*entities.Testimonial
}

func NewMockTestimonialRepository() *MockTestimonialRepository {
	return &MockTestimonialRepository{}
}

func (m *MockTestimonialRepository) Create(ctx context.Context, testimonial *entities.Testimonial) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.testimonials = append(m.testimonials, testimonial)
	return nil
}

func (m *MockTestimonialRepository) GetByID(ctx context.Context, id string) (*entities.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, testimonial := range m.testimonials {
		if testimonial.ID == id {
			return testimonial, nil
		}
	}
	return nil, apperrors.NewNotFoundError("testimonial not found")
}

func (m *MockTestimonialRepository) List(ctx context.Context, filter repositories.TestimonialFilter) ([]*entities.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*entities.Testimonial
	for _, testimonial := range m.testimonials {
		if filter.PublishedOnly && !testimonial.IsPublished {
			continue
		}
		if filter.FeaturedOnly && !testimonial.IsFeatured {
			continue
		}
		result = append(result, testimonial)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].IsFeatured != result[j].IsFeatured {
			return result[i].IsFeatured
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (m *MockTestimonialRepository) SetPublished(ctx context.Context, id string, published bool) (*entities.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, testimonial := range m.testimonials {
		if testimonial.ID == id {
			testimonial.IsPublished = published
			return testimonial, nil
		}
	}
	return nil, apperrors.NewNotFoundError("testimonial not found")
}

func (m *MockTestimonialRepository) SetFeatured(ctx context.Context, id string, featured bool) (*entities.Testimonial, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, testimonial := range m.testimonials {
		if testimonial.ID == id {
			testimonial.IsFeatured = featured
			return testimonial, nil
		}
	}
	return nil, apperrors.NewNotFoundError("testimonial not found")
}

func (m *MockTestimonialRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, testimonial := range m.testimonials {
		if testimonial.ID == id {
			m.testimonials = append(m.testimonials[:i], m.testimonials[i+1:]...)
			return nil
		}
	}
	return apperrors.NewNotFoundError("testimonial not found")
}

// MockSettingsRepository is an in-memory settings singleton
type MockSettingsRepository struct {
	mu       sync.Mutex
	settings *entities.SiteSettings
}

func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{}
}

func (m *MockSettingsRepository) Get(ctx context.Context) (*entities.SiteSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, apperrors.NewNotFoundError("site settings not configured")
	}
	return m.settings, nil
}

func (m *MockSettingsRepository) Upsert(ctx context.Context, settings *entities.SiteSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *settings
	copied.ID = entities.SettingsRowID
	m.settings = &copied
	return nil
}

// MockAdminUserRepository is an in-memory admin account store
type MockAdminUserRepository struct {
	mu    sync.Mutex
	users map[string]*entities.AdminUser
}

func NewMockAdminUserRepository() *MockAdminUserRepository {
	return &MockAdminUserRepository{users: make(map[string]*entities.AdminUser)}
}

func (m *MockAdminUserRepository) GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[username]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError("admin user not found")
}

func (m *MockAdminUserRepository) Create(ctx context.Context, user *entities.AdminUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Username] = user
	return nil
}
