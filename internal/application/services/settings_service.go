package services

import (
	"context"
	"strings"

	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// SettingsService handles the site settings singleton.
type SettingsService struct {
	repo         repositories.SettingsRepository
	invalidation *CacheInvalidationService
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repositories.SettingsRepository, invalidation *CacheInvalidationService) *SettingsService {
	return &SettingsService{
		repo:         repo,
		invalidation: invalidation,
	}
}

var settingsPaths = []string{"/", "/api/settings"}
var settingsTags = []string{"settings"}

// Get returns the stored settings, or the default object when no row has
// been written yet. Absence is not an error on the read path.
func (s *SettingsService) Get(ctx context.Context) (*entities.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return entities.DefaultSiteSettings(), nil
		}
		return nil, err
	}
	return settings, nil
}

// Update validates and upserts the singleton row, then invalidates the
// cached pages that render it.
func (s *SettingsService) Update(ctx context.Context, settings *entities.SiteSettings) (*entities.SiteSettings, error) {
	if strings.TrimSpace(settings.BusinessName) == "" {
		return nil, apperrors.NewValidationError("business name is required")
	}
	if strings.TrimSpace(settings.Phone) == "" {
		return nil, apperrors.NewValidationError("phone is required")
	}
	if email := strings.TrimSpace(settings.Email); email != "" && !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("invalid email address")
	}

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, err
	}

	updated, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}

	s.invalidation.InvalidateAndBroadcast(ctx, entities.NewContentEvent(
		entities.SurfaceSettings, "", entities.ContentEventUpdated, settingsPaths, settingsTags))

	return updated, nil
}
