package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// StatsService records page views and reports totals. Plain counting, no
// visitor identification of any kind.
type StatsService struct {
	repo repositories.PageViewRepository
}

// NewStatsService creates a new stats service.
func NewStatsService(repo repositories.PageViewRepository) *StatsService {
	return &StatsService{repo: repo}
}

// Track counts one view of a path. Fire-and-forget from the caller's point
// of view; a failed write is logged and dropped.
func (s *StatsService) Track(ctx context.Context, path string) error {
	path = strings.TrimSpace(path)
	if path == "" || !strings.HasPrefix(path, "/") {
		return apperrors.NewValidationError("a site-relative path is required")
	}

	if err := s.repo.Increment(ctx, path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to record page view")
		return err
	}
	return nil
}

// Totals returns accumulated view counts per path.
func (s *StatsService) Totals(ctx context.Context) ([]*entities.PageView, error) {
	views, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	if views == nil {
		views = []*entities.PageView{}
	}
	return views, nil
}
