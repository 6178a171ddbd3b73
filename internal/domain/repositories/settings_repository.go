package repositories

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// SettingsRepository defines the interface for the site settings singleton.
type SettingsRepository interface {
	// Get returns a not-found error when no row exists; callers substitute
	// the default object.
	Get(ctx context.Context) (*entities.SiteSettings, error)
	// Upsert atomically inserts or updates the singleton row.
	Upsert(ctx context.Context, settings *entities.SiteSettings) error
}
