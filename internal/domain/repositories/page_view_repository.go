package repositories

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// PageViewRepository defines the interface for page view counters.
type PageViewRepository interface {
	// Increment adds one view for the path on the current day.
	Increment(ctx context.Context, path string) error
	// Totals returns accumulated counts per path.
	Totals(ctx context.Context) ([]*entities.PageView, error)
}
