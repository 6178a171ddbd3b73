package repositories

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// PhotoRepository defines the interface for gallery photo persistence.
type PhotoRepository interface {
	Create(ctx context.Context, photo *entities.Photo) error
	GetByID(ctx context.Context, id string) (*entities.Photo, error)
	// List returns all photos ordered by creation time descending.
	List(ctx context.Context) ([]*entities.Photo, error)
	Delete(ctx context.Context, id string) error
	// ImageURLs returns every stored image_url; used by reconciliation.
	ImageURLs(ctx context.Context) ([]string, error)
	// DeleteAll removes every photo record. Destructive reset only.
	DeleteAll(ctx context.Context) error
}
