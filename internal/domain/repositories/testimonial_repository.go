package repositories

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// TestimonialFilter narrows testimonial listings.
type TestimonialFilter struct {
	PublishedOnly bool
	FeaturedOnly  bool
	Limit         int
}

// TestimonialRepository defines the interface for testimonial persistence.
type TestimonialRepository interface {
	Create(ctx context.Context, testimonial *entities.Testimonial) error
	GetByID(ctx context.Context, id string) (*entities.Testimonial, error)
	// List orders by is_featured desc, created_at desc.
	List(ctx context.Context, filter TestimonialFilter) ([]*entities.Testimonial, error)
	// SetPublished and SetFeatured return the updated record; updating a
	// record already in the target state is a no-op success.
	SetPublished(ctx context.Context, id string, published bool) (*entities.Testimonial, error)
	SetFeatured(ctx context.Context, id string, featured bool) (*entities.Testimonial, error)
	Delete(ctx context.Context, id string) error
}
