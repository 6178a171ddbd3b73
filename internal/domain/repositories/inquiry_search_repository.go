package repositories

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// InquirySearchRepository defines the admin-panel full-text index over
// contact inquiries. Indexing is best-effort; the database stays the source
// of truth.
type InquirySearchRepository interface {
	InitSchema(ctx context.Context) error
	Index(ctx context.Context, inquiry *entities.ContactInquiry) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]*entities.ContactInquiry, error)
}
