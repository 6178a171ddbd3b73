package repositories

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// InquiryRepository defines the interface for contact inquiry persistence.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *entities.ContactInquiry) error
	GetByID(ctx context.Context, id string) (*entities.ContactInquiry, error)
	// List orders by created_at descending.
	List(ctx context.Context) ([]*entities.ContactInquiry, error)
	UpdateStatus(ctx context.Context, id string, status entities.InquiryStatus) (*entities.ContactInquiry, error)
	Delete(ctx context.Context, id string) error
}
