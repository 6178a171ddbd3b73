package repositories

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
)

// AdminUserRepository defines the interface for admin account lookups.
type AdminUserRepository interface {
	GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error)
	Create(ctx context.Context, user *entities.AdminUser) error
}
