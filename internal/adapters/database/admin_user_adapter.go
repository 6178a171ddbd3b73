package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	"github.com/vodomont/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// AdminUserAdapter implements admin account persistence in Postgres.
type AdminUserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAdminUserAdapter creates a new admin user adapter.
func NewAdminUserAdapter(client *postgres.Client) repositories.AdminUserRepository {
	return &AdminUserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByUsername retrieves an admin account by username.
func (a *AdminUserAdapter) GetByUsername(ctx context.Context, username string) (*entities.AdminUser, error) {
	query := `
		SELECT id, username, password_hash, created_at
		FROM admin_users
		WHERE username = $1
	`

	user := &entities.AdminUser{}
	err := a.client.DB().QueryRowContext(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("admin user %s not found", username))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get admin user", err)
	}

	return user, nil
}

// Create inserts an admin account.
func (a *AdminUserAdapter) Create(ctx context.Context, user *entities.AdminUser) error {
	if user == nil {
		return apperrors.NewInternalError("admin user is nil", fmt.Errorf("admin user is nil"))
	}

	record := goqu.Record{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
	}

	query, args, err := a.db.Insert("admin_users").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build admin user insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create admin user", err)
	}

	return nil
}
