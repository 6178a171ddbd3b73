package database

import (
	"context"
	"database/sql"

	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	"github.com/vodomont/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// SettingsAdapter implements the site settings singleton in Postgres. The
// table holds at most one row with a fixed primary key.
type SettingsAdapter struct {
	client *postgres.Client
}

// NewSettingsAdapter creates a new settings adapter.
func NewSettingsAdapter(client *postgres.Client) repositories.SettingsRepository {
	return &SettingsAdapter{client: client}
}

// Get retrieves the singleton settings row.
func (a *SettingsAdapter) Get(ctx context.Context) (*entities.SiteSettings, error) {
	query := `
		SELECT id, business_name, phone, email, service_area,
			description, address, working_hours, emergency_available, updated_at
		FROM site_settings
		WHERE id = $1
	`

	settings := &entities.SiteSettings{}
	err := a.client.DB().QueryRowContext(ctx, query, entities.SettingsRowID).Scan(
		&settings.ID,
		&settings.BusinessName,
		&settings.Phone,
		&settings.Email,
		&settings.ServiceArea,
		&settings.Description,
		&settings.Address,
		&settings.WorkingHours,
		&settings.EmergencyAvailable,
		&settings.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError("site settings not configured")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get site settings", err)
	}

	return settings, nil
}

// Upsert inserts or updates the singleton row in one statement. The fixed
// key plus ON CONFLICT makes concurrent first writes converge on a single
// row instead of racing a separate existence check.
func (a *SettingsAdapter) Upsert(ctx context.Context, settings *entities.SiteSettings) error {
	query := `
		INSERT INTO site_settings (
			id, business_name, phone, email, service_area,
			description, address, working_hours, emergency_available, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			service_area = EXCLUDED.service_area,
			description = EXCLUDED.description,
			address = EXCLUDED.address,
			working_hours = EXCLUDED.working_hours,
			emergency_available = EXCLUDED.emergency_available,
			updated_at = NOW()
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		entities.SettingsRowID,
		settings.BusinessName,
		settings.Phone,
		settings.Email,
		settings.ServiceArea,
		settings.Description,
		settings.Address,
		settings.WorkingHours,
		settings.EmergencyAvailable,
	)
	if err != nil {
		return apperrors.NewInternalError("failed to upsert site settings", err)
	}

	return nil
}
