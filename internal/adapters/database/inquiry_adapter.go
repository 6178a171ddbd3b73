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

const inquiryColumns = `
	id, name, email, COALESCE(phone, ''), COALESCE(service, ''),
	message, status, created_at, updated_at
`

// InquiryAdapter implements contact inquiry persistence in Postgres.
type InquiryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewInquiryAdapter creates a new inquiry adapter.
func NewInquiryAdapter(client *postgres.Client) repositories.InquiryRepository {
	return &InquiryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts an inquiry record.
func (a *InquiryAdapter) Create(ctx context.Context, inquiry *entities.ContactInquiry) error {
	if inquiry == nil {
		return apperrors.NewInternalError("inquiry is nil", fmt.Errorf("inquiry is nil"))
	}

	record := goqu.Record{
		"id":         inquiry.ID,
		"name":       inquiry.Name,
		"email":      inquiry.Email,
		"phone":      sql.NullString{String: inquiry.Phone, Valid: inquiry.Phone != ""},
		"service":    sql.NullString{String: inquiry.Service, Valid: inquiry.Service != ""},
		"message":    inquiry.Message,
		"status":     string(inquiry.Status),
		"created_at": inquiry.CreatedAt,
		"updated_at": inquiry.UpdatedAt,
	}

	query, args, err := a.db.Insert("contact_inquiries").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build inquiry insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create inquiry", err)
	}

	return nil
}

// GetByID retrieves an inquiry by its ID.
func (a *InquiryAdapter) GetByID(ctx context.Context, id string) (*entities.ContactInquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM contact_inquiries WHERE id = $1`

	inquiry := &entities.ContactInquiry{}
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&inquiry.ID,
		&inquiry.Name,
		&inquiry.Email,
		&inquiry.Phone,
		&inquiry.Service,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("inquiry with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get inquiry", err)
	}

	return inquiry, nil
}

// List returns all inquiries, newest first.
func (a *InquiryAdapter) List(ctx context.Context) ([]*entities.ContactInquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM contact_inquiries ORDER BY created_at DESC`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list inquiries", err)
	}
	defer rows.Close()

	var inquiries []*entities.ContactInquiry
	for rows.Next() {
		inquiry := &entities.ContactInquiry{}
		if err := rows.Scan(
			&inquiry.ID,
			&inquiry.Name,
			&inquiry.Email,
			&inquiry.Phone,
			&inquiry.Service,
			&inquiry.Message,
			&inquiry.Status,
			&inquiry.CreatedAt,
			&inquiry.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan inquiry", err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate inquiries", err)
	}

	return inquiries, nil
}

// UpdateStatus sets the inquiry status and returns the updated record.
func (a *InquiryAdapter) UpdateStatus(ctx context.Context, id string, status entities.InquiryStatus) (*entities.ContactInquiry, error) {
	query := `
		UPDATE contact_inquiries
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING ` + inquiryColumns

	inquiry := &entities.ContactInquiry{}
	err := a.client.DB().QueryRowContext(ctx, query, string(status), id).Scan(
		&inquiry.ID,
		&inquiry.Name,
		&inquiry.Email,
		&inquiry.Phone,
		&inquiry.Service,
		&inquiry.Message,
		&inquiry.Status,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("inquiry with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to update inquiry status", err)
	}

	return inquiry, nil
}

// Delete removes an inquiry record.
func (a *InquiryAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.client.DB().ExecContext(ctx, `DELETE FROM contact_inquiries WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternalError("failed to delete inquiry", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check inquiry delete result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("inquiry with id %s not found", id))
	}

	return nil
}
