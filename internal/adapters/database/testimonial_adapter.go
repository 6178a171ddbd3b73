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

const testimonialColumns = `
	id, name, text, rating, COALESCE(service, ''), COALESCE(location, ''),
	COALESCE(email, ''), is_featured, is_published, created_at
`

// TestimonialAdapter implements testimonial persistence in Postgres.
type TestimonialAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTestimonialAdapter creates a new testimonial adapter.
func NewTestimonialAdapter(client *postgres.Client) repositories.TestimonialRepository {
	return &TestimonialAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a testimonial record.
func (a *TestimonialAdapter) Create(ctx context.Context, testimonial *entities.Testimonial) error {
	if testimonial == nil {
		return apperrors.NewInternalError("testimonial is nil", fmt.Errorf("testimonial is nil"))
	}

	record := goqu.Record{
		"id":           testimonial.ID,
		"name":         testimonial.Name,
		"text":         testimonial.Text,
		"rating":       testimonial.Rating,
		"service":      sql.NullString{String: testimonial.Service, Valid: testimonial.Service != ""},
		"location":     sql.NullString{String: testimonial.Location, Valid: testimonial.Location != ""},
		"email":        sql.NullString{String: testimonial.Email, Valid: testimonial.Email != ""},
		"is_featured":  testimonial.IsFeatured,
		"is_published": testimonial.IsPublished,
		"created_at":   testimonial.CreatedAt,
	}

	query, args, err := a.db.Insert("testimonials").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build testimonial insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create testimonial", err)
	}

	return nil
}

// GetByID retrieves a testimonial by its ID.
func (a *TestimonialAdapter) GetByID(ctx context.Context, id string) (*entities.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials WHERE id = $1`

	testimonial, err := a.scanOne(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("testimonial with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get testimonial", err)
	}

	return testimonial, nil
}

// List returns testimonials matching the filter, featured first then newest.
func (a *TestimonialAdapter) List(ctx context.Context, filter repositories.TestimonialFilter) ([]*entities.Testimonial, error) {
	query := `SELECT ` + testimonialColumns + ` FROM testimonials`

	var conditions []string
	if filter.PublishedOnly {
		conditions = append(conditions, "is_published = true")
	}
	if filter.FeaturedOnly {
		conditions = append(conditions, "is_featured = true")
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	query += " ORDER BY is_featured DESC, created_at DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list testimonials", err)
	}
	defer rows.Close()

	var testimonials []*entities.Testimonial
	for rows.Next() {
		testimonial, err := a.scanOne(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan testimonial", err)
		}
		testimonials = append(testimonials, testimonial)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate testimonials", err)
	}

	return testimonials, nil
}

// SetPublished updates the publication flag and returns the updated record.
// Setting the flag to its current value is a no-op success.
func (a *TestimonialAdapter) SetPublished(ctx context.Context, id string, published bool) (*entities.Testimonial, error) {
	return a.setFlag(ctx, id, "is_published", published)
}

// SetFeatured updates the featured flag and returns the updated record.
func (a *TestimonialAdapter) SetFeatured(ctx context.Context, id string, featured bool) (*entities.Testimonial, error) {
	return a.setFlag(ctx, id, "is_featured", featured)
}

func (a *TestimonialAdapter) setFlag(ctx context.Context, id, column string, value bool) (*entities.Testimonial, error) {
	// column is one of the two fixed flag names above, never user input
	query := fmt.Sprintf(
		`UPDATE testimonials SET %s = $1 WHERE id = $2 RETURNING `+testimonialColumns,
		column,
	)

	testimonial, err := a.scanOne(a.client.DB().QueryRowContext(ctx, query, value, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("testimonial with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("failed to update testimonial %s", column), err)
	}

	return testimonial, nil
}

// Delete removes a testimonial record.
func (a *TestimonialAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.client.DB().ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternalError("failed to delete testimonial", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check testimonial delete result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("testimonial with id %s not found", id))
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (a *TestimonialAdapter) scanOne(row rowScanner) (*entities.Testimonial, error) {
	testimonial := &entities.Testimonial{}
	err := row.Scan(
		&testimonial.ID,
		&testimonial.Name,
		&testimonial.Text,
		&testimonial.Rating,
		&testimonial.Service,
		&testimonial.Location,
		&testimonial.Email,
		&testimonial.IsFeatured,
		&testimonial.IsPublished,
		&testimonial.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return testimonial, nil
}
