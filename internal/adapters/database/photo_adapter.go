package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	"github.com/vodomont/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// PhotoAdapter implements gallery photo persistence in Postgres.
type PhotoAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPhotoAdapter creates a new photo adapter.
func NewPhotoAdapter(client *postgres.Client) repositories.PhotoRepository {
	return &PhotoAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create inserts a photo record.
func (a *PhotoAdapter) Create(ctx context.Context, photo *entities.Photo) error {
	if photo == nil {
		return apperrors.NewInternalError("photo is nil", fmt.Errorf("photo is nil"))
	}

	record := goqu.Record{
		"id":          photo.ID,
		"title":       photo.Title,
		"description": sql.NullString{String: photo.Description, Valid: photo.Description != ""},
		"image_url":   photo.ImageURL,
		"alt_text":    sql.NullString{String: photo.AltText, Valid: photo.AltText != ""},
		"is_featured": photo.IsFeatured,
		"created_at":  photo.CreatedAt,
	}

	query, args, err := a.db.Insert("photos").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build photo insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create photo", err)
	}

	return nil
}

// GetByID retrieves a photo by its ID.
func (a *PhotoAdapter) GetByID(ctx context.Context, id string) (*entities.Photo, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), image_url,
			COALESCE(alt_text, ''), is_featured, created_at
		FROM photos
		WHERE id = $1
	`

	photo := &entities.Photo{}
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&photo.ID,
		&photo.Title,
		&photo.Description,
		&photo.ImageURL,
		&photo.AltText,
		&photo.IsFeatured,
		&photo.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("photo with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get photo", err)
	}

	return photo, nil
}

// List returns all photos, newest first.
func (a *PhotoAdapter) List(ctx context.Context) ([]*entities.Photo, error) {
	query := `
		SELECT id, title, COALESCE(description, ''), image_url,
			COALESCE(alt_text, ''), is_featured, created_at
		FROM photos
		ORDER BY created_at DESC
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list photos", err)
	}
	defer rows.Close()

	var photos []*entities.Photo
	for rows.Next() {
		photo := &entities.Photo{}
		if err := rows.Scan(
			&photo.ID,
			&photo.Title,
			&photo.Description,
			&photo.ImageURL,
			&photo.AltText,
			&photo.IsFeatured,
			&photo.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan photo", err)
		}
		photos = append(photos, photo)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate photos", err)
	}

	return photos, nil
}

// Delete removes a photo record.
func (a *PhotoAdapter) Delete(ctx context.Context, id string) error {
	result, err := a.client.DB().ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return apperrors.NewInternalError("failed to delete photo", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to check photo delete result", err)
	}
	if affected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("photo with id %s not found", id))
	}

	return nil
}

// ImageURLs returns every stored image_url. Used by reconciliation to decide
// which bucket objects are still referenced.
func (a *PhotoAdapter) ImageURLs(ctx context.Context) ([]string, error) {
	rows, err := a.client.DB().QueryContext(ctx, `SELECT image_url FROM photos`)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list photo image urls", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, apperrors.NewInternalError("failed to scan image url", err)
		}
		urls = append(urls, url)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate image urls", err)
	}

	return urls, nil
}

// DeleteAll removes every photo record. Only the destructive reset path
// calls this.
func (a *PhotoAdapter) DeleteAll(ctx context.Context) error {
	if _, err := a.client.DB().ExecContext(ctx, `DELETE FROM photos`); err != nil {
		return apperrors.NewInternalError("failed to delete all photos", err)
	}
	return nil
}
