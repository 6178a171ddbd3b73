package database

import (
	"context"

	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	"github.com/vodomont/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// PageViewAdapter implements per-path daily view counters in Postgres.
type PageViewAdapter struct {
	client *postgres.Client
}

// NewPageViewAdapter creates a new page view adapter.
func NewPageViewAdapter(client *postgres.Client) repositories.PageViewRepository {
	return &PageViewAdapter{client: client}
}

// Increment adds one view for the path on the current day.
func (a *PageViewAdapter) Increment(ctx context.Context, path string) error {
	query := `
		INSERT INTO page_views (path, day, count)
		VALUES ($1, CURRENT_DATE, 1)
		ON CONFLICT (path, day) DO UPDATE SET count = page_views.count + 1
	`

	if _, err := a.client.DB().ExecContext(ctx, query, path); err != nil {
		return apperrors.NewInternalError("failed to increment page view", err)
	}

	return nil
}

// Totals returns accumulated counts per path across all days.
func (a *PageViewAdapter) Totals(ctx context.Context) ([]*entities.PageView, error) {
	query := `
		SELECT path, MAX(day) AS day, SUM(count) AS count
		FROM page_views
		GROUP BY path
		ORDER BY count DESC
	`

	rows, err := a.client.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query page view totals", err)
	}
	defer rows.Close()

	var totals []*entities.PageView
	for rows.Next() {
		view := &entities.PageView{}
		if err := rows.Scan(&view.Path, &view.Day, &view.Count); err != nil {
			return nil, apperrors.NewInternalError("failed to scan page view", err)
		}
		totals = append(totals, view)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate page views", err)
	}

	return totals, nil
}
