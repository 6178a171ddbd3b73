package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	tsclient "github.com/vodomont/backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements contact inquiry search using Typesense. The
// index is a convenience for the admin panel; Postgres stays the source of
// truth and indexing failures never fail the write path.
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements InquirySearchRepository
var _ repositories.InquirySearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	// Check if collection exists
	_, err := a.client.Client().Collection(tsclient.InquiriesCollection).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: tsclient.InquiriesCollection,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "email", Type: "string"},
			{Name: "phone", Type: "string", Optional: pointer.True()},
			{Name: "service", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "message", Type: "string"},
			{Name: "status", Type: "string", Facet: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts an inquiry into the index
func (a *TypesenseAdapter) Index(ctx context.Context, inquiry *entities.ContactInquiry) error {
	document := map[string]interface{}{
		"id":         inquiry.ID,
		"name":       inquiry.Name,
		"email":      inquiry.Email,
		"phone":      inquiry.Phone,
		"service":    inquiry.Service,
		"message":    inquiry.Message,
		"status":     string(inquiry.Status),
		"created_at": inquiry.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.InquiriesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index inquiry: %w", err)
	}

	return nil
}

// Delete removes an inquiry from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.InquiriesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete inquiry from index: %w", err)
	}
	return nil
}

// Search runs a full-text query over name, email, service and message
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.ContactInquiry, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,email,service,message"),
		SortBy:  pointer.String("created_at:desc"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.InquiriesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search inquiries: %w", err)
	}

	inquiries := []*entities.ContactInquiry{}
	if result.Hits == nil {
		return inquiries, nil
	}

	for _, hit := range *result.Hits {
		if hit.Document == nil {
			continue
		}
		doc := *hit.Document

		inquiry := &entities.ContactInquiry{
			ID:      stringField(doc, "id"),
			Name:    stringField(doc, "name"),
			Email:   stringField(doc, "email"),
			Phone:   stringField(doc, "phone"),
			Service: stringField(doc, "service"),
			Message: stringField(doc, "message"),
			Status:  entities.InquiryStatus(stringField(doc, "status")),
		}
		if ts, ok := doc["created_at"].(float64); ok {
			inquiry.CreatedAt = time.Unix(int64(ts), 0).UTC()
		}

		inquiries = append(inquiries, inquiry)
	}

	return inquiries, nil
}

func stringField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}
