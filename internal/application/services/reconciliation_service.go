package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/providers"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// FullCleanupConfirmation is the exact phrase required to wipe the gallery.
const FullCleanupConfirmation = "DELETE EVERYTHING"

// ReconcileReport summarizes one reconciliation run.
type ReconcileReport struct {
	ObjectsListed  int      `json:"objects_listed"`
	KeysReferenced int      `json:"keys_referenced"`
	OrphansDeleted int      `json:"orphans_deleted"`
	DeletedKeys    []string `json:"deleted_keys,omitempty"`
	FailedKeys     []string `json:"failed_keys,omitempty"`
	Duration       string   `json:"duration"`
}

// ReconciliationService removes bucket objects that no photo record
// references. The record store is authoritative: an object without a record
// is an orphan, a record without an object is left alone (its URL just 404s
// until an admin re-uploads).
type ReconciliationService struct {
	repo      repositories.PhotoRepository
	storage   providers.ObjectStorage
	keyPrefix string
}

// NewReconciliationService creates a new reconciliation service.
func NewReconciliationService(repo repositories.PhotoRepository, storage providers.ObjectStorage, keyPrefix string) *ReconciliationService {
	if keyPrefix == "" {
		keyPrefix = "gallery/"
	}
	return &ReconciliationService{
		repo:      repo,
		storage:   storage,
		keyPrefix: keyPrefix,
	}
}

// Reconcile deletes exactly the objects under the prefix that no photo
// record references. Both listings must succeed before anything is deleted;
// a partial view must never be mistaken for an orphan list.
func (s *ReconciliationService) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	start := time.Now()

	objects, err := s.storage.List(ctx, s.keyPrefix)
	if err != nil {
		return nil, err
	}

	urls, err := s.repo.ImageURLs(ctx)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if key, ok := s.storage.KeyFromURL(url); ok {
			referenced[key] = struct{}{}
		}
	}

	report := &ReconcileReport{
		ObjectsListed:  len(objects),
		KeysReferenced: len(referenced),
	}

	for _, obj := range objects {
		if _, ok := referenced[obj.Key]; ok {
			continue
		}
		if err := s.storage.Delete(ctx, obj.Key); err != nil {
			log.Warn().Err(err).Str("key", obj.Key).Msg("Failed to delete orphaned object")
			report.FailedKeys = append(report.FailedKeys, obj.Key)
			continue
		}
		report.DeletedKeys = append(report.DeletedKeys, obj.Key)
	}

	report.OrphansDeleted = len(report.DeletedKeys)
	report.Duration = time.Since(start).String()

	log.Info().Int("objects", report.ObjectsListed).Int("orphans_deleted", report.OrphansDeleted).
		Int("failed", len(report.FailedKeys)).Msg("Reconciliation finished")

	return report, nil
}

// FullCleanup deletes every photo record and every object under the prefix.
// Irreversible, and refused unless confirmation matches exactly.
func (s *ReconciliationService) FullCleanup(ctx context.Context, confirmation string) (*ReconcileReport, error) {
	if confirmation != FullCleanupConfirmation {
		return nil, apperrors.NewValidationError(
			"full cleanup requires the confirmation phrase " + FullCleanupConfirmation)
	}

	start := time.Now()

	objects, err := s.storage.List(ctx, s.keyPrefix)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteAll(ctx); err != nil {
		return nil, err
	}

	report := &ReconcileReport{ObjectsListed: len(objects)}
	for _, obj := range objects {
		if err := s.storage.Delete(ctx, obj.Key); err != nil {
			log.Warn().Err(err).Str("key", obj.Key).Msg("Failed to delete object during full cleanup")
			report.FailedKeys = append(report.FailedKeys, obj.Key)
			continue
		}
		report.DeletedKeys = append(report.DeletedKeys, obj.Key)
	}

	report.OrphansDeleted = len(report.DeletedKeys)
	report.Duration = time.Since(start).String()

	log.Warn().Int("records_and_objects", report.ObjectsListed).Msg("Full gallery cleanup executed")

	return report, nil
}
