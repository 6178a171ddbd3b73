package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// InquirySubmission carries a public contact form submission.
type InquirySubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// ContactService handles contact inquiries: public submission, admin
// triage, and the admin search index.
type ContactService struct {
	repo          repositories.InquiryRepository
	searchRepo    repositories.InquirySearchRepository
	notifications *NotificationService
}

// NewContactService creates a new contact service. searchRepo and
// notifications may be nil when those integrations are not configured.
func NewContactService(
	repo repositories.InquiryRepository,
	searchRepo repositories.InquirySearchRepository,
	notifications *NotificationService,
) *ContactService {
	return &ContactService{
		repo:          repo,
		searchRepo:    searchRepo,
		notifications: notifications,
	}
}

// Submit validates and stores a contact inquiry, then notifies the owner
// and indexes it, both best-effort.
func (s *ContactService) Submit(ctx context.Context, submission *InquirySubmission) (*entities.ContactInquiry, error) {
	name := strings.TrimSpace(submission.Name)
	email := strings.TrimSpace(submission.Email)
	message := strings.TrimSpace(submission.Message)

	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if email == "" || !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("a valid email is required")
	}
	if message == "" {
		return nil, apperrors.NewValidationError("message is required")
	}

	now := time.Now().UTC()
	inquiry := &entities.ContactInquiry{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     strings.TrimSpace(submission.Phone),
		Service:   strings.TrimSpace(submission.Service),
		Message:   message,
		Status:    entities.InquiryStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, inquiry); err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.NotifyInquiryReceived(ctx, inquiry)
	}
	s.index(ctx, inquiry)

	return inquiry, nil
}

// List returns all inquiries for the admin panel, newest first.
func (s *ContactService) List(ctx context.Context) ([]*entities.ContactInquiry, error) {
	return s.repo.List(ctx)
}

// UpdateStatus moves an inquiry between pending and resolved.
func (s *ContactService) UpdateStatus(ctx context.Context, id string, status entities.InquiryStatus) (*entities.ContactInquiry, error) {
	if !entities.ValidInquiryStatus(status) {
		return nil, apperrors.NewValidationError("unknown inquiry status: " + string(status))
	}

	inquiry, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.index(ctx, inquiry)
	return inquiry, nil
}

// Delete removes an inquiry and its index entry.
func (s *ContactService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			log.Warn().Err(err).Str("inquiry_id", id).Msg("Failed to remove inquiry from search index")
		}
	}

	return nil
}

// Search runs an admin full-text query. Returns an external error when the
// search backend is not configured.
func (s *ContactService) Search(ctx context.Context, query string, limit int) ([]*entities.ContactInquiry, error) {
	if s.searchRepo == nil {
		return nil, apperrors.NewExternalError("inquiry search is not configured", nil)
	}
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.NewValidationError("search query is required")
	}
	return s.searchRepo.Search(ctx, query, limit)
}

func (s *ContactService) index(ctx context.Context, inquiry *entities.ContactInquiry) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.Index(ctx, inquiry); err != nil {
		log.Warn().Err(err).Str("inquiry_id", inquiry.ID).Msg("Failed to index inquiry")
	}
}
