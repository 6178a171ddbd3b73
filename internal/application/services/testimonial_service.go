package services

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

// MinTestimonialTextLength keeps drive-by one-liners out of moderation.
// Counted in characters, not bytes.
const MinTestimonialTextLength = 20

// DefaultFeaturedLimit is how many featured testimonials the homepage shows.
const DefaultFeaturedLimit = 3

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ModerationAction is an admin decision on a testimonial.
type ModerationAction string

const (
	ActionApprove   ModerationAction = "approve"
	ActionUnpublish ModerationAction = "unpublish"
	ActionFeature   ModerationAction = "feature"
)

// TestimonialSubmission carries a public review submission.
type TestimonialSubmission struct {
	Name     string `json:"name"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
	Service  string `json:"service"`
	Location string `json:"location"`
	Email    string `json:"email"`
}

// TestimonialService handles the testimonial lifecycle: public submission,
// admin moderation, and the published/featured read paths.
type TestimonialService struct {
	repo          repositories.TestimonialRepository
	invalidation  *CacheInvalidationService
	notifications *NotificationService
}

// NewTestimonialService creates a new testimonial service. notifications may
// be nil when mail is not configured.
func NewTestimonialService(
	repo repositories.TestimonialRepository,
	invalidation *CacheInvalidationService,
	notifications *NotificationService,
) *TestimonialService {
	return &TestimonialService{
		repo:          repo,
		invalidation:  invalidation,
		notifications: notifications,
	}
}

var testimonialPaths = []string{"/", "/api/testimonials/published", "/api/testimonials/featured"}
var testimonialTags = []string{"testimonials"}

// Submit validates and stores a public submission. New testimonials always
// start unpublished; there is no client input that can change that.
func (s *TestimonialService) Submit(ctx context.Context, submission *TestimonialSubmission) (*entities.Testimonial, error) {
	name := strings.TrimSpace(submission.Name)
	text := strings.TrimSpace(submission.Text)
	email := strings.TrimSpace(submission.Email)

	if name == "" {
		return nil, apperrors.NewValidationError("name is required")
	}
	if utf8.RuneCountInString(text) < MinTestimonialTextLength {
		return nil, apperrors.NewValidationError("testimonial text is too short")
	}
	if submission.Rating < 1 || submission.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, apperrors.NewValidationError("invalid email address")
	}

	testimonial := &entities.Testimonial{
		ID:          uuid.New().String(),
		Name:        name,
		Text:        text,
		Rating:      submission.Rating,
		Service:     strings.TrimSpace(submission.Service),
		Location:    strings.TrimSpace(submission.Location),
		Email:       email,
		IsFeatured:  false,
		IsPublished: false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, testimonial); err != nil {
		return nil, err
	}

	if s.notifications != nil {
		s.notifications.NotifyTestimonialSubmitted(ctx, testimonial)
	}

	return testimonial, nil
}

// Moderate applies an admin action. Approve and unpublish are idempotent;
// feature toggles the flag.
func (s *TestimonialService) Moderate(ctx context.Context, id string, action ModerationAction) (*entities.Testimonial, error) {
	var testimonial *entities.Testimonial
	var err error

	switch action {
	case ActionApprove:
		testimonial, err = s.repo.SetPublished(ctx, id, true)
	case ActionUnpublish:
		testimonial, err = s.repo.SetPublished(ctx, id, false)
	case ActionFeature:
		current, getErr := s.repo.GetByID(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		testimonial, err = s.repo.SetFeatured(ctx, id, !current.IsFeatured)
	default:
		return nil, apperrors.NewValidationError("unknown moderation action: " + string(action))
	}

	if err != nil {
		return nil, err
	}

	s.invalidation.InvalidateAndBroadcast(ctx, entities.NewContentEvent(
		entities.SurfaceTestimonials, id, entities.ContentEventModerated, testimonialPaths, testimonialTags))

	return testimonial, nil
}

// Delete hard-deletes a testimonial.
func (s *TestimonialService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidation.InvalidateAndBroadcast(ctx, entities.NewContentEvent(
		entities.SurfaceTestimonials, id, entities.ContentEventDeleted, testimonialPaths, testimonialTags))

	return nil
}

// ListPublished returns the public review list.
func (s *TestimonialService) ListPublished(ctx context.Context) ([]*entities.Testimonial, error) {
	return s.repo.List(ctx, repositories.TestimonialFilter{PublishedOnly: true})
}

// ListFeatured returns up to limit published featured testimonials. Featured
// is orthogonal to published in storage, but the public read path requires
// both so an unpublished record can never be surfaced by featuring it.
func (s *TestimonialService) ListFeatured(ctx context.Context, limit int) ([]*entities.Testimonial, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return s.repo.List(ctx, repositories.TestimonialFilter{
		PublishedOnly: true,
		FeaturedOnly:  true,
		Limit:         limit,
	})
}

// ListAll returns every testimonial for the moderation dashboard.
func (s *TestimonialService) ListAll(ctx context.Context) ([]*entities.Testimonial, error) {
	return s.repo.List(ctx, repositories.TestimonialFilter{})
}
