package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/providers"
)

// TestimonialService defines the testimonial operations used by the handler.
type TestimonialService interface {
	Submit(ctx context.Context, submission *services.TestimonialSubmission) (*entities.Testimonial, error)
	Moderate(ctx context.Context, id string, action services.ModerationAction) (*entities.Testimonial, error)
	Delete(ctx context.Context, id string) error
	ListPublished(ctx context.Context) ([]*entities.Testimonial, error)
	ListFeatured(ctx context.Context, limit int) ([]*entities.Testimonial, error)
	ListAll(ctx context.Context) ([]*entities.Testimonial, error)
}

// TestimonialHandler handles testimonial HTTP requests
type TestimonialHandler struct {
	service TestimonialService
	guard   *submissionGuard
}

// NewTestimonialHandler creates a new testimonial handler.
func NewTestimonialHandler(service TestimonialService, cache providers.CacheProvider) *TestimonialHandler {
	return &TestimonialHandler{
		service: service,
		guard:   newSubmissionGuard(cache),
	}
}

// SubmitTestimonial handles POST /api/testimonials/submit
func (h *TestimonialHandler) SubmitTestimonial(w http.ResponseWriter, r *http.Request) {
	var submission services.TestimonialSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ip := clientIP(r)
	allowed, retryAfter := h.guard.allow(r.Context(), "testimonial:rate:"+ip)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	fingerprint := submissionFingerprint(ip,
		submission.Name, submission.Text, submission.Email,
		strconv.Itoa(submission.Rating))
	if h.guard.isDuplicate(r.Context(), "testimonial:dup:"+fingerprint) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	testimonial, err := h.service.Submit(r.Context(), &submission)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	// Public submitters get the reduced view, not the stored record
	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success":     true,
		"testimonial": testimonial.Summary(),
	})
}

type moderationRequest struct {
	Action string `json:"action"`
}

// ModerateTestimonial handles PUT /api/testimonials/{id}
func (h *TestimonialHandler) ModerateTestimonial(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "testimonial ID is required")
		return
	}

	var payload moderationRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	testimonial, err := h.service.Moderate(r.Context(), id, services.ModerationAction(payload.Action))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"testimonial": testimonial,
	})
}

// DeleteTestimonial handles DELETE /api/testimonials/{id}
func (h *TestimonialHandler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "testimonial ID is required")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// ListPublished handles GET /api/testimonials/published
func (h *TestimonialHandler) ListPublished(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.service.ListPublished(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if testimonials == nil {
		testimonials = []*entities.Testimonial{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"testimonials": testimonials,
		"total":        len(testimonials),
	})
}

// ListFeatured handles GET /api/testimonials/featured
func (h *TestimonialHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	testimonials, err := h.service.ListFeatured(r.Context(), limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if testimonials == nil {
		testimonials = []*entities.Testimonial{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"testimonials": testimonials,
		"count":        len(testimonials),
	})
}

// ListAll handles GET /api/admin/testimonials
func (h *TestimonialHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	testimonials, err := h.service.ListAll(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if testimonials == nil {
		testimonials = []*entities.Testimonial{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"testimonials": testimonials,
		"count":        len(testimonials),
	})
}
