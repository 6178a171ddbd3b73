package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/providers"
)

const (
	submissionRateLimit   = 5
	submissionRateWindow  = time.Hour
	submissionDedupWindow = 24 * time.Hour

	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// ContactService defines the inquiry operations used by the handler.
type ContactService interface {
	Submit(ctx context.Context, submission *services.InquirySubmission) (*entities.ContactInquiry, error)
	List(ctx context.Context) ([]*entities.ContactInquiry, error)
	UpdateStatus(ctx context.Context, id string, status entities.InquiryStatus) (*entities.ContactInquiry, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]*entities.ContactInquiry, error)
}

// ContactHandler handles contact inquiry HTTP requests
type ContactHandler struct {
	service ContactService
	guard   *submissionGuard
}

// NewContactHandler creates a new contact handler. The cache backs the
// submission rate limiter and deduper; it may be nil, in which case both
// fall back to in-process state.
func NewContactHandler(service ContactService, cache providers.CacheProvider) *ContactHandler {
	return &ContactHandler{
		service: service,
		guard:   newSubmissionGuard(cache),
	}
}

// SubmitInquiry handles POST /api/contact
func (h *ContactHandler) SubmitInquiry(w http.ResponseWriter, r *http.Request) {
	var submission services.InquirySubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	ip := clientIP(r)
	allowed, retryAfter := h.guard.allow(r.Context(), "contact:rate:"+ip)
	if !allowed {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	fingerprint := submissionFingerprint(ip,
		submission.Name, submission.Email, submission.Phone,
		submission.Service, submission.Message)
	if h.guard.isDuplicate(r.Context(), "contact:dup:"+fingerprint) {
		respondWithJSON(w, http.StatusAccepted, map[string]string{
			"status": "duplicate_ignored",
		})
		return
	}

	inquiry, err := h.service.Submit(r.Context(), &submission)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"id":      inquiry.ID,
	})
}

// ListInquiries handles GET /api/contact/inquiries
func (h *ContactHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.service.List(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if inquiries == nil {
		inquiries = []*entities.ContactInquiry{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"inquiries": inquiries,
		"count":     len(inquiries),
	})
}

type inquiryStatusRequest struct {
	Status string `json:"status"`
}

// UpdateInquiry handles PUT /api/contact/inquiries/{id}
func (h *ContactHandler) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "inquiry ID is required")
		return
	}

	var payload inquiryStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	inquiry, err := h.service.UpdateStatus(r.Context(), id, entities.InquiryStatus(payload.Status))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"inquiry": inquiry,
	})
}

// DeleteInquiry handles DELETE /api/contact/inquiries/{id}
func (h *ContactHandler) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "inquiry ID is required")
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

// SearchInquiries handles GET /api/admin/inquiries/search
func (h *ContactHandler) SearchInquiries(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxSearchLimit {
			respondWithError(w, http.StatusBadRequest, "limit must be between 1 and "+strconv.Itoa(maxSearchLimit))
			return
		}
		limit = parsed
	}

	inquiries, err := h.service.Search(r.Context(), query, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}
	if inquiries == nil {
		inquiries = []*entities.ContactInquiry{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"inquiries": inquiries,
		"count":     len(inquiries),
		"query":     query,
	})
}

// submissionGuard throttles and deduplicates anonymous form submissions.
// With a cache it survives restarts and is shared across instances;
// without one it degrades to per-process state.
type submissionGuard struct {
	cache   providers.CacheProvider
	local   *localRateLimiter
	deduper *localDeduper
}

func newSubmissionGuard(cache providers.CacheProvider) *submissionGuard {
	return &submissionGuard{
		cache:   cache,
		local:   newLocalRateLimiter(),
		deduper: newLocalDeduper(),
	}
}

func (g *submissionGuard) allow(ctx context.Context, key string) (bool, time.Duration) {
	if g.cache == nil {
		return g.local.allow(key, submissionRateLimit, submissionRateWindow)
	}

	state := rateLimitState{}
	if data, err := g.cache.Get(ctx, key); err == nil {
		_ = json.Unmarshal(data, &state)
	}

	if state.Count >= submissionRateLimit {
		return false, submissionRateWindow
	}

	state.Count++
	data, _ := json.Marshal(state)
	_ = g.cache.Set(ctx, key, data, int(submissionRateWindow.Seconds()))
	return true, submissionRateWindow
}

type rateLimitState struct {
	Count int `json:"count"`
}

func (g *submissionGuard) isDuplicate(ctx context.Context, key string) bool {
	if g.cache == nil {
		return g.deduper.seen(key, submissionDedupWindow)
	}

	exists, err := g.cache.Exists(ctx, key)
	if err == nil && exists {
		return true
	}

	_ = g.cache.Set(ctx, key, []byte("1"), int(submissionDedupWindow.Seconds()))
	return false
}

type localRateLimiter struct {
	mu     sync.Mutex
	states map[string]*localRateState
}

type localRateState struct {
	count   int
	resetAt time.Time
}

func newLocalRateLimiter() *localRateLimiter {
	return &localRateLimiter{
		states: make(map[string]*localRateState),
	}
}

func (l *localRateLimiter) allow(key string, limit int, window time.Duration) (bool, time.Duration) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	state, ok := l.states[key]
	if !ok || now.After(state.resetAt) {
		state = &localRateState{count: 0, resetAt: now.Add(window)}
		l.states[key] = state
	}

	if state.count >= limit {
		retryAfter := time.Until(state.resetAt)
		if retryAfter < 0 {
			retryAfter = window
		}
		return false, retryAfter
	}

	state.count++
	return true, window
}

type localDeduper struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func newLocalDeduper() *localDeduper {
	return &localDeduper{
		entries: make(map[string]time.Time),
	}
}

func (d *localDeduper) seen(key string, window time.Duration) bool {
	now := time.Now()

	d.mu.Lock()
	defer d.mu.Unlock()

	if expiresAt, ok := d.entries[key]; ok && now.Before(expiresAt) {
		return true
	}

	d.entries[key] = now.Add(window)
	return false
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

func submissionFingerprint(ip string, fields ...string) string {
	normalized := make([]string, 0, len(fields)+1)
	for _, field := range fields {
		normalized = append(normalized, normalizeField(field))
	}
	normalized = append(normalized, ip)

	hash := sha256.Sum256([]byte(strings.Join(normalized, "|")))
	return hex.EncodeToString(hash[:])
}

func normalizeField(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}
	return strings.Join(strings.Fields(trimmed), " ")
}
