package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vodomont/backend/internal/api/handlers"
	"github.com/vodomont/backend/internal/application/services"
	"github.com/vodomont/backend/internal/domain/entities"
	apperrors "github.com/vodomont/backend/pkg/errors"
)

type stubContactService struct {
	store        map[string]*entities.ContactInquiry
	searchErr    error
	searchCalled bool
}

func newStubContactService() *stubContactService {
	return &stubContactService{store: map[string]*entities.ContactInquiry{}}
}

func (s *stubContactService) Submit(ctx context.Context, submission *services.InquirySubmission) (*entities.ContactInquiry, error) {
	if strings.TrimSpace(submission.Message) == "" {
		return nil, apperrors.NewValidationError("message is required")
	}
	inquiry := &entities.ContactInquiry{
		ID:      "inq-" + strconv.Itoa(len(s.store)+1),
		Name:    submission.Name,
		Email:   submission.Email,
		Message: submission.Message,
		Status:  entities.InquiryStatusPending,
	}
	s.store[inquiry.ID] = inquiry
	return inquiry, nil
}

func (s *stubContactService) List(ctx context.Context) ([]*entities.ContactInquiry, error) {
	var inquiries []*entities.ContactInquiry
	for _, inq := range s.store {
		inquiries = append(inquiries, inq)
	}
	return inquiries, nil
}

func (s *stubContactService) UpdateStatus(ctx context.Context, id string, status entities.InquiryStatus) (*entities.ContactInquiry, error) {
	if !entities.ValidInquiryStatus(status) {
		return nil, apperrors.NewValidationError("unknown inquiry status")
	}
	inquiry, ok := s.store[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("inquiry not found")
	}
	inquiry.Status = status
	return inquiry, nil
}

func (s *stubContactService) Delete(ctx context.Context, id string) error {
	if _, ok := s.store[id]; !ok {
		return apperrors.NewNotFoundError("inquiry not found")
	}
	delete(s.store, id)
	return nil
}

func (s *stubContactService) Search(ctx context.Context, query string, limit int) ([]*entities.ContactInquiry, error) {
	s.searchCalled = true
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	var matches []*entities.ContactInquiry
	for _, inq := range s.store {
		if strings.Contains(strings.ToLower(inq.Name), strings.ToLower(query)) {
			matches = append(matches, inq)
		}
	}
	return matches, nil
}

func TestContactHandler_Submit_Success(t *testing.T) {
	service := newStubContactService()
	handler := handlers.NewContactHandler(service, nil)

	body := `{"name":"Petar","email":"petar@example.com","message":"Pukla cev u kuhinji, treba mi hitna pomoc."}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.RemoteAddr = "10.1.0.1:1234"
	w := httptest.NewRecorder()

	handler.SubmitInquiry(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, service.store, 1)

	var response struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	err := json.NewDecoder(w.Body).Decode(&response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.NotEmpty(t, response.ID)
}

func TestContactHandler_Submit_Duplicate(t *testing.T) {
	service := newStubContactService()
	handler := handlers.NewContactHandler(service, nil)

	body := `{"name":"Petar","email":"petar@example.com","message":"Isti problem, ista poruka."}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.RemoteAddr = "10.1.0.2:1234"
	w := httptest.NewRecorder()
	handler.SubmitInquiry(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req2 := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req2.RemoteAddr = "10.1.0.2:1234"
	w2 := httptest.NewRecorder()
	handler.SubmitInquiry(w2, req2)

	assert.Equal(t, http.StatusAccepted, w2.Code)
	assert.Len(t, service.store, 1)
}

func TestContactHandler_Submit_RateLimit(t *testing.T) {
	service := newStubContactService()
	handler := handlers.NewContactHandler(service, nil)

	for i := 0; i < 5; i++ {
		body := `{"name":"Petar","email":"petar@example.com","message":"Poruka broj ` + strconv.Itoa(i) + `."}`
		req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
		req.RemoteAddr = "10.1.0.3:1234"
		w := httptest.NewRecorder()
		handler.SubmitInquiry(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	}

	body := `{"name":"Petar","email":"petar@example.com","message":"Sesta poruka u istom satu."}`
	req := httptest.NewRequest("POST", "/api/contact", strings.NewReader(body))
	req.RemoteAddr = "10.1.0.3:1234"
	w := httptest.NewRecorder()
	handler.SubmitInquiry(w, req)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestContactHandler_UpdateInquiry_BadStatus(t *testing.T) {
	service := newStubContactService()
	service.store["inq-1"] = &entities.ContactInquiry{ID: "inq-1", Status: entities.InquiryStatusPending}
	handler := handlers.NewContactHandler(service, nil)

	req := httptest.NewRequest("PUT", "/api/contact/inquiries/inq-1", strings.NewReader(`{"status":"archived"}`))
	req.SetPathValue("id", "inq-1")
	w := httptest.NewRecorder()

	handler.UpdateInquiry(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, entities.InquiryStatusPending, service.store["inq-1"].Status)
}

func TestContactHandler_UpdateInquiry_Resolved(t *testing.T) {
	service := newStubContactService()
	service.store["inq-1"] = &entities.ContactInquiry{ID: "inq-1", Status: entities.InquiryStatusPending}
	handler := handlers.NewContactHandler(service, nil)

	req := httptest.NewRequest("PUT", "/api/contact/inquiries/inq-1", strings.NewReader(`{"status":"resolved"}`))
	req.SetPathValue("id", "inq-1")
	w := httptest.NewRecorder()

	handler.UpdateInquiry(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, entities.InquiryStatusResolved, service.store["inq-1"].Status)
}

func TestContactHandler_Search_NotConfigured(t *testing.T) {
	service := newStubContactService()
	service.searchErr = apperrors.NewExternalError("inquiry search is not configured", nil)
	handler := handlers.NewContactHandler(service, nil)

	req := httptest.NewRequest("GET", "/api/admin/inquiries/search?q=petar", nil)
	w := httptest.NewRecorder()

	handler.SearchInquiries(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestContactHandler_Search_LimitBounds(t *testing.T) {
	service := newStubContactService()
	handler := handlers.NewContactHandler(service, nil)

	req := httptest.NewRequest("GET", "/api/admin/inquiries/search?q=petar&limit=500", nil)
	w := httptest.NewRecorder()

	handler.SearchInquiries(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, service.searchCalled)
}
