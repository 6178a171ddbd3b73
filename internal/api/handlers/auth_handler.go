package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vodomont/backend/internal/api/middleware"
	"github.com/vodomont/backend/internal/domain/entities"
)

// AuthService defines the admin authentication operations used by the handler.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*entities.AdminSession, error)
	Logout(ctx context.Context, token string) error
}

// AuthHandler handles admin login and logout
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	session, err := h.service.Login(r.Context(), payload.Username, payload.Password)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"token":      session.Token,
		"expires_at": session.ExpiresAt,
	})
}

// Logout handles POST /api/admin/logout. The route runs behind the auth
// middleware, so the session in context is the one to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no active session")
		return
	}

	if err := h.service.Logout(r.Context(), session.Token); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
