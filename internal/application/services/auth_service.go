package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/vodomont/backend/internal/domain/entities"
	"github.com/vodomont/backend/internal/domain/providers"
	"github.com/vodomont/backend/internal/domain/repositories"
	apperrors "github.com/vodomont/backend/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// SessionTTL is how long an admin session stays valid.
const SessionTTL = 24 * time.Hour

const sessionKeyPrefix = "admin:session:"

// AuthService issues and validates admin sessions. Sessions are server-side
// state in Redis keyed by an opaque token; nothing the client sends besides
// the token itself is trusted.
type AuthService struct {
	users repositories.AdminUserRepository
	cache providers.CacheProvider
}

// NewAuthService creates a new auth service.
func NewAuthService(users repositories.AdminUserRepository, cache providers.CacheProvider) *AuthService {
	return &AuthService{
		users: users,
		cache: cache,
	}
}

// Login verifies the credentials and issues a session token. Unknown
// usernames and wrong passwords return the same error.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entities.AdminSession, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperrors.NewValidationError("username and password are required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	session := &entities.AdminSession{
		Token:     uuid.New().String(),
		Username:  user.Username,
		ExpiresAt: time.Now().UTC().Add(SessionTTL),
	}

	data, err := json.Marshal(session)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to encode session", err)
	}

	if err := s.cache.Set(ctx, sessionKeyPrefix+session.Token, data, int(SessionTTL.Seconds())); err != nil {
		return nil, apperrors.NewInternalError("failed to store session", err)
	}

	log.Info().Str("username", username).Msg("Admin login")
	return session, nil
}

// Validate resolves a token to its session. Expired tokens disappear from
// Redis on their own, so a missing key means the session is gone.
func (s *AuthService) Validate(ctx context.Context, token string) (*entities.AdminSession, error) {
	if token == "" {
		return nil, apperrors.NewUnauthorizedError("missing session token")
	}

	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil {
		return nil, apperrors.NewUnauthorizedError("invalid or expired session")
	}

	var session entities.AdminSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session", err)
	}

	return &session, nil
}

// Logout revokes a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.cache.Delete(ctx, sessionKeyPrefix+token); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// CreateAdmin hashes the password and stores a new admin account. Used by
// provisioning, not exposed over HTTP.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*entities.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperrors.NewValidationError("username is required")
	}
	if len(password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &entities.AdminUser{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
