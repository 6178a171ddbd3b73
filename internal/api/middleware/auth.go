package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/vodomont/backend/internal/domain/entities"
)

type contextKey string

// SessionContextKey carries the validated admin session through the request.
const SessionContextKey contextKey = "admin_session"

// SessionValidator resolves a bearer token to an admin session.
type SessionValidator interface {
	Validate(ctx context.Context, token string) (*entities.AdminSession, error)
}

// AuthMiddleware guards admin routes. Every request revalidates its bearer
// token against the session store; there is no client-asserted admin state.
func AuthMiddleware(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			session, err := validator.Validate(r.Context(), token)
			if err != nil {
				unauthorized(w, "invalid or expired session")
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the admin session attached by AuthMiddleware.
func SessionFromContext(ctx context.Context) (*entities.AdminSession, bool) {
	session, ok := ctx.Value(SessionContextKey).(*entities.AdminSession)
	return session, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
