package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/klinikwerk/shiftwarden/internal/domain"
)

// SessionVerifier resolves a bearer token to the user it belongs to.
// Implemented by the user service.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) (*domain.User, error)
}

type contextKey string

const userContextKey contextKey = "user"

// GetUser returns the authenticated user from the request context, or nil.
func GetUser(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userContextKey).(*domain.User)
	return user
}

// AuthMiddleware authenticates API requests via bearer session tokens.
type AuthMiddleware struct {
	sessions SessionVerifier
	logger   *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(sessions SessionVerifier, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, logger: logger}
}

// WithUser resolves the bearer token, if any, and attaches the user to the
// request context. Requests without a valid token pass through anonymously.
func (m *AuthMiddleware) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.sessions.VerifySession(r.Context(), token)
		if err != nil {
			// Invalid or expired token: continue anonymously, RequireUser
			// decides whether that is acceptable.
			m.logger.Debug("session verification failed", "error", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireUser rejects requests that have no authenticated user.
func (m *AuthMiddleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r.Context()) == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"unauthorized","message":"Authentication required"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
