package middleware

import (
	"context"
	"crypto/rsa"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// AuthMiddleware verifies the bearer token signature and resolves the
// live Session record. A valid token whose session was deleted (logout)
// is rejected: the session store is the source of truth for liveness,
// the token only proves the signature.
type AuthMiddleware struct {
	publicKey *rsa.PublicKey
	sessions  ports.SessionStore
}

func NewAuthMiddleware(publicKey *rsa.PublicKey, sessions ports.SessionStore) *AuthMiddleware {
	return &AuthMiddleware{
		publicKey: publicKey,
		sessions:  sessions,
	}
}

type contextKey string

const sessionContextKey contextKey = "session"

// SessionFromContext returns the Session attached by RequireRole, or nil
// on unauthenticated paths.
func SessionFromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return s
}

// ContextWithSession attaches a session to the context the way
// RequireRole does; handler tests use it to simulate authenticated
// requests.
func ContextWithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, s)
}

func (m *AuthMiddleware) RequireRole(roles []domain.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			http.Error(w, "missing or invalid authorization header", http.StatusUnauthorized)
			return
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return m.publicKey, nil
		})
		if err != nil || !parsed.Valid {
			log.Debug().Err(err).Msg("token rejected")
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		session, err := m.sessions.Find(r.Context(), token)
		if err != nil {
			log.Error().Err(err).Msg("session lookup failed")
			http.Error(w, "session unavailable", http.StatusServiceUnavailable)
			return
		}
		if session == nil {
			http.Error(w, "session expired", http.StatusUnauthorized)
			return
		}

		allowed := false
		for _, role := range roles {
			if session.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		next(w, r.WithContext(ContextWithSession(r.Context(), session)))
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
