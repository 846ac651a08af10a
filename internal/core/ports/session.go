package ports

import (
	"context"
	"time"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
)

// SessionStore holds the per-login Session record. The record is written
// once at login, read on every authenticated request, and deleted as a
// unit at logout.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session, ttl time.Duration) error
	// Find returns (nil, nil) when no session exists for the token.
	Find(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
}
