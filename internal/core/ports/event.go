package ports

import (
	"context"
	"time"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
)

// ClaimDecidedEvent is recorded in the outbox alongside the status flip
// and relayed to the message broker for downstream consumers (payout,
// notification services).
type ClaimDecidedEvent struct {
	RequestID int64           `json:"request_id"`
	EmpID     int64           `json:"emp_id"`
	Decision  domain.Decision `json:"decision"`
	DecidedAt time.Time       `json:"decided_at"`
}

type ClaimEventPublisher interface {
	PublishClaimDecided(ctx context.Context, evt ClaimDecidedEvent) error
}
