package mocks

import (
	"context"
	"sync"

	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// MockClaimEventPublisher implements ports.ClaimEventPublisher so the
// outbox relay can be tested without a real RabbitMQ connection.
type MockClaimEventPublisher struct {
	mu sync.RWMutex

	PublishedEvents  []ports.ClaimDecidedEvent
	PublishCallCount int

	// Error injection
	PublishError error
}

var _ ports.ClaimEventPublisher = (*MockClaimEventPublisher)(nil)

func NewMockClaimEventPublisher() *MockClaimEventPublisher {
	return &MockClaimEventPublisher{
		PublishedEvents: make([]ports.ClaimDecidedEvent, 0),
	}
}

func (m *MockClaimEventPublisher) PublishClaimDecided(ctx context.Context, evt ports.ClaimDecidedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishCallCount++
	if m.PublishError != nil {
		return m.PublishError
	}

	m.PublishedEvents = append(m.PublishedEvents, evt)
	return nil
}

// GetPublishedEvents returns a copy of the captured events.
func (m *MockClaimEventPublisher) GetPublishedEvents() []ports.ClaimDecidedEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]ports.ClaimDecidedEvent, len(m.PublishedEvents))
	copy(events, m.PublishedEvents)
	return events
}

// Reset clears captured events and injected errors.
func (m *MockClaimEventPublisher) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PublishedEvents = make([]ports.ClaimDecidedEvent, 0)
	m.PublishCallCount = 0
	m.PublishError = nil
}
