package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// MockSessionStore implements ports.SessionStore with an in-memory map.
type MockSessionStore struct {
	mu sync.RWMutex

	sessions map[string]domain.Session

	SaveCalls   []domain.Session
	DeleteCalls []string

	// Error injection
	SaveError   error
	FindError   error
	DeleteError error
}

var _ ports.SessionStore = (*MockSessionStore)(nil)

func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{
		sessions: make(map[string]domain.Session),
	}
}

func (m *MockSessionStore) Save(ctx context.Context, session domain.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls = append(m.SaveCalls, session)
	if m.SaveError != nil {
		return m.SaveError
	}

	m.sessions[session.Token] = session
	return nil
}

func (m *MockSessionStore) Find(ctx context.Context, token string) (*domain.Session, error) {
	if m.FindError != nil {
		return nil, m.FindError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[token]
	if !ok {
		return nil, nil
	}
	cp := session
	return &cp, nil
}

func (m *MockSessionStore) Delete(ctx context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DeleteCalls = append(m.DeleteCalls, token)
	if m.DeleteError != nil {
		return m.DeleteError
	}

	delete(m.sessions, token)
	return nil
}

// HasSession reports whether a session exists for the token (assertions).
func (m *MockSessionStore) HasSession(token string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[token]
	return ok
}
