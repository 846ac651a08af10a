package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/mediease/insurance-portal-service/internal/config"
	"github.com/mediease/insurance-portal-service/internal/core/domain"
	"github.com/mediease/insurance-portal-service/internal/core/ports"
)

// RedisClient is the subset of redis.Client the store uses; tests inject
// an in-memory implementation.
type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps one Session record per live login, keyed by a SHA-256
// digest of the bearer token so the raw token never lands in Redis.
type RedisStore struct {
	client RedisClient
	cb     *gobreaker.CircuitBreaker
}

var _ ports.SessionStore = (*RedisStore)(nil)

func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Sessions"),
	}
}

func (s *RedisStore) Save(ctx context.Context, session domain.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	_, err = s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Set(ctx, sessionKey(session.Token), payload, ttl).Err()
	})
	return err
}

func (s *RedisStore) Find(ctx context.Context, token string) (*domain.Session, error) {
	val, err := s.cb.Execute(func() (interface{}, error) {
		return s.client.Get(ctx, sessionKey(token)).Result()
	})
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(val.(string)), &session); err != nil {
		return nil, err
	}
	session.Token = token
	// Parsed once here; downstream code only ever sees the enum.
	session.Role = domain.ParseRole(string(session.Role))
	return &session, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.client.Del(ctx, sessionKey(token)).Err()
	})
	return err
}

func sessionKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "session:" + hex.EncodeToString(sum[:])
}
