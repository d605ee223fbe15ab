package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"QuantAI/internal/domain/models"
	"QuantAI/internal/domain/repository"
	"QuantAI/pkg/cache"
)

const sessionKeyPrefix = "session"

// CacheSessionStore implements SessionStore over a cache backend.
// The TTL is refreshed on every save, so idle sessions expire.
type CacheSessionStore struct {
	cache cache.Service
	ttl   time.Duration
}

// NewCacheSessionStore creates a session store.
func NewCacheSessionStore(c cache.Service, ttl time.Duration) repository.SessionStore {
	return &CacheSessionStore{cache: c, ttl: ttl}
}

func (s *CacheSessionStore) Load(ctx context.Context, sessionID string) (models.SessionState, bool, error) {
	var st models.SessionState
	err := s.cache.Get(ctx, cache.GenerateKey(sessionKeyPrefix, sessionID), &st)
	if errors.Is(err, cache.ErrCacheMiss) {
		return models.SessionState{}, false, nil
	}
	if err != nil {
		return models.SessionState{}, false, fmt.Errorf("session %s: %w", sessionID, err)
	}
	return st, true, nil
}

func (s *CacheSessionStore) Save(ctx context.Context, sessionID string, st models.SessionState) error {
	return s.cache.Set(ctx, cache.GenerateKey(sessionKeyPrefix, sessionID), st, s.ttl)
}

func (s *CacheSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, cache.GenerateKey(sessionKeyPrefix, sessionID))
}
