// Package store persists in-progress configurator sessions in Redis. This is
// the server-side counterpart of the site's client-side storage: raw state
// survives reloads for the session TTL, while derived pricing fields are
// recomputed on every load and never trusted from storage.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"horsebox_backend/internal/configurator/domain"
	"horsebox_backend/platform/apperr"

	"github.com/redis/go-redis/v9"
)

const sessionNotFoundMessage = "configurator session not found"

// Store is a Redis-backed session store.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewClient creates a Redis client from a redis:// URL.
func NewClient(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opt), nil
}

// New creates a session store with the given TTL per session.
func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Store{client: client, ttl: ttl}
}

// Save writes the session state and refreshes its TTL.
func (s *Store) Save(ctx context.Context, sessionID string, cfg *domain.Configuration) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, sessionKey(sessionID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load reads the session state and rehydrates its derived fields.
func (s *Store) Load(ctx context.Context, sessionID string) (*domain.Configuration, error) {
	data, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, apperr.NotFound(sessionNotFoundMessage)
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var cfg domain.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	cfg.Rehydrate()
	return &cfg, nil
}

// Delete removes the session. Deleting an unknown session is not an error.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return "configurator:session:" + sessionID
}
