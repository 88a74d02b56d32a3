package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kweisser/sentimeter/internal/sentiment"
)

const resultKeyPrefix = "sentimeter:result:"

// ResultStore persists analysis results in Redis so multiple instances (or
// restarts) share one cache. Implements sentiment.RemoteCache.
type ResultStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultStore creates a Redis-backed result store with the given TTL.
func NewResultStore(client *redis.Client, ttl time.Duration) *ResultStore {
	return &ResultStore{client: client, ttl: ttl}
}

// Get fetches a cached result. Returns (nil, nil) on a clean miss.
func (s *ResultStore) Get(ctx context.Context, key string) (*sentiment.Result, error) {
	raw, err := s.client.Get(ctx, resultKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result sentiment.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("unmarshal cached result: %w", err)
	}
	return &result, nil
}

// Set stores a result with the configured TTL.
func (s *ResultStore) Set(ctx context.Context, key string, result sentiment.Result) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	if err := s.client.Set(ctx, resultKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
