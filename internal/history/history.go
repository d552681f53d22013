// Package history keeps each visitor's recent search queries in Redis.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "search:recent:"

// Store records recent queries per visitor, most recent first, without
// duplicates and capped at limit entries.
type Store struct {
	client *redis.Client
	limit  int
	ttl    time.Duration
}

// NewStore creates a Redis-backed store.
func NewStore(client *redis.Client, limit int, ttl time.Duration) *Store {
	if limit < 1 {
		limit = 10
	}
	return &Store{client: client, limit: limit, ttl: ttl}
}

func key(visitorID string) string {
	return keyPrefix + visitorID
}

// Record moves query to the head of the visitor's list. Blank queries and
// anonymous visitors are ignored.
func (s *Store) Record(ctx context.Context, visitorID, query string) error {
	query = strings.TrimSpace(query)
	if visitorID == "" || query == "" {
		return nil
	}

	k := key(visitorID)
	pipe := s.client.TxPipeline()
	pipe.LRem(ctx, k, 0, query)
	pipe.LPush(ctx, k, query)
	pipe.LTrim(ctx, k, 0, int64(s.limit-1))
	if s.ttl > 0 {
		pipe.Expire(ctx, k, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis record recent search: %w", err)
	}
	return nil
}

// List returns the visitor's recent queries, most recent first.
func (s *Store) List(ctx context.Context, visitorID string) ([]string, error) {
	queries, err := s.client.LRange(ctx, key(visitorID), 0, int64(s.limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis list recent searches: %w", err)
	}
	return queries, nil
}

// Clear removes the visitor's history.
func (s *Store) Clear(ctx context.Context, visitorID string) error {
	if err := s.client.Del(ctx, key(visitorID)).Err(); err != nil {
		return fmt.Errorf("redis clear recent searches: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
