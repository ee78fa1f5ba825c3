package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdempotencyEntry is a cached response for a previously seen request key.
type IdempotencyEntry struct {
	Key            string    `json:"key"`
	ResponseStatus int       `json:"response_status"`
	ResponseBody   string    `json:"response_body"`
	CreatedAt      time.Time `json:"created_at"`
}

// IdempotencyStore keeps replayable responses in Redis with a TTL.
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{client: client, ttl: ttl}
}

func idempotencyKey(key string) string {
	return "idempotency:" + key
}

// Get returns the stored entry for key, or (nil, nil) when absent.
func (s *IdempotencyStore) Get(ctx context.Context, key string) (*IdempotencyEntry, error) {
	raw, err := s.client.Get(ctx, idempotencyKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get idempotency entry: %w", err)
	}

	var entry IdempotencyEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, fmt.Errorf("unmarshal idempotency entry: %w", err)
	}
	return &entry, nil
}

// Set stores an entry under its key with the configured TTL.
func (s *IdempotencyStore) Set(ctx context.Context, entry *IdempotencyEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal idempotency entry: %w", err)
	}
	if err := s.client.Set(ctx, idempotencyKey(entry.Key), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set idempotency entry: %w", err)
	}
	return nil
}
