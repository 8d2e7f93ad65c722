package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	idempotencyPrefix = "finbook:idempotency:"

	// pendingMarker is stored while the first request with a key is still
	// in flight. It never leaves this package: CheckAndSet reports an
	// in-flight key as (exists, nil payload).
	pendingMarker = "__pending__"
)

// IdempotencyStore implements usecase.IdempotencyStore on Redis. A key moves
// through two states: pending while the first request runs, then the final
// response bytes once Update is called.
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// CheckAndSet claims the key for the calling request. Returns
// (true, response, nil) when a finished response is already stored,
// (true, nil, nil) when another request holds the key in flight, and
// (false, nil, nil) when this caller claimed it.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := idempotencyPrefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	if err == nil {
		return true, finishedResponse(existing), nil
	}
	if err != redis.Nil {
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	claimed, err := s.client.SetNX(ctx, fullKey, pendingMarker, ttl).Result()
	if err != nil {
		return false, nil, err
	}

	if !claimed {
		// Lost the claim between the Get and the SetNX.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && err != redis.Nil {
			return false, nil, err
		}
		return true, finishedResponse(existing), nil
	}

	return false, nil, nil
}

// Update replaces the pending marker with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, idempotencyPrefix+key, response, ttl).Err()
}

func finishedResponse(value []byte) []byte {
	if string(value) == pendingMarker {
		return nil
	}
	return value
}
