package cooldown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for reapply cooldowns
const cooldownKeyPrefix = "gatehouse:reapply:"

// RedisStore shares cooldowns across instances. The key TTL is the cooldown
// itself, so expiry needs no sweeper.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) MarkDenied(ctx context.Context, providerID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	key := cooldownKeyPrefix + providerID
	if err := s.client.Set(ctx, key, until.UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("mark cooldown: %w", err)
	}
	return nil
}

func (s *RedisStore) DeniedUntil(ctx context.Context, providerID string) (time.Time, bool, error) {
	key := cooldownKeyPrefix + providerID
	raw, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("read cooldown: %w", err)
	}

	until, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse cooldown value: %w", err)
	}
	return until, true, nil
}
