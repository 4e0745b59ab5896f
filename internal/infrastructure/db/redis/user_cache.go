package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/user-service/internal/core/domain"
	"github.com/99minutos/user-service/internal/core/ports"
)

const defaultCacheTTL = 5 * time.Minute

// UserCache stores serialised users by id with a TTL.
// Key format: user:<id>
type UserCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewUserCache creates a UserCache on top of the given Redis client. A
// non-positive ttl falls back to defaultCacheTTL.
func NewUserCache(client redis.Cmdable, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &UserCache{client: client, ttl: ttl}
}

var _ ports.UserCache = (*UserCache)(nil)

// Get returns the cached user; found is false on a miss.
func (c *UserCache) Get(ctx context.Context, id string) (*domain.User, bool, error) {
	b, err := c.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, false, fmt.Errorf("cache decode: %w", err)
	}
	return &u, true, nil
}

// Set stores u under its id (expires after ttl).
func (c *UserCache) Set(ctx context.Context, u *domain.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	return c.client.Set(ctx, key(u.ID), b, c.ttl).Err()
}

// Invalidate drops the cached entry for id.
func (c *UserCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, key(id)).Err()
}

func key(id string) string {
	return "user:" + id
}
