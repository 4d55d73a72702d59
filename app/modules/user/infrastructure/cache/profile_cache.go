// Package usercache holds the Redis-backed profile cache. Entries are pure
// performance artifacts: a miss or a lost entry costs a database read, never
// correctness.
package usercache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// DefaultTTL bounds staleness even when an invalidation is lost.
const DefaultTTL = 5 * time.Minute

// ProfileCache is a short-TTL user profile cache with explicit invalidation.
type ProfileCache interface {
	Get(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, bool, error)
	Set(ctx context.Context, userID sharedtypes.UserID, profile *sharedtypes.Profile) error
	Invalidate(ctx context.Context, userID sharedtypes.UserID) error
}

type redisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisProfileCache builds a ProfileCache on the given client. A
// non-positive TTL selects DefaultTTL.
func NewRedisProfileCache(client *redis.Client, ttl time.Duration) ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &redisProfileCache{client: client, ttl: ttl}
}

func profileKey(userID sharedtypes.UserID) string {
	return fmt.Sprintf("profile:%s", userID)
}

func (c *redisProfileCache) Get(ctx context.Context, userID sharedtypes.UserID) (*sharedtypes.Profile, bool, error) {
	data, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get cached profile for %s: %w", userID, err)
	}

	profile := &sharedtypes.Profile{}
	if err := json.Unmarshal(data, profile); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return profile, true, nil
}

func (c *redisProfileCache) Set(ctx context.Context, userID sharedtypes.UserID, profile *sharedtypes.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile for %s: %w", userID, err)
	}
	if err := c.client.Set(ctx, profileKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache profile for %s: %w", userID, err)
	}
	return nil
}

func (c *redisProfileCache) Invalidate(ctx context.Context, userID sharedtypes.UserID) error {
	if err := c.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached profile for %s: %w", userID, err)
	}
	return nil
}
