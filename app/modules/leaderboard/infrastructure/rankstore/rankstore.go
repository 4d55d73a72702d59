// Package rankstore holds the ranked-store collaborator behind the
// leaderboard projection. The Redis sorted set is derived data; the
// authoritative totals live on the user rows.
package rankstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// ErrNotRanked indicates the user has no entry in the ranked set yet.
var ErrNotRanked = errors.New("user not ranked")

// Member is one ranked-set entry.
type Member struct {
	UserID sharedtypes.UserID
	Score  sharedtypes.Points
}

// RankStore offers atomic score increments and range/rank queries.
type RankStore interface {
	IncrementScore(ctx context.Context, userID sharedtypes.UserID, delta sharedtypes.Points) error
	Top(ctx context.Context, limit int64) ([]Member, error)
	Rank(ctx context.Context, userID sharedtypes.UserID) (int64, sharedtypes.Points, error)
}

type redisRankStore struct {
	client *redis.Client
	key    string
}

// NewRedisRankStore builds a RankStore over a Redis sorted set.
func NewRedisRankStore(client *redis.Client, key string) RankStore {
	if key == "" {
		key = "leaderboard:points"
	}
	return &redisRankStore{client: client, key: key}
}

func (s *redisRankStore) IncrementScore(ctx context.Context, userID sharedtypes.UserID, delta sharedtypes.Points) error {
	if err := s.client.ZIncrBy(ctx, s.key, float64(delta), string(userID)).Err(); err != nil {
		return fmt.Errorf("failed to increment leaderboard score for %s: %w", userID, err)
	}
	return nil
}

func (s *redisRankStore) Top(ctx context.Context, limit int64) ([]Member, error) {
	if limit <= 0 {
		return nil, nil
	}
	entries, err := s.client.ZRevRangeWithScores(ctx, s.key, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard range: %w", err)
	}

	members := make([]Member, 0, len(entries))
	for _, e := range entries {
		id, ok := e.Member.(string)
		if !ok {
			continue
		}
		members = append(members, Member{
			UserID: sharedtypes.UserID(id),
			Score:  sharedtypes.Points(e.Score),
		})
	}
	return members, nil
}

func (s *redisRankStore) Rank(ctx context.Context, userID sharedtypes.UserID) (int64, sharedtypes.Points, error) {
	rank, err := s.client.ZRevRank(ctx, s.key, string(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, 0, ErrNotRanked
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch rank for %s: %w", userID, err)
	}

	score, err := s.client.ZScore(ctx, s.key, string(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, 0, ErrNotRanked
	}
	if err != nil {
		return 0, 0, fmt.Errorf("failed to fetch score for %s: %w", userID, err)
	}

	// Redis ranks are 0-based; leaderboard ranks are 1-based.
	return rank + 1, sharedtypes.Points(score), nil
}
