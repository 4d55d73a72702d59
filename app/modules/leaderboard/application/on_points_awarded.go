package leaderboardservice

import (
	"context"
	"fmt"
	"sync"

	"github.com/piclink-games/piclink-backend/app/shared/attr"
	sharedtypes "github.com/piclink-games/piclink-backend/app/shared/types"
)

// OnPointsAwarded propagates a durable point change into the derived views:
// it deletes the user's cached profile and increments the ranked set by the
// delta. The two operations run concurrently, each in its own error
// boundary; a failure in one never blocks or rolls back the other, and
// neither is ever surfaced to the caller. A stale cache self-heals on TTL
// expiry, a stale rank on the next successful increment.
func (s *LeaderboardService) OnPointsAwarded(ctx context.Context, userID sharedtypes.UserID, delta sharedtypes.Points) PropagationStatus {
	ctx, span := s.tracer.Start(ctx, "OnPointsAwarded")
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, "OnPointsAwarded")

	var status PropagationStatus
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := s.guard(func() error { return s.cache.Invalidate(ctx, userID) }); err != nil {
			s.metrics.RecordCacheInvalidationFailure(ctx)
			s.logger.WarnContext(ctx, "Profile cache invalidation failed",
				attr.UserID("user_id", userID),
				attr.Error(err),
			)
			return
		}
		status.CacheInvalidated = true
	}()
	go func() {
		defer wg.Done()
		if err := s.guard(func() error { return s.rank.IncrementScore(ctx, userID, delta) }); err != nil {
			s.metrics.RecordRankUpdateFailure(ctx)
			s.logger.WarnContext(ctx, "Leaderboard increment failed",
				attr.UserID("user_id", userID),
				attr.Points("delta", delta),
				attr.Error(err),
			)
			return
		}
		status.LeaderboardUpdated = true
	}()
	wg.Wait()

	if status.CacheInvalidated && status.LeaderboardUpdated {
		s.metrics.RecordOperationSuccess(ctx, "OnPointsAwarded")
	} else {
		s.metrics.RecordOperationFailure(ctx, "OnPointsAwarded")
	}

	s.logger.InfoContext(ctx, "Point change propagated",
		attr.UserID("user_id", userID),
		attr.Points("delta", delta),
		attr.Bool("cache_invalidated", status.CacheInvalidated),
		attr.Bool("leaderboard_updated", status.LeaderboardUpdated),
	)

	return status
}

// guard converts a panic in a propagation branch into an error; a bug in one
// derived view must not take down the request that already earned points.
func (s *LeaderboardService) guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in propagation: %v", r)
		}
	}()
	return fn()
}
