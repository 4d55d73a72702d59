package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// LeaderboardMetrics records coordinator propagation and projection reads.
type LeaderboardMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordCacheInvalidationFailure(ctx context.Context)
	RecordRankUpdateFailure(ctx context.Context)
}

type leaderboardMetrics struct {
	ops                operationInstruments
	cacheInvalidations metric.Int64Counter
	rankUpdates        metric.Int64Counter
}

// NewLeaderboardMetrics builds LeaderboardMetrics on the given meter.
func NewLeaderboardMetrics(meter metric.Meter) (LeaderboardMetrics, error) {
	ops, err := newOperationInstruments(meter, "leaderboard")
	if err != nil {
		return nil, err
	}
	cacheInvalidations, err := meter.Int64Counter("leaderboard_cache_invalidation_failures_total")
	if err != nil {
		return nil, err
	}
	rankUpdates, err := meter.Int64Counter("leaderboard_rank_update_failures_total")
	if err != nil {
		return nil, err
	}
	return &leaderboardMetrics{ops: ops, cacheInvalidations: cacheInvalidations, rankUpdates: rankUpdates}, nil
}

func (m *leaderboardMetrics) RecordOperationAttempt(ctx context.Context, operation string) {
	m.ops.recordAttempt(ctx, operation)
}

func (m *leaderboardMetrics) RecordOperationSuccess(ctx context.Context, operation string) {
	m.ops.recordSuccess(ctx, operation)
}

func (m *leaderboardMetrics) RecordOperationFailure(ctx context.Context, operation string) {
	m.ops.recordFailure(ctx, operation)
}

func (m *leaderboardMetrics) RecordOperationDuration(ctx context.Context, operation string, d time.Duration) {
	m.ops.recordDuration(ctx, operation, d)
}

func (m *leaderboardMetrics) RecordCacheInvalidationFailure(ctx context.Context) {
	m.cacheInvalidations.Add(ctx, 1)
}

func (m *leaderboardMetrics) RecordRankUpdateFailure(ctx context.Context) {
	m.rankUpdates.Add(ctx, 1)
}

// NoOpLeaderboardMetrics is the test double for LeaderboardMetrics.
type NoOpLeaderboardMetrics struct{}

func (NoOpLeaderboardMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpLeaderboardMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpLeaderboardMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpLeaderboardMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpLeaderboardMetrics) RecordCacheInvalidationFailure(context.Context)                 {}
func (NoOpLeaderboardMetrics) RecordRankUpdateFailure(context.Context)                        {}
