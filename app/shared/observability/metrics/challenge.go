package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ChallengeMetrics records challenge read/create and prefetch activity.
type ChallengeMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordPrefetchedChallenges(ctx context.Context, count int)
	RecordPrefetchEnrichmentFailure(ctx context.Context)
}

type challengeMetrics struct {
	ops                operationInstruments
	prefetched         metric.Int64Counter
	enrichmentFailures metric.Int64Counter
}

// NewChallengeMetrics builds ChallengeMetrics on the given meter.
func NewChallengeMetrics(meter metric.Meter) (ChallengeMetrics, error) {
	ops, err := newOperationInstruments(meter, "challenge")
	if err != nil {
		return nil, err
	}
	prefetched, err := meter.Int64Counter("challenge_prefetched_total")
	if err != nil {
		return nil, err
	}
	enrichmentFailures, err := meter.Int64Counter("challenge_prefetch_enrichment_failures_total")
	if err != nil {
		return nil, err
	}
	return &challengeMetrics{ops: ops, prefetched: prefetched, enrichmentFailures: enrichmentFailures}, nil
}

func (m *challengeMetrics) RecordOperationAttempt(ctx context.Context, operation string) {
	m.ops.recordAttempt(ctx, operation)
}

func (m *challengeMetrics) RecordOperationSuccess(ctx context.Context, operation string) {
	m.ops.recordSuccess(ctx, operation)
}

func (m *challengeMetrics) RecordOperationFailure(ctx context.Context, operation string) {
	m.ops.recordFailure(ctx, operation)
}

func (m *challengeMetrics) RecordOperationDuration(ctx context.Context, operation string, d time.Duration) {
	m.ops.recordDuration(ctx, operation, d)
}

func (m *challengeMetrics) RecordPrefetchedChallenges(ctx context.Context, count int) {
	m.prefetched.Add(ctx, int64(count))
}

func (m *challengeMetrics) RecordPrefetchEnrichmentFailure(ctx context.Context) {
	m.enrichmentFailures.Add(ctx, 1)
}

// NoOpChallengeMetrics is the test double for ChallengeMetrics.
type NoOpChallengeMetrics struct{}

func (NoOpChallengeMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpChallengeMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpChallengeMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpChallengeMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpChallengeMetrics) RecordPrefetchedChallenges(context.Context, int)                {}
func (NoOpChallengeMetrics) RecordPrefetchEnrichmentFailure(context.Context)                {}
