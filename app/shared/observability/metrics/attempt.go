package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AttemptMetrics records attempt tracker activity.
type AttemptMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordGuessOutcome(ctx context.Context, correct bool)
	RecordDBQueryDuration(ctx context.Context, d time.Duration)
}

type attemptMetrics struct {
	ops        operationInstruments
	guesses    metric.Int64Counter
	dbDuration metric.Float64Histogram
}

// NewAttemptMetrics builds AttemptMetrics on the given meter.
func NewAttemptMetrics(meter metric.Meter) (AttemptMetrics, error) {
	ops, err := newOperationInstruments(meter, "attempt")
	if err != nil {
		return nil, err
	}
	guesses, err := meter.Int64Counter("attempt_guesses_total")
	if err != nil {
		return nil, err
	}
	dbDuration, err := meter.Float64Histogram("attempt_db_query_duration_seconds")
	if err != nil {
		return nil, err
	}
	return &attemptMetrics{ops: ops, guesses: guesses, dbDuration: dbDuration}, nil
}

func (m *attemptMetrics) RecordOperationAttempt(ctx context.Context, operation string) {
	m.ops.recordAttempt(ctx, operation)
}

func (m *attemptMetrics) RecordOperationSuccess(ctx context.Context, operation string) {
	m.ops.recordSuccess(ctx, operation)
}

func (m *attemptMetrics) RecordOperationFailure(ctx context.Context, operation string) {
	m.ops.recordFailure(ctx, operation)
}

func (m *attemptMetrics) RecordOperationDuration(ctx context.Context, operation string, d time.Duration) {
	m.ops.recordDuration(ctx, operation, d)
}

func (m *attemptMetrics) RecordGuessOutcome(ctx context.Context, correct bool) {
	m.guesses.Add(ctx, 1, metric.WithAttributes(attribute.Bool("correct", correct)))
}

func (m *attemptMetrics) RecordDBQueryDuration(ctx context.Context, d time.Duration) {
	m.dbDuration.Record(ctx, d.Seconds())
}

// NoOpAttemptMetrics is the test double for AttemptMetrics.
type NoOpAttemptMetrics struct{}

func (NoOpAttemptMetrics) RecordOperationAttempt(context.Context, string)                {}
func (NoOpAttemptMetrics) RecordOperationSuccess(context.Context, string)                {}
func (NoOpAttemptMetrics) RecordOperationFailure(context.Context, string)                {}
func (NoOpAttemptMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpAttemptMetrics) RecordGuessOutcome(context.Context, bool)                      {}
func (NoOpAttemptMetrics) RecordDBQueryDuration(context.Context, time.Duration)          {}
