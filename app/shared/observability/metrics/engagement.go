package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// EngagementMetrics records comment reward activity, including the watermill
// handler path.
type EngagementMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, d time.Duration)
	RecordRewardGranted(ctx context.Context)
	RecordRewardDuplicate(ctx context.Context)
	RecordHandlerAttempt(ctx context.Context, handler string)
	RecordHandlerFailure(ctx context.Context, handler string)
	RecordHandlerDuration(ctx context.Context, handler string, d time.Duration)
}

type engagementMetrics struct {
	ops             operationInstruments
	granted         metric.Int64Counter
	duplicates      metric.Int64Counter
	handlerAttempts metric.Int64Counter
	handlerFailures metric.Int64Counter
	handlerDuration metric.Float64Histogram
}

// NewEngagementMetrics builds EngagementMetrics on the given meter.
func NewEngagementMetrics(meter metric.Meter) (EngagementMetrics, error) {
	ops, err := newOperationInstruments(meter, "engagement")
	if err != nil {
		return nil, err
	}
	m := &engagementMetrics{ops: ops}
	if m.granted, err = meter.Int64Counter("engagement_comment_rewards_granted_total"); err != nil {
		return nil, err
	}
	if m.duplicates, err = meter.Int64Counter("engagement_comment_rewards_duplicate_total"); err != nil {
		return nil, err
	}
	if m.handlerAttempts, err = meter.Int64Counter("engagement_handler_attempts_total"); err != nil {
		return nil, err
	}
	if m.handlerFailures, err = meter.Int64Counter("engagement_handler_failures_total"); err != nil {
		return nil, err
	}
	if m.handlerDuration, err = meter.Float64Histogram("engagement_handler_duration_seconds"); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *engagementMetrics) RecordOperationAttempt(ctx context.Context, operation string) {
	m.ops.recordAttempt(ctx, operation)
}

func (m *engagementMetrics) RecordOperationSuccess(ctx context.Context, operation string) {
	m.ops.recordSuccess(ctx, operation)
}

func (m *engagementMetrics) RecordOperationFailure(ctx context.Context, operation string) {
	m.ops.recordFailure(ctx, operation)
}

func (m *engagementMetrics) RecordOperationDuration(ctx context.Context, operation string, d time.Duration) {
	m.ops.recordDuration(ctx, operation, d)
}

func (m *engagementMetrics) RecordRewardGranted(ctx context.Context) {
	m.granted.Add(ctx, 1)
}

func (m *engagementMetrics) RecordRewardDuplicate(ctx context.Context) {
	m.duplicates.Add(ctx, 1)
}

func (m *engagementMetrics) RecordHandlerAttempt(ctx context.Context, handler string) {
	m.handlerAttempts.Add(ctx, 1, metric.WithAttributes(attribute.String("handler", handler)))
}

func (m *engagementMetrics) RecordHandlerFailure(ctx context.Context, handler string) {
	m.handlerFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("handler", handler)))
}

func (m *engagementMetrics) RecordHandlerDuration(ctx context.Context, handler string, d time.Duration) {
	m.handlerDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("handler", handler)))
}

// NoOpEngagementMetrics is the test double for EngagementMetrics.
type NoOpEngagementMetrics struct{}

func (NoOpEngagementMetrics) RecordOperationAttempt(context.Context, string)                 {}
func (NoOpEngagementMetrics) RecordOperationSuccess(context.Context, string)                 {}
func (NoOpEngagementMetrics) RecordOperationFailure(context.Context, string)                 {}
func (NoOpEngagementMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpEngagementMetrics) RecordRewardGranted(context.Context)                            {}
func (NoOpEngagementMetrics) RecordRewardDuplicate(context.Context)                          {}
func (NoOpEngagementMetrics) RecordHandlerAttempt(context.Context, string)                   {}
func (NoOpEngagementMetrics) RecordHandlerFailure(context.Context, string)                   {}
func (NoOpEngagementMetrics) RecordHandlerDuration(context.Context, string, time.Duration)   {}
