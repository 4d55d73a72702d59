// Package metrics defines the per-module metrics interfaces together with
// OTel-meter-backed and no-op implementations. Services depend on the
// interfaces only, so tests run against the no-ops.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// operationInstruments is the attempt/success/failure/duration instrument set
// every module shares.
type operationInstruments struct {
	attempts  metric.Int64Counter
	successes metric.Int64Counter
	failures  metric.Int64Counter
	duration  metric.Float64Histogram
}

func newOperationInstruments(meter metric.Meter, prefix string) (operationInstruments, error) {
	var oi operationInstruments
	var err error

	if oi.attempts, err = meter.Int64Counter(prefix + "_operation_attempts_total"); err != nil {
		return oi, err
	}
	if oi.successes, err = meter.Int64Counter(prefix + "_operation_successes_total"); err != nil {
		return oi, err
	}
	if oi.failures, err = meter.Int64Counter(prefix + "_operation_failures_total"); err != nil {
		return oi, err
	}
	if oi.duration, err = meter.Float64Histogram(prefix + "_operation_duration_seconds"); err != nil {
		return oi, err
	}
	return oi, nil
}

func (oi operationInstruments) recordAttempt(ctx context.Context, operation string) {
	oi.attempts.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (oi operationInstruments) recordSuccess(ctx context.Context, operation string) {
	oi.successes.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (oi operationInstruments) recordFailure(ctx context.Context, operation string) {
	oi.failures.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
}

func (oi operationInstruments) recordDuration(ctx context.Context, operation string, d time.Duration) {
	oi.duration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("operation", operation)))
}
