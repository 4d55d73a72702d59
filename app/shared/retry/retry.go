// Package retry applies bounded exponential backoff with jitter to transient
// persistence failures. Logical rejections must be marked Permanent so they
// surface immediately.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy bounds the backoff schedule.
type Policy struct {
	InitialInterval     time.Duration
	MaxInterval         time.Duration
	Multiplier          float64
	RandomizationFactor float64
	MaxRetries          uint64
}

// DefaultPolicy starts at 1s, doubles up to a 10s cap with 30% jitter, and
// allows 3 retries after the initial attempt.
func DefaultPolicy() Policy {
	return Policy{
		InitialInterval:     time.Second,
		MaxInterval:         10 * time.Second,
		Multiplier:          2,
		RandomizationFactor: 0.3,
		MaxRetries:          3,
	}
}

// NoDelayPolicy retries without waiting. Intended for tests.
func NoDelayPolicy() Policy {
	return Policy{
		InitialInterval:     time.Nanosecond,
		MaxInterval:         time.Nanosecond,
		Multiplier:          1,
		RandomizationFactor: 0,
		MaxRetries:          3,
	}
}

// Do runs op under the policy until it succeeds, returns a permanent error,
// exhausts its retries, or the context is canceled.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.InitialInterval
	b.MaxInterval = p.MaxInterval
	b.Multiplier = p.Multiplier
	b.RandomizationFactor = p.RandomizationFactor
	b.MaxElapsedTime = 0

	return backoff.Retry(func() error {
		return op(ctx)
	}, backoff.WithMaxRetries(backoff.WithContext(b, ctx), p.MaxRetries))
}

// Permanent marks err as non-retryable.
func Permanent(err error) error {
	return backoff.Permanent(err)
}
