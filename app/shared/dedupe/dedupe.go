// Package dedupe collapses concurrent duplicate fetches into a single
// in-flight call per key. The guarantee is per-process only; it is a
// performance shield, never a source of truth.
package dedupe

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds how long a single in-flight fetch may live.
const DefaultTimeout = 30 * time.Second

// Deduplicator shares the result of one fetcher invocation among all callers
// that ask for the same key while it is in flight. The key is evicted as soon
// as the fetch completes, success or failure, so the next call starts fresh.
type Deduplicator struct {
	group   singleflight.Group
	timeout time.Duration
}

// New returns a Deduplicator. A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration) *Deduplicator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Deduplicator{timeout: timeout}
}

// Do returns the shared result of fetch for key. The fetch runs detached from
// the first caller's cancellation (its result is shared, so one caller
// leaving must not fail the others) but is bounded by the deduplicator
// timeout, so no entry can outlive the in-flight window.
func (d *Deduplicator) Do(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, bool, error) {
	v, err, shared := d.group.Do(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.timeout)
		defer cancel()
		return fetch(fetchCtx)
	})
	return v, shared, err
}

// Forget drops any in-flight entry for key, forcing the next Do to fetch.
func (d *Deduplicator) Forget(key string) {
	d.group.Forget(key)
}
