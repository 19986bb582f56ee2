package client

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/dmitrymomot/pubsub/core/event"
	"github.com/dmitrymomot/pubsub/core/logger"
)

// uniformBackOff waits a uniformly random duration in [0, max) before every retry.
type uniformBackOff struct {
	max time.Duration
	rnd func(n int64) int64
}

func (b *uniformBackOff) NextBackOff() time.Duration {
	if b.max <= 0 {
		return 0
	}
	return time.Duration(b.rnd(int64(b.max)))
}

func (b *uniformBackOff) Reset() {}

// withRetries runs fn until it succeeds, fails with a non-transient error,
// the retry budget is spent or ctx is done. Only conflicts and server errors are retried.
func withRetries[T any](ctx context.Context, c *Client, op string, fn func() (T, error)) (T, error) {
	attempt := 0
	policy := backoff.WithContext(
		backoff.WithMaxRetries(&uniformBackOff{max: c.retryWait, rnd: c.randInt64N}, uint64(c.maxRetries)),
		ctx,
	)

	return backoff.RetryNotifyWithData(func() (T, error) {
		attempt++
		res, err := fn()
		if err != nil && !event.IsTransient(err) {
			return res, backoff.Permanent(err)
		}
		return res, err
	}, policy, func(err error, wait time.Duration) {
		c.logger.WarnContext(ctx, "transient failure, retrying",
			logger.Operation(op),
			logger.Attempt(attempt),
			logger.Wait(wait),
			logger.Error(err))
	})
}
