package consumer

import (
	"log/slog"
	"time"
)

// Option configures a Consumer.
type Option func(*Consumer)

// WithErrorHandler sets the callback receiving every failed cycle.
// Default is a no-op.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(c *Consumer) {
		if fn != nil {
			c.errorHandler = fn
		}
	}
}

// WithLogger sets the logger for the consumer.
func WithLogger(l *slog.Logger) Option {
	return func(c *Consumer) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSkipOverlap skips a tick while the previous cycle is still running.
// By default cycles may overlap when handling takes longer than the poll interval.
func WithSkipOverlap(skip bool) Option {
	return func(c *Consumer) {
		c.skipOverlap = skip
	}
}

// WithCycleTimeout bounds the context of every cycle.
func WithCycleTimeout(d time.Duration) Option {
	return func(c *Consumer) {
		if d > 0 {
			c.cycleTimeout = d
		}
	}
}

// WithShutdownTimeout sets how long Run waits for in-flight cycles after its context is done.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *Consumer) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// WithFailureThreshold makes Healthcheck fail after n consecutive failed cycles.
// Zero disables the check.
func WithFailureThreshold(n int) Option {
	return func(c *Consumer) {
		if n >= 0 {
			c.failureThreshold = int64(n)
		}
	}
}
