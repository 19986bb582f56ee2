package consumer

import "errors"

var (
	// ErrInvalidConfig is returned when the consumer configuration is incomplete.
	ErrInvalidConfig = errors.New("invalid consumer configuration")

	// ErrHandlerNil is returned when no events handler is provided.
	ErrHandlerNil = errors.New("events handler is nil")

	// ErrSourceNil is returned when no event source is provided.
	ErrSourceNil = errors.New("event source is nil")

	// ErrPanic is reported when a cycle panics.
	ErrPanic = errors.New("consume cycle panicked")

	// ErrNotRunning is returned by Healthcheck when the consumer is stopped.
	ErrNotRunning = errors.New("consumer is not running")

	// ErrUnhealthy is returned by Healthcheck when consecutive cycle failures reach the threshold.
	ErrUnhealthy = errors.New("consumer is failing repeatedly")

	// ErrShutdownTimeout is returned when in-flight cycles outlive the shutdown context.
	ErrShutdownTimeout = errors.New("consumer shutdown timeout exceeded")
)
