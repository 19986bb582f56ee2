package async

import "errors"

var (
	// ErrTimeout is returned by AwaitWithTimeout when the future does not complete in time.
	ErrTimeout = errors.New("async: timeout waiting for result")

	// ErrNoFutures is returned by WaitAny when called without futures.
	ErrNoFutures = errors.New("async: no futures provided")

	// ErrPanic is returned when the asynchronous function panics.
	ErrPanic = errors.New("async: function panicked")
)
