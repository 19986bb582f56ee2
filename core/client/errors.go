package client

import "errors"

var (
	// ErrInvalidBaseURL is returned when the service address is not an absolute http(s) URL.
	ErrInvalidBaseURL = errors.New("invalid pubsub base URL")

	// ErrEmptyName is returned when org, topic or subscription is empty.
	ErrEmptyName = errors.New("org, topic and subscription must not be empty")

	// ErrHandlerNil is returned when Consume is called without a handler.
	ErrHandlerNil = errors.New("events handler is nil")

	// ErrCircuitOpen is returned when the circuit breaker rejects a request.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)
