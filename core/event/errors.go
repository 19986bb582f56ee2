package event

import (
	"errors"
	"fmt"
)

var (
	// ErrPublishing marks every failure returned from the publish path.
	ErrPublishing = errors.New("event publishing failed")

	// ErrConsumer marks every failure returned from the read, commit and consume paths.
	ErrConsumer = errors.New("event consumer failed")

	// ErrNotFound is returned when the organization, topic or subscription does not exist.
	ErrNotFound = errors.New("subscription, topic or organization not found")

	// ErrConflict is returned by the service when a subscription is being read concurrently.
	// It is retried and only surfaces after the retry budget is spent.
	ErrConflict = errors.New("conflict while reading events")

	// ErrServerError is returned when the service responds with an internal error.
	ErrServerError = errors.New("pubsub: internal server error")

	// ErrInvalidResponse is returned when a success response body cannot be decoded.
	ErrInvalidResponse = errors.New("invalid response body")

	// ErrInvalidTimestamp is returned when an event creation time is not ISO-8601.
	ErrInvalidTimestamp = errors.New("invalid event timestamp")
)

// StatusError carries an unexpected or client-side HTTP status and the response body.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode == 400 {
		return "error on your request: " + e.Body
	}
	return fmt.Sprintf("request failed with status code %d", e.StatusCode)
}

// IsTransient reports whether err is a condition that may resolve on a later attempt.
func IsTransient(err error) bool {
	return errors.Is(err, ErrConflict) || errors.Is(err, ErrServerError)
}
