package event

import (
	"context"
	"encoding/json"
	"fmt"
)

// CommitFunc acknowledges event identifiers on the subscription the batch was read from.
// It returns the number of events the service marked as committed.
type CommitFunc func(ctx context.Context, ids []string) (int, error)

// HandlerFunc processes one non-empty batch read from a subscription.
// Events should be committed through commit once they are processed; uncommitted
// events are redelivered on a later read.
type HandlerFunc func(ctx context.Context, events []Response, commit CommitFunc) error

// TypedEvent is a Response whose payload has been decoded into T.
type TypedEvent[T any] struct {
	Response
	Payload T
}

// TypedHandler adapts a handler working on decoded payloads into a HandlerFunc.
// A payload that fails to decode aborts the batch before fn is called, so nothing
// from it is committed.
//
// Example:
//
//	type OrderPlaced struct {
//	    OrderID string `json:"orderId"`
//	}
//
//	handler := event.TypedHandler(func(ctx context.Context, events []event.TypedEvent[OrderPlaced], commit event.CommitFunc) error {
//	    for _, e := range events {
//	        process(e.Payload.OrderID)
//	    }
//	    _, err := commit(ctx, event.IDs(event.Responses(events)))
//	    return err
//	})
func TypedHandler[T any](fn func(ctx context.Context, events []TypedEvent[T], commit CommitFunc) error) HandlerFunc {
	return func(ctx context.Context, events []Response, commit CommitFunc) error {
		typed := make([]TypedEvent[T], 0, len(events))
		for _, e := range events {
			payload, err := Decode[T](e)
			if err != nil {
				return err
			}
			typed = append(typed, TypedEvent[T]{Response: e, Payload: payload})
		}
		return fn(ctx, typed, commit)
	}
}

// Responses strips decoded payloads and returns the underlying responses.
func Responses[T any](events []TypedEvent[T]) []Response {
	out := make([]Response, 0, len(events))
	for _, e := range events {
		out = append(out, e.Response)
	}
	return out
}

// Decode unmarshals the opaque payload of r into T.
func Decode[T any](r Response) (T, error) {
	var v T
	if len(r.Data) == 0 {
		return v, fmt.Errorf("event %q: empty payload", r.ID)
	}
	if err := json.Unmarshal(r.Data, &v); err != nil {
		return v, fmt.Errorf("event %q: failed to unmarshal payload: %w", r.ID, err)
	}
	return v, nil
}
