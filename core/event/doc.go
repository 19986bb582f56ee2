// Package event defines the shared entities and errors of the pubsub client:
// topics, subscriptions, publish requests, event responses read from a
// subscription, and the batch handler contract used by consumers.
//
// # Entities
//
// Topic and Subscription mirror the resources exposed by the remote service and
// are immutable from the client's point of view. PublishRequest wraps an opaque
// payload for publishing. Response is an event read from a subscription; its
// CreatedAt is parsed from an ISO-8601 string and an invalid timestamp is a
// construction error:
//
//	resp, err := event.NewResponse("1", json.RawMessage(`{"msg":"hello"}`), "2025-07-01T00:00:00Z")
//
// # Handlers
//
// A HandlerFunc receives one non-empty batch and a CommitFunc bound to the
// subscription the batch was read from:
//
//	handler := func(ctx context.Context, events []event.Response, commit event.CommitFunc) error {
//	    for _, e := range events {
//	        if err := process(e); err != nil {
//	            return err // nothing committed, batch is redelivered
//	        }
//	    }
//	    _, err := commit(ctx, event.IDs(events))
//	    return err
//	}
//
// Delivery is at-least-once: a crash between read and commit redelivers the batch,
// so handlers must tolerate duplicates.
//
// TypedHandler decodes payloads into a concrete type before calling the handler,
// and Decorate composes cross-cutting decorators such as Recover, Timeout and Logging.
//
// # Errors
//
// Failures are composed with errors.Join so both the family and the cause can be
// tested with errors.Is:
//
//	if errors.Is(err, event.ErrConsumer) && errors.Is(err, event.ErrConflict) {
//	    // retries were exhausted on a conflicted subscription
//	}
//
// ErrPublishing marks publish failures and ErrConsumer marks read, commit and
// handler failures. ErrConflict and ErrServerError are transient conditions that
// the client retries on reads and commits. StatusError carries the status code and
// body of a client error or unexpected status.
package event
