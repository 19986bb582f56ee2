// Package publisher publishes events to a single pubsub topic without ever
// returning an error to the caller.
//
// A Publisher wraps a Transport (normally *client.Client) with a fixed
// organization and topic. Publish and PublishMany return the number of events
// accepted by the service. When publishing fails for any reason, including a
// panicking transport, the count is 0 and the configured error handler is called
// exactly once with the error and the requests that were not published:
//
//	pub := publisher.New(c, "acme", "orders",
//	    publisher.WithLogger(log),
//	    publisher.WithErrorHandler(func(err error, reqs []event.PublishRequest) {
//	        outbox.Save(reqs) // retry later
//	    }),
//	)
//
//	if n := pub.PublishMany(ctx, reqs); n == 0 {
//	    // nothing accepted
//	}
//
// PublishAsync runs the same operation in its own goroutine and returns an
// async.Future holding the accepted count.
package publisher
