// Package client is the HTTP transport for the pubsub service.
//
// A Client publishes events to a topic, reads pending events for a subscription,
// commits processed event IDs and combines read, handle and commit in Consume.
// Publishing is attempted once. Reads and commits are retried when the service
// answers 409 Conflict or 500 Internal Server Error, waiting a uniformly random
// duration below the configured retry wait between attempts.
//
// Every failure is classified: errors from Publish match event.ErrPublishing and
// errors from Read, Commit and Consume match event.ErrConsumer. The cause is joined
// alongside and can be inspected with errors.Is and errors.As:
//
//	n, err := c.Commit(ctx, "acme", "orders", "billing", ids)
//	switch {
//	case errors.Is(err, event.ErrNotFound):
//	    // subscription is gone
//	case errors.Is(err, event.ErrConflict):
//	    // retries exhausted
//	}
//
// # Usage
//
//	c, err := client.New("https://pubsub.example.com",
//	    client.WithLogger(log),
//	    client.WithHeader("Authorization", "Bearer "+token),
//	)
//	if err != nil {
//	    return err
//	}
//
//	n, err := c.Publish(ctx, "acme", "orders", []event.PublishRequest{
//	    event.NewPublishRequest(order),
//	})
//
//	err = c.Consume(ctx, "acme", "orders", "billing", 10,
//	    func(ctx context.Context, events []event.Response, commit event.CommitFunc) error {
//	        // process events
//	        _, err := commit(ctx, event.IDs(events))
//	        return err
//	    })
//
// # Configuration
//
// Config is parsed from the environment with core/config:
//
//	var cfg client.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	c, err := client.NewFromConfig(cfg, client.WithLogger(log))
//
// Optional rate limiting (golang.org/x/time/rate) paces every HTTP attempt, and an
// optional circuit breaker (github.com/sony/gobreaker) short-circuits requests while
// the service keeps failing.
package client
