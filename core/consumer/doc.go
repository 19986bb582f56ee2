// Package consumer polls a pubsub subscription on a fixed interval.
//
// Each tick of the timer launches one cycle in its own goroutine: read a batch,
// hand it to the events handler together with a commit function, and return.
// Any failure of a cycle (read, handler, commit or a panic) is sent to the error
// handler; the timer keeps firing. Events are committed only by the handler, so a
// crash between read and commit redelivers them on a later cycle (at-least-once).
// Handlers must tolerate redelivery; see core/dedupe for a filter.
//
// # Lifecycle
//
// Start and Stop are idempotent. Stop only prevents future ticks: in-flight cycles
// use a context detached from the caller, run to completion and still report their
// errors. Shutdown additionally waits for them. Run adapts the consumer to errgroup:
//
//	c, err := consumer.New(pubsubClient, handler, cfg,
//	    consumer.WithLogger(log),
//	    consumer.WithErrorHandler(func(err error) {
//	        log.Error("consume cycle failed", logger.Error(err))
//	    }),
//	)
//	if err != nil {
//	    return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(c.Run(ctx))
//	return g.Wait()
//
// # Overlapping cycles
//
// By default cycles may overlap when handling takes longer than the poll interval,
// each doing its own read and commit against the subscription. WithSkipOverlap(true)
// skips ticks while a cycle is in flight.
//
// # Observability
//
// Stats exposes cycle and event counters; Healthcheck fails with ErrNotRunning when
// stopped and, with WithFailureThreshold, ErrUnhealthy after repeated failed cycles.
package consumer
