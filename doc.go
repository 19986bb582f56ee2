// Package pubsub is a client toolkit for a remote publish/subscribe event service.
//
// The module is organized as independent packages:
//
//   - core/client: HTTP transport for publish, read, commit and consume with
//     retries on conflicts and server errors
//   - core/publisher: topic-bound publisher that reports failures to a callback
//   - core/consumer: interval poller running read, handle and commit cycles
//   - core/event: shared data model, error families and handler types
//   - core/dedupe: redelivery filter for at-least-once consumers
//   - core/config, core/logger, core/health: configuration, logging and probes
//   - integration/database/redis: Redis connection for shared dedupe state
//   - pkg/async: generic futures
//
// A minimal consumer process:
//
//	var (
//		clientCfg   client.Config
//		consumerCfg consumer.Config
//	)
//	config.MustLoad(&clientCfg)
//	config.MustLoad(&consumerCfg)
//
//	log := logger.New(logger.WithProduction("billing"))
//
//	c, err := client.NewFromConfig(clientCfg, client.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	cons, err := consumer.New(c, handleOrders, consumerCfg,
//		consumer.WithLogger(log),
//		consumer.WithErrorHandler(func(err error) {
//			log.Error("consume cycle failed", logger.Error(err))
//		}),
//	)
//	if err != nil {
//		return err
//	}
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(cons.Run(ctx))
//	return g.Wait()
package pubsub
