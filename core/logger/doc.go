// Package logger provides structured logging helpers built on Go's standard slog package.
//
// New builds a logger from functional options, and the attribute helpers give
// log records consistent keys across the client, publisher and consumer:
//
//	log := logger.New(logger.WithProduction("orders-consumer"))
//
//	log.Warn("transient response, retrying",
//	    logger.Operation("read"),
//	    logger.Org(org),
//	    logger.Topic(topic),
//	    logger.Subscription(sub),
//	    logger.Attempt(2),
//	    logger.StatusCode(409),
//	)
//
// Helpers return an empty slog.Attr for nil or empty values, which slog drops,
// so they can be used without nil checks:
//
//	log.Error("cycle failed", logger.Error(err))
//
// Components that accept a logger default to Discard.
package logger
