// Package redis provides Redis client initialization and health checking for the
// shared state of pubsub consumers, such as the redelivery filter in core/dedupe.
//
// Connect parses a redis:// or rediss:// URL, creates a go-redis client and
// verifies connectivity with a ping, retrying with exponential backoff. Healthcheck
// returns a ping function for readiness probes.
//
// # Configuration
//
// All configuration is handled through the Config struct with environment variable mapping:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// RetryInterval is the first wait between ping attempts; later waits grow
// exponentially. ConnectTimeout bounds the whole process and cancellation of the
// parent context aborts it early.
//
// # Usage Example
//
//	var cfg redis.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	rdb, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer rdb.Close()
//
//	store := dedupe.NewRedisStore(rdb, 24*time.Hour)
//	handler := dedupe.Handler(store, dedupe.Scope("acme", "orders", "billing"), process)
//
// # Error Handling
//
// The package defines domain-specific errors that can be checked using errors.Is():
//
//   - ErrFailedToParseRedisConnString: Returned when the Redis connection URL is malformed
//   - ErrRedisNotReady: Returned when Redis doesn't answer within the retry budget or timeout
//   - ErrEmptyConnectionURL: Returned when no connection URL is provided
//   - ErrHealthcheckFailed: Returned when health check ping fails
//
// The underlying go-redis error is joined alongside.
package redis
