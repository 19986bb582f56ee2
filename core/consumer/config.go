package consumer

import (
	"errors"
	"time"
)

// Config holds the subscription and polling configuration.
// Designed for environment-based configuration with core/config.
type Config struct {
	Org             string        `env:"PUBSUB_ORG,required"`
	Topic           string        `env:"PUBSUB_TOPIC,required"`
	Subscription    string        `env:"PUBSUB_SUBSCRIPTION,required"`
	BatchSize       int           `env:"PUBSUB_BATCH_SIZE" envDefault:"10"`
	PollInterval    time.Duration `env:"PUBSUB_POLL_INTERVAL" envDefault:"1s"`
	CycleTimeout    time.Duration `env:"PUBSUB_CYCLE_TIMEOUT" envDefault:"0"` // 0 means cycles are unbounded
	ShutdownTimeout time.Duration `env:"PUBSUB_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	SkipOverlap     bool          `env:"PUBSUB_SKIP_OVERLAP" envDefault:"false"`
}

// Validate reports every missing or out-of-range field.
func (c Config) Validate() error {
	var errs []error
	if c.Org == "" {
		errs = append(errs, errors.New("org is required"))
	}
	if c.Topic == "" {
		errs = append(errs, errors.New("topic is required"))
	}
	if c.Subscription == "" {
		errs = append(errs, errors.New("subscription is required"))
	}
	if c.BatchSize <= 0 {
		errs = append(errs, errors.New("batch size must be positive"))
	}
	if c.PollInterval <= 0 {
		errs = append(errs, errors.New("poll interval must be positive"))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
