package client

import "time"

// Config holds the client configuration.
// Designed for environment-based configuration with core/config.
type Config struct {
	BaseURL    string        `env:"PUBSUB_BASE_URL,required"`
	Timeout    time.Duration `env:"PUBSUB_HTTP_TIMEOUT" envDefault:"10s"`
	MaxRetries int           `env:"PUBSUB_MAX_RETRIES" envDefault:"3"`
	RetryWait  time.Duration `env:"PUBSUB_RETRY_WAIT" envDefault:"100ms"`
	RateLimit  float64       `env:"PUBSUB_RATE_LIMIT" envDefault:"0"` // requests per second, 0 disables pacing
	RateBurst  int           `env:"PUBSUB_RATE_BURST" envDefault:"1"`
}

// DefaultConfig returns the defaults for the given service address.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:    baseURL,
		Timeout:    DefaultTimeout,
		MaxRetries: DefaultMaxRetries,
		RetryWait:  DefaultRetryWait,
		RateBurst:  1,
	}
}
