package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. WithTimeout has no effect
// on a client supplied this way.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger. Records are grouped under "pubsub_client".
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.WithGroup("pubsub_client")
		}
	}
}

// WithMaxRetries sets how many times reads and commits are retried after a
// transient response. Zero disables retries. Publishing is never retried.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryWait sets the exclusive upper bound of the random wait between attempts.
// Each wait is drawn uniformly from [0, d).
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) {
		if d >= 0 {
			c.retryWait = d
		}
	}
}

// WithRateLimit paces outgoing requests, retries included, to limit per second
// with the given burst.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		if limit <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithCircuitBreaker guards requests with a circuit breaker. Network failures and
// 5xx responses count as failures; while open, requests fail with ErrCircuitOpen
// without reaching the service.
//
// Example:
//
//	client.WithCircuitBreaker(gobreaker.Settings{
//	    Timeout: 30 * time.Second,
//	    ReadyToTrip: func(counts gobreaker.Counts) bool {
//	        return counts.ConsecutiveFailures >= 5
//	    },
//	})
func WithCircuitBreaker(st gobreaker.Settings) Option {
	return func(c *Client) {
		if st.Name == "" {
			st.Name = "pubsub-client"
		}
		c.breaker = gobreaker.NewCircuitBreaker(st)
	}
}

// WithHeader adds a static header to every request, e.g. an authorization token.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if key != "" {
			c.headers.Add(key, value)
		}
	}
}
