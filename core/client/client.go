package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/dmitrymomot/pubsub/core/logger"
)

const (
	// DefaultTimeout bounds a single HTTP round trip.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxRetries is the number of retries after the first attempt for reads and commits.
	DefaultMaxRetries = 3
	// DefaultRetryWait is the exclusive upper bound of the random wait between attempts.
	DefaultRetryWait = 100 * time.Millisecond

	maxResponseSize = 10 << 20
)

// errUpstreamFailure lets the circuit breaker count 5xx responses as failures
// while the response itself is still handed to the status mapping.
var errUpstreamFailure = errors.New("upstream failure")

// Client issues publish, read and commit requests against the pubsub service
// and maps response statuses to domain outcomes. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	headers    http.Header
	maxRetries int
	retryWait  time.Duration
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	randInt64N func(n int64) int64
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

// New creates a client for the service at baseURL. A trailing slash is removed.
//
// Example:
//
//	c, err := client.New("https://pubsub.example.com/api/",
//	    client.WithLogger(log),
//	    client.WithRetryWait(250*time.Millisecond),
//	)
func New(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(base)
	if base == "" || err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	c := &Client{
		baseURL:    base,
		timeout:    DefaultTimeout,
		headers:    make(http.Header),
		maxRetries: DefaultMaxRetries,
		retryWait:  DefaultRetryWait,
		logger:     logger.Discard(),
		randInt64N: rand.Int64N,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}

	c.logger.Debug("pubsub client initialized",
		logger.URL(c.baseURL),
		slog.Int("max_retries", c.maxRetries),
		slog.Duration("retry_wait", c.retryWait))

	return c, nil
}

// NewFromConfig creates a Client from configuration.
// MaxRetries and RetryWait are applied as given, so zero disables retries;
// start from DefaultConfig to keep the default budget. A zero Timeout or
// RateLimit keeps the default. Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Client, error) {
	allOpts := []Option{
		WithMaxRetries(cfg.MaxRetries),
		WithRetryWait(cfg.RetryWait),
	}
	if cfg.Timeout > 0 {
		allOpts = append(allOpts, WithTimeout(cfg.Timeout))
	}
	if cfg.RateLimit > 0 {
		allOpts = append(allOpts, WithRateLimit(rate.Limit(cfg.RateLimit), cfg.RateBurst))
	}

	return New(cfg.BaseURL, append(allOpts, opts...)...)
}

// BaseURL returns the normalized service address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// send performs one HTTP round trip. A non-nil error means no response was obtained.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, payload any) (*response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body for %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait for %s %s: %w", method, target, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request %s %s: %w", method, target, err)
	}

	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	c.logger.DebugContext(ctx, "sending request",
		logger.Method(method),
		logger.URL(target),
		logger.RequestID(requestID))

	if c.breaker == nil {
		return c.roundTrip(ctx, req)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		resp, err := c.roundTrip(ctx, req)
		if err != nil {
			return nil, err
		}
		if resp.status >= http.StatusInternalServerError {
			return resp, errUpstreamFailure
		}
		return resp, nil
	})
	switch {
	case errors.Is(err, errUpstreamFailure):
		return res.(*response), nil
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.logger.WarnContext(ctx, "circuit breaker rejected request",
			logger.Method(method),
			logger.URL(target),
			slog.String("state", c.breaker.State().String()))
		return nil, errors.Join(ErrCircuitOpen, err)
	case err != nil:
		return nil, err
	}
	return res.(*response), nil
}

func (c *Client) roundTrip(ctx context.Context, req *http.Request) (*response, error) {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "http request failed",
			logger.Method(req.Method),
			logger.URL(req.URL.String()),
			logger.Error(err))
		return nil, fmt.Errorf("http request %s %s failed: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body for %s %s (status %d): %w",
			req.Method, req.URL, resp.StatusCode, err)
	}

	c.logger.DebugContext(ctx, "response received",
		logger.Method(req.Method),
		logger.URL(req.URL.String()),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)))

	return &response{status: resp.StatusCode, body: b}, nil
}

func eventsPath(org, topic string) string {
	return "/" + url.PathEscape(org) + "/topics/" + url.PathEscape(topic) + "/events"
}

func subscriptionPath(org, topic, sub, resource string) string {
	return "/" + url.PathEscape(org) +
		"/topics/" + url.PathEscape(topic) +
		"/subscriptions/" + url.PathEscape(sub) +
		"/" + resource
}
