package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/pubsub/core/event"
	"github.com/dmitrymomot/pubsub/core/logger"
	"github.com/dmitrymomot/pubsub/pkg/async"
)

var (
	// ErrPanic is reported when the transport panics while publishing.
	ErrPanic = errors.New("publisher: transport panicked")

	// ErrTransportNil is reported when the publisher has no transport.
	ErrTransportNil = errors.New("publisher: transport is nil")
)

// Transport sends events to a topic and returns how many were accepted.
// Satisfied by *client.Client.
type Transport interface {
	Publish(ctx context.Context, org, topic string, events []event.PublishRequest) (int, error)
}

// ErrorHandler receives a publish failure together with the requests that were not published.
type ErrorHandler func(err error, reqs []event.PublishRequest)

// Publisher publishes events to a fixed (org, topic) target.
// Publishing never returns an error: failures go to the error handler and yield 0.
//
// Example:
//
//	pub := publisher.New(c, "acme", "orders",
//	    publisher.WithErrorHandler(func(err error, reqs []event.PublishRequest) {
//	        log.Error("publish failed", logger.Error(err), logger.BatchSize(len(reqs)))
//	    }),
//	)
//	n := pub.Publish(ctx, event.NewPublishRequest(order))
type Publisher struct {
	transport    Transport
	org          string
	topic        string
	errorHandler ErrorHandler
	logger       *slog.Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithErrorHandler sets the callback invoked once per failed publish.
// Default is a no-op.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(p *Publisher) {
		if fn != nil {
			p.errorHandler = fn
		}
	}
}

// WithLogger sets the logger for the publisher.
func WithLogger(l *slog.Logger) Option {
	return func(p *Publisher) {
		if l != nil {
			p.logger = l
		}
	}
}

// New creates a publisher bound to org and topic.
func New(transport Transport, org, topic string, opts ...Option) *Publisher {
	p := &Publisher{
		transport:    transport,
		org:          org,
		topic:        topic,
		errorHandler: func(error, []event.PublishRequest) {},
		logger:       logger.Discard(),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// NewFromConfig creates a publisher from configuration.
func NewFromConfig(transport Transport, cfg Config, opts ...Option) *Publisher {
	return New(transport, cfg.Org, cfg.Topic, opts...)
}

// Publish publishes a single event. See PublishMany.
func (p *Publisher) Publish(ctx context.Context, req event.PublishRequest) int {
	return p.PublishMany(ctx, []event.PublishRequest{req})
}

// PublishMany publishes reqs and returns the number of events the service accepted.
// On failure the error handler is called exactly once with the error and reqs, and 0 is returned.
func (p *Publisher) PublishMany(ctx context.Context, reqs []event.PublishRequest) (n int) {
	defer func() {
		if r := recover(); r != nil {
			n = 0
			p.fail(ctx, fmt.Errorf("%w: %v", errors.Join(event.ErrPublishing, ErrPanic), r), reqs)
		}
	}()

	if p.transport == nil {
		p.fail(ctx, errors.Join(event.ErrPublishing, ErrTransportNil), reqs)
		return 0
	}

	n, err := p.transport.Publish(ctx, p.org, p.topic, reqs)
	if err != nil {
		p.fail(ctx, err, reqs)
		return 0
	}

	p.logger.DebugContext(ctx, "events published",
		logger.Org(p.org),
		logger.Topic(p.topic),
		logger.BatchSize(len(reqs)),
		logger.Count("accepted", n))

	return n
}

// PublishAsync runs PublishMany in its own goroutine.
// The future always completes without an error; failures still go to the error handler.
//
// Example:
//
//	f := pub.PublishAsync(ctx, reqs)
//	// ...
//	n, _ := f.Await()
func (p *Publisher) PublishAsync(ctx context.Context, reqs []event.PublishRequest) *async.Future[int] {
	return async.Async(ctx, reqs, func(ctx context.Context, reqs []event.PublishRequest) (int, error) {
		return p.PublishMany(ctx, reqs), nil
	})
}

func (p *Publisher) fail(ctx context.Context, err error, reqs []event.PublishRequest) {
	p.logger.ErrorContext(ctx, "failed to publish events",
		logger.Org(p.org),
		logger.Topic(p.topic),
		logger.BatchSize(len(reqs)),
		logger.Error(err))

	defer func() {
		if r := recover(); r != nil {
			p.logger.ErrorContext(ctx, "publish error handler panicked",
				slog.Any("panic", r))
		}
	}()
	p.errorHandler(err, reqs)
}
