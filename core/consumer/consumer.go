package consumer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pubsub/core/event"
	"github.com/dmitrymomot/pubsub/core/logger"
)

// DefaultShutdownTimeout bounds how long Run waits for in-flight cycles.
const DefaultShutdownTimeout = 30 * time.Second

// Source reads one batch for a subscription and hands it to handler.
// Satisfied by *client.Client.
type Source interface {
	Consume(ctx context.Context, org, topic, sub string, batchSize int, handler event.HandlerFunc) error
}

// ErrorHandler receives the error of a failed cycle.
type ErrorHandler func(err error)

// Consumer polls a subscription on a fixed interval. Every tick runs one
// read-handle-commit cycle in its own goroutine; a failed cycle is reported to
// the error handler and never stops later ticks.
type Consumer struct {
	id      uuid.UUID
	source  Source
	handler event.HandlerFunc

	org       string
	topic     string
	sub       string
	batchSize int
	interval  time.Duration

	cycleTimeout     time.Duration
	shutdownTimeout  time.Duration
	skipOverlap      bool
	failureThreshold int64
	errorHandler     ErrorHandler
	logger           *slog.Logger

	newTicker func(d time.Duration) (<-chan time.Time, func())

	mu   sync.Mutex
	stop chan struct{} // non-nil while running
	done chan struct{} // closed when the tick loop exits
	wg   sync.WaitGroup

	inFlight atomic.Bool

	cyclesStarted       atomic.Int64
	cyclesFailed        atomic.Int64
	cyclesSkipped       atomic.Int64
	eventsReceived      atomic.Int64
	consecutiveFailures atomic.Int64
	activeCycles        atomic.Int32
}

// Stats provides observability counters.
type Stats struct {
	CyclesStarted       int64 // Cycles launched by the timer
	CyclesFailed        int64 // Cycles that reported an error
	CyclesSkipped       int64 // Ticks skipped because a cycle was in flight
	EventsReceived      int64 // Events handed to the handler
	ConsecutiveFailures int64 // Failed cycles since the last successful one
	ActiveCycles        int32 // Cycles currently running
	IsRunning           bool  // Whether the timer is active
}

// New creates a stopped consumer. Call Start to begin polling.
//
// Example:
//
//	c, err := consumer.New(pubsubClient, handler, consumer.Config{
//	    Org:          "acme",
//	    Topic:        "orders",
//	    Subscription: "billing",
//	    BatchSize:    10,
//	    PollInterval: time.Second,
//	}, consumer.WithErrorHandler(func(err error) {
//	    log.Error("consume cycle failed", logger.Error(err))
//	}))
func New(source Source, handler event.HandlerFunc, cfg Config, opts ...Option) (*Consumer, error) {
	if source == nil {
		return nil, ErrSourceNil
	}
	if handler == nil {
		return nil, ErrHandlerNil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Consumer{
		id:              uuid.New(),
		source:          source,
		handler:         handler,
		org:             cfg.Org,
		topic:           cfg.Topic,
		sub:             cfg.Subscription,
		batchSize:       cfg.BatchSize,
		interval:        cfg.PollInterval,
		cycleTimeout:    cfg.CycleTimeout,
		shutdownTimeout: DefaultShutdownTimeout,
		skipOverlap:     cfg.SkipOverlap,
		errorHandler:    func(error) {},
		logger:          logger.Discard(),
		newTicker:       newTimeTicker,
	}
	if cfg.ShutdownTimeout > 0 {
		c.shutdownTimeout = cfg.ShutdownTimeout
	}

	for _, opt := range opts {
		opt(c)
	}

	c.logger = c.logger.With(
		logger.Component("consumer"),
		logger.ID("consumer_id", c.id.String()),
		logger.Org(c.org),
		logger.Topic(c.topic),
		logger.Subscription(c.sub),
	)

	return c, nil
}

func newTimeTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// ID returns the consumer instance identifier used in logs.
func (c *Consumer) ID() string {
	return c.id.String()
}

// Start begins polling. Calling Start on a running consumer does nothing.
func (c *Consumer) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop != nil {
		return
	}

	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	ticks, stopTicker := c.newTicker(c.interval)
	go c.loop(ticks, stopTicker, c.stop, c.done)

	c.logger.Info("consumer started",
		logger.BatchSize(c.batchSize),
		slog.Duration("poll_interval", c.interval),
		slog.Bool("skip_overlap", c.skipOverlap))
}

// Stop prevents future ticks. Cycles already in flight run to completion and
// still report their errors. Calling Stop on a stopped consumer does nothing.
func (c *Consumer) Stop() {
	c.mu.Lock()
	if c.stop == nil {
		c.mu.Unlock()
		return
	}
	close(c.stop)
	done := c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()

	// After the loop exits no new cycle can start.
	<-done

	c.logger.Info("consumer stopped",
		slog.Int("active_cycles", int(c.activeCycles.Load())))
}

// Close stops the consumer. It always returns nil.
func (c *Consumer) Close() error {
	c.Stop()
	return nil
}

// Shutdown stops the consumer and waits for in-flight cycles or ctx expiry.
func (c *Consumer) Shutdown(ctx context.Context) error {
	c.Stop()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		c.logger.Warn("consumer shutdown timeout exceeded, cycles still running",
			slog.Int("active_cycles", int(c.activeCycles.Load())))
		return errors.Join(ErrShutdownTimeout, ctx.Err())
	}
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// The returned function starts the consumer, blocks until ctx is done and
// then shuts down, waiting up to the shutdown timeout for in-flight cycles.
//
// Example:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(c.Run(ctx))
func (c *Consumer) Run(ctx context.Context) func() error {
	return func() error {
		c.Start()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), c.shutdownTimeout)
		defer cancel()

		return c.Shutdown(shutdownCtx)
	}
}

func (c *Consumer) loop(ticks <-chan time.Time, stopTicker func(), stop, done chan struct{}) {
	defer close(done)
	defer stopTicker()

	for {
		select {
		case <-stop:
			return
		case <-ticks:
			// A tick that races with Stop must not start a cycle.
			select {
			case <-stop:
				return
			default:
			}
			c.tick()
		}
	}
}

func (c *Consumer) tick() {
	if c.skipOverlap && !c.inFlight.CompareAndSwap(false, true) {
		c.cyclesSkipped.Add(1)
		c.logger.Debug("previous cycle still running, skipping tick")
		return
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if c.skipOverlap {
			defer c.inFlight.Store(false)
		}
		c.cycle()
	}()
}

func (c *Consumer) cycle() {
	start := time.Now()
	c.cyclesStarted.Add(1)
	c.activeCycles.Add(1)
	defer c.activeCycles.Add(-1)

	// Cycles are detached from the caller so Stop never interrupts them.
	ctx := context.Background()
	if c.cycleTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cycleTimeout)
		defer cancel()
	}

	if err := c.consume(ctx); err != nil {
		c.consecutiveFailures.Add(1)
		c.cyclesFailed.Add(1)
		c.logger.ErrorContext(ctx, "consume cycle failed",
			logger.Elapsed(start),
			logger.Error(err))
		c.report(err)
		return
	}

	c.consecutiveFailures.Store(0)
}

func (c *Consumer) consume(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(event.ErrConsumer, fmt.Errorf("%w: %v", ErrPanic, r))
		}
	}()

	return c.source.Consume(ctx, c.org, c.topic, c.sub, c.batchSize, c.handle)
}

func (c *Consumer) handle(ctx context.Context, events []event.Response, commit event.CommitFunc) error {
	c.eventsReceived.Add(int64(len(events)))
	c.logger.DebugContext(ctx, "handling batch", logger.BatchSize(len(events)))
	return c.handler(ctx, events, commit)
}

func (c *Consumer) report(err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("consumer error handler panicked", slog.Any("panic", r))
		}
	}()
	c.errorHandler(err)
}

// Stats returns current consumer statistics.
// This method is thread-safe and can be called at any time.
func (c *Consumer) Stats() Stats {
	c.mu.Lock()
	running := c.stop != nil
	c.mu.Unlock()

	return Stats{
		CyclesStarted:       c.cyclesStarted.Load(),
		CyclesFailed:        c.cyclesFailed.Load(),
		CyclesSkipped:       c.cyclesSkipped.Load(),
		EventsReceived:      c.eventsReceived.Load(),
		ConsecutiveFailures: c.consecutiveFailures.Load(),
		ActiveCycles:        c.activeCycles.Load(),
		IsRunning:           running,
	}
}

// Healthcheck reports whether the consumer is polling and, when a failure
// threshold is configured, not failing on every cycle.
//
// The returned error can be checked using errors.Is:
//
//	if errors.Is(err, consumer.ErrNotRunning) { ... }
//	if errors.Is(err, consumer.ErrUnhealthy) { ... }
func (c *Consumer) Healthcheck(ctx context.Context) error {
	stats := c.Stats()

	if !stats.IsRunning {
		return ErrNotRunning
	}

	if c.failureThreshold > 0 && stats.ConsecutiveFailures >= c.failureThreshold {
		return fmt.Errorf("%w: %d consecutive failed cycles", ErrUnhealthy, stats.ConsecutiveFailures)
	}

	return nil
}
