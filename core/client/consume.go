package client

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrymomot/pubsub/core/event"
	"github.com/dmitrymomot/pubsub/core/logger"
)

// Consume reads one batch and hands it to handler together with a commit function
// bound to the same subscription. An empty batch skips the handler.
// Errors from the read, the handler or the bound commit are returned joined with
// event.ErrConsumer. The handler context carries the batch source and read time.
func (c *Client) Consume(ctx context.Context, org, topic, sub string, batchSize int, handler event.HandlerFunc) error {
	if handler == nil {
		return errors.Join(event.ErrConsumer, ErrHandlerNil)
	}

	events, err := c.Read(ctx, org, topic, sub, batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	commit := func(ctx context.Context, ids []string) (int, error) {
		n, err := c.Commit(ctx, org, topic, sub, ids)
		if err != nil {
			return 0, consumerError(err)
		}
		return n, nil
	}

	hctx := event.WithSource(ctx, event.Source{Org: org, Topic: topic, Subscription: sub})
	hctx = event.WithReadTime(hctx, time.Now())

	if err := handler(hctx, events, commit); err != nil {
		c.logger.DebugContext(ctx, "events handler failed",
			logger.Org(org),
			logger.Topic(topic),
			logger.Subscription(sub),
			logger.BatchSize(len(events)),
			logger.Error(err))
		return consumerError(err)
	}

	return nil
}

func consumerError(err error) error {
	if errors.Is(err, event.ErrConsumer) {
		return err
	}
	return errors.Join(event.ErrConsumer, err)
}
