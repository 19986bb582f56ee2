package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrymomot/pubsub/core/event"
	"github.com/dmitrymomot/pubsub/core/logger"
)

// Publish sends events to a topic and returns how many the service accepted.
// Publishing is never retried. Every failure is joined with event.ErrPublishing:
// 400 carries an *event.StatusError with the response body, 404 event.ErrNotFound,
// 500 event.ErrServerError. Other unexpected statuses return 0 and no error.
func (c *Client) Publish(ctx context.Context, org, topic string, events []event.PublishRequest) (int, error) {
	if org == "" || topic == "" {
		return 0, errors.Join(event.ErrPublishing, ErrEmptyName)
	}
	if events == nil {
		events = []event.PublishRequest{}
	}

	resp, err := c.send(ctx, http.MethodPost, eventsPath(org, topic), nil, events)
	if err != nil {
		return 0, errors.Join(event.ErrPublishing, err)
	}

	switch resp.status {
	case http.StatusOK:
		n, err := parseCount(resp.body)
		if err != nil {
			return 0, errors.Join(event.ErrPublishing, err)
		}
		c.logger.DebugContext(ctx, "events published",
			logger.Org(org),
			logger.Topic(topic),
			logger.Count("published", n))
		return n, nil
	case http.StatusNoContent:
		return 0, nil
	case http.StatusBadRequest:
		return 0, errors.Join(event.ErrPublishing, statusError(resp))
	case http.StatusNotFound:
		return 0, errors.Join(event.ErrPublishing, event.ErrNotFound)
	case http.StatusInternalServerError:
		return 0, errors.Join(event.ErrPublishing, event.ErrServerError)
	default:
		c.logger.WarnContext(ctx, "unexpected publish response status",
			logger.Org(org),
			logger.Topic(topic),
			logger.StatusCode(resp.status))
		return 0, nil
	}
}

// Read fetches up to batchSize pending events for a subscription.
// Conflicts (409) and server errors (500) are retried with a random wait.
// Every failure is joined with event.ErrConsumer. No events yields an empty, non-nil slice.
func (c *Client) Read(ctx context.Context, org, topic, sub string, batchSize int) ([]event.Response, error) {
	if org == "" || topic == "" || sub == "" {
		return nil, errors.Join(event.ErrConsumer, ErrEmptyName)
	}

	path := subscriptionPath(org, topic, sub, "events")
	query := url.Values{"batchSize": []string{strconv.Itoa(batchSize)}}

	events, err := withRetries(ctx, c, "read", func() ([]event.Response, error) {
		resp, err := c.send(ctx, http.MethodGet, path, query, nil)
		if err != nil {
			return nil, err
		}
		return readResult(resp)
	})
	if err != nil {
		c.logger.DebugContext(ctx, "failed to read events",
			logger.Org(org),
			logger.Topic(topic),
			logger.Subscription(sub),
			logger.Error(err))
		return nil, errors.Join(event.ErrConsumer, err)
	}

	return events, nil
}

// Commit acknowledges processed events and returns how many the service committed.
// Retries and error mapping follow Read; 400 carries an *event.StatusError.
func (c *Client) Commit(ctx context.Context, org, topic, sub string, ids []string) (int, error) {
	if org == "" || topic == "" || sub == "" {
		return 0, errors.Join(event.ErrConsumer, ErrEmptyName)
	}
	if ids == nil {
		ids = []string{}
	}

	path := subscriptionPath(org, topic, sub, "event-commits")

	n, err := withRetries(ctx, c, "commit", func() (int, error) {
		resp, err := c.send(ctx, http.MethodPost, path, nil, ids)
		if err != nil {
			return 0, err
		}
		return commitResult(resp)
	})
	if err != nil {
		c.logger.DebugContext(ctx, "failed to commit events",
			logger.Org(org),
			logger.Topic(topic),
			logger.Subscription(sub),
			logger.Count("ids", len(ids)),
			logger.Error(err))
		return 0, errors.Join(event.ErrConsumer, err)
	}

	return n, nil
}

func readResult(resp *response) ([]event.Response, error) {
	switch {
	case resp.status == http.StatusOK:
		return decodeBatch(resp.body)
	case resp.status == http.StatusNoContent:
		return []event.Response{}, nil
	case resp.status == http.StatusNotFound:
		return nil, event.ErrNotFound
	case resp.status == http.StatusConflict:
		return nil, event.ErrConflict
	case resp.status == http.StatusInternalServerError:
		return nil, event.ErrServerError
	case resp.status >= http.StatusBadRequest:
		return nil, statusError(resp)
	default:
		return []event.Response{}, nil
	}
}

func commitResult(resp *response) (int, error) {
	switch {
	case resp.status == http.StatusOK:
		return parseCount(resp.body)
	case resp.status == http.StatusNoContent:
		return 0, nil
	case resp.status == http.StatusNotFound:
		return 0, event.ErrNotFound
	case resp.status == http.StatusConflict:
		return 0, event.ErrConflict
	case resp.status == http.StatusInternalServerError:
		return 0, event.ErrServerError
	case resp.status >= http.StatusBadRequest:
		return 0, statusError(resp)
	default:
		return 0, nil
	}
}

func statusError(resp *response) *event.StatusError {
	return &event.StatusError{StatusCode: resp.status, Body: string(resp.body)}
}

// parseCount decodes a plain integer body. An empty body counts as zero.
func parseCount(body []byte) (int, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(string(body))
	if err != nil {
		return 0, fmt.Errorf("%w: expected integer count, got %q", event.ErrInvalidResponse, truncate(body, 64))
	}
	return n, nil
}

func decodeBatch(body []byte) ([]event.Response, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return []event.Response{}, nil
	}
	var events []event.Response
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, errors.Join(event.ErrInvalidResponse, err)
	}
	if events == nil {
		events = []event.Response{}
	}
	return events, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
