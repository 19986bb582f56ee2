package publisher_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubsub/core/client"
	"github.com/dmitrymomot/pubsub/core/event"
	"github.com/dmitrymomot/pubsub/core/publisher"
)

type transportFunc func(ctx context.Context, org, topic string, events []event.PublishRequest) (int, error)

func (f transportFunc) Publish(ctx context.Context, org, topic string, events []event.PublishRequest) (int, error) {
	return f(ctx, org, topic, events)
}

type failure struct {
	err  error
	reqs []event.PublishRequest
}

// recorder collects error handler invocations.
type recorder struct {
	mu       sync.Mutex
	failures []failure
}

func (r *recorder) handle(err error, reqs []event.PublishRequest) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, failure{err: err, reqs: reqs})
}

func (r *recorder) all() []failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]failure(nil), r.failures...)
}

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	var (
		gotOrg, gotTopic string
		gotEvents        []event.PublishRequest
	)
	tr := transportFunc(func(_ context.Context, org, topic string, events []event.PublishRequest) (int, error) {
		gotOrg, gotTopic, gotEvents = org, topic, events
		return len(events), nil
	})

	rec := &recorder{}
	p := publisher.New(tr, "acme", "orders", publisher.WithErrorHandler(rec.handle))

	n := p.Publish(context.Background(), event.NewPublishRequest("hello"))
	assert.Equal(t, 1, n)
	assert.Equal(t, "acme", gotOrg)
	assert.Equal(t, "orders", gotTopic)
	assert.Equal(t, []event.PublishRequest{{Data: "hello"}}, gotEvents)
	assert.Empty(t, rec.all())
}

func TestPublisher_PublishMany(t *testing.T) {
	t.Parallel()

	reqs := []event.PublishRequest{
		event.NewPublishRequest(1),
		event.NewPublishRequest(2),
	}

	t.Run("returns accepted count", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		p := publisher.New(transportFunc(func(context.Context, string, string, []event.PublishRequest) (int, error) {
			return 2, nil
		}), "acme", "orders", publisher.WithErrorHandler(rec.handle))

		assert.Equal(t, 2, p.PublishMany(context.Background(), reqs))
		assert.Empty(t, rec.all())
	})

	t.Run("failure calls handler once and returns zero", func(t *testing.T) {
		t.Parallel()

		cause := errors.Join(event.ErrPublishing, event.ErrNotFound)
		rec := &recorder{}
		p := publisher.New(transportFunc(func(context.Context, string, string, []event.PublishRequest) (int, error) {
			return 5, cause
		}), "acme", "orders", publisher.WithErrorHandler(rec.handle))

		assert.Equal(t, 0, p.PublishMany(context.Background(), reqs))

		failures := rec.all()
		require.Len(t, failures, 1)
		assert.ErrorIs(t, failures[0].err, event.ErrNotFound)
		assert.Equal(t, reqs, failures[0].reqs)
	})

	t.Run("panicking transport is reported", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		p := publisher.New(transportFunc(func(context.Context, string, string, []event.PublishRequest) (int, error) {
			panic("connection reset")
		}), "acme", "orders", publisher.WithErrorHandler(rec.handle))

		var n int
		require.NotPanics(t, func() {
			n = p.PublishMany(context.Background(), reqs)
		})
		assert.Equal(t, 0, n)

		failures := rec.all()
		require.Len(t, failures, 1)
		assert.ErrorIs(t, failures[0].err, event.ErrPublishing)
		assert.ErrorIs(t, failures[0].err, publisher.ErrPanic)
		assert.Contains(t, failures[0].err.Error(), "connection reset")
	})

	t.Run("nil transport is reported", func(t *testing.T) {
		t.Parallel()

		rec := &recorder{}
		p := publisher.New(nil, "acme", "orders", publisher.WithErrorHandler(rec.handle))

		assert.Equal(t, 0, p.PublishMany(context.Background(), reqs))

		failures := rec.all()
		require.Len(t, failures, 1)
		assert.ErrorIs(t, failures[0].err, publisher.ErrTransportNil)
	})

	t.Run("panicking error handler is contained", func(t *testing.T) {
		t.Parallel()

		p := publisher.New(transportFunc(func(context.Context, string, string, []event.PublishRequest) (int, error) {
			return 0, event.ErrPublishing
		}), "acme", "orders", publisher.WithErrorHandler(func(error, []event.PublishRequest) {
			panic("handler bug")
		}))

		assert.NotPanics(t, func() {
			assert.Equal(t, 0, p.PublishMany(context.Background(), reqs))
		})
	})

	t.Run("default error handler is a no-op", func(t *testing.T) {
		t.Parallel()

		p := publisher.New(transportFunc(func(context.Context, string, string, []event.PublishRequest) (int, error) {
			return 0, event.ErrPublishing
		}), "acme", "orders")

		assert.NotPanics(t, func() {
			assert.Equal(t, 0, p.PublishMany(context.Background(), reqs))
		})
	})
}

func TestPublisher_PublishAsync(t *testing.T) {
	t.Parallel()

	rec := &recorder{}
	p := publisher.NewFromConfig(transportFunc(func(_ context.Context, _, _ string, events []event.PublishRequest) (int, error) {
		return len(events), nil
	}), publisher.Config{Org: "acme", Topic: "orders"}, publisher.WithErrorHandler(rec.handle))

	f := p.PublishAsync(context.Background(), []event.PublishRequest{
		event.NewPublishRequest("a"),
		event.NewPublishRequest("b"),
		event.NewPublishRequest("c"),
	})

	n, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Empty(t, rec.all())
}

func TestPublisher_WithClient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/acme/topics/orders/events" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("1"))
	}))
	t.Cleanup(srv.Close)

	c, err := client.New(srv.URL)
	require.NoError(t, err)

	rec := &recorder{}
	ok := publisher.New(c, "acme", "orders", publisher.WithErrorHandler(rec.handle))
	missing := publisher.New(c, "acme", "unknown", publisher.WithErrorHandler(rec.handle))

	assert.Equal(t, 1, ok.Publish(context.Background(), event.NewPublishRequest("x")))
	assert.Equal(t, 0, missing.Publish(context.Background(), event.NewPublishRequest("y")))

	failures := rec.all()
	require.Len(t, failures, 1)
	assert.ErrorIs(t, failures[0].err, event.ErrPublishing)
	assert.ErrorIs(t, failures[0].err, event.ErrNotFound)
	assert.Equal(t, []event.PublishRequest{{Data: "y"}}, failures[0].reqs)
}
