package event_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubsub/core/event"
)

type greeting struct {
	Msg string `json:"msg"`
}

func mustResponse(t *testing.T, id, data string) event.Response {
	t.Helper()
	resp, err := event.NewResponse(id, json.RawMessage(data), "2025-07-01T00:00:00Z")
	require.NoError(t, err)
	return resp
}

func noopCommit(context.Context, []string) (int, error) { return 0, nil }

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("decodes payload", func(t *testing.T) {
		t.Parallel()

		g, err := event.Decode[greeting](mustResponse(t, "1", `{"msg":"hello"}`))
		require.NoError(t, err)
		assert.Equal(t, "hello", g.Msg)
	})

	t.Run("empty payload", func(t *testing.T) {
		t.Parallel()

		_, err := event.Decode[greeting](event.Response{ID: "1"})
		assert.Error(t, err)
	})

	t.Run("mismatched payload", func(t *testing.T) {
		t.Parallel()

		_, err := event.Decode[greeting](mustResponse(t, "1", `[1,2,3]`))
		assert.Error(t, err)
	})
}

func TestTypedHandler(t *testing.T) {
	t.Parallel()

	t.Run("passes decoded events and commit", func(t *testing.T) {
		t.Parallel()

		var committed []string
		commit := func(_ context.Context, ids []string) (int, error) {
			committed = ids
			return len(ids), nil
		}

		handler := event.TypedHandler(func(ctx context.Context, events []event.TypedEvent[greeting], commit event.CommitFunc) error {
			require.Len(t, events, 2)
			assert.Equal(t, "hello", events[0].Payload.Msg)
			assert.Equal(t, "world", events[1].Payload.Msg)
			_, err := commit(ctx, event.IDs(event.Responses(events)))
			return err
		})

		err := handler(context.Background(), []event.Response{
			mustResponse(t, "1", `{"msg":"hello"}`),
			mustResponse(t, "2", `{"msg":"world"}`),
		}, commit)
		require.NoError(t, err)
		assert.Equal(t, []string{"1", "2"}, committed)
	})

	t.Run("decode failure skips the handler", func(t *testing.T) {
		t.Parallel()

		called := false
		handler := event.TypedHandler(func(context.Context, []event.TypedEvent[greeting], event.CommitFunc) error {
			called = true
			return nil
		})

		err := handler(context.Background(), []event.Response{mustResponse(t, "1", `"oops"`)}, noopCommit)
		assert.Error(t, err)
		assert.False(t, called)
	})
}

func TestDecorate(t *testing.T) {
	t.Parallel()

	t.Run("first decorator runs outermost", func(t *testing.T) {
		t.Parallel()

		var order []string
		mark := func(name string) event.Decorator {
			return func(next event.HandlerFunc) event.HandlerFunc {
				return func(ctx context.Context, events []event.Response, commit event.CommitFunc) error {
					order = append(order, name)
					return next(ctx, events, commit)
				}
			}
		}

		h := event.Decorate(func(context.Context, []event.Response, event.CommitFunc) error {
			order = append(order, "handler")
			return nil
		}, mark("a"), mark("b"))

		require.NoError(t, h(context.Background(), nil, noopCommit))
		assert.Equal(t, []string{"a", "b", "handler"}, order)
	})

	t.Run("recover turns panic into error", func(t *testing.T) {
		t.Parallel()

		h := event.Decorate(func(context.Context, []event.Response, event.CommitFunc) error {
			panic("boom")
		}, event.Recover())

		err := h(context.Background(), nil, noopCommit)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("timeout bounds handler context", func(t *testing.T) {
		t.Parallel()

		h := event.Decorate(func(ctx context.Context, _ []event.Response, _ event.CommitFunc) error {
			<-ctx.Done()
			return ctx.Err()
		}, event.Timeout(20*time.Millisecond))

		err := h(context.Background(), nil, noopCommit)
		assert.True(t, errors.Is(err, context.DeadlineExceeded))
	})
}
