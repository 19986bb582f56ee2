package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubsub/core/event"
)

func TestUniformBackOff(t *testing.T) {
	t.Parallel()

	t.Run("stays below max", func(t *testing.T) {
		t.Parallel()

		b := &uniformBackOff{max: 10 * time.Millisecond, rnd: func(n int64) int64 { return n - 1 }}
		for range 10 {
			d := b.NextBackOff()
			assert.GreaterOrEqual(t, d, time.Duration(0))
			assert.Less(t, d, 10*time.Millisecond)
		}
	})

	t.Run("zero max never waits", func(t *testing.T) {
		t.Parallel()

		b := &uniformBackOff{rnd: func(int64) int64 { panic("must not be called") }}
		assert.Equal(t, time.Duration(0), b.NextBackOff())
	})
}

func TestWithRetries(t *testing.T) {
	t.Parallel()

	newClient := func(t *testing.T, maxRetries int) *Client {
		t.Helper()
		c, err := New("http://localhost", WithMaxRetries(maxRetries), WithRetryWait(time.Millisecond))
		require.NoError(t, err)
		return c
	}

	t.Run("permanent errors stop immediately", func(t *testing.T) {
		t.Parallel()

		calls := 0
		boom := errors.New("boom")
		_, err := withRetries(context.Background(), newClient(t, 3), "test", func() (int, error) {
			calls++
			return 0, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("transient errors use the full budget", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := withRetries(context.Background(), newClient(t, 2), "test", func() (int, error) {
			calls++
			return 0, event.ErrServerError
		})
		assert.ErrorIs(t, err, event.ErrServerError)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns value on success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		v, err := withRetries(context.Background(), newClient(t, 3), "test", func() (string, error) {
			calls++
			if calls < 2 {
				return "", event.ErrConflict
			}
			return "ok", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "ok", v)
		assert.Equal(t, 2, calls)
	})
}
