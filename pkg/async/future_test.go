package async_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubsub/pkg/async"
)

func double(_ context.Context, n int) (int, error) {
	return n * 2, nil
}

func TestAsync(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()

		v, err := async.Async(context.Background(), 21, double).Await()
		require.NoError(t, err)
		assert.Equal(t, 42, v)
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		_, err := async.Async(context.Background(), "x", func(context.Context, string) (string, error) {
			return "", boom
		}).Await()
		assert.ErrorIs(t, err, boom)
	})

	t.Run("canceled context skips execution", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		called := false
		_, err := async.Async(ctx, 1, func(context.Context, int) (int, error) {
			called = true
			return 0, nil
		}).Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, called)
	})

	t.Run("recovers panic", func(t *testing.T) {
		t.Parallel()

		_, err := async.Async(context.Background(), 1, func(context.Context, int) (int, error) {
			panic("kaboom")
		}).Await()
		assert.ErrorIs(t, err, async.ErrPanic)
		assert.Contains(t, err.Error(), "kaboom")
	})
}

func TestFuture_AwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Async(context.Background(), 1, func(_ context.Context, n int) (int, error) {
		<-release
		return n, nil
	})

	_, err := f.AwaitWithTimeout(20 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, f.IsComplete())

	close(release)
	v, err := f.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.True(t, f.IsComplete())
}

func TestResolved(t *testing.T) {
	t.Parallel()

	f := async.Resolved(7, nil)
	assert.True(t, f.IsComplete())

	select {
	case <-f.Done():
	default:
		t.Fatal("resolved future must be done")
	}

	v, err := f.Await()
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestWaitAll(t *testing.T) {
	t.Parallel()

	t.Run("collects results in order", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		results, err := async.WaitAll(
			async.Async(ctx, 1, double),
			async.Async(ctx, 2, double),
			async.Async(ctx, 3, double),
		)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 4, 6}, results)
	})

	t.Run("returns first error", func(t *testing.T) {
		t.Parallel()

		first := errors.New("first")
		second := errors.New("second")
		_, err := async.WaitAll(
			async.Resolved(1, nil),
			async.Resolved(0, first),
			async.Resolved(0, second),
		)
		assert.ErrorIs(t, err, first)
	})
}

func TestWaitAny(t *testing.T) {
	t.Parallel()

	t.Run("returns first completed", func(t *testing.T) {
		t.Parallel()

		block := make(chan struct{})
		defer close(block)

		slow := async.Async(context.Background(), 1, func(_ context.Context, n int) (int, error) {
			<-block
			return n, nil
		})

		idx, v, err := async.WaitAny(slow, async.Resolved(2, nil))
		require.NoError(t, err)
		assert.Equal(t, 1, idx)
		assert.Equal(t, 2, v)
	})

	t.Run("no futures", func(t *testing.T) {
		t.Parallel()

		idx, _, err := async.WaitAny[int]()
		assert.Equal(t, -1, idx)
		assert.ErrorIs(t, err, async.ErrNoFutures)
	})
}
