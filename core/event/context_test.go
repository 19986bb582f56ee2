package event_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/pubsub/core/event"
)

func TestSourceContext(t *testing.T) {
	t.Parallel()

	_, ok := event.SourceFromContext(context.Background())
	assert.False(t, ok)

	src := event.Source{Org: "org", Topic: "topic", Subscription: "sub"}
	got, ok := event.SourceFromContext(event.WithSource(context.Background(), src))
	assert.True(t, ok)
	assert.Equal(t, src, got)
}

func TestReadTimeContext(t *testing.T) {
	t.Parallel()

	assert.True(t, event.ReadTime(context.Background()).IsZero())

	now := time.Now()
	assert.Equal(t, now, event.ReadTime(event.WithReadTime(context.Background(), now)))
}
