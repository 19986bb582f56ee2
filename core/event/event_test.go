package event_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pubsub/core/event"
)

func TestNewResponse(t *testing.T) {
	t.Parallel()

	t.Run("builds response from wire values", func(t *testing.T) {
		t.Parallel()

		resp, err := event.NewResponse("1", json.RawMessage(`{"msg":"hello"}`), "2025-07-01T00:00:00Z")
		require.NoError(t, err)

		assert.Equal(t, "1", resp.ID)
		assert.JSONEq(t, `{"msg":"hello"}`, string(resp.Data))
		assert.True(t, resp.CreatedAt.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	})

	t.Run("accepts fractional seconds and offsets", func(t *testing.T) {
		t.Parallel()

		resp, err := event.NewResponse("2", nil, "2025-07-01T02:00:00.123+02:00")
		require.NoError(t, err)

		want := time.Date(2025, 7, 1, 0, 0, 0, 123_000_000, time.UTC)
		assert.True(t, resp.CreatedAt.Equal(want))
	})

	t.Run("rejects invalid timestamps", func(t *testing.T) {
		t.Parallel()

		for _, ts := range []string{"", "yesterday", "2025-07-01", "01/07/2025 00:00"} {
			_, err := event.NewResponse("3", nil, ts)
			require.Error(t, err, ts)
			assert.ErrorIs(t, err, event.ErrInvalidTimestamp)
		}
	})
}

func TestResponse_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes batch in server order", func(t *testing.T) {
		t.Parallel()

		body := `[
			{"id":"b","data":{"n":2},"createdAt":"2025-07-01T00:00:01Z"},
			{"id":"a","data":"plain","createdAt":"2025-07-01T00:00:00Z"}
		]`

		var batch []event.Response
		require.NoError(t, json.Unmarshal([]byte(body), &batch))
		require.Len(t, batch, 2)

		assert.Equal(t, []string{"b", "a"}, event.IDs(batch))
		assert.JSONEq(t, `{"n":2}`, string(batch[0].Data))
		assert.JSONEq(t, `"plain"`, string(batch[1].Data))
	})

	t.Run("invalid timestamp fails the whole batch", func(t *testing.T) {
		t.Parallel()

		body := `[{"id":"x","data":1,"createdAt":"not-a-date"}]`

		var batch []event.Response
		err := json.Unmarshal([]byte(body), &batch)
		require.Error(t, err)
		assert.ErrorIs(t, err, event.ErrInvalidTimestamp)
	})
}

func TestPublishRequest_MarshalJSON(t *testing.T) {
	t.Parallel()

	reqs := []event.PublishRequest{
		event.NewPublishRequest("msg"),
		event.NewPublishRequest(map[string]int{"n": 1}),
	}

	b, err := json.Marshal(reqs)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"data":"msg"},{"data":{"n":1}}]`, string(b))
}

func TestIDs_EmptyBatch(t *testing.T) {
	t.Parallel()

	ids := event.IDs(nil)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)
}

func TestTopicAndSubscriptionJSON(t *testing.T) {
	t.Parallel()

	var topic event.Topic
	require.NoError(t, json.Unmarshal([]byte(`{"id":"t1","name":"orders","organizationId":"o1"}`), &topic))
	assert.Equal(t, event.Topic{ID: "t1", Name: "orders", OrganizationID: "o1"}, topic)

	var sub event.Subscription
	require.NoError(t, json.Unmarshal([]byte(`{"id":"s1","name":"billing","topicId":"t1"}`), &sub))
	assert.Equal(t, event.Subscription{ID: "s1", Name: "billing", TopicID: "t1"}, sub)
}
