package event

import (
	"encoding/json"
	"fmt"
	"time"
)

// Topic is a named channel events are published to.
type Topic struct {
	ID             string `json:"id"`             // Service-assigned identifier
	Name           string `json:"name"`           // Display name
	OrganizationID string `json:"organizationId"` // Owning organization
}

// Subscription is a named cursor over a Topic from which events are read and committed.
type Subscription struct {
	ID      string `json:"id"`      // Service-assigned identifier
	Name    string `json:"name"`    // Display name
	TopicID string `json:"topicId"` // Non-owning reference to the Topic
}

// PublishRequest carries an opaque payload to be published.
// It has no identity until the service accepts it.
type PublishRequest struct {
	Data any `json:"data"`
}

// NewPublishRequest wraps data into a PublishRequest.
//
// Example:
//
//	req := event.NewPublishRequest(map[string]string{"msg": "hello"})
//	n, err := client.Publish(ctx, "org", "topic", []event.PublishRequest{req})
func NewPublishRequest(data any) PublishRequest {
	return PublishRequest{Data: data}
}

// Response is an event read from a subscription.
// ID is only meaningful for the (org, topic, subscription) it was read from.
type Response struct {
	ID        string          `json:"id"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
}

// NewResponse builds a Response from its wire representation.
// createdAt must be an ISO-8601 timestamp; anything else is rejected.
func NewResponse(id string, data json.RawMessage, createdAt string) (Response, error) {
	ts, err := parseTimestamp(createdAt)
	if err != nil {
		return Response{}, err
	}

	return Response{
		ID:        id,
		Data:      data,
		CreatedAt: ts,
	}, nil
}

// UnmarshalJSON decodes the wire record {id, data, createdAt}.
func (r *Response) UnmarshalJSON(b []byte) error {
	var rec struct {
		ID        string          `json:"id"`
		Data      json.RawMessage `json:"data"`
		CreatedAt string          `json:"createdAt"`
	}
	if err := json.Unmarshal(b, &rec); err != nil {
		return err
	}

	resp, err := NewResponse(rec.ID, rec.Data, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("event %q: %w", rec.ID, err)
	}

	*r = resp
	return nil
}

// IDs returns the identifiers of a batch in batch order.
func IDs(batch []Response) []string {
	ids := make([]string, 0, len(batch))
	for _, e := range batch {
		ids = append(ids, e.ID)
	}
	return ids
}

func parseTimestamp(s string) (time.Time, error) {
	// RFC3339Nano also accepts timestamps without fractional seconds.
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
	}
	return ts, nil
}
