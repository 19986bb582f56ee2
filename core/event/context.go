package event

import (
	"context"
	"time"
)

// Source identifies the (org, topic, subscription) triple a batch was read from.
type Source struct {
	Org          string
	Topic        string
	Subscription string
}

type sourceCtx struct{}

// WithSource attaches the batch source to the context.
func WithSource(ctx context.Context, src Source) context.Context {
	return context.WithValue(ctx, sourceCtx{}, src)
}

// SourceFromContext extracts the batch source from the context.
// The second return value reports whether a source was present.
func SourceFromContext(ctx context.Context) (Source, bool) {
	src, ok := ctx.Value(sourceCtx{}).(Source)
	return src, ok
}

type readAtCtx struct{}

// WithReadTime attaches the time the batch was read to the context.
func WithReadTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, readAtCtx{}, t)
}

// ReadTime extracts the batch read time from the context.
// Returns zero time if not present.
func ReadTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(readAtCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}
