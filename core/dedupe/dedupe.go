package dedupe

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrymomot/pubsub/core/event"
)

// ErrStore wraps failures of the underlying store.
var ErrStore = errors.New("dedupe store failed")

// Store remembers processed event keys for a limited time.
type Store interface {
	// Seen reports, for every key, whether it was marked before.
	Seen(ctx context.Context, keys []string) ([]bool, error)
	// Mark records keys as processed.
	Mark(ctx context.Context, keys []string) error
}

// Scope builds the key prefix for a subscription.
// Event identifiers are only unique within the subscription they were read from.
func Scope(org, topic, sub string) string {
	return strings.Join([]string{org, topic, sub}, "/")
}

// Handler filters redelivered events before they reach next.
//
// Events already marked for scope are committed directly and not passed on.
// next receives a commit function that marks every id it is given, even when
// the commit itself fails, so a batch whose commit response was lost is not
// processed twice. Events next leaves uncommitted stay unmarked and reach it
// again on redelivery.
// An empty scope is derived from the batch source in the context.
func Handler(store Store, scope string, next event.HandlerFunc) event.HandlerFunc {
	return func(ctx context.Context, events []event.Response, commit event.CommitFunc) error {
		sc := scope
		if sc == "" {
			if src, ok := event.SourceFromContext(ctx); ok {
				sc = Scope(src.Org, src.Topic, src.Subscription)
			}
		}

		seen, err := store.Seen(ctx, keys(sc, event.IDs(events)))
		if err != nil {
			return errors.Join(ErrStore, err)
		}

		fresh := make([]event.Response, 0, len(events))
		var duplicates []string
		for i, e := range events {
			if seen[i] {
				duplicates = append(duplicates, e.ID)
				continue
			}
			fresh = append(fresh, e)
		}

		if len(duplicates) > 0 {
			if _, err := commit(ctx, duplicates); err != nil {
				return err
			}
		}

		if len(fresh) == 0 {
			return nil
		}

		return next(ctx, fresh, markCommitted(store, sc, commit))
	}
}

// markCommitted wraps commit so that the ids passed to it are marked in store.
func markCommitted(store Store, scope string, commit event.CommitFunc) event.CommitFunc {
	return func(ctx context.Context, ids []string) (int, error) {
		n, err := commit(ctx, ids)
		if len(ids) == 0 {
			return n, err
		}
		if markErr := store.Mark(ctx, keys(scope, ids)); markErr != nil {
			return n, errors.Join(err, ErrStore, markErr)
		}
		return n, err
	}
}

func keys(scope string, ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = scope + "/" + id
	}
	return out
}
