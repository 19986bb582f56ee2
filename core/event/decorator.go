package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Decorator wraps a batch handler to add cross-cutting functionality.
// It follows the same pattern as HTTP middleware.
type Decorator func(HandlerFunc) HandlerFunc

// Decorate applies decorators to a handler. The first decorator becomes the
// outermost wrapper and runs first.
//
// Example:
//
//	handler := event.Decorate(myHandler,
//	    event.Recover(),
//	    event.Timeout(30*time.Second),
//	)
func Decorate(fn HandlerFunc, decorators ...Decorator) HandlerFunc {
	for i := len(decorators) - 1; i >= 0; i-- {
		fn = decorators[i](fn)
	}
	return fn
}

// Recover converts a panic inside the handler into an error.
func Recover() Decorator {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, events []Response, commit CommitFunc) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("panic in events handler: %v", r)
				}
			}()
			return next(ctx, events, commit)
		}
	}
}

// Timeout bounds the handler's context. The handler must honour ctx for the
// bound to take effect on its own work; commits made with ctx are bounded too.
func Timeout(d time.Duration) Decorator {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, events []Response, commit CommitFunc) error {
			ctx, cancel := context.WithTimeout(ctx, d)
			defer cancel()
			return next(ctx, events, commit)
		}
	}
}

// Logging records batch size, duration and outcome of each handler call.
func Logging(log *slog.Logger) Decorator {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, events []Response, commit CommitFunc) error {
			start := time.Now()
			err := next(ctx, events, commit)
			if err != nil {
				log.ErrorContext(ctx, "events handler failed",
					slog.Int("batch_size", len(events)),
					slog.Duration("duration", time.Since(start)),
					slog.String("error", err.Error()))
				return err
			}
			log.DebugContext(ctx, "events handler completed",
				slog.Int("batch_size", len(events)),
				slog.Duration("duration", time.Since(start)))
			return nil
		}
	}
}
