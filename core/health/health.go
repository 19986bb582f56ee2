package health

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/pubsub/core/logger"
)

// Check reports whether a dependency is usable.
// consumer.(*Consumer).Healthcheck and redis.Healthcheck have this shape.
type Check func(ctx context.Context) error

// Run executes every check and joins their errors.
func Run(ctx context.Context, checks ...Check) error {
	var errs []error
	for _, check := range checks {
		if check == nil {
			continue
		}
		if err := check(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Liveness indicates the process is running.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
// Example:
//
//	mux.HandleFunc("GET /health/live", health.Liveness)
func Liveness(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ALIVE"))
}

// Readiness verifies all checks pass.
// Returns "READY" if they do, 503 Service Unavailable otherwise.
//
// Example:
//
//	mux.Handle("GET /health/ready", health.Readiness(log,
//	    ordersConsumer.Healthcheck,
//	    redis.Healthcheck(rdb),
//	))
func Readiness(log *slog.Logger, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = logger.Discard()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")

		if err := Run(r.Context(), checks...); err != nil {
			log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(http.StatusText(http.StatusServiceUnavailable)))
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
