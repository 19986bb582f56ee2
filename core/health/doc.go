// Package health exposes liveness and readiness probes for consumer processes.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All checks pass, e.g. consumers are polling and Redis answers
//
// Usage:
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("GET /health/live", health.Liveness)
//	mux.Handle("GET /health/ready", health.Readiness(log,
//		ordersConsumer.Healthcheck,
//		redis.Healthcheck(rdb),
//	))
//
// Checks follow the func(context.Context) error signature and can also be
// evaluated directly with Run.
package health
