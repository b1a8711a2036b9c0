// Package health provides liveness and readiness HTTP handlers.
//
// Liveness reports only that the process runs; Readiness additionally runs
// every dependency probe and answers 503 when one fails:
//
//	r.Get("/healthz", health.Liveness())
//	r.Get("/readyz", health.Readiness(log,
//		redis.Healthcheck(client),
//		limiterStore.Healthcheck,
//	))
package health
