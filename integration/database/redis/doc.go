// Package redis provides Redis client initialization and health checking for
// the shared cache and rate-limit stores.
//
// Connect validates the connection URL, establishes the client with
// exponential-backoff retries, and verifies connectivity with a ping before
// returning. Both redis:// and rediss:// (TLS) schemes are supported.
//
//	client, err := redis.Connect(ctx, redis.Config{
//		ConnectionURL:  "redis://localhost:6379/0",
//		RetryAttempts:  3,
//		RetryInterval:  5 * time.Second,
//		ConnectTimeout: 30 * time.Second,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
// Healthcheck wraps the client in a probe function for readiness endpoints.
package redis
