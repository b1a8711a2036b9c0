// Package resilience provides the primitives that keep unreliable upstream
// providers from surfacing as failures: deadline-bounded invocation, bounded
// retry with linear backoff, all-or-nothing concurrent fan-out, and ordered
// multi-provider fallback chains.
//
// The primitives compose. A composite generation is a FanOut whose members run
// through Invoke, wrapped as one unit in Retry; image sourcing is a Chain whose
// candidates run through Invoke and whose terminal provider is a deterministic
// placeholder that cannot fail.
//
//	sections, err := resilience.Retry(ctx, 2, time.Second,
//		func(ctx context.Context) (map[string]string, error) {
//			return resilience.FanOut(ctx, 15*time.Second, ops)
//		})
//
// Error classification drives the control flow: timeouts and provider failures
// are retriable, rate-limit and credential errors short-circuit, and exhausted
// budgets surface as ErrExhausted for the orchestrator to convert into a
// degraded response.
package resilience
