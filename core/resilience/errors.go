package resilience

import "errors"

// Error taxonomy shared by the orchestration primitives. Transient classes
// are absorbed by Retry and Chain; only ErrExhausted and ErrRateLimited are
// meant to cross the orchestrator boundary.
var (
	// ErrRateLimited marks admission denials and provider 429-class failures.
	// Never retried, neither server- nor client-side.
	ErrRateLimited = errors.New("rate limited")

	// ErrUpstreamTimeout marks a call that exceeded its deadline. Retriable.
	ErrUpstreamTimeout = errors.New("upstream timeout")

	// ErrUpstreamError marks a provider failure status. Retriable up to budget.
	ErrUpstreamError = errors.New("upstream error")

	// ErrUnauthorized marks credential failures. Fatal and reported, never retried.
	ErrUnauthorized = errors.New("unauthorized upstream credentials")

	// ErrIncompleteResult marks a fan-out group that partially succeeded.
	// The whole group is treated as one failed, retriable attempt.
	ErrIncompleteResult = errors.New("incomplete composite result")

	// ErrEmptyResult marks a provider that answered successfully but with
	// nothing usable, moving a fallback chain to its next candidate.
	ErrEmptyResult = errors.New("empty result")

	// ErrExhausted marks a fully consumed retry or fallback budget. Terminal:
	// the caller must degrade, never rethrow.
	ErrExhausted = errors.New("all attempts exhausted")
)

// Retriable reports whether err is worth another attempt. Rate-limit and
// credential failures are terminal: retrying against a provider that already
// said "too many requests" or rejected the key only burns budget.
func Retriable(err error) bool {
	return err != nil &&
		!errors.Is(err, ErrRateLimited) &&
		!errors.Is(err, ErrUnauthorized)
}
