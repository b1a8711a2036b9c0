package client

import "errors"

// Terminal error classes the caller can branch on with errors.Is. A raw
// transport error never escapes this package unclassified.
var (
	// ErrRateLimited is re-raised immediately, without retrying: the server
	// already said "too many requests".
	ErrRateLimited = errors.New("rate limited by server")

	// ErrUnavailable covers connectivity failures and server errors that
	// survived the retry budget.
	ErrUnavailable = errors.New("service unavailable")

	// ErrUnexpected covers everything else: malformed responses, rejected
	// requests, programming mistakes.
	ErrUnexpected = errors.New("unexpected client error")
)
