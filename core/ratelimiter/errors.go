package ratelimiter

import "errors"

// Package-level error definitions for rate limiter operations.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrUnknownEndpoint  = errors.New("unknown endpoint")
	ErrStoreUnavailable = errors.New("store unavailable")
)
