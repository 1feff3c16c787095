// Package ratelimit implements fixed-window rate limiting behind a
// pluggable counter store.
package ratelimit

import (
	"context"
	"time"
)

// Store counts requests per key inside a fixed window. Implementations
// must start the window on the first increment of a key and expire the
// whole key when the window passes.
type Store interface {
	// Increment bumps the counter for key and returns the new count
	// together with the time left in the current window.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, ttl time.Duration, err error)
	// Reset clears the counter for key.
	Reset(ctx context.Context, key string) error
}

// Tier names used for keys, logs and response codes.
const (
	TierGeneral = "general"
	TierStrict  = "strict"
	TierAuth    = "auth"
)

// Machine-readable codes returned on 429 responses, one per tier.
const (
	CodeGeneral = "RATE_LIMIT_EXCEEDED"
	CodeStrict  = "STRICT_RATE_LIMIT_EXCEEDED"
	CodeAuth    = "AUTH_RATE_LIMIT_EXCEEDED"
)
