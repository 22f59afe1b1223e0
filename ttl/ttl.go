// Package ttl provides functionality for managing time-to-live (TTL) values in the cache.
// It includes utilities for validating TTL durations, calculating expiration times,
// and checking if entries have expired against an explicit clock.
package ttl

import (
	"time"

	"github.com/gozephyr/snapcache/errors"
)

// NoExpiry is the TTL value meaning an entry never expires.
const NoExpiry time.Duration = 0

// Config represents configuration for TTL behavior
type Config struct {
	// DefaultTTL is applied when an operation does not specify its own TTL.
	// Zero means entries never expire by default.
	DefaultTTL time.Duration
}

// DefaultConfig returns the default TTL configuration
func DefaultConfig() Config {
	return Config{DefaultTTL: NoExpiry}
}

// Validate validates a TTL value. Only negative durations are invalid;
// zero means no expiry.
func Validate(ttl time.Duration) error {
	if ttl < 0 {
		return errors.WrapError("Validate", nil, errors.ErrInvalidTTL)
	}
	return nil
}

// ExpiryTime calculates the expiration time for a TTL value relative to now.
// A zero TTL yields the zero time, meaning no expiration.
func ExpiryTime(now time.Time, ttl time.Duration) time.Time {
	if ttl == NoExpiry {
		return time.Time{}
	}
	return now.Add(ttl)
}

// Expired reports whether an expiration time has passed relative to now.
// The zero expiration time never expires.
func Expired(expiresAt, now time.Time) bool {
	if expiresAt.IsZero() {
		return false
	}
	return now.After(expiresAt)
}
