package snapcache

import (
	"time"

	"github.com/gozephyr/snapcache/ttl"
)

// Entry represents a cached value with metadata
type Entry[V any] struct {
	Key        string    `json:"key"`
	Value      V         `json:"value"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at,omitzero"`
	LastAccess time.Time `json:"last_access"`
}

// newEntry builds an entry as of now. ExpiresAt stays zero when the
// resolved TTL is NoExpiry; it is fixed at creation and never recomputed.
func newEntry[V any](key string, value V, now time.Time, d time.Duration) *Entry[V] {
	return &Entry[V]{
		Key:        key,
		Value:      value,
		CreatedAt:  now,
		ExpiresAt:  ttl.ExpiryTime(now, d),
		LastAccess: now,
	}
}

// Expired reports whether the entry's TTL has elapsed as of now.
func (e *Entry[V]) Expired(now time.Time) bool {
	return ttl.Expired(e.ExpiresAt, now)
}
