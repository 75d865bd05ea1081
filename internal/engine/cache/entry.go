package cache

import (
	"encoding/json"
	"time"
)

// Entry is a single cached response with TTL metadata.
type Entry struct {
	// Key is the SHA256 hash of the request inputs.
	Key string `json:"key"`

	// Data is the cached JSON response body.
	Data json.RawMessage `json:"data"`

	// CreatedAt is when the entry was stored.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the entry stops being served.
	ExpiresAt time.Time `json:"expires_at"`
}

// newEntry stamps an entry created at now that lives for ttl.
func newEntry(key string, data json.RawMessage, now time.Time, ttl time.Duration) *Entry {
	return &Entry{
		Key:       key,
		Data:      data,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// ExpiredAt reports whether the entry has expired at the given time.
func (e *Entry) ExpiredAt(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Age returns how long the entry had existed at now.
func (e *Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.CreatedAt)
}

// Remaining returns the time left before expiry at now, or 0 once expired.
func (e *Entry) Remaining(now time.Time) time.Duration {
	if d := e.ExpiresAt.Sub(now); d > 0 {
		return d
	}
	return 0
}
