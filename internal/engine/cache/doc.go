// Package cache memoizes computed chart and scorecard responses in memory
// with TTL expiration.
//
// The dataset is read-only after startup, so a response depends only on the
// request inputs. Keys are SHA256 hashes of a canonical JSON encoding of those
// inputs. Entries expire after a configurable TTL (default 5 minutes); a TTL
// of zero disables the cache. The store is safe for concurrent use.
package cache
