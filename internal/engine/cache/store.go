package cache

import (
	"encoding/json"
	"errors"
	"sync"
	"time"
)

// Common cache errors.
var (
	ErrCacheNotFound   = errors.New("cache entry not found")
	ErrCacheExpired    = errors.New("cache entry expired")
	ErrInvalidCacheKey = errors.New("cache key cannot be empty")
	ErrCacheDisabled   = errors.New("cache is disabled")
)

// DefaultMaxEntries bounds a store created with a non-positive entry limit.
const DefaultMaxEntries = 1024

// MemoryStore is an in-memory TTL cache of JSON responses. Once it holds
// maxEntries entries, storing a new key first drops expired entries and then
// evicts the oldest one.
type MemoryStore struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.RWMutex
	entries map[string]*Entry
}

// NewMemoryStore creates a store whose entries live for ttlSeconds and that
// holds at most maxEntries entries (DefaultMaxEntries when maxEntries <= 0).
// A TTL of zero returns a disabled store.
func NewMemoryStore(ttlSeconds, maxEntries int) (*MemoryStore, error) {
	if err := ValidateTTL(ttlSeconds); err != nil {
		return nil, err
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryStore{
		ttl:        time.Duration(ttlSeconds) * time.Second,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]*Entry),
	}, nil
}

// MaxEntries returns the entry limit.
func (s *MemoryStore) MaxEntries() int {
	return s.maxEntries
}

// IsEnabled reports whether the store caches anything.
func (s *MemoryStore) IsEnabled() bool {
	return s != nil && s.ttl > 0
}

// TTL returns the entry lifetime.
func (s *MemoryStore) TTL() time.Duration {
	return s.ttl
}

// Get returns the live entry for key.
func (s *MemoryStore) Get(key string) (*Entry, error) {
	if !s.IsEnabled() {
		return nil, ErrCacheDisabled
	}
	if key == "" {
		return nil, ErrInvalidCacheKey
	}

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrCacheNotFound
	}
	if entry.ExpiredAt(s.now()) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur == entry {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, ErrCacheExpired
	}
	return entry, nil
}

// Set stores data under key, replacing any existing entry.
func (s *MemoryStore) Set(key string, data json.RawMessage) error {
	if !s.IsEnabled() {
		return ErrCacheDisabled
	}
	if key == "" {
		return ErrInvalidCacheKey
	}

	now := s.now()
	entry := newEntry(key, append(json.RawMessage(nil), data...), now, s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.makeRoomLocked(now)
	}
	s.entries[key] = entry
	return nil
}

// makeRoomLocked frees one slot: expired entries go first, otherwise the
// oldest entry is evicted. Callers hold s.mu.
func (s *MemoryStore) makeRoomLocked(now time.Time) {
	for key, entry := range s.entries {
		if entry.ExpiredAt(now) {
			delete(s.entries, key)
		}
	}
	if len(s.entries) < s.maxEntries {
		return
	}

	var oldest *Entry
	for _, entry := range s.entries {
		if oldest == nil || entry.CreatedAt.Before(oldest.CreatedAt) ||
			(entry.CreatedAt.Equal(oldest.CreatedAt) && entry.Key < oldest.Key) {
			oldest = entry
		}
	}
	if oldest != nil {
		delete(s.entries, oldest.Key)
	}
}

// CleanupExpired drops expired entries and returns how many were removed.
func (s *MemoryStore) CleanupExpired() int {
	if !s.IsEnabled() {
		return 0
	}

	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, entry := range s.entries {
		if entry.ExpiredAt(now) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored entries, expired ones included.
func (s *MemoryStore) Count() int {
	if !s.IsEnabled() {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
