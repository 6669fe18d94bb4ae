// Package cache implements the in-memory TTL store for built bundles.
package cache

import (
	"sync"
	"time"

	"go.trai.ch/bundler/internal/core/domain"
	"go.trai.ch/bundler/internal/core/ports"
)

var _ ports.BundleCache = (*Store)(nil)

// Store holds built artifacts keyed by case-insensitive bundle key.
// Expired entries are evicted lazily when they are read.
type Store struct {
	mu      sync.RWMutex
	entries map[string]domain.CacheEntry
	epochs  map[string]uint64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		entries: make(map[string]domain.CacheEntry),
		epochs:  make(map[string]uint64),
	}
}

// TryGet returns the artifact stored under key if it has not expired.
func (s *Store) TryGet(key string) (domain.Artifact, bool) {
	key = domain.CanonicalKey(key)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return domain.Artifact{}, false
	}
	if !entry.Expired(time.Now()) {
		return entry.Artifact, true
	}

	s.mu.Lock()
	// Re-check under the write lock: a concurrent Set may have replaced the entry.
	if current, ok := s.entries[key]; ok && current.Expired(time.Now()) {
		delete(s.entries, key)
	}
	s.mu.Unlock()

	return domain.Artifact{}, false
}

// Set stores artifact under key, replacing any previous entry.
func (s *Store) Set(key string, artifact domain.Artifact, ttl time.Duration) {
	key = domain.CanonicalKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = domain.CacheEntry{
		Artifact:  artifact,
		ExpiresAt: time.Now().Add(ttl),
	}
}

// Invalidate removes key. Builds that read the epoch before this call can no
// longer store their result through SetAt.
func (s *Store) Invalidate(key string) {
	key = domain.CanonicalKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	s.epochs[key]++
}

// Epoch returns the invalidation counter of key.
func (s *Store) Epoch(key string) uint64 {
	key = domain.CanonicalKey(key)

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.epochs[key]
}

// SetAt stores artifact only if key was not invalidated after epoch was read.
// It reports whether the artifact was stored.
func (s *Store) SetAt(key string, artifact domain.Artifact, ttl time.Duration, epoch uint64) bool {
	key = domain.CanonicalKey(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.epochs[key] != epoch {
		return false
	}
	s.entries[key] = domain.CacheEntry{
		Artifact:  artifact,
		ExpiresAt: time.Now().Add(ttl),
	}
	return true
}

// Len returns the number of stored entries, including expired ones not yet evicted.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}

// Clear removes every entry and advances every known epoch.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key := range s.entries {
		s.epochs[key]++
	}
	clear(s.entries)
}
