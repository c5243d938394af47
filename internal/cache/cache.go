// Package cache is a small typed wrapper over go-cache used to memoize rendered
// styles between registry reloads.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/stylekit/internal/log"
)

const (
	DefaultExpiration      = 10 * time.Minute
	DefaultCleanupInterval = 30 * time.Minute
)

// Store is an in-memory, expiring cache of V values keyed by string.
type Store[V any] struct {
	name  string
	ttl   time.Duration
	cache *gocache.Cache
}

// New creates a store. A non-positive ttl uses DefaultExpiration.
func New[V any](name string, ttl time.Duration) *Store[V] {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &Store[V]{
		name:  name,
		ttl:   ttl,
		cache: gocache.New(ttl, DefaultCleanupInterval),
	}
}

// Get returns the cached value for key.
func (s *Store[V]) Get(key string) (V, bool) {
	var zero V

	value, found := s.cache.Get(key)
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", s.name, "key", key)
		return zero, false
	}
	return v, true
}

// Set stores value under key with the store's ttl.
func (s *Store[V]) Set(key string, value V) {
	s.cache.Set(key, value, s.ttl)
}

// GetOrLoad returns the cached value or computes, stores and returns it.
// Errors are returned without caching.
func (s *Store[V]) GetOrLoad(key string, load func() (V, error)) (V, error) {
	if v, ok := s.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	s.Set(key, v)
	return v, nil
}

// Flush removes every entry.
func (s *Store[V]) Flush() {
	n := s.cache.ItemCount()
	s.cache.Flush()
	log.Debug(log.CatCache, "cache flushed", "cache", s.name, "entries", n)
}

// Len returns the number of entries, including expired ones not yet cleaned up.
func (s *Store[V]) Len() int {
	return s.cache.ItemCount()
}
