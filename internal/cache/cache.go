package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Store is an in-process query cache. Each entity collection is addressed by
// a key built from the entity name plus any filter parameters (see keys.go).
// Reads younger than their freshness window are served from memory; stale or
// missing keys are fetched through a singleflight group so concurrent reads
// for the same key share one in-flight request.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	group   singleflight.Group
	now     func() time.Time
}

type entry struct {
	value     any
	fetchedAt time.Time
	stale     bool
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source (used in tests)
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates an empty cache store
func New(opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read returns the value under key when it is younger than ttl and not marked
// stale; otherwise it invokes fetch, stores the result and returns it. A
// fetch failure leaves the store untouched.
func Read[T any](ctx context.Context, s *Store, key string, ttl time.Duration, fetch func(context.Context) (T, error)) (T, error) {
	if v, ok := fresh[T](s, key, ttl); ok {
		return v, nil
	}

	res, err, _ := s.group.Do(key, func() (any, error) {
		// A coalesced caller may arrive after the leader already stored
		// the result; re-check before fetching again.
		if v, ok := fresh[T](s, key, ttl); ok {
			return v, nil
		}

		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		s.Put(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := res.(T)
	if !ok {
		// Key collision across types; bypass the poisoned entry.
		return fetch(ctx)
	}
	return v, nil
}

func fresh[T any](s *Store, key string, ttl time.Duration) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || e.stale || s.now().Sub(e.fetchedAt) >= ttl {
		var zero T
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// Put stores value under key with the current time
func (s *Store) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, fetchedAt: s.now()}
}

// Invalidate marks the given keys stale, forcing a refetch on next read
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		if e, ok := s.entries[key]; ok {
			e.stale = true
			s.entries[key] = e
		}
	}
}

// InvalidatePrefix marks every key with the given prefix stale
func (s *Store) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, e := range s.entries {
		if hasPrefix(key, prefix) {
			e.stale = true
			s.entries[key] = e
		}
	}
}

// Drop removes keys entirely
func (s *Store) Drop(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.entries, key)
	}
}

// Apply rewrites the cached value under key in place. Missing or stale
// entries are left alone; the freshness timestamp is preserved so a rewrite
// does not extend the entry's lifetime.
func Apply[T any](s *Store, key string, fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || e.stale {
		return
	}
	v, ok := e.value.(T)
	if !ok {
		return
	}
	e.value = fn(v)
	s.entries[key] = e
}

// ApplyLists rewrites every cached list whose key starts with prefix.
// Used to propagate a single-entity mutation into all list views that
// contain it without refetching.
func ApplyLists[T any](s *Store, prefix string, fn func([]T) []T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, e := range s.entries {
		if e.stale || !hasPrefix(key, prefix) {
			continue
		}
		list, ok := e.value.([]T)
		if !ok {
			continue
		}
		e.value = fn(list)
		s.entries[key] = e
	}
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

// InsertSorted inserts v into items keeping the order defined by less
func InsertSorted[T any](items []T, v T, less func(a, b T) bool) []T {
	at := len(items)
	for i := range items {
		if less(v, items[i]) {
			at = i
			break
		}
	}
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:at]...)
	out = append(out, v)
	out = append(out, items[at:]...)
	return out
}

// Replace swaps every element matching match with v
func Replace[T any](items []T, match func(T) bool, v T) []T {
	out := make([]T, len(items))
	for i := range items {
		if match(items[i]) {
			out[i] = v
		} else {
			out[i] = items[i]
		}
	}
	return out
}

// Remove drops every element matching match
func Remove[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if !match(items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}
