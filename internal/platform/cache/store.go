package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

func (e entry[V]) live(now time.Time) bool {
	return e.expiresAt.IsZero() || e.expiresAt.After(now)
}

// Store is a process-local TTL cache. Loads for the same key are coalesced,
// and failed loads are never cached.
type Store[V any] struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	flight     singleflight.Group

	mu      sync.RWMutex
	entries map[string]entry[V]
}

// NewStore creates an unbounded store. A ttl <= 0 keeps entries until deleted.
func NewStore[V any](ttl time.Duration) *Store[V] {
	return NewBoundedStore[V](ttl, 0)
}

// NewBoundedStore creates a store holding at most maxEntries keys. When full,
// expired entries go first, then the one closest to expiry. A maxEntries <= 0
// means no bound.
func NewBoundedStore[V any](ttl time.Duration, maxEntries int) *Store[V] {
	return &Store[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]entry[V]),
	}
}

func (s *Store[V]) Get(_ context.Context, key string) (V, bool) {
	var zero V
	if key == "" {
		return zero, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	switch {
	case !ok:
		return zero, false
	case e.live(now):
		return e.value, true
	}

	s.mu.Lock()
	if current, still := s.entries[key]; still && !current.live(now) {
		delete(s.entries, key)
	}
	s.mu.Unlock()
	return zero, false
}

func (s *Store[V]) Set(_ context.Context, key string, value V) {
	if key == "" {
		return
	}

	now := s.now()
	e := entry[V]{value: value}
	if s.ttl > 0 {
		e.expiresAt = now.Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictLocked(now)
	}
	s.entries[key] = e
}

func (s *Store[V]) Delete(_ context.Context, key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store[V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// evictLocked frees at least one slot. Callers hold s.mu.
func (s *Store[V]) evictLocked(now time.Time) {
	var (
		victim   string
		earliest time.Time
	)
	for key, e := range s.entries {
		if !e.live(now) {
			delete(s.entries, key)
			continue
		}
		if victim == "" || (!e.expiresAt.IsZero() && (earliest.IsZero() || e.expiresAt.Before(earliest))) {
			victim, earliest = key, e.expiresAt
		}
	}
	if len(s.entries) >= s.maxEntries && victim != "" {
		delete(s.entries, victim)
	}
}

func (s *Store[V]) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	if loader == nil {
		return zero, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	out, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}

	value, ok := out.(V)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds unexpected type %T", key, out)
	}
	return value, nil
}
