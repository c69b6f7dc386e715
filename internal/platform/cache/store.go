// Package cache provides a small in-process TTL cache for sync and standings
// responses. Entries are evicted lazily on read; there is no janitor.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oguzatak/lig-takip/internal/platform/resilience"
)

type entry struct {
	value    any
	deadline int64
}

// Store is safe for concurrent use. A nil *Store is valid and caches nothing,
// so callers can wire it conditionally without guarding every call.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight
	nowFn   func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		nowFn:   time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if s == nil || key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if e.deadline > 0 && s.nowFn().UnixNano() >= e.deadline {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.deadline == e.deadline {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if s == nil || key == "" {
		return
	}

	var deadline int64
	if s.ttl > 0 {
		deadline = s.nowFn().Add(s.ttl).UnixNano()
	}

	s.mu.Lock()
	s.entries[key] = entry{value: value, deadline: deadline}
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, loading it at most once across
// concurrent callers when absent or expired.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("cache loader is required")
	}
	if s == nil || key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		// A concurrent loader may have filled the entry while we queued.
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
		return nil, err
	}
	return value, nil
}
