package store

import (
	"context"
	"sync"
	"time"

	"github.com/theirongolddev/lifeplan/internal/projection"
)

type memoryEntry struct {
	sol     projection.Solution
	expires time.Time
}

// MemoryCache keeps answers in process memory, for the server and tests.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryCache returns an empty cache. A zero ttl never expires entries.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (projection.Solution, bool, error) {
	m.mu.RLock()
	e, ok := m.data[key]
	m.mu.RUnlock()
	if !ok || (!e.expires.IsZero() && m.now().After(e.expires)) {
		return projection.Solution{}, false, nil
	}
	return e.sol, true, nil
}

func (m *MemoryCache) Put(_ context.Context, key string, sol projection.Solution) error {
	e := memoryEntry{sol: sol}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.mu.Lock()
	m.data[key] = e
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryCache) Close() error { return nil }
