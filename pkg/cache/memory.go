package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

type memoryCache struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time
}

// NewMemoryCache is a process-local Cache used when REDIS_ADDR is not set
// and in tests.
func NewMemoryCache() Cache {
	return &memoryCache{items: map[string]memoryEntry{}, now: time.Now}
}

func (m *memoryCache) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok || m.expired(e) {
		delete(m.items, key)
		return "", ErrCacheMiss
	}
	return e.value, nil
}

func (m *memoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = m.entry(value, ttl)
	return nil
}

func (m *memoryCache) SetNX(_ context.Context, key string, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.items[key]; ok && !m.expired(e) {
		return false, nil
	}
	m.items[key] = m.entry(value, ttl)
	return true, nil
}

func (m *memoryCache) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.items, k)
	}
	return nil
}

func (m *memoryCache) entry(value string, ttl time.Duration) memoryEntry {
	e := memoryEntry{value: value}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	return e
}

func (m *memoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}
