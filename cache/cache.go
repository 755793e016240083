package cache

import (
	"context"
	"sync"
	"time"
)

// Cache memoizes async computations under a string key with a TTL, and
// supports invalidating groups of keys by tag. Multiple entries may share a
// tag so a broad content change can drop every related entry without
// tracking individual keys.
type Cache interface {
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, tags []string, compute func(context.Context) ([]byte, error)) ([]byte, error)
	InvalidateTag(ctx context.Context, tag string) error
}

// Client is the global cache instance, a memory cache until Init selects
// Redis. Services read it the same way they read database.Database.
var Client Cache = NewMemoryCache()

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryCache is the in-process implementation, used in tests and in
// deployments without REDIS_ADDR.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	tags    map[string]map[string]struct{} // tag -> keys
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		tags:    make(map[string]map[string]struct{}),
	}
}

func (m *MemoryCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, tags []string, compute func(context.Context) ([]byte, error)) ([]byte, error) {
	m.mu.Lock()
	entry, ok := m.entries[key]
	m.mu.Unlock()

	if ok && time.Now().Before(entry.expiresAt) {
		return entry.data, nil
	}

	data, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = memoryEntry{data: data, expiresAt: time.Now().Add(ttl)}
	for _, tag := range tags {
		if m.tags[tag] == nil {
			m.tags[tag] = make(map[string]struct{})
		}
		m.tags[tag][key] = struct{}{}
	}
	m.mu.Unlock()

	return data, nil
}

func (m *MemoryCache) InvalidateTag(ctx context.Context, tag string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.tags[tag] {
		delete(m.entries, key)
	}
	delete(m.tags, tag)
	return nil
}
