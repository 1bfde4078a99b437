package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache provides an in-process fallback used when Redis is not
// configured or unreachable. Entries honor their TTL.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
	}
}

func (m *MemoryCache) Close() error {
	return nil
}

func (m *MemoryCache) GetDocument(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		return nil, false, nil
	}
	return entry.data, true, nil
}

func (m *MemoryCache) SetDocument(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.data[key] = memoryEntry{data: data, expires: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) Invalidate(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
	return nil
}
