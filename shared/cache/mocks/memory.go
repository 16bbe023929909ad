package mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"workshop/shared/cache"
)

// MemoryCache is an in-memory stand-in for the redis cache, for tests that
// need real save/get/clear behavior instead of call expectations.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string][]byte{}}
}

// Save implements cache.RedisCache. The TTL is ignored.
func (m *MemoryCache) Save(_ context.Context, key string, value any, _ int) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = raw

	return nil
}

// Get implements cache.RedisCache. A missing key yields cache.Nil, matching
// the redis client.
func (m *MemoryCache) Get(_ context.Context, key string, value any) error {
	m.mu.Lock()
	raw, ok := m.entries[key]
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("failed to get cache value: %w", cache.Nil)
	}

	if err := json.Unmarshal(raw, value); err != nil {
		return fmt.Errorf("failed to unmarshal cache value: %w", err)
	}

	return nil
}

// Delete implements cache.RedisCache.
func (m *MemoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)

	return nil
}

// Clear implements cache.RedisCache, honoring the trailing glob the redis
// implementation scans with.
func (m *MemoryCache) Clear(_ context.Context, prefix string) error {
	prefix = strings.TrimSuffix(prefix, "*")

	m.mu.Lock()
	defer m.mu.Unlock()

	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}

	return nil
}

// Has reports whether the key is currently cached.
func (m *MemoryCache) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.entries[key]

	return ok
}
