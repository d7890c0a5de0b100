package translate

import (
	"context"
	"strconv"
	"sync"
)

// Cache stores translated chunks keyed by (language, chunk content).
// A miss is (="", false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// chunkKey derives the cache key for a chunk. FNV-1a keeps keys short
// regardless of chunk size.
func chunkKey(lang, chunk string) string {
	h := uint64(14695981039346656037)
	for i := 0; i < len(chunk); i++ {
		h ^= uint64(chunk[i])
		h *= 1099511628211
	}
	return lang + ":" + strconv.FormatUint(h, 16)
}

// MemoryCache is a process-local Cache, safe for concurrent use.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

// Get looks up a chunk translation.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok, nil
}

// Set stores a chunk translation.
func (c *MemoryCache) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}
