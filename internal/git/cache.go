package git

import "sync"

// ChangeCache memoizes per-commit change sets keyed by commit identifier.
type ChangeCache interface {
	Get(oid string) ([]FileChange, bool)
	Put(oid string, changes []FileChange)
	// Clear drops every entry. History.Close calls it when the handle is discarded.
	Clear()
}

// MemoryCache is the default in-process ChangeCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string][]FileChange
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]FileChange)}
}

// Get returns a copy of the cached changes for oid.
func (c *MemoryCache) Get(oid string) ([]FileChange, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	changes, ok := c.entries[oid]
	if !ok {
		return nil, false
	}
	return append([]FileChange(nil), changes...), true
}

// Put stores a copy of changes for oid.
func (c *MemoryCache) Put(oid string, changes []FileChange) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[oid] = append([]FileChange(nil), changes...)
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string][]FileChange)
}

// Len returns the number of cached commits.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
