package fs

import (
	"sync"
	"time"
)

// cacheEntry is a value read from disk together with the file mtime it was read at.
type cacheEntry struct {
	Value        string
	LastModified time.Time
}

// cache keeps recently read values so repeated renders do not hit the disk.
// Entries are only trusted while the file mtime matches.
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func newCache() *cache {
	return &cache{entries: make(map[string]cacheEntry)}
}

// Get returns the cached value for key if it is still fresh for mtime.
func (c *cache) Get(key string, mtime time.Time) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok || !entry.LastModified.Equal(mtime) {
		return "", false
	}
	return entry.Value, true
}

// Has reports whether key has ever been cached, fresh or not.
func (c *cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

func (c *cache) Set(key string, entry cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

func (c *cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
