// Package market resolves item names to type IDs and fetches market price
// aggregates for them.
package market

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/veyl/abyssal-tracker-tui/internal/logger"
)

// IdentifierCache is a persistent name-to-type-ID map backed by a JSON file.
// Type IDs never change once assigned, so entries are never invalidated.
type IdentifierCache struct {
	path  string
	mu    sync.RWMutex
	ids   map[string]int64
	dirty bool
}

// LoadIdentifierCache reads the cache file at path. A missing or corrupt file
// yields an empty cache; resolution then repopulates it.
func LoadIdentifierCache(path string) *IdentifierCache {
	cache := &IdentifierCache{
		path: path,
		ids:  make(map[string]int64),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("identifier cache unreadable, starting empty", "path", path, "error", err)
		}
		return cache
	}
	if err := json.Unmarshal(raw, &cache.ids); err != nil {
		logger.Warn("identifier cache corrupt, starting empty", "path", path, "error", err)
		cache.ids = make(map[string]int64)
		return cache
	}

	logger.Debug("identifier cache loaded", "path", path, "entries", len(cache.ids))
	return cache
}

// Get returns the cached type ID for an item name.
func (c *IdentifierCache) Get(name string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.ids[name]
	return id, ok
}

// Put records a resolved name. The entry reaches disk on the next Flush.
func (c *IdentifierCache) Put(name string, id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ids[name] = id
	c.dirty = true
}

// Len returns the number of cached entries.
func (c *IdentifierCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.ids)
}

// Flush rewrites the cache file if anything changed since the last flush.
// The write goes through a temp file and rename so a crash never leaves a
// half-written cache.
func (c *IdentifierCache) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}

	data, err := json.MarshalIndent(c.ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding identifier cache: %w", err)
	}

	tmpPath := c.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing identifier cache: %w", err)
	}
	if err := os.Rename(tmpPath, c.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing identifier cache: %w", err)
	}

	c.dirty = false
	logger.Debug("identifier cache flushed", "path", c.path, "entries", len(c.ids))
	return nil
}
