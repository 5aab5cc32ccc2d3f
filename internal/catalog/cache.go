package catalog

import (
	"strings"
	"sync"

	"github.com/claude/liftlog/internal/models"
)

// Cache memoizes search results per query key for the life of the
// client. Catalog data is reference data, so entries are never
// invalidated; staleness is acceptable.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]models.Exercise
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]models.Exercise)}
}

// Key builds the cache key from the normalized search term and the two
// equality filters.
func Key(term, bodyPart, equipment string) string {
	return strings.ToLower(strings.TrimSpace(term)) + "|" + bodyPart + "|" + equipment
}

// Get returns the cached result for a key, if present.
func (c *Cache) Get(key string) ([]models.Exercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	exercises, ok := c.entries[key]
	return exercises, ok
}

// Put stores a result under a key, replacing any previous entry.
func (c *Cache) Put(key string, exercises []models.Exercise) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = exercises
}

// Len reports the number of cached queries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
