package mapping

import "sync"

// Cache stores finalized mapping trees keyed by root annotation type and
// exclusion filter. Construction is deterministic, so concurrent
// first-time builders for the same key may race harmlessly; the first
// published tree wins and is never mutated afterwards.
//
// Create one Cache at composition time and share it; Clear exists for test
// isolation.
type Cache struct {
	mu    sync.RWMutex
	trees map[string]*Tree
}

// NewCache creates an empty tree cache.
func NewCache() *Cache {
	return &Cache{trees: make(map[string]*Tree)}
}

// Resolve returns the cached tree for (root type, builder filter), building
// and publishing it on first use. Configuration errors are not cached;
// rebuilding an invalid root type fails the same way every time.
func (c *Cache) Resolve(b *Builder, rootType string) (*Tree, error) {
	key := rootType + "|" + b.Filter().Key()

	c.mu.RLock()
	tree, ok := c.trees[key]
	c.mu.RUnlock()

	if ok {
		return tree, nil
	}

	built, err := b.Build(rootType)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.trees[key]; ok {
		return existing, nil
	}

	c.trees[key] = built

	return built, nil
}

// Len returns the number of cached trees.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.trees)
}

// Clear drops all cached trees.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.trees = make(map[string]*Tree)
}
