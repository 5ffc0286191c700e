package utils

import (
	"container/list"
	"sync"
)

/**************************************************************************************************
** TDimensions is a decoded pixel size.
**************************************************************************************************/
type TDimensions struct {
	Width  int
	Height int
}

// lruEntry represents an entry in the LRU cache
type lruEntry struct {
	key  string
	dims TDimensions
	node *list.Element
}

// DimensionCache is a thread-safe LRU cache of decoded dimensions keyed by content URI
type DimensionCache struct {
	mu       sync.Mutex
	capacity int
	cache    map[string]*lruEntry
	lru      *list.List
}

/**************************************************************************************************
** NewDimensionCache creates a new LRU cache for decoded dimensions.
**
** @param capacity - Maximum number of cached entries before evicting LRU
** @return *DimensionCache - Initialized cache instance
**************************************************************************************************/
func NewDimensionCache(capacity int) *DimensionCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &DimensionCache{
		capacity: capacity,
		cache:    make(map[string]*lruEntry),
		lru:      list.New(),
	}
}

/**************************************************************************************************
** Get retrieves cached dimensions and marks the entry as most recently used.
**
** @param uri - Content URI
** @return TDimensions - Cached dimensions if present
** @return bool - True if found in cache
**************************************************************************************************/
func (c *DimensionCache) Get(uri string) (TDimensions, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[uri]; ok {
		c.lru.MoveToFront(entry.node)
		return entry.dims, true
	}
	return TDimensions{}, false
}

/**************************************************************************************************
** Put inserts or updates dimensions in the cache, evicting the LRU entry if at capacity.
**
** @param uri - Content URI
** @param dims - Decoded dimensions to store
**************************************************************************************************/
func (c *DimensionCache) Put(uri string, dims TDimensions) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.cache[uri]; ok {
		entry.dims = dims
		c.lru.MoveToFront(entry.node)
		return
	}

	if len(c.cache) >= c.capacity {
		c.evictLRU()
	}

	node := c.lru.PushFront(uri)
	c.cache[uri] = &lruEntry{
		key:  uri,
		dims: dims,
		node: node,
	}
}

// Len returns the number of cached entries.
func (c *DimensionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

/**************************************************************************************************
** evictLRU removes the least recently used cache entry if one exists.
**************************************************************************************************/
func (c *DimensionCache) evictLRU() {
	node := c.lru.Back()
	if node == nil {
		return
	}
	delete(c.cache, node.Value.(string))
	c.lru.Remove(node)
}
