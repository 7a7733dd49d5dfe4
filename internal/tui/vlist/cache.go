package vlist

import "container/list"

// CacheMetrics counts row cache activity since the last Invalidate.
type CacheMetrics struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// RowCache is an LRU cache of rendered rows. Rendering a styled row is the
// expensive part of drawing a frame, and scrolling revisits the same rows
// constantly, so the model caches them keyed by item revision, index, width
// and selection state.
//
// RowCache is not safe for concurrent use; the Bubble Tea update loop is
// single-goroutine.
type RowCache struct {
	capacity int
	order    *list.List
	entries  map[string]*list.Element
	metrics  CacheMetrics
}

type rowEntry struct {
	key      string
	rendered string
}

// NewRowCache returns a cache holding up to capacity rows. A capacity of
// zero or less disables caching: Get always misses and Put is a no-op.
func NewRowCache(capacity int) *RowCache {
	return &RowCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element),
	}
}

// Get returns the cached rendering for key and marks it recently used.
func (c *RowCache) Get(key string) (string, bool) {
	if c.capacity <= 0 {
		return "", false
	}
	el, ok := c.entries[key]
	if !ok {
		c.metrics.Misses++
		return "", false
	}
	c.metrics.Hits++
	c.order.MoveToFront(el)
	return el.Value.(*rowEntry).rendered, true
}

// Put stores a rendering, evicting the least recently used row when full.
func (c *RowCache) Put(key, rendered string) {
	if c.capacity <= 0 {
		return
	}
	if el, ok := c.entries[key]; ok {
		el.Value.(*rowEntry).rendered = rendered
		c.order.MoveToFront(el)
		return
	}
	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*rowEntry).key)
			c.metrics.Evictions++
		}
	}
	c.entries[key] = c.order.PushFront(&rowEntry{key: key, rendered: rendered})
}

// Invalidate drops every cached row and resets the metrics.
func (c *RowCache) Invalidate() {
	c.order.Init()
	c.entries = make(map[string]*list.Element)
	c.metrics = CacheMetrics{}
}

// Len returns the number of cached rows.
func (c *RowCache) Len() int {
	return c.order.Len()
}

// Metrics returns a snapshot of hit, miss, and eviction counts.
func (c *RowCache) Metrics() CacheMetrics {
	return c.metrics
}
