// Package memraster is a reference, in-memory implementation of
// [gpf.Product] and [gpf.Band], backed by Go's image package. It exists
// so the engine can be exercised and tested without any real imagery
// format or storage backend wired in (spec.md §1's explicit non-goal).
package memraster

import (
	"image"
	"sync"
)

type tileKey struct{ x, y int }

// tileCache is a thread-safe in-memory cache of computed tiles, keyed
// by tile coordinate rather than by node id: the same shape as the
// teacher's MemoryCache, adapted from a per-node any-value store to a
// per-band *image.Gray tile store.
type tileCache struct {
	mu    sync.RWMutex
	store map[tileKey]*image.Gray
}

func newTileCache() *tileCache {
	return &tileCache{store: make(map[tileKey]*image.Gray)}
}

func (c *tileCache) get(x, y int) (*image.Gray, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.store[tileKey{x, y}]
	return img, ok
}

func (c *tileCache) set(x, y int, img *image.Gray) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[tileKey{x, y}] = img
}

// clear removes every cached tile. Primarily useful for test isolation
// and for operators that want to force recomputation.
func (c *tileCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[tileKey]*image.Gray)
}

// snapshot returns the set of tile coordinates currently cached, useful
// for asserting which tiles an operator actually computed.
func (c *tileCache) snapshot() []image.Point {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pts := make([]image.Point, 0, len(c.store))
	for k := range c.store {
		pts = append(pts, image.Pt(k.x, k.y))
	}
	return pts
}
