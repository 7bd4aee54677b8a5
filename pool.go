package bpl

import (
	"sync"
	"weak"
)

// Pool keeps released arenas available for reuse, which pays off for
// high-frequency acquire/release patterns such as per-request
// scratch space.
//
// Items are held through weak pointers, so the garbage collector may
// claim an idle arena at any time (its reservation is then returned
// by the arena's runtime cleanup). The pool size therefore adapts to
// memory pressure without explicit tuning.
type Pool struct {
	pool  []weak.Pointer[PoolItem]
	sizes map[uint64]*poolItemSize
	mu    sync.Mutex
}

// poolItemSize tracks the memory required across the last 50 arenas
// released under one key.
type poolItemSize struct {
	count      int
	totalBytes int
}

// PoolItem wraps a pooled *Arena.
type PoolItem struct {
	Arena *Arena
	Key   uint64
}

// NewPool creates an empty arena pool.
func NewPool() *Pool {
	return &Pool{sizes: make(map[uint64]*poolItemSize)}
}

// Acquire returns an arena from the pool, or creates one sized from
// the peak usage recorded for key. The key groups acquisitions per
// use case so arenas end up sized for their workload.
func (p *Pool) Acquire(key uint64) *PoolItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.pool) > 0 {
		last := len(p.pool) - 1
		wp := p.pool[last]
		p.pool = p.pool[:last]
		if v := wp.Value(); v != nil {
			v.Key = key
			return v
		}
		// Collected while pooled; its reservation is already gone.
	}

	return &PoolItem{
		Arena: NewArena(p.arenaSize(key)),
		Key:   key,
	}
}

// Release records the arena's peak usage for its key, clears it, and
// returns it to the pool behind a weak pointer.
func (p *Pool) Release(item *PoolItem) {
	peak := int(item.Arena.Peak())
	item.Arena.Clear()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.record(item.Key, peak)
	item.Key = 0
	p.pool = append(p.pool, weak.Make(item))
}

// ReleaseMany returns several items under a single lock acquisition.
func (p *Pool) ReleaseMany(items []*PoolItem) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, item := range items {
		peak := int(item.Arena.Peak())
		item.Arena.Clear()
		p.record(item.Key, peak)
		item.Key = 0
		p.pool = append(p.pool, weak.Make(item))
	}
}

func (p *Pool) record(key uint64, peak int) {
	if size, ok := p.sizes[key]; ok {
		if size.count == 50 {
			size.count = 1
			size.totalBytes /= 50
		}
		size.count++
		size.totalBytes += peak
	} else {
		p.sizes[key] = &poolItemSize{count: 1, totalBytes: peak}
	}
}

// arenaSize returns the capacity for a fresh arena under key: the
// recorded average peak, defaulting to 1MiB with no history.
func (p *Pool) arenaSize(key uint64) uintptr {
	if size, ok := p.sizes[key]; ok {
		if avg := size.totalBytes / size.count; avg > 0 {
			return uintptr(avg)
		}
	}
	return 1 << 20
}
