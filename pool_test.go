package bpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolAcquireDefaultSize(t *testing.T) {
	p := NewPool()

	item := p.Acquire(1)
	require.NotNil(t, item)
	require.Equal(t, uint64(1), item.Key)
	require.GreaterOrEqual(t, item.Arena.Capacity(), uintptr(1<<20))
	item.Arena.Release()
}

func TestPoolReuse(t *testing.T) {
	p := NewPool()

	item := p.Acquire(1)
	item.Arena.Push(128, 8)
	p.Release(item)

	// item is still strongly referenced here, so the weak pointer in
	// the pool cannot have been collected.
	got := p.Acquire(2)
	require.Same(t, item, got)
	require.Equal(t, uint64(2), got.Key)
	require.True(t, got.Arena.Empty(), "arena cleared on release")
	got.Arena.Release()
}

func TestPoolSizesFromRecordedPeak(t *testing.T) {
	p := NewPool()

	item := p.Acquire(7)
	item.Arena.Push(200<<10, 8)
	p.Release(item)

	// Drain the pooled item so the next acquisition builds a fresh
	// arena from the recorded history.
	pooled := p.Acquire(7)
	require.Same(t, item, pooled)

	fresh := p.Acquire(7)
	require.NotSame(t, item, fresh)
	require.GreaterOrEqual(t, fresh.Arena.Capacity(), uintptr(200<<10))
	require.Less(t, fresh.Arena.Capacity(), uintptr(1<<20))

	pooled.Arena.Release()
	fresh.Arena.Release()
}

func TestPoolReleaseMany(t *testing.T) {
	p := NewPool()

	a := p.Acquire(1)
	b := p.Acquire(1)
	require.NotSame(t, a, b)

	a.Arena.Push(64, 8)
	b.Arena.Push(64, 8)
	p.ReleaseMany([]*PoolItem{a, b})

	x := p.Acquire(1)
	y := p.Acquire(1)
	require.True(t, x.Arena.Empty())
	require.True(t, y.Arena.Empty())
	require.ElementsMatch(t, []*PoolItem{a, b}, []*PoolItem{x, y})

	x.Arena.Release()
	y.Arena.Release()
}
