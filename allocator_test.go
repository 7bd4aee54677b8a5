// SPDX-License-Identifier: MIT

package bpl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlobalAllocatorAlignment(t *testing.T) {
	var ga GlobalAllocator
	for _, alignment := range []uintptr{1, 2, 4, 8, 16, 32, 64, 128, 1024} {
		block := ga.Allocate(100, alignment)
		require.NotNil(t, block.Ptr)
		require.GreaterOrEqual(t, block.Size, uintptr(100))
		require.Zero(t, block.addr()%alignment, "alignment %d", alignment)
		ga.Deallocate(block, alignment)
	}
}

func TestGlobalAllocatorSizeRounding(t *testing.T) {
	var ga GlobalAllocator

	// The effective alignment is at least the pointer size and the
	// returned size is a multiple of it.
	block := ga.Allocate(20, 4)
	require.Equal(t, uintptr(24), block.Size)

	block = ga.Allocate(100, 64)
	require.Equal(t, uintptr(128), block.Size)
}

func TestGlobalAllocatorZeroed(t *testing.T) {
	var ga GlobalAllocator
	block := ga.Allocate(256, 8)
	for _, b := range block.bytes() {
		require.Zero(t, b)
	}
}

func TestGlobalAllocatorWriteRead(t *testing.T) {
	var ga GlobalAllocator
	block := ga.Allocate(64, 8)
	data := block.bytes()
	for i := range data {
		data[i] = byte(i)
	}
	require.Equal(t, byte(63), data[63])
}

func TestPagesAllocator(t *testing.T) {
	var pa PagesAllocator
	block := pa.Allocate(100, 8)
	require.NotNil(t, block.Ptr)
	require.Equal(t, PageSize(), block.Size)
	require.Zero(t, block.addr()%PageSize())

	data := block.bytes()
	data[0] = 1
	data[len(data)-1] = 2
	require.Equal(t, byte(1), data[0])

	pa.Deallocate(block, 8)
}

func TestPagesAllocatorAlignmentPrecondition(t *testing.T) {
	var pa PagesAllocator
	require.Panics(t, func() { pa.Allocate(100, 2*PageSize()) })
}

func TestInvalidAlignmentPanics(t *testing.T) {
	var ga GlobalAllocator
	require.Panics(t, func() { ga.Allocate(100, 3) })
	require.Panics(t, func() { ga.Allocate(100, 0) })
}

func TestCapabilityTiers(t *testing.T) {
	arena := NewArena(PageSize())
	defer arena.Release()

	// The arena advertises the full capability model; the stateless
	// allocators satisfy only the minimal tier.
	var a Allocator = arena
	_, growable := a.(GrowableAllocator)
	_, shrinkable := a.(ShrinkableAllocator)
	require.True(t, growable)
	require.True(t, shrinkable)

	a = GlobalAllocator{}
	_, growable = a.(GrowableAllocator)
	_, shrinkable = a.(ShrinkableAllocator)
	require.False(t, growable)
	require.False(t, shrinkable)

	a = PagesAllocator{}
	_, growable = a.(GrowableAllocator)
	require.False(t, growable)
}
