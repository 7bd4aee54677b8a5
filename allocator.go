// SPDX-License-Identifier: MIT

package bpl

import (
	"unsafe"
)

// Allocator is the minimal allocation contract. Containers own
// exactly one Allocator instance and request all storage through it.
type Allocator interface {
	// Allocate returns a block of at least size bytes whose address
	// is a multiple of alignment (a power of two). Allocation failure
	// is fatal: the baseline implementations panic rather than return
	// the zero Block, so callers never need a nil check. The Arena is
	// the one documented exception; see Arena.Allocate.
	Allocate(size, alignment uintptr) Block

	// Deallocate releases a block previously returned by Allocate (or
	// a valid sub-block produced by a capability extension) on the
	// same instance. Passing a block obtained elsewhere is undefined.
	Deallocate(block Block, alignment uintptr)
}

// GrowableAllocator is an Allocator that can attempt to extend a
// block in place.
type GrowableAllocator interface {
	Allocator

	// TryGrow attempts to extend block in place by additional bytes
	// without relocating its contents. When growth is impossible the
	// original block is returned unchanged; callers must compare the
	// returned size against what they need, because the base block
	// stays valid and no failure sentinel is used.
	TryGrow(block Block, alignment, additional uintptr) Block
}

// ShrinkableAllocator is an Allocator that can attempt to shrink a
// block in place.
type ShrinkableAllocator interface {
	Allocator

	// TryShrink attempts to shrink block in place to newSize bytes
	// (at most the current size). It returns false without modifying
	// anything when shrinking in place is not possible; the caller
	// keeps using the original block.
	TryShrink(block Block, alignment, newSize uintptr) bool
}

// ResizableAllocator combines the growable and shrinkable tiers.
type ResizableAllocator interface {
	GrowableAllocator
	ShrinkableAllocator
}

var (
	_ Allocator          = GlobalAllocator{}
	_ Allocator          = PagesAllocator{}
	_ ResizableAllocator = (*Arena)(nil)
)

// GlobalAllocator is a stateless Allocator backed by the Go heap.
// Deallocate is a no-op: a block is reclaimed by the garbage
// collector once nothing references it, which Block.Ptr does as long
// as the block is held. Satisfies the minimal tier only.
type GlobalAllocator struct{}

// Allocate returns a zeroed block of at least size bytes. The
// effective alignment is raised to the pointer size, and the returned
// size is rounded up to a multiple of it.
func (GlobalAllocator) Allocate(size, alignment uintptr) Block {
	alignment = max(alignment, unsafe.Sizeof(uintptr(0)))
	size = alignForward(size, alignment)
	// Over-allocate so the base can be aligned forward; an interior
	// pointer keeps the backing array reachable, so nothing needs to
	// be recovered on free.
	buf := make([]byte, size+alignment-1)
	ptr := unsafe.Pointer(unsafe.SliceData(buf))
	if pad := alignForward(uintptr(ptr), alignment) - uintptr(ptr); pad != 0 {
		ptr = unsafe.Add(ptr, pad)
	}
	return Block{Ptr: ptr, Size: size}
}

// Deallocate satisfies Allocator.
func (GlobalAllocator) Deallocate(block Block, alignment uintptr) {}

// PagesAllocator is a stateless Allocator where every allocation is
// its own virtual memory reservation, committed immediately. Block
// sizes are page-granular. Satisfies the minimal tier only.
type PagesAllocator struct{}

// Allocate reserves and commits enough pages for size bytes. The
// requested alignment must not exceed the page size; reservations are
// always page-aligned.
func (PagesAllocator) Allocate(size, alignment uintptr) Block {
	if alignment > PageSize() {
		panic("bpl: alignment larger than page size")
	}
	block := ReserveMemory(size)
	if !TryCommitMemory(block) {
		panic("bpl: out of memory")
	}
	return block
}

// Deallocate returns the reservation to the OS.
func (PagesAllocator) Deallocate(block Block, alignment uintptr) {
	if !TryReleaseMemory(block) {
		panic("bpl: release failed for block not owned by PagesAllocator")
	}
}
