// SPDX-License-Identifier: MIT

package bpl

import (
	"runtime"
	"unsafe"
)

// Arena is a bump-pointer allocator over a single contiguous virtual
// memory reservation. Allocations are carved out by advancing a
// cursor; deallocation follows stack discipline, so only the most
// recent allocation can be popped. The arena never moves a live
// allocation.
//
// Arena satisfies the full capability model: Allocator,
// GrowableAllocator and ShrinkableAllocator.
type Arena struct {
	block Block
	off   uintptr // bump cursor as offset from base, 0 <= off <= capacity
	peak  uintptr
	clean runtime.Cleanup
}

// NewArena creates an arena of capacity bytes, rounded up to page
// granularity, reserved and committed immediately. It panics if
// capacity is zero or the memory cannot be obtained.
//
// The reservation is returned to the OS by Release. As a safety net,
// a runtime cleanup releases it if the arena becomes unreachable
// without Release having been called.
func NewArena(capacity uintptr) *Arena {
	if capacity == 0 {
		panic("bpl: arena capacity is zero")
	}
	block := ReserveMemory(capacity)
	if !TryCommitMemory(block) {
		panic("bpl: out of memory")
	}
	a := &Arena{block: block}
	a.clean = runtime.AddCleanup(a, releaseReservation, block)
	return a
}

func releaseReservation(b Block) {
	_ = TryDecommitMemory(b)
	_ = TryReleaseMemory(b)
}

// Capacity returns the usable size of the reservation in bytes.
func (a *Arena) Capacity() uintptr {
	return a.block.Size
}

// Size returns the number of bytes currently carved out.
func (a *Arena) Size() uintptr {
	return a.off
}

// Empty reports whether no allocation is outstanding.
func (a *Arena) Empty() bool {
	return a.off == 0
}

// Peak returns the high-water mark of Size. It is not reset by Clear.
func (a *Arena) Peak() uintptr {
	return a.peak
}

// Push carves a block of at least size bytes, aligned to alignment,
// out of the remaining space. When no such block fits it returns the
// zero Block and leaves the cursor untouched; exhaustion is never
// fatal.
func (a *Arena) Push(size, alignment uintptr) Block {
	if a.block.Ptr == nil {
		panic("bpl: arena used after Release")
	}
	base := a.block.addr()
	begin := alignForward(base+a.off, alignment)
	if size > maxSize-begin {
		panic("bpl: size overflow")
	}
	end := alignForward(begin+size, alignment)
	if end > base+a.block.Size {
		return Block{}
	}
	a.off = end - base
	if a.off > a.peak {
		a.peak = a.off
	}
	return Block{Ptr: unsafe.Add(a.block.Ptr, begin-base), Size: end - begin}
}

// Pop retracts the cursor to the start of block, releasing it. It
// succeeds only when block is the most recent outstanding allocation:
// its end must equal the cursor aligned forward to alignment. On
// failure the cursor is untouched and Pop returns false, so
// out-of-order deallocation is rejected rather than silently ignored.
func (a *Arena) Pop(block Block, alignment uintptr) bool {
	cursor := alignForward(a.block.addr()+a.off, alignment)
	if block.end() != cursor {
		return false
	}
	a.off = block.addr() - a.block.addr()
	return true
}

// Clear resets the cursor to the base of the reservation, discarding
// every outstanding allocation at once. Callers are responsible for
// having finished with any live values inside them.
func (a *Arena) Clear() {
	if a.block.Ptr == nil {
		panic("bpl: arena used after Release")
	}
	a.off = 0
}

// Release decommits the reservation and returns it to the OS. The
// arena must not be used afterwards; Release itself is idempotent.
// A failed decommit is tolerated, a failed release is fatal.
func (a *Arena) Release() {
	if a.block.Ptr == nil {
		return
	}
	a.clean.Stop()
	_ = TryDecommitMemory(a.block)
	if !TryReleaseMemory(a.block) {
		panic("bpl: failed to release arena reservation")
	}
	a.block = Block{}
	a.off = 0
}

// Allocate satisfies Allocator. Unlike the baseline allocators an
// exhausted arena returns the zero Block instead of panicking;
// callers interpret it as "allocator exhausted".
func (a *Arena) Allocate(size, alignment uintptr) Block {
	return a.Push(size, alignment)
}

// Deallocate satisfies Allocator. A block that violates stack
// discipline is left outstanding and merely wastes arena capacity
// until Clear.
func (a *Arena) Deallocate(block Block, alignment uintptr) {
	_ = a.Pop(block, alignment)
}

// TryGrow extends block in place when it is the most recent
// allocation and enough space remains. In every other case the
// original block comes back unchanged, which is indistinguishable
// from a zero-byte growth request; callers compare the returned size
// against what they need.
func (a *Arena) TryGrow(block Block, alignment, additional uintptr) Block {
	if block.end() != a.block.addr()+a.off {
		return block
	}
	grown := a.Push(additional, alignment)
	return Block{Ptr: block.Ptr, Size: block.Size + grown.Size}
}

// TryShrink shrinks block in place to newSize bytes by popping the
// trailing bytes. It succeeds under the same LIFO condition as Pop
// and fails when newSize exceeds the block size.
func (a *Arena) TryShrink(block Block, alignment, newSize uintptr) bool {
	if newSize > block.Size {
		return false
	}
	tail := Block{Ptr: unsafe.Add(block.Ptr, newSize), Size: block.Size - newSize}
	return a.Pop(tail, alignment)
}
