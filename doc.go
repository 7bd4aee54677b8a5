// SPDX-License-Identifier: MIT

// Package bpl is a small memory-management core: a capability-tiered
// allocator contract, a bump-pointer arena carved out of raw virtual
// memory, and containers (dynamic array, ring buffer, byte buffer)
// that are generic over any conforming allocator.
//
// # Allocator capability model
//
// Every allocator provides the minimal [Allocator] contract
// (Allocate/Deallocate). Two optional tiers extend it:
// [GrowableAllocator] adds in-place growth and [ShrinkableAllocator]
// adds in-place shrinking. Containers program against the minimal
// tier and discover the extensions with type assertions, so they work
// correctly with or without them.
//
// Allocation failure in the baseline allocators is fatal (panic), not
// a recoverable error. The [Arena] is the exception: an exhausted
// arena signals it by returning the zero [Block].
//
// # Basic usage
//
//	arena := bpl.NewArena(1 << 20)
//	defer arena.Release()
//
//	array := bpl.NewArray[int](arena)
//	array.Append(42)
//
//	block := arena.Push(1024, 8)   // raw stack-discipline allocation
//	_ = arena.Pop(block, 8)        // must be the most recent push
//	arena.Clear()                  // O(1) bulk discard
//
// # Thread safety
//
// Nothing in this package is safe for concurrent use on the same
// instance without external synchronization; [Pool] only locks its
// own free list. The core is a single-threaded building block that
// higher layers wrap with their own policy.
//
// # Pointers in allocated memory
//
// Arena and [PagesAllocator] memory lives outside the Go heap, and
// the garbage collector does not scan it. Values stored there that
// contain Go pointers must be kept reachable through other means for
// as long as they are in use.
package bpl
