// SPDX-License-Identifier: MIT

package bpl

import (
	"unsafe"
)

// RingBuffer is a circular queue over one fixed-size block. One slot
// is always kept empty to disambiguate full from empty, so a buffer
// with k slots holds at most k-1 elements. There is no growth path.
//
// The zero value is an empty buffer with no storage; every Push on it
// fails.
type RingBuffer[T any] struct {
	block Block
	read  int
	write int
	alloc Allocator
}

// NewRingBuffer returns a ring buffer with capacity slots allocated
// from a (nil means GlobalAllocator). Allocator size rounding may
// yield extra slots; Cap reports the real count. capacity must be
// positive.
func NewRingBuffer[T any](a Allocator, capacity int) RingBuffer[T] {
	if capacity <= 0 {
		panic("bpl: ring buffer capacity must be positive")
	}
	rb := RingBuffer[T]{alloc: a}
	block := rb.allocator().Allocate(strictMul(uintptr(capacity), sizeOf[T]()), alignOf[T]())
	if block.IsNil() {
		panic("bpl: allocator exhausted")
	}
	rb.block = block
	clear(rb.slots())
	return rb
}

// Cap returns the number of slots, including the one kept empty.
func (rb *RingBuffer[T]) Cap() int {
	if rb.block.Ptr == nil {
		return 0
	}
	return int(rb.block.Size / sizeOf[T]())
}

// Len returns the number of live elements, accounting for
// wraparound.
func (rb *RingBuffer[T]) Len() int {
	if rb.read <= rb.write {
		return rb.write - rb.read
	}
	return rb.Cap() - rb.read + rb.write
}

// Empty reports whether the buffer holds no elements.
func (rb *RingBuffer[T]) Empty() bool {
	return rb.read == rb.write
}

// Push stores x and advances the write index. It returns false
// without mutating the buffer when the buffer is full.
func (rb *RingBuffer[T]) Push(x T) bool {
	capacity := rb.Cap()
	if capacity == 0 {
		return false
	}
	next := (rb.write + 1) % capacity
	if next == rb.read {
		return false
	}
	rb.slots()[rb.write] = x
	rb.write = next
	return true
}

// Pop removes and returns the oldest element; ok is false when the
// buffer is empty.
func (rb *RingBuffer[T]) Pop() (x T, ok bool) {
	if rb.read == rb.write {
		return x, false
	}
	s := rb.slots()
	x = s[rb.read]
	var zero T
	s[rb.read] = zero
	rb.read = (rb.read + 1) % rb.Cap()
	return x, true
}

// Take transfers ownership of the buffer to the returned value,
// leaving rb empty with the same allocator and no storage.
func (rb *RingBuffer[T]) Take() RingBuffer[T] {
	out := *rb
	rb.block = Block{}
	rb.read, rb.write = 0, 0
	return out
}

// Release destroys the live elements and returns the block to the
// allocator.
func (rb *RingBuffer[T]) Release() {
	clear(rb.slots())
	if rb.block.Ptr != nil {
		rb.allocator().Deallocate(rb.block, alignOf[T]())
		rb.block = Block{}
	}
	rb.read, rb.write = 0, 0
}

func (rb *RingBuffer[T]) allocator() Allocator {
	if rb.alloc == nil {
		return GlobalAllocator{}
	}
	return rb.alloc
}

func (rb *RingBuffer[T]) slots() []T {
	if rb.block.Ptr == nil {
		return nil
	}
	return unsafe.Slice((*T)(rb.block.Ptr), rb.Cap())
}
