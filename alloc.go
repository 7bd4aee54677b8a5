// SPDX-License-Identifier: MIT

package bpl

import (
	"unsafe"
)

const growThreshold = 256

// sizeOf returns the size of T in bytes. Zero-sized element types are
// rejected: the containers address storage as pointer+size blocks and
// cannot represent them.
func sizeOf[T any]() uintptr {
	var x T
	size := unsafe.Sizeof(x)
	if size == 0 {
		panic("bpl: zero-sized element type")
	}
	return size
}

func alignOf[T any]() uintptr {
	var x T
	return unsafe.Alignof(x)
}

// New allocates a zeroed value of type T from a. If a is nil, it
// falls back to Go's built-in new.
func New[T any](a Allocator) *T {
	var x T
	if a == nil || unsafe.Sizeof(x) == 0 {
		return new(T)
	}
	block := a.Allocate(unsafe.Sizeof(x), unsafe.Alignof(x))
	if block.IsNil() {
		panic("bpl: allocator exhausted")
	}
	clear(unsafe.Slice((*byte)(block.Ptr), unsafe.Sizeof(x)))
	return (*T)(block.Ptr)
}

// MakeSlice allocates a zeroed slice of T with the given length and
// capacity from a. If a is nil, it falls back to make.
func MakeSlice[T any](a Allocator, length, capacity int) []T {
	var x T
	if a == nil || capacity == 0 || unsafe.Sizeof(x) == 0 {
		return make([]T, length, capacity)
	}
	block := a.Allocate(strictMul(uintptr(capacity), unsafe.Sizeof(x)), unsafe.Alignof(x))
	if block.IsNil() {
		panic("bpl: allocator exhausted")
	}
	clear(unsafe.Slice((*byte)(block.Ptr), uintptr(capacity)*unsafe.Sizeof(x)))
	return unsafe.Slice((*T)(block.Ptr), capacity)[:length]
}

// Append appends xs to s, allocating grown storage from a when the
// capacity is exhausted. The old storage is left to the allocator;
// under a stack-discipline allocator it stays unusable until the next
// Clear.
func Append[T any](a Allocator, s []T, xs ...T) []T {
	if a == nil {
		return append(s, xs...)
	}
	s = growSlice(a, s, len(xs))
	return append(s, xs...)
}

func growSlice[T any](a Allocator, s []T, n int) []T {
	newLen := len(s) + n
	newCap := cap(s)
	if newCap > 0 {
		for newLen > newCap {
			if newCap < growThreshold {
				newCap *= 2
			} else {
				newCap += newCap / 4
			}
		}
	} else {
		newCap = n
	}
	if newCap == cap(s) {
		return s
	}
	s2 := MakeSlice[T](a, len(s), newCap)
	copy(s2, s)
	return s2
}
