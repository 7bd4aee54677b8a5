// SPDX-License-Identifier: MIT

package bpl

import (
	"iter"
	"unsafe"
)

// Array is a dynamic array with amortized-growth appends,
// parameterized by any conforming Allocator. The zero value is an
// empty array backed by GlobalAllocator.
//
// Element storage is a single raw block owned by the array. Elements
// [0, Len) are live; the rest of the block is vacant storage. Vacated
// slots are zeroed so stale references do not keep heap objects
// alive. Zero-sized element types are not supported.
type Array[T any] struct {
	block Block
	count int
	alloc Allocator
}

// NewArray returns an empty array that allocates from a. A nil
// allocator means GlobalAllocator.
func NewArray[T any](a Allocator) Array[T] {
	return Array[T]{alloc: a}
}

// NewArrayUninit returns an array of count elements with unspecified
// contents. Reading an element before writing it is the caller's
// responsibility.
func NewArrayUninit[T any](a Allocator, count int) Array[T] {
	arr := NewArray[T](a)
	if count == 0 {
		return arr
	}
	arr.block = arr.allocate(count)
	arr.count = count
	return arr
}

// NewArrayLen returns an array of count zero-valued elements.
func NewArrayLen[T any](a Allocator, count int) Array[T] {
	arr := NewArrayUninit[T](a, count)
	clear(arr.Data())
	return arr
}

// ArrayFrom returns an array holding a copy of the elements of s.
func ArrayFrom[T any](a Allocator, s []T) Array[T] {
	arr := NewArrayUninit[T](a, len(s))
	copy(arr.Data(), s)
	return arr
}

// ArrayFromSeq returns an array holding the values produced by seq,
// appended one at a time.
func ArrayFromSeq[T any](a Allocator, seq iter.Seq[T]) Array[T] {
	arr := NewArray[T](a)
	arr.AppendSeq(seq)
	return arr
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	return a.count
}

// Empty reports whether the array has no elements.
func (a *Array[T]) Empty() bool {
	return a.count == 0
}

// Cap returns the number of elements the current block can hold.
func (a *Array[T]) Cap() int {
	if a.block.Ptr == nil {
		return 0
	}
	return int(a.block.Size / sizeOf[T]())
}

// Allocator returns the allocator the array allocates from.
func (a *Array[T]) Allocator() Allocator {
	return a.allocator()
}

// Data returns the live elements as a slice sharing the array's
// storage. It stays valid until the next mutation.
func (a *Array[T]) Data() []T {
	return a.raw()[:a.count]
}

// At returns a pointer to the element at index i, panicking when i is
// out of bounds.
func (a *Array[T]) At(i int) *T {
	if i < 0 || i >= a.count {
		panic("bpl: index out of range")
	}
	return &a.raw()[i]
}

// Set stores x at index i, panicking when i is out of bounds.
func (a *Array[T]) Set(i int, x T) {
	*a.At(i) = x
}

// Front returns a pointer to the first element, panicking when the
// array is empty.
func (a *Array[T]) Front() *T {
	return a.At(0)
}

// Back returns a pointer to the last element, panicking when the
// array is empty.
func (a *Array[T]) Back() *T {
	return a.At(a.count - 1)
}

// Reserve grows the capacity to hold at least count elements. It is a
// no-op when the block is already large enough. Growth is amortized:
// the requested block is at least double the current one, saturating
// once the request comes within a factor of two of the largest
// representable size. When the allocator supports in-place growth
// that is attempted first, avoiding relocation entirely.
func (a *Array[T]) Reserve(count int) {
	if count <= a.Cap() {
		return
	}
	need := a.sizeBytes(count)
	align := alignOf[T]()

	if g, ok := a.allocator().(GrowableAllocator); ok && a.block.Ptr != nil {
		grown := g.TryGrow(a.block, align, need-a.block.Size)
		a.block = grown
		if grown.Size >= need {
			return
		}
	}

	newBlock := a.allocator().Allocate(a.amortizedBytes(need), align)
	if newBlock.IsNil() {
		panic("bpl: allocator exhausted")
	}
	oldBlock := a.block
	oldData := a.Data()
	a.block = newBlock
	copy(a.raw(), oldData)
	clear(oldData)
	if oldBlock.Ptr != nil {
		a.allocator().Deallocate(oldBlock, align)
	}
}

// Clear destroys all elements, keeping the storage.
func (a *Array[T]) Clear() {
	clear(a.Data())
	a.count = 0
}

// ResizeUninit adjusts the live count to exactly count. New elements
// have unspecified contents; shrinking destroys the tail.
func (a *Array[T]) ResizeUninit(count int) {
	if count > a.Cap() {
		a.Reserve(count)
	} else if count < a.count {
		clear(a.raw()[count:a.count])
	}
	a.count = count
}

// Resize adjusts the live count to exactly count, filling new
// elements with copies of x; shrinking destroys the tail.
func (a *Array[T]) Resize(count int, x T) {
	if count > a.count {
		a.Reserve(count)
		tail := a.raw()[a.count:count]
		for i := range tail {
			tail[i] = x
		}
	} else if count < a.count {
		clear(a.raw()[count:a.count])
	}
	a.count = count
}

// Assign replaces the contents with count copies of x, reusing the
// existing storage when it is large enough.
func (a *Array[T]) Assign(count int, x T) {
	a.discardForReuse(count)
	s := a.raw()[:count]
	for i := range s {
		s[i] = x
	}
	a.count = count
}

// AssignSlice replaces the contents with a copy of s, reusing the
// existing storage when it is large enough.
func (a *Array[T]) AssignSlice(s []T) {
	a.discardForReuse(len(s))
	copy(a.raw(), s)
	a.count = len(s)
}

// Append appends x, growing the block as needed. Appends are
// amortized O(1).
func (a *Array[T]) Append(x T) {
	a.Reserve(a.count + 1)
	a.raw()[a.count] = x
	a.count++
}

// AppendN appends n copies of x.
func (a *Array[T]) AppendN(n int, x T) {
	a.Reserve(a.count + n)
	s := a.raw()[a.count : a.count+n]
	for i := range s {
		s[i] = x
	}
	a.count += n
}

// AppendSlice appends a copy of s with a single reservation.
func (a *Array[T]) AppendSlice(s []T) {
	a.Reserve(a.count + len(s))
	copy(a.raw()[a.count:], s)
	a.count += len(s)
}

// AppendSeq appends the values produced by seq, one at a time.
func (a *Array[T]) AppendSeq(seq iter.Seq[T]) {
	for x := range seq {
		a.Append(x)
	}
}

// Insert inserts x before index i, shifting the tail up by one
// position. i may equal Len, which appends.
func (a *Array[T]) Insert(i int, x T) {
	if i < 0 || i > a.count {
		panic("bpl: index out of range")
	}
	a.Reserve(a.count + 1)
	s := a.raw()
	copy(s[i+1:a.count+1], s[i:a.count])
	s[i] = x
	a.count++
}

// InsertSlice inserts a copy of src before index i.
func (a *Array[T]) InsertSlice(i int, src []T) {
	if i < 0 || i > a.count {
		panic("bpl: index out of range")
	}
	if len(src) == 0 {
		return
	}
	a.Reserve(a.count + len(src))
	s := a.raw()
	copy(s[i+len(src):a.count+len(src)], s[i:a.count])
	copy(s[i:], src)
	a.count += len(src)
}

// Remove removes and returns the element at index i, shifting every
// following element down one position.
func (a *Array[T]) Remove(i int) T {
	if i < 0 || i >= a.count {
		panic("bpl: index out of range")
	}
	s := a.raw()
	x := s[i]
	copy(s[i:a.count-1], s[i+1:a.count])
	var zero T
	s[a.count-1] = zero
	a.count--
	return x
}

// RemoveRange removes the elements in [start, end), shifting the
// remainder down.
func (a *Array[T]) RemoveRange(start, end int) {
	if start < 0 || end < start || end > a.count {
		panic("bpl: range out of bounds")
	}
	s := a.raw()
	n := copy(s[start:], s[end:a.count])
	clear(s[start+n : a.count])
	a.count -= end - start
}

// Swap exchanges contents and allocators with other in constant time.
func (a *Array[T]) Swap(other *Array[T]) {
	*a, *other = *other, *a
}

// Take transfers ownership of the contents to the returned array,
// leaving a empty with the same allocator.
func (a *Array[T]) Take() Array[T] {
	out := *a
	a.block = Block{}
	a.count = 0
	return out
}

// Release destroys all elements and returns the block to the
// allocator. The array stays usable and empty.
func (a *Array[T]) Release() {
	a.Clear()
	if a.block.Ptr != nil {
		a.allocator().Deallocate(a.block, alignOf[T]())
		a.block = Block{}
	}
}

// ShrinkToFit reduces the block to exactly Len elements, in place
// when the allocator supports shrinking, otherwise by reallocating.
func (a *Array[T]) ShrinkToFit() {
	if a.count == 0 {
		a.Release()
		return
	}
	need := a.sizeBytes(a.count)
	if need == a.block.Size {
		return
	}
	align := alignOf[T]()
	if s, ok := a.allocator().(ShrinkableAllocator); ok {
		if s.TryShrink(a.block, align, need) {
			a.block.Size = need
			return
		}
	}
	newBlock := a.allocate(a.count)
	oldBlock := a.block
	oldData := a.Data()
	a.block = newBlock
	copy(a.raw(), oldData)
	clear(oldData)
	a.allocator().Deallocate(oldBlock, align)
}

func (a *Array[T]) allocator() Allocator {
	if a.alloc == nil {
		return GlobalAllocator{}
	}
	return a.alloc
}

// raw returns the full capacity storage, live and vacant.
func (a *Array[T]) raw() []T {
	if a.block.Ptr == nil {
		return nil
	}
	return unsafe.Slice((*T)(a.block.Ptr), a.Cap())
}

// allocate asks the allocator for storage for exactly count elements.
func (a *Array[T]) allocate(count int) Block {
	block := a.allocator().Allocate(a.sizeBytes(count), alignOf[T]())
	if block.IsNil() {
		panic("bpl: allocator exhausted")
	}
	return block
}

func (a *Array[T]) sizeBytes(count int) uintptr {
	if count < 0 {
		panic("bpl: negative count")
	}
	return strictMul(uintptr(count), sizeOf[T]())
}

// amortizedBytes returns the block size to request when need bytes
// are required: the maximum representable size when need is within a
// factor of two of it, otherwise the larger of double the current
// capacity and need.
func (a *Array[T]) amortizedBytes(need uintptr) uintptr {
	if need >= maxSize/2 {
		return maxSize
	}
	return max(2*a.block.Size, need)
}

// discardForReuse makes room for count elements: it keeps the block
// when capacity suffices (destroying any tail beyond count) and
// replaces it otherwise, discarding the old contents.
func (a *Array[T]) discardForReuse(count int) {
	if count > a.Cap() {
		clear(a.Data())
		if a.block.Ptr != nil {
			a.allocator().Deallocate(a.block, alignOf[T]())
		}
		a.block = a.allocate(count)
		a.count = 0
	} else if count < a.count {
		clear(a.raw()[count:a.count])
	}
}
