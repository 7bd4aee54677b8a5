// SPDX-License-Identifier: MIT

package bpl

import (
	"unsafe"
)

// Block describes a contiguous region of memory. It carries no
// ownership by itself; ownership is conferred by whichever arena or
// container holds it. Two blocks compare equal iff pointer and size
// are both equal, and the zero Block is the canonical "no allocation"
// sentinel.
type Block struct {
	// Ptr points to the first byte of the region.
	Ptr unsafe.Pointer
	// Size is the length of the region in bytes.
	Size uintptr
}

// IsNil reports whether b is the "no allocation" sentinel.
func (b Block) IsNil() bool {
	return b.Ptr == nil && b.Size == 0
}

// addr returns the address of the first byte of the block.
func (b Block) addr() uintptr {
	return uintptr(b.Ptr)
}

// end returns the address one past the last byte of the block.
func (b Block) end() uintptr {
	return uintptr(b.Ptr) + b.Size
}

// bytes reinterprets the block as a byte slice over its full size.
func (b Block) bytes() []byte {
	if b.Ptr == nil {
		return nil
	}
	return unsafe.Slice((*byte)(b.Ptr), b.Size)
}
