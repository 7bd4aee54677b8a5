// SPDX-License-Identifier: MIT

package bpl

import (
	"math/bits"
)

const maxSize = ^uintptr(0)

// isPow2 reports whether x is a power of two.
func isPow2(x uintptr) bool {
	return x != 0 && x&(x-1) == 0
}

// alignBackward rounds x down to a multiple of alignment, which must
// be a power of two.
func alignBackward(x, alignment uintptr) uintptr {
	return x &^ (alignment - 1)
}

// alignForward rounds x up to a multiple of alignment. It panics when
// alignment is not a power of two or the result would overflow.
func alignForward(x, alignment uintptr) uintptr {
	if !isPow2(alignment) {
		panic("bpl: alignment is not a power of two")
	}
	if alignment-1 > maxSize-x {
		panic("bpl: size overflow in alignment")
	}
	return alignBackward(x+(alignment-1), alignment)
}

// checkedMul computes x*y, reporting whether the product fits.
func checkedMul(x, y uintptr) (uintptr, bool) {
	hi, lo := bits.Mul(uint(x), uint(y))
	return uintptr(lo), hi == 0
}

// strictMul computes x*y, panicking on overflow.
func strictMul(x, y uintptr) uintptr {
	product, ok := checkedMul(x, y)
	if !ok {
		panic("bpl: size overflow")
	}
	return product
}
