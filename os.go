// SPDX-License-Identifier: MIT

package bpl

import (
	"sync"
)

// The virtual memory layer is the only point of contact with the
// operating system. Sizes are page-granular: ReserveMemory rounds the
// request up, and commit/decommit/release require page-multiple
// blocks. Platform implementations live in os_unix.go and
// os_windows.go.

var pageSize = sync.OnceValue(osPageSize)

// PageSize returns the size of a virtual memory page in bytes. The
// value is retrieved once per process and then cached.
func PageSize() uintptr {
	return pageSize()
}

// ReserveMemory reserves enough address space to fit size bytes,
// rounded up to page granularity, with no read or write access yet.
// It panics if size is zero or the reservation fails.
func ReserveMemory(size uintptr) Block {
	if size == 0 {
		panic("bpl: reserve of zero bytes")
	}
	block, err := osReserve(alignForward(size, PageSize()))
	if err != nil {
		panic("bpl: out of memory: " + err.Error())
	}
	return block
}

// TryCommitMemory grants read/write access to a previously reserved
// block. The block size must be a multiple of the page size.
func TryCommitMemory(b Block) bool {
	checkPageMultiple(b)
	return osCommit(b) == nil
}

// TryDecommitMemory advises the OS that the pages' contents may be
// discarded and removes access. The block size must be a multiple of
// the page size.
func TryDecommitMemory(b Block) bool {
	checkPageMultiple(b)
	return osDecommit(b) == nil
}

// TryReleaseMemory returns the address range to the OS. The block
// size must be a multiple of the page size.
func TryReleaseMemory(b Block) bool {
	checkPageMultiple(b)
	return osRelease(b) == nil
}

func checkPageMultiple(b Block) {
	if b.Size%PageSize() != 0 {
		panic("bpl: block size is not page-granular")
	}
}
