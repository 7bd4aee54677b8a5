// SPDX-License-Identifier: MIT

//go:build unix

package bpl

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

func osPageSize() uintptr {
	return uintptr(unix.Getpagesize())
}

// osReserve maps size bytes of address space with PROT_NONE: the
// range is set aside but inaccessible until osCommit grants access.
func osReserve(size uintptr) (Block, error) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_NONE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return Block{}, err
	}
	return Block{Ptr: unsafe.Pointer(unsafe.SliceData(data)), Size: uintptr(len(data))}, nil
}

func osCommit(b Block) error {
	return unix.Mprotect(b.bytes(), unix.PROT_READ|unix.PROT_WRITE)
}

func osDecommit(b Block) error {
	if err := unix.Madvise(b.bytes(), unix.MADV_DONTNEED); err != nil {
		return err
	}
	return unix.Mprotect(b.bytes(), unix.PROT_NONE)
}

func osRelease(b Block) error {
	return unix.Munmap(b.bytes())
}
