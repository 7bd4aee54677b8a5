// SPDX-License-Identifier: MIT

//go:build windows

package bpl

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

func osPageSize() uintptr {
	return uintptr(windows.Getpagesize())
}

// osReserve sets aside address space without committing it; pages are
// backed on demand once osCommit runs.
func osReserve(size uintptr) (Block, error) {
	addr, err := windows.VirtualAlloc(0, size, windows.MEM_RESERVE, windows.PAGE_NOACCESS)
	if err != nil {
		return Block{}, err
	}
	return Block{Ptr: unsafe.Pointer(addr), Size: size}, nil
}

func osCommit(b Block) error {
	_, err := windows.VirtualAlloc(uintptr(b.Ptr), b.Size, windows.MEM_COMMIT, windows.PAGE_READWRITE)
	return err
}

func osDecommit(b Block) error {
	return windows.VirtualFree(uintptr(b.Ptr), b.Size, windows.MEM_DECOMMIT)
}

func osRelease(b Block) error {
	// MEM_RELEASE frees the entire reservation; size must be zero.
	return windows.VirtualFree(uintptr(b.Ptr), 0, windows.MEM_RELEASE)
}
