//go:build windows

// memory_windows.go - Windows 平台可执行内存分配
//
// 使用 VirtualAlloc/VirtualProtect/VirtualFree

package jit

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// allocWritable 分配可写页
func allocWritable(size int) ([]byte, error) {
	alignedSize := alignToPage(size, windows.Getpagesize())
	addr, err := windows.VirtualAlloc(0, uintptr(alignedSize), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), alignedSize), nil
}

// protectExecutable 把页改为只读可执行
func protectExecutable(mem []byte) error {
	var old uint32
	return windows.VirtualProtect(uintptr(unsafe.Pointer(&mem[0])), uintptr(len(mem)), windows.PAGE_EXECUTE_READ, &old)
}

// freeExecutable 释放可执行内存
func freeExecutable(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	return windows.VirtualFree(uintptr(unsafe.Pointer(&mem[0])), 0, windows.MEM_RELEASE)
}
