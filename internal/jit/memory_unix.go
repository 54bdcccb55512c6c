//go:build unix

// memory_unix.go - Unix/Linux/macOS 平台可执行内存分配
//
// 使用 mmap/mprotect/munmap

package jit

import (
	"golang.org/x/sys/unix"
)

// allocWritable 分配可写的匿名页
func allocWritable(size int) ([]byte, error) {
	alignedSize := alignToPage(size, unix.Getpagesize())
	return unix.Mmap(-1, 0, alignedSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
}

// protectExecutable 把页改为只读可执行
func protectExecutable(mem []byte) error {
	return unix.Mprotect(mem, unix.PROT_READ|unix.PROT_EXEC)
}

// freeExecutable 释放可执行内存
func freeExecutable(mem []byte) error {
	if len(mem) == 0 {
		return nil
	}
	return unix.Munmap(mem)
}
