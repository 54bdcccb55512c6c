// memory.go - 已编译方法的可执行内存
//
// CodeCache 把编译结果装入独立的可执行页：先以 RW 权限分配并写入机器码，
// 再改为 RX 权限（W^X），之后不再修改。
// 本包不负责调用装入的代码；在 ARM64 上执行前调用方需要同步指令缓存。

package jit

import (
	stderrors "errors"
	"fmt"
	"sync"
	"unsafe"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ErrCodeCacheFull 装入后会超过缓存容量
var ErrCodeCacheFull = stderrors.New("code cache full")

// ErrExecutableMemory 当前平台不支持分配可执行内存
var ErrExecutableMemory = stderrors.New("executable memory not supported on this platform")

// InstalledMethod 已装入可执行内存的方法
type InstalledMethod struct {
	Name string
	Addr uintptr // 第一条指令的地址
	Size int     // 机器码字节数

	mem []byte // 整页映射
}

// Bytes 返回装入的机器码（只读）
func (im *InstalledMethod) Bytes() []byte {
	return im.mem[:im.Size:im.Size]
}

// CodeCache 可执行代码缓存，可被多个 goroutine 同时使用
type CodeCache struct {
	mu       sync.Mutex
	maxSize  int                         // 最大缓存大小
	usedSize int                         // 已使用大小
	entries  map[string]*InstalledMethod // 方法名 -> 装入结果
	log      *zap.Logger
}

// NewCodeCache 创建代码缓存
func NewCodeCache(maxSize int, log *zap.Logger) *CodeCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &CodeCache{
		maxSize: maxSize,
		entries: make(map[string]*InstalledMethod),
		log:     log,
	}
}

// Install 装入编译结果；同名方法先被替换
func (cc *CodeCache) Install(cm *CompiledMethod) (*InstalledMethod, error) {
	if cm == nil || len(cm.Code) == 0 {
		return nil, fmt.Errorf("install: no code")
	}

	cc.mu.Lock()
	defer cc.mu.Unlock()

	used := cc.usedSize
	old, replacing := cc.entries[cm.Name]
	if replacing {
		used -= old.Size
	}
	if used+len(cm.Code) > cc.maxSize {
		return nil, fmt.Errorf("install %s (%d bytes, %d of %d used): %w",
			cm.Name, len(cm.Code), cc.usedSize, cc.maxSize, ErrCodeCacheFull)
	}

	mem, err := allocWritable(len(cm.Code))
	if err != nil {
		return nil, fmt.Errorf("install %s: %w", cm.Name, err)
	}
	copy(mem, cm.Code)
	if err := protectExecutable(mem); err != nil {
		return nil, multierr.Append(fmt.Errorf("install %s: %w", cm.Name, err), freeExecutable(mem))
	}

	if replacing {
		if err := cc.release(old); err != nil {
			cc.log.Warn("failed to release replaced method", zap.String("method", old.Name), zap.Error(err))
		}
	}

	im := &InstalledMethod{
		Name: cm.Name,
		Addr: uintptr(unsafe.Pointer(&mem[0])),
		Size: len(cm.Code),
		mem:  mem,
	}
	cc.entries[cm.Name] = im
	cc.usedSize += im.Size

	cc.log.Debug("method installed",
		zap.String("method", im.Name),
		zap.Uintptr("addr", im.Addr),
		zap.Int("bytes", im.Size),
	)
	return im, nil
}

// Lookup 查找已装入的方法
func (cc *CodeCache) Lookup(name string) (*InstalledMethod, bool) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	im, ok := cc.entries[name]
	return im, ok
}

// Remove 释放一个方法
func (cc *CodeCache) Remove(name string) error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	im, ok := cc.entries[name]
	if !ok {
		return fmt.Errorf("method %s is not installed", name)
	}
	return cc.release(im)
}

// Clear 释放所有方法
func (cc *CodeCache) Clear() error {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var err error
	for _, im := range cc.entries {
		err = multierr.Append(err, cc.release(im))
	}
	return err
}

// UsedSize 已装入的机器码字节数
func (cc *CodeCache) UsedSize() int {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.usedSize
}

// release 调用方持有锁
func (cc *CodeCache) release(im *InstalledMethod) error {
	delete(cc.entries, im.Name)
	cc.usedSize -= im.Size
	mem := im.mem
	im.mem = nil
	return freeExecutable(mem)
}

// alignToPage 对齐到页面大小
func alignToPage(size, pageSize int) int {
	return (size + pageSize - 1) &^ (pageSize - 1)
}
