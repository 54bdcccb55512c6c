// Package jit 实现 ARM64 硬件内建函数的代码生成
//
// 输入是一个方法：按顺序排列的内建函数节点。驱动（Compiler）负责指令集检查、
// 可选的寄存器分配和内部缺陷的捕获；CodeGen 为每个节点选择并发射机器指令。
package jit

import (
	"github.com/tangzhangming/hwgen/internal/jit/platform"
)

// Config 编译配置
type Config struct {
	// ISAs 允许使用的指令集
	ISAs map[ISA]bool
	// Allocate 是否为虚拟值运行寄存器分配
	Allocate bool
}

// DefaultConfig 返回默认配置：启用全部指令集并运行寄存器分配
func DefaultConfig() *Config {
	isas := make(map[ISA]bool)
	for _, isa := range AllISAs() {
		isas[isa] = true
	}
	return &Config{
		ISAs:     isas,
		Allocate: true,
	}
}

// Supports 检查指令集是否启用（64 位扩展同时要求基础指令集）
func (c *Config) Supports(isa ISA) bool {
	if !c.ISAs[isa] {
		return false
	}
	if base := isa.Base(); base != isa {
		return c.ISAs[base]
	}
	return true
}

// Method 待编译的方法
type Method struct {
	Name  string
	Args  []*Node
	Nodes []*HWIntrinsicNode
}

// CompiledMethod 编译结果
type CompiledMethod struct {
	Name   string
	Code   []byte
	Instrs []platform.Instr
	Labels map[platform.Label]int

	// Bindings 虚拟值名到物理寄存器
	Bindings map[string]platform.Reg
	// Temps 每个节点（按方法内下标）的内部临时寄存器
	Temps map[int][]platform.Reg
}

// Size 机器码字节数
func (cm *CompiledMethod) Size() int {
	return len(cm.Code)
}

// Stats 编译统计快照
type Stats struct {
	Compiled      int64 // 成功编译的方法数
	Failed        int64 // 因内部缺陷失败的方法数
	Rejected      int64 // 因输入不合法被拒绝的方法数
	Nodes         int64 // 处理的节点数
	Instrs        int64 // 发射的指令数
	CodeBytes     int64 // 机器码字节数
	CompileTimeNs int64 // 总编译时间 (ns)
	CacheHits     int64 // 缓存命中
	CacheMisses   int64 // 缓存未命中
}
