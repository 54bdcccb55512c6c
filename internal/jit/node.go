// node.go - 硬件内建函数 IR 节点
//
// 代码生成阶段看到的节点已经完成寄存器分配：每个操作数要么带物理寄存器，
// 要么是被"包含"（contained）的常量，直接编码进指令。

package jit

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

// ============================================================================
// 操作数节点
// ============================================================================

// NodeKind 操作数种类
type NodeKind int

const (
	NodeReg    NodeKind = iota // 寄存器中的值
	NodeIntCon                 // 整数常量
	NodeDblCon                 // 浮点常量
)

// Node 操作数节点
type Node struct {
	Kind      NodeKind
	Reg       platform.Reg
	Contained bool
	IconVal   int64
	DconVal   float64

	// Name 虚拟值名（如 "%a"），物理寄存器操作数为空
	Name string
	// Vector 虚拟值所需的寄存器类：true 为 SIMD&FP，false 为通用寄存器
	Vector bool
}

// RegNode 创建已分配物理寄存器的操作数
func RegNode(r platform.Reg) *Node {
	return &Node{Kind: NodeReg, Reg: r, Vector: r.IsVector()}
}

// VirtualNode 创建待分配寄存器的虚拟值
func VirtualNode(name string, vector bool) *Node {
	return &Node{Kind: NodeReg, Reg: platform.RegNA, Name: name, Vector: vector}
}

// IntCon 创建被包含的整数常量
func IntCon(v int64) *Node {
	return &Node{Kind: NodeIntCon, Reg: platform.RegNA, Contained: true, IconVal: v}
}

// DblCon 创建被包含的浮点常量
func DblCon(v float64) *Node {
	return &Node{Kind: NodeDblCon, Reg: platform.RegNA, Contained: true, DconVal: v}
}

// IsContainedIntCon 是否为编码进指令的整数常量
func (n *Node) IsContainedIntCon() bool {
	return n != nil && n.Kind == NodeIntCon && n.Contained
}

// IsContainedDblCon 是否为编码进指令的浮点常量
func (n *Node) IsContainedDblCon() bool {
	return n != nil && n.Kind == NodeDblCon && n.Contained
}

// IsVirtual 是否为尚未分配寄存器的虚拟值
func (n *Node) IsVirtual() bool {
	return n.Name != "" && n.Reg == platform.RegNA
}

// GetRegNum 返回操作数寄存器；被包含的常量返回 RegNA
func (n *Node) GetRegNum() platform.Reg {
	if n == nil || n.Contained {
		return platform.RegNA
	}
	return n.Reg
}

func (n *Node) String() string {
	switch {
	case n == nil:
		return "<nil>"
	case n.IsContainedIntCon():
		return fmt.Sprintf("#%d", n.IconVal)
	case n.IsContainedDblCon():
		return fmt.Sprintf("#%g", n.DconVal)
	case n.Name != "" && n.Reg != platform.RegNA:
		return n.Name + "(" + n.Reg.String() + ")"
	case n.Name != "":
		return n.Name
	}
	return n.Reg.String()
}

// ============================================================================
// 内建函数节点
// ============================================================================

// HWIntrinsicNode 硬件内建函数调用
type HWIntrinsicNode struct {
	ID       NamedIntrinsic
	BaseType types.VarType
	SIMDSize int
	Ops      []*Node

	// Reg 目标寄存器；不产生值的内建函数为 RegNA
	Reg platform.Reg
	// InternalRegs 分配器为跳转表预留的临时寄存器
	InternalRegs []platform.Reg

	// Def 结果值（虚拟值或物理寄存器），由加载器建立
	Def *Node
}

// NewHWIntrinsic 创建节点；SIMDSize 为 0 时取表中的固定宽度
func NewHWIntrinsic(id NamedIntrinsic, baseType types.VarType, simdSize int, ops ...*Node) *HWIntrinsicNode {
	if simdSize == 0 {
		simdSize = LookupSIMDSize(id)
	}
	return &HWIntrinsicNode{
		ID:       id,
		BaseType: baseType,
		SIMDSize: simdSize,
		Ops:      ops,
		Reg:      platform.RegNA,
	}
}

// NumOperands 返回实际操作数个数
func (n *HWIntrinsicNode) NumOperands() int {
	return len(n.Ops)
}

// Op 返回第 i 个操作数（从 1 开始）
func (n *HWIntrinsicNode) Op(i int) *Node {
	if i < 1 || i > len(n.Ops) {
		return nil
	}
	return n.Ops[i-1]
}

// Category 返回所属类别
func (n *HWIntrinsicNode) Category() Category {
	return LookupCategory(n.ID)
}

// IsRMW 是否为读-改-写形式
func (n *HWIntrinsicNode) IsRMW() bool {
	return HasRMWSemantics(n.ID)
}

// GetSingleTempReg 返回唯一的内部临时寄存器
func (n *HWIntrinsicNode) GetSingleTempReg() platform.Reg {
	errors.Assert(len(n.InternalRegs) == 1, errors.J0007,
		"%s: expected exactly one internal register, have %d", n.ID, len(n.InternalRegs))
	return n.InternalRegs[0]
}

// NeedsTempReg 立即数操作数不是常量且需要跳转表时，节点需要一个临时寄存器
func (n *HWIntrinsicNode) NeedsTempReg() bool {
	pos := ImmOpPosition(n.ID)
	if pos == 0 {
		return false
	}
	imm := n.Op(pos)
	if imm == nil || imm.IsContainedIntCon() {
		return false
	}
	// Insert 插入浮点常量时不经过立即数分派
	if n.ID == NIAdvSimdInsert && n.Op(3).IsContainedDblCon() {
		return false
	}
	return LookupImmUpperBound(n.ID, n.SIMDSize, n.BaseType) > 2
}

func (n *HWIntrinsicNode) String() string {
	var sb strings.Builder
	sb.WriteString(n.ID.String())
	fmt.Fprintf(&sb, "<%s", n.BaseType)
	if n.SIMDSize != 0 {
		fmt.Fprintf(&sb, ",%d", n.SIMDSize)
	}
	sb.WriteString(">(")
	for i, op := range n.Ops {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(op.String())
	}
	sb.WriteString(")")
	if n.Reg != platform.RegNA {
		sb.WriteString(" -> " + n.Reg.String())
	}
	return sb.String()
}
