// regalloc.go - 寄存器分配器
//
// 本文件实现了线性扫描寄存器分配算法 (Linear Scan Register Allocation)，
// 为方法中的虚拟值分配物理寄存器，供代码生成阶段只读使用。
//
// 算法概述：
// 1. 计算每个值的活跃区间（从定义到最后使用）
// 2. 按起始位置排序活跃区间
// 3. 线性扫描，为每个区间分配寄存器
//
// 与内建函数相关的约束：
// - RMW 内建函数：除第一个操作数外的源操作数"延迟释放"，保证目标寄存器与它们不同；
//   结果优先复用第一个操作数的寄存器，省去一条 mov
// - 跳转表分派：为节点分配一个内部临时寄存器，节点的所有操作数在该位置保持活跃
//
// 没有栈帧模型，寄存器不足时报错而不是溢出。

package jit

import (
	"fmt"
	"sort"

	"github.com/tangzhangming/hwgen/internal/jit/platform"
)

// ============================================================================
// 寄存器分配结果
// ============================================================================

// RegAllocation 寄存器分配结果
type RegAllocation struct {
	// ValueRegs 虚拟值名到物理寄存器的映射
	ValueRegs map[string]platform.Reg

	// TempRegs 节点的内部临时寄存器
	TempRegs map[*HWIntrinsicNode][]platform.Reg

	// 活跃区间信息（用于调试）
	Intervals []*LiveInterval
}

// GetReg 获取虚拟值对应的物理寄存器
func (alloc *RegAllocation) GetReg(name string) (platform.Reg, bool) {
	r, ok := alloc.ValueRegs[name]
	return r, ok
}

// ============================================================================
// 活跃区间
// ============================================================================

// LiveInterval 活跃区间
// 表示一个值从定义到最后使用的范围
type LiveInterval struct {
	Value    *Node            // 对应的值（临时寄存器为 nil）
	Owner    *HWIntrinsicNode // 临时寄存器所属节点
	Start    int              // 开始位置（节点编号）
	End      int              // 结束位置（节点编号）
	Reg      platform.Reg     // 分配的物理寄存器
	IsVector bool             // 寄存器类

	// Prefer 优先复用该区间的寄存器（RMW 的第一个操作数）
	Prefer *LiveInterval
}

// NewLiveInterval 创建活跃区间
func NewLiveInterval(value *Node, start int) *LiveInterval {
	return &LiveInterval{
		Value:    value,
		Start:    start,
		End:      start,
		Reg:      platform.RegNA,
		IsVector: value != nil && value.Vector,
	}
}

// Extend 扩展区间终点
func (li *LiveInterval) Extend(pos int) {
	if pos > li.End {
		li.End = pos
	}
}

// Overlaps 检查两个区间是否重叠
func (li *LiveInterval) Overlaps(other *LiveInterval) bool {
	return li.Start < other.End && other.Start < li.End
}

func (li *LiveInterval) String() string {
	name := "temp"
	if li.Value != nil {
		name = li.Value.Name
	}
	return fmt.Sprintf("%s[%d,%d]=%s", name, li.Start, li.End, li.Reg)
}

// ============================================================================
// 寄存器分配器
// ============================================================================

// 默认可分配寄存器：X0-X15（跳过 IP0/IP1/平台寄存器），V0-V31
var (
	defaultGeneralRegs = []platform.Reg{
		platform.R0, platform.R1, platform.R2, platform.R3, platform.R4, platform.R5, platform.R6, platform.R7,
		platform.R8, platform.R9, platform.R10, platform.R11, platform.R12, platform.R13, platform.R14, platform.R15,
	}
	defaultVectorRegs = func() []platform.Reg {
		regs := make([]platform.Reg, 0, 32)
		for r := platform.V0; r <= platform.V31; r++ {
			regs = append(regs, r)
		}
		return regs
	}()
)

// RegisterAllocator 寄存器分配器
type RegisterAllocator struct {
	generalRegs []platform.Reg
	vectorRegs  []platform.Reg

	intervals []*LiveInterval // 所有活跃区间
	active    []*LiveInterval // 当前活跃的区间（按结束位置排序）

	// 寄存器状态
	freeRegs map[platform.Reg]bool

	// 结果
	allocation *RegAllocation
}

// NewRegisterAllocator 创建寄存器分配器；传入 nil 使用默认寄存器集合
func NewRegisterAllocator(generalRegs, vectorRegs []platform.Reg) *RegisterAllocator {
	if generalRegs == nil {
		generalRegs = defaultGeneralRegs
	}
	if vectorRegs == nil {
		vectorRegs = defaultVectorRegs
	}
	return &RegisterAllocator{
		generalRegs: generalRegs,
		vectorRegs:  vectorRegs,
	}
}

// Allocate 执行寄存器分配，并把结果写回节点
//
// args 是方法入口处已存在的值；节点中直接写明物理寄存器的操作数与目标不参与分配，
// 但它们占用的寄存器从可分配集合中移除。
func (ra *RegisterAllocator) Allocate(args []*Node, nodes []*HWIntrinsicNode) (*RegAllocation, error) {
	ra.allocation = &RegAllocation{
		ValueRegs: make(map[string]platform.Reg),
		TempRegs:  make(map[*HWIntrinsicNode][]platform.Reg),
	}

	// 初始化所有寄存器为空闲，排除显式使用的物理寄存器
	pinned := pinnedRegs(nodes)
	ra.freeRegs = make(map[platform.Reg]bool)
	for _, r := range ra.generalRegs {
		ra.freeRegs[r] = !pinned[r]
	}
	for _, r := range ra.vectorRegs {
		ra.freeRegs[r] = !pinned[r]
	}

	// 第一步：计算活跃区间
	if err := ra.computeLiveIntervals(args, nodes); err != nil {
		return nil, err
	}

	// 第二步：线性扫描分配
	if err := ra.linearScan(); err != nil {
		return nil, err
	}

	// 第三步：写回
	for _, interval := range ra.intervals {
		if interval.Value != nil {
			interval.Value.Reg = interval.Reg
			ra.allocation.ValueRegs[interval.Value.Name] = interval.Reg
		} else {
			interval.Owner.InternalRegs = append(interval.Owner.InternalRegs, interval.Reg)
			ra.allocation.TempRegs[interval.Owner] = append(ra.allocation.TempRegs[interval.Owner], interval.Reg)
		}
	}
	for _, node := range nodes {
		if node.Def != nil {
			node.Reg = node.Def.Reg
		}
	}

	// 保存活跃区间信息
	ra.allocation.Intervals = ra.intervals

	return ra.allocation, nil
}

func pinnedRegs(nodes []*HWIntrinsicNode) map[platform.Reg]bool {
	pinned := make(map[platform.Reg]bool)
	mark := func(n *Node) {
		if n != nil && !n.IsVirtual() && n.Kind == NodeReg && n.Reg != platform.RegNA {
			pinned[n.Reg] = true
		}
	}
	for _, node := range nodes {
		for _, op := range node.Ops {
			mark(op)
		}
		mark(node.Def)
		if node.Def == nil && node.Reg != platform.RegNA {
			pinned[node.Reg] = true
		}
	}
	return pinned
}

// ============================================================================
// 活跃区间计算
// ============================================================================

// computeLiveIntervals 计算所有值的活跃区间
func (ra *RegisterAllocator) computeLiveIntervals(args []*Node, nodes []*HWIntrinsicNode) error {
	intervals := make(map[*Node]*LiveInterval)
	var order []*LiveInterval

	newInterval := func(v *Node, start int) *LiveInterval {
		li := NewLiveInterval(v, start)
		intervals[v] = li
		order = append(order, li)
		return li
	}

	for _, arg := range args {
		if !arg.IsVirtual() {
			continue
		}
		if _, dup := intervals[arg]; dup {
			return fmt.Errorf("argument %s declared twice", arg.Name)
		}
		// 参数在第一个节点之前就已存在，未使用的参数也占用到第一个节点
		newInterval(arg, -1).Extend(0)
	}

	for pos, node := range nodes {
		// 处理操作数（使用）
		for _, op := range node.Ops {
			if op == nil || !op.IsVirtual() {
				continue
			}
			interval, ok := intervals[op]
			if !ok {
				return fmt.Errorf("%s: value %s used before it is defined", node.ID, op.Name)
			}
			interval.Extend(pos)
		}

		// 延迟释放：这些操作数在目标寄存器分配时仍然占用寄存器
		delayed := delayFreeOperands(node)
		for _, op := range delayed {
			if op.IsVirtual() {
				intervals[op].Extend(pos + 1)
			}
		}

		// 处理目标值（定义）
		if def := node.Def; def != nil && def.IsVirtual() {
			if _, dup := intervals[def]; dup {
				return fmt.Errorf("%s: value %s defined twice", node.ID, def.Name)
			}
			interval := newInterval(def, pos)
			// 未被使用的结果也要占用寄存器直到下一个节点
			interval.Extend(pos + 1)
			if op1 := node.Op(1); preferOp1(node) && op1 != nil && op1.IsVirtual() {
				interval.Prefer = intervals[op1]
			}
		}

		// 跳转表所需的临时寄存器
		if node.NeedsTempReg() && len(node.InternalRegs) == 0 {
			temp := NewLiveInterval(nil, pos)
			temp.Owner = node
			temp.End = pos + 1
			order = append(order, temp)
		}
	}

	ra.intervals = order

	// 按起始位置排序（同一位置保持定义顺序：结果先于临时寄存器）
	sort.SliceStable(ra.intervals, func(i, j int) bool {
		return ra.intervals[i].Start < ra.intervals[j].Start
	})
	return nil
}

// delayFreeOperands 返回在目标寄存器分配时必须仍然占用寄存器的操作数
func delayFreeOperands(node *HWIntrinsicNode) []*Node {
	switch {
	case node.NeedsTempReg():
		// 临时寄存器不能与任何操作数重合
		return node.Ops
	case node.IsRMW() && node.NumOperands() > 1:
		return node.Ops[1:]
	}
	return nil
}

// preferOp1 结果是否优先复用第一个操作数的寄存器
func preferOp1(node *HWIntrinsicNode) bool {
	return node.IsRMW() || node.ID == NIAdvSimdBitwiseSelect
}

// ============================================================================
// 线性扫描
// ============================================================================

// linearScan 线性扫描分配算法
func (ra *RegisterAllocator) linearScan() error {
	ra.active = make([]*LiveInterval, 0)

	for _, current := range ra.intervals {
		// 释放已经过期的区间
		ra.expireOldIntervals(current)

		reg := ra.allocateFreeReg(current)
		if reg == platform.RegNA {
			class := "general"
			if current.IsVector {
				class = "vector"
			}
			return fmt.Errorf("out of %s registers at node %d (%d live values)", class, current.Start, len(ra.active))
		}
		current.Reg = reg
		ra.addToActive(current)
	}
	return nil
}

// expireOldIntervals 释放已经结束的区间
func (ra *RegisterAllocator) expireOldIntervals(current *LiveInterval) {
	newActive := make([]*LiveInterval, 0, len(ra.active))

	for _, active := range ra.active {
		if active.End <= current.Start {
			// 区间已结束，释放寄存器
			ra.freeRegs[active.Reg] = true
		} else {
			newActive = append(newActive, active)
		}
	}

	ra.active = newActive
}

// allocateFreeReg 分配一个空闲寄存器
func (ra *RegisterAllocator) allocateFreeReg(interval *LiveInterval) platform.Reg {
	// 优先复用指定区间的寄存器
	if p := interval.Prefer; p != nil && p.Reg != platform.RegNA && p.IsVector == interval.IsVector {
		if ra.freeRegs[p.Reg] {
			ra.freeRegs[p.Reg] = false
			return p.Reg
		}
	}

	pool := ra.generalRegs
	if interval.IsVector {
		pool = ra.vectorRegs
	}

	// 寻找任意空闲寄存器
	for _, r := range pool {
		if ra.freeRegs[r] {
			ra.freeRegs[r] = false
			return r
		}
	}

	return platform.RegNA
}

// addToActive 将区间加入活跃列表（保持按结束位置排序）
func (ra *RegisterAllocator) addToActive(interval *LiveInterval) {
	// 二分查找插入位置
	i := sort.Search(len(ra.active), func(i int) bool {
		return ra.active[i].End >= interval.End
	})

	// 插入
	ra.active = append(ra.active, nil)
	copy(ra.active[i+1:], ra.active[i:])
	ra.active[i] = interval
}
