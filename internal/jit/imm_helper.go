package jit

import (
	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
)

// immDispatch 非常量立即数的分派方式
type immDispatch int

const (
	immDispatchNone            immDispatch = iota // 立即数是常量
	immDispatchBranchOnNonZero                    // 取值只有 0 和 1
	immDispatchJumpTable                          // 取值范围 [0, N)，N > 2
)

// ImmOpHelper 把运行时才知道的立即数展开成每个取值一条指令
//
// 用法：
//
//	h := newImmOpHelper(cg, immOp, node)
//	for h.EmitBegin(); !h.Done(); h.EmitCaseEnd() {
//		// 以 h.ImmValue() 为立即数发射一条指令
//	}
//
// 立即数为常量时循环只执行一次且不产生额外代码。否则：
//
//	取值为 0/1:   cbnz wImm, nonZero; <case 0>; b end; nonZero: <case 1>; end:
//	取值为 [0,N): adr xT, begin; add xT, xT, xImm, lsl #3; br xT
//	              begin: <case 0>; b end; <case 1>; b end; ... <case N-1>; end:
//
// 跳转表的每个 case 是一条指令加一条 b，共 8 字节，因此偏移为 imm << 3。
type ImmOpHelper struct {
	cg   *CodeGen
	node *HWIntrinsicNode

	immValue       int
	immUpperBound  int
	nonConstImmReg platform.Reg
	mode           immDispatch

	endLabel        platform.Label
	nonZeroLabel    platform.Label
	branchTargetReg platform.Reg
}

func newImmOpHelper(cg *CodeGen, immOp *Node, node *HWIntrinsicNode) *ImmOpHelper {
	errors.Assert(cg != nil, errors.J0004, "immediate helper without code generator")
	errors.Assert(IsImmOp(node.ID, node, immOp), errors.J0004, "%s: operand %s is not an immediate operand", node.ID, immOp)

	h := &ImmOpHelper{
		cg:              cg,
		node:            node,
		endLabel:        platform.NoLabel,
		nonZeroLabel:    platform.NoLabel,
		branchTargetReg: platform.RegNA,
	}

	if immOp.IsContainedIntCon() {
		h.nonConstImmReg = platform.RegNA
		h.mode = immDispatchNone

		bound := LookupImmUpperBound(node.ID, node.SIMDSize, node.BaseType)
		errors.Assert(immOp.IconVal >= 0 && immOp.IconVal < int64(bound), errors.J0004,
			"%s: immediate %d out of range [0, %d)", node.ID, immOp.IconVal, bound)

		h.immValue = int(immOp.IconVal)
		h.immUpperBound = h.immValue + 1
		return h
	}

	h.nonConstImmReg = immOp.GetRegNum()
	errors.Assert(h.nonConstImmReg.IsGeneral(), errors.J0004,
		"%s: non-constant immediate must live in a general register, got %s", node.ID, h.nonConstImmReg)

	h.immValue = 0
	h.immUpperBound = LookupImmUpperBound(node.ID, node.SIMDSize, node.BaseType)

	if h.testImmOpZeroOrOne() {
		h.mode = immDispatchBranchOnNonZero
		h.nonZeroLabel = cg.createTempLabel()
	} else {
		// 每个 case 必须恰好是一条指令，跳转表才能用移位算出偏移
		errors.Assert(!GeneratesMultipleIns(node.ID), errors.J0004,
			"%s generates multiple instructions per immediate case", node.ID)
		h.mode = immDispatchJumpTable
		h.branchTargetReg = node.GetSingleTempReg()
	}

	h.endLabel = cg.createTempLabel()
	return h
}

func (h *ImmOpHelper) nonConstImmOp() bool {
	return h.nonConstImmReg != platform.RegNA
}

func (h *ImmOpHelper) testImmOpZeroOrOne() bool {
	return h.nonConstImmOp() && h.immUpperBound == 2
}

// ImmValue 当前 case 的立即数
func (h *ImmOpHelper) ImmValue() int {
	return h.immValue
}

// Done 所有 case 是否已发射
func (h *ImmOpHelper) Done() bool {
	return h.immValue == h.immUpperBound
}

// EmitBegin 发射分派代码；立即数为常量时不发射任何指令
func (h *ImmOpHelper) EmitBegin() {
	if !h.nonConstImmOp() {
		return
	}

	emit := h.cg.GetEmitter()
	beginLabel := h.cg.createTempLabel()

	if h.testImmOpZeroOrOne() {
		emit.EmitJR(platform.InsCbnz, platform.Size4, h.nonZeroLabel, h.nonConstImmReg)
	} else {
		emit.EmitRL(platform.InsAdr, platform.Size8, beginLabel, h.branchTargetReg)
		emit.EmitRRRShift(platform.InsAdd, platform.Size8, h.branchTargetReg, h.branchTargetReg, h.nonConstImmReg, 3)
		emit.EmitR(platform.InsBr, platform.Size8, h.branchTargetReg)
	}

	h.cg.defineInlineTempLabel(beginLabel)
}

// EmitCaseEnd 结束当前 case：非最后一个 case 跳到末尾，最后一个 case 定义末尾标签
func (h *ImmOpHelper) EmitCaseEnd() {
	errors.Assert(!h.Done(), errors.J0004, "%s: EmitCaseEnd after the last case", h.node.ID)

	if h.nonConstImmOp() {
		isLastCase := h.immValue+1 == h.immUpperBound

		if isLastCase {
			h.cg.defineInlineTempLabel(h.endLabel)
		} else {
			h.cg.GetEmitter().EmitJ(platform.InsB, h.endLabel)

			if h.testImmOpZeroOrOne() {
				h.cg.defineInlineTempLabel(h.nonZeroLabel)
			} else {
				h.cg.defineInlineTempLabel(h.cg.createTempLabel())
			}
		}
	}

	h.immValue++
}
