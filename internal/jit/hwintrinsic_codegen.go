// hwintrinsic_codegen.go - ARM64 硬件内建函数代码生成
//
// 表驱动的内建函数按操作数个数与 RMW 标志套用统一模式；
// 其余内建函数在 genSpecialIntrinsic 中逐个处理操作数顺序与别名规则。

package jit

import (
	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

// hwIntrinsic 一次代码生成所需的节点信息
type hwIntrinsic struct {
	id         NamedIntrinsic
	category   Category
	baseType   types.VarType
	numOps     int
	op1        *Node
	op2        *Node
	op3        *Node
	targetReg  platform.Reg
	op1Reg     platform.Reg
	op2Reg     platform.Reg
	op3Reg     platform.Reg
	emitSize   platform.EmitAttr
	opt        platform.InsOpts
	isRMW      bool
	simdSize   int
	tableDrive bool
}

// GenHWIntrinsic 为一个内建函数节点生成代码
func (cg *CodeGen) GenHWIntrinsic(node *HWIntrinsicNode) {
	intrin := hwIntrinsic{
		id:         node.ID,
		category:   node.Category(),
		baseType:   node.BaseType,
		numOps:     node.NumOperands(),
		targetReg:  node.Reg,
		op1Reg:     platform.RegNA,
		op2Reg:     platform.RegNA,
		op3Reg:     platform.RegNA,
		simdSize:   node.SIMDSize,
		tableDrive: IsTableDriven(node.ID),
	}

	errors.Assert(intrin.numOps == LookupNumArgs(node.ID), errors.J0002,
		"%s: expects %d operands, got %d", node.ID, LookupNumArgs(node.ID), intrin.numOps)

	switch intrin.numOps {
	case 3:
		intrin.op3 = node.Op(3)
		errors.Assert(intrin.op3 != nil, errors.J0002, "%s: missing operand 3", node.ID)
		intrin.op3Reg = intrin.op3.GetRegNum()
		fallthrough
	case 2:
		intrin.op2 = node.Op(2)
		errors.Assert(intrin.op2 != nil, errors.J0002, "%s: missing operand 2", node.ID)
		intrin.op2Reg = intrin.op2.GetRegNum()
		fallthrough
	case 1:
		intrin.op1 = node.Op(1)
		errors.Assert(intrin.op1 != nil, errors.J0002, "%s: missing operand 1", node.ID)
		intrin.op1Reg = intrin.op1.GetRegNum()
	case 0:
	default:
		errors.Unreached("%s: %d operands", node.ID, intrin.numOps)
	}

	if intrin.category == CategorySIMDScalar || intrin.category == CategoryScalar {
		intrin.emitSize = platform.AttrOfSize(node.BaseType.ActualSize())
		intrin.opt = platform.OptNone
	} else {
		intrin.emitSize = platform.AttrOfSize(node.SIMDSize)
		intrin.opt = platform.SimdInsOpt(intrin.emitSize, node.BaseType.Size())

		if intrin.opt == platform.Opt1D && intrin.category == CategorySimpleSIMD {
			intrin.opt = platform.OptNone
		}
	}
	errors.Assert(intrin.emitSize != platform.SizeNone, errors.J0001,
		"%s: no operand size for %s with vector size %d", node.ID, node.BaseType, node.SIMDSize)

	intrin.isRMW = node.IsRMW()

	if intrin.tableDrive {
		cg.genTableDrivenIntrinsic(&intrin)
	} else {
		cg.genSpecialIntrinsic(node, &intrin)
	}

	cg.produceReg(node)
}

// genTableDrivenIntrinsic 通用路径：指令来自表，操作数模式由个数和 RMW 决定
func (cg *CodeGen) genTableDrivenIntrinsic(intrin *hwIntrinsic) {
	emit := cg.GetEmitter()

	ins := LookupIns(intrin.id, intrin.baseType)
	errors.Assert(ins != platform.InsInvalid, errors.J0001, "%s: no instruction for %s", intrin.id, intrin.baseType)

	targetReg, op1Reg, op2Reg, op3Reg := intrin.targetReg, intrin.op1Reg, intrin.op2Reg, intrin.op3Reg

	switch intrin.numOps {
	case 1:
		emit.EmitRR(ins, intrin.emitSize, targetReg, op1Reg, intrin.opt)

	case 2:
		if intrin.isRMW {
			errors.Assert(targetReg != op2Reg, errors.J0003, "%s: target %s aliases operand 2", intrin.id, targetReg)

			if targetReg != op1Reg {
				emit.EmitRR(platform.InsMov, intrin.emitSize, targetReg, op1Reg, platform.OptNone)
			}
			emit.EmitRR(ins, intrin.emitSize, targetReg, op2Reg, intrin.opt)
		} else {
			emit.EmitRRR(ins, intrin.emitSize, targetReg, op1Reg, op2Reg, intrin.opt)
		}

	case 3:
		errors.Assert(intrin.isRMW, errors.J0001, "%s: three-operand table form must be RMW", intrin.id)
		errors.Assert(targetReg != op2Reg, errors.J0003, "%s: target %s aliases operand 2", intrin.id, targetReg)
		errors.Assert(targetReg != op3Reg, errors.J0003, "%s: target %s aliases operand 3", intrin.id, targetReg)

		if targetReg != op1Reg {
			emit.EmitRR(platform.InsMov, intrin.emitSize, targetReg, op1Reg, platform.OptNone)
		}
		emit.EmitRRR(ins, intrin.emitSize, targetReg, op2Reg, op3Reg, intrin.opt)

	default:
		errors.Unreached("%s: table-driven form with %d operands", intrin.id, intrin.numOps)
	}
}

// selectSpecialIns 选择特殊路径使用的指令
func selectSpecialIns(intrin *hwIntrinsic) platform.Ins {
	switch intrin.id {
	case NICrc32ComputeCrc32:
		if intrin.baseType == types.TypeInt {
			return platform.InsCrc32w
		}
	case NICrc32ComputeCrc32C:
		if intrin.baseType == types.TypeInt {
			return platform.InsCrc32cw
		}
	case NICrc32Arm64ComputeCrc32:
		errors.Assert(intrin.baseType == types.TypeLong, errors.J0001, "%s: base type %s", intrin.id, intrin.baseType)
		return platform.InsCrc32x
	case NICrc32Arm64ComputeCrc32C:
		errors.Assert(intrin.baseType == types.TypeLong, errors.J0001, "%s: base type %s", intrin.id, intrin.baseType)
		return platform.InsCrc32cx
	}
	return LookupIns(intrin.id, intrin.baseType)
}

// genSpecialIntrinsic 特殊路径
func (cg *CodeGen) genSpecialIntrinsic(node *HWIntrinsicNode, intrin *hwIntrinsic) {
	emit := cg.GetEmitter()

	ins := selectSpecialIns(intrin)
	errors.Assert(ins != platform.InsInvalid, errors.J0001, "%s: no instruction for %s", intrin.id, intrin.baseType)

	targetReg, op1Reg, op2Reg, op3Reg := intrin.targetReg, intrin.op1Reg, intrin.op2Reg, intrin.op3Reg
	emitSize, opt := intrin.emitSize, intrin.opt
	elemSize := platform.AttrOfSize(intrin.baseType.Size())

	switch intrin.id {
	case NIAdvSimdBitwiseSelect:
		// 按目标寄存器与哪个操作数重合选择 bsl/bif/bit，避免多余的 mov
		errors.Assert(!intrin.isRMW, errors.J0001, "%s must not be marked RMW", intrin.id)

		switch targetReg {
		case op1Reg:
			emit.EmitRRR(platform.InsBsl, emitSize, targetReg, op2Reg, op3Reg, opt)
		case op2Reg:
			emit.EmitRRR(platform.InsBif, emitSize, targetReg, op3Reg, op1Reg, opt)
		case op3Reg:
			emit.EmitRRR(platform.InsBit, emitSize, targetReg, op2Reg, op1Reg, opt)
		default:
			emit.EmitRR(platform.InsMov, emitSize, targetReg, op1Reg, platform.OptNone)
			emit.EmitRRR(platform.InsBsl, emitSize, targetReg, op2Reg, op3Reg, opt)
		}

	case NICrc32ComputeCrc32, NICrc32ComputeCrc32C, NICrc32Arm64ComputeCrc32, NICrc32Arm64ComputeCrc32C:
		emit.EmitRRR(ins, emitSize, targetReg, op1Reg, op2Reg, opt)

	case NIAdvSimdCompareLessThan, NIAdvSimdCompareLessThanOrEqual,
		NIAdvSimdArm64CompareLessThan, NIAdvSimdArm64CompareLessThanScalar,
		NIAdvSimdArm64CompareLessThanOrEqual, NIAdvSimdArm64CompareLessThanOrEqualScalar,
		NIAdvSimdAbsoluteCompareLessThan, NIAdvSimdAbsoluteCompareLessThanOrEqual,
		NIAdvSimdArm64AbsoluteCompareLessThan, NIAdvSimdArm64AbsoluteCompareLessThanScalar,
		NIAdvSimdArm64AbsoluteCompareLessThanOrEqual, NIAdvSimdArm64AbsoluteCompareLessThanOrEqualScalar:
		// 只有"大于"形式的指令，交换源操作数
		emit.EmitRRR(ins, emitSize, targetReg, op2Reg, op1Reg, opt)

	case NIAdvSimdFusedMultiplyAddScalar, NIAdvSimdFusedMultiplyAddNegatedScalar,
		NIAdvSimdFusedMultiplySubtractNegatedScalar, NIAdvSimdFusedMultiplySubtractScalar:
		// 累加数在最后: fmadd d, n, m, a
		errors.Assert(opt == platform.OptNone, errors.J0001, "%s: unexpected arrangement %s", intrin.id, opt)
		emit.EmitRRRR(ins, emitSize, targetReg, op2Reg, op3Reg, op1Reg)

	case NIAdvSimdStore:
		emit.EmitRR(ins, emitSize, op2Reg, op1Reg, opt)

	case NIAdvSimdExtract:
		helper := newImmOpHelper(cg, intrin.op2, node)

		for helper.EmitBegin(); !helper.Done(); helper.EmitCaseEnd() {
			elementIndex := int64(helper.ImmValue())

			emit.EmitRRI(ins, elemSize, targetReg, op1Reg, elementIndex, platform.OptNone)
		}

	case NIAdvSimdExtractVector64, NIAdvSimdExtractVector128:
		opt = platform.Opt16B
		if intrin.id == NIAdvSimdExtractVector64 {
			opt = platform.Opt8B
		}

		helper := newImmOpHelper(cg, intrin.op3, node)

		for helper.EmitBegin(); !helper.Done(); helper.EmitCaseEnd() {
			elementIndex := helper.ImmValue()
			byteIndex := int64(intrin.baseType.Size() * elementIndex)

			emit.EmitRRRI(ins, emitSize, targetReg, op1Reg, op2Reg, byteIndex, opt)
		}

	case NIAdvSimdInsert:
		errors.Assert(intrin.isRMW, errors.J0001, "%s must be RMW", intrin.id)
		errors.Assert(targetReg != op3Reg, errors.J0003, "%s: target %s aliases operand 3", intrin.id, targetReg)

		if targetReg != op1Reg {
			emit.EmitRR(platform.InsMov, emitSize, targetReg, op1Reg, platform.OptNone)
		}

		if intrin.op3.IsContainedDblCon() {
			errors.Assert(intrin.op2.IsContainedIntCon(), errors.J0001, "%s: float constant needs a constant index", intrin.id)
			errors.Assert(intrin.op2.IconVal == 0, errors.J0001, "%s: float constant only at index 0", intrin.id)

			emit.EmitRF(platform.InsFmov, elemSize, targetReg, intrin.op3.DconVal, platform.OptNone)
			break
		}

		helper := newImmOpHelper(cg, intrin.op2, node)

		if intrin.baseType.IsFloating() {
			for helper.EmitBegin(); !helper.Done(); helper.EmitCaseEnd() {
				elementIndex := int64(helper.ImmValue())

				emit.EmitRRII(ins, elemSize, targetReg, op3Reg, elementIndex, 0, platform.OptNone)
			}
		} else {
			for helper.EmitBegin(); !helper.Done(); helper.EmitCaseEnd() {
				elementIndex := int64(helper.ImmValue())

				emit.EmitRRI(ins, elemSize, targetReg, op3Reg, elementIndex, platform.OptNone)
			}
		}

	case NIAdvSimdDuplicateSelectedScalarToVector64, NIAdvSimdDuplicateSelectedScalarToVector128:
		helper := newImmOpHelper(cg, intrin.op2, node)

		for helper.EmitBegin(); !helper.Done(); helper.EmitCaseEnd() {
			elementIndex := int64(helper.ImmValue())

			emit.EmitRRI(ins, emitSize, targetReg, op1Reg, elementIndex, opt)
		}

	case NIAdvSimdShiftLeftLogical:
		helper := newImmOpHelper(cg, intrin.op2, node)

		for helper.EmitBegin(); !helper.Done(); helper.EmitCaseEnd() {
			shift := int64(helper.ImmValue())

			emit.EmitRRI(ins, emitSize, targetReg, op1Reg, shift, opt)
		}

	case NIAdvSimdDuplicateToVector64, NIAdvSimdDuplicateToVector128:
		switch {
		case intrin.baseType.IsFloating():
			// dup vD.T, vN.T[0]
			emit.EmitRRI(ins, emitSize, targetReg, op1Reg, 0, opt)
		case intrin.op1.IsContainedIntCon():
			emit.EmitRI(platform.InsMovi, emitSize, targetReg, intrin.op1.IconVal, opt)
		default:
			emit.EmitRR(ins, emitSize, targetReg, op1Reg, opt)
		}

	case NIVector64CreateScalarUnsafe, NIVector128CreateScalarUnsafe:
		switch {
		case intrin.op1.IsContainedDblCon():
			// fmov reg, #imm8
			emit.EmitRF(ins, elemSize, targetReg, intrin.op1.DconVal, platform.OptNone)
		case intrin.baseType.IsFloating():
			if targetReg != op1Reg {
				// fmov reg1, reg2
				emit.EmitRR(ins, elemSize, targetReg, op1Reg, platform.OptNone)
			}
		case intrin.op1.IsContainedIntCon():
			// movi reg, #imm8
			emit.EmitRI(platform.InsMovi, emitSize, targetReg, intrin.op1.IconVal, opt)
		default:
			// ins reg1[0], reg2
			emit.EmitRRI(ins, elemSize, targetReg, op1Reg, 0, platform.OptNone)
		}

	// mvni 不支持所有元素宽度，固定使用 2S/4S 排列
	case NIVector64GetZero, NIVector64GetAllBitsSet:
		emit.EmitRI(ins, emitSize, targetReg, 0, platform.Opt2S)

	case NIVector128GetZero, NIVector128GetAllBitsSet:
		emit.EmitRI(ins, emitSize, targetReg, 0, platform.Opt4S)

	default:
		errors.Unreached("%s has no special code generation", intrin.id)
	}
}
