package jit

import (
	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

// NamedIntrinsic 内建函数标识
type NamedIntrinsic int

const (
	NIIllegal NamedIntrinsic = iota

	// AdvSimd
	NIAdvSimdAbs
	NIAdvSimdAbsScalar
	NIAdvSimdAbsoluteCompareGreaterThan
	NIAdvSimdAbsoluteCompareGreaterThanOrEqual
	NIAdvSimdAbsoluteCompareLessThan
	NIAdvSimdAbsoluteCompareLessThanOrEqual
	NIAdvSimdAbsoluteDifference
	NIAdvSimdAdd
	NIAdvSimdAddPairwise
	NIAdvSimdAddPairwiseWideningAndAdd
	NIAdvSimdAddSaturate
	NIAdvSimdAddScalar
	NIAdvSimdAnd
	NIAdvSimdBitwiseClear
	NIAdvSimdBitwiseSelect
	NIAdvSimdCeiling
	NIAdvSimdCompareEqual
	NIAdvSimdCompareGreaterThan
	NIAdvSimdCompareGreaterThanOrEqual
	NIAdvSimdCompareLessThan
	NIAdvSimdCompareLessThanOrEqual
	NIAdvSimdDivideScalar
	NIAdvSimdDuplicateSelectedScalarToVector64
	NIAdvSimdDuplicateSelectedScalarToVector128
	NIAdvSimdDuplicateToVector64
	NIAdvSimdDuplicateToVector128
	NIAdvSimdExtract
	NIAdvSimdExtractVector64
	NIAdvSimdExtractVector128
	NIAdvSimdFloor
	NIAdvSimdFusedMultiplyAdd
	NIAdvSimdFusedMultiplyAddNegatedScalar
	NIAdvSimdFusedMultiplyAddScalar
	NIAdvSimdFusedMultiplySubtract
	NIAdvSimdFusedMultiplySubtractNegatedScalar
	NIAdvSimdFusedMultiplySubtractScalar
	NIAdvSimdInsert
	NIAdvSimdLeadingSignCount
	NIAdvSimdLeadingZeroCount
	NIAdvSimdLoadVector64
	NIAdvSimdLoadVector128
	NIAdvSimdMax
	NIAdvSimdMin
	NIAdvSimdMultiply
	NIAdvSimdMultiplyAdd
	NIAdvSimdMultiplyScalar
	NIAdvSimdMultiplySubtract
	NIAdvSimdNegate
	NIAdvSimdNegateScalar
	NIAdvSimdNot
	NIAdvSimdOr
	NIAdvSimdOrNot
	NIAdvSimdPopCount
	NIAdvSimdRoundToNearest
	NIAdvSimdRoundToZero
	NIAdvSimdShiftLeftLogical
	NIAdvSimdSqrtScalar
	NIAdvSimdStore
	NIAdvSimdSubtract
	NIAdvSimdSubtractSaturate
	NIAdvSimdSubtractScalar
	NIAdvSimdXor

	// AdvSimd.Arm64
	NIAdvSimdArm64AbsoluteCompareLessThan
	NIAdvSimdArm64AbsoluteCompareLessThanOrEqual
	NIAdvSimdArm64AbsoluteCompareLessThanOrEqualScalar
	NIAdvSimdArm64AbsoluteCompareLessThanScalar
	NIAdvSimdArm64CompareEqual
	NIAdvSimdArm64CompareEqualScalar
	NIAdvSimdArm64CompareGreaterThan
	NIAdvSimdArm64CompareGreaterThanScalar
	NIAdvSimdArm64CompareLessThan
	NIAdvSimdArm64CompareLessThanOrEqual
	NIAdvSimdArm64CompareLessThanOrEqualScalar
	NIAdvSimdArm64CompareLessThanScalar
	NIAdvSimdArm64Divide
	NIAdvSimdArm64Sqrt

	// ArmBase
	NIArmBaseLeadingZeroCount
	NIArmBaseReverseElementBits
	NIArmBaseArm64LeadingSignCount
	NIArmBaseArm64LeadingZeroCount
	NIArmBaseArm64ReverseElementBits

	// Crc32
	NICrc32ComputeCrc32
	NICrc32ComputeCrc32C
	NICrc32Arm64ComputeCrc32
	NICrc32Arm64ComputeCrc32C

	// Vector64 / Vector128
	NIVector64CreateScalarUnsafe
	NIVector64GetAllBitsSet
	NIVector64GetZero
	NIVector128CreateScalarUnsafe
	NIVector128GetAllBitsSet
	NIVector128GetZero

	NICount
)

// 元素类型分组
var (
	allInts       = []types.VarType{types.TypeByte, types.TypeUByte, types.TypeShort, types.TypeUShort, types.TypeInt, types.TypeUInt, types.TypeLong, types.TypeULong}
	smallInts     = []types.VarType{types.TypeByte, types.TypeUByte, types.TypeShort, types.TypeUShort, types.TypeInt, types.TypeUInt}
	signedSmall   = []types.VarType{types.TypeByte, types.TypeShort, types.TypeInt}
	unsignedSmall = []types.VarType{types.TypeUByte, types.TypeUShort, types.TypeUInt}
	signedInts    = []types.VarType{types.TypeByte, types.TypeShort, types.TypeInt, types.TypeLong}
	unsignedInts  = []types.VarType{types.TypeUByte, types.TypeUShort, types.TypeUInt, types.TypeULong}
	longs         = []types.VarType{types.TypeLong, types.TypeULong}
	byteTypes     = []types.VarType{types.TypeByte, types.TypeUByte}
	floats        = []types.VarType{types.TypeFloat, types.TypeDouble}
	single        = []types.VarType{types.TypeFloat}
	double        = []types.VarType{types.TypeDouble}
	allTypes      = []types.VarType{types.TypeByte, types.TypeUByte, types.TypeShort, types.TypeUShort, types.TypeInt, types.TypeUInt, types.TypeLong, types.TypeULong, types.TypeFloat, types.TypeDouble}
	notLongTypes  = []types.VarType{types.TypeByte, types.TypeUByte, types.TypeShort, types.TypeUShort, types.TypeInt, types.TypeUInt, types.TypeFloat}
)

var none insRow

// intrinsicTable 按 NamedIntrinsic 索引
var intrinsicTable = [NICount]intrinsicInfo{
	NIIllegal: {id: NIIllegal, name: "Illegal"},

	// ------------------------------------------------------------------
	// AdvSimd
	// ------------------------------------------------------------------
	NIAdvSimdAbs: {id: NIAdvSimdAbs, isa: ISAAdvSimd, name: "Abs", numArgs: 1,
		ins:      none.with(platform.InsAbs, signedSmall...).with(platform.InsFabs, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdAbsScalar: {id: NIAdvSimdAbsScalar, isa: ISAAdvSimd, name: "AbsScalar", simdSize: 8, numArgs: 1,
		ins:      none.with(platform.InsAbs, types.TypeLong).with(platform.InsFabs, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdAbsoluteCompareGreaterThan: {id: NIAdvSimdAbsoluteCompareGreaterThan, isa: ISAAdvSimd, name: "AbsoluteCompareGreaterThan", numArgs: 2,
		ins:      none.with(platform.InsFacgt, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdAbsoluteCompareGreaterThanOrEqual: {id: NIAdvSimdAbsoluteCompareGreaterThanOrEqual, isa: ISAAdvSimd, name: "AbsoluteCompareGreaterThanOrEqual", numArgs: 2,
		ins:      none.with(platform.InsFacge, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdAbsoluteCompareLessThan: {id: NIAdvSimdAbsoluteCompareLessThan, isa: ISAAdvSimd, name: "AbsoluteCompareLessThan", numArgs: 2,
		ins:      none.with(platform.InsFacgt, single...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdAbsoluteCompareLessThanOrEqual: {id: NIAdvSimdAbsoluteCompareLessThanOrEqual, isa: ISAAdvSimd, name: "AbsoluteCompareLessThanOrEqual", numArgs: 2,
		ins:      none.with(platform.InsFacge, single...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdAbsoluteDifference: {id: NIAdvSimdAbsoluteDifference, isa: ISAAdvSimd, name: "AbsoluteDifference", numArgs: 2,
		ins:      none.with(platform.InsSabd, signedSmall...).with(platform.InsUabd, unsignedSmall...).with(platform.InsFabd, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdAdd: {id: NIAdvSimdAdd, isa: ISAAdvSimd, name: "Add", numArgs: 2,
		ins:      none.with(platform.InsAdd, allInts...).with(platform.InsFadd, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdAddPairwise: {id: NIAdvSimdAddPairwise, isa: ISAAdvSimd, name: "AddPairwise", numArgs: 2,
		ins:      none.with(platform.InsAddp, smallInts...).with(platform.InsFaddp, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdAddPairwiseWideningAndAdd: {id: NIAdvSimdAddPairwiseWideningAndAdd, isa: ISAAdvSimd, name: "AddPairwiseWideningAndAdd", numArgs: 2,
		ins:      none.with(platform.InsSadalp, signedSmall...).with(platform.InsUadalp, unsignedSmall...),
		category: CategorySimpleSIMD, flags: FlagHasRMWSemantics},
	NIAdvSimdAddSaturate: {id: NIAdvSimdAddSaturate, isa: ISAAdvSimd, name: "AddSaturate", numArgs: 2,
		ins:      none.with(platform.InsSqadd, signedInts...).with(platform.InsUqadd, unsignedInts...),
		category: CategorySimpleSIMD},
	NIAdvSimdAddScalar: {id: NIAdvSimdAddScalar, isa: ISAAdvSimd, name: "AddScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsAdd, longs...).with(platform.InsFadd, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdAnd: {id: NIAdvSimdAnd, isa: ISAAdvSimd, name: "And", numArgs: 2,
		ins:      none.with(platform.InsAnd, allTypes...),
		category: CategorySimpleSIMD},
	NIAdvSimdBitwiseClear: {id: NIAdvSimdBitwiseClear, isa: ISAAdvSimd, name: "BitwiseClear", numArgs: 2,
		ins:      none.with(platform.InsBic, allTypes...),
		category: CategorySimpleSIMD},
	NIAdvSimdBitwiseSelect: {id: NIAdvSimdBitwiseSelect, isa: ISAAdvSimd, name: "BitwiseSelect", numArgs: 3,
		ins:      none.with(platform.InsBsl, allTypes...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdCeiling: {id: NIAdvSimdCeiling, isa: ISAAdvSimd, name: "Ceiling", numArgs: 1,
		ins:      none.with(platform.InsFrintp, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdCompareEqual: {id: NIAdvSimdCompareEqual, isa: ISAAdvSimd, name: "CompareEqual", numArgs: 2,
		ins:      none.with(platform.InsCmeq, smallInts...).with(platform.InsFcmeq, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdCompareGreaterThan: {id: NIAdvSimdCompareGreaterThan, isa: ISAAdvSimd, name: "CompareGreaterThan", numArgs: 2,
		ins:      none.with(platform.InsCmgt, signedSmall...).with(platform.InsCmhi, unsignedSmall...).with(platform.InsFcmgt, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdCompareGreaterThanOrEqual: {id: NIAdvSimdCompareGreaterThanOrEqual, isa: ISAAdvSimd, name: "CompareGreaterThanOrEqual", numArgs: 2,
		ins:      none.with(platform.InsCmge, signedSmall...).with(platform.InsCmhs, unsignedSmall...).with(platform.InsFcmge, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdCompareLessThan: {id: NIAdvSimdCompareLessThan, isa: ISAAdvSimd, name: "CompareLessThan", numArgs: 2,
		ins:      none.with(platform.InsCmgt, signedSmall...).with(platform.InsCmhi, unsignedSmall...).with(platform.InsFcmgt, single...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdCompareLessThanOrEqual: {id: NIAdvSimdCompareLessThanOrEqual, isa: ISAAdvSimd, name: "CompareLessThanOrEqual", numArgs: 2,
		ins:      none.with(platform.InsCmge, signedSmall...).with(platform.InsCmhs, unsignedSmall...).with(platform.InsFcmge, single...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdDivideScalar: {id: NIAdvSimdDivideScalar, isa: ISAAdvSimd, name: "DivideScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsFdiv, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdDuplicateSelectedScalarToVector64: {id: NIAdvSimdDuplicateSelectedScalarToVector64, isa: ISAAdvSimd, name: "DuplicateSelectedScalarToVector64", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsDup, notLongTypes...),
		category: CategoryIMM, flags: FlagSpecialCodeGen, immOp: 2, immBound: immBoundLanes},
	NIAdvSimdDuplicateSelectedScalarToVector128: {id: NIAdvSimdDuplicateSelectedScalarToVector128, isa: ISAAdvSimd, name: "DuplicateSelectedScalarToVector128", simdSize: 16, numArgs: 2,
		ins:      none.with(platform.InsDup, allTypes...),
		category: CategoryIMM, flags: FlagSpecialCodeGen, immOp: 2, immBound: immBoundLanes},
	NIAdvSimdDuplicateToVector64: {id: NIAdvSimdDuplicateToVector64, isa: ISAAdvSimd, name: "DuplicateToVector64", simdSize: 8, numArgs: 1,
		ins:      none.with(platform.InsDup, notLongTypes...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
	NIAdvSimdDuplicateToVector128: {id: NIAdvSimdDuplicateToVector128, isa: ISAAdvSimd, name: "DuplicateToVector128", simdSize: 16, numArgs: 1,
		ins:      none.with(platform.InsDup, allTypes...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
	NIAdvSimdExtract: {id: NIAdvSimdExtract, isa: ISAAdvSimd, name: "Extract", numArgs: 2,
		ins: none.with(platform.InsSmov, types.TypeByte, types.TypeShort).
			with(platform.InsUmov, types.TypeUByte, types.TypeUShort, types.TypeInt, types.TypeUInt, types.TypeLong, types.TypeULong).
			with(platform.InsDup, floats...),
		category: CategoryIMM, flags: FlagSpecialCodeGen, immOp: 2, immBound: immBoundLanes},
	NIAdvSimdExtractVector64: {id: NIAdvSimdExtractVector64, isa: ISAAdvSimd, name: "ExtractVector64", simdSize: 8, numArgs: 3,
		ins:      none.with(platform.InsExt, allTypes...),
		category: CategoryIMM, flags: FlagSpecialCodeGen, immOp: 3, immBound: immBoundLanes},
	NIAdvSimdExtractVector128: {id: NIAdvSimdExtractVector128, isa: ISAAdvSimd, name: "ExtractVector128", simdSize: 16, numArgs: 3,
		ins:      none.with(platform.InsExt, allTypes...),
		category: CategoryIMM, flags: FlagSpecialCodeGen, immOp: 3, immBound: immBoundLanes},
	NIAdvSimdFloor: {id: NIAdvSimdFloor, isa: ISAAdvSimd, name: "Floor", numArgs: 1,
		ins:      none.with(platform.InsFrintm, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdFusedMultiplyAdd: {id: NIAdvSimdFusedMultiplyAdd, isa: ISAAdvSimd, name: "FusedMultiplyAdd", numArgs: 3,
		ins:      none.with(platform.InsFmla, floats...),
		category: CategorySimpleSIMD, flags: FlagHasRMWSemantics},
	NIAdvSimdFusedMultiplyAddNegatedScalar: {id: NIAdvSimdFusedMultiplyAddNegatedScalar, isa: ISAAdvSimd, name: "FusedMultiplyAddNegatedScalar", simdSize: 8, numArgs: 3,
		ins:      none.with(platform.InsFnmadd, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdFusedMultiplyAddScalar: {id: NIAdvSimdFusedMultiplyAddScalar, isa: ISAAdvSimd, name: "FusedMultiplyAddScalar", simdSize: 8, numArgs: 3,
		ins:      none.with(platform.InsFmadd, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdFusedMultiplySubtract: {id: NIAdvSimdFusedMultiplySubtract, isa: ISAAdvSimd, name: "FusedMultiplySubtract", numArgs: 3,
		ins:      none.with(platform.InsFmls, floats...),
		category: CategorySimpleSIMD, flags: FlagHasRMWSemantics},
	NIAdvSimdFusedMultiplySubtractNegatedScalar: {id: NIAdvSimdFusedMultiplySubtractNegatedScalar, isa: ISAAdvSimd, name: "FusedMultiplySubtractNegatedScalar", simdSize: 8, numArgs: 3,
		ins:      none.with(platform.InsFnmsub, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdFusedMultiplySubtractScalar: {id: NIAdvSimdFusedMultiplySubtractScalar, isa: ISAAdvSimd, name: "FusedMultiplySubtractScalar", simdSize: 8, numArgs: 3,
		ins:      none.with(platform.InsFmsub, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdInsert: {id: NIAdvSimdInsert, isa: ISAAdvSimd, name: "Insert", numArgs: 3,
		ins:      none.with(platform.InsIns, allTypes...),
		category: CategoryIMM, flags: FlagSpecialCodeGen | FlagHasRMWSemantics, immOp: 2, immBound: immBoundLanes},
	NIAdvSimdLeadingSignCount: {id: NIAdvSimdLeadingSignCount, isa: ISAAdvSimd, name: "LeadingSignCount", numArgs: 1,
		ins:      none.with(platform.InsCls, signedSmall...),
		category: CategorySimpleSIMD},
	NIAdvSimdLeadingZeroCount: {id: NIAdvSimdLeadingZeroCount, isa: ISAAdvSimd, name: "LeadingZeroCount", numArgs: 1,
		ins:      none.with(platform.InsClz, smallInts...),
		category: CategorySimpleSIMD},
	NIAdvSimdLoadVector64: {id: NIAdvSimdLoadVector64, isa: ISAAdvSimd, name: "LoadVector64", simdSize: 8, numArgs: 1,
		ins:      none.with(platform.InsLd1, allTypes...),
		category: CategoryMemoryLoad},
	NIAdvSimdLoadVector128: {id: NIAdvSimdLoadVector128, isa: ISAAdvSimd, name: "LoadVector128", simdSize: 16, numArgs: 1,
		ins:      none.with(platform.InsLd1, allTypes...),
		category: CategoryMemoryLoad},
	NIAdvSimdMax: {id: NIAdvSimdMax, isa: ISAAdvSimd, name: "Max", numArgs: 2,
		ins:      none.with(platform.InsSmax, signedSmall...).with(platform.InsUmax, unsignedSmall...).with(platform.InsFmax, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdMin: {id: NIAdvSimdMin, isa: ISAAdvSimd, name: "Min", numArgs: 2,
		ins:      none.with(platform.InsSmin, signedSmall...).with(platform.InsUmin, unsignedSmall...).with(platform.InsFmin, single...),
		category: CategorySimpleSIMD},
	NIAdvSimdMultiply: {id: NIAdvSimdMultiply, isa: ISAAdvSimd, name: "Multiply", numArgs: 2,
		ins:      none.with(platform.InsMul, smallInts...).with(platform.InsFmul, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdMultiplyAdd: {id: NIAdvSimdMultiplyAdd, isa: ISAAdvSimd, name: "MultiplyAdd", numArgs: 3,
		ins:      none.with(platform.InsMla, smallInts...),
		category: CategorySimpleSIMD, flags: FlagHasRMWSemantics},
	NIAdvSimdMultiplyScalar: {id: NIAdvSimdMultiplyScalar, isa: ISAAdvSimd, name: "MultiplyScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsFmul, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdMultiplySubtract: {id: NIAdvSimdMultiplySubtract, isa: ISAAdvSimd, name: "MultiplySubtract", numArgs: 3,
		ins:      none.with(platform.InsMls, smallInts...),
		category: CategorySimpleSIMD, flags: FlagHasRMWSemantics},
	NIAdvSimdNegate: {id: NIAdvSimdNegate, isa: ISAAdvSimd, name: "Negate", numArgs: 1,
		ins:      none.with(platform.InsNeg, signedSmall...).with(platform.InsFneg, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdNegateScalar: {id: NIAdvSimdNegateScalar, isa: ISAAdvSimd, name: "NegateScalar", simdSize: 8, numArgs: 1,
		ins:      none.with(platform.InsNeg, types.TypeLong).with(platform.InsFneg, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdNot: {id: NIAdvSimdNot, isa: ISAAdvSimd, name: "Not", numArgs: 1,
		ins:      none.with(platform.InsNot, allTypes...),
		category: CategorySimpleSIMD},
	NIAdvSimdOr: {id: NIAdvSimdOr, isa: ISAAdvSimd, name: "Or", numArgs: 2,
		ins:      none.with(platform.InsOrr, allTypes...),
		category: CategorySimpleSIMD},
	NIAdvSimdOrNot: {id: NIAdvSimdOrNot, isa: ISAAdvSimd, name: "OrNot", numArgs: 2,
		ins:      none.with(platform.InsOrn, allTypes...),
		category: CategorySimpleSIMD},
	NIAdvSimdPopCount: {id: NIAdvSimdPopCount, isa: ISAAdvSimd, name: "PopCount", numArgs: 1,
		ins:      none.with(platform.InsCnt, byteTypes...),
		category: CategorySimpleSIMD},
	NIAdvSimdRoundToNearest: {id: NIAdvSimdRoundToNearest, isa: ISAAdvSimd, name: "RoundToNearest", numArgs: 1,
		ins:      none.with(platform.InsFrintn, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdRoundToZero: {id: NIAdvSimdRoundToZero, isa: ISAAdvSimd, name: "RoundToZero", numArgs: 1,
		ins:      none.with(platform.InsFrintz, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdShiftLeftLogical: {id: NIAdvSimdShiftLeftLogical, isa: ISAAdvSimd, name: "ShiftLeftLogical", numArgs: 2,
		ins:      none.with(platform.InsShl, allInts...),
		category: CategoryIMM, flags: FlagSpecialCodeGen, immOp: 2, immBound: immBoundElemBits},
	NIAdvSimdSqrtScalar: {id: NIAdvSimdSqrtScalar, isa: ISAAdvSimd, name: "SqrtScalar", simdSize: 8, numArgs: 1,
		ins:      none.with(platform.InsFsqrt, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdStore: {id: NIAdvSimdStore, isa: ISAAdvSimd, name: "Store", numArgs: 2,
		ins:      none.with(platform.InsSt1, allTypes...),
		category: CategoryMemoryStore, flags: FlagSpecialCodeGen | FlagNoResult},
	NIAdvSimdSubtract: {id: NIAdvSimdSubtract, isa: ISAAdvSimd, name: "Subtract", numArgs: 2,
		ins:      none.with(platform.InsSub, allInts...).with(platform.InsFsub, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdSubtractSaturate: {id: NIAdvSimdSubtractSaturate, isa: ISAAdvSimd, name: "SubtractSaturate", numArgs: 2,
		ins:      none.with(platform.InsSqsub, signedInts...).with(platform.InsUqsub, unsignedInts...),
		category: CategorySimpleSIMD},
	NIAdvSimdSubtractScalar: {id: NIAdvSimdSubtractScalar, isa: ISAAdvSimd, name: "SubtractScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsSub, longs...).with(platform.InsFsub, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdXor: {id: NIAdvSimdXor, isa: ISAAdvSimd, name: "Xor", numArgs: 2,
		ins:      none.with(platform.InsEor, allTypes...),
		category: CategorySimpleSIMD},

	// ------------------------------------------------------------------
	// AdvSimd.Arm64
	// ------------------------------------------------------------------
	NIAdvSimdArm64AbsoluteCompareLessThan: {id: NIAdvSimdArm64AbsoluteCompareLessThan, isa: ISAAdvSimdArm64, name: "AbsoluteCompareLessThan", simdSize: 16, numArgs: 2,
		ins:      none.with(platform.InsFacgt, double...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64AbsoluteCompareLessThanOrEqual: {id: NIAdvSimdArm64AbsoluteCompareLessThanOrEqual, isa: ISAAdvSimdArm64, name: "AbsoluteCompareLessThanOrEqual", simdSize: 16, numArgs: 2,
		ins:      none.with(platform.InsFacge, double...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64AbsoluteCompareLessThanOrEqualScalar: {id: NIAdvSimdArm64AbsoluteCompareLessThanOrEqualScalar, isa: ISAAdvSimdArm64, name: "AbsoluteCompareLessThanOrEqualScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsFacge, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64AbsoluteCompareLessThanScalar: {id: NIAdvSimdArm64AbsoluteCompareLessThanScalar, isa: ISAAdvSimdArm64, name: "AbsoluteCompareLessThanScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsFacgt, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64CompareEqual: {id: NIAdvSimdArm64CompareEqual, isa: ISAAdvSimdArm64, name: "CompareEqual", simdSize: 16, numArgs: 2,
		ins:      none.with(platform.InsCmeq, longs...).with(platform.InsFcmeq, double...),
		category: CategorySimpleSIMD},
	NIAdvSimdArm64CompareEqualScalar: {id: NIAdvSimdArm64CompareEqualScalar, isa: ISAAdvSimdArm64, name: "CompareEqualScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsCmeq, longs...).with(platform.InsFcmeq, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdArm64CompareGreaterThan: {id: NIAdvSimdArm64CompareGreaterThan, isa: ISAAdvSimdArm64, name: "CompareGreaterThan", simdSize: 16, numArgs: 2,
		ins:      none.with(platform.InsCmgt, types.TypeLong).with(platform.InsCmhi, types.TypeULong).with(platform.InsFcmgt, double...),
		category: CategorySimpleSIMD},
	NIAdvSimdArm64CompareGreaterThanScalar: {id: NIAdvSimdArm64CompareGreaterThanScalar, isa: ISAAdvSimdArm64, name: "CompareGreaterThanScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsCmgt, types.TypeLong).with(platform.InsCmhi, types.TypeULong).with(platform.InsFcmgt, floats...),
		category: CategorySIMDScalar},
	NIAdvSimdArm64CompareLessThan: {id: NIAdvSimdArm64CompareLessThan, isa: ISAAdvSimdArm64, name: "CompareLessThan", simdSize: 16, numArgs: 2,
		ins:      none.with(platform.InsCmgt, types.TypeLong).with(platform.InsCmhi, types.TypeULong).with(platform.InsFcmgt, double...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64CompareLessThanOrEqual: {id: NIAdvSimdArm64CompareLessThanOrEqual, isa: ISAAdvSimdArm64, name: "CompareLessThanOrEqual", simdSize: 16, numArgs: 2,
		ins:      none.with(platform.InsCmge, types.TypeLong).with(platform.InsCmhs, types.TypeULong).with(platform.InsFcmge, double...),
		category: CategorySimpleSIMD, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64CompareLessThanOrEqualScalar: {id: NIAdvSimdArm64CompareLessThanOrEqualScalar, isa: ISAAdvSimdArm64, name: "CompareLessThanOrEqualScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsCmge, types.TypeLong).with(platform.InsCmhs, types.TypeULong).with(platform.InsFcmge, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64CompareLessThanScalar: {id: NIAdvSimdArm64CompareLessThanScalar, isa: ISAAdvSimdArm64, name: "CompareLessThanScalar", simdSize: 8, numArgs: 2,
		ins:      none.with(platform.InsCmgt, types.TypeLong).with(platform.InsCmhi, types.TypeULong).with(platform.InsFcmgt, floats...),
		category: CategorySIMDScalar, flags: FlagSpecialCodeGen},
	NIAdvSimdArm64Divide: {id: NIAdvSimdArm64Divide, isa: ISAAdvSimdArm64, name: "Divide", numArgs: 2,
		ins:      none.with(platform.InsFdiv, floats...),
		category: CategorySimpleSIMD},
	NIAdvSimdArm64Sqrt: {id: NIAdvSimdArm64Sqrt, isa: ISAAdvSimdArm64, name: "Sqrt", numArgs: 1,
		ins:      none.with(platform.InsFsqrt, floats...),
		category: CategorySimpleSIMD},

	// ------------------------------------------------------------------
	// ArmBase
	// ------------------------------------------------------------------
	NIArmBaseLeadingZeroCount: {id: NIArmBaseLeadingZeroCount, isa: ISAArmBase, name: "LeadingZeroCount", numArgs: 1,
		ins:      none.with(platform.InsClz, types.TypeInt, types.TypeUInt),
		category: CategoryScalar},
	NIArmBaseReverseElementBits: {id: NIArmBaseReverseElementBits, isa: ISAArmBase, name: "ReverseElementBits", numArgs: 1,
		ins:      none.with(platform.InsRbit, types.TypeInt, types.TypeUInt),
		category: CategoryScalar},
	NIArmBaseArm64LeadingSignCount: {id: NIArmBaseArm64LeadingSignCount, isa: ISAArmBaseArm64, name: "LeadingSignCount", numArgs: 1,
		ins:      none.with(platform.InsCls, types.TypeInt, types.TypeLong),
		category: CategoryScalar},
	NIArmBaseArm64LeadingZeroCount: {id: NIArmBaseArm64LeadingZeroCount, isa: ISAArmBaseArm64, name: "LeadingZeroCount", numArgs: 1,
		ins:      none.with(platform.InsClz, longs...),
		category: CategoryScalar},
	NIArmBaseArm64ReverseElementBits: {id: NIArmBaseArm64ReverseElementBits, isa: ISAArmBaseArm64, name: "ReverseElementBits", numArgs: 1,
		ins:      none.with(platform.InsRbit, longs...),
		category: CategoryScalar},

	// ------------------------------------------------------------------
	// Crc32
	// ------------------------------------------------------------------
	NICrc32ComputeCrc32: {id: NICrc32ComputeCrc32, isa: ISACrc32, name: "ComputeCrc32", numArgs: 2,
		ins:      none.with(platform.InsCrc32b, types.TypeUByte).with(platform.InsCrc32h, types.TypeUShort).with(platform.InsCrc32w, types.TypeUInt),
		category: CategoryScalar, flags: FlagSpecialCodeGen},
	NICrc32ComputeCrc32C: {id: NICrc32ComputeCrc32C, isa: ISACrc32, name: "ComputeCrc32C", numArgs: 2,
		ins:      none.with(platform.InsCrc32cb, types.TypeUByte).with(platform.InsCrc32ch, types.TypeUShort).with(platform.InsCrc32cw, types.TypeUInt),
		category: CategoryScalar, flags: FlagSpecialCodeGen},
	NICrc32Arm64ComputeCrc32: {id: NICrc32Arm64ComputeCrc32, isa: ISACrc32Arm64, name: "ComputeCrc32", numArgs: 2,
		ins:      none.with(platform.InsCrc32x, types.TypeLong),
		category: CategoryScalar, flags: FlagSpecialCodeGen},
	NICrc32Arm64ComputeCrc32C: {id: NICrc32Arm64ComputeCrc32C, isa: ISACrc32Arm64, name: "ComputeCrc32C", numArgs: 2,
		ins:      none.with(platform.InsCrc32cx, types.TypeLong),
		category: CategoryScalar, flags: FlagSpecialCodeGen},

	// ------------------------------------------------------------------
	// Vector64 / Vector128
	// ------------------------------------------------------------------
	NIVector64CreateScalarUnsafe: {id: NIVector64CreateScalarUnsafe, isa: ISAVector64, name: "CreateScalarUnsafe", simdSize: 8, numArgs: 1,
		ins:      none.with(platform.InsIns, allInts...).with(platform.InsFmov, floats...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
	NIVector64GetAllBitsSet: {id: NIVector64GetAllBitsSet, isa: ISAVector64, name: "get_AllBitsSet", simdSize: 8,
		ins:      none.with(platform.InsMvni, allTypes...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
	NIVector64GetZero: {id: NIVector64GetZero, isa: ISAVector64, name: "get_Zero", simdSize: 8,
		ins:      none.with(platform.InsMovi, allTypes...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
	NIVector128CreateScalarUnsafe: {id: NIVector128CreateScalarUnsafe, isa: ISAVector128, name: "CreateScalarUnsafe", simdSize: 16, numArgs: 1,
		ins:      none.with(platform.InsIns, allInts...).with(platform.InsFmov, floats...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
	NIVector128GetAllBitsSet: {id: NIVector128GetAllBitsSet, isa: ISAVector128, name: "get_AllBitsSet", simdSize: 16,
		ins:      none.with(platform.InsMvni, allTypes...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
	NIVector128GetZero: {id: NIVector128GetZero, isa: ISAVector128, name: "get_Zero", simdSize: 16,
		ins:      none.with(platform.InsMovi, allTypes...),
		category: CategorySpecial, flags: FlagSpecialCodeGen},
}
