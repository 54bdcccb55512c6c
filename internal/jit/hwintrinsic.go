// hwintrinsic.go - 硬件内建函数信息表
//
// 每个内建函数在表中有一行：所属指令集、类别、参数个数、按元素类型索引的指令、
// 标志位以及立即数操作数的位置。代码生成器只通过本文件的查询函数访问该表。

package jit

import (
	"fmt"
	"strings"

	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

// ============================================================================
// 指令集
// ============================================================================

// ISA 内建函数所属指令集
type ISA int

const (
	ISANone ISA = iota
	ISAArmBase
	ISAArmBaseArm64
	ISAAdvSimd
	ISAAdvSimdArm64
	ISACrc32
	ISACrc32Arm64
	ISAVector64
	ISAVector128

	isaCount
)

var isaNames = [...]string{
	ISANone:         "None",
	ISAArmBase:      "ArmBase",
	ISAArmBaseArm64: "ArmBase.Arm64",
	ISAAdvSimd:      "AdvSimd",
	ISAAdvSimdArm64: "AdvSimd.Arm64",
	ISACrc32:        "Crc32",
	ISACrc32Arm64:   "Crc32.Arm64",
	ISAVector64:     "Vector64",
	ISAVector128:    "Vector128",
}

func (isa ISA) String() string {
	if isa < 0 || isa >= isaCount {
		return fmt.Sprintf("ISA(%d)", int(isa))
	}
	return isaNames[isa]
}

// Base 返回 64 位扩展所依赖的基础指令集（AdvSimd.Arm64 -> AdvSimd）
func (isa ISA) Base() ISA {
	switch isa {
	case ISAArmBaseArm64:
		return ISAArmBase
	case ISAAdvSimdArm64:
		return ISAAdvSimd
	case ISACrc32Arm64:
		return ISACrc32
	case ISAVector64, ISAVector128:
		return ISAAdvSimd
	}
	return isa
}

// ParseISA 解析指令集名（大小写不敏感）
func ParseISA(s string) (ISA, error) {
	for isa := ISAArmBase; isa < isaCount; isa++ {
		if strings.EqualFold(isaNames[isa], s) {
			return isa, nil
		}
	}
	return ISANone, fmt.Errorf("unknown instruction set: %q", s)
}

// AllISAs 返回全部指令集
func AllISAs() []ISA {
	isas := make([]ISA, 0, int(isaCount)-1)
	for isa := ISAArmBase; isa < isaCount; isa++ {
		isas = append(isas, isa)
	}
	return isas
}

// ============================================================================
// 类别与标志
// ============================================================================

// Category 内建函数类别，决定操作数宽度的计算方式
type Category int

const (
	CategorySimpleSIMD  Category = iota // 向量运算
	CategorySIMDScalar                  // 在向量寄存器最低元素上的标量运算
	CategoryScalar                      // 通用寄存器上的标量运算
	CategoryIMM                         // 带立即数操作数
	CategoryMemoryLoad                  // 从内存加载
	CategoryMemoryStore                 // 写入内存
	CategorySpecial                     // 其它
)

var categoryNames = [...]string{
	CategorySimpleSIMD:  "SimpleSIMD",
	CategorySIMDScalar:  "SIMDScalar",
	CategoryScalar:      "Scalar",
	CategoryIMM:         "IMM",
	CategoryMemoryLoad:  "MemoryLoad",
	CategoryMemoryStore: "MemoryStore",
	CategorySpecial:     "Special",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Flag 内建函数标志
type Flag uint32

const (
	FlagNone            Flag = 0
	FlagSpecialCodeGen  Flag = 1 << iota // 不走表驱动的通用路径
	FlagHasRMWSemantics                  // 目标寄存器同时是第一个源操作数
	FlagMultiIns                         // 一次调用生成多条指令
	FlagNoResult                         // 不产生值（如 Store）
)

// immBound 立即数上界的计算方式
type immBound int

const (
	immBoundNone     immBound = iota
	immBoundLanes             // 向量宽度 / 元素大小
	immBoundElemBits          // 元素位数
)

// ============================================================================
// 内建函数表项
// ============================================================================

type insRow [types.NumBaseTypes]platform.Ins

// with 返回把给定类型映射到 ins 之后的新行
func (r insRow) with(ins platform.Ins, ts ...types.VarType) insRow {
	for _, t := range ts {
		r[t.Index()] = ins
	}
	return r
}

type intrinsicInfo struct {
	id       NamedIntrinsic
	isa      ISA
	name     string
	simdSize int // 0 表示由节点决定
	numArgs  int
	ins      insRow
	category Category
	flags    Flag
	immOp    int // 立即数操作数位置（从 1 开始），0 表示无
	immBound immBound
}

func (info *intrinsicInfo) fullName() string {
	return info.isa.String() + "." + info.name
}

var intrinsicByName map[string]NamedIntrinsic

func init() {
	intrinsicByName = make(map[string]NamedIntrinsic, len(intrinsicTable))
	for i := range intrinsicTable {
		info := &intrinsicTable[i]
		if info.id != NamedIntrinsic(i) {
			panic(fmt.Sprintf("intrinsic table out of order at %d: %s", i, info.name))
		}
		if info.id == NIIllegal {
			continue
		}
		intrinsicByName[strings.ToLower(info.fullName())] = info.id
	}
}

func lookup(id NamedIntrinsic) *intrinsicInfo {
	errors.Assert(id > NIIllegal && id < NICount, errors.J0001, "unknown intrinsic id %d", int(id))
	return &intrinsicTable[id]
}

// ============================================================================
// 查询接口
// ============================================================================

// LookupIntrinsic 按全名（如 "AdvSimd.Arm64.CompareEqual"）查找内建函数
func LookupIntrinsic(name string) (NamedIntrinsic, bool) {
	id, ok := intrinsicByName[strings.ToLower(strings.TrimSpace(name))]
	return id, ok
}

// LookupIns 返回内建函数在给定元素类型下的指令
func LookupIns(id NamedIntrinsic, baseType types.VarType) platform.Ins {
	errors.Assert(baseType.IsIntegral() || baseType.IsFloating(), errors.J0001, "%s: invalid base type %s", id, baseType)
	return lookup(id).ins[baseType.Index()]
}

// LookupNumArgs 返回参数个数
func LookupNumArgs(id NamedIntrinsic) int {
	return lookup(id).numArgs
}

// LookupCategory 返回类别
func LookupCategory(id NamedIntrinsic) Category {
	return lookup(id).category
}

// LookupISA 返回所属指令集
func LookupISA(id NamedIntrinsic) ISA {
	return lookup(id).isa
}

// LookupSIMDSize 返回表中固定的向量宽度，0 表示由调用决定
func LookupSIMDSize(id NamedIntrinsic) int {
	return lookup(id).simdSize
}

// LookupImmUpperBound 返回立即数合法取值的上界（不含）
func LookupImmUpperBound(id NamedIntrinsic, simdSize int, baseType types.VarType) int {
	info := lookup(id)
	elemSize := baseType.Size()
	errors.Assert(elemSize > 0, errors.J0004, "%s: no element size for %s", id, baseType)

	switch info.immBound {
	case immBoundLanes:
		errors.Assert(simdSize == 8 || simdSize == 16, errors.J0004, "%s: invalid vector size %d", id, simdSize)
		return simdSize / elemSize
	case immBoundElemBits:
		return elemSize * 8
	}
	errors.Panicf(errors.J0004, "%s has no immediate operand", id)
	return 0
}

// ImmOpPosition 返回立即数操作数的位置（从 1 开始），0 表示无
func ImmOpPosition(id NamedIntrinsic) int {
	return lookup(id).immOp
}

// IsImmOp 判断 op 是否为节点的立即数操作数
func IsImmOp(id NamedIntrinsic, node *HWIntrinsicNode, op *Node) bool {
	pos := lookup(id).immOp
	if pos == 0 || pos > node.NumOperands() {
		return false
	}
	return node.Op(pos) == op
}

// IsTableDriven 是否走通用的表驱动路径
func IsTableDriven(id NamedIntrinsic) bool {
	return lookup(id).flags&FlagSpecialCodeGen == 0
}

// HasRMWSemantics 是否为读-改-写形式
func HasRMWSemantics(id NamedIntrinsic) bool {
	return lookup(id).flags&FlagHasRMWSemantics != 0
}

// GeneratesMultipleIns 一次调用是否生成多条指令
func GeneratesMultipleIns(id NamedIntrinsic) bool {
	return lookup(id).flags&FlagMultiIns != 0
}

// ProducesValue 是否产生结果值
func ProducesValue(id NamedIntrinsic) bool {
	return lookup(id).flags&FlagNoResult == 0
}

// ResultIsVector 结果是否位于 SIMD&FP 寄存器
//
// Scalar 类别（ArmBase、Crc32）与整数元素的 Extract 结果在通用寄存器中。
func ResultIsVector(id NamedIntrinsic, baseType types.VarType) bool {
	switch {
	case !ProducesValue(id):
		return false
	case LookupCategory(id) == CategoryScalar:
		return false
	case id == NIAdvSimdExtract:
		return baseType.IsFloating()
	}
	return true
}

// SupportedTypes 返回有对应指令的元素类型
func SupportedTypes(id NamedIntrinsic) []types.VarType {
	info := lookup(id)
	var ts []types.VarType
	for t := types.TypeByte; t <= types.TypeDouble; t++ {
		if info.ins[t.Index()] != platform.InsInvalid {
			ts = append(ts, t)
		}
	}
	return ts
}

// IntrinsicInfo 内建函数的只读描述（用于列表输出）
type IntrinsicInfo struct {
	ID       NamedIntrinsic
	Name     string
	ISA      ISA
	Category Category
	NumArgs  int
	SIMDSize int
	Flags    Flag
	ImmOp    int
	Types    []types.VarType
}

// Intrinsics 返回整张表的描述
func Intrinsics() []IntrinsicInfo {
	out := make([]IntrinsicInfo, 0, len(intrinsicTable)-1)
	for i := range intrinsicTable {
		info := &intrinsicTable[i]
		if info.id == NIIllegal {
			continue
		}
		out = append(out, IntrinsicInfo{
			ID:       info.id,
			Name:     info.fullName(),
			ISA:      info.isa,
			Category: info.category,
			NumArgs:  info.numArgs,
			SIMDSize: info.simdSize,
			Flags:    info.flags,
			ImmOp:    info.immOp,
			Types:    SupportedTypes(info.id),
		})
	}
	return out
}

// String 返回全名
func (id NamedIntrinsic) String() string {
	if id <= NIIllegal || id >= NICount {
		return fmt.Sprintf("NamedIntrinsic(%d)", int(id))
	}
	return intrinsicTable[id].fullName()
}

// String 以 "special|rmw" 形式列出标志
func (f Flag) String() string {
	var parts []string
	if f&FlagSpecialCodeGen != 0 {
		parts = append(parts, "special")
	}
	if f&FlagHasRMWSemantics != 0 {
		parts = append(parts, "rmw")
	}
	if f&FlagMultiIns != 0 {
		parts = append(parts, "multi")
	}
	if f&FlagNoResult != 0 {
		parts = append(parts, "noresult")
	}
	return strings.Join(parts, "|")
}
