// Package types 定义 JIT 共享类型，用于避免 jit 与 platform 之间的循环导入
package types

import "fmt"

// ============================================================================
// 基础元素类型
// ============================================================================

// VarType 硬件内建函数操作的元素类型
type VarType int

const (
	TypeUndef VarType = iota
	TypeByte          // int8
	TypeUByte         // uint8
	TypeShort         // int16
	TypeUShort        // uint16
	TypeInt           // int32
	TypeUInt          // uint32
	TypeLong          // int64
	TypeULong         // uint64
	TypeFloat         // float32
	TypeDouble        // float64

	typeCount
)

// NumBaseTypes 可用作 SIMD 元素的类型数量（TypeByte..TypeDouble）
const NumBaseTypes = int(typeCount) - 1

var typeNames = [...]string{
	TypeUndef:  "undef",
	TypeByte:   "byte",
	TypeUByte:  "ubyte",
	TypeShort:  "short",
	TypeUShort: "ushort",
	TypeInt:    "int",
	TypeUInt:   "uint",
	TypeLong:   "long",
	TypeULong:  "ulong",
	TypeFloat:  "float",
	TypeDouble: "double",
}

var typeSizes = [...]int{
	TypeUndef:  0,
	TypeByte:   1,
	TypeUByte:  1,
	TypeShort:  2,
	TypeUShort: 2,
	TypeInt:    4,
	TypeUInt:   4,
	TypeLong:   8,
	TypeULong:  8,
	TypeFloat:  4,
	TypeDouble: 8,
}

// String 返回类型名
func (t VarType) String() string {
	if t < 0 || t >= typeCount {
		return fmt.Sprintf("VarType(%d)", int(t))
	}
	return typeNames[t]
}

// Size 返回元素大小（字节）
func (t VarType) Size() int {
	if t < 0 || t >= typeCount {
		return 0
	}
	return typeSizes[t]
}

// ActualSize 返回实际寄存器宽度：小于 4 字节的整数按 4 字节处理
func (t VarType) ActualSize() int {
	if t.IsIntegral() && t.Size() < 4 {
		return 4
	}
	return t.Size()
}

// IsFloating 是否为浮点类型
func (t VarType) IsFloating() bool {
	return t == TypeFloat || t == TypeDouble
}

// IsIntegral 是否为整数类型
func (t VarType) IsIntegral() bool {
	return t >= TypeByte && t <= TypeULong
}

// IsUnsigned 是否为无符号整数
func (t VarType) IsUnsigned() bool {
	switch t {
	case TypeUByte, TypeUShort, TypeUInt, TypeULong:
		return true
	}
	return false
}

// Index 返回在按类型索引的指令表中的位置（TypeByte 为 0）
func (t VarType) Index() int {
	return int(t) - int(TypeByte)
}

// ParseVarType 解析类型名
func ParseVarType(s string) (VarType, error) {
	for t := TypeByte; t < typeCount; t++ {
		if typeNames[t] == s {
			return t, nil
		}
	}
	switch s {
	case "sbyte", "int8":
		return TypeByte, nil
	case "uint8":
		return TypeUByte, nil
	case "int16":
		return TypeShort, nil
	case "uint16":
		return TypeUShort, nil
	case "int32":
		return TypeInt, nil
	case "uint32":
		return TypeUInt, nil
	case "int64":
		return TypeLong, nil
	case "uint64":
		return TypeULong, nil
	case "float32", "single":
		return TypeFloat, nil
	case "float64":
		return TypeDouble, nil
	}
	return TypeUndef, fmt.Errorf("unknown base type: %q", s)
}
