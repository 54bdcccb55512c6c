package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================================
// ARM64 寄存器定义
// ============================================================================

// Reg ARM64 物理寄存器
//
// 0-30 为通用寄存器 X0-X30，31 为 ZR（在 ADD/BR 等指令中编码为 SP），
// 32-63 为 SIMD&FP 寄存器 V0-V31。
type Reg int

const (
	R0 Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	R16 // IP0
	R17 // IP1
	R18 // 平台寄存器
	R19
	R20
	R21
	R22
	R23
	R24
	R25
	R26
	R27
	R28
	R29 // FP
	R30 // LR
	RegZR

	V0
	V1
	V2
	V3
	V4
	V5
	V6
	V7
	V8
	V9
	V10
	V11
	V12
	V13
	V14
	V15
	V16
	V17
	V18
	V19
	V20
	V21
	V22
	V23
	V24
	V25
	V26
	V27
	V28
	V29
	V30
	V31

	RegNA Reg = -1
)

// IsVector 是否为 SIMD&FP 寄存器
func (r Reg) IsVector() bool {
	return r >= V0 && r <= V31
}

// IsGeneral 是否为通用寄存器（含 ZR）
func (r Reg) IsGeneral() bool {
	return r >= R0 && r <= RegZR
}

// Encode 获取 5 位寄存器编码
func (r Reg) Encode() uint32 {
	if r < 0 {
		return 31
	}
	return uint32(r) & 31
}

// String 返回 64 位 / 128 位视图的寄存器名
func (r Reg) String() string {
	switch {
	case r == RegNA:
		return "NA"
	case r == RegZR:
		return "xzr"
	case r == R29:
		return "fp"
	case r == R30:
		return "lr"
	case r.IsGeneral():
		return "x" + strconv.Itoa(int(r))
	case r.IsVector():
		return "v" + strconv.Itoa(int(r-V0))
	default:
		return fmt.Sprintf("Reg(%d)", int(r))
	}
}

// Name 返回指定宽度下的寄存器名（w0/x0、b0/h0/s0/d0/q0）
func (r Reg) Name(size EmitAttr) string {
	n := int(r.Encode())
	if r.IsGeneral() {
		if r == RegZR {
			if size == Size8 {
				return "xzr"
			}
			return "wzr"
		}
		if size == Size8 {
			return "x" + strconv.Itoa(n)
		}
		return "w" + strconv.Itoa(n)
	}
	if r.IsVector() {
		switch size {
		case Size1:
			return "b" + strconv.Itoa(n)
		case Size2:
			return "h" + strconv.Itoa(n)
		case Size4:
			return "s" + strconv.Itoa(n)
		case Size8:
			return "d" + strconv.Itoa(n)
		default:
			return "q" + strconv.Itoa(n)
		}
	}
	return r.String()
}

// ParseReg 解析寄存器名：x0-x30、w0-w30、v0-v31、q/d/s/h/b0-31、xzr、fp、lr
func ParseReg(s string) (Reg, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "xzr", "wzr":
		return RegZR, nil
	case "fp":
		return R29, nil
	case "lr":
		return R30, nil
	}
	if len(s) < 2 {
		return RegNA, fmt.Errorf("invalid register: %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return RegNA, fmt.Errorf("invalid register: %q", s)
	}
	switch s[0] {
	case 'x', 'w':
		if n < 0 || n > 30 {
			return RegNA, fmt.Errorf("general register out of range: %q", s)
		}
		return R0 + Reg(n), nil
	case 'v', 'q', 'd', 's', 'h', 'b':
		if n < 0 || n > 31 {
			return RegNA, fmt.Errorf("vector register out of range: %q", s)
		}
		return V0 + Reg(n), nil
	}
	return RegNA, fmt.Errorf("invalid register: %q", s)
}
