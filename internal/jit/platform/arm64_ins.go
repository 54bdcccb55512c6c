package platform

import "fmt"

// ============================================================================
// 指令助记符
// ============================================================================

// Ins ARM64 指令（符号形式，编码时再结合操作数宽度与排列选择具体编码）
type Ins int

const (
	InsInvalid Ins = iota

	// 整数向量三寄存器
	InsAdd
	InsSub
	InsMul
	InsMla
	InsMls
	InsCmeq
	InsCmgt
	InsCmge
	InsCmhi
	InsCmhs
	InsSmax
	InsSmin
	InsUmax
	InsUmin
	InsSabd
	InsUabd
	InsSqadd
	InsUqadd
	InsSqsub
	InsUqsub
	InsAddp

	// 按位逻辑
	InsAnd
	InsBic
	InsOrr
	InsOrn
	InsEor
	InsBsl
	InsBit
	InsBif

	// 浮点三寄存器
	InsFadd
	InsFsub
	InsFmul
	InsFdiv
	InsFmax
	InsFmin
	InsFabd
	InsFaddp
	InsFmla
	InsFmls
	InsFcmeq
	InsFcmge
	InsFcmgt
	InsFacge
	InsFacgt

	// 双寄存器杂项
	InsAbs
	InsNeg
	InsNot
	InsCnt
	InsClz
	InsCls
	InsRbit
	InsSadalp
	InsUadalp
	InsFabs
	InsFneg
	InsFsqrt
	InsFrintn
	InsFrintm
	InsFrintp
	InsFrintz

	// 浮点四寄存器
	InsFmadd
	InsFmsub
	InsFnmadd
	InsFnmsub

	// CRC32
	InsCrc32b
	InsCrc32h
	InsCrc32w
	InsCrc32x
	InsCrc32cb
	InsCrc32ch
	InsCrc32cw
	InsCrc32cx

	// 数据移动
	InsMov
	InsIns
	InsUmov
	InsSmov
	InsDup
	InsExt
	InsMovi
	InsMvni
	InsFmov
	InsShl

	// 访存
	InsLd1
	InsSt1

	// 控制流
	InsAdr
	InsB
	InsBr
	InsCbz
	InsCbnz

	insCount
)

var insNames = [...]string{
	InsInvalid: "invalid",
	InsAdd:     "add",
	InsSub:     "sub",
	InsMul:     "mul",
	InsMla:     "mla",
	InsMls:     "mls",
	InsCmeq:    "cmeq",
	InsCmgt:    "cmgt",
	InsCmge:    "cmge",
	InsCmhi:    "cmhi",
	InsCmhs:    "cmhs",
	InsSmax:    "smax",
	InsSmin:    "smin",
	InsUmax:    "umax",
	InsUmin:    "umin",
	InsSabd:    "sabd",
	InsUabd:    "uabd",
	InsSqadd:   "sqadd",
	InsUqadd:   "uqadd",
	InsSqsub:   "sqsub",
	InsUqsub:   "uqsub",
	InsAddp:    "addp",
	InsAnd:     "and",
	InsBic:     "bic",
	InsOrr:     "orr",
	InsOrn:     "orn",
	InsEor:     "eor",
	InsBsl:     "bsl",
	InsBit:     "bit",
	InsBif:     "bif",
	InsFadd:    "fadd",
	InsFsub:    "fsub",
	InsFmul:    "fmul",
	InsFdiv:    "fdiv",
	InsFmax:    "fmax",
	InsFmin:    "fmin",
	InsFabd:    "fabd",
	InsFaddp:   "faddp",
	InsFmla:    "fmla",
	InsFmls:    "fmls",
	InsFcmeq:   "fcmeq",
	InsFcmge:   "fcmge",
	InsFcmgt:   "fcmgt",
	InsFacge:   "facge",
	InsFacgt:   "facgt",
	InsAbs:     "abs",
	InsNeg:     "neg",
	InsNot:     "not",
	InsCnt:     "cnt",
	InsClz:     "clz",
	InsCls:     "cls",
	InsRbit:    "rbit",
	InsSadalp:  "sadalp",
	InsUadalp:  "uadalp",
	InsFabs:    "fabs",
	InsFneg:    "fneg",
	InsFsqrt:   "fsqrt",
	InsFrintn:  "frintn",
	InsFrintm:  "frintm",
	InsFrintp:  "frintp",
	InsFrintz:  "frintz",
	InsFmadd:   "fmadd",
	InsFmsub:   "fmsub",
	InsFnmadd:  "fnmadd",
	InsFnmsub:  "fnmsub",
	InsCrc32b:  "crc32b",
	InsCrc32h:  "crc32h",
	InsCrc32w:  "crc32w",
	InsCrc32x:  "crc32x",
	InsCrc32cb: "crc32cb",
	InsCrc32ch: "crc32ch",
	InsCrc32cw: "crc32cw",
	InsCrc32cx: "crc32cx",
	InsMov:     "mov",
	InsIns:     "ins",
	InsUmov:    "umov",
	InsSmov:    "smov",
	InsDup:     "dup",
	InsExt:     "ext",
	InsMovi:    "movi",
	InsMvni:    "mvni",
	InsFmov:    "fmov",
	InsShl:     "shl",
	InsLd1:     "ld1",
	InsSt1:     "st1",
	InsAdr:     "adr",
	InsB:       "b",
	InsBr:      "br",
	InsCbz:     "cbz",
	InsCbnz:    "cbnz",
}

// String 返回助记符
func (ins Ins) String() string {
	if ins < 0 || ins >= insCount {
		return fmt.Sprintf("Ins(%d)", int(ins))
	}
	return insNames[ins]
}

// IsBranch 是否为需要重定位的跳转指令
func (ins Ins) IsBranch() bool {
	switch ins {
	case InsB, InsCbz, InsCbnz:
		return true
	}
	return false
}

// ============================================================================
// 操作数宽度
// ============================================================================

// EmitAttr 操作数宽度（字节）
type EmitAttr int

const (
	SizeNone EmitAttr = 0
	Size1    EmitAttr = 1
	Size2    EmitAttr = 2
	Size4    EmitAttr = 4
	Size8    EmitAttr = 8
	Size16   EmitAttr = 16
)

// AttrOfSize 字节数转宽度
func AttrOfSize(n int) EmitAttr {
	switch n {
	case 1, 2, 4, 8, 16:
		return EmitAttr(n)
	}
	return SizeNone
}

// ============================================================================
// 指令选项（向量排列 / 移位）
// ============================================================================

// InsOpts 指令选项
type InsOpts int

const (
	OptNone InsOpts = iota
	Opt8B
	Opt16B
	Opt4H
	Opt8H
	Opt2S
	Opt4S
	Opt1D
	Opt2D
	OptLSL
)

var optNames = [...]string{
	OptNone: "",
	Opt8B:   "8b",
	Opt16B:  "16b",
	Opt4H:   "4h",
	Opt8H:   "8h",
	Opt2S:   "2s",
	Opt4S:   "4s",
	Opt1D:   "1d",
	Opt2D:   "2d",
	OptLSL:  "lsl",
}

func (o InsOpts) String() string {
	if o < 0 || int(o) >= len(optNames) {
		return fmt.Sprintf("InsOpts(%d)", int(o))
	}
	return optNames[o]
}

// IsArrangement 是否为向量排列
func (o InsOpts) IsArrangement() bool {
	return o >= Opt8B && o <= Opt2D
}

// ElemSize 排列中每个元素的字节数
func (o InsOpts) ElemSize() int {
	switch o {
	case Opt8B, Opt16B:
		return 1
	case Opt4H, Opt8H:
		return 2
	case Opt2S, Opt4S:
		return 4
	case Opt1D, Opt2D:
		return 8
	}
	return 0
}

// Q 128 位排列返回 1
func (o InsOpts) Q() uint32 {
	switch o {
	case Opt16B, Opt8H, Opt4S, Opt2D:
		return 1
	}
	return 0
}

// Width 排列总宽度（字节）
func (o InsOpts) Width() EmitAttr {
	if !o.IsArrangement() {
		return SizeNone
	}
	if o.Q() == 1 {
		return Size16
	}
	return Size8
}

// SizeField 2 位元素大小字段：B=00 H=01 S=10 D=11
func (o InsOpts) SizeField() uint32 {
	switch o.ElemSize() {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	}
	return 0
}

// SimdInsOpt 由寄存器宽度与元素大小得到向量排列
func SimdInsOpt(size EmitAttr, elemSize int) InsOpts {
	if size == Size16 {
		switch elemSize {
		case 1:
			return Opt16B
		case 2:
			return Opt8H
		case 4:
			return Opt4S
		case 8:
			return Opt2D
		}
	} else if size == Size8 {
		switch elemSize {
		case 1:
			return Opt8B
		case 2:
			return Opt4H
		case 4:
			return Opt2S
		case 8:
			return Opt1D
		}
	}
	return OptNone
}

// ============================================================================
// 指令格式
// ============================================================================

// InsFormat 记录的操作数形态
type InsFormat int

const (
	FmtNone      InsFormat = iota
	FmtR                   // br xN
	FmtRR                  // op r1, r2
	FmtRRR                 // op r1, r2, r3
	FmtRRRR                // op r1, r2, r3, r4
	FmtRI                  // op r1, #imm
	FmtRF                  // fmov r1, #fimm
	FmtRRI                 // op r1, r2, #imm (lane / shift)
	FmtRRII                // ins r1[imm1], r2[imm2]
	FmtRRRI                // ext r1, r2, r3, #imm
	FmtRRRShift            // add r1, r2, r3, lsl #imm
	FmtJ                   // b label
	FmtJR                  // cbnz r1, label
	FmtRL                  // adr r1, label
)
