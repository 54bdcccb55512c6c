package platform

import (
	"math"

	"github.com/tangzhangming/hwgen/internal/errors"
)

// ============================================================================
// 字段辅助
// ============================================================================

func rd(r Reg) uint32 { return r.Encode() }
func rn(r Reg) uint32 { return r.Encode() << 5 }
func rm(r Reg) uint32 { return r.Encode() << 16 }
func ra(r Reg) uint32 { return r.Encode() << 10 }

func sfBit(size EmitAttr) uint32 {
	if size == Size8 {
		return 1 << 31
	}
	return 0
}

// ftype 标量浮点类型字段：S=00 D=01
func ftype(size EmitAttr) uint32 {
	switch size {
	case Size4:
		return 0
	case Size8:
		return 1
	}
	errors.Panicf(errors.J0005, "scalar floating point size %d is not encodable", size)
	return 0
}

// elemImm5 元素索引编码：B=xxxx1 H=xxx10 S=xx100 D=x1000
func elemImm5(elemSize int, index int64) uint32 {
	lanes := int64(16 / elemSize)
	errors.Assert(index >= 0 && index < lanes, errors.J0005, "lane index %d out of range for %d-byte elements", index, elemSize)
	shift := uint(0)
	switch elemSize {
	case 1:
		shift = 1
	case 2:
		shift = 2
	case 4:
		shift = 3
	case 8:
		shift = 4
	default:
		errors.Panicf(errors.J0005, "element size %d is not encodable", elemSize)
	}
	return uint32(index)<<shift | uint32(elemSize)
}

func log2ElemSize(elemSize int) uint {
	switch elemSize {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	}
	return 0
}

// vectorOpt 取有效的向量排列；未给出排列时 8/16 字节宽度按字节排列处理
func vectorOpt(size EmitAttr, opt InsOpts) InsOpts {
	if opt.IsArrangement() {
		return opt
	}
	switch size {
	case Size16:
		return Opt16B
	case Size8:
		return Opt8B
	}
	errors.Panicf(errors.J0005, "vector size %d has no arrangement", size)
	return OptNone
}

// ============================================================================
// 编码表
// ============================================================================

type simdOp struct {
	u      uint32
	a      uint32 // 浮点指令的第 23 位 / 逻辑指令的 size 字段
	opcode uint32
}

// 整数三寄存器同形
var intThreeSame = map[Ins]simdOp{
	InsAdd:   {0, 0, 0x10},
	InsSub:   {1, 0, 0x10},
	InsMul:   {0, 0, 0x13},
	InsMla:   {0, 0, 0x12},
	InsMls:   {1, 0, 0x12},
	InsCmeq:  {1, 0, 0x11},
	InsCmgt:  {0, 0, 0x06},
	InsCmge:  {0, 0, 0x07},
	InsCmhi:  {1, 0, 0x06},
	InsCmhs:  {1, 0, 0x07},
	InsSmax:  {0, 0, 0x0C},
	InsSmin:  {0, 0, 0x0D},
	InsUmax:  {1, 0, 0x0C},
	InsUmin:  {1, 0, 0x0D},
	InsSabd:  {0, 0, 0x0E},
	InsUabd:  {1, 0, 0x0E},
	InsSqadd: {0, 0, 0x01},
	InsUqadd: {1, 0, 0x01},
	InsSqsub: {0, 0, 0x05},
	InsUqsub: {1, 0, 0x05},
	InsAddp:  {0, 0, 0x17},
}

// 不支持 64 位元素的整数指令
var noDoubleword = map[Ins]bool{
	InsMul: true, InsMla: true, InsMls: true,
	InsSmax: true, InsSmin: true, InsUmax: true, InsUmin: true,
	InsSabd: true, InsUabd: true,
}

// 按位逻辑：opcode 固定 00011，a 为 size 字段
var logicThreeSame = map[Ins]simdOp{
	InsAnd: {0, 0, 0x03},
	InsBic: {0, 1, 0x03},
	InsOrr: {0, 2, 0x03},
	InsOrn: {0, 3, 0x03},
	InsEor: {1, 0, 0x03},
	InsBsl: {1, 1, 0x03},
	InsBit: {1, 2, 0x03},
	InsBif: {1, 3, 0x03},
}

// 浮点三寄存器同形
var fpThreeSame = map[Ins]simdOp{
	InsFadd:  {0, 0, 0x1A},
	InsFsub:  {0, 1, 0x1A},
	InsFmul:  {1, 0, 0x1B},
	InsFdiv:  {1, 0, 0x1F},
	InsFmax:  {0, 0, 0x1E},
	InsFmin:  {0, 1, 0x1E},
	InsFabd:  {1, 1, 0x1A},
	InsFaddp: {1, 0, 0x1A},
	InsFmla:  {0, 0, 0x19},
	InsFmls:  {0, 1, 0x19},
	InsFcmeq: {0, 0, 0x1C},
	InsFcmge: {1, 0, 0x1C},
	InsFcmgt: {1, 1, 0x1C},
	InsFacge: {1, 0, 0x1D},
	InsFacgt: {1, 1, 0x1D},
}

// 标量浮点双源运算 (FP data-processing 2 source) 的 opcode
var fpScalarArith = map[Ins]uint32{
	InsFmul: 0x0,
	InsFdiv: 0x1,
	InsFadd: 0x2,
	InsFsub: 0x3,
	InsFmax: 0x4,
	InsFmin: 0x5,
}

// 整数双寄存器杂项
var intTwoReg = map[Ins]simdOp{
	InsAbs:    {0, 0, 0x0B},
	InsNeg:    {1, 0, 0x0B},
	InsCnt:    {0, 0, 0x05},
	InsNot:    {1, 0, 0x05},
	InsClz:    {1, 0, 0x04},
	InsCls:    {0, 0, 0x04},
	InsSadalp: {0, 0, 0x06},
	InsUadalp: {1, 0, 0x06},
}

// 浮点双寄存器杂项（向量形式）
var fpTwoReg = map[Ins]simdOp{
	InsFabs:   {0, 1, 0x0F},
	InsFneg:   {1, 1, 0x0F},
	InsFsqrt:  {1, 1, 0x1F},
	InsFrintn: {0, 0, 0x18},
	InsFrintm: {0, 0, 0x19},
	InsFrintp: {0, 1, 0x18},
	InsFrintz: {0, 1, 0x19},
}

// 标量浮点单源运算 (FP data-processing 1 source) 的 opcode
var fpScalarOneSource = map[Ins]uint32{
	InsFmov:   0x00,
	InsFabs:   0x01,
	InsFneg:   0x02,
	InsFsqrt:  0x03,
	InsFrintn: 0x08,
	InsFrintp: 0x09,
	InsFrintm: 0x0A,
	InsFrintz: 0x0B,
}

// 通用寄存器单源运算
var gpOneSource = map[Ins]uint32{
	InsRbit: 0x00,
	InsClz:  0x04,
	InsCls:  0x05,
}

// 浮点三源运算：o1, o0
var fpThreeSource = map[Ins][2]uint32{
	InsFmadd:  {0, 0},
	InsFmsub:  {0, 1},
	InsFnmadd: {1, 0},
	InsFnmsub: {1, 1},
}

// CRC32：C, sz
var crc32Ops = map[Ins][2]uint32{
	InsCrc32b:  {0, 0},
	InsCrc32h:  {0, 1},
	InsCrc32w:  {0, 2},
	InsCrc32x:  {0, 3},
	InsCrc32cb: {1, 0},
	InsCrc32ch: {1, 1},
	InsCrc32cw: {1, 2},
	InsCrc32cx: {1, 3},
}

// ============================================================================
// 编码
// ============================================================================

// encode 把一条符号指令编码为 32 位机器字（标签偏移稍后回填）
func encode(in *Instr) uint32 {
	switch in.Fmt {
	case FmtR:
		return encodeR(in)
	case FmtRR:
		return encodeRR(in)
	case FmtRRR:
		return encodeRRR(in)
	case FmtRRRR:
		return encodeRRRR(in)
	case FmtRI:
		return encodeRI(in)
	case FmtRF:
		return encodeRF(in)
	case FmtRRI:
		return encodeRRI(in)
	case FmtRRII:
		return encodeRRII(in)
	case FmtRRRI:
		return encodeRRRI(in)
	case FmtRRRShift:
		return encodeRRRShift(in)
	case FmtJ:
		errors.Assert(in.Ins == InsB, errors.J0005, "%s is not an unconditional branch", in.Ins)
		return 0x14000000
	case FmtJR:
		return encodeJR(in)
	case FmtRL:
		errors.Assert(in.Ins == InsAdr && in.Reg1.IsGeneral(), errors.J0005, "invalid address form %s %s", in.Ins, in.Reg1)
		return 0x10000000 | rd(in.Reg1)
	}
	errors.Panicf(errors.J0005, "unknown instruction format %d for %s", in.Fmt, in.Ins)
	return 0
}

func badForm(in *Instr) {
	errors.Panicf(errors.J0005, "%s cannot be encoded in form %d (size %d, opt %s, regs %s %s %s)",
		in.Ins, in.Fmt, in.Size, in.Opt, in.Reg1, in.Reg2, in.Reg3)
}

func encodeR(in *Instr) uint32 {
	if in.Ins == InsBr && in.Reg1.IsGeneral() {
		return 0xD61F0000 | rn(in.Reg1)
	}
	badForm(in)
	return 0
}

func encodeJR(in *Instr) uint32 {
	errors.Assert(in.Reg1.IsGeneral(), errors.J0005, "%s needs a general register, got %s", in.Ins, in.Reg1)
	switch in.Ins {
	case InsCbz:
		return 0x34000000 | sfBit(in.Size) | rd(in.Reg1)
	case InsCbnz:
		return 0x35000000 | sfBit(in.Size) | rd(in.Reg1)
	}
	badForm(in)
	return 0
}

func encodeRR(in *Instr) uint32 {
	d, n := in.Reg1, in.Reg2

	switch in.Ins {
	case InsMov:
		if d.IsVector() && n.IsVector() {
			// ORR Vd.T, Vn.T, Vn.T (mov alias)
			q := uint32(0)
			if in.Size == Size16 {
				q = 1
			}
			return 0x0EA01C00 | q<<30 | rm(n) | rn(n) | rd(d)
		}
		if d.IsGeneral() && n.IsGeneral() {
			// ORR Xd, XZR, Xn (mov alias)
			return 0x2A0003E0 | sfBit(in.Size) | rm(n) | rd(d)
		}

	case InsLd1, InsSt1:
		if d.IsVector() && n.IsGeneral() {
			opt := vectorOpt(in.Size, in.Opt)
			base := uint32(0x0C407000)
			if in.Ins == InsSt1 {
				base = 0x0C007000
			}
			return base | opt.Q()<<30 | opt.SizeField()<<10 | rn(n) | rd(d)
		}

	case InsDup:
		if d.IsVector() && n.IsGeneral() && in.Opt.IsArrangement() && in.Opt != Opt1D {
			// DUP Vd.T, Rn
			imm5 := elemImm5(in.Opt.ElemSize(), 0)
			return 0x0E000C00 | in.Opt.Q()<<30 | imm5<<16 | rn(n) | rd(d)
		}

	case InsFmov:
		if d.IsVector() && n.IsVector() {
			return 0x1E204000 | ftype(in.Size)<<22 | fpScalarOneSource[InsFmov]<<15 | rn(n) | rd(d)
		}
	}

	if op, ok := gpOneSource[in.Ins]; ok && d.IsGeneral() && n.IsGeneral() {
		return 0x5AC00000 | sfBit(in.Size) | op<<10 | rn(n) | rd(d)
	}

	if op, ok := intTwoReg[in.Ins]; ok && d.IsVector() && n.IsVector() {
		if in.Ins == InsNot {
			// 按位取反与元素宽度无关，总按字节排列编码
			opt := vectorOpt(in.Size, OptNone)
			if in.Opt.IsArrangement() {
				opt = SimdInsOpt(in.Opt.Width(), 1)
			}
			return 0x0E200800 | opt.Q()<<30 | op.u<<29 | op.opcode<<12 | rn(n) | rd(d)
		}
		if in.Opt.IsArrangement() {
			errors.Assert(in.Opt.ElemSize() == 1 || in.Ins != InsCnt, errors.J0005,
				"%s only supports byte arrangements", in.Ins)
			return 0x0E200800 | in.Opt.Q()<<30 | op.u<<29 | in.Opt.SizeField()<<22 | op.opcode<<12 | rn(n) | rd(d)
		}
		if in.Ins == InsCnt {
			opt := vectorOpt(in.Size, OptNone)
			return 0x0E200800 | opt.Q()<<30 | op.u<<29 | op.opcode<<12 | rn(n) | rd(d)
		}
		// 标量形式: abs d0, d1
		errors.Assert(in.Size == Size8 && (in.Ins == InsAbs || in.Ins == InsNeg), errors.J0005,
			"scalar %s needs a doubleword operand", in.Ins)
		return 0x5E200800 | op.u<<29 | 3<<22 | op.opcode<<12 | rn(n) | rd(d)
	}

	if d.IsVector() && n.IsVector() {
		if in.Opt.IsArrangement() {
			if op, ok := fpTwoReg[in.Ins]; ok {
				sz := fpSizeBit(in)
				return 0x0E200800 | in.Opt.Q()<<30 | op.u<<29 | op.a<<23 | sz<<22 | op.opcode<<12 | rn(n) | rd(d)
			}
		} else if op, ok := fpScalarOneSource[in.Ins]; ok {
			return 0x1E204000 | ftype(in.Size)<<22 | op<<15 | rn(n) | rd(d)
		}
	}

	badForm(in)
	return 0
}

func fpSizeBit(in *Instr) uint32 {
	switch in.Opt.ElemSize() {
	case 4:
		return 0
	case 8:
		return 1
	}
	errors.Panicf(errors.J0005, "%s does not support %s", in.Ins, in.Opt)
	return 0
}

func encodeRRR(in *Instr) uint32 {
	d, n, m := in.Reg1, in.Reg2, in.Reg3

	if op, ok := crc32Ops[in.Ins]; ok {
		errors.Assert(d.IsGeneral() && n.IsGeneral() && m.IsGeneral(), errors.J0005, "%s needs general registers", in.Ins)
		sf := uint32(0)
		if in.Ins == InsCrc32x || in.Ins == InsCrc32cx {
			sf = 1
		}
		return 0x1AC04000 | sf<<31 | rm(m) | op[0]<<12 | op[1]<<10 | rn(n) | rd(d)
	}

	errors.Assert(d.IsVector() && n.IsVector() && m.IsVector(), errors.J0005,
		"%s needs vector registers, got %s %s %s", in.Ins, d, n, m)

	if op, ok := logicThreeSame[in.Ins]; ok {
		opt := vectorOpt(in.Size, in.Opt)
		return 0x0E200400 | opt.Q()<<30 | op.u<<29 | op.a<<22 | rm(m) | op.opcode<<11 | rn(n) | rd(d)
	}

	if op, ok := intThreeSame[in.Ins]; ok {
		if in.Opt.IsArrangement() {
			errors.Assert(!(noDoubleword[in.Ins] && in.Opt.ElemSize() == 8), errors.J0005,
				"%s does not support %s", in.Ins, in.Opt)
			return 0x0E200400 | in.Opt.Q()<<30 | op.u<<29 | in.Opt.SizeField()<<22 | rm(m) | op.opcode<<11 | rn(n) | rd(d)
		}
		// AdvSIMD 标量形式: add d0, d1, d2
		errors.Assert(in.Size == Size8 && !noDoubleword[in.Ins] && in.Ins != InsAddp, errors.J0005,
			"scalar %s needs a doubleword operand", in.Ins)
		return 0x5E200400 | op.u<<29 | 3<<22 | rm(m) | op.opcode<<11 | rn(n) | rd(d)
	}

	if op, ok := fpThreeSame[in.Ins]; ok {
		if in.Opt.IsArrangement() {
			sz := fpSizeBit(in)
			return 0x0E200400 | in.Opt.Q()<<30 | op.u<<29 | op.a<<23 | sz<<22 | rm(m) | op.opcode<<11 | rn(n) | rd(d)
		}
		if code, ok := fpScalarArith[in.Ins]; ok {
			return 0x1E200800 | ftype(in.Size)<<22 | rm(m) | code<<12 | rn(n) | rd(d)
		}
		switch in.Ins {
		case InsFabd, InsFcmeq, InsFcmge, InsFcmgt, InsFacge, InsFacgt:
			// AdvSIMD 标量浮点形式: fcmgt s0, s1, s2
			return 0x5E200400 | op.u<<29 | op.a<<23 | ftype(in.Size)<<22 | rm(m) | op.opcode<<11 | rn(n) | rd(d)
		}
	}

	badForm(in)
	return 0
}

func encodeRRRR(in *Instr) uint32 {
	op, ok := fpThreeSource[in.Ins]
	if !ok {
		badForm(in)
	}
	errors.Assert(in.Reg1.IsVector() && in.Reg2.IsVector() && in.Reg3.IsVector() && in.Reg4.IsVector(),
		errors.J0005, "%s needs vector registers", in.Ins)
	// FMADD Dd, Dn, Dm, Da
	return 0x1F000000 | ftype(in.Size)<<22 | op[0]<<21 | rm(in.Reg3) | op[1]<<15 | ra(in.Reg4) | rn(in.Reg2) | rd(in.Reg1)
}

func encodeRI(in *Instr) uint32 {
	errors.Assert(in.Reg1.IsVector(), errors.J0005, "%s needs a vector register", in.Ins)
	errors.Assert(in.Ins == InsMovi || in.Ins == InsMvni, errors.J0005, "%s has no immediate form", in.Ins)

	imm8, op, cmode, ok := moviFields(in.Ins, in.Imm1, in.Opt)
	errors.Assert(ok, errors.J0005, "%s #%d is not encodable for %s", in.Ins, in.Imm1, in.Opt)

	return 0x0F000400 | in.Opt.Q()<<30 | op<<29 | (imm8>>5)<<16 | cmode<<12 | (imm8&0x1F)<<5 | rd(in.Reg1)
}

// moviFields 计算 MOVI/MVNI 的 imm8、op、cmode（均为不移位形式）
func moviFields(ins Ins, value int64, opt InsOpts) (imm8, op, cmode uint32, ok bool) {
	if ins == InsMvni {
		op = 1
	}
	switch opt.ElemSize() {
	case 1:
		if ins != InsMovi || value < 0 || value > 0xFF {
			return 0, 0, 0, false
		}
		return uint32(value), 0, 0xE, true
	case 2:
		if value < 0 || value > 0xFF {
			return 0, 0, 0, false
		}
		return uint32(value), op, 0x8, true
	case 4:
		if value < 0 || value > 0xFF {
			return 0, 0, 0, false
		}
		return uint32(value), op, 0x0, true
	case 8:
		if ins != InsMovi {
			return 0, 0, 0, false
		}
		// 64 位形式：每个字节必须全 0 或全 1
		u := uint64(value)
		for i := uint(0); i < 8; i++ {
			switch (u >> (i * 8)) & 0xFF {
			case 0:
			case 0xFF:
				imm8 |= 1 << i
			default:
				return 0, 0, 0, false
			}
		}
		return imm8, 1, 0xE, true
	}
	return 0, 0, 0, false
}

// CanEncodeMovi 检查常量能否由单条 MOVI 物化
func CanEncodeMovi(value int64, opt InsOpts) bool {
	_, _, _, ok := moviFields(InsMovi, value, opt)
	return ok
}

func encodeRF(in *Instr) uint32 {
	errors.Assert(in.Ins == InsFmov && in.Reg1.IsVector(), errors.J0005, "%s has no float immediate form", in.Ins)
	imm8, ok := EncodeFloatImm8(in.FImm)
	errors.Assert(ok, errors.J0005, "fmov #%v is not encodable", in.FImm)

	if in.Opt.IsArrangement() {
		// FMOV Vd.T, #imm
		op := uint32(0)
		switch in.Opt {
		case Opt2S, Opt4S:
		case Opt2D:
			op = 1
		default:
			badForm(in)
		}
		return 0x0F00F400 | in.Opt.Q()<<30 | op<<29 | (imm8>>5)<<16 | (imm8&0x1F)<<5 | rd(in.Reg1)
	}
	// FMOV Sd/Dd, #imm
	return 0x1E201000 | ftype(in.Size)<<22 | imm8<<13 | rd(in.Reg1)
}

// EncodeFloatImm8 把浮点数编码为 FMOV 的 8 位立即数
//
// 可表示的值为 ±(16+m)/16 × 2^e，其中 m ∈ [0,15]，e ∈ [-3,4]。
func EncodeFloatImm8(f float64) (uint32, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f == 0 {
		return 0, false
	}
	for imm8 := uint32(0); imm8 < 256; imm8++ {
		if decodeFloatImm8(imm8) == f {
			return imm8, true
		}
	}
	return 0, false
}

func decodeFloatImm8(imm8 uint32) float64 {
	sign := (imm8 >> 7) & 1
	b := (imm8 >> 6) & 1
	cd := int((imm8 >> 4) & 3)
	mant := float64(16+(imm8&0xF)) / 16

	exp := cd + 1
	if b == 1 {
		exp = cd - 3
	}
	v := math.Ldexp(mant, exp)
	if sign == 1 {
		v = -v
	}
	return v
}

func encodeRRI(in *Instr) uint32 {
	d, n := in.Reg1, in.Reg2

	switch in.Ins {
	case InsUmov, InsSmov:
		errors.Assert(d.IsGeneral() && n.IsVector(), errors.J0005, "%s needs general <- vector", in.Ins)
		elem := int(in.Size)
		imm5 := elemImm5(elem, in.Imm1)
		q := uint32(0)
		base := uint32(0x0E003C00)
		if in.Ins == InsUmov {
			if elem == 8 {
				q = 1
			}
		} else {
			errors.Assert(elem == 1 || elem == 2, errors.J0005, "smov to w supports byte/halfword elements only")
			base = 0x0E002C00
		}
		return base | q<<30 | imm5<<16 | rn(n) | rd(d)

	case InsDup:
		errors.Assert(d.IsVector() && n.IsVector(), errors.J0005, "dup (element) needs vector registers")
		if in.Opt == Opt1D {
			imm5 := elemImm5(8, in.Imm1)
			return 0x5E000400 | imm5<<16 | rn(n) | rd(d)
		}
		if in.Opt.IsArrangement() {
			// DUP Vd.T, Vn.Ts[index]
			imm5 := elemImm5(in.Opt.ElemSize(), in.Imm1)
			return 0x0E000400 | in.Opt.Q()<<30 | imm5<<16 | rn(n) | rd(d)
		}
		// DUP Sd, Vn.S[index]（标量形式，即 mov s0, v1.s[i]）
		imm5 := elemImm5(int(in.Size), in.Imm1)
		return 0x5E000400 | imm5<<16 | rn(n) | rd(d)

	case InsIns:
		errors.Assert(d.IsVector() && n.IsGeneral(), errors.J0005, "ins (general) needs vector <- general")
		// INS Vd.Ts[index], Rn
		imm5 := elemImm5(int(in.Size), in.Imm1)
		return 0x4E001C00 | imm5<<16 | rn(n) | rd(d)

	case InsShl:
		errors.Assert(d.IsVector() && n.IsVector(), errors.J0005, "shl needs vector registers")
		if in.Opt.IsArrangement() && in.Opt != Opt1D {
			bits := int64(in.Opt.ElemSize() * 8)
			errors.Assert(in.Imm1 >= 0 && in.Imm1 < bits, errors.J0005, "shift #%d out of range for %s", in.Imm1, in.Opt)
			return 0x0F005400 | in.Opt.Q()<<30 | uint32(bits+in.Imm1)<<16 | rn(n) | rd(d)
		}
		errors.Assert(in.Size == Size8 && in.Imm1 >= 0 && in.Imm1 < 64, errors.J0005, "scalar shl #%d not encodable", in.Imm1)
		return 0x5F005400 | uint32(64+in.Imm1)<<16 | rn(n) | rd(d)
	}

	badForm(in)
	return 0
}

func encodeRRII(in *Instr) uint32 {
	if in.Ins != InsIns || !in.Reg1.IsVector() || !in.Reg2.IsVector() {
		badForm(in)
	}
	// INS Vd.Ts[index1], Vn.Ts[index2]
	elem := int(in.Size)
	imm5 := elemImm5(elem, in.Imm1)
	elemImm5(elem, in.Imm2)
	imm4 := uint32(in.Imm2) << log2ElemSize(elem)
	return 0x6E000400 | imm5<<16 | imm4<<11 | rn(in.Reg2) | rd(in.Reg1)
}

func encodeRRRI(in *Instr) uint32 {
	if in.Ins != InsExt {
		badForm(in)
	}
	errors.Assert(in.Reg1.IsVector() && in.Reg2.IsVector() && in.Reg3.IsVector(), errors.J0005, "ext needs vector registers")
	errors.Assert(in.Opt == Opt8B || in.Opt == Opt16B, errors.J0005, "ext supports 8b/16b only, got %s", in.Opt)
	limit := int64(8)
	if in.Opt == Opt16B {
		limit = 16
	}
	errors.Assert(in.Imm1 >= 0 && in.Imm1 < limit, errors.J0005, "ext #%d out of range for %s", in.Imm1, in.Opt)
	// EXT Vd.T, Vn.T, Vm.T, #index
	return 0x2E000000 | in.Opt.Q()<<30 | rm(in.Reg3) | uint32(in.Imm1)<<11 | rn(in.Reg2) | rd(in.Reg1)
}

func encodeRRRShift(in *Instr) uint32 {
	if in.Ins != InsAdd {
		badForm(in)
	}
	errors.Assert(in.Reg1.IsGeneral() && in.Reg2.IsGeneral() && in.Reg3.IsGeneral(), errors.J0005, "add (shifted) needs general registers")
	limit := int64(32)
	if in.Size == Size8 {
		limit = 64
	}
	errors.Assert(in.Imm1 >= 0 && in.Imm1 < limit, errors.J0005, "lsl #%d out of range", in.Imm1)
	// ADD Xd, Xn, Xm, LSL #amount
	return 0x0B000000 | sfBit(in.Size) | rm(in.Reg3) | uint32(in.Imm1)<<10 | rn(in.Reg2) | rd(in.Reg1)
}
