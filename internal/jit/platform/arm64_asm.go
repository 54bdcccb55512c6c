// arm64_asm.go - ARM64 指令发射器
//
// 本文件实现代码生成阶段使用的指令发射器（emitter）。
//
// ARM64 指令特点：
// - 固定 32 位指令长度（跳转表依赖这一点用移位计算偏移）
// - 31 个通用寄存器 (X0-X30) + SP/ZR，32 个 SIMD&FP 寄存器 (V0-V31)
// - 绝大多数 SIMD 指令的立即数直接编码在指令字中
//
// 每条发射的指令既以符号形式（Instr）记录，也立即编码为机器字；
// 引用标签的指令在 Code() 时统一回填偏移。

package platform

import (
	"encoding/binary"

	"github.com/tangzhangming/hwgen/internal/errors"
)

// InstrSize 每条指令的字节数
const InstrSize = 4

// Label 临时标签
type Label int

// NoLabel 表示指令不引用标签
const NoLabel Label = -1

// Instr 已发射指令的符号记录
type Instr struct {
	Ins    Ins
	Fmt    InsFormat
	Size   EmitAttr
	Opt    InsOpts
	Reg1   Reg
	Reg2   Reg
	Reg3   Reg
	Reg4   Reg
	Imm1   int64
	Imm2   int64
	FImm   float64
	Label  Label
	Offset int // 在代码中的字节偏移
}

// ============================================================================
// ARM64 汇编器
// ============================================================================

// Assembler ARM64 指令发射器
type Assembler struct {
	code      []byte
	instrs    []Instr
	labels    map[Label]int
	nextLabel Label
	relocs    []arm64Reloc
}

type arm64Reloc struct {
	offset int   // 代码中的偏移
	target Label // 目标标签
	kind   int   // 重定位类型
}

const (
	relocBranch = 1 // B 指令（26 位偏移）
	relocCBZ    = 2 // CBZ/CBNZ 指令（19 位偏移）
	relocADR    = 3 // ADR 指令（21 位字节偏移）
)

// NewAssembler 创建发射器
func NewAssembler() *Assembler {
	return &Assembler{
		code:   make([]byte, 0, 1024),
		labels: make(map[Label]int),
	}
}

// Reset 重置发射器
func (a *Assembler) Reset() {
	a.code = a.code[:0]
	a.instrs = a.instrs[:0]
	a.labels = make(map[Label]int)
	a.nextLabel = 0
	a.relocs = nil
}

// Len 返回当前代码长度
func (a *Assembler) Len() int {
	return len(a.code)
}

// Instrs 返回已发射的指令记录
func (a *Assembler) Instrs() []Instr {
	return a.instrs
}

// Code 回填所有标签引用并返回机器码
func (a *Assembler) Code() []byte {
	a.resolveRelocations()
	return a.code
}

// ============================================================================
// 标签
// ============================================================================

// CreateLabel 创建临时标签
func (a *Assembler) CreateLabel() Label {
	l := a.nextLabel
	a.nextLabel++
	return l
}

// DefineLabel 把标签绑定到当前位置
func (a *Assembler) DefineLabel(l Label) {
	errors.Assert(l >= 0 && l < a.nextLabel, errors.J0006, "label L%d was never created", l)
	_, defined := a.labels[l]
	errors.Assert(!defined, errors.J0006, "label L%d defined twice", l)
	a.labels[l] = len(a.code)
}

// LabelOffset 返回标签的字节偏移
func (a *Assembler) LabelOffset(l Label) (int, bool) {
	off, ok := a.labels[l]
	return off, ok
}

// Labels 返回所有已定义标签的偏移
func (a *Assembler) Labels() map[Label]int {
	out := make(map[Label]int, len(a.labels))
	for l, off := range a.labels {
		out[l] = off
	}
	return out
}

// ============================================================================
// 发射接口
// ============================================================================

func (a *Assembler) append(in Instr) {
	in.Offset = len(a.code)
	word := encode(&in)

	switch in.Fmt {
	case FmtJ:
		a.relocs = append(a.relocs, arm64Reloc{offset: in.Offset, target: in.Label, kind: relocBranch})
	case FmtJR:
		a.relocs = append(a.relocs, arm64Reloc{offset: in.Offset, target: in.Label, kind: relocCBZ})
	case FmtRL:
		a.relocs = append(a.relocs, arm64Reloc{offset: in.Offset, target: in.Label, kind: relocADR})
	}

	var buf [InstrSize]byte
	binary.LittleEndian.PutUint32(buf[:], word)
	a.code = append(a.code, buf[:]...)
	a.instrs = append(a.instrs, in)
}

func newInstr(ins Ins, f InsFormat, size EmitAttr, opt InsOpts) Instr {
	return Instr{
		Ins:   ins,
		Fmt:   f,
		Size:  size,
		Opt:   opt,
		Reg1:  RegNA,
		Reg2:  RegNA,
		Reg3:  RegNA,
		Reg4:  RegNA,
		Label: NoLabel,
	}
}

// EmitR 单寄存器: br xN
func (a *Assembler) EmitR(ins Ins, size EmitAttr, r1 Reg) {
	in := newInstr(ins, FmtR, size, OptNone)
	in.Reg1 = r1
	a.append(in)
}

// EmitRR 双寄存器: op r1, r2
func (a *Assembler) EmitRR(ins Ins, size EmitAttr, r1, r2 Reg, opt InsOpts) {
	in := newInstr(ins, FmtRR, size, opt)
	in.Reg1, in.Reg2 = r1, r2
	a.append(in)
}

// EmitRRR 三寄存器: op r1, r2, r3
func (a *Assembler) EmitRRR(ins Ins, size EmitAttr, r1, r2, r3 Reg, opt InsOpts) {
	in := newInstr(ins, FmtRRR, size, opt)
	in.Reg1, in.Reg2, in.Reg3 = r1, r2, r3
	a.append(in)
}

// EmitRRRR 四寄存器: op r1, r2, r3, r4
func (a *Assembler) EmitRRRR(ins Ins, size EmitAttr, r1, r2, r3, r4 Reg) {
	in := newInstr(ins, FmtRRRR, size, OptNone)
	in.Reg1, in.Reg2, in.Reg3, in.Reg4 = r1, r2, r3, r4
	a.append(in)
}

// EmitRI 寄存器 + 立即数: movi r1, #imm
func (a *Assembler) EmitRI(ins Ins, size EmitAttr, r1 Reg, imm int64, opt InsOpts) {
	in := newInstr(ins, FmtRI, size, opt)
	in.Reg1 = r1
	in.Imm1 = imm
	a.append(in)
}

// EmitRF 寄存器 + 浮点立即数: fmov r1, #fimm
func (a *Assembler) EmitRF(ins Ins, size EmitAttr, r1 Reg, f float64, opt InsOpts) {
	in := newInstr(ins, FmtRF, size, opt)
	in.Reg1 = r1
	in.FImm = f
	a.append(in)
}

// EmitRRI 双寄存器 + 立即数（通道索引或移位量）
func (a *Assembler) EmitRRI(ins Ins, size EmitAttr, r1, r2 Reg, imm int64, opt InsOpts) {
	in := newInstr(ins, FmtRRI, size, opt)
	in.Reg1, in.Reg2 = r1, r2
	in.Imm1 = imm
	a.append(in)
}

// EmitRRII 双寄存器 + 两个立即数: ins r1[imm1], r2[imm2]
func (a *Assembler) EmitRRII(ins Ins, size EmitAttr, r1, r2 Reg, imm1, imm2 int64, opt InsOpts) {
	in := newInstr(ins, FmtRRII, size, opt)
	in.Reg1, in.Reg2 = r1, r2
	in.Imm1, in.Imm2 = imm1, imm2
	a.append(in)
}

// EmitRRRI 三寄存器 + 立即数: ext r1, r2, r3, #imm
func (a *Assembler) EmitRRRI(ins Ins, size EmitAttr, r1, r2, r3 Reg, imm int64, opt InsOpts) {
	in := newInstr(ins, FmtRRRI, size, opt)
	in.Reg1, in.Reg2, in.Reg3 = r1, r2, r3
	in.Imm1 = imm
	a.append(in)
}

// EmitRRRShift 移位寄存器形式: add r1, r2, r3, lsl #shift
func (a *Assembler) EmitRRRShift(ins Ins, size EmitAttr, r1, r2, r3 Reg, shift int64) {
	in := newInstr(ins, FmtRRRShift, size, OptLSL)
	in.Reg1, in.Reg2, in.Reg3 = r1, r2, r3
	in.Imm1 = shift
	a.append(in)
}

// EmitJ 无条件跳转: b label
func (a *Assembler) EmitJ(ins Ins, l Label) {
	in := newInstr(ins, FmtJ, SizeNone, OptNone)
	in.Label = l
	a.append(in)
}

// EmitJR 寄存器条件跳转: cbnz reg, label
func (a *Assembler) EmitJR(ins Ins, size EmitAttr, l Label, r Reg) {
	in := newInstr(ins, FmtJR, size, OptNone)
	in.Reg1 = r
	in.Label = l
	a.append(in)
}

// EmitRL 取标签地址: adr reg, label
func (a *Assembler) EmitRL(ins Ins, size EmitAttr, l Label, r Reg) {
	in := newInstr(ins, FmtRL, size, OptNone)
	in.Reg1 = r
	in.Label = l
	a.append(in)
}

// ============================================================================
// 重定位解析
// ============================================================================

func (a *Assembler) resolveRelocations() {
	for _, reloc := range a.relocs {
		targetPos, ok := a.labels[reloc.target]
		errors.Assert(ok, errors.J0006, "label L%d referenced at +%d but never defined", reloc.target, reloc.offset)

		delta := targetPos - reloc.offset
		instr := binary.LittleEndian.Uint32(a.code[reloc.offset:])

		switch reloc.kind {
		case relocBranch:
			// B 指令：26 位指令偏移
			instr = (instr &^ 0x03FFFFFF) | (uint32(delta/InstrSize) & 0x03FFFFFF)
		case relocCBZ:
			// CBZ/CBNZ 指令：19 位指令偏移
			instr = (instr &^ 0x00FFFFE0) | ((uint32(delta/InstrSize) & 0x7FFFF) << 5)
		case relocADR:
			// ADR 指令：21 位字节偏移，immlo 在 29-30 位，immhi 在 5-23 位
			imm := uint32(delta) & 0x1FFFFF
			instr = (instr &^ 0x60FFFFE0) | ((imm & 3) << 29) | ((imm >> 2) << 5)
		}

		binary.LittleEndian.PutUint32(a.code[reloc.offset:], instr)
	}
}
