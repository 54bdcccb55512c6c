package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// vecName 向量寄存器：有排列时为 v0.4s，否则按宽度取 s0/d0/q0
func vecName(r Reg, size EmitAttr, opt InsOpts) string {
	if !r.IsVector() {
		return r.Name(size)
	}
	if opt.IsArrangement() {
		return r.String() + "." + opt.String()
	}
	return r.Name(size)
}

func laneSuffix(elemSize int) string {
	switch elemSize {
	case 1:
		return "b"
	case 2:
		return "h"
	case 4:
		return "s"
	case 8:
		return "d"
	}
	return "?"
}

func laneName(r Reg, elemSize int, index int64) string {
	return fmt.Sprintf("%s.%s[%d]", r, laneSuffix(elemSize), index)
}

func labelName(l Label) string {
	return "L" + strconv.Itoa(int(l))
}

// String 返回 GNU 风格的小写汇编文本
func (in Instr) String() string {
	var b strings.Builder
	b.WriteString(in.Ins.String())

	ops := in.operands()
	if len(ops) > 0 {
		b.WriteByte(' ')
		b.WriteString(strings.Join(ops, ", "))
	}
	return b.String()
}

func (in Instr) operands() []string {
	switch in.Fmt {
	case FmtR:
		return []string{in.Reg1.Name(Size8)}

	case FmtRR:
		switch in.Ins {
		case InsLd1, InsSt1:
			opt := in.Opt
			if !opt.IsArrangement() {
				opt = SimdInsOpt(in.Size, 1)
			}
			return []string{"{" + vecName(in.Reg1, in.Size, opt) + "}", "[" + in.Reg2.Name(Size8) + "]"}
		case InsDup:
			return []string{vecName(in.Reg1, in.Size, in.Opt), in.Reg2.Name(generalSizeFor(in.Opt))}
		case InsSadalp, InsUadalp:
			// 目标元素宽度加倍，元素个数减半
			wide := SimdInsOpt(in.Opt.Width(), in.Opt.ElemSize()*2)
			return []string{vecName(in.Reg1, in.Size, wide), vecName(in.Reg2, in.Size, in.Opt)}
		}
		return []string{in.regName(in.Reg1), in.regName(in.Reg2)}

	case FmtRRR:
		return []string{in.regName(in.Reg1), in.regName(in.Reg2), in.regName(in.Reg3)}

	case FmtRRRR:
		return []string{in.regName(in.Reg1), in.regName(in.Reg2), in.regName(in.Reg3), in.regName(in.Reg4)}

	case FmtRI:
		return []string{in.regName(in.Reg1), "#" + strconv.FormatInt(in.Imm1, 10)}

	case FmtRF:
		return []string{in.regName(in.Reg1), "#" + strconv.FormatFloat(in.FImm, 'f', -1, 64)}

	case FmtRRI:
		switch in.Ins {
		case InsUmov, InsSmov:
			dstSize := Size4
			if in.Ins == InsUmov && in.Size == Size8 {
				dstSize = Size8
			}
			return []string{in.Reg1.Name(dstSize), laneName(in.Reg2, int(in.Size), in.Imm1)}
		case InsDup:
			if in.Opt.IsArrangement() {
				return []string{vecName(in.Reg1, in.Size, in.Opt), laneName(in.Reg2, in.Opt.ElemSize(), in.Imm1)}
			}
			return []string{in.Reg1.Name(in.Size), laneName(in.Reg2, int(in.Size), in.Imm1)}
		case InsIns:
			return []string{laneName(in.Reg1, int(in.Size), in.Imm1), in.Reg2.Name(generalSizeFor(SimdInsOpt(Size16, int(in.Size))))}
		}
		return []string{in.regName(in.Reg1), in.regName(in.Reg2), "#" + strconv.FormatInt(in.Imm1, 10)}

	case FmtRRII:
		return []string{laneName(in.Reg1, int(in.Size), in.Imm1), laneName(in.Reg2, int(in.Size), in.Imm2)}

	case FmtRRRI:
		return []string{in.regName(in.Reg1), in.regName(in.Reg2), in.regName(in.Reg3), "#" + strconv.FormatInt(in.Imm1, 10)}

	case FmtRRRShift:
		return []string{in.regName(in.Reg1), in.regName(in.Reg2), in.regName(in.Reg3), "lsl #" + strconv.FormatInt(in.Imm1, 10)}

	case FmtJ:
		return []string{labelName(in.Label)}

	case FmtJR, FmtRL:
		return []string{in.regName(in.Reg1), labelName(in.Label)}
	}
	return nil
}

func (in Instr) regName(r Reg) string {
	if r.IsGeneral() {
		size := in.Size
		if size != Size8 {
			size = Size4
		}
		if in.Ins == InsCrc32x || in.Ins == InsCrc32cx {
			if r != in.Reg3 {
				size = Size4
			} else {
				size = Size8
			}
		}
		return r.Name(size)
	}
	opt := in.Opt
	switch in.Ins {
	case InsMov, InsNot, InsCnt, InsAnd, InsBic, InsOrr, InsOrn, InsEor, InsBsl, InsBit, InsBif:
		// 按位运算只有字节排列
		width := in.Size
		if opt.IsArrangement() {
			width = opt.Width()
		}
		if width == Size8 || width == Size16 {
			opt = SimdInsOpt(width, 1)
		}
	case InsShl:
		if opt == Opt1D {
			opt = OptNone
		}
	}
	return vecName(r, in.Size, opt)
}

func generalSizeFor(opt InsOpts) EmitAttr {
	if opt.ElemSize() == 8 {
		return Size8
	}
	return Size4
}
