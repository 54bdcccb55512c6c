package platform

import (
	"encoding/binary"
	"fmt"
	"strings"

	"golang.org/x/arch/arm64/arm64asm"
)

// DisasmLine 一条反汇编结果
type DisasmLine struct {
	Offset int
	Word   uint32
	Text   string
}

// Disassemble 使用 arm64asm 解码机器码（GNU 语法）；无法识别的字输出为 .word
func Disassemble(code []byte) []DisasmLine {
	lines := make([]DisasmLine, 0, len(code)/InstrSize)
	for off := 0; off+InstrSize <= len(code); off += InstrSize {
		word := binary.LittleEndian.Uint32(code[off:])
		text := fmt.Sprintf(".word 0x%08x", word)
		if inst, err := arm64asm.Decode(code[off : off+InstrSize]); err == nil {
			text = strings.ToLower(arm64asm.GNUSyntax(inst))
		}
		lines = append(lines, DisasmLine{Offset: off, Word: word, Text: text})
	}
	return lines
}

// FormatDisasm 把反汇编结果格式化为多行文本
func FormatDisasm(lines []DisasmLine) string {
	var sb strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&sb, "%04x:  %08x  %s\n", l.Offset, l.Word, l.Text)
	}
	return sb.String()
}
