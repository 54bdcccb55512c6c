// Package output 把编译结果格式化为文本列表、反汇编、十六进制或 JSON
package output

import (
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/segmentio/encoding/json"

	"github.com/tangzhangming/hwgen/internal/jit"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
)

// Format 输出格式
type Format string

const (
	FormatText   Format = "text"
	FormatDisasm Format = "disasm"
	FormatHex    Format = "hex"
	FormatJSON   Format = "json"
)

// Formats 全部输出格式
var Formats = []Format{FormatText, FormatDisasm, FormatHex, FormatJSON}

// ParseFormat 解析输出格式
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(string(f), s) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

// Write 以指定格式输出一组方法
func Write(w io.Writer, format Format, methods []*jit.CompiledMethod) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, methods)
	case FormatText, FormatDisasm, FormatHex:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	for i, m := range methods {
		if i > 0 {
			fmt.Fprintln(w)
		}
		var text string
		switch format {
		case FormatText:
			text = Listing(m)
		case FormatDisasm:
			text = m.Name + ":\n" + platform.FormatDisasm(platform.Disassemble(m.Code))
		case FormatHex:
			text = m.Name + ":\n" + Hex(m.Code)
		}
		if _, err := io.WriteString(w, text); err != nil {
			return err
		}
	}
	return nil
}

// Listing 符号形式的指令列表，标签单独成行
func Listing(m *jit.CompiledMethod) string {
	byOffset := make(map[int][]platform.Label)
	for l, off := range m.Labels {
		byOffset[off] = append(byOffset[off], l)
	}
	for _, ls := range byOffset {
		sort.Slice(ls, func(i, j int) bool { return ls[i] < ls[j] })
	}

	var sb strings.Builder
	sb.WriteString(m.Name + ":\n")
	writeLabels := func(off int) {
		for _, l := range byOffset[off] {
			fmt.Fprintf(&sb, "L%d:\n", l)
		}
	}
	for _, in := range m.Instrs {
		writeLabels(in.Offset)
		fmt.Fprintf(&sb, "  %04x  %s\n", in.Offset, in.String())
	}
	writeLabels(len(m.Code))

	if len(m.Bindings) > 0 {
		names := make([]string, 0, len(m.Bindings))
		for name := range m.Bindings {
			names = append(names, name)
		}
		sort.Strings(names)
		sb.WriteString("; registers:")
		for _, name := range names {
			fmt.Fprintf(&sb, " %s=%s", name, m.Bindings[name])
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Hex 每行一个小端序机器字
func Hex(code []byte) string {
	var sb strings.Builder
	for off := 0; off+platform.InstrSize <= len(code); off += platform.InstrSize {
		fmt.Fprintf(&sb, "%08x\n", binary.LittleEndian.Uint32(code[off:]))
	}
	return sb.String()
}

type jsonMethod struct {
	Name     string            `json:"name"`
	Size     int               `json:"size"`
	Instrs   []jsonInstr       `json:"instructions"`
	Labels   map[string]int    `json:"labels,omitempty"`
	Bindings map[string]string `json:"bindings,omitempty"`
}

type jsonInstr struct {
	Offset int    `json:"offset"`
	Word   string `json:"word"`
	Text   string `json:"text"`
}

func toJSON(m *jit.CompiledMethod) jsonMethod {
	out := jsonMethod{
		Name:   m.Name,
		Size:   len(m.Code),
		Instrs: make([]jsonInstr, 0, len(m.Instrs)),
	}
	for _, in := range m.Instrs {
		word := binary.LittleEndian.Uint32(m.Code[in.Offset:])
		out.Instrs = append(out.Instrs, jsonInstr{
			Offset: in.Offset,
			Word:   fmt.Sprintf("%08x", word),
			Text:   in.String(),
		})
	}
	if len(m.Labels) > 0 {
		out.Labels = make(map[string]int, len(m.Labels))
		for l, off := range m.Labels {
			out.Labels[fmt.Sprintf("L%d", l)] = off
		}
	}
	if len(m.Bindings) > 0 {
		out.Bindings = make(map[string]string, len(m.Bindings))
		for name, r := range m.Bindings {
			out.Bindings[name] = r.String()
		}
	}
	return out
}

func writeJSON(w io.Writer, methods []*jit.CompiledMethod) error {
	out := make([]jsonMethod, len(methods))
	for i, m := range methods {
		out[i] = toJSON(m)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
