// Package loader 从 TOML 方法文件构建待编译的内建函数方法
//
// 方法文件格式：
//
//	name = "blend"
//
//	[[args]]
//	name = "%mask"
//	class = "vector"
//
//	[[node]]
//	intrinsic = "AdvSimd.BitwiseSelect"
//	base_type = "int"
//	simd_size = 16
//	operands = ["%mask", "v1", "v2"]
//	result = "%r"
//
// 操作数可以是物理寄存器（v0、x3）、虚拟值（%name）、整数常量（#3）或浮点常量（#1.5）。
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/tangzhangming/hwgen/internal/jit"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

// 常量定义
const (
	MethodFileExtension = ".toml"      // 方法文件后缀
	ConfigFileName      = "hwgen.toml" // 配置文件名，加载目录时跳过
)

// 寄存器类
const (
	ClassVector  = "vector"
	ClassGeneral = "general"
)

// MethodFile 方法文件
type MethodFile struct {
	Name  string     `toml:"name"`
	Args  []ArgSpec  `toml:"args"`
	Nodes []NodeSpec `toml:"node"`
}

// ArgSpec 方法参数（进入方法时已存在的虚拟值）
type ArgSpec struct {
	Name  string `toml:"name"`
	Class string `toml:"class"`
}

// NodeSpec 内建函数节点
type NodeSpec struct {
	Intrinsic string   `toml:"intrinsic"`
	BaseType  string   `toml:"base_type"`
	SIMDSize  int      `toml:"simd_size"`
	Operands  []string `toml:"operands"`

	// Result 结果的虚拟值名
	Result string `toml:"result"`
	// Target 结果的物理寄存器
	Target string `toml:"target"`
	// Temps 预先指定的内部临时寄存器
	Temps []string `toml:"temps"`
}

// LoadFile 加载方法文件
func LoadFile(path string) (*jit.Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read method file: %w", err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), MethodFileExtension)
	}
	return m, nil
}

// LoadDir 加载目录下的所有方法文件（按文件名排序）
func LoadDir(dir string) ([]*jit.Method, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, MethodFileExtension) || name == ConfigFileName {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)

	methods := make([]*jit.Method, 0, len(paths))
	for _, path := range paths {
		m, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// Parse 解析方法文件内容
func Parse(data []byte) (*jit.Method, error) {
	var file MethodFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse method file: %w", err)
	}
	return Build(&file)
}

// Build 从方法描述构建节点
func Build(file *MethodFile) (*jit.Method, error) {
	b := &builder{values: make(map[string]*jit.Node)}
	m := &jit.Method{Name: file.Name}

	for i, arg := range file.Args {
		if !isValueName(arg.Name) {
			return nil, fmt.Errorf("args[%d]: value name must start with %%, got %q", i, arg.Name)
		}
		if _, dup := b.values[arg.Name]; dup {
			return nil, fmt.Errorf("args[%d]: value %s declared twice", i, arg.Name)
		}
		var vector bool
		switch strings.ToLower(arg.Class) {
		case "", ClassVector:
			vector = true
		case ClassGeneral:
			vector = false
		default:
			return nil, fmt.Errorf("args[%d]: unknown register class %q", i, arg.Class)
		}
		v := jit.VirtualNode(arg.Name, vector)
		b.values[arg.Name] = v
		m.Args = append(m.Args, v)
	}

	for i := range file.Nodes {
		node, err := b.buildNode(&file.Nodes[i])
		if err != nil {
			return nil, fmt.Errorf("node[%d]: %w", i, err)
		}
		m.Nodes = append(m.Nodes, node)
	}

	return m, nil
}

// builder 在节点之间共享虚拟值
type builder struct {
	values map[string]*jit.Node
}

func (b *builder) buildNode(spec *NodeSpec) (*jit.HWIntrinsicNode, error) {
	id, ok := jit.LookupIntrinsic(spec.Intrinsic)
	if !ok {
		return nil, fmt.Errorf("unknown intrinsic %q", spec.Intrinsic)
	}

	baseType, err := types.ParseVarType(spec.BaseType)
	if err != nil {
		return nil, err
	}

	switch spec.SIMDSize {
	case 0, 8, 16:
	default:
		return nil, fmt.Errorf("%s: simd_size must be 8 or 16, got %d", id, spec.SIMDSize)
	}

	if want := jit.LookupNumArgs(id); len(spec.Operands) != want {
		return nil, fmt.Errorf("%s expects %d operands, got %d", id, want, len(spec.Operands))
	}

	ops := make([]*jit.Node, len(spec.Operands))
	for i, text := range spec.Operands {
		op, err := b.operand(text)
		if err != nil {
			return nil, fmt.Errorf("%s operand %d: %w", id, i+1, err)
		}
		ops[i] = op
	}

	node := jit.NewHWIntrinsic(id, baseType, spec.SIMDSize, ops...)

	for _, text := range spec.Temps {
		r, err := platform.ParseReg(text)
		if err != nil {
			return nil, fmt.Errorf("%s temps: %w", id, err)
		}
		if !r.IsGeneral() {
			return nil, fmt.Errorf("%s temps: %s is not a general register", id, r)
		}
		node.InternalRegs = append(node.InternalRegs, r)
	}

	if !jit.ProducesValue(id) {
		if spec.Result != "" || spec.Target != "" {
			return nil, fmt.Errorf("%s does not produce a value", id)
		}
		return node, nil
	}

	if err := b.bindResult(node, spec); err != nil {
		return nil, fmt.Errorf("%s result: %w", id, err)
	}
	return node, nil
}

// bindResult 建立结果值：虚拟值、物理寄存器，或绑定到物理寄存器的具名值
func (b *builder) bindResult(node *jit.HWIntrinsicNode, spec *NodeSpec) error {
	vector := jit.ResultIsVector(node.ID, node.BaseType)

	target := platform.RegNA
	if spec.Target != "" {
		r, err := platform.ParseReg(spec.Target)
		if err != nil {
			return err
		}
		if r.IsVector() != vector {
			return fmt.Errorf("target %s has the wrong register class", r)
		}
		target = r
	}

	switch {
	case spec.Result == "" && target == platform.RegNA:
		return fmt.Errorf("either result or target is required")

	case spec.Result == "":
		node.Reg = target
		node.Def = jit.RegNode(target)

	default:
		if !isValueName(spec.Result) {
			return fmt.Errorf("value name must start with %%, got %q", spec.Result)
		}
		if _, dup := b.values[spec.Result]; dup {
			return fmt.Errorf("value %s defined twice", spec.Result)
		}
		def := jit.VirtualNode(spec.Result, vector)
		if target != platform.RegNA {
			def.Reg = target
			node.Reg = target
		}
		node.Def = def
		b.values[spec.Result] = def
	}
	return nil
}

// operand 解析一个操作数
func (b *builder) operand(text string) (*jit.Node, error) {
	text = strings.TrimSpace(text)

	switch {
	case text == "":
		return nil, fmt.Errorf("empty operand")

	case isValueName(text):
		v, ok := b.values[text]
		if !ok {
			return nil, fmt.Errorf("value %s used before it is defined", text)
		}
		return v, nil

	case strings.HasPrefix(text, "#"):
		return parseConstant(text[1:])
	}

	r, err := platform.ParseReg(text)
	if err != nil {
		return nil, err
	}
	return jit.RegNode(r), nil
}

// parseConstant 解析被包含的常量
func parseConstant(s string) (*jit.Node, error) {
	if v, err := strconv.ParseInt(s, 0, 64); err == nil {
		return jit.IntCon(v), nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid constant %q", s)
	}
	if _, ok := platform.EncodeFloatImm8(f); !ok {
		return nil, fmt.Errorf("floating-point constant %g cannot be encoded as an fmov immediate", f)
	}
	return jit.DblCon(f), nil
}

func isValueName(s string) bool {
	return len(s) > 1 && s[0] == '%'
}
