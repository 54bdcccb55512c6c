package jit

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

func physicalMethod(name string) *Method {
	return &Method{
		Name: name,
		Nodes: []*HWIntrinsicNode{
			newNode(NIAdvSimdAdd, types.TypeInt, 16, platform.V0, reg(platform.V1), reg(platform.V2)),
			newNode(NIAdvSimdStore, types.TypeInt, 16, platform.RegNA, reg(platform.R0), reg(platform.V0)),
		},
	}
}

// badMethod 第二个节点缺少操作数
func badMethod(name string) *Method {
	return &Method{
		Name: name,
		Nodes: []*HWIntrinsicNode{
			newNode(NIAdvSimdNot, types.TypeInt, 16, platform.V0, reg(platform.V1)),
			newNode(NIAdvSimdAdd, types.TypeInt, 16, platform.V0, reg(platform.V1)),
		},
	}
}

func TestCompilePhysical(t *testing.T) {
	c := NewCompiler(nil, nil)
	cm, err := c.Compile(physicalMethod("add"))
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if cm.Name != "add" {
		t.Errorf("Name = %q", cm.Name)
	}
	if cm.Size() != 2*platform.InstrSize || len(cm.Instrs) != 2 {
		t.Errorf("Size = %d, instrs = %v", cm.Size(), listing(cm.Instrs))
	}
	if len(cm.Bindings) != 0 {
		t.Errorf("unexpected bindings %v", cm.Bindings)
	}
	checkListing(t, listing(cm.Instrs), []string{
		"add v0.4s, v1.4s, v2.4s",
		"st1 {v0.4s}, [x0]",
	})

	st := c.GetStats()
	if st.Compiled != 1 || st.Nodes != 2 || st.Instrs != 2 || st.CodeBytes != 8 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestCompileAllocatesVirtualValues(t *testing.T) {
	p := VirtualNode("%p", false)
	a := VirtualNode("%a", true)
	b := VirtualNode("%b", true)
	sum := VirtualNode("%sum", true)

	m := &Method{
		Name: "sum",
		Args: []*Node{p, a, b},
		Nodes: []*HWIntrinsicNode{
			defNode(NIAdvSimdAdd, types.TypeFloat, 16, sum, a, b),
			NewHWIntrinsic(NIAdvSimdStore, types.TypeFloat, 16, p, sum),
		},
	}

	cm, err := NewCompiler(nil, nil).Compile(m)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	for _, name := range []string{"%p", "%a", "%b", "%sum"} {
		if r, ok := cm.Bindings[name]; !ok || r == platform.RegNA {
			t.Errorf("%s not bound: %s", name, r)
		}
	}
	if !cm.Bindings["%p"].IsGeneral() {
		t.Errorf("%%p bound to %s", cm.Bindings["%p"])
	}
	if len(cm.Instrs) != 2 || cm.Instrs[0].Ins != platform.InsFadd {
		t.Errorf("unexpected code %v", listing(cm.Instrs))
	}
}

func TestCompileTempRegisters(t *testing.T) {
	v := VirtualNode("%v", true)
	i := VirtualNode("%i", false)
	e := VirtualNode("%e", false)
	m := &Method{
		Name:  "extract",
		Args:  []*Node{v, i},
		Nodes: []*HWIntrinsicNode{defNode(NIAdvSimdExtract, types.TypeShort, 16, e, v, i)},
	}

	cm, err := NewCompiler(nil, nil).Compile(m)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if len(cm.Temps[0]) != 1 {
		t.Fatalf("Temps = %v", cm.Temps)
	}
	// 8 个 case 的跳转表：3 条分派指令 + 8 个 case + 7 条跳转
	if len(cm.Instrs) != 18 {
		t.Errorf("instruction count = %d", len(cm.Instrs))
	}
	if len(cm.Labels) == 0 {
		t.Error("labels not recorded")
	}
}

func TestCompileInternalError(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	c := NewCompiler(nil, zap.New(core))

	cm, err := c.Compile(badMethod("broken"))
	if cm != nil {
		t.Error("partial code returned")
	}
	if !stderrors.Is(err, errors.ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	var ie *errors.InternalError
	if !stderrors.As(err, &ie) || ie.Code != errors.J0002 {
		t.Fatalf("expected J0002, got %v", err)
	}
	if len(ie.Notes) == 0 || !strings.HasPrefix(ie.Notes[len(ie.Notes)-1], "while generating node 1: AdvSimd.Add") {
		t.Errorf("notes = %q", ie.Notes)
	}

	entries := logs.FilterMessage("internal code generation error").All()
	if len(entries) != 1 {
		t.Fatalf("expected one error log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["code"] != errors.J0002 || fields["method"] != "broken" || fields["node"] != int64(1) ||
		fields["intrinsic"] != "AdvSimd.Add" {
		t.Errorf("log fields = %v", fields)
	}

	if st := c.GetStats(); st.Failed != 1 || st.Compiled != 0 {
		t.Errorf("stats = %+v", st)
	}
	if c.IsCompiled(badMethod("broken")) {
		t.Error("failed method reported as compiled")
	}
}

func TestCompileISANotSupported(t *testing.T) {
	config := &Config{ISAs: map[ISA]bool{ISAAdvSimd: true}}
	c := NewCompiler(config, nil)

	crc := &Method{
		Name:  "crc",
		Nodes: []*HWIntrinsicNode{newNode(NICrc32ComputeCrc32, types.TypeUInt, 0, platform.R0, reg(platform.R1), reg(platform.R2))},
	}
	if _, err := c.Compile(crc); !stderrors.Is(err, ErrISANotSupported) {
		t.Errorf("expected ErrISANotSupported, got %v", err)
	}

	if _, err := c.Compile(physicalMethod("ok")); err != nil {
		t.Errorf("AdvSimd method rejected: %v", err)
	}

	// 64 位扩展需要同时启用基础指令集
	config.ISAs = map[ISA]bool{ISAAdvSimdArm64: true}
	compare := &Method{
		Name:  "cmp",
		Nodes: []*HWIntrinsicNode{newNode(NIAdvSimdArm64CompareEqual, types.TypeLong, 0, platform.V0, reg(platform.V1), reg(platform.V2))},
	}
	_, err := c.Compile(compare)
	if !stderrors.Is(err, ErrISANotSupported) {
		t.Fatalf("expected ErrISANotSupported, got %v", err)
	}
	if !strings.Contains(err.Error(), "requires AdvSimd.Arm64") {
		t.Errorf("error = %v", err)
	}

	if st := c.GetStats(); st.Rejected != 2 || st.Compiled != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCompileUnallocated(t *testing.T) {
	config := DefaultConfig()
	config.Allocate = false

	a := VirtualNode("%a", true)
	m := &Method{
		Name:  "virtual",
		Args:  []*Node{a},
		Nodes: []*HWIntrinsicNode{newNode(NIAdvSimdNot, types.TypeInt, 16, platform.V0, a)},
	}
	if _, err := NewCompiler(config, nil).Compile(m); !stderrors.Is(err, ErrUnallocated) {
		t.Errorf("expected ErrUnallocated, got %v", err)
	}
}

func TestCompileAllocationError(t *testing.T) {
	a := VirtualNode("%a", true)
	m := &Method{
		Name:  "undefined",
		Nodes: []*HWIntrinsicNode{defNode(NIAdvSimdNot, types.TypeInt, 16, VirtualNode("%b", true), a)},
	}
	_, err := NewCompiler(nil, nil).Compile(m)
	if err == nil || !strings.HasPrefix(err.Error(), "register allocation for undefined:") {
		t.Errorf("got %v", err)
	}
	if stderrors.Is(err, errors.ErrInternal) {
		t.Error("allocation failure reported as internal error")
	}
}

func TestCompileCache(t *testing.T) {
	c := NewCompiler(nil, nil)
	m := physicalMethod("cached")

	first, err := c.Compile(m)
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsCompiled(m) {
		t.Error("method not cached")
	}
	second, err := c.Compile(m)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("cache returned a different result")
	}

	st := c.GetStats()
	if st.CacheHits != 1 || st.CacheMisses != 1 || st.Compiled != 1 {
		t.Errorf("stats = %+v", st)
	}

	if cm, err := c.Compile(nil); cm != nil || err != nil {
		t.Errorf("Compile(nil) = %v, %v", cm, err)
	}
}

func TestCompileAll(t *testing.T) {
	methods := make([]*Method, 0, 16)
	for i := 0; i < 16; i++ {
		if i%5 == 3 {
			methods = append(methods, badMethod(fmt.Sprintf("bad%d", i)))
		} else {
			methods = append(methods, physicalMethod(fmt.Sprintf("m%d", i)))
		}
	}

	c := NewCompiler(nil, nil)
	results, err := c.CompileAll(methods)
	if len(results) != len(methods) {
		t.Fatalf("got %d results", len(results))
	}

	errs := multierr.Errors(err)
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(errs), err)
	}
	for _, e := range errs {
		if !stderrors.Is(e, errors.ErrInternal) {
			t.Errorf("unexpected error %v", e)
		}
	}

	for i, cm := range results {
		if i%5 == 3 {
			if cm != nil {
				t.Errorf("result %d should be nil", i)
			}
			continue
		}
		if cm == nil || cm.Name != methods[i].Name {
			t.Errorf("result %d out of order: %v", i, cm)
		}
	}

	if st := c.GetStats(); st.Compiled != 13 || st.Failed != 3 {
		t.Errorf("stats = %+v", st)
	}
}

func TestCompileAllSharedMethod(t *testing.T) {
	a := VirtualNode("%a", true)
	r := VirtualNode("%r", true)
	m := &Method{
		Name:  "shared",
		Args:  []*Node{a},
		Nodes: []*HWIntrinsicNode{defNode(NIAdvSimdNot, types.TypeInt, 16, r, a)},
	}
	bad := badMethod("bad")

	c := NewCompiler(nil, nil)
	results, err := c.CompileAll([]*Method{m, bad, m, m, bad})

	if errs := multierr.Errors(err); len(errs) != 1 {
		t.Fatalf("expected one error per distinct method, got %v", err)
	}
	for _, i := range []int{0, 2, 3} {
		if results[i] == nil || results[i] != results[0] {
			t.Errorf("result %d not shared: %v", i, results[i])
		}
	}
	if results[1] != nil || results[4] != nil {
		t.Error("failed method produced code")
	}
	if st := c.GetStats(); st.Compiled != 1 || st.Failed != 1 || st.CacheHits != 0 {
		t.Errorf("stats = %+v", st)
	}
}

func TestConfigSupports(t *testing.T) {
	config := DefaultConfig()
	for _, isa := range AllISAs() {
		if !config.Supports(isa) {
			t.Errorf("default config does not support %s", isa)
		}
	}

	config.ISAs[ISACrc32] = false
	if config.Supports(ISACrc32) || config.Supports(ISACrc32Arm64) {
		t.Error("Crc32.Arm64 supported without Crc32")
	}
	if !config.Supports(ISAAdvSimdArm64) {
		t.Error("AdvSimd.Arm64 should remain supported")
	}
}
