package jit

import (
	"strings"
	"testing"

	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

// defNode 创建结果为虚拟值的节点
func defNode(id NamedIntrinsic, bt types.VarType, simdSize int, def *Node, ops ...*Node) *HWIntrinsicNode {
	n := NewHWIntrinsic(id, bt, simdSize, ops...)
	n.Def = def
	return n
}

func allocate(t *testing.T, args []*Node, nodes []*HWIntrinsicNode) *RegAllocation {
	t.Helper()
	alloc, err := NewRegisterAllocator(nil, nil).Allocate(args, nodes)
	if err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	return alloc
}

func TestAllocateSimple(t *testing.T) {
	a := VirtualNode("%a", true)
	b := VirtualNode("%b", true)
	c := VirtualNode("%c", true)

	add := defNode(NIAdvSimdAdd, types.TypeInt, 16, c, a, b)
	store := NewHWIntrinsic(NIAdvSimdStore, types.TypeInt, 16, RegNode(platform.R0), c)
	alloc := allocate(t, []*Node{a, b}, []*HWIntrinsicNode{add, store})

	if a.Reg == b.Reg {
		t.Errorf("arguments share register %s", a.Reg)
	}
	for _, v := range []*Node{a, b, c} {
		if !v.Reg.IsVector() {
			t.Errorf("%s got non-vector register %s", v.Name, v.Reg)
		}
		if r, ok := alloc.GetReg(v.Name); !ok || r != v.Reg {
			t.Errorf("GetReg(%s) = %s, %v; node has %s", v.Name, r, ok, v.Reg)
		}
	}
	if add.Reg != c.Reg {
		t.Errorf("node target %s, value register %s", add.Reg, c.Reg)
	}

	// 分配完成后可以直接生成代码
	instrs := genInstrs(t, add, store)
	if len(instrs) != 2 || instrs[0].Ins != platform.InsAdd || instrs[1].Ins != platform.InsSt1 {
		t.Errorf("unexpected code %v", listing(instrs))
	}
}

func TestAllocatePinnedRegisters(t *testing.T) {
	addr := VirtualNode("%p", false)
	v := VirtualNode("%v", true)

	// 显式使用 x0 与 v0，分配器不能再把它们分给虚拟值
	load := defNode(NIAdvSimdLoadVector128, types.TypeInt, 0, v, addr)
	add := newNode(NIAdvSimdAdd, types.TypeInt, 16, platform.V0, v, RegNode(platform.V1))
	store := NewHWIntrinsic(NIAdvSimdStore, types.TypeInt, 16, RegNode(platform.R0), RegNode(platform.V0))
	allocate(t, []*Node{addr}, []*HWIntrinsicNode{load, add, store})

	if addr.Reg == platform.R0 {
		t.Error("pinned x0 was allocated")
	}
	if v.Reg == platform.V0 || v.Reg == platform.V1 {
		t.Errorf("pinned register %s was allocated", v.Reg)
	}
	if add.Reg != platform.V0 {
		t.Errorf("physical target changed to %s", add.Reg)
	}
}

func TestAllocateRMWAvoidsSourceOperands(t *testing.T) {
	acc := VirtualNode("%acc", true)
	x := VirtualNode("%x", true)
	y := VirtualNode("%y", true)
	r := VirtualNode("%r", true)

	mla := defNode(NIAdvSimdMultiplyAdd, types.TypeInt, 16, r, acc, x, y)
	allocate(t, []*Node{acc, x, y}, []*HWIntrinsicNode{mla})

	if r.Reg == x.Reg || r.Reg == y.Reg {
		t.Fatalf("RMW result %s aliases a source operand (x=%s, y=%s)", r.Reg, x.Reg, y.Reg)
	}
	// 累加数在此之后不再使用，结果复用它的寄存器
	if r.Reg != acc.Reg {
		t.Errorf("result %s does not reuse accumulator %s", r.Reg, acc.Reg)
	}

	instrs := genInstrs(t, mla)
	if len(instrs) != 1 || instrs[0].Ins != platform.InsMla {
		t.Errorf("expected a single mla, got %v", listing(instrs))
	}
}

func TestAllocateRMWAccumulatorStillLive(t *testing.T) {
	acc := VirtualNode("%acc", true)
	x := VirtualNode("%x", true)
	y := VirtualNode("%y", true)
	r := VirtualNode("%r", true)
	s := VirtualNode("%s", true)

	mla := defNode(NIAdvSimdMultiplyAdd, types.TypeInt, 16, r, acc, x, y)
	add := defNode(NIAdvSimdAdd, types.TypeInt, 16, s, acc, r)
	allocate(t, []*Node{acc, x, y}, []*HWIntrinsicNode{mla, add})

	for _, other := range []*Node{acc, x, y} {
		if r.Reg == other.Reg {
			t.Errorf("result %s aliases live value %s", r.Reg, other.Name)
		}
	}

	// 累加数仍然活跃，需要先 mov
	instrs := genInstrs(t, mla, add)
	if got := countIns(instrs, platform.InsMov); got != 1 {
		t.Errorf("mov count = %d, want 1: %v", got, listing(instrs))
	}
}

func TestAllocateTempRegister(t *testing.T) {
	v := VirtualNode("%v", true)
	i := VirtualNode("%i", false)
	e := VirtualNode("%e", false)

	extract := defNode(NIAdvSimdExtract, types.TypeInt, 16, e, v, i)
	alloc := allocate(t, []*Node{v, i}, []*HWIntrinsicNode{extract})

	temps := alloc.TempRegs[extract]
	if len(temps) != 1 || len(extract.InternalRegs) != 1 {
		t.Fatalf("expected one temp register, got %v / %v", temps, extract.InternalRegs)
	}
	temp := temps[0]
	if !temp.IsGeneral() {
		t.Errorf("temp register %s is not general", temp)
	}
	if temp == i.Reg || temp == e.Reg {
		t.Errorf("temp register %s overlaps index %s or result %s", temp, i.Reg, e.Reg)
	}
	if e.Reg == i.Reg {
		t.Errorf("result %s overlaps index register", e.Reg)
	}

	instrs := genInstrs(t, extract)
	if instrs[0].Ins != platform.InsAdr || instrs[0].Reg1 != temp {
		t.Errorf("dispatch does not use the temp register: %v", listing(instrs[:3]))
	}
	if got := countIns(instrs, platform.InsUmov); got != 4 {
		t.Errorf("umov count = %d, want 4", got)
	}
}

func TestAllocateNoTempForTwoLanes(t *testing.T) {
	v := VirtualNode("%v", true)
	i := VirtualNode("%i", false)
	e := VirtualNode("%e", false)

	extract := defNode(NIAdvSimdExtract, types.TypeLong, 16, e, v, i)
	alloc := allocate(t, []*Node{v, i}, []*HWIntrinsicNode{extract})
	if len(alloc.TempRegs) != 0 || len(extract.InternalRegs) != 0 {
		t.Errorf("unexpected temp registers %v", alloc.TempRegs)
	}
}

func TestAllocateRegisterReuse(t *testing.T) {
	a := VirtualNode("%a", true)
	b := VirtualNode("%b", true)
	c := VirtualNode("%c", true)
	d := VirtualNode("%d", true)

	// 两个寄存器足够：%c 可以复用最后一次使用的操作数
	nodes := []*HWIntrinsicNode{
		defNode(NIAdvSimdAdd, types.TypeInt, 16, c, a, b),
		defNode(NIAdvSimdNot, types.TypeInt, 16, d, c),
	}
	ra := NewRegisterAllocator([]platform.Reg{platform.R0}, []platform.Reg{platform.V0, platform.V1})
	if _, err := ra.Allocate([]*Node{a, b}, nodes); err != nil {
		t.Fatalf("Allocate failed: %v", err)
	}
	if a.Reg == b.Reg {
		t.Errorf("arguments share %s", a.Reg)
	}
}

func TestAllocateErrors(t *testing.T) {
	t.Run("out of registers", func(t *testing.T) {
		a := VirtualNode("%a", true)
		b := VirtualNode("%b", true)
		c := VirtualNode("%c", true)
		d := VirtualNode("%d", true)
		e := VirtualNode("%e", true)

		nodes := []*HWIntrinsicNode{
			defNode(NIAdvSimdAdd, types.TypeInt, 16, d, a, b),
			defNode(NIAdvSimdAdd, types.TypeInt, 16, e, c, d),
		}
		ra := NewRegisterAllocator(nil, []platform.Reg{platform.V0, platform.V1})
		_, err := ra.Allocate([]*Node{a, b, c}, nodes)
		if err == nil || !strings.Contains(err.Error(), "out of vector registers") {
			t.Errorf("expected out of registers error, got %v", err)
		}
	})

	t.Run("use before definition", func(t *testing.T) {
		a := VirtualNode("%a", true)
		c := VirtualNode("%c", true)
		nodes := []*HWIntrinsicNode{defNode(NIAdvSimdNot, types.TypeInt, 16, c, a)}
		_, err := NewRegisterAllocator(nil, nil).Allocate(nil, nodes)
		if err == nil || !strings.Contains(err.Error(), "%a used before it is defined") {
			t.Errorf("got %v", err)
		}
	})

	t.Run("defined twice", func(t *testing.T) {
		a := VirtualNode("%a", true)
		c := VirtualNode("%c", true)
		nodes := []*HWIntrinsicNode{
			defNode(NIAdvSimdNot, types.TypeInt, 16, c, a),
			defNode(NIAdvSimdNot, types.TypeInt, 16, c, a),
		}
		_, err := NewRegisterAllocator(nil, nil).Allocate([]*Node{a}, nodes)
		if err == nil || !strings.Contains(err.Error(), "defined twice") {
			t.Errorf("got %v", err)
		}
	})

	t.Run("argument declared twice", func(t *testing.T) {
		a := VirtualNode("%a", true)
		_, err := NewRegisterAllocator(nil, nil).Allocate([]*Node{a, a}, nil)
		if err == nil || !strings.Contains(err.Error(), "declared twice") {
			t.Errorf("got %v", err)
		}
	})
}

func TestLiveInterval(t *testing.T) {
	a := NewLiveInterval(VirtualNode("%a", true), 0)
	a.Extend(3)
	a.Extend(1)
	if a.End != 3 {
		t.Errorf("End = %d, want 3", a.End)
	}

	b := NewLiveInterval(VirtualNode("%b", true), 3)
	b.Extend(5)
	if a.Overlaps(b) {
		t.Error("[0,3] and [3,5] should not overlap")
	}
	c := NewLiveInterval(VirtualNode("%c", true), 2)
	c.Extend(4)
	if !a.Overlaps(c) || !c.Overlaps(b) {
		t.Error("expected overlaps")
	}

	a.Reg = platform.V3
	if got := a.String(); got != "%a[0,3]=v3" {
		t.Errorf("String() = %q", got)
	}
}
