package jit

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/tangzhangming/hwgen/internal/errors"
	"github.com/tangzhangming/hwgen/internal/jit/platform"
	"github.com/tangzhangming/hwgen/internal/jit/types"
)

func TestLookupIntrinsic(t *testing.T) {
	tests := []struct {
		name string
		want NamedIntrinsic
		ok   bool
	}{
		{"AdvSimd.Add", NIAdvSimdAdd, true},
		{"advsimd.add", NIAdvSimdAdd, true},
		{"  AdvSimd.Arm64.CompareEqual ", NIAdvSimdArm64CompareEqual, true},
		{"Crc32.Arm64.ComputeCrc32C", NICrc32Arm64ComputeCrc32C, true},
		{"Vector128.get_Zero", NIVector128GetZero, true},
		{"AdvSimd.Illegal", NIIllegal, false},
		{"Illegal", NIIllegal, false},
		{"Sse2.Add", NIIllegal, false},
	}

	for _, tt := range tests {
		id, ok := LookupIntrinsic(tt.name)
		if ok != tt.ok {
			t.Errorf("LookupIntrinsic(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && id != tt.want {
			t.Errorf("LookupIntrinsic(%q) = %s, want %s", tt.name, id, tt.want)
		}
	}
}

func TestIntrinsicNamesRoundTrip(t *testing.T) {
	for id := NIIllegal + 1; id < NICount; id++ {
		got, ok := LookupIntrinsic(id.String())
		if !ok || got != id {
			t.Errorf("%s does not look up to itself (got %s, %v)", id, got, ok)
		}
	}
}

func TestParseISA(t *testing.T) {
	for _, isa := range AllISAs() {
		got, err := ParseISA(isa.String())
		if err != nil || got != isa {
			t.Errorf("ParseISA(%q) = %s, %v", isa, got, err)
		}
	}
	if got, err := ParseISA("advsimd.arm64"); err != nil || got != ISAAdvSimdArm64 {
		t.Errorf("ParseISA is case sensitive: %s, %v", got, err)
	}
	if _, err := ParseISA("Sve"); err == nil {
		t.Error("ParseISA(Sve) should fail")
	}
	if _, err := ParseISA("None"); err == nil {
		t.Error("ParseISA(None) should fail")
	}
}

func TestISABase(t *testing.T) {
	tests := map[ISA]ISA{
		ISAArmBase:      ISAArmBase,
		ISAArmBaseArm64: ISAArmBase,
		ISAAdvSimd:      ISAAdvSimd,
		ISAAdvSimdArm64: ISAAdvSimd,
		ISACrc32Arm64:   ISACrc32,
		ISAVector64:     ISAAdvSimd,
		ISAVector128:    ISAAdvSimd,
	}
	for isa, want := range tests {
		if got := isa.Base(); got != want {
			t.Errorf("%s.Base() = %s, want %s", isa, got, want)
		}
	}
}

func TestLookupImmUpperBound(t *testing.T) {
	tests := []struct {
		id       NamedIntrinsic
		simdSize int
		bt       types.VarType
		want     int
	}{
		{NIAdvSimdExtract, 16, types.TypeByte, 16},
		{NIAdvSimdExtract, 8, types.TypeByte, 8},
		{NIAdvSimdExtract, 16, types.TypeInt, 4},
		{NIAdvSimdExtract, 8, types.TypeFloat, 2},
		{NIAdvSimdExtract, 16, types.TypeDouble, 2},
		{NIAdvSimdInsert, 16, types.TypeShort, 8},
		{NIAdvSimdExtractVector64, 8, types.TypeShort, 4},
		{NIAdvSimdDuplicateSelectedScalarToVector128, 16, types.TypeLong, 2},
		{NIAdvSimdShiftLeftLogical, 16, types.TypeByte, 8},
		{NIAdvSimdShiftLeftLogical, 8, types.TypeInt, 32},
		{NIAdvSimdShiftLeftLogical, 16, types.TypeULong, 64},
	}
	for _, tt := range tests {
		if got := LookupImmUpperBound(tt.id, tt.simdSize, tt.bt); got != tt.want {
			t.Errorf("LookupImmUpperBound(%s, %d, %s) = %d, want %d", tt.id, tt.simdSize, tt.bt, got, tt.want)
		}
	}

	expectInternal(t, errors.J0004, func() { LookupImmUpperBound(NIAdvSimdAdd, 16, types.TypeInt) })
	expectInternal(t, errors.J0004, func() { LookupImmUpperBound(NIAdvSimdExtract, 12, types.TypeInt) })
}

func TestIsImmOp(t *testing.T) {
	imm := IntCon(1)
	n := NewHWIntrinsic(NIAdvSimdExtract, types.TypeInt, 16, RegNode(platform.V1), imm)
	if !IsImmOp(n.ID, n, imm) {
		t.Error("second operand of Extract should be the immediate")
	}
	if IsImmOp(n.ID, n, n.Op(1)) {
		t.Error("first operand of Extract is not an immediate")
	}

	add := NewHWIntrinsic(NIAdvSimdAdd, types.TypeInt, 16, RegNode(platform.V1), RegNode(platform.V2))
	if IsImmOp(add.ID, add, add.Op(2)) {
		t.Error("Add has no immediate operand")
	}

	// 操作数不足时不越界
	short := NewHWIntrinsic(NIAdvSimdExtractVector128, types.TypeInt, 0, RegNode(platform.V1))
	if IsImmOp(short.ID, short, nil) {
		t.Error("missing immediate operand reported as present")
	}
}

func TestFlagString(t *testing.T) {
	tests := []struct {
		flags Flag
		want  string
	}{
		{FlagNone, ""},
		{FlagSpecialCodeGen, "special"},
		{FlagSpecialCodeGen | FlagHasRMWSemantics, "special|rmw"},
		{FlagMultiIns | FlagNoResult, "multi|noresult"},
	}
	for _, tt := range tests {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("Flag(%d).String() = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestIntrinsicTableConsistency(t *testing.T) {
	for id := NIIllegal + 1; id < NICount; id++ {
		info := &intrinsicTable[id]

		if info.numArgs < 0 || info.numArgs > 3 {
			t.Errorf("%s: numArgs %d", id, info.numArgs)
		}
		if info.simdSize != 0 && info.simdSize != 8 && info.simdSize != 16 {
			t.Errorf("%s: simdSize %d", id, info.simdSize)
		}
		if (info.immOp == 0) != (info.immBound == immBoundNone) {
			t.Errorf("%s: immediate position %d with bound %d", id, info.immOp, info.immBound)
		}
		if info.immOp > info.numArgs {
			t.Errorf("%s: immediate position %d beyond %d arguments", id, info.immOp, info.numArgs)
		}
		if info.category == CategoryIMM && info.immOp == 0 {
			t.Errorf("%s: IMM category without an immediate operand", id)
		}
		if len(SupportedTypes(id)) == 0 {
			t.Errorf("%s: no supported element types", id)
		}
		// 表驱动路径只能处理 RMW 形式的三操作数内建函数
		if IsTableDriven(id) && info.numArgs == 3 && !HasRMWSemantics(id) {
			t.Errorf("%s: table-driven three-operand intrinsic must be RMW", id)
		}
		if info.isa == ISANone {
			t.Errorf("%s: no instruction set", id)
		}
	}
}

func TestResultIsVector(t *testing.T) {
	tests := []struct {
		id   NamedIntrinsic
		bt   types.VarType
		want bool
	}{
		{NIAdvSimdAdd, types.TypeInt, true},
		{NIAdvSimdStore, types.TypeInt, false},
		{NIAdvSimdExtract, types.TypeInt, false},
		{NIAdvSimdExtract, types.TypeDouble, true},
		{NICrc32ComputeCrc32, types.TypeUInt, false},
		{NIVector128GetZero, types.TypeByte, true},
		{NIAdvSimdAddScalar, types.TypeLong, true},
	}
	for _, tt := range tests {
		if got := ResultIsVector(tt.id, tt.bt); got != tt.want {
			t.Errorf("ResultIsVector(%s, %s) = %v, want %v", tt.id, tt.bt, got, tt.want)
		}
	}
}

func TestSupportedTypes(t *testing.T) {
	got := SupportedTypes(NIAdvSimdPopCount)
	want := []types.VarType{types.TypeByte, types.TypeUByte}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SupportedTypes(PopCount) mismatch (-want +got):\n%s", diff)
	}

	if got := LookupIns(NIAdvSimdAdd, types.TypeFloat); got != platform.InsFadd {
		t.Errorf("LookupIns(Add, float) = %s", got)
	}
	if got := LookupIns(NIAdvSimdPopCount, types.TypeInt); got != platform.InsInvalid {
		t.Errorf("LookupIns(PopCount, int) = %s", got)
	}
	expectInternal(t, errors.J0001, func() { LookupIns(NIAdvSimdAdd, types.TypeUndef) })
}

func TestIntrinsics(t *testing.T) {
	infos := Intrinsics()
	if len(infos) != int(NICount)-1 {
		t.Fatalf("Intrinsics() returned %d entries, want %d", len(infos), int(NICount)-1)
	}

	seen := make(map[string]bool)
	for _, info := range infos {
		if seen[info.Name] {
			t.Errorf("duplicate intrinsic name %s", info.Name)
		}
		seen[info.Name] = true

		if info.ID == NIIllegal {
			t.Error("Intrinsics() includes the illegal entry")
		}
		if info.Name != info.ID.String() {
			t.Errorf("name %s differs from id %s", info.Name, info.ID)
		}
	}

	if !seen["AdvSimd.BitwiseSelect"] || !seen["Crc32.Arm64.ComputeCrc32C"] {
		t.Error("expected intrinsics missing from listing")
	}
}
