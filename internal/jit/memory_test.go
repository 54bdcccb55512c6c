package jit

import (
	"bytes"
	stderrors "errors"
	"testing"
)

func newTestCache(t *testing.T, maxSize int) *CodeCache {
	t.Helper()
	cc := NewCodeCache(maxSize, nil)
	t.Cleanup(func() {
		if err := cc.Clear(); err != nil {
			t.Errorf("Clear failed: %v", err)
		}
	})
	return cc
}

func install(t *testing.T, cc *CodeCache, cm *CompiledMethod) *InstalledMethod {
	t.Helper()
	im, err := cc.Install(cm)
	if stderrors.Is(err, ErrExecutableMemory) {
		t.Skip(err)
	}
	if err != nil {
		t.Fatalf("Install failed: %v", err)
	}
	return im
}

func TestCodeCacheInstall(t *testing.T) {
	cm, err := NewCompiler(nil, nil).Compile(physicalMethod("add"))
	if err != nil {
		t.Fatal(err)
	}

	cc := newTestCache(t, 4096)
	im := install(t, cc, cm)

	if im.Addr == 0 || im.Size != cm.Size() {
		t.Errorf("installed %s at %#x, %d bytes", im.Name, im.Addr, im.Size)
	}
	if !bytes.Equal(im.Bytes(), cm.Code) {
		t.Errorf("installed bytes %x, want %x", im.Bytes(), cm.Code)
	}
	if got, ok := cc.Lookup("add"); !ok || got != im {
		t.Error("Lookup did not return the installed method")
	}
	if cc.UsedSize() != cm.Size() {
		t.Errorf("UsedSize = %d", cc.UsedSize())
	}
}

func TestCodeCacheReplace(t *testing.T) {
	cc := newTestCache(t, 64)

	first := install(t, cc, &CompiledMethod{Name: "m", Code: make([]byte, 40)})
	second := install(t, cc, &CompiledMethod{Name: "m", Code: bytes.Repeat([]byte{0x1f, 0x20, 0x03, 0xd5}, 12)})

	if first == second {
		t.Fatal("replacement returned the old entry")
	}
	if cc.UsedSize() != 48 {
		t.Errorf("UsedSize = %d, want 48", cc.UsedSize())
	}
	if got, _ := cc.Lookup("m"); got != second {
		t.Error("Lookup returned the replaced method")
	}
}

func TestCodeCacheFull(t *testing.T) {
	cc := newTestCache(t, 16)
	install(t, cc, &CompiledMethod{Name: "a", Code: make([]byte, 12)})

	_, err := cc.Install(&CompiledMethod{Name: "b", Code: make([]byte, 8)})
	if !stderrors.Is(err, ErrCodeCacheFull) {
		t.Fatalf("expected ErrCodeCacheFull, got %v", err)
	}
	if _, ok := cc.Lookup("b"); ok {
		t.Error("rejected method is installed")
	}

	if err := cc.Remove("a"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if cc.UsedSize() != 0 {
		t.Errorf("UsedSize = %d after Remove", cc.UsedSize())
	}
	install(t, cc, &CompiledMethod{Name: "b", Code: make([]byte, 8)})
}

func TestCodeCacheErrors(t *testing.T) {
	cc := newTestCache(t, 16)
	if _, err := cc.Install(nil); err == nil {
		t.Error("Install(nil) should fail")
	}
	if _, err := cc.Install(&CompiledMethod{Name: "empty"}); err == nil {
		t.Error("installing empty code should fail")
	}
	if err := cc.Remove("missing"); err == nil {
		t.Error("Remove of a missing method should fail")
	}
}

func TestAlignToPage(t *testing.T) {
	tests := []struct{ size, want int }{
		{1, 4096},
		{4096, 4096},
		{4097, 8192},
	}
	for _, tt := range tests {
		if got := alignToPage(tt.size, 4096); got != tt.want {
			t.Errorf("alignToPage(%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}
