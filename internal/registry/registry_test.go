package registry

import (
	"errors"
	"testing"

	"github.com/phyten/annox/internal/lang"
)

type fakeHandle struct {
	name     string
	disposed *[]string
}

func (h *fakeHandle) Dispose() { *h.disposed = append(*h.disposed, h.name) }

type fakeAllocator struct {
	allocated []string
	disposed  []string
	failOn    string
}

func (a *fakeAllocator) Allocate(name string, _ map[string]any) (StyleHandle, error) {
	if name == a.failOn {
		return nil, errors.New("boom")
	}
	a.allocated = append(a.allocated, name)
	return &fakeHandle{name: name, disposed: &a.disposed}, nil
}

func kindConfigs() []KindConfig {
	return []KindConfig{
		{Name: "TODO", Pattern: `TODO:?[^\n]*`, Style: map[string]any{"color": "#fff"}},
		{Name: "FIXME", Pattern: `FIXME:?[^\n]*`, Markdown: true},
	}
}

func TestRebuildは欠落した構成を拒否する(t *testing.T) {
	if _, err := Rebuild(nil, []lang.Descriptor{}, nil); !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("nil kinds: got %v", err)
	}
	if _, err := Rebuild([]KindConfig{}, nil, nil); !errors.Is(err, ErrConfigMissing) {
		t.Fatalf("nil languages: got %v", err)
	}
	// 空リストは有効で、何にもマッチしないレジストリになる
	reg, err := Rebuild([]KindConfig{}, []lang.Descriptor{}, nil)
	if err != nil {
		t.Fatalf("empty lists must be valid: %v", err)
	}
	if len(reg.Kinds()) != 0 || len(reg.Languages()) != 0 {
		t.Fatal("expected an empty registry")
	}
}

func TestRebuildRejectsDuplicateNames(t *testing.T) {
	cfgs := append(kindConfigs(), KindConfig{Name: "TODO", Pattern: "x"})
	if _, err := Rebuild(cfgs, lang.Defaults(), nil); !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("got %v", err)
	}
}

func TestRebuildRejectsInvalidNames(t *testing.T) {
	cfgs := []KindConfig{{Name: "not a group", Pattern: "x"}}
	if _, err := Rebuild(cfgs, lang.Defaults(), nil); !errors.Is(err, ErrInvalidName) {
		t.Fatalf("got %v", err)
	}
}

func TestRebuildRejectsBrokenPattern(t *testing.T) {
	cfgs := []KindConfig{{Name: "TODO", Pattern: "("}}
	if _, err := Rebuild(cfgs, lang.Defaults(), nil); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestRebuildAllocatesStylesInOrder(t *testing.T) {
	alloc := &fakeAllocator{}
	reg, err := Rebuild(kindConfigs(), lang.Defaults(), alloc)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if len(alloc.allocated) != 2 || alloc.allocated[0] != "TODO" || alloc.allocated[1] != "FIXME" {
		t.Fatalf("unexpected allocation order: %v", alloc.allocated)
	}
	reg.Release()
	if len(alloc.disposed) != 2 {
		t.Fatalf("expected both handles disposed, got %v", alloc.disposed)
	}
	// Release is idempotent
	reg.Release()
	if len(alloc.disposed) != 2 {
		t.Fatalf("double release must not dispose twice: %v", alloc.disposed)
	}
}

func TestRebuildFailedAllocationDisposesPartial(t *testing.T) {
	alloc := &fakeAllocator{failOn: "FIXME"}
	if _, err := Rebuild(kindConfigs(), lang.Defaults(), alloc); err == nil {
		t.Fatal("expected allocation error")
	}
	if len(alloc.disposed) != 1 || alloc.disposed[0] != "TODO" {
		t.Fatalf("expected the already-allocated handle disposed, got %v", alloc.disposed)
	}
}

func TestKindLookup(t *testing.T) {
	reg, err := Rebuild(kindConfigs(), lang.Defaults(), nil)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if k := reg.Kind("FIXME"); k == nil || !k.Markdown {
		t.Fatalf("unexpected FIXME kind: %+v", k)
	}
	if reg.Kind("NOPE") != nil {
		t.Fatal("unknown kind must be nil")
	}
}
