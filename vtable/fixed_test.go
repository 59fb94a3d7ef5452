package vtable_test

import (
	"testing"

	"github.com/dshills/vectable/delegate"
	"github.com/dshills/vectable/vtable"
)

func TestNewFixed(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	z := &recorder{}
	slots := []delegate.Delegate{a.delegate(), b.delegate(), z.delegate()}

	f, err := vtable.NewFixed(0, slots)
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}

	if f.Size() != 2 {
		t.Errorf("expected size 2, got %d", f.Size())
	}
	if f.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", f.Offset())
	}
}

func TestNewFixedTooShort(t *testing.T) {
	for _, n := range []int{0, 1} {
		slots := make([]delegate.Delegate, n)
		if _, err := vtable.NewFixed(0, slots); err != vtable.ErrSliceTooShort {
			t.Errorf("len %d: expected ErrSliceTooShort, got %v", n, err)
		}
	}
}

func TestFixedCall(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	z := &recorder{}
	f, err := vtable.NewFixed(0, []delegate.Delegate{a.delegate(), b.delegate(), z.delegate()})
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}

	f.Call(0)
	f.Call(1)
	f.Call(5)

	if len(a.ids) != 1 || a.ids[0] != 0 {
		t.Errorf("expected slot A invoked with 0, got %v", a.ids)
	}
	if len(b.ids) != 1 || b.ids[0] != 1 {
		t.Errorf("expected slot B invoked with 1, got %v", b.ids)
	}
	if len(z.ids) != 1 || z.ids[0] != 5 {
		t.Errorf("expected catcher invoked with 5, got %v", z.ids)
	}
}

func TestFixedCatcherSeesAnyDistance(t *testing.T) {
	slot := &recorder{}
	z := &recorder{}
	f, err := vtable.NewFixed(100, []delegate.Delegate{slot.delegate(), z.delegate()})
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}

	f.Call(0)
	f.Call(99)
	f.Call(101)
	f.Call(1 << 40)

	if len(slot.ids) != 0 {
		t.Errorf("expected no in-range hits, got %v", slot.ids)
	}
	want := []uint{0, 99, 101, 1 << 40}
	if len(z.ids) != len(want) {
		t.Fatalf("expected catcher invoked %d times, got %v", len(want), z.ids)
	}
	for i, id := range want {
		if z.ids[i] != id {
			t.Errorf("catcher call %d: expected id %d, got %d", i, id, z.ids[i])
		}
	}
}

func TestFixedMustCall(t *testing.T) {
	a := &recorder{}
	b := &recorder{}
	z := &recorder{}
	f, err := vtable.NewFixed(10, []delegate.Delegate{a.delegate(), b.delegate(), z.delegate()})
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}

	const irq = 11
	const _ vtable.Index = (irq - 10) | (10 + 2 - 1 - irq)

	f.MustCall(irq)

	if len(b.ids) != 1 || b.ids[0] != irq {
		t.Errorf("expected direct invocation with %d, got %v", irq, b.ids)
	}
}

func TestFixedCallerMutationVisible(t *testing.T) {
	// Fixed is a view: the caller owns the slice and may rebuild entries
	// before dispatch begins.
	first := &recorder{}
	second := &recorder{}
	z := &recorder{}
	slots := []delegate.Delegate{first.delegate(), z.delegate()}

	f, err := vtable.NewFixed(0, slots)
	if err != nil {
		t.Fatalf("NewFixed: %v", err)
	}

	slots[0] = second.delegate()
	f.Call(0)

	if len(first.ids) != 0 || len(second.ids) != 1 {
		t.Errorf("expected view to reflect caller-owned storage, got %v / %v", first.ids, second.ids)
	}
}
