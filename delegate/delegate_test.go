package delegate_test

import (
	"testing"

	"github.com/dshills/vectable/delegate"
)

func TestZeroValueIsInvalid(t *testing.T) {
	var d delegate.Delegate

	if d.IsValid() {
		t.Error("expected zero value to be invalid")
	}
}

func TestNew(t *testing.T) {
	var got uint
	d := delegate.New(func(id uint) { got = id })

	if !d.IsValid() {
		t.Fatal("expected delegate to be valid")
	}

	d.Invoke(42)
	if got != 42 {
		t.Errorf("expected invocation with 42, got %d", got)
	}
}

func TestNewNilFunc(t *testing.T) {
	d := delegate.New(nil)

	if d.IsValid() {
		t.Error("expected delegate bound to nil func to be invalid")
	}
}

type counter struct {
	hits   int
	lastID uint
}

func (c *counter) record(id uint) {
	c.hits++
	c.lastID = id
}

func TestBind(t *testing.T) {
	c := &counter{}
	d := delegate.Bind(c, (*counter).record)

	if !d.IsValid() {
		t.Fatal("expected bound delegate to be valid")
	}

	d.Invoke(7)
	d.Invoke(9)

	if c.hits != 2 {
		t.Errorf("expected 2 hits, got %d", c.hits)
	}
	if c.lastID != 9 {
		t.Errorf("expected last id 9, got %d", c.lastID)
	}
}

func TestBindNilMethod(t *testing.T) {
	d := delegate.Bind(&counter{}, nil)

	if d.IsValid() {
		t.Error("expected delegate bound to nil method to be invalid")
	}
}

func TestBindSeesReceiverMutation(t *testing.T) {
	c := &counter{}
	d := delegate.Bind(c, (*counter).record)

	c.hits = 100
	d.Invoke(1)

	if c.hits != 101 {
		t.Errorf("expected mutation through pointer receiver to be visible, got %d", c.hits)
	}
}

func TestInvokeInvalidPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic invoking invalid delegate")
		}
	}()

	var d delegate.Delegate
	d.Invoke(0)
}

func TestInvokeIf(t *testing.T) {
	called := false
	d := delegate.New(func(id uint) { called = true })

	if !d.InvokeIf(3) {
		t.Error("expected InvokeIf to report true for valid delegate")
	}
	if !called {
		t.Error("expected delegate function to run")
	}
}

func TestInvokeIfInvalid(t *testing.T) {
	var d delegate.Delegate

	if d.InvokeIf(3) {
		t.Error("expected InvokeIf to report false for invalid delegate")
	}
}

func TestOverwriteByValue(t *testing.T) {
	var got string
	first := delegate.New(func(id uint) { got = "first" })
	second := delegate.New(func(id uint) { got = "second" })

	d := first
	d = second
	d.Invoke(0)

	if got != "second" {
		t.Errorf("expected second delegate after overwrite, got %q", got)
	}
}
