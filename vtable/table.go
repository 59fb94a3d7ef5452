package vtable

import "github.com/dshills/vectable/delegate"

// Table is the mutable dispatch table variant. It owns its slots and keeps a
// separate fallback delegate for identifiers with no specific registration.
//
// Every slot always holds a valid delegate: construction fills the table
// with a default bound to the table's own unhandled method, so an in-range
// identifier that was never registered routes to the fallback exactly like
// an out-of-range one. Slots are overwritten whole on registration; nothing
// is ever left empty.
//
// Table is not internally synchronized. See the package documentation.
type Table struct {
	offset   uint
	slots    []delegate.Delegate
	fallback delegate.Delegate
}

// New creates a table with size slots covering [offset, offset+size).
// Returns ErrZeroSize when size is zero. The fallback starts invalid, so
// unhandled identifiers are dropped silently until RegisterFallback is
// called.
func New(size, offset uint) (*Table, error) {
	if size == 0 {
		return nil, ErrZeroSize
	}

	t := &Table{
		offset: offset,
		slots:  make([]delegate.Delegate, size),
	}

	def := delegate.Bind(t, (*Table).unhandled)
	for i := range t.slots {
		t.slots[i] = def
	}

	return t, nil
}

// Size returns the number of dispatchable identifiers.
func (t *Table) Size() uint {
	return uint(len(t.slots))
}

// Offset returns the lowest dispatchable identifier.
func (t *Table) Offset() uint {
	return t.offset
}

// Register installs d as the handler for id, replacing any previous
// registration whole (last write wins; handlers never chain). An
// out-of-range id is a silent no-op and leaves the fallback untouched.
func (t *Table) Register(id uint, d delegate.Delegate) {
	if id >= t.offset && id < t.offset+uint(len(t.slots)) {
		t.slots[id-t.offset] = d
	}
}

// MustRegister installs d with no range branch. It is meant for identifiers
// known at compile time and proven in range with an Index assertion; an
// out-of-range id panics on the slot index.
func (t *Table) MustRegister(id uint, d delegate.Delegate) {
	t.slots[id-t.offset] = d
}

// RegisterFallback sets the delegate invoked for unregistered and
// out-of-range identifiers. Passing the invalid zero value resets the table
// to silent-drop.
func (t *Table) RegisterFallback(d delegate.Delegate) {
	t.fallback = d
}

// Call dispatches a runtime identifier. In-range identifiers invoke their
// slot; out-of-range identifiers invoke the fallback when it is valid and
// are dropped silently otherwise. Call never fails for any id.
func (t *Table) Call(id uint) {
	if id >= t.offset && id < t.offset+uint(len(t.slots)) {
		t.slots[id-t.offset].Invoke(id)
		return
	}
	t.fallback.InvokeIf(id)
}

// MustCall dispatches an identifier with no range branch. It is meant for
// identifiers known at compile time and proven in range with an Index
// assertion; the slot is invoked directly since construction guarantees it
// is populated.
func (t *Table) MustCall(id uint) {
	t.slots[id-t.offset].Invoke(id)
}

// unhandled is the default slot content. Every slot that was never
// explicitly registered forwards here, under the same validity guard as
// Call's out-of-range path.
func (t *Table) unhandled(id uint) {
	t.fallback.InvokeIf(id)
}
