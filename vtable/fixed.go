package vtable

import "github.com/dshills/vectable/delegate"

// Fixed is a read-only dispatch view over a caller-owned delegate slice.
//
// The slice holds Size()+1 entries: slots 0..Size()-1 cover the identifiers
// [Offset, Offset+Size) and the final slot catches every out-of-range
// identifier. Every entry must be a valid delegate; Fixed never checks
// validity before invoking. The caller retains ownership and must keep the
// slice alive and populated for the lifetime of the view.
type Fixed struct {
	offset uint
	slots  []delegate.Delegate
}

// NewFixed creates a view over slots with the given identifier offset.
// The table size is len(slots)-1; the last entry is the out-of-range
// catcher. Returns ErrSliceTooShort when slots holds fewer than two entries.
func NewFixed(offset uint, slots []delegate.Delegate) (Fixed, error) {
	if len(slots) < 2 {
		return Fixed{}, ErrSliceTooShort
	}
	return Fixed{offset: offset, slots: slots}, nil
}

// Size returns the number of dispatchable identifiers.
func (f Fixed) Size() uint {
	return uint(len(f.slots) - 1)
}

// Offset returns the lowest dispatchable identifier.
func (f Fixed) Offset() uint {
	return f.offset
}

// Call dispatches a runtime identifier. In-range identifiers invoke their
// slot; everything else invokes the out-of-range catcher unconditionally,
// however far out of range id is. The catcher must guard its own validity
// if the caller wants silent handling.
func (f Fixed) Call(id uint) {
	size := uint(len(f.slots) - 1)
	if id >= f.offset && id < f.offset+size {
		f.slots[id-f.offset].Invoke(id)
		return
	}
	f.slots[size].Invoke(id)
}

// MustCall dispatches an identifier with no range branch. It is meant for
// identifiers known at compile time and proven in range with an Index
// assertion; passing an out-of-range id is a programmer error.
func (f Fixed) MustCall(id uint) {
	f.slots[id-f.offset].Invoke(id)
}
