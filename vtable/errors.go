package vtable

import "errors"

// Sentinel errors for the vtable package.
var (
	// ErrZeroSize is returned by New when the requested size is zero.
	ErrZeroSize = errors.New("vtable: table size must be at least 1")

	// ErrSliceTooShort is returned by NewFixed when the supplied slice does
	// not hold at least one dispatch slot plus the out-of-range catcher.
	ErrSliceTooShort = errors.New("vtable: fixed table needs at least two slots (one plus the out-of-range catcher)")
)
