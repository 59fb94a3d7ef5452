package vtable

// Index is the target type for compile-time range assertions on constant
// identifiers. For a table covering [Offset, Offset+Size), declaring
//
//	const _ vtable.Index = (ID - Offset) | (Offset + Size - 1 - ID)
//
// refuses to build whenever the constant ID lies outside the range: one of
// the two terms is then a negative untyped constant, the bitwise or of a
// negative constant is negative, and a negative constant cannot be
// converted to an unsigned type. In-range identifiers compile to nothing.
//
// Place one assertion next to each MustCall or MustRegister site whose
// identifier is a named constant, and the range violation becomes a build
// failure instead of a runtime fault.
type Index uint
