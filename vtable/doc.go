// Package vtable provides fixed-size, offset-based dispatch tables that map
// small integer identifiers (interrupt vector numbers, message ids) to
// delegates.
//
// A table covers the identifier range [Offset, Offset+Size). Two variants
// share the same call contract:
//
//   - Fixed: a read-only view over a caller-owned delegate slice, for tables
//     that are fully built before dispatch begins. The slice carries one
//     extra slot that catches every out-of-range identifier.
//
//   - Table: owns its slots and is mutable at runtime. Unregistered slots
//     and out-of-range identifiers both route to a single reconfigurable
//     fallback delegate, which may be left invalid to drop them silently.
//
// # Runtime and constant identifiers
//
// Call takes any runtime identifier and routes out-of-range values to the
// fallback path. MustCall and MustRegister skip the range branch entirely
// and are meant for identifiers known at compile time; pair them with a
// constant range assertion so a bad identifier refuses to build instead of
// faulting at runtime:
//
//	const irqTimer = 12
//	const _ vtable.Index = (irqTimer - offset) | (offset + size - 1 - irqTimer)
//
// # Concurrency
//
// Tables perform no internal locking. Dispatch is synchronous on the calling
// goroutine, and registering while another goroutine dispatches is a data
// race the caller must serialize (typically by registering everything before
// concurrent dispatch begins).
package vtable
