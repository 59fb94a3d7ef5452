// Package delegate provides a type-erased callback that binds either a free
// function or a receiver and method pair behind a single value type.
//
// Delegates are stored and overwritten by value, allocate nothing beyond the
// closure created at bind time, and have an explicit invalid state: the zero
// value. Validity is a first-class condition that callers check with IsValid
// or fold into the call with InvokeIf.
package delegate

// Func is the invocation signature shared by all delegates. The argument is
// the identifier the dispatch layer resolved the delegate for.
type Func func(id uint)

// Delegate is a type-erased callback. The zero value is invalid: IsValid
// reports false and Invoke panics.
type Delegate struct {
	fn Func
}

// New returns a delegate bound to a free function. A nil fn yields the
// invalid zero value.
func New(fn Func) Delegate {
	return Delegate{fn: fn}
}

// Bind returns a delegate bound to a receiver and method pair. The receiver
// is captured at bind time; for pointer receivers later mutations through
// the pointer are visible to the bound method.
//
//	d := delegate.Bind(dev, (*Device).Reset)
//
// A nil method yields the invalid zero value.
func Bind[R any](recv R, method func(R, uint)) Delegate {
	if method == nil {
		return Delegate{}
	}
	return Delegate{fn: func(id uint) { method(recv, id) }}
}

// IsValid reports whether the delegate is bound to a callable.
func (d Delegate) IsValid() bool {
	return d.fn != nil
}

// Invoke calls the bound function with id. Invoking an invalid delegate is a
// programmer error and panics; use InvokeIf when validity is not guaranteed.
func (d Delegate) Invoke(id uint) {
	if d.fn == nil {
		panic("delegate: invoke of invalid delegate")
	}
	d.fn(id)
}

// InvokeIf calls the bound function only when the delegate is valid.
// It reports whether the call happened.
func (d Delegate) InvokeIf(id uint) bool {
	if d.fn == nil {
		return false
	}
	d.fn(id)
	return true
}
