// Package luavec binds Lua functions as dispatch delegates.
//
// A script is a chunk that returns a handler function taking the dispatched
// identifier:
//
//	return function(id)
//	  count = (count or 0) + 1
//	end
//
// IMPORTANT: gopher-lua's LState is not goroutine-safe. A Runtime and every
// delegate derived from it must be used from a single goroutine, which fits
// the dispatch tables' synchronous single-context model.
package luavec

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/vectable/delegate"
)

// ErrorHandler is called when a Lua handler raises an error during dispatch.
// The delegate signature has no error return, so errors surface here.
type ErrorHandler func(id uint, err error)

// defaultErrorHandler drops Lua errors silently, matching the tables'
// silent-drop fallback policy.
func defaultErrorHandler(id uint, err error) {}

// Runtime owns one Lua state and the handlers loaded into it.
type Runtime struct {
	L       *lua.LState
	onError ErrorHandler
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithErrorHandler sets the callback receiving Lua handler errors.
func WithErrorHandler(h ErrorHandler) Option {
	return func(r *Runtime) {
		if h != nil {
			r.onError = h
		}
	}
}

// NewRuntime creates a Lua runtime with the standard libraries opened.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		L:       lua.NewState(),
		onError: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close releases the Lua state. Delegates derived from this runtime must
// not be invoked afterwards.
func (r *Runtime) Close() {
	r.L.Close()
}

// Handler is a Lua handler function ready to be bound as a delegate.
type Handler struct {
	r  *Runtime
	fn *lua.LFunction
}

// LoadScript compiles and runs the chunk at path and returns the handler
// function the chunk returned.
func (r *Runtime) LoadScript(path string) (Handler, error) {
	fn, err := r.L.LoadFile(path)
	if err != nil {
		return Handler{}, fmt.Errorf("loading %s: %w", path, err)
	}
	return r.run(path, fn)
}

// LoadChunk compiles and runs an in-memory chunk. The name appears in Lua
// error messages.
func (r *Runtime) LoadChunk(name, src string) (Handler, error) {
	fn, err := r.L.LoadString(src)
	if err != nil {
		return Handler{}, fmt.Errorf("loading %s: %w", name, err)
	}
	return r.run(name, fn)
}

// run executes a compiled chunk and captures its returned handler function.
func (r *Runtime) run(name string, chunk *lua.LFunction) (Handler, error) {
	r.L.Push(chunk)
	if err := r.L.PCall(0, 1, nil); err != nil {
		return Handler{}, fmt.Errorf("running %s: %w", name, err)
	}

	ret := r.L.Get(-1)
	r.L.Pop(1)

	fn, ok := ret.(*lua.LFunction)
	if !ok {
		return Handler{}, fmt.Errorf("%s: chunk returned %s, want a function", name, ret.Type())
	}

	return Handler{r: r, fn: fn}, nil
}

// Delegate returns a delegate that invokes the Lua handler with the
// dispatched identifier. Lua errors are routed to the runtime's error
// handler.
func (h Handler) Delegate() delegate.Delegate {
	if h.fn == nil {
		return delegate.Delegate{}
	}
	return delegate.New(func(id uint) {
		h.r.L.Push(h.fn)
		h.r.L.Push(lua.LNumber(id))
		if err := h.r.L.PCall(1, 0, nil); err != nil {
			h.r.onError(id, err)
		}
	})
}
