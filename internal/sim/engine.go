// Package sim drives a dispatch table from a vector map definition.
//
// An Engine resolves each vector's binding (builtin handler or Lua script)
// into a delegate, wraps it with metrics and panic recovery, and registers
// it on an owned table. Feeds of runtime identifiers are then replayed
// through the table.
package sim

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/vectable/delegate"
	"github.com/dshills/vectable/internal/feed"
	"github.com/dshills/vectable/internal/luavec"
	"github.com/dshills/vectable/internal/vectormap"
	"github.com/dshills/vectable/vtable"
)

// ErrUnknownHandler is returned when a vector names a builtin handler that
// was not provided to the engine.
var ErrUnknownHandler = errors.New("sim: unknown builtin handler")

// Config configures an Engine.
type Config struct {
	// Builtins maps handler names usable in vector maps to functions.
	Builtins map[string]delegate.Func

	// ScriptDir is the base directory for relative Lua script paths.
	ScriptDir string

	// Logger receives dispatch diagnostics. Nil means no logging.
	Logger *zap.Logger
}

// Engine owns a dispatch table built from a vector map.
type Engine struct {
	table   *vtable.Table
	metrics *Metrics
	lua     *luavec.Runtime
	log     *zap.Logger
}

// New builds an engine from a validated vector map.
func New(m *vectormap.Map, cfg Config) (*Engine, error) {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	table, err := vtable.New(m.Size, m.Offset)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		table:   table,
		metrics: NewMetrics(),
		log:     log,
	}
	e.lua = luavec.NewRuntime(luavec.WithErrorHandler(func(id uint, err error) {
		e.metrics.RecordError(id)
		e.log.Error("lua handler failed", zap.Uint("id", id), zap.Error(err))
	}))

	if err := e.build(m, cfg); err != nil {
		e.lua.Close()
		return nil, err
	}

	return e, nil
}

// build registers every vector binding and the fallback.
func (e *Engine) build(m *vectormap.Map, cfg Config) error {
	for _, v := range m.Vectors {
		d, name, err := e.resolve(v.Handler, v.Script, cfg)
		if err != nil {
			return fmt.Errorf("vector %d: %w", v.ID, err)
		}
		e.table.Register(v.ID, e.instrument(name, d))
	}

	var fallback delegate.Delegate
	name := "<drop>"
	if m.Fallback != nil {
		var err error
		fallback, name, err = e.resolve(m.Fallback.Handler, m.Fallback.Script, cfg)
		if err != nil {
			return fmt.Errorf("fallback: %w", err)
		}
	}

	// The engine always installs a counting fallback so unhandled ids show
	// up in the run report even when the map configures none.
	e.table.RegisterFallback(delegate.New(func(id uint) {
		e.metrics.RecordUnhandled(id)
		e.log.Debug("unhandled vector", zap.Uint("id", id), zap.String("fallback", name))
		fallback.InvokeIf(id)
	}))

	return nil
}

// resolve turns a binding into a delegate and a display name.
func (e *Engine) resolve(handler, script string, cfg Config) (delegate.Delegate, string, error) {
	if handler != "" {
		fn, ok := cfg.Builtins[handler]
		if !ok {
			return delegate.Delegate{}, "", fmt.Errorf("%w: %q", ErrUnknownHandler, handler)
		}
		return delegate.New(fn), handler, nil
	}

	path := script
	if cfg.ScriptDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(cfg.ScriptDir, path)
	}
	h, err := e.lua.LoadScript(path)
	if err != nil {
		return delegate.Delegate{}, "", err
	}
	return h.Delegate(), script, nil
}

// instrument wraps a delegate with timing, metrics, and panic recovery. A
// panicking handler never takes the engine down.
func (e *Engine) instrument(name string, d delegate.Delegate) delegate.Delegate {
	return delegate.New(func(got uint) {
		start := time.Now()
		defer func() {
			duration := time.Since(start)
			if r := recover(); r != nil {
				e.metrics.RecordPanic(got)
				e.log.Error("handler panic",
					zap.Uint("id", got),
					zap.String("handler", name),
					zap.Any("panic", r))
				return
			}
			e.metrics.Record(got, name, duration)
		}()
		d.Invoke(got)
	})
}

// Dispatch drives one identifier through the table.
func (e *Engine) Dispatch(id uint) {
	e.table.Call(id)
}

// Run replays an entire feed through the table.
func (e *Engine) Run(src feed.Source) error {
	for {
		id, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading feed: %w", err)
		}
		e.table.Call(id)
	}
}

// Table exposes the underlying dispatch table.
func (e *Engine) Table() *vtable.Table {
	return e.table
}

// Metrics returns the engine's metrics collector.
func (e *Engine) Metrics() *Metrics {
	return e.metrics
}

// Close releases the engine's Lua runtime. The engine must not dispatch
// afterwards.
func (e *Engine) Close() {
	e.lua.Close()
}
