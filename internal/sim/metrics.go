package sim

import (
	"sort"
	"sync"
	"time"
)

// Metrics collects dispatch statistics for an engine run.
type Metrics struct {
	mu sync.RWMutex

	// Per-vector metrics
	vectors map[uint]*VectorMetrics

	// Global counters
	totalDispatches uint64
	totalUnhandled  uint64
	totalErrors     uint64
	totalPanics     uint64

	// Timing
	totalDuration time.Duration
}

// VectorMetrics holds metrics for a single vector id.
type VectorMetrics struct {
	ID            uint
	Handler       string
	Hits          uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastDispatch  time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		vectors: make(map[uint]*VectorMetrics),
	}
}

// Record records a handled dispatch.
func (m *Metrics) Record(id uint, handler string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalDuration += duration

	vm := m.vectors[id]
	if vm == nil {
		vm = &VectorMetrics{
			ID:          id,
			Handler:     handler,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.vectors[id] = vm
	}

	vm.Hits++
	vm.TotalDuration += duration
	vm.LastDispatch = time.Now()

	if duration < vm.MinDuration {
		vm.MinDuration = duration
	}
	if duration > vm.MaxDuration {
		vm.MaxDuration = duration
	}
}

// RecordUnhandled records an identifier that routed to the fallback path.
func (m *Metrics) RecordUnhandled(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalDispatches++
	m.totalUnhandled++
}

// RecordError records a handler error (e.g. a failing Lua handler).
func (m *Metrics) RecordError(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalErrors++
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(id uint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++
}

// TotalDispatches returns the total number of dispatches, handled or not.
func (m *Metrics) TotalDispatches() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDispatches
}

// TotalUnhandled returns the number of dispatches routed to the fallback.
func (m *Metrics) TotalUnhandled() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalUnhandled
}

// TotalErrors returns the number of handler errors.
func (m *Metrics) TotalErrors() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalErrors
}

// TotalPanics returns the number of recovered handler panics.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// TotalDuration returns the cumulative time spent in handlers.
func (m *Metrics) TotalDuration() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalDuration
}

// Vector returns a copy of the metrics for one vector id.
func (m *Metrics) Vector(id uint) (VectorMetrics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	vm, ok := m.vectors[id]
	if !ok {
		return VectorMetrics{}, false
	}
	return *vm, true
}

// Snapshot returns per-vector metrics sorted by id.
func (m *Metrics) Snapshot() []VectorMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]VectorMetrics, 0, len(m.vectors))
	for _, vm := range m.vectors {
		out = append(out, *vm)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
