// Package monitor renders a live terminal view of dispatch activity.
//
// The monitor owns the terminal for its lifetime: it initializes a tcell
// screen, redraws per-vector counters on an interval, and returns when the
// user quits (q, Escape, or Ctrl-C).
package monitor

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vectable/internal/sim"
)

// DefaultInterval is the redraw interval.
const DefaultInterval = 250 * time.Millisecond

// Monitor displays dispatch metrics on a terminal screen.
type Monitor struct {
	screen   tcell.Screen
	metrics  *sim.Metrics
	interval time.Duration
}

// Option configures a Monitor.
type Option func(*Monitor)

// WithScreen substitutes the terminal screen, e.g. a tcell simulation
// screen in tests.
func WithScreen(s tcell.Screen) Option {
	return func(m *Monitor) {
		m.screen = s
	}
}

// WithInterval sets the redraw interval.
func WithInterval(d time.Duration) Option {
	return func(m *Monitor) {
		if d > 0 {
			m.interval = d
		}
	}
}

// New creates a monitor over the given metrics collector.
func New(metrics *sim.Metrics, opts ...Option) (*Monitor, error) {
	m := &Monitor{
		metrics:  metrics,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, err
		}
		m.screen = screen
	}

	return m, nil
}

// Run takes over the terminal until the user quits. It redraws on the
// configured interval and restores the terminal on every exit path.
func (m *Monitor) Run() error {
	if err := m.screen.Init(); err != nil {
		return err
	}
	defer m.screen.Fini()

	events := make(chan tcell.Event, 8)
	quit := make(chan struct{})
	go m.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.draw()

	for {
		select {
		case <-ticker.C:
			m.draw()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch tev := ev.(type) {
			case *tcell.EventKey:
				if tev.Key() == tcell.KeyEscape || tev.Key() == tcell.KeyCtrlC || tev.Rune() == 'q' {
					close(quit)
					return nil
				}
			case *tcell.EventResize:
				m.screen.Sync()
			}
		}
	}
}

// draw repaints the whole view.
func (m *Monitor) draw() {
	m.screen.Clear()
	_, height := m.screen.Size()

	bold := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Dim(true)

	m.puts(0, 0, bold, "vectable monitor (q quits)")
	m.puts(0, 1, tcell.StyleDefault, fmt.Sprintf(
		"dispatched %d   unhandled %d   errors %d   panics %d",
		m.metrics.TotalDispatches(),
		m.metrics.TotalUnhandled(),
		m.metrics.TotalErrors(),
		m.metrics.TotalPanics(),
	))
	m.puts(0, 3, dim, "  ID  HANDLER             HITS  LAST")

	row := 4
	for _, vm := range m.metrics.Snapshot() {
		if row >= height {
			break
		}
		last := "-"
		if !vm.LastDispatch.IsZero() {
			last = vm.LastDispatch.Format("15:04:05")
		}
		m.puts(0, row, tcell.StyleDefault, fmt.Sprintf(
			"%4d  %-16s %8d  %s", vm.ID, vm.Handler, vm.Hits, last))
		row++
	}

	m.screen.Show()
}

// puts writes a string at (x, y), clipped to the screen width.
func (m *Monitor) puts(x, y int, style tcell.Style, s string) {
	width, _ := m.screen.Size()
	for i, r := range s {
		if x+i >= width {
			return
		}
		m.screen.SetContent(x+i, y, r, nil, style)
	}
}
