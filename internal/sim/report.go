package sim

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// Report renders a JSON run summary: global totals followed by per-vector
// counters sorted by id. Durations are reported in microseconds.
func Report(m *Metrics, skipped int) ([]byte, error) {
	out := []byte(`{}`)

	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.SetBytes(out, path, value)
	}

	set("totals.dispatched", m.TotalDispatches())
	set("totals.unhandled", m.TotalUnhandled())
	set("totals.errors", m.TotalErrors())
	set("totals.panics", m.TotalPanics())
	set("totals.duration_us", m.TotalDuration().Microseconds())
	set("totals.skipped_records", skipped)

	for i, vm := range m.Snapshot() {
		base := fmt.Sprintf("vectors.%d", i)
		set(base+".id", vm.ID)
		set(base+".handler", vm.Handler)
		set(base+".hits", vm.Hits)
		set(base+".duration_us", vm.TotalDuration.Microseconds())
		set(base+".min_us", vm.MinDuration.Microseconds())
		set(base+".max_us", vm.MaxDuration.Microseconds())
	}

	if err != nil {
		return nil, fmt.Errorf("building report: %w", err)
	}
	return out, nil
}
