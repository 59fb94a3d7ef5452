// Package vectormap loads dispatch-table definitions from TOML files.
//
// A vector map describes one table: its geometry (size and offset) and the
// handler bound to each vector id, plus an optional fallback for unhandled
// ids. Handlers are named builtins or Lua script paths; resolution of the
// names happens in the layer that builds the table.
package vectormap

import "fmt"

// Map describes one dispatch table.
type Map struct {
	// Size is the number of vector slots. Must be at least 1.
	Size uint `toml:"size"`

	// Offset is the lowest vector id; the table covers [Offset, Offset+Size).
	Offset uint `toml:"offset"`

	// Vectors bind individual ids to handlers. Later entries for the same id
	// overwrite earlier ones, matching the table's last-write-wins contract.
	Vectors []Vector `toml:"vector"`

	// Fallback, when present, handles unregistered and out-of-range ids.
	Fallback *Fallback `toml:"fallback"`
}

// Vector binds one identifier to a handler.
type Vector struct {
	ID      uint   `toml:"id"`
	Handler string `toml:"handler"`
	Script  string `toml:"script"`
}

// Fallback names the handler for unhandled identifiers.
type Fallback struct {
	Handler string `toml:"handler"`
	Script  string `toml:"script"`
}

// Validate checks the map's geometry and bindings.
func (m *Map) Validate() error {
	if m.Size == 0 {
		return ErrZeroSize
	}

	for i, v := range m.Vectors {
		if v.ID < m.Offset || v.ID >= m.Offset+m.Size {
			return fmt.Errorf("%w: vector %d has id %d outside [%d, %d)",
				ErrVectorOutOfRange, i, v.ID, m.Offset, m.Offset+m.Size)
		}
		if err := validateBinding(v.Handler, v.Script); err != nil {
			return fmt.Errorf("vector %d (id %d): %w", i, v.ID, err)
		}
	}

	if m.Fallback != nil {
		if err := validateBinding(m.Fallback.Handler, m.Fallback.Script); err != nil {
			return fmt.Errorf("fallback: %w", err)
		}
	}

	return nil
}

func validateBinding(handler, script string) error {
	switch {
	case handler == "" && script == "":
		return ErrEmptyBinding
	case handler != "" && script != "":
		return ErrAmbiguousBinding
	}
	return nil
}
