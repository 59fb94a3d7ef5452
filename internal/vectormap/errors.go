package vectormap

import (
	"errors"
	"fmt"
)

// Sentinel errors for vector map validation.
var (
	// ErrZeroSize is returned when a map declares no vector slots.
	ErrZeroSize = errors.New("vectormap: size must be at least 1")

	// ErrVectorOutOfRange is returned when a vector id lies outside the
	// map's declared range.
	ErrVectorOutOfRange = errors.New("vectormap: vector id out of range")

	// ErrEmptyBinding is returned when a vector names neither a handler nor
	// a script.
	ErrEmptyBinding = errors.New("vectormap: binding needs a handler or a script")

	// ErrAmbiguousBinding is returned when a vector names both a handler and
	// a script.
	ErrAmbiguousBinding = errors.New("vectormap: binding must name a handler or a script, not both")
)

// ParseError wraps a TOML syntax error with the file it came from.
type ParseError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
