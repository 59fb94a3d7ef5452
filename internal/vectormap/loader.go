package vectormap

import (
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// FileSystem is an abstraction for file reads, allowing tests to supply
// in-memory files.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Loader loads vector maps from TOML files.
type Loader struct {
	fs   FileSystem
	path string
}

// NewLoader creates a loader for the given path.
func NewLoader(path string) *Loader {
	return &Loader{fs: DefaultFS(), path: path}
}

// NewLoaderWithFS creates a loader with a custom file system.
func NewLoaderWithFS(fs FileSystem, path string) *Loader {
	return &Loader{fs: fs, path: path}
}

// Load reads and validates the map at the configured path.
// Returns nil, nil when the file does not exist.
func (l *Loader) Load() (*Map, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads and validates the map at a specific path.
// Returns nil, nil when the file does not exist.
func (l *Loader) LoadFrom(path string) (*Map, error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // File doesn't exist, not an error
		}
		return nil, fmt.Errorf("reading vector map %s: %w", path, err)
	}

	return l.parse(path, data)
}

// LoadFromReader reads and validates a map from an io.Reader.
func (l *Loader) LoadFromReader(r io.Reader) (*Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading vector map: %w", err)
	}

	return l.parse("<reader>", data)
}

// parse decodes TOML data and validates the result.
func (l *Loader) parse(source string, data []byte) (*Map, error) {
	var m Map
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, &ParseError{
			Path:    source,
			Message: err.Error(),
			Err:     err,
		}
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	return &m, nil
}
