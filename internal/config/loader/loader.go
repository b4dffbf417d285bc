// Package loader reads configuration sources into nested maps.
//
// Files are parsed as TOML or YAML depending on their extension, and
// environment variables with a common prefix map onto dotted paths. The
// resulting maps are combined with DeepMerge, later sources winning.
package loader

import (
	"errors"
	"io"
	"io/fs"
	"os"
)

// Loader is the interface for configuration sources.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
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

// FileLoader loads a single configuration file.
type FileLoader struct {
	fs     FileSystem
	path   string
	format Format
}

// NewFileLoader creates a loader for path, choosing the format from the
// file extension.
func NewFileLoader(path string) *FileLoader {
	return NewFileLoaderWithFS(DefaultFS(), path)
}

// NewFileLoaderWithFS creates a file loader backed by a custom file system.
func NewFileLoaderWithFS(fsys FileSystem, path string) *FileLoader {
	return &FileLoader{
		fs:     fsys,
		path:   path,
		format: FormatForPath(path),
	}
}

// Path returns the file the loader reads.
func (l *FileLoader) Path() string {
	return l.path
}

// Format returns the format the file is parsed as.
func (l *FileLoader) Format() Format {
	return l.format
}

// Load reads and parses the file. A missing file yields nil, nil.
func (l *FileLoader) Load() (map[string]any, error) {
	if l.path == "" {
		return nil, nil
	}
	data, err := l.fs.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return Parse(l.path, l.format, data)
}

// LoadFromReader parses configuration from r in the loader's format.
func (l *FileLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse("<reader>", l.format, data)
}

// MapLoader returns a fixed map. It carries defaults and command-line
// overrides through the same merge path as files.
type MapLoader map[string]any

// Load returns a deep copy of the map.
func (m MapLoader) Load() (map[string]any, error) {
	return Clone(m), nil
}

// LoadAll runs each loader in order and merges the results.
func LoadAll(loaders ...Loader) (map[string]any, error) {
	merged := make(map[string]any)
	for _, l := range loaders {
		data, err := l.Load()
		if err != nil {
			return nil, err
		}
		merged = DeepMerge(merged, data)
	}
	return merged, nil
}
