package loader

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a configuration file syntax.
type Format uint8

const (
	FormatTOML Format = iota
	FormatYAML
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	default:
		return "toml"
	}
}

// FormatForPath returns FormatYAML for .yaml and .yml files and FormatTOML
// for everything else.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// ParseError represents a configuration parsing error.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse decodes data in the given format. An empty document yields an
// empty map.
func Parse(source string, format Format, data []byte) (map[string]any, error) {
	config := make(map[string]any)
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &config); err != nil {
			pe := &ParseError{Path: source, Message: err.Error(), Err: err}
			var te *yaml.TypeError
			if errors.As(err, &te) && len(te.Errors) > 0 {
				pe.Message = te.Errors[0]
			}
			return nil, pe
		}
		if config == nil {
			config = make(map[string]any)
		}
		return normalizeYAML(config), nil
	default:
		if err := toml.Unmarshal(data, &config); err != nil {
			pe := &ParseError{Path: source, Message: err.Error(), Err: err}
			var de *toml.DecodeError
			if errors.As(err, &de) {
				pe.Line, pe.Column = de.Position()
			}
			return nil, pe
		}
		return config, nil
	}
}

// normalizeYAML converts any map[any]any produced for non-string keys into
// map[string]any so YAML and TOML sources merge alike. Null values are
// dropped, leaving the setting to lower layers.
func normalizeYAML(m map[string]any) map[string]any {
	for k, v := range m {
		if v == nil {
			delete(m, k)
			continue
		}
		m[k] = normalizeValue(v)
	}
	return m
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return normalizeYAML(t)
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = normalizeValue(val)
		}
		return out
	case []any:
		for i := range t {
			t[i] = normalizeValue(t[i])
		}
		return t
	default:
		return v
	}
}
