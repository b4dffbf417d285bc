// Package config provides layered configuration for Moca.
//
// Settings are resolved from four layers, each overriding the previous one:
// built-in defaults, a TOML or YAML config file, MOCA_* environment
// variables and command-line overrides. The merged result is decoded into a
// Config and validated before use. A Watcher reloads the file on change.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/moca/internal/config/loader"
	"github.com/dshills/moca/internal/input/key"
	"github.com/dshills/moca/internal/renderer/core"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "MOCA_"

// Terminal backend names.
const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

// ErrInvalid is returned (wrapped) when a setting fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Config is the resolved editor configuration.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	UI       UIConfig       `toml:"ui"`
	Terminal TerminalConfig `toml:"terminal"`
	Keys     KeysConfig     `toml:"keys"`
	Logging  LoggingConfig  `toml:"logging"`

	// Path is the config file the values were read from ("" if none).
	Path string `toml:"-"`
}

// EditorConfig holds editing behaviour settings.
type EditorConfig struct {
	TabStop int  `toml:"tabStop"`
	Strict  bool `toml:"strict"`
}

// UIConfig holds display settings.
type UIConfig struct {
	Filler     string `toml:"filler"`
	Welcome    string `toml:"welcome"`
	StatusLine bool   `toml:"statusLine"`
}

// TerminalConfig selects the terminal backend.
type TerminalConfig struct {
	Backend string `toml:"backend"`
}

// KeysConfig holds the chords bound to quit and save.
type KeysConfig struct {
	Quit string `toml:"quit"`
	Save string `toml:"save"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Defaults returns the built-in settings as a nested map, the bottom layer
// of every Load.
func Defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"tabStop": 8,
			"strict":  false,
		},
		"ui": map[string]any{
			"filler":     "~",
			"welcome":    "Moca Editor",
			"statusLine": true,
		},
		"terminal": map[string]any{
			"backend": BackendTcell,
		},
		"keys": map[string]any{
			"quit": key.DefaultQuit,
			"save": key.DefaultSave,
		},
		"logging": map[string]any{
			"level": "info",
			"file":  "",
		},
	}
}

// Default returns the decoded built-in configuration.
func Default() *Config {
	cfg, err := decode(Defaults())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Options controls where Load reads settings from.
type Options struct {
	// Path is the config file. Empty means DefaultPath(); a missing file is
	// not an error.
	Path string

	// EnvPrefix is the environment variable prefix (default EnvPrefix).
	// Set SkipEnv to ignore the environment entirely.
	EnvPrefix string
	SkipEnv   bool

	// Environ replaces os.Environ, mainly for tests.
	Environ func() []string

	// Overrides are dotted-path settings applied last, e.g. from flags.
	Overrides Overrides

	// FS replaces the OS file system.
	FS loader.FileSystem
}

// Overrides collects dotted-path settings for Options.Overrides.
type Overrides map[string]any

// Set records value at a dotted path such as "editor.tabStop".
func (o Overrides) Set(path string, value any) Overrides {
	loader.SetByPath(o, path, value)
	return o
}

// Load resolves, decodes and validates configuration.
func Load(opts Options) (*Config, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath()
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = loader.DefaultFS()
	}

	loaders := []loader.Loader{
		loader.MapLoader(Defaults()),
		loader.NewFileLoaderWithFS(fsys, path),
	}

	if !opts.SkipEnv {
		prefix := opts.EnvPrefix
		if prefix == "" {
			prefix = EnvPrefix
		}
		environ := opts.Environ
		if environ == nil {
			environ = os.Environ
		}
		loaders = append(loaders, loader.NewEnvLoaderWithEnviron(prefix, environ))
	}

	if len(opts.Overrides) > 0 {
		loaders = append(loaders, loader.MapLoader(opts.Overrides))
	}

	merged, err := loader.LoadAll(loaders...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg, err := decode(merged)
	if err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode converts a merged settings map into a Config by re-encoding it as
// TOML, which gives typed fields the same conversions as a parsed file.
func decode(settings map[string]any) (*Config, error) {
	data, err := toml.Marshal(settings)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every setting, returning an error wrapping ErrInvalid for
// the first problem found.
func (c *Config) Validate() error {
	if c.Editor.TabStop < 1 {
		return fmt.Errorf("%w: editor.tabStop must be at least 1, got %d", ErrInvalid, c.Editor.TabStop)
	}

	if c.UI.Filler != "" {
		r, size := utf8.DecodeRuneInString(c.UI.Filler)
		if size != len(c.UI.Filler) || core.RuneWidth(r) != 1 {
			return fmt.Errorf("%w: ui.filler must be a single narrow character, got %q", ErrInvalid, c.UI.Filler)
		}
	}

	switch c.Terminal.Backend {
	case BackendTcell, BackendANSI:
	default:
		return fmt.Errorf("%w: terminal.backend must be %q or %q, got %q",
			ErrInvalid, BackendTcell, BackendANSI, c.Terminal.Backend)
	}

	if _, err := c.Bindings(); err != nil {
		return fmt.Errorf("%w: keys: %v", ErrInvalid, err)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: logging.level must be debug, info, warn or error, got %q", ErrInvalid, c.Logging.Level)
	}

	return nil
}

// Bindings parses the configured quit and save chords.
func (c *Config) Bindings() (key.Bindings, error) {
	return key.NewBindings(c.Keys.Quit, c.Keys.Save)
}

// FillerRune returns the filler glyph, or 0 if disabled.
func (c *Config) FillerRune() rune {
	if c.UI.Filler == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(c.UI.Filler)
	return r
}

// DefaultPath returns the per-user config file location,
// $XDG_CONFIG_HOME/moca/config.toml or the platform equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "moca", "config.toml")
}
