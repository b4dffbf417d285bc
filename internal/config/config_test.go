package config

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/dshills/moca/internal/config/loader"
	"github.com/dshills/moca/internal/input/key"
)

type mapFS map[string]string

func (m mapFS) ReadFile(path string) ([]byte, error) {
	s, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(s), nil
}

func noEnv() []string { return nil }

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Editor.TabStop != 8 {
		t.Errorf("TabStop = %d, want 8", cfg.Editor.TabStop)
	}
	if cfg.Editor.Strict {
		t.Error("Strict = true, want false")
	}
	if cfg.UI.Filler != "~" || cfg.FillerRune() != '~' {
		t.Errorf("Filler = %q, want ~", cfg.UI.Filler)
	}
	if cfg.UI.Welcome != "Moca Editor" {
		t.Errorf("Welcome = %q", cfg.UI.Welcome)
	}
	if !cfg.UI.StatusLine {
		t.Error("StatusLine = false, want true")
	}
	if cfg.Terminal.Backend != BackendTcell {
		t.Errorf("Backend = %q, want tcell", cfg.Terminal.Backend)
	}
	if cfg.Keys.Quit != key.DefaultQuit || cfg.Keys.Save != key.DefaultSave {
		t.Errorf("Keys = %+v", cfg.Keys)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.File != "" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(Options{Path: "/nowhere/moca.toml", FS: mapFS{}, Environ: noEnv})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *cfg != *withPath(Default(), "/nowhere/moca.toml") {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
}

func withPath(c *Config, path string) *Config {
	c.Path = path
	return c
}

func TestLoadLayers(t *testing.T) {
	fsys := mapFS{
		"moca.toml": `
[editor]
tabStop = 4
strict = true

[ui]
welcome = "from file"
filler = "."

[terminal]
backend = "ansi"
`,
	}
	environ := func() []string {
		return []string{
			"MOCA_UI_WELCOME=from env",
			"MOCA_LOGGING_LEVEL=debug",
			"OTHER_UI_WELCOME=ignored",
		}
	}
	overrides := Overrides{}.Set("logging.level", "warn").Set("logging.file", "/tmp/moca.log")

	cfg, err := Load(Options{Path: "moca.toml", FS: fsys, Environ: environ, Overrides: overrides})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"file tabStop", cfg.Editor.TabStop, 4},
		{"file strict", cfg.Editor.Strict, true},
		{"file filler", cfg.UI.Filler, "."},
		{"file backend", cfg.Terminal.Backend, BackendANSI},
		{"env beats file", cfg.UI.Welcome, "from env"},
		{"override beats env", cfg.Logging.Level, "warn"},
		{"override only", cfg.Logging.File, "/tmp/moca.log"},
		{"default kept", cfg.UI.StatusLine, true},
		{"path", cfg.Path, "moca.toml"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %#v, want %#v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadYAML(t *testing.T) {
	fsys := mapFS{"moca.yml": "editor:\n  tabStop: 2\nui:\n  statusLine: false\n  filler:\nkeys:\n  quit: Ctrl+X\n"}

	cfg, err := Load(Options{Path: "moca.yml", FS: fsys, SkipEnv: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabStop != 2 {
		t.Errorf("TabStop = %d, want 2", cfg.Editor.TabStop)
	}
	if cfg.UI.StatusLine {
		t.Error("StatusLine = true, want false")
	}
	if cfg.UI.Filler != "~" {
		t.Errorf("null filler should keep default, got %q", cfg.UI.Filler)
	}

	b, err := cfg.Bindings()
	if err != nil {
		t.Fatalf("Bindings: %v", err)
	}
	if !b.Quit.Equals(key.CtrlEvent('x')) {
		t.Errorf("Quit = %v, want Ctrl+X", b.Quit)
	}
}

func TestLoadEnvPrefix(t *testing.T) {
	environ := func() []string { return []string{"EDIT_EDITOR_TAB_STOP=3", "MOCA_EDITOR_TAB_STOP=5"} }

	cfg, err := Load(Options{Path: "x.toml", FS: mapFS{}, EnvPrefix: "EDIT_", Environ: environ})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabStop != 3 {
		t.Errorf("TabStop = %d, want 3", cfg.Editor.TabStop)
	}

	cfg, err = Load(Options{Path: "x.toml", FS: mapFS{}, SkipEnv: true, Environ: environ})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabStop != 8 {
		t.Errorf("SkipEnv TabStop = %d, want 8", cfg.Editor.TabStop)
	}
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(Options{Path: "bad.toml", FS: mapFS{"bad.toml": "[editor\n"}, SkipEnv: true})
	var pe *loader.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Load() error = %v, want *loader.ParseError", err)
	}
	if pe.Path != "bad.toml" {
		t.Errorf("Path = %q", pe.Path)
	}
}

func TestLoadTypeMismatch(t *testing.T) {
	_, err := Load(Options{Path: "t.toml", FS: mapFS{"t.toml": "[editor]\ntabStop = \"wide\"\n"}, SkipEnv: true})
	if err == nil {
		t.Fatal("Load() succeeded with a string tabStop")
	}
	if !strings.Contains(err.Error(), "decode config") {
		t.Errorf("error = %v, want decode context", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero tab stop", func(c *Config) { c.Editor.TabStop = 0 }, "editor.tabStop"},
		{"long filler", func(c *Config) { c.UI.Filler = "ab" }, "ui.filler"},
		{"wide filler", func(c *Config) { c.UI.Filler = "世" }, "ui.filler"},
		{"unknown backend", func(c *Config) { c.Terminal.Backend = "gui" }, "terminal.backend"},
		{"bad key", func(c *Config) { c.Keys.Quit = "Hyper+Q" }, "keys"},
		{"conflicting keys", func(c *Config) { c.Keys.Save = c.Keys.Quit }, "keys"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalid) {
				t.Fatalf("Validate() = %v, want ErrInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("Validate() = %v, want mention of %s", err, tt.field)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	cfg := Default()
	cfg.UI.Filler = ""
	cfg.Logging.Level = "WARNING"
	cfg.Keys.Quit = "<C-x>"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if cfg.FillerRune() != 0 {
		t.Errorf("FillerRune() = %q, want 0", cfg.FillerRune())
	}
}

func TestLoadInvalidFromEnv(t *testing.T) {
	environ := func() []string { return []string{"MOCA_TERMINAL_BACKEND=gui"} }
	_, err := Load(Options{Path: "x.toml", FS: mapFS{}, Environ: environ})
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() = %v, want ErrInvalid", err)
	}
}
