package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func waitUpdate(t *testing.T, w *Watcher) *Config {
	t.Helper()
	select {
	case cfg, ok := <-w.Updates():
		if !ok {
			t.Fatal("updates channel closed")
		}
		return cfg
	case err := <-w.Errors():
		t.Fatalf("unexpected reload error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for config reload")
	}
	return nil
}

func TestWatcherReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[editor]\ntabStop = 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(Options{Path: path, SkipEnv: true}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\ntabStop = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := waitUpdate(t, w)
	if cfg.Editor.TabStop != 2 {
		t.Errorf("TabStop = %d, want 2", cfg.Editor.TabStop)
	}
	if cfg.Path != w.Path() {
		t.Errorf("Path = %q, want %q", cfg.Path, w.Path())
	}
}

func TestWatcherRenameSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w, err := NewWatcher(Options{Path: path, SkipEnv: true}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	tmp := filepath.Join(dir, ".config.toml.swp")
	if err := os.WriteFile(tmp, []byte("[ui]\nwelcome = \"renamed\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	cfg := waitUpdate(t, w)
	if cfg.UI.Welcome != "renamed" {
		t.Errorf("Welcome = %q, want renamed", cfg.UI.Welcome)
	}
}

func TestWatcherInvalidReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w, err := NewWatcher(Options{Path: path, SkipEnv: true}, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("[editor]\ntabStop = 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-w.Errors():
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("error = %v, want ErrInvalid", err)
		}
	case cfg := <-w.Updates():
		t.Fatalf("invalid config delivered: %+v", cfg)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload error")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	w, err := NewWatcher(Options{Path: path, SkipEnv: true}, WithDebounce(10*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Updates():
		t.Fatalf("unrelated file triggered reload: %+v", cfg)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(Options{Path: filepath.Join(t.TempDir(), "absent", "config.toml")})
	if err == nil {
		t.Fatal("NewWatcher succeeded for a missing directory")
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := NewWatcher(Options{Path: filepath.Join(t.TempDir(), "config.toml"), SkipEnv: true})
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, ok := <-w.Updates(); ok {
		t.Error("updates channel still open after Close")
	}
}

func TestSendLatest(t *testing.T) {
	ch := make(chan int, 1)
	sendLatest(ch, 1)
	sendLatest(ch, 2)
	if got := <-ch; got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}
