package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dshills/moca/internal/config"
	"github.com/dshills/moca/internal/dispatcher"
	"github.com/dshills/moca/internal/renderer"
	"github.com/dshills/moca/internal/renderer/backend"
)

// BackendFactory creates the terminal backend named by terminal.backend.
type BackendFactory func(name string) (backend.Backend, error)

// AppOptions configures Bootstrap.
type AppOptions struct {
	// ConfigPath is the config file ("" for the per-user default).
	ConfigPath string

	// File is the file to edit ("" for an unnamed buffer).
	File string

	// Debug enables strict dispatch and debug logging.
	Debug bool

	// Overrides are dotted-path settings from the command line.
	Overrides config.Overrides

	// Watch reloads the config file when it changes.
	Watch bool

	// Environ replaces os.Environ when reading MOCA_* variables.
	Environ func() []string

	// NewBackend replaces the default backend factory.
	NewBackend BackendFactory
}

// Application wires configuration, logging, the backend and a Session
// together and owns their lifetimes.
type Application struct {
	cfg     *config.Config
	logger  *Logger
	logOut  io.WriteCloser
	backend backend.Backend
	session *Session
	watcher *config.Watcher

	initialized bool
}

// Bootstrap loads configuration, opens the log and the file, and creates
// the backend. The terminal is not touched until Run.
func Bootstrap(opts AppOptions) (*Application, error) {
	overrides := config.Overrides{}
	for k, v := range opts.Overrides {
		overrides[k] = v
	}
	if opts.Debug {
		overrides.Set("editor.strict", true).Set("logging.level", "debug")
	}

	loadOpts := config.Options{
		Path:      opts.ConfigPath,
		Environ:   opts.Environ,
		Overrides: overrides,
	}
	cfg, err := config.Load(loadOpts)
	if err != nil {
		return nil, NewComponentError("config", "load", err)
	}

	a := &Application{cfg: cfg}
	if err := a.initLogger(); err != nil {
		return nil, err
	}
	a.logger.Info("starting; config %s, backend %s", displayPath(cfg.Path), cfg.Terminal.Backend)

	if err := a.initSession(opts.File); err != nil {
		_ = a.closeLog()
		return nil, err
	}

	factory := opts.NewBackend
	if factory == nil {
		factory = DefaultBackend
	}
	a.backend, err = factory(cfg.Terminal.Backend)
	if err != nil {
		_ = a.closeLog()
		return nil, NewComponentError("backend", "create", err)
	}

	if opts.Watch && cfg.Path != "" {
		loadOpts.Path = cfg.Path
		w, err := config.NewWatcher(loadOpts)
		if err != nil {
			// Live reload is optional; the editor runs without it.
			a.logger.Warn("config watcher disabled: %v", err)
		} else {
			a.watcher = w
		}
	}

	return a, nil
}

func (a *Application) initLogger() error {
	out, err := OpenLogFile(a.cfg.Logging.File)
	if err != nil {
		return NewComponentError("logging", "open", err)
	}
	a.logOut = out
	a.logger = NewSessionLogger(LoggerConfig{
		Level:  ParseLogLevel(a.cfg.Logging.Level),
		Output: out,
		Prefix: "moca",
	})
	return nil
}

func (a *Application) initSession(path string) error {
	doc, lines, err := OpenDocument(path)
	if err != nil {
		return err
	}

	bindings, err := a.cfg.Bindings()
	if err != nil {
		return NewComponentError("config", "bindings", err)
	}

	ropts := renderer.DefaultOptions()
	ropts.TabStop = a.cfg.Editor.TabStop
	ropts.Filler = a.cfg.FillerRune()
	ropts.Welcome = a.cfg.UI.Welcome
	ropts.StatusLine = a.cfg.UI.StatusLine

	opts := DefaultOptions()
	opts.Document = doc
	opts.Renderer = ropts
	opts.Dispatcher = dispatcher.DefaultConfig().WithStrict(a.cfg.Editor.Strict)
	if a.logger.Level() == LogLevelDebug {
		opts.Dispatcher = opts.Dispatcher.WithMetrics()
	}
	opts.Bindings = bindings
	opts.Logger = a.logger

	a.session = New(opts)
	a.session.LoadLines(lines)
	if doc.Path != "" && !doc.Exists {
		a.logger.Info("new file %s", doc.Path)
	}
	return nil
}

// DefaultBackend creates a tcell or ANSI backend on the process terminal.
func DefaultBackend(name string) (backend.Backend, error) {
	switch name {
	case config.BackendTcell:
		t, err := backend.NewTerminal()
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.BackendANSI:
		return backend.NewANSI(os.Stdin, os.Stdout), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// Run takes over the terminal and processes events until the session ends.
func (a *Application) Run(ctx context.Context) error {
	if err := a.backend.Init(); err != nil {
		return NewComponentError("backend", "init", err)
	}
	a.initialized = true

	loop := NewLoop(a.session, a.backend, a.logger)
	if a.watcher != nil {
		loop.WatchConfig(a.watcher)
	}

	err := loop.Run(ctx)
	a.logger.Info("event loop finished: %v", err)
	return err
}

// Shutdown restores the terminal and releases every resource. It is safe
// to call more than once and after a failed Run.
func (a *Application) Shutdown() error {
	errs := NewErrorList()
	if a.watcher != nil {
		errs.Add(a.watcher.Close())
		a.watcher = nil
	}
	if a.initialized {
		a.backend.Shutdown()
		a.initialized = false
	}
	if a.logOut != nil {
		a.logMetrics()
		a.logger.Info("shutdown")
	}
	errs.Add(a.closeLog())
	return errs.AsError()
}

func (a *Application) logMetrics() {
	m := a.session.Metrics()
	if m == nil {
		return
	}
	snap := m.Snapshot()
	a.logger.Debug("dispatched %d events (%d rejected) in %v", snap.TotalDispatches, snap.TotalRejected, snap.TotalDuration)
	for _, k := range snap.Keys {
		a.logger.Debug("  %s: %d (%d no-op)", k.Name, k.DispatchCount, k.NoOpCount)
	}
}

func (a *Application) closeLog() error {
	if a.logOut == nil {
		return nil
	}
	err := a.logOut.Close()
	a.logOut = nil
	return err
}

// Config returns the loaded configuration.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// Session returns the editing session.
func (a *Application) Session() *Session {
	return a.session
}

// Logger returns the session logger.
func (a *Application) Logger() *Logger {
	return a.logger
}

func displayPath(p string) string {
	if p == "" {
		return "(none)"
	}
	return p
}
