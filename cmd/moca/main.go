// Package main is the entry point for the Moca editor.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/moca/internal/app"
	"github.com/dshills/moca/internal/config"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.Bootstrap(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "moca: %v\n", err)
		return 1
	}
	// Ensure cleanup on all exit paths; Shutdown is idempotent.
	defer application.Shutdown()

	runErr := application.Run(ctx)

	// The terminal must be restored before anything is printed.
	if err := application.Shutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "moca: shutdown: %v\n", err)
	}

	switch {
	case runErr == nil, errors.Is(runErr, app.ErrQuit), errors.Is(runErr, context.Canceled):
		return 0
	default:
		fmt.Fprintf(os.Stderr, "moca: %v\n", runErr)
		return 1
	}
}

func parseFlags() (app.AppOptions, bool) {
	var opts app.AppOptions
	var (
		logLevel    string
		logFile     string
		backendName string
		showVersion bool
	)

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Debug, "debug", false, "Enable strict dispatch and debug logging")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload the configuration file when it changes")
	flag.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&logFile, "log-file", "", "Write logs to this file")
	flag.StringVar(&backendName, "backend", "", "Terminal backend (tcell, ansi)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Moca - a small terminal text editor\n\n")
		fmt.Fprintf(os.Stderr, "Usage: moca [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  Ctrl-S  save    Ctrl-Q  quit\n")
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  %sEDITOR_TAB_STOP=4 and similar override config keys\n", config.EnvPrefix)
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Moca %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "moca: only one file can be opened\n")
		flag.Usage()
		return opts, false
	}
	opts.File = flag.Arg(0)

	opts.Overrides = config.Overrides{}
	if logLevel != "" {
		opts.Overrides.Set("logging.level", logLevel)
	}
	if logFile != "" {
		opts.Overrides.Set("logging.file", logFile)
	}
	if backendName != "" {
		opts.Overrides.Set("terminal.backend", backendName)
	}

	return opts, true
}
