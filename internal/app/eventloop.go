package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/dshills/moca/internal/config"
	"github.com/dshills/moca/internal/renderer/backend"
	"github.com/dshills/moca/internal/renderer/statusline"
)

// Loop feeds backend events and config reloads into a Session, one at a
// time, and draws after each.
type Loop struct {
	session *Session
	backend backend.Backend
	logger  *Logger

	configs    <-chan *config.Config
	configErrs <-chan error
}

// NewLoop creates an event loop. The backend must already be initialized.
func NewLoop(s *Session, b backend.Backend, logger *Logger) *Loop {
	if logger == nil {
		logger = NullLogger
	}
	return &Loop{
		session: s,
		backend: b,
		logger:  logger.WithComponent("loop"),
	}
}

// WatchConfig makes the loop apply configurations from w between events.
func (l *Loop) WatchConfig(w *config.Watcher) {
	l.configs = w.Updates()
	l.configErrs = w.Errors()
}

// Run processes events until quit, context cancellation or a fatal error.
// It returns ErrQuit on a normal quit, ctx.Err() on cancellation and nil
// when the input stream ends. A panic inside the loop is returned as a
// *RecoveredPanicError so the caller can still restore the terminal.
func (l *Loop) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
			l.logger.Error("event loop panic: %v", r)
		}
	}()

	width, height := l.backend.Size()
	l.session.OnResize(height, width)
	if err := l.draw(); err != nil {
		return err
	}

	events := l.backend.Events()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("event loop cancelled: %v", ctx.Err())
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := l.handleBackendEvent(ev); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}

		case cfg, ok := <-l.configs:
			if !ok {
				l.configs = nil
				continue
			}
			l.applyConfig(cfg)

		case err, ok := <-l.configErrs:
			if !ok {
				l.configErrs = nil
				continue
			}
			l.logger.Warn("config reload: %v", err)
			l.session.SetMessage(fmt.Sprintf("config not reloaded: %v", err), statusline.MessageWarning)
		}

		if err := l.draw(); err != nil {
			return err
		}
	}
}

// handleBackendEvent applies a single backend event to the session.
func (l *Loop) handleBackendEvent(ev backend.Event) error {
	switch ev.Type {
	case backend.EventKey:
		return l.session.ApplyKeyEvent(ev.Key)
	case backend.EventResize:
		l.logger.Debug("resize %dx%d", ev.Width, ev.Height)
		l.session.OnResize(ev.Height, ev.Width)
		return nil
	case backend.EventError:
		if errors.Is(ev.Err, io.EOF) {
			l.logger.Info("input closed")
			return ev.Err
		}
		return NewComponentError("backend", "read input", ev.Err)
	default:
		return nil
	}
}

func (l *Loop) applyConfig(cfg *config.Config) {
	if err := l.session.ApplyConfig(cfg); err != nil {
		l.logger.Warn("apply config: %v", err)
		l.session.SetMessage(err.Error(), statusline.MessageWarning)
		return
	}
	l.logger.Info("config reloaded from %s", cfg.Path)
	l.session.SetMessage("config reloaded", statusline.MessageInfo)
}

func (l *Loop) draw() error {
	if err := l.backend.Apply(l.session.RenderFrame()); err != nil {
		return NewComponentError("backend", "draw", err)
	}
	return nil
}
