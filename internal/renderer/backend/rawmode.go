package backend

import (
	"fmt"
	"sync"

	"golang.org/x/term"
)

// RawMode is a scoped guard over a terminal in raw mode. Restore puts the
// terminal back the way it was and is safe to call more than once.
type RawMode struct {
	fd    int
	state *term.State
	once  sync.Once
	err   error
}

// EnterRawMode switches fd to raw mode.
func EnterRawMode(fd int) (*RawMode, error) {
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("raw mode: fd %d is not a terminal", fd)
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	return &RawMode{fd: fd, state: state}, nil
}

// Restore leaves raw mode. Only the first call has an effect.
func (r *RawMode) Restore() error {
	if r == nil {
		return nil
	}
	r.once.Do(func() {
		if err := term.Restore(r.fd, r.state); err != nil {
			r.err = fmt.Errorf("restore terminal: %w", err)
		}
	})
	return r.err
}
