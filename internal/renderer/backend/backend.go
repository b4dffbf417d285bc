// Package backend executes draw instructions against a terminal and delivers
// terminal input as events.
//
// Three backends are provided: Terminal (tcell), ANSI (raw VT100 sequences
// over a raw-mode TTY) and Null (in memory, for tests).
package backend

import (
	"fmt"

	"github.com/dshills/moca/internal/input/key"
	"github.com/dshills/moca/internal/renderer/core"
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	EventError
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventKey:
		return "key"
	case EventResize:
		return "resize"
	case EventError:
		return "error"
	default:
		return "none"
	}
}

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key event fields
	Key key.Event

	// Resize event fields
	Width, Height int

	// Error event fields; the input source is gone after an error.
	Err error
}

// String returns a compact description of the event.
func (e Event) String() string {
	switch e.Type {
	case EventKey:
		return "key " + e.Key.String()
	case EventResize:
		return fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	case EventError:
		return fmt.Sprintf("error %v", e.Err)
	default:
		return "none"
	}
}

// Backend defines the interface for terminal backends.
type Backend interface {
	// Init prepares the terminal and starts event delivery.
	// Must be called before any other methods.
	Init() error

	// Shutdown restores terminal state. Safe to call more than once.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// Apply executes draw instructions in order and flushes them.
	Apply(instructions []core.Instruction) error

	// Events returns the channel of terminal events.
	Events() <-chan Event
}

// Fallback size when the terminal cannot be queried.
const (
	DefaultWidth  = 80
	DefaultHeight = 24
)
