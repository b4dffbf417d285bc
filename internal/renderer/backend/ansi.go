package backend

import (
	"io"
	"os"
	"sync"

	"github.com/dshills/moca/internal/input/key"
	"github.com/dshills/moca/internal/renderer/core"
)

// ANSI implements Backend with raw VT100 escape sequences: the TTY is put in
// raw mode, input is decoded by key.Decoder and output goes through Writer.
type ANSI struct {
	in  io.Reader
	out *Writer

	// Terminal file descriptor for raw mode and size queries; -1 for none.
	fd  int
	raw *RawMode

	events     chan Event
	done       chan struct{}
	stopResize func()
	stopOnce   sync.Once
}

// NewANSI creates a backend reading keys from in and drawing to out.
// in must be the controlling terminal.
func NewANSI(in, out *os.File) *ANSI {
	return newANSI(in, out, int(in.Fd()))
}

// NewANSIStream creates a backend over plain streams: no raw mode, no resize
// notification and a fixed size.
func NewANSIStream(in io.Reader, out io.Writer) *ANSI {
	return newANSI(in, out, -1)
}

func newANSI(in io.Reader, out io.Writer, fd int) *ANSI {
	return &ANSI{
		in:         in,
		out:        NewWriter(out),
		fd:         fd,
		events:     make(chan Event, 64),
		done:       make(chan struct{}),
		stopResize: func() {},
	}
}

func (a *ANSI) Init() error {
	if a.fd >= 0 {
		raw, err := EnterRawMode(a.fd)
		if err != nil {
			return err
		}
		a.raw = raw
	}

	if err := a.out.Raw(seqEnterAltScreen, seqClearScreen, seqHome); err != nil {
		_ = a.raw.Restore()
		return err
	}

	if a.fd >= 0 {
		a.stopResize = watchResize(func() {
			w, h := a.Size()
			a.send(Event{Type: EventResize, Width: w, Height: h})
		})
	}
	go a.read()
	return nil
}

// read decodes input until the reader fails. A read blocked in the kernel
// cannot be interrupted; it ends with the process.
func (a *ANSI) read() {
	dec := key.NewDecoder(a.in)
	for {
		ev, err := dec.Next()
		if err != nil {
			a.send(Event{Type: EventError, Err: err})
			return
		}
		if !a.send(Event{Type: EventKey, Key: ev}) {
			return
		}
	}
}

func (a *ANSI) send(ev Event) bool {
	select {
	case a.events <- ev:
		return true
	case <-a.done:
		return false
	}
}

func (a *ANSI) Shutdown() {
	a.stopOnce.Do(func() {
		close(a.done)
		a.stopResize()
		_ = a.out.Raw(seqResetStyle, seqClearScreen, seqHome, seqShowCursor, seqLeaveAltScreen)
		_ = a.raw.Restore()
	})
}

func (a *ANSI) Size() (int, int) {
	if a.fd < 0 {
		return DefaultWidth, DefaultHeight
	}
	w, h, err := querySize(a.fd)
	if err != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return w, h
}

func (a *ANSI) Events() <-chan Event {
	return a.events
}

func (a *ANSI) Apply(instructions []core.Instruction) error {
	return a.out.Apply(instructions)
}
