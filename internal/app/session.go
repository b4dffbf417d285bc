package app

import (
	"errors"
	"fmt"

	"github.com/dshills/moca/internal/config"
	"github.com/dshills/moca/internal/dispatcher"
	"github.com/dshills/moca/internal/engine/buffer"
	"github.com/dshills/moca/internal/engine/cursor"
	"github.com/dshills/moca/internal/input/key"
	"github.com/dshills/moca/internal/renderer"
	"github.com/dshills/moca/internal/renderer/core"
	"github.com/dshills/moca/internal/renderer/statusline"
	"github.com/dshills/moca/internal/renderer/viewport"
)

// Options configures a Session.
type Options struct {
	// Rows and Cols are the screen size, status line included.
	Rows, Cols int

	// Document is the file being edited. Nil means an unnamed buffer.
	Document *Document

	Renderer   renderer.Options
	Dispatcher dispatcher.Config
	Bindings   key.Bindings

	// Logger receives session diagnostics. Nil discards them.
	Logger *Logger
}

// DefaultOptions returns options for an 80x24 unnamed buffer.
func DefaultOptions() Options {
	return Options{
		Rows:       24,
		Cols:       80,
		Renderer:   renderer.DefaultOptions(),
		Dispatcher: dispatcher.DefaultConfig(),
		Bindings:   key.DefaultBindings(),
	}
}

// Session is one editing session: the buffer, cursor, viewport and render
// state, mutated only through ApplyKeyEvent and OnResize.
//
// A Session is not safe for concurrent use; the event loop owns it.
type Session struct {
	buf      *buffer.Buffer
	cur      cursor.Cursor
	vp       *viewport.Viewport
	rend     *renderer.Renderer
	disp     *dispatcher.Dispatcher
	bindings key.Bindings
	doc      *Document
	logger   *Logger

	rows, cols int
}

// New creates a session over an empty buffer.
func New(opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = NullLogger
	}
	doc := opts.Document
	if doc == nil {
		doc = &Document{LineEnding: buffer.LineEndingLF}
	}

	s := &Session{
		buf:      buffer.NewBuffer(buffer.WithLineEnding(doc.LineEnding)),
		cur:      cursor.New(0, 0),
		rend:     renderer.New(opts.Renderer),
		disp:     dispatcher.New(opts.Dispatcher),
		bindings: opts.Bindings,
		doc:      doc,
		logger:   logger.WithComponent("session"),
		rows:     max(opts.Rows, 1),
		cols:     max(opts.Cols, 1),
	}
	s.disp.SetLogger(logger.WithComponent("dispatcher"))
	s.vp = viewport.New(s.rend.Layout(s.rows), s.cols)
	s.disp.SetPageSize(s.vp.Rows())
	s.rend.StatusLine().SetFilename(doc.Name())
	return s
}

// LoadLines replaces the buffer content and moves the cursor to the start.
// An empty slice loads a single empty line. The buffer is unmodified
// afterwards.
func (s *Session) LoadLines(lines []string) {
	s.buf.Load(lines)
	s.cur = cursor.New(0, 0)
	s.vp.Recompute(0, 0)
	s.vp.RequestFullRedraw()
}

// DumpLines returns the buffer content, one string per line.
func (s *Session) DumpLines() []string {
	return s.buf.Lines()
}

// ApplyKeyEvent applies one key event. It returns ErrQuit when the session
// should end, and a contract error in strict mode. Every other outcome,
// including a failed save, is reported on the status line.
func (s *Session) ApplyKeyEvent(ev key.Event) error {
	s.rend.StatusLine().ClearMessage()

	ev = s.bindings.Resolve(ev)
	next, result, err := s.disp.Dispatch(s.buf, s.cur, ev)
	s.cur = next
	s.follow()

	switch {
	case errors.Is(err, dispatcher.ErrQuit):
		s.logger.Info("quit requested")
		return ErrQuit
	case errors.Is(err, dispatcher.ErrSave):
		s.save()
		return nil
	case err != nil:
		s.logger.Error("dispatch %s: %v", ev, err)
		return NewComponentError("dispatcher", "dispatch", err)
	}

	if result.Status == dispatcher.StatusRejected {
		s.SetMessage(fmt.Sprintf("cannot apply %s here", ev), statusline.MessageWarning)
	}
	return nil
}

func (s *Session) save() {
	n, err := s.doc.Save(s.buf.Lines())
	switch {
	case errors.Is(err, ErrNoFilePath):
		s.SetMessage("no file name: start moca with a file to save", statusline.MessageWarning)
	case err != nil:
		s.logger.Error("%v", err)
		s.SetMessage(fmt.Sprintf("can't save: %v", err), statusline.MessageError)
	default:
		s.buf.MarkSaved()
		s.logger.Info("saved %d bytes to %s", n, s.doc.Path)
		s.SetMessage(fmt.Sprintf("%d bytes written to %s", n, s.doc.Path), statusline.MessageInfo)
	}
}

// follow scrolls the viewport so the cursor stays visible.
func (s *Session) follow() {
	dcol, width := s.rend.CursorSpan(s.buf, s.cur)
	s.vp.RecomputeSpan(s.cur.Row(), dcol, width)
}

// RenderFrame returns the draw instructions that update the screen to the
// current state. A second call without intervening changes draws nothing
// but the cursor.
func (s *Session) RenderFrame() []core.Instruction {
	return s.rend.Render(s.buf, s.vp, s.cur)
}

// OnResize adapts the viewport to a new screen size and forces a full
// redraw.
func (s *Session) OnResize(rows, cols int) {
	s.rows, s.cols = max(rows, 1), max(cols, 1)
	s.vp.Resize(s.rend.Layout(s.rows), s.cols, s.cur.Row(), s.rend.CursorColumn(s.buf, s.cur))
	s.disp.SetPageSize(s.vp.Rows())
}

// ApplyConfig applies a reloaded configuration: renderer options, strict
// mode and key bindings. Invalid bindings keep the current ones.
func (s *Session) ApplyConfig(cfg *config.Config) error {
	opts := s.rend.Options()
	opts.TabStop = cfg.Editor.TabStop
	opts.Filler = cfg.FillerRune()
	opts.Welcome = cfg.UI.Welcome
	opts.StatusLine = cfg.UI.StatusLine
	s.rend.SetOptions(opts)
	s.disp.SetStrict(cfg.Editor.Strict)

	// The status line may have appeared or gone, changing the text rows.
	s.OnResize(s.rows, s.cols)

	b, err := cfg.Bindings()
	if err != nil {
		return NewComponentError("config", "bindings", err)
	}
	s.bindings = b
	return nil
}

// SetMessage shows msg on the status line until the next key event.
func (s *Session) SetMessage(msg string, t statusline.MessageType) {
	s.rend.StatusLine().SetMessage(msg, t)
}

// Message returns the current status message.
func (s *Session) Message() (string, statusline.MessageType) {
	return s.rend.StatusLine().Message()
}

// Cursor returns the cursor.
func (s *Session) Cursor() cursor.Cursor {
	return s.cur
}

// Modified reports whether the buffer has unsaved changes.
func (s *Session) Modified() bool {
	return s.buf.Modified()
}

// Metrics returns the dispatcher's statistics, or nil when disabled.
func (s *Session) Metrics() *dispatcher.Metrics {
	return s.disp.Metrics()
}

// Document returns the file behind the buffer.
func (s *Session) Document() *Document {
	return s.doc
}

// Viewport returns the viewport.
func (s *Session) Viewport() *viewport.Viewport {
	return s.vp
}

// Size returns the screen size as rows, cols.
func (s *Session) Size() (rows, cols int) {
	return s.rows, s.cols
}
