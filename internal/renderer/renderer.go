package renderer

import (
	"github.com/dshills/moca/internal/engine/cursor"
	"github.com/dshills/moca/internal/renderer/core"
	"github.com/dshills/moca/internal/renderer/statusline"
	"github.com/dshills/moca/internal/renderer/viewport"
)

// Source provides read access to buffer content.
// *buffer.Buffer satisfies it.
type Source interface {
	LineCount() int
	Line(row int) []rune
	RuneAt(row, col int) (rune, bool)
	IsEmpty() bool
	Modified() bool
}

// Options configures the renderer.
type Options struct {
	TabStop    int    // Display width of a tab stop
	Filler     rune   // Glyph drawn on rows past the end of the buffer (0 = none)
	Welcome    string // Splash shown over an empty buffer ("" = none)
	StatusLine bool   // Reserve the last row for the status line
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		TabStop:    8,
		Filler:     '~',
		Welcome:    "Moca Editor",
		StatusLine: true,
	}
}

// Renderer turns buffer state into draw instructions, keeping the last frame
// for diffing.
type Renderer struct {
	opts   Options
	prev   *Frame
	status *statusline.StatusLine

	// Screen height from the last Layout; 0 until then.
	screenRows int
}

// New creates a renderer with the given options.
func New(opts Options) *Renderer {
	if opts.TabStop < 1 {
		opts.TabStop = 1
	}
	return &Renderer{
		opts:   opts,
		status: statusline.New(),
	}
}

// Options returns the current options.
func (r *Renderer) Options() Options {
	return r.opts
}

// SetOptions replaces the options and forces a full redraw.
func (r *Renderer) SetOptions(opts Options) {
	if opts.TabStop < 1 {
		opts.TabStop = 1
	}
	r.opts = opts
	r.Invalidate()
}

// Invalidate drops the retained frame so the next render redraws everything.
func (r *Renderer) Invalidate() {
	r.prev = nil
}

// StatusLine returns the status line model.
func (r *Renderer) StatusLine() *statusline.StatusLine {
	return r.status
}

// TextRows returns how many of screenRows are available for buffer text.
func (r *Renderer) TextRows(screenRows int) int {
	if r.opts.StatusLine && screenRows > 1 {
		return screenRows - 1
	}
	return max(screenRows, 1)
}

// Layout records the screen height and returns the rows left for text.
// A one-row screen has no room for the status line.
func (r *Renderer) Layout(screenRows int) int {
	r.screenRows = max(screenRows, 1)
	return r.TextRows(r.screenRows)
}

// showStatus reports whether the status row is drawn below the text rows.
// Before Layout the screen height is unknown and the row is always added.
func (r *Renderer) showStatus() bool {
	return r.opts.StatusLine && r.screenRows != 1
}

// CursorColumn returns the display column of the cursor within its line.
func (r *Renderer) CursorColumn(src Source, cur cursor.Cursor) int {
	return core.DisplayColumn(src.Line(cur.Row()), cur.Col(), r.opts.TabStop)
}

// CursorSpan returns the display column of the cursor and the width of the
// glyph under it: 2 on a wide rune, 1 otherwise.
func (r *Renderer) CursorSpan(src Source, cur cursor.Cursor) (displayCol, width int) {
	width = 1
	if ch, ok := src.RuneAt(cur.Row(), cur.Col()); ok && core.RuneWidth(ch) == 2 {
		width = 2
	}
	return r.CursorColumn(src, cur), width
}

// Frame returns the last rendered frame, or nil before the first render.
func (r *Renderer) Frame() *Frame {
	return r.prev
}

// Render produces the instructions that bring the screen from the previous
// frame to the current state.
func (r *Renderer) Render(src Source, vp *viewport.Viewport, cur cursor.Cursor) []core.Instruction {
	dcol, width := r.CursorSpan(src, cur)
	if !vp.ContainsSpan(cur.Row(), dcol, width) {
		vp.RecomputeSpan(cur.Row(), dcol, width)
	}

	next := r.compose(src, vp, cur)

	prev := r.prev
	if vp.TakeFullRedraw() || prev == nil || !sameSize(prev, next) {
		prev = nil
	}

	var content []core.Instruction
	for y := 0; y < next.rows; y++ {
		var old []core.Cell
		if prev != nil {
			old = prev.cells[y]
		}
		content = diffRow(content, y, old, next.cells[y])
	}
	r.prev = next

	out := make([]core.Instruction, 0, len(content)+3)
	if len(content) > 0 {
		out = append(out, core.HideCursor())
		out = append(out, content...)
	}
	screenRow, screenCol := vp.BufferToScreen(cur.Row(), dcol)
	out = append(out, core.MoveCursor(screenRow, screenCol), core.ShowCursor())
	return out
}

// compose builds the frame for the current state.
func (r *Renderer) compose(src Source, vp *viewport.Viewport, cur cursor.Cursor) *Frame {
	textRows := vp.Rows()
	height := textRows
	if r.showStatus() {
		height++
	}
	f := NewFrame(height, vp.Cols())

	lineCount := src.LineCount()
	for y := 0; y < textRows; y++ {
		row := vp.RowOffset() + y
		switch {
		case row < lineCount:
			r.drawLine(f, y, src.Line(row), vp.ColOffset())
		case r.showWelcome(src) && y == textRows/3:
			r.drawWelcome(f, y)
		case r.opts.Filler != 0:
			f.Set(y, 0, core.NewCell(r.opts.Filler))
		}
	}

	if r.showStatus() {
		r.status.SetPosition(cur.Row()+1, cur.Col()+1)
		r.status.SetTotalLines(lineCount)
		r.status.SetModified(src.Modified())
		for x, c := range r.status.Cells(f.cols) {
			f.Set(textRows, x, c)
		}
	}
	return f
}

// drawLine writes the visible part of a buffer line onto screen row y.
func (r *Renderer) drawLine(f *Frame, y int, line []rune, colOffset int) {
	cells := core.LayoutLine(line, r.opts.TabStop)
	for x := 0; x < f.cols; x++ {
		i := colOffset + x
		if i >= len(cells) {
			return
		}
		c := cells[i]
		switch {
		case x == 0 && c.IsContinuation():
			// Left half of a wide rune is scrolled off.
			c = core.EmptyCell()
		case c.Width == 2 && x == f.cols-1:
			// Right half would fall off the screen.
			c = core.EmptyCell()
		}
		f.Set(y, x, c)
	}
}

// showWelcome reports whether the splash belongs on screen: the buffer is a
// single empty line nobody has touched yet.
func (r *Renderer) showWelcome(src Source) bool {
	return r.opts.Welcome != "" && src.IsEmpty() && !src.Modified()
}

// drawWelcome centres the welcome message on row y.
func (r *Renderer) drawWelcome(f *Frame, y int) {
	msg := []rune(r.opts.Welcome)
	width := core.StringWidth(r.opts.Welcome)
	x := max((f.cols-width)/2, 0)
	for _, c := range core.LayoutLine(msg, r.opts.TabStop) {
		if x >= f.cols || (c.Width == 2 && x == f.cols-1) {
			return
		}
		f.Set(y, x, c)
		x++
	}
}

func sameSize(a, b *Frame) bool {
	return a.rows == b.rows && a.cols == b.cols
}
