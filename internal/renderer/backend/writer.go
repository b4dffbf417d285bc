package backend

import (
	"bufio"
	"io"
	"strconv"

	"github.com/dshills/moca/internal/renderer/core"
)

// VT100 control sequences.
const (
	seqHideCursor     = "\x1b[?25l"
	seqShowCursor     = "\x1b[?25h"
	seqClearLine      = "\x1b[2K"
	seqClearScreen    = "\x1b[2J"
	seqHome           = "\x1b[H"
	seqResetStyle     = "\x1b[0m"
	seqEnterAltScreen = "\x1b[?1049h"
	seqLeaveAltScreen = "\x1b[?1049l"
)

// Writer renders draw instructions as VT100 escape sequences.
// Cursor moves are elided when the terminal cursor is already in place.
type Writer struct {
	w *bufio.Writer

	// Terminal cursor position after the last write; -1 when unknown.
	row, col int
	style    core.Style
}

// NewWriter creates a writer emitting to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w), row: -1, col: -1}
}

// Apply writes the instructions and flushes.
func (w *Writer) Apply(instructions []core.Instruction) error {
	for _, in := range instructions {
		switch in.Op {
		case core.OpSetCell:
			w.moveTo(in.Row, in.Col)
			w.setStyle(in.Cell.Style)
			w.w.WriteString(in.Cell.Text())
			w.col += max(in.Cell.Width, 1)
		case core.OpClearLine:
			w.moveTo(in.Row, 0)
			w.setStyle(core.DefaultStyle())
			w.w.WriteString(seqClearLine)
		case core.OpMoveCursor:
			w.setStyle(core.DefaultStyle())
			w.moveTo(in.Row, in.Col)
		case core.OpHideCursor:
			w.w.WriteString(seqHideCursor)
		case core.OpShowCursor:
			w.w.WriteString(seqShowCursor)
		}
	}
	w.setStyle(core.DefaultStyle())
	return w.w.Flush()
}

// Raw writes control sequences verbatim and flushes. The cursor position
// becomes unknown.
func (w *Writer) Raw(seqs ...string) error {
	for _, s := range seqs {
		w.w.WriteString(s)
	}
	w.row, w.col = -1, -1
	return w.w.Flush()
}

func (w *Writer) moveTo(row, col int) {
	if w.row == row && w.col == col {
		return
	}
	w.w.WriteString("\x1b[")
	w.w.WriteString(strconv.Itoa(row + 1))
	w.w.WriteByte(';')
	w.w.WriteString(strconv.Itoa(col + 1))
	w.w.WriteByte('H')
	w.row, w.col = row, col
}

func (w *Writer) setStyle(s core.Style) {
	if s == w.style {
		return
	}
	w.w.WriteString(sgr(s))
	w.style = s
}

// sgr returns the Select Graphic Rendition sequence for s.
func sgr(s core.Style) string {
	b := []byte("\x1b[0")
	if s.Attributes.Has(core.AttrBold) {
		b = append(b, ";1"...)
	}
	if s.Attributes.Has(core.AttrDim) {
		b = append(b, ";2"...)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		b = append(b, ";4"...)
	}
	if s.Attributes.Has(core.AttrReverse) {
		b = append(b, ";7"...)
	}
	return string(append(b, 'm'))
}
