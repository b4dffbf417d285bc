// Package statusline provides the status line shown on the last screen row.
package statusline

import (
	"strconv"

	"github.com/dshills/moca/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine holds the state displayed in the status bar.
type StatusLine struct {
	filename   string // Current filename (empty for scratch)
	modified   bool   // Buffer has unsaved changes
	line       int    // Current line (1-indexed for display)
	col        int    // Current column (1-indexed for display)
	totalLines int    // Total lines in buffer

	// A message replaces the bar until cleared.
	message     string
	messageType MessageType
}

// New creates a new status line.
func New() *StatusLine {
	return &StatusLine{}
}

// SetFilename updates the displayed filename.
func (s *StatusLine) SetFilename(filename string) {
	s.filename = filename
}

// SetModified updates the modified indicator.
func (s *StatusLine) SetModified(modified bool) {
	s.modified = modified
}

// SetPosition updates the displayed cursor position (1-indexed).
func (s *StatusLine) SetPosition(line, col int) {
	s.line = line
	s.col = col
}

// SetTotalLines updates the displayed line count.
func (s *StatusLine) SetTotalLines(total int) {
	s.totalLines = total
}

// SetMessage shows msg in place of the status bar.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.message = msg
	s.messageType = msgType
}

// ClearMessage removes any displayed message.
func (s *StatusLine) ClearMessage() {
	s.message = ""
	s.messageType = MessageNone
}

// Message returns the displayed message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	return s.message, s.messageType
}

// Cells lays the status line out into exactly width cells.
func (s *StatusLine) Cells(width int) []core.Cell {
	if width <= 0 {
		return nil
	}
	if s.message != "" {
		return s.messageCells(width)
	}

	barStyle := core.DefaultStyle().Reverse()
	cells := fill(width, barStyle)

	filename := s.filename
	if filename == "" {
		filename = "[No Name]"
	}
	left := " " + filename + " - " + strconv.Itoa(s.totalLines) + " lines"
	if s.modified {
		left += " (modified)"
	}
	right := s.formatPosition() + " "

	// Position info wins when space is short.
	rightWidth := core.StringWidth(right)
	leftLimit := width
	if rightWidth < width {
		leftLimit = width - rightWidth - 1
	}
	put(cells, 0, left, barStyle, leftLimit)
	if rightWidth < width {
		put(cells, width-rightWidth, right, barStyle, width)
	}
	return cells
}

func (s *StatusLine) messageCells(width int) []core.Cell {
	style := core.DefaultStyle()
	switch s.messageType {
	case MessageError:
		style = style.Bold().Reverse()
	case MessageWarning:
		style = style.Bold()
	}

	cells := fill(width, core.DefaultStyle())
	put(cells, 0, s.message, style, width)
	return cells
}

// formatPosition formats the position info for the right side.
func (s *StatusLine) formatPosition() string {
	line := max(s.line, 1)
	col := max(s.col, 1)
	return strconv.Itoa(line) + ":" + strconv.Itoa(col)
}

func fill(width int, style core.Style) []core.Cell {
	cells := make([]core.Cell, width)
	for i := range cells {
		cells[i] = core.NewStyledCell(' ', style)
	}
	return cells
}

// put writes text starting at col, stopping before limit. A wide rune that
// would straddle limit is dropped.
func put(cells []core.Cell, col int, text string, style core.Style, limit int) {
	limit = min(limit, len(cells))
	for _, c := range core.LayoutLine([]rune(text), 1) {
		if col >= limit {
			return
		}
		if c.Width == 2 && col+1 >= limit {
			return
		}
		if c.IsContinuation() {
			cells[col] = c
		} else {
			cells[col] = core.NewStyledCell(c.Rune, style)
		}
		col++
	}
}
