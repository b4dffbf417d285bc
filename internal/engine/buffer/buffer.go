package buffer

import (
	"strings"
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// Buffer is an ordered sequence of lines.
type Buffer struct {
	lines      [][]rune
	version    uint64
	saved      uint64
	lineEnding LineEnding
}

// NewBuffer creates a new buffer holding a single empty line.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		lines:      [][]rune{{}},
		lineEnding: LineEndingLF,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// load replaces the content without touching the version counters.
// Each element is split like file text (see SplitLines), so no stored line
// carries '\n' or '\r'.
func (b *Buffer) load(lines []string) {
	b.lines = make([][]rune, 0, max(len(lines), 1))
	for _, l := range lines {
		for _, part := range SplitLines(l) {
			b.lines = append(b.lines, []rune(part))
		}
	}
	if len(b.lines) == 0 {
		b.lines = append(b.lines, []rune{})
	}
}

// Load replaces the buffer content with lines. An empty slice yields one
// empty line. The buffer is considered unmodified afterwards.
func (b *Buffer) Load(lines []string) {
	b.load(lines)
	b.version++
	b.saved = b.version
}

// Lines returns a copy of the content as strings, one per line.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, l := range b.lines {
		out[i] = string(l)
	}
	return out
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineLength returns the length of the row in runes, or 0 for an invalid row.
func (b *Buffer) LineLength(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// Line returns a copy of the runes in row, or nil for an invalid row.
func (b *Buffer) Line(row int) []rune {
	if row < 0 || row >= len(b.lines) {
		return nil
	}
	out := make([]rune, len(b.lines[row]))
	copy(out, b.lines[row])
	return out
}

// LineString returns the text of row, or "" for an invalid row.
func (b *Buffer) LineString(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row])
}

// RuneAt returns the rune at the given position.
func (b *Buffer) RuneAt(row, col int) (rune, bool) {
	if row < 0 || row >= len(b.lines) || col < 0 || col >= len(b.lines[row]) {
		return 0, false
	}
	return b.lines[row][col], true
}

// IsEmpty returns true if the buffer is a single empty line.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// Version returns a counter incremented by every successful mutation.
func (b *Buffer) Version() uint64 {
	return b.version
}

// Modified returns true if the buffer changed since the last Load or MarkSaved.
func (b *Buffer) Modified() bool {
	return b.version != b.saved
}

// MarkSaved records the current content as saved.
func (b *Buffer) MarkSaved() {
	b.saved = b.version
}

// valid reports whether (row, col) addresses a position in the buffer.
func (b *Buffer) valid(row, col int) bool {
	return row >= 0 && row < len(b.lines) && col >= 0 && col <= len(b.lines[row])
}

// InsertChar inserts ch before column col of row.
func (b *Buffer) InsertChar(row, col int, ch rune) error {
	if !b.valid(row, col) {
		return posErr("insert", row, col, ErrOutOfBounds)
	}
	if ch == '\n' || ch == '\r' {
		return posErr("insert", row, col, ErrInvalidChar)
	}

	line := b.lines[row]
	line = append(line, 0)
	copy(line[col+1:], line[col:])
	line[col] = ch
	b.lines[row] = line
	b.version++
	return nil
}

// DeleteChar removes the rune before column col of row (backspace semantics).
// At column 0 nothing is removed and ErrNoOp is returned; joining lines is
// done explicitly with JoinLine.
func (b *Buffer) DeleteChar(row, col int) error {
	if !b.valid(row, col) {
		return posErr("delete", row, col, ErrOutOfBounds)
	}
	if col == 0 {
		return ErrNoOp
	}

	line := b.lines[row]
	copy(line[col-1:], line[col:])
	b.lines[row] = line[:len(line)-1]
	b.version++
	return nil
}

// SplitLine breaks row at col. The suffix becomes a new line at row+1.
func (b *Buffer) SplitLine(row, col int) error {
	if !b.valid(row, col) {
		return posErr("split", row, col, ErrOutOfBounds)
	}

	line := b.lines[row]
	suffix := make([]rune, len(line)-col)
	copy(suffix, line[col:])
	b.lines[row] = line[:col:col]

	b.lines = append(b.lines, nil)
	copy(b.lines[row+2:], b.lines[row+1:])
	b.lines[row+1] = suffix
	b.version++
	return nil
}

// JoinLine appends row+1 to row and removes row+1.
func (b *Buffer) JoinLine(row int) error {
	if row < 0 || row >= len(b.lines)-1 {
		return posErr("join", row, 0, ErrOutOfBounds)
	}

	b.lines[row] = append(b.lines[row], b.lines[row+1]...)
	copy(b.lines[row+1:], b.lines[row+2:])
	b.lines[len(b.lines)-1] = nil
	b.lines = b.lines[:len(b.lines)-1]
	b.version++
	return nil
}

// SplitLines splits text into lines, accepting \n, \r\n and \r as line
// breaks. A single trailing line break terminates the last line rather than
// starting a new one.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
