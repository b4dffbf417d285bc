package cursor

import "github.com/dshills/moca/internal/engine/buffer"

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// Lines is the part of the line store the cursor needs to stay in bounds.
// *buffer.Buffer satisfies it.
type Lines interface {
	LineCount() int
	LineLength(row int) int
}

// Direction identifies a cursor movement direction.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Cursor represents an insertion point in the buffer.
// Cursor is an immutable value type.
type Cursor struct {
	row int
	col int
}

// New creates a cursor at the given position. Negative values become 0.
func New(row, col int) Cursor {
	return Cursor{row: max(row, 0), col: max(col, 0)}
}

// Row returns the cursor's line.
func (c Cursor) Row() int {
	return c.row
}

// Col returns the cursor's column in runes.
func (c Cursor) Col() int {
	return c.col
}

// Point returns the cursor position.
func (c Cursor) Point() Point {
	return Point{Row: c.row, Col: c.col}
}

// MoveTo returns a cursor at the given position, clamped to lines.
func (c Cursor) MoveTo(lines Lines, row, col int) Cursor {
	return New(row, col).ClampTo(lines)
}

// ClampTo returns the cursor clamped to a valid position in lines:
// the row to [0, LineCount), then the column to [0, LineLength(row)].
// Clamping an already clamped cursor returns it unchanged.
func (c Cursor) ClampTo(lines Lines) Cursor {
	n := lines.LineCount()
	if n < 1 {
		return Cursor{}
	}
	row := min(max(c.row, 0), n-1)
	col := min(max(c.col, 0), lines.LineLength(row))
	return Cursor{row: row, col: col}
}

// Valid reports whether the cursor satisfies the position invariant for lines.
func (c Cursor) Valid(lines Lines) bool {
	return c.row >= 0 && c.row < lines.LineCount() &&
		c.col >= 0 && c.col <= lines.LineLength(c.row)
}

// Move returns the cursor moved amount steps in dir.
func (c Cursor) Move(lines Lines, dir Direction, amount int) Cursor {
	c = c.ClampTo(lines)
	for i := 0; i < amount; i++ {
		next := c.step(lines, dir)
		if next == c {
			break
		}
		c = next
	}
	return c
}

func (c Cursor) step(lines Lines, dir Direction) Cursor {
	switch dir {
	case Up:
		if c.row == 0 {
			return c
		}
		return Cursor{row: c.row - 1, col: min(c.col, lines.LineLength(c.row-1))}
	case Down:
		if c.row >= lines.LineCount()-1 {
			return c
		}
		return Cursor{row: c.row + 1, col: min(c.col, lines.LineLength(c.row+1))}
	case Left:
		if c.col > 0 {
			return Cursor{row: c.row, col: c.col - 1}
		}
		if c.row > 0 {
			return Cursor{row: c.row - 1, col: lines.LineLength(c.row - 1)}
		}
		return c
	case Right:
		if c.col < lines.LineLength(c.row) {
			return Cursor{row: c.row, col: c.col + 1}
		}
		if c.row < lines.LineCount()-1 {
			return Cursor{row: c.row + 1, col: 0}
		}
		return c
	default:
		return c
	}
}

// Home returns the cursor at the start of its line.
func (c Cursor) Home() Cursor {
	return Cursor{row: c.row}
}

// End returns the cursor after the last character of its line.
func (c Cursor) End(lines Lines) Cursor {
	c = c.ClampTo(lines)
	return Cursor{row: c.row, col: lines.LineLength(c.row)}
}

// String returns a string representation of the cursor.
func (c Cursor) String() string {
	return "Cursor" + c.Point().String()
}

// Equals returns true if two cursors are at the same position.
func (c Cursor) Equals(other Cursor) bool {
	return c == other
}
