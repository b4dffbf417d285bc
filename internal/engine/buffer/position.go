package buffer

import "fmt"

// Point is a row and column position in the buffer.
// Both are 0-indexed; Col counts runes from the start of the line.
type Point struct {
	Row int
	Col int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Row, p.Col)
}
