// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between renderer and backend.
package core

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Attribute represents text attributes (bold, reverse, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Style represents the visual style of a cell.
type Style struct {
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{}
}

// Reverse returns a new style with reverse video attribute added.
func (s Style) Reverse() Style {
	s.Attributes |= AttrReverse
	return s
}

// Bold returns a new style with bold attribute added.
func (s Style) Bold() Style {
	s.Attributes |= AttrBold
	return s
}

// IsDefault returns true if this is the default style.
func (s Style) IsDefault() bool {
	return s.Attributes == AttrNone
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display. 0 marks the continuation cell that
	// follows a wide character.
	Rune rune

	// Comb holds zero-width runes (combining marks) drawn over Rune.
	Comb string

	// Width is the display width: 0 for continuation cells, 1 or 2 otherwise.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1}
}

// NewCell creates a cell with the given rune and default style.
func NewCell(r rune) Cell {
	return Cell{Rune: r, Width: max(RuneWidth(r), 1)}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	c := NewCell(r)
	c.Style = style
	return c
}

// ContinuationCell returns the placeholder occupying the second column of a
// wide character.
func ContinuationCell() Cell {
	return Cell{}
}

// IsBlank returns true for an unstyled space.
func (c Cell) IsBlank() bool {
	return c.Rune == ' ' && c.Comb == "" && c.Style.IsDefault()
}

// Text returns the rune followed by any combining marks.
func (c Cell) Text() string {
	if c.Comb == "" {
		return string(c.Rune)
	}
	return string(c.Rune) + c.Comb
}

// Combining returns the combining marks as runes, or nil.
func (c Cell) Combining() []rune {
	if c.Comb == "" {
		return nil
	}
	return []rune(c.Comb)
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// RuneWidth returns the display width of a rune in terminal cells.
// Control characters have width 0.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return runewidth.RuneWidth(r)
}

// StringWidth returns the display width of s, counting grapheme clusters.
func StringWidth(s string) int {
	return uniseg.StringWidth(s)
}

// NextTabStop returns the display column after a tab written at col.
func NextTabStop(col, tabStop int) int {
	if tabStop < 1 {
		tabStop = 1
	}
	return (col/tabStop + 1) * tabStop
}

// DisplayColumn returns the display column of rune index col in line, with
// tabs expanded to tabStop and wide runes counted as two cells.
func DisplayColumn(line []rune, col, tabStop int) int {
	x := 0
	for i, r := range line {
		if i >= col {
			break
		}
		x = advance(x, r, tabStop)
	}
	return x
}

func advance(x int, r rune, tabStop int) int {
	switch {
	case r == '\t':
		return NextTabStop(x, tabStop)
	case combines(r, x):
		return x
	default:
		return x + max(RuneWidth(r), 1)
	}
}

// combines reports whether r is a printable zero-width rune that joins the
// glyph before display column x. At column 0 there is nothing to join.
func combines(r rune, x int) bool {
	return x > 0 && RuneWidth(r) == 0 && !unicode.IsControl(r)
}

// LayoutLine converts a buffer line into display cells. Tabs become spaces up
// to the next tab stop, wide runes are followed by a continuation cell,
// combining marks join the preceding glyph and other zero-width runes are
// shown as '?'.
func LayoutLine(line []rune, tabStop int) []Cell {
	cells := make([]Cell, 0, len(line))
	for _, r := range line {
		switch {
		case r == '\t':
			next := NextTabStop(len(cells), tabStop)
			for len(cells) < next {
				cells = append(cells, EmptyCell())
			}
		case combines(r, len(cells)):
			i := len(cells) - 1
			if cells[i].IsContinuation() {
				i--
			}
			cells[i].Comb += string(r)
		case RuneWidth(r) == 0:
			cells = append(cells, NewCell('?'))
		case RuneWidth(r) == 2:
			cells = append(cells, Cell{Rune: r, Width: 2}, ContinuationCell())
		default:
			cells = append(cells, NewCell(r))
		}
	}
	return cells
}
