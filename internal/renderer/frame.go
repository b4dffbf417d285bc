package renderer

import (
	"strings"

	"github.com/dshills/moca/internal/renderer/core"
)

// Frame is a grid of screen cells.
type Frame struct {
	rows  int
	cols  int
	cells [][]core.Cell
}

// NewFrame creates a blank frame of the given size.
func NewFrame(rows, cols int) *Frame {
	f := &Frame{rows: max(rows, 0), cols: max(cols, 0)}
	f.cells = make([][]core.Cell, f.rows)
	for y := range f.cells {
		row := make([]core.Cell, f.cols)
		for x := range row {
			row[x] = core.EmptyCell()
		}
		f.cells[y] = row
	}
	return f
}

// Size returns the frame dimensions.
func (f *Frame) Size() (rows, cols int) {
	return f.rows, f.cols
}

// Cell returns the cell at (row, col), or an empty cell outside the frame.
func (f *Frame) Cell(row, col int) core.Cell {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return core.EmptyCell()
	}
	return f.cells[row][col]
}

// Set writes a cell. Positions outside the frame are ignored.
func (f *Frame) Set(row, col int, c core.Cell) {
	if row < 0 || row >= f.rows || col < 0 || col >= f.cols {
		return
	}
	f.cells[row][col] = c
}

// RowText returns the characters of a row, skipping continuation cells.
func (f *Frame) RowText(row int) string {
	if row < 0 || row >= f.rows {
		return ""
	}
	var sb strings.Builder
	for _, c := range f.cells[row] {
		if !c.IsContinuation() {
			sb.WriteString(c.Text())
		}
	}
	return sb.String()
}

// String returns all rows joined by newlines with trailing blanks trimmed.
func (f *Frame) String() string {
	lines := make([]string, f.rows)
	for y := range lines {
		lines[y] = strings.TrimRight(f.RowText(y), " ")
	}
	return strings.Join(lines, "\n")
}

// diffRow appends the instructions turning prev into next for screen row y.
// A nil prev means the row's previous content is unknown.
func diffRow(out []core.Instruction, y int, prev, next []core.Cell) []core.Instruction {
	if prev == nil {
		return appendCleared(out, y, next)
	}

	changed := 0
	blank := true
	for x, c := range next {
		if c != prev[x] && !c.IsContinuation() {
			changed++
		}
		if !c.IsBlank() && !c.IsContinuation() {
			blank = false
		}
	}
	if changed == 0 {
		return out
	}
	if blank {
		return append(out, core.ClearLine(y))
	}

	// Clearing the row and redrawing what is left may be shorter.
	if 1+nonBlank(next) < changed {
		return appendCleared(out, y, next)
	}
	for x, c := range next {
		if c != prev[x] && !c.IsContinuation() {
			out = append(out, core.SetCell(y, x, c))
		}
	}
	return out
}

func appendCleared(out []core.Instruction, y int, next []core.Cell) []core.Instruction {
	out = append(out, core.ClearLine(y))
	for x, c := range next {
		if !c.IsBlank() && !c.IsContinuation() {
			out = append(out, core.SetCell(y, x, c))
		}
	}
	return out
}

func nonBlank(cells []core.Cell) int {
	n := 0
	for _, c := range cells {
		if !c.IsBlank() && !c.IsContinuation() {
			n++
		}
	}
	return n
}
