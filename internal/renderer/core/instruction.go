package core

import "fmt"

// Op identifies the kind of a draw instruction.
type Op uint8

const (
	// OpSetCell writes Cell at (Row, Col).
	OpSetCell Op = iota
	// OpClearLine blanks the whole of Row.
	OpClearLine
	// OpMoveCursor places the terminal cursor at (Row, Col).
	OpMoveCursor
	// OpHideCursor hides the terminal cursor.
	OpHideCursor
	// OpShowCursor shows the terminal cursor.
	OpShowCursor
)

// String returns the op name.
func (o Op) String() string {
	switch o {
	case OpSetCell:
		return "SetCell"
	case OpClearLine:
		return "ClearLine"
	case OpMoveCursor:
		return "MoveCursor"
	case OpHideCursor:
		return "HideCursor"
	case OpShowCursor:
		return "ShowCursor"
	default:
		return "Unknown"
	}
}

// Instruction is an atomic unit of terminal output.
type Instruction struct {
	Op   Op
	Row  int
	Col  int
	Cell Cell
}

// SetCell returns an instruction writing cell at (row, col).
func SetCell(row, col int, cell Cell) Instruction {
	return Instruction{Op: OpSetCell, Row: row, Col: col, Cell: cell}
}

// ClearLine returns an instruction blanking row.
func ClearLine(row int) Instruction {
	return Instruction{Op: OpClearLine, Row: row}
}

// MoveCursor returns an instruction placing the cursor at (row, col).
func MoveCursor(row, col int) Instruction {
	return Instruction{Op: OpMoveCursor, Row: row, Col: col}
}

// HideCursor returns an instruction hiding the cursor.
func HideCursor() Instruction {
	return Instruction{Op: OpHideCursor}
}

// ShowCursor returns an instruction showing the cursor.
func ShowCursor() Instruction {
	return Instruction{Op: OpShowCursor}
}

// String returns a compact representation, useful in test failures.
func (in Instruction) String() string {
	switch in.Op {
	case OpSetCell:
		return fmt.Sprintf("SetCell(%d,%d,%q)", in.Row, in.Col, in.Cell.Rune)
	case OpClearLine:
		return fmt.Sprintf("ClearLine(%d)", in.Row)
	case OpMoveCursor:
		return fmt.Sprintf("MoveCursor(%d,%d)", in.Row, in.Col)
	default:
		return in.Op.String()
	}
}

// Count returns how many instructions in seq have the given op.
func Count(seq []Instruction, op Op) int {
	n := 0
	for _, in := range seq {
		if in.Op == op {
			n++
		}
	}
	return n
}
