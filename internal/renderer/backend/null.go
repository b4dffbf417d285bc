package backend

import (
	"strings"
	"sync"

	"github.com/dshills/moca/internal/input/key"
	"github.com/dshills/moca/internal/renderer/core"
)

// Null is an in-memory backend for testing.
type Null struct {
	mu            sync.Mutex
	width, height int
	cells         [][]core.Cell
	cursorRow     int
	cursorCol     int
	cursorVisible bool
	applied       []core.Instruction
	events        chan Event
	initialized   bool
	shutdown      bool
}

// NewNull creates a null backend with the given dimensions.
func NewNull(width, height int) *Null {
	b := &Null{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
	b.cells = blankGrid(width, height)
	return b
}

func blankGrid(width, height int) [][]core.Cell {
	cells := make([][]core.Cell, max(height, 0))
	for i := range cells {
		cells[i] = make([]core.Cell, max(width, 0))
		for j := range cells[i] {
			cells[i][j] = core.EmptyCell()
		}
	}
	return cells
}

func (b *Null) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

func (b *Null) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.shutdown = true
}

func (b *Null) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *Null) Events() <-chan Event {
	return b.events
}

func (b *Null) Apply(instructions []core.Instruction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, in := range instructions {
		switch in.Op {
		case core.OpSetCell:
			b.set(in.Row, in.Col, in.Cell)
			if in.Cell.Width == 2 {
				b.set(in.Row, in.Col+1, core.ContinuationCell())
			}
		case core.OpClearLine:
			if in.Row >= 0 && in.Row < b.height {
				for x := range b.cells[in.Row] {
					b.cells[in.Row][x] = core.EmptyCell()
				}
			}
		case core.OpMoveCursor:
			b.cursorRow, b.cursorCol = in.Row, in.Col
		case core.OpHideCursor:
			b.cursorVisible = false
		case core.OpShowCursor:
			b.cursorVisible = true
		}
	}
	b.applied = append(b.applied, instructions...)
	return nil
}

func (b *Null) set(row, col int, c core.Cell) {
	if row >= 0 && row < b.height && col >= 0 && col < b.width {
		b.cells[row][col] = c
	}
}

// PostKey queues a key event.
func (b *Null) PostKey(ev key.Event) {
	b.events <- Event{Type: EventKey, Key: ev}
}

// PostError queues an error event.
func (b *Null) PostError(err error) {
	b.events <- Event{Type: EventError, Err: err}
}

// Resize changes the screen size and queues a resize event. Content is lost.
func (b *Null) Resize(width, height int) {
	b.mu.Lock()
	b.width, b.height = width, height
	b.cells = blankGrid(width, height)
	b.mu.Unlock()

	b.events <- Event{Type: EventResize, Width: width, Height: height}
}

// Cell returns the cell at (row, col).
func (b *Null) Cell(row, col int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row >= 0 && row < b.height && col >= 0 && col < b.width {
		return b.cells[row][col]
	}
	return core.EmptyCell()
}

// RowText returns a screen row with trailing blanks trimmed.
func (b *Null) RowText(row int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if row < 0 || row >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[row] {
		if !c.IsContinuation() {
			sb.WriteString(c.Text())
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// Cursor returns the cursor position and visibility.
func (b *Null) Cursor() (row, col int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursorRow, b.cursorCol, b.cursorVisible
}

// Applied returns every instruction applied so far.
func (b *Null) Applied() []core.Instruction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]core.Instruction(nil), b.applied...)
}

// State reports whether Init and Shutdown have been called.
func (b *Null) State() (initialized, shutdown bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized, b.shutdown
}
