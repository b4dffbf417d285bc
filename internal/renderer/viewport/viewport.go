// Package viewport maps the logical buffer onto a fixed-size screen window.
//
// The viewport holds a row offset (first visible buffer line), a column
// offset (first visible display column) and the window size. Recompute
// scrolls by the smallest amount that makes the cursor visible, bringing it
// to the nearest edge; it never re-centres.
package viewport

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	// Position in buffer: first visible line and display column.
	rowOffset int
	colOffset int

	// Size in screen cells.
	rows int
	cols int

	// Set by Resize, consumed by the renderer.
	fullRedraw bool
}

// New creates a viewport with the given size.
// Rows and cols are clamped to a minimum of 1.
func New(rows, cols int) *Viewport {
	return &Viewport{
		rows:       max(rows, 1),
		cols:       max(cols, 1),
		fullRedraw: true,
	}
}

// Rows returns the viewport height.
func (v *Viewport) Rows() int {
	return v.rows
}

// Cols returns the viewport width.
func (v *Viewport) Cols() int {
	return v.cols
}

// RowOffset returns the first visible buffer line.
func (v *Viewport) RowOffset() int {
	return v.rowOffset
}

// ColOffset returns the first visible display column.
func (v *Viewport) ColOffset() int {
	return v.colOffset
}

// Recompute scrolls minimally so that (row, displayCol) is visible.
// Returns true if the offsets changed.
func (v *Viewport) Recompute(row, displayCol int) bool {
	return v.RecomputeSpan(row, displayCol, 1)
}

// RecomputeSpan is Recompute for a glyph width cells wide: every column of
// it is brought into view. Width is clamped to [1, Cols].
func (v *Viewport) RecomputeSpan(row, displayCol, width int) bool {
	row = max(row, 0)
	displayCol = max(displayCol, 0)
	last := displayCol + min(max(width, 1), v.cols) - 1
	oldRow, oldCol := v.rowOffset, v.colOffset

	if row < v.rowOffset {
		v.rowOffset = row
	} else if row >= v.rowOffset+v.rows {
		v.rowOffset = row - v.rows + 1
	}

	if displayCol < v.colOffset {
		v.colOffset = displayCol
	} else if last >= v.colOffset+v.cols {
		v.colOffset = last - v.cols + 1
	}

	return v.rowOffset != oldRow || v.colOffset != oldCol
}

// Resize updates the viewport size, rescrolls to keep (row, displayCol)
// visible and requests a full redraw.
// Rows and cols are clamped to a minimum of 1.
func (v *Viewport) Resize(rows, cols, row, displayCol int) {
	v.rows = max(rows, 1)
	v.cols = max(cols, 1)
	v.fullRedraw = true
	v.Recompute(row, displayCol)
}

// RequestFullRedraw makes the next TakeFullRedraw report true.
func (v *Viewport) RequestFullRedraw() {
	v.fullRedraw = true
}

// TakeFullRedraw reports whether a full redraw was requested and clears the
// request.
func (v *Viewport) TakeFullRedraw() bool {
	full := v.fullRedraw
	v.fullRedraw = false
	return full
}

// Contains reports whether (row, displayCol) is inside the window.
func (v *Viewport) Contains(row, displayCol int) bool {
	return row >= v.rowOffset && row < v.rowOffset+v.rows &&
		displayCol >= v.colOffset && displayCol < v.colOffset+v.cols
}

// ContainsSpan reports whether every column of a width-cell glyph at
// (row, displayCol) is inside the window. Width is clamped to [1, Cols].
func (v *Viewport) ContainsSpan(row, displayCol, width int) bool {
	last := displayCol + min(max(width, 1), v.cols) - 1
	return v.Contains(row, displayCol) && last < v.colOffset+v.cols
}

// IsLineVisible returns true if the buffer line is within the viewport.
func (v *Viewport) IsLineVisible(row int) bool {
	return row >= v.rowOffset && row < v.rowOffset+v.rows
}

// LineToScreenRow converts a buffer line to a screen row.
// Returns -1 if the line is not visible.
func (v *Viewport) LineToScreenRow(row int) int {
	if !v.IsLineVisible(row) {
		return -1
	}
	return row - v.rowOffset
}

// ScreenRowToLine converts a screen row to a buffer line.
func (v *Viewport) ScreenRowToLine(screenRow int) int {
	return v.rowOffset + screenRow
}

// BufferToScreen converts a buffer line and display column to screen
// coordinates. The result may lie outside the window.
func (v *Viewport) BufferToScreen(row, displayCol int) (screenRow, screenCol int) {
	return row - v.rowOffset, displayCol - v.colOffset
}
