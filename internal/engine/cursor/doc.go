// Package cursor provides the logical cursor of the editor.
//
// A Cursor is a (row, column) position in the line store, independent of
// screen coordinates. The column counts runes and may equal the line length,
// meaning "after the last character".
//
// Movement policy:
//
//   - Left at column 0 moves to the end of the previous line, if any.
//   - Right at the end of a line moves to the start of the next line, if any.
//   - Up and Down keep the column, clamped to the length of the target line.
//   - Movement stops at the buffer boundaries; it never fails.
//
// Basic usage:
//
//	c := cursor.New(0, 5)
//	c = c.Move(buf, cursor.Left, 6)  // (0:0), never negative
//	c = c.ClampTo(buf)               // call after every edit
//
// Cursor is an immutable value type and safe for concurrent use.
package cursor
