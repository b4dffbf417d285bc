// Package buffer provides the line store of the editor: the document text
// held as an ordered sequence of lines.
//
// A Buffer always contains at least one line; an empty document is a single
// empty line. Lines never contain '\n' or '\r'. Columns are measured in
// runes, not bytes, so a column may equal the line length to address the
// position after the last character.
//
// Basic usage:
//
//	buf := buffer.NewBuffer()
//	_ = buf.InsertChar(0, 0, 'h')
//	_ = buf.InsertChar(0, 1, 'i')
//	_ = buf.SplitLine(0, 2)       // ["hi", ""]
//	_ = buf.JoinLine(0)           // ["hi"]
//
// Errors:
//
// Operations that receive a position outside the buffer fail with an error
// matching ErrOutOfBounds. These indicate a caller contract violation, never a
// user mistake. DeleteChar at the start of a line reports ErrNoOp, which the
// caller should treat as success.
//
// Thread Safety:
//
// A Buffer is owned by a single editor session and is not safe for concurrent
// mutation.
package buffer
