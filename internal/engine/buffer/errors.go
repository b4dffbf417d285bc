package buffer

import (
	"errors"
	"fmt"
)

// Errors returned by buffer operations.
var (
	// ErrOutOfBounds indicates a row or column outside the buffer.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrNoOp indicates the operation had nothing to do. It is not a failure.
	ErrNoOp = errors.New("no-op")

	// ErrInvalidChar indicates an attempt to insert a line break as a character.
	ErrInvalidChar = errors.New("invalid character")
)

// PositionError records the operation and position that produced an error.
type PositionError struct {
	Op  string
	Row int
	Col int
	Err error
}

func (e *PositionError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s at %d:%d: %v", e.Op, e.Row, e.Col, e.Err)
}

func (e *PositionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func posErr(op string, row, col int, err error) error {
	return &PositionError{Op: op, Row: row, Col: col, Err: err}
}

// IsNoOp reports whether err signals a successful no-op.
func IsNoOp(err error) bool {
	return errors.Is(err, ErrNoOp)
}
