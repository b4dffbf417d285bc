// Package app assembles the editor: a Session that owns the buffer, cursor,
// viewport and renderer, the file collaborator that loads and saves it, and
// the event loop that feeds it backend events and config reloads.
package app

import (
	"errors"
	"fmt"
	"strings"
)

// Application errors.
var (
	// ErrQuit signals that the editor should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNoFilePath indicates a save was requested for an unnamed buffer.
	ErrNoFilePath = errors.New("no file path")

	// ErrUnknownBackend indicates the configured backend does not exist.
	ErrUnknownBackend = errors.New("unknown terminal backend")
)

// OperationError records a failed file operation and what it was applied to.
type OperationError struct {
	Op      string // "open", "save", "open log"
	Target  string // usually a path
	Context string // optional detail shown in parentheses
	Err     error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{Op: op, Target: target, Err: err}
}

// WithContext sets the detail text. A nil receiver stays nil.
func (e *OperationError) WithContext(ctx string) *OperationError {
	if e != nil {
		e.Context = ctx
	}
	return e
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Target != "" {
		b.WriteString(" ")
		b.WriteString(e.Target)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, " (%s)", e.Context)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches the same *OperationError or anything the wrapped error matches.
func (e *OperationError) Is(target error) bool {
	if e == nil {
		return false
	}
	if t, ok := target.(*OperationError); ok {
		return e == t
	}
	return errors.Is(e.Err, target)
}

// ComponentError attributes a failure to one part of the editor.
type ComponentError struct {
	Component string // "backend", "config", "dispatcher", "logging"
	Action    string
	Err       error
}

// NewComponentError creates a new ComponentError.
func NewComponentError(component, action string, err error) *ComponentError {
	return &ComponentError{Component: component, Action: action, Err: err}
}

func (e *ComponentError) Error() string {
	if e == nil {
		return ""
	}
	parts := []string{e.Component}
	if e.Action != "" {
		parts = append(parts, e.Action)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ComponentError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecoveredPanicError wraps a panic value as an error.
// Error includes the stack trace; keep it out of the status line.
type RecoveredPanicError struct {
	Value any
	Stack string
}

// NewRecoveredPanicError creates a new RecoveredPanicError.
func NewRecoveredPanicError(value any, stack string) *RecoveredPanicError {
	return &RecoveredPanicError{
		Value: value,
		Stack: stack,
	}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorList collects the errors of a multi-step teardown.
// It is not safe for concurrent use.
type ErrorList struct {
	errs []error
}

// NewErrorList creates an empty ErrorList.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends err unless it is nil.
func (e *ErrorList) Add(err error) {
	if err != nil {
		e.errs = append(e.errs, err)
	}
}

// HasErrors reports whether anything was added.
func (e *ErrorList) HasErrors() bool {
	return e != nil && len(e.errs) > 0
}

// Len returns the number of errors.
func (e *ErrorList) Len() int {
	if e == nil {
		return 0
	}
	return len(e.errs)
}

// Errors returns a copy of the collected errors.
func (e *ErrorList) Errors() []error {
	if !e.HasErrors() {
		return nil
	}
	return append([]error(nil), e.errs...)
}

// Error joins every message with "; ", prefixed by the count when there is
// more than one.
func (e *ErrorList) Error() string {
	if !e.HasErrors() {
		return ""
	}
	if len(e.errs) == 1 {
		return e.errs[0].Error()
	}
	msgs := make([]string, len(e.errs))
	for i, err := range e.errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d errors: %s", len(e.errs), strings.Join(msgs, "; "))
}

// Unwrap returns the collected errors for errors.Is and errors.As.
func (e *ErrorList) Unwrap() []error {
	return e.Errors()
}

// AsError returns nil for an empty list and the list otherwise.
func (e *ErrorList) AsError() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}
