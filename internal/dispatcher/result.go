package dispatcher

// Status indicates the outcome of a dispatched event.
type Status uint8

const (
	// StatusOK indicates the event was applied.
	StatusOK Status = iota
	// StatusNoOp indicates the event had no effect, e.g. Backspace at (0,0).
	StatusNoOp
	// StatusIgnored indicates the event is not bound to anything.
	StatusIgnored
	// StatusRejected indicates the buffer refused the edit (release mode).
	StatusRejected
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusIgnored:
		return "ignored"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Result describes what a dispatch did.
type Result struct {
	Status Status

	// Edited is true when the buffer content changed.
	Edited bool
}

func applied(edited bool) Result {
	return Result{Status: StatusOK, Edited: edited}
}

func noOp() Result {
	return Result{Status: StatusNoOp}
}
