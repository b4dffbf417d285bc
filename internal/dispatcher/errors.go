package dispatcher

import "errors"

// Dispatcher sentinels. Neither is a failure: they ask the caller to act.
var (
	// ErrQuit is returned for the Quit key.
	ErrQuit = errors.New("dispatcher: quit requested")

	// ErrSave is returned for the Save key.
	ErrSave = errors.New("dispatcher: save requested")
)
