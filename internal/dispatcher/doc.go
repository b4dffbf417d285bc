// Package dispatcher turns logical key events into buffer mutations and
// cursor motion.
//
// The editor has a single insert mode. Every event is handled to completion
// before Dispatch returns:
//
//   - Characters and Tab are inserted at the cursor.
//   - Enter splits the line; Backspace deletes left or joins with the line
//     above; Delete removes the rune under the cursor or joins the next line.
//   - Arrows, Home, End, PageUp and PageDown move the cursor.
//   - Quit and Save are reported as the ErrQuit and ErrSave sentinels for the
//     caller to act on.
//   - Anything else is ignored.
//
// # Contract Errors
//
// A buffer call that reports buffer.ErrOutOfBounds means the dispatcher and
// the buffer disagree about the cursor. In strict mode the error is returned
// and should be treated as fatal; otherwise it is logged at warn level, the
// cursor is clamped and editing continues. buffer.ErrNoOp is never an error.
//
// # Usage
//
//	d := dispatcher.New(dispatcher.DefaultConfig().WithStrict(debug))
//	d.SetLogger(logger.WithComponent("dispatcher"))
//
//	cur, result, err := d.Dispatch(buf, cur, ev)
//	switch {
//	case errors.Is(err, dispatcher.ErrQuit):
//	    // leave the event loop
//	case errors.Is(err, dispatcher.ErrSave):
//	    // write the buffer
//	}
package dispatcher
