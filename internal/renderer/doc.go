// Package renderer provides the render engine of the Moca editor.
//
// The renderer is responsible for:
//   - Laying buffer lines out into screen cells (tab expansion, wide runes)
//   - Filler rows past the end of the buffer and the welcome splash
//   - The status line
//   - Diffing each frame against the previous one so only changed cells are
//     written
//
// Render returns draw instructions and never fails. Content instructions are
// bracketed by HideCursor and the final MoveCursor/ShowCursor so the cursor
// does not flicker while a frame is written.
//
// Usage:
//
//	r := renderer.New(renderer.DefaultOptions())
//	vp := viewport.New(r.TextRows(24), 80)
//	instrs := r.Render(buf, vp, cur)
//	backend.Apply(instrs)
package renderer
