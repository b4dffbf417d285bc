// Package key provides key event types, key specification parsing and
// terminal byte stream decoding.
//
// An Event is a physical key press: a special key or a rune, plus
// modifiers. Bindings resolve configured chords (Ctrl+Q, Ctrl+S by default)
// to the logical keys KeyQuit and KeySave, so the rest of the editor only
// sees a closed set of keys.
//
// # Key Specifications
//
//   - Simple keys: "a", "Enter", "Escape"
//   - With modifiers: "Ctrl+S", "Alt+X"
//   - Vim-style: "<C-s>", "<A-x>", "<CR>", "<Esc>"
//
// # Decoding
//
// Decoder reads raw terminal input (VT100/xterm escape sequences and UTF-8)
// and yields one Event per key press.
package key
