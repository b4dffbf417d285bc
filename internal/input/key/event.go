package key

import (
	"fmt"
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// CtrlEvent returns the event for Ctrl plus a letter.
func CtrlEvent(letter rune) Event {
	return NewRuneEvent(unicode.ToLower(letter), ModCtrl)
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this event inserts a character: a printable rune
// with no Ctrl or Alt held.
func (e Event) IsChar() bool {
	return e.IsRune() && !e.Modifiers.Has(ModCtrl|ModAlt) && unicode.IsPrint(e.Rune)
}

// String returns a canonical string representation.
// Examples: "a", "Ctrl+S", "Enter", "Alt+Left"
func (e Event) String() string {
	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else if e.Modifiers.Has(ModCtrl) {
			name = strings.ToUpper(string(e.Rune))
		} else {
			name = string(e.Rune)
		}
	default:
		name = e.Key.String()
	}

	mods := e.Modifiers
	if e.IsRune() {
		// Shift is part of the character.
		mods &^= ModShift
	}
	if mods == ModNone {
		return name
	}
	return mods.String() + "+" + name
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// Matches checks if this event matches a key specification string.
func (e Event) Matches(spec string) bool {
	parsed, err := Parse(spec)
	if err != nil {
		return false
	}
	return e.Equals(parsed)
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Key: %s, Rune: %q, Modifiers: %s}",
		e.Key.String(), e.Rune, e.Modifiers.String())
}
