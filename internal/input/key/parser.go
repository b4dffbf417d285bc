package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Special keys: "Enter", "Escape", "Tab", "Backspace", "Space"
//   - With modifiers: "Ctrl+S", "Alt+X", "Ctrl+Shift+Left"
//   - Vim-style: "<C-s>", "<A-x>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	// Vim-style <...> notation
	if len(spec) > 2 && strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseChord(spec[1:len(spec)-1], "-")
	}

	// Modifier+key format (Ctrl+S, Alt+X), but not a bare "+"
	if len(spec) > 1 && strings.Contains(spec, "+") {
		return parseChord(spec, "+")
	}

	return parseSingle(spec)
}

// parseChord parses modifiers and a key joined by sep.
func parseChord(spec, sep string) (Event, error) {
	parts := strings.Split(spec, sep)
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}
	return parseKeyWithModifiers(keyPart, mods)
}

// parseSingle parses a single character or key name
func parseSingle(spec string) (Event, error) {
	if key := KeyFromName(spec); key != KeyNone {
		return NewSpecialEvent(key, ModNone), nil
	}
	if strings.EqualFold(spec, "space") {
		return NewRuneEvent(' ', ModNone), nil
	}

	runes := []rune(spec)
	if len(runes) == 1 {
		r := runes[0]
		var mods Modifier
		// Uppercase letters have implicit Shift
		if unicode.IsUpper(r) {
			mods = ModShift
		}
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseKeyWithModifiers parses a key part with already-known modifiers
func parseKeyWithModifiers(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return NewRuneEvent(' ', mods), nil
	case "lt":
		return NewRuneEvent('<', mods), nil
	case "gt":
		return NewRuneEvent('>', mods), nil
	}

	if key := KeyFromName(keyPart); key != KeyNone {
		return NewSpecialEvent(key, mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) == 1 {
		r := runes[0]
		// Terminals cannot tell Ctrl+S from Ctrl+Shift+S.
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return NewRuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// MustParse parses a key specification and panics on error.
// Use only for known-valid specs in initialization code.
func MustParse(spec string) Event {
	event, err := Parse(spec)
	if err != nil {
		panic("invalid key specification: " + spec + ": " + err.Error())
	}
	return event
}
