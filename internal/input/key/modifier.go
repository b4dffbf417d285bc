package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt
)

// Has reports whether m includes any bit of mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m plus mod.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// String renders the set in Ctrl, Alt, Shift order joined by "+".
func (m Modifier) String() string {
	names := make([]string, 0, 3)
	for _, n := range []struct {
		mod  Modifier
		name string
	}{{ModCtrl, "Ctrl"}, {ModAlt, "Alt"}, {ModShift, "Shift"}} {
		if m.Has(n.mod) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "+")
}

// ModifierFromName maps a modifier name or its one-letter form (as used in
// "<C-s>") to a Modifier. Unknown names give ModNone.
func ModifierFromName(name string) Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ctrl", "control", "c":
		return ModCtrl
	case "alt", "meta", "option", "a", "m":
		return ModAlt
	case "shift", "s":
		return ModShift
	default:
		return ModNone
	}
}
