package key

import "fmt"

// Default chords for the logical keys.
const (
	DefaultQuit = "Ctrl+Q"
	DefaultSave = "Ctrl+S"
)

// Bindings maps physical chords to the logical keys KeyQuit and KeySave.
type Bindings struct {
	Quit Event
	Save Event
}

// DefaultBindings returns Ctrl+Q for quit and Ctrl+S for save.
func DefaultBindings() Bindings {
	return Bindings{
		Quit: MustParse(DefaultQuit),
		Save: MustParse(DefaultSave),
	}
}

// NewBindings parses quit and save chord specifications.
// An empty specification keeps the default.
func NewBindings(quit, save string) (Bindings, error) {
	b := DefaultBindings()
	if quit != "" {
		ev, err := Parse(quit)
		if err != nil {
			return b, fmt.Errorf("quit binding: %w", err)
		}
		b.Quit = ev
	}
	if save != "" {
		ev, err := Parse(save)
		if err != nil {
			return b, fmt.Errorf("save binding: %w", err)
		}
		b.Save = ev
	}
	if b.Quit.Equals(b.Save) {
		return DefaultBindings(), fmt.Errorf("%w: quit and save both bound to %s", ErrInvalidSpec, b.Quit)
	}
	return b, nil
}

// Resolve returns the logical key event for ev, or ev unchanged when it is
// not bound.
func (b Bindings) Resolve(ev Event) Event {
	switch {
	case ev.Equals(b.Quit):
		return NewSpecialEvent(KeyQuit, ModNone)
	case ev.Equals(b.Save):
		return NewSpecialEvent(KeySave, ModNone)
	default:
		return ev
	}
}
