package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/moca/internal/input/key"
	"github.com/dshills/moca/internal/renderer/core"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex

	// Cursor placement is deferred until ShowCursor.
	cursorRow, cursorCol int

	events   chan Event
	done     chan struct{}
	stopOnce sync.Once
}

// NewTerminal creates a terminal backend on the controlling TTY.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal backend on an existing screen,
// e.g. a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		events: make(chan Event, 64),
		done:   make(chan struct{}),
	}
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(tcell.StyleDefault)
	t.screen.Clear()

	go t.poll()
	return nil
}

// poll forwards tcell events until the screen is finalized.
func (t *Terminal) poll() {
	defer close(t.events)
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		out, ok := convertEvent(ev)
		if !ok {
			continue
		}
		select {
		case t.events <- out:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) Shutdown() {
	t.stopOnce.Do(func() {
		close(t.done)
		t.mu.Lock()
		defer t.mu.Unlock()
		t.screen.Fini()
	})
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) Events() <-chan Event {
	return t.events
}

func (t *Terminal) Apply(instructions []core.Instruction) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, in := range instructions {
		switch in.Op {
		case core.OpSetCell:
			t.screen.SetContent(in.Col, in.Row, in.Cell.Rune, in.Cell.Combining(), convertStyle(in.Cell.Style))
		case core.OpClearLine:
			width, _ := t.screen.Size()
			for x := 0; x < width; x++ {
				t.screen.SetContent(x, in.Row, ' ', nil, tcell.StyleDefault)
			}
		case core.OpMoveCursor:
			t.cursorRow, t.cursorCol = in.Row, in.Col
		case core.OpHideCursor:
			t.screen.HideCursor()
		case core.OpShowCursor:
			t.screen.ShowCursor(t.cursorCol, t.cursorRow)
		}
	}
	t.screen.Show()
	return nil
}

// convertStyle converts our Style to tcell.Style.
func convertStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}

	return style
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return Event{Type: EventKey, Key: convertKey(e)}, true

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventError:
		return Event{Type: EventError, Err: e}, true

	default:
		return Event{}, false
	}
}

// convertKey converts a tcell key event to our key.Event.
// tcell aliases Backspace, Tab and Enter onto Ctrl+H, Ctrl+I and Ctrl+M, so
// the named keys are matched before the Ctrl range.
func convertKey(e *tcell.EventKey) key.Event {
	mods := convertMod(e.Modifiers())
	k := e.Key()

	switch {
	case k == tcell.KeyRune:
		// Shift is part of the character.
		m := mods &^ key.ModShift
		if m.Has(key.ModCtrl) {
			return key.CtrlEvent(e.Rune())
		}
		return key.NewRuneEvent(e.Rune(), m)
	case k == tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, key.ModNone)
	case k == tcell.KeyTab:
		return key.NewSpecialEvent(key.KeyTab, key.ModNone)
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, key.ModNone)
	case k == tcell.KeyEscape:
		return key.NewSpecialEvent(key.KeyEscape, key.ModNone)
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return key.CtrlEvent(rune('a' + (k - tcell.KeyCtrlA)))
	}

	if special, ok := specialKeys[k]; ok {
		return key.NewSpecialEvent(special, mods)
	}
	return key.NewSpecialEvent(key.KeyUnknown, key.ModNone)
}

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyDelete: key.KeyDelete,
	tcell.KeyHome:   key.KeyHome,
	tcell.KeyEnd:    key.KeyEnd,
	tcell.KeyPgUp:   key.KeyPageUp,
	tcell.KeyPgDn:   key.KeyPageDown,
	tcell.KeyUp:     key.KeyUp,
	tcell.KeyDown:   key.KeyDown,
	tcell.KeyLeft:   key.KeyLeft,
	tcell.KeyRight:  key.KeyRight,
}

// convertMod converts tcell modifier mask to our Modifier.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&(tcell.ModAlt|tcell.ModMeta) != 0 {
		result = result.With(key.ModAlt)
	}
	return result
}
