package key

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Control bytes with a fixed meaning.
const (
	byteEsc       = 0x1b
	byteDel       = 0x7f
	byteBackspace = 0x08
	byteTab       = 0x09
	byteLF        = 0x0a
	byteCR        = 0x0d
)

// Decoder reads key events from a raw terminal byte stream.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	if br, ok := r.(*bufio.Reader); ok {
		return &Decoder{r: br}
	}
	return &Decoder{r: bufio.NewReader(r)}
}

// Next blocks until a full key press has been read.
// It returns the reader's error (io.EOF at end of input) when no key could
// be read.
func (d *Decoder) Next() (Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return Event{}, err
	}

	switch {
	case b == byteEsc:
		return d.escape()
	case b == byteCR || b == byteLF:
		return NewSpecialEvent(KeyEnter, ModNone), nil
	case b == byteDel || b == byteBackspace:
		return NewSpecialEvent(KeyBackspace, ModNone), nil
	case b == byteTab:
		return NewSpecialEvent(KeyTab, ModNone), nil
	case b >= 0x01 && b <= 0x1a:
		return CtrlEvent(rune('a' + b - 1)), nil
	case b < 0x20:
		return NewSpecialEvent(KeyUnknown, ModNone), nil
	case b < utf8.RuneSelf:
		return NewRuneEvent(rune(b), ModNone), nil
	}

	if err := d.r.UnreadByte(); err != nil {
		return Event{}, err
	}
	r, size, err := d.r.ReadRune()
	if err != nil {
		return Event{}, err
	}
	if r == utf8.RuneError && size == 1 {
		return NewSpecialEvent(KeyUnknown, ModNone), nil
	}
	return NewRuneEvent(r, ModNone), nil
}

// escape decodes what follows an ESC byte. A lone ESC, with nothing else
// already read from the terminal, is the Escape key.
func (d *Decoder) escape() (Event, error) {
	if d.r.Buffered() == 0 {
		return NewSpecialEvent(KeyEscape, ModNone), nil
	}

	b, err := d.r.ReadByte()
	if err != nil {
		return NewSpecialEvent(KeyEscape, ModNone), nil
	}
	switch b {
	case '[':
		return d.csi()
	case 'O':
		return d.ss3()
	case byteEsc:
		_ = d.r.UnreadByte()
		return NewSpecialEvent(KeyEscape, ModNone), nil
	}

	// ESC followed by a key is Alt+key.
	if err := d.r.UnreadByte(); err != nil {
		return Event{}, err
	}
	ev, err := d.Next()
	if err != nil {
		return NewSpecialEvent(KeyEscape, ModNone), nil
	}
	ev.Modifiers = ev.Modifiers.With(ModAlt)
	return ev, nil
}

// csi decodes a control sequence after "ESC [": parameter bytes followed by
// a final byte, e.g. "A", "3~" or "1;5C".
func (d *Decoder) csi() (Event, error) {
	var params strings.Builder
	for {
		b, err := d.r.ReadByte()
		if err != nil {
			return NewSpecialEvent(KeyUnknown, ModNone), nil
		}
		if b >= 0x30 && b <= 0x3f {
			params.WriteByte(b)
			continue
		}
		if b < 0x40 || b > 0x7e {
			// Malformed; drop it.
			return NewSpecialEvent(KeyUnknown, ModNone), nil
		}
		return csiEvent(params.String(), b), nil
	}
}

func csiEvent(params string, final byte) Event {
	fields := strings.Split(params, ";")
	mods := ModNone
	if len(fields) > 1 {
		mods = xtermModifiers(fields[1])
	}

	var k Key
	switch final {
	case 'A':
		k = KeyUp
	case 'B':
		k = KeyDown
	case 'C':
		k = KeyRight
	case 'D':
		k = KeyLeft
	case 'H':
		k = KeyHome
	case 'F':
		k = KeyEnd
	case '~':
		k = tildeKey(fields[0])
	default:
		k = KeyUnknown
	}
	if k == KeyUnknown {
		mods = ModNone
	}
	return NewSpecialEvent(k, mods)
}

// tildeKey maps the numeric parameter of "ESC [ n ~".
func tildeKey(n string) Key {
	switch n {
	case "1", "7":
		return KeyHome
	case "3":
		return KeyDelete
	case "4", "8":
		return KeyEnd
	case "5":
		return KeyPageUp
	case "6":
		return KeyPageDown
	default:
		return KeyUnknown
	}
}

// xtermModifiers decodes the modifier parameter of "ESC [ 1 ; m X":
// m-1 is a bit mask of Shift=1, Alt=2, Ctrl=4.
func xtermModifiers(p string) Modifier {
	n, err := strconv.Atoi(p)
	if err != nil || n < 2 {
		return ModNone
	}
	n--
	var mods Modifier
	if n&1 != 0 {
		mods = mods.With(ModShift)
	}
	if n&2 != 0 {
		mods = mods.With(ModAlt)
	}
	if n&4 != 0 {
		mods = mods.With(ModCtrl)
	}
	return mods
}

// ss3 decodes "ESC O x", sent for cursor keys in application mode.
func (d *Decoder) ss3() (Event, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return NewSpecialEvent(KeyUnknown, ModNone), nil
	}
	switch b {
	case 'A', 'B', 'C', 'D', 'H', 'F':
		return csiEvent("", b), nil
	default:
		return NewSpecialEvent(KeyUnknown, ModNone), nil
	}
}
