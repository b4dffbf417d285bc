package cursor

import (
	"testing"

	"github.com/dshills/moca/internal/engine/buffer"
)

func newBuf(lines ...string) *buffer.Buffer {
	return buffer.NewBuffer(buffer.WithLines(lines))
}

func TestNewCursorNegative(t *testing.T) {
	c := New(-5, -2)
	if c.Row() != 0 || c.Col() != 0 {
		t.Errorf("negative position should clamp to origin, got %v", c)
	}
}

func TestCursorMoveLeftStopsAtStart(t *testing.T) {
	buf := newBuf("hello")
	c := New(0, 5)

	for i := 0; i < 6; i++ {
		c = c.Move(buf, Left, 1)
	}

	if c.Point() != (Point{Row: 0, Col: 0}) {
		t.Errorf("expected (0:0), got %v", c.Point())
	}

	c = New(0, 5).Move(buf, Left, 100)
	if c.Point() != (Point{Row: 0, Col: 0}) {
		t.Errorf("large amount: expected (0:0), got %v", c.Point())
	}
}

func TestCursorMove(t *testing.T) {
	buf := newBuf("abc", "de", "", "fghij")

	tests := []struct {
		name   string
		start  Point
		dir    Direction
		amount int
		want   Point
	}{
		{"left within line", Point{Row: 0, Col: 2}, Left, 1, Point{Row: 0, Col: 1}},
		{"left wraps to previous line end", Point{Row: 1, Col: 0}, Left, 1, Point{Row: 0, Col: 3}},
		{"right within line", Point{Row: 0, Col: 0}, Right, 2, Point{Row: 0, Col: 2}},
		{"right wraps to next line", Point{Row: 0, Col: 3}, Right, 1, Point{Row: 1, Col: 0}},
		{"right across empty line", Point{Row: 1, Col: 2}, Right, 2, Point{Row: 3, Col: 0}},
		{"right stops at buffer end", Point{Row: 3, Col: 5}, Right, 3, Point{Row: 3, Col: 5}},
		{"down clamps column", Point{Row: 0, Col: 3}, Down, 1, Point{Row: 1, Col: 2}},
		{"down onto empty line", Point{Row: 1, Col: 2}, Down, 1, Point{Row: 2, Col: 0}},
		{"down stops at last line", Point{Row: 2, Col: 0}, Down, 10, Point{Row: 3, Col: 0}},
		{"up stops at first line", Point{Row: 1, Col: 1}, Up, 5, Point{Row: 0, Col: 1}},
		{"up clamps column", Point{Row: 3, Col: 4}, Up, 1, Point{Row: 2, Col: 0}},
		{"zero amount", Point{Row: 1, Col: 1}, Up, 0, Point{Row: 1, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.start.Row, tt.start.Col).Move(buf, tt.dir, tt.amount)
			if c.Point() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, c.Point())
			}
			if !c.Valid(buf) {
				t.Errorf("cursor %v violates invariant", c)
			}
		})
	}
}

func TestCursorClampTo(t *testing.T) {
	buf := newBuf("abc", "d")

	tests := []struct {
		name  string
		start Cursor
		want  Point
	}{
		{"valid", New(0, 2), Point{Row: 0, Col: 2}},
		{"col past end", New(1, 9), Point{Row: 1, Col: 1}},
		{"row past end", New(7, 2), Point{Row: 1, Col: 1}},
		{"end of line", New(0, 3), Point{Row: 0, Col: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once := tt.start.ClampTo(buf)
			twice := once.ClampTo(buf)
			if once.Point() != tt.want {
				t.Errorf("expected %v, got %v", tt.want, once.Point())
			}
			if !once.Equals(twice) {
				t.Errorf("ClampTo not idempotent: %v then %v", once, twice)
			}
		})
	}
}

func TestCursorClampAfterShorteningEdit(t *testing.T) {
	buf := newBuf("abcdef")
	c := New(0, 6)

	_ = buf.DeleteChar(0, 6)
	_ = buf.DeleteChar(0, 5)

	c = c.ClampTo(buf)
	if c.Col() != 4 {
		t.Errorf("expected col 4 after shortening, got %d", c.Col())
	}
}

func TestCursorHomeEnd(t *testing.T) {
	buf := newBuf("abc", "hello")
	c := New(1, 2)

	if got := c.Home().Point(); got != (Point{Row: 1, Col: 0}) {
		t.Errorf("Home() = %v", got)
	}
	if got := c.End(buf).Point(); got != (Point{Row: 1, Col: 5}) {
		t.Errorf("End() = %v", got)
	}
}

func TestCursorMoveTo(t *testing.T) {
	buf := newBuf("abc")
	c := New(0, 0).MoveTo(buf, 4, 4)
	if c.Point() != (Point{Row: 0, Col: 3}) {
		t.Errorf("MoveTo should clamp, got %v", c.Point())
	}
}

func TestDirectionString(t *testing.T) {
	tests := map[Direction]string{
		Up:           "up",
		Down:         "down",
		Left:         "left",
		Right:        "right",
		Direction(9): "unknown",
	}
	for d, want := range tests {
		if got := d.String(); got != want {
			t.Errorf("Direction(%d).String() = %q, want %q", d, got, want)
		}
	}
}

func TestCursorString(t *testing.T) {
	if got := New(3, 4).String(); got != "Cursor(3:4)" {
		t.Errorf("String() = %q", got)
	}
}
