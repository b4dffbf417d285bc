package buffer

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	if !b.IsEmpty() {
		t.Error("new buffer should be empty")
	}

	if b.LineCount() != 1 {
		t.Errorf("expected 1 line, got %d", b.LineCount())
	}

	if b.Modified() {
		t.Error("new buffer should not be modified")
	}
}

func TestSplitLinesAndDetect(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines []string
		le    LineEnding
	}{
		{"empty", "", []string{""}, LineEndingLF},
		{"single", "hello", []string{"hello"}, LineEndingLF},
		{"trailing newline", "a\nb\n", []string{"a", "b"}, LineEndingLF},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}, LineEndingCRLF},
		{"cr", "a\rb", []string{"a", "b"}, LineEndingCR},
		{"blank lines", "\n\n", []string{"", ""}, LineEndingLF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(WithLines(SplitLines(tt.text)))
			if got := b.Lines(); !reflect.DeepEqual(got, tt.lines) {
				t.Errorf("Lines() = %q, want %q", got, tt.lines)
			}
			if le := DetectLineEnding(tt.text); le != tt.le {
				t.Errorf("DetectLineEnding() = %v, want %v", le, tt.le)
			}
		})
	}
}

func TestBufferLoadDumpRoundTrip(t *testing.T) {
	inputs := [][]string{
		{""},
		{"abc"},
		{"abc", "", "def"},
		{"", "", ""},
		{"héllo", "wörld", "日本語"},
		{"\ttab", "trailing  "},
	}

	for _, in := range inputs {
		b := NewBuffer()
		b.Load(in)
		if got := b.Lines(); !reflect.DeepEqual(got, in) {
			t.Errorf("round trip of %q gave %q", in, got)
		}
	}
}

func TestBufferLoadEmpty(t *testing.T) {
	b := NewBuffer(WithLines([]string{"x"}))
	b.Load(nil)

	if b.LineCount() != 1 || b.LineLength(0) != 0 {
		t.Errorf("loading nothing should leave one empty line, got %q", b.Lines())
	}
}

func TestBufferLoadSplitsEmbeddedNewlines(t *testing.T) {
	b := NewBuffer()
	b.Load([]string{"a\nb", "c\r"})

	want := []string{"a", "b", "c"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestBufferLoadNeverStoresCarriageReturn(t *testing.T) {
	b := NewBuffer()
	b.Load([]string{"a\r", "b\rc", "d\r\ne", ""})

	want := []string{"a", "b", "c", "d", "e", ""}
	got := b.Lines()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Lines() = %q, want %q", got, want)
	}
	for i, l := range got {
		if strings.ContainsAny(l, "\r\n") {
			t.Errorf("line %d = %q holds a line break", i, l)
		}
	}

	// Clean lines survive a second load unchanged.
	b.Load(got)
	if again := b.Lines(); !reflect.DeepEqual(again, want) {
		t.Errorf("reload = %q, want %q", again, want)
	}
}

func TestBufferInsertChar(t *testing.T) {
	b := NewBuffer(WithLines([]string{"ac"}))

	if err := b.InsertChar(0, 1, 'b'); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := b.InsertChar(0, 3, 'd'); err != nil {
		t.Fatalf("insert at end failed: %v", err)
	}
	if err := b.InsertChar(0, 0, '_'); err != nil {
		t.Fatalf("insert at start failed: %v", err)
	}

	if got := b.LineString(0); got != "_abcd" {
		t.Errorf("expected '_abcd', got %q", got)
	}
	if !b.Modified() {
		t.Error("buffer should be modified after insert")
	}
}

func TestBufferInsertCharMultibyte(t *testing.T) {
	b := NewBuffer(WithLines([]string{"日語"}))

	if err := b.InsertChar(0, 1, '本'); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if got := b.LineString(0); got != "日本語" {
		t.Errorf("expected '日本語', got %q", got)
	}
	if b.LineLength(0) != 3 {
		t.Errorf("expected rune length 3, got %d", b.LineLength(0))
	}
}

func TestBufferInsertCharErrors(t *testing.T) {
	b := NewBuffer(WithLines([]string{"abc"}))

	tests := []struct {
		name string
		row  int
		col  int
		ch   rune
		want error
	}{
		{"negative row", -1, 0, 'x', ErrOutOfBounds},
		{"row past end", 1, 0, 'x', ErrOutOfBounds},
		{"negative col", 0, -1, 'x', ErrOutOfBounds},
		{"col past end", 0, 4, 'x', ErrOutOfBounds},
		{"newline", 0, 0, '\n', ErrInvalidChar},
		{"carriage return", 0, 0, '\r', ErrInvalidChar},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := b.InsertChar(tt.row, tt.col, tt.ch)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			var pe *PositionError
			if !errors.As(err, &pe) || pe.Op != "insert" {
				t.Errorf("expected insert PositionError, got %T", err)
			}
		})
	}

	if b.LineString(0) != "abc" || b.Modified() {
		t.Error("failed inserts must not change the buffer")
	}
}

func TestBufferDeleteChar(t *testing.T) {
	b := NewBuffer(WithLines([]string{"abcd"}))

	if err := b.DeleteChar(0, 4); err != nil {
		t.Fatalf("delete at end failed: %v", err)
	}
	if err := b.DeleteChar(0, 1); err != nil {
		t.Fatalf("delete at start failed: %v", err)
	}

	if got := b.LineString(0); got != "bc" {
		t.Errorf("expected 'bc', got %q", got)
	}
}

func TestBufferDeleteCharNoOp(t *testing.T) {
	b := NewBuffer(WithLines([]string{"ab", "cd"}))

	if err := b.DeleteChar(0, 0); !IsNoOp(err) {
		t.Errorf("delete at buffer start should be a no-op, got %v", err)
	}
	if err := b.DeleteChar(1, 0); !IsNoOp(err) {
		t.Errorf("delete at line start should be a no-op, got %v", err)
	}
	if b.Modified() {
		t.Error("no-op must not modify the buffer")
	}
}

func TestBufferDeleteCharOutOfBounds(t *testing.T) {
	b := NewBuffer(WithLines([]string{"ab"}))

	for _, pos := range []Point{{0, 3}, {1, 0}, {-1, 1}} {
		if err := b.DeleteChar(pos.Row, pos.Col); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("DeleteChar%v: expected ErrOutOfBounds, got %v", pos, err)
		}
	}
}

func TestBufferSplitLine(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		row  int
		col  int
		want []string
	}{
		{"at end", []string{"abc"}, 0, 3, []string{"abc", ""}},
		{"at start", []string{"abc"}, 0, 0, []string{"", "abc"}},
		{"middle", []string{"abcd"}, 0, 2, []string{"ab", "cd"}},
		{"middle row", []string{"x", "abcd", "y"}, 1, 1, []string{"x", "a", "bcd", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuffer(WithLines(tt.in))
			if err := b.SplitLine(tt.row, tt.col); err != nil {
				t.Fatalf("split failed: %v", err)
			}
			if got := b.Lines(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBufferSplitLineIndependentLines(t *testing.T) {
	b := NewBuffer(WithLines([]string{"abcd"}))
	if err := b.SplitLine(0, 2); err != nil {
		t.Fatal(err)
	}

	// Growing the prefix must not clobber the suffix line.
	if err := b.InsertChar(0, 2, 'X'); err != nil {
		t.Fatal(err)
	}
	want := []string{"abX", "cd"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}
}

func TestBufferJoinLine(t *testing.T) {
	b := NewBuffer(WithLines([]string{"ab", "cd", "ef"}))

	if err := b.JoinLine(0); err != nil {
		t.Fatalf("join failed: %v", err)
	}
	want := []string{"abcd", "ef"}
	if got := b.Lines(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lines() = %q, want %q", got, want)
	}

	if err := b.JoinLine(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("join of last line: expected ErrOutOfBounds, got %v", err)
	}
	if err := b.JoinLine(-1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("join of negative row: expected ErrOutOfBounds, got %v", err)
	}
}

func TestBufferLineAccessors(t *testing.T) {
	b := NewBuffer(WithLines([]string{"héllo"}))

	if b.LineLength(0) != 5 {
		t.Errorf("expected length 5, got %d", b.LineLength(0))
	}
	if b.LineLength(3) != 0 {
		t.Error("invalid row should have length 0")
	}
	if b.Line(3) != nil {
		t.Error("invalid row should return nil")
	}
	if r, ok := b.RuneAt(0, 1); !ok || r != 'é' {
		t.Errorf("RuneAt(0,1) = %q,%v", r, ok)
	}
	if _, ok := b.RuneAt(0, 5); ok {
		t.Error("RuneAt past end should fail")
	}

	line := b.Line(0)
	line[0] = 'X'
	if b.LineString(0) != "héllo" {
		t.Error("Line must return a copy")
	}
}

func TestBufferVersionAndSaved(t *testing.T) {
	b := NewBuffer()
	v := b.Version()

	_ = b.InsertChar(0, 0, 'a')
	if b.Version() == v {
		t.Error("version should change after a mutation")
	}
	if !b.Modified() {
		t.Error("expected modified")
	}

	b.MarkSaved()
	if b.Modified() {
		t.Error("expected unmodified after MarkSaved")
	}

	v = b.Version()
	_ = b.DeleteChar(0, 0)
	if b.Version() != v {
		t.Error("no-op must not change the version")
	}
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text string
		want LineEnding
	}{
		{"", LineEndingLF},
		{"a\nb", LineEndingLF},
		{"a\r\nb\r\n", LineEndingCRLF},
		{"a\rb\r", LineEndingCR},
		{"a\nb\nc\r\n", LineEndingLF},
	}

	for _, tt := range tests {
		if got := DetectLineEnding(tt.text); got != tt.want {
			t.Errorf("DetectLineEnding(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestBufferNeverEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	b := NewBuffer()

	for i := 0; i < 5000; i++ {
		row := rng.Intn(b.LineCount())
		col := rng.Intn(b.LineLength(row) + 1)

		switch rng.Intn(4) {
		case 0:
			_ = b.InsertChar(row, col, rune('a'+rng.Intn(26)))
		case 1:
			_ = b.DeleteChar(row, col)
		case 2:
			_ = b.SplitLine(row, col)
		case 3:
			_ = b.JoinLine(row)
		}

		if b.LineCount() < 1 {
			t.Fatalf("line count dropped below 1 after %d operations", i)
		}
	}
}

func TestPointString(t *testing.T) {
	if got := (Point{Row: 1, Col: 2}).String(); got != "(1:2)" {
		t.Errorf("String() = %q", got)
	}
}
