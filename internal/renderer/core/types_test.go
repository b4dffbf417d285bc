package core

import "testing"

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{' ', 1},
		{'\x01', 0},
		{0x7F, 0},
		{'日', 2},
		{'é', 1},
	}

	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestStringWidth(t *testing.T) {
	if got := StringWidth("Moca Editor"); got != 11 {
		t.Errorf("StringWidth ascii = %d", got)
	}
	if got := StringWidth("日本"); got != 4 {
		t.Errorf("StringWidth wide = %d", got)
	}
}

func TestNextTabStop(t *testing.T) {
	tests := []struct {
		col, stop, want int
	}{
		{0, 8, 8},
		{7, 8, 8},
		{8, 8, 16},
		{3, 4, 4},
		{3, 0, 4},
	}
	for _, tt := range tests {
		if got := NextTabStop(tt.col, tt.stop); got != tt.want {
			t.Errorf("NextTabStop(%d,%d) = %d, want %d", tt.col, tt.stop, got, tt.want)
		}
	}
}

func TestDisplayColumn(t *testing.T) {
	tests := []struct {
		name string
		line string
		col  int
		want int
	}{
		{"ascii", "hello", 3, 3},
		{"end", "hello", 5, 5},
		{"tab at start", "\tx", 1, 4},
		{"tab after text", "ab\tx", 3, 4},
		{"wide", "日本x", 2, 4},
		{"past end", "ab", 9, 2},
		{"combining mark", "e\u0301x", 2, 1},
		{"leading combining mark", "\u0301x", 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayColumn([]rune(tt.line), tt.col, 4); got != tt.want {
				t.Errorf("DisplayColumn = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestLayoutLine(t *testing.T) {
	cells := LayoutLine([]rune("a\t日\x01"), 4)

	// a + 3 spaces + wide + continuation + ?
	if len(cells) != 7 {
		t.Fatalf("expected 7 cells, got %d", len(cells))
	}
	if cells[0].Rune != 'a' {
		t.Errorf("cell 0 = %q", cells[0].Rune)
	}
	for i := 1; i < 4; i++ {
		if !cells[i].IsBlank() {
			t.Errorf("cell %d should be blank", i)
		}
	}
	if cells[4].Rune != '日' || cells[4].Width != 2 {
		t.Errorf("cell 4 = %+v", cells[4])
	}
	if !cells[5].IsContinuation() {
		t.Error("cell 5 should be a continuation")
	}
	if cells[6].Rune != '?' {
		t.Errorf("control char should render as '?', got %q", cells[6].Rune)
	}
}

func TestLayoutMatchesDisplayColumn(t *testing.T) {
	for _, s := range []string{"x\t日本\tend", "cafe\u0301 ok", "日\u0301\u0302x", "\u0301a\x01"} {
		line := []rune(s)
		cells := LayoutLine(line, 8)
		if got := DisplayColumn(line, len(line), 8); got != len(cells) {
			t.Errorf("%q: DisplayColumn at end = %d, layout width = %d", s, got, len(cells))
		}
	}
}

func TestLayoutLineCombining(t *testing.T) {
	cells := LayoutLine([]rune("e\u0301日\u0302"), 4)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d: %+v", len(cells), cells)
	}
	if got := cells[0].Text(); got != "e\u0301" {
		t.Errorf("cell 0 = %q, want e with acute", got)
	}
	if got := cells[1].Combining(); len(got) != 1 || got[0] != '\u0302' {
		t.Errorf("wide cell combining = %q", got)
	}
	if !cells[2].IsContinuation() {
		t.Error("cell 2 should be a continuation")
	}
	if NewCell('x').Combining() != nil {
		t.Error("plain cell has combining marks")
	}

	// Nothing precedes a mark at column 0.
	if lead := LayoutLine([]rune("\u0301"), 4); len(lead) != 1 || lead[0].Rune != '?' {
		t.Errorf("leading mark = %+v, want '?'", lead)
	}
}

func TestCellPredicates(t *testing.T) {
	if !EmptyCell().IsBlank() {
		t.Error("empty cell should be blank")
	}
	if (Cell{Rune: ' ', Comb: "\u0301", Width: 1}).IsBlank() {
		t.Error("space carrying a mark is not blank")
	}
	if NewStyledCell(' ', DefaultStyle().Reverse()).IsBlank() {
		t.Error("styled space is not blank")
	}
	if !ContinuationCell().IsContinuation() {
		t.Error("continuation cell should report as such")
	}
	if NewCell('\x01').Width != 1 {
		t.Error("cells always occupy at least one column")
	}
}

func TestAttribute(t *testing.T) {
	a := AttrNone.With(AttrBold)
	if !a.Has(AttrBold) || a.Has(AttrReverse) {
		t.Errorf("unexpected attributes %b", a)
	}
	s := DefaultStyle().Reverse().Bold()
	if !s.Attributes.Has(AttrReverse) || !s.Attributes.Has(AttrBold) || s.IsDefault() {
		t.Errorf("unexpected style %+v", s)
	}
}

func TestInstructionString(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{SetCell(1, 2, NewCell('x')), "SetCell(1,2,'x')"},
		{ClearLine(3), "ClearLine(3)"},
		{MoveCursor(4, 5), "MoveCursor(4,5)"},
		{HideCursor(), "HideCursor"},
		{ShowCursor(), "ShowCursor"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCount(t *testing.T) {
	seq := []Instruction{HideCursor(), SetCell(0, 0, NewCell('a')), SetCell(0, 1, NewCell('b')), ShowCursor()}
	if Count(seq, OpSetCell) != 2 || Count(seq, OpClearLine) != 0 {
		t.Error("unexpected counts")
	}
}
