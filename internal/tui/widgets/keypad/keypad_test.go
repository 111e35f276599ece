package keypad

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"calcpad/internal/engine"
	"calcpad/internal/tui/util"
)

func TestLayoutShape(t *testing.T) {
	l := Layout()
	lens := RowLens(l)
	want := []int{4, 4, 4, 4, 3}
	for i := range want {
		if lens[i] != want[i] {
			t.Fatalf("row %d: got %d buttons, want %d", i, lens[i], want[i])
		}
	}
	if Width(l) != 4*CellWidth+3*ColGap {
		t.Fatalf("unexpected keypad width %d", Width(l))
	}
}

func TestLayoutTokens(t *testing.T) {
	l := Layout()
	cases := map[string]engine.Token{
		"Clear all":     engine.ClearAll(),
		"Clear entry":   engine.ClearEntry(),
		"Backspace":     engine.Backspace(),
		"Divide":        engine.OperatorToken(engine.OpDivide),
		"Five":          engine.Digit('5'),
		"Zero":          engine.Digit('0'),
		"Decimal point": engine.Decimal(),
		"Equals":        engine.Equals(),
	}
	for name, tok := range cases {
		r, c, ok := Find(l, name)
		if !ok || l[r][c].Token != tok {
			t.Fatalf("%s: expected token %v", name, tok)
		}
	}
	if _, _, ok := Find(l, "Percent"); ok {
		t.Fatalf("unexpected button")
	}
}

func TestHitTestRoundTrip(t *testing.T) {
	l := Layout()
	for r := range l {
		for c := range l[r] {
			x, y := CellOrigin(l, r, c)
			gr, gc, ok := HitTest(l, x+1, y+1)
			if !ok || gr != r || gc != c {
				t.Fatalf("hit at (%d,%d) should select %d,%d, got %d,%d,%v", x+1, y+1, r, c, gr, gc, ok)
			}
		}
	}
}

func TestHitTestZeroSpansTwoColumns(t *testing.T) {
	l := Layout()
	_, y := CellOrigin(l, 4, 0)
	r, c, ok := HitTest(l, CellWidth+ColGap+2, y)
	if !ok || l[r][c].Name != "Zero" {
		t.Fatalf("second column of the last row should still be Zero")
	}
}

func TestHitTestMisses(t *testing.T) {
	l := Layout()
	// left edge, column gap, row gap, right of the keypad, below it
	misses := [][2]int{
		{-1, 0},
		{CellWidth, 0},
		{0, CellHeight},
		{Width(l) + 3, 0},
		{0, 5 * (CellHeight + RowGap)},
	}
	for _, p := range misses {
		if _, _, ok := HitTest(l, p[0], p[1]); ok {
			t.Fatalf("expected miss at %v", p)
		}
	}
}

func TestViewGeometry(t *testing.T) {
	l := Layout()
	out := View(l, 1, 2, util.LightPalette(), true)
	if h := lipgloss.Height(out); h != 5*CellHeight+4*RowGap {
		t.Fatalf("unexpected keypad height %d", h)
	}
	if w := lipgloss.Width(out); w != Width(l) {
		t.Fatalf("unexpected keypad width %d", w)
	}
	for _, label := range []string{"[C]", "[CE]", "[÷]", "[7]", "[0]", "[=]"} {
		if !strings.Contains(out, label) {
			t.Fatalf("missing %s in keypad", label)
		}
	}
}
