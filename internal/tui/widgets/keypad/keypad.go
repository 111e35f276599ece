package keypad

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"calcpad/internal/engine"
	"calcpad/internal/tui/util"
)

// Kind groups buttons for styling.
type Kind int

const (
	Number Kind = iota
	Operator
	Function
	Equals
)

// Button is one keypad cell. Span is the number of grid columns it covers.
type Button struct {
	Label string
	Name  string // spoken name, also used by tests to find buttons
	Kind  Kind
	Token engine.Token
	Span  int
}

// Cell geometry in terminal cells.
const (
	CellWidth  = 7
	CellHeight = 3
	ColGap     = 1
	RowGap     = 1
)

// Layout returns the 5x4 keypad; the last row spans 0 over two columns.
func Layout() [][]Button {
	num := func(d byte, name string) Button {
		return Button{Label: string(d), Name: name, Kind: Number, Token: engine.Digit(d), Span: 1}
	}
	op := func(o engine.Operator, name string) Button {
		return Button{Label: o.Symbol(), Name: name, Kind: Operator, Token: engine.OperatorToken(o), Span: 1}
	}
	fn := func(label, name string, t engine.Token) Button {
		return Button{Label: label, Name: name, Kind: Function, Token: t, Span: 1}
	}
	return [][]Button{
		{fn("C", "Clear all", engine.ClearAll()), fn("CE", "Clear entry", engine.ClearEntry()), fn("⌫", "Backspace", engine.Backspace()), op(engine.OpDivide, "Divide")},
		{num('7', "Seven"), num('8', "Eight"), num('9', "Nine"), op(engine.OpMultiply, "Multiply")},
		{num('4', "Four"), num('5', "Five"), num('6', "Six"), op(engine.OpSubtract, "Subtract")},
		{num('1', "One"), num('2', "Two"), num('3', "Three"), op(engine.OpAdd, "Add")},
		{
			{Label: "0", Name: "Zero", Kind: Number, Token: engine.Digit('0'), Span: 2},
			fn(".", "Decimal point", engine.Decimal()),
			{Label: "=", Name: "Equals", Kind: Equals, Token: engine.Equals(), Span: 1},
		},
	}
}

// RowLens reports how many buttons each row holds.
func RowLens(layout [][]Button) []int {
	out := make([]int, len(layout))
	for i, row := range layout {
		out[i] = len(row)
	}
	return out
}

// Find returns the position of the button with the given name.
func Find(layout [][]Button, name string) (row, col int, ok bool) {
	for r, buttons := range layout {
		for c, b := range buttons {
			if b.Name == name {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Width is the rendered width of the widest row.
func Width(layout [][]Button) int {
	w := 0
	for r := range layout {
		x, _ := CellOrigin(layout, r, len(layout[r]))
		if end := x - ColGap; end > w {
			w = end
		}
	}
	return w
}

func buttonWidth(b Button) int {
	span := b.Span
	if span < 1 {
		span = 1
	}
	return span*CellWidth + (span-1)*ColGap
}

// CellOrigin is the top-left corner of a button relative to the keypad.
// col == len(row) yields the position just past the last button.
func CellOrigin(layout [][]Button, row, col int) (x, y int) {
	y = row * (CellHeight + RowGap)
	for c := 0; c < col && c < len(layout[row]); c++ {
		x += buttonWidth(layout[row][c]) + ColGap
	}
	return x, y
}

// HitTest maps a point relative to the keypad origin onto a button.
func HitTest(layout [][]Button, x, y int) (row, col int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	row = y / (CellHeight + RowGap)
	if row >= len(layout) || y%(CellHeight+RowGap) >= CellHeight {
		return 0, 0, false
	}
	for c, b := range layout[row] {
		cx, _ := CellOrigin(layout, row, c)
		if x >= cx && x < cx+buttonWidth(b) {
			return row, c, true
		}
	}
	return 0, 0, false
}

// View renders the keypad with focus on (focusRow, focusCol).
func View(layout [][]Button, focusRow, focusCol int, pal util.Palette, noColor bool) string {
	rows := make([]string, 0, len(layout)*2)
	for r, buttons := range layout {
		cells := make([]string, 0, len(buttons)*2)
		for c, b := range buttons {
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", ColGap))
			}
			cells = append(cells, renderButton(b, r == focusRow && c == focusCol, pal, noColor))
		}
		if r > 0 {
			for i := 0; i < RowGap; i++ {
				rows = append(rows, "")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderButton(b Button, focused bool, pal util.Palette, noColor bool) string {
	style := lipgloss.NewStyle().
		Width(buttonWidth(b)).
		Height(CellHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Bold(b.Kind != Number)
	if noColor {
		label := "[" + b.Label + "]"
		if focused {
			return style.Reverse(true).Render(label)
		}
		return style.Render(label)
	}
	bg, fg := pal.Number, pal.Text
	switch b.Kind {
	case Operator:
		bg, fg = pal.Operator, pal.OnAccent
	case Function:
		bg = pal.Function
	case Equals:
		bg, fg = pal.Equals, pal.OnAccent
	}
	if focused {
		bg, fg = pal.Focus, lipgloss.Color("#111111")
	}
	return style.Background(bg).Foreground(fg).Render(b.Label)
}
