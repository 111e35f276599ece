package state

// ToggleTheme switches between Light and Dark and sets a brief notice.
func ToggleTheme(s UIState) UIState {
    if s.Theme == Light {
        s.Theme = Dark
    } else {
        s.Theme = Light
    }
    return SetNotice(s, "Theme: "+s.Theme.String())
}

// ToggleHelp flips the full help overlay.
func ToggleHelp(s UIState) UIState {
    s.ShowHelp = !s.ShowHelp
    return s
}

// Resize records the terminal size.
func Resize(s UIState, width, height int) UIState {
    s.Width = width
    s.Height = height
    return s
}

// MoveCursor moves keypad focus by dRow/dCol over a grid whose rows hold
// rowLens[i] buttons. Focus stops at the edges; moving between rows of
// different length clamps the column.
func MoveCursor(s UIState, dRow, dCol int, rowLens []int) UIState {
    if len(rowLens) == 0 {
        return s
    }
    s.Row = clamp(s.Row+dRow, 0, len(rowLens)-1)
    s.Col = clamp(s.Col+dCol, 0, rowLens[s.Row]-1)
    return s
}

// Focus puts keypad focus on an exact cell, e.g. after a click.
func Focus(s UIState, row, col int, rowLens []int) UIState {
    s.Row, s.Col = 0, 0
    return MoveCursor(s, row, col, rowLens)
}

// SetNotice shows msg and bumps NoticeSeq so older delayed clears are ignored.
func SetNotice(s UIState, msg string) UIState {
    s.Notice = msg
    s.NoticeSeq++
    return s
}

// ClearNotice drops the notice if seq still identifies it.
func ClearNotice(s UIState, seq int) UIState {
    if seq == s.NoticeSeq {
        s.Notice = ""
    }
    return s
}

func clamp(v, lo, hi int) int {
    if hi < lo {
        return lo
    }
    if v < lo {
        return lo
    }
    if v > hi {
        return hi
    }
    return v
}
