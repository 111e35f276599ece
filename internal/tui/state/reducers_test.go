package state

import "testing"

var grid = []int{4, 4, 4, 4, 3}

func TestToggleThemeSetsNotice(t *testing.T) {
    s := UIState{Theme: Light}
    s = ToggleTheme(s)
    if s.Theme != Dark || s.Notice == "" { t.Fatalf("expected Dark theme and notice") }
    s = ToggleTheme(s)
    if s.Theme != Light { t.Fatalf("expected Light theme") }
}

func TestParseTheme(t *testing.T) {
    if ParseTheme("dark") != Dark || ParseTheme("light") != Light || ParseTheme("") != Light {
        t.Fatalf("unexpected theme parse")
    }
    if Dark.String() != "dark" || Light.String() != "light" { t.Fatalf("unexpected theme names") }
}

func TestToggleHelp(t *testing.T) {
    s := ToggleHelp(UIState{})
    if !s.ShowHelp { t.Fatalf("expected ShowHelp to be true") }
}

func TestMoveCursorClamps(t *testing.T) {
    s := MoveCursor(UIState{}, -1, -1, grid)
    if s.Row != 0 || s.Col != 0 { t.Fatalf("expected focus to stay at origin, got %d,%d", s.Row, s.Col) }
    s = MoveCursor(UIState{Row: 3, Col: 3}, 1, 0, grid) // last row has 3 buttons
    if s.Row != 4 || s.Col != 2 { t.Fatalf("expected clamp to 4,2, got %d,%d", s.Row, s.Col) }
    s = MoveCursor(s, 5, 5, grid)
    if s.Row != 4 || s.Col != 2 { t.Fatalf("expected focus pinned at last cell, got %d,%d", s.Row, s.Col) }
    if got := MoveCursor(s, 1, 1, nil); got != s { t.Fatalf("empty grid should be a no-op") }
}

func TestFocus(t *testing.T) {
    s := Focus(UIState{Row: 2, Col: 1}, 4, 1, grid)
    if s.Row != 4 || s.Col != 1 { t.Fatalf("expected focus 4,1, got %d,%d", s.Row, s.Col) }
}

func TestNoticeSequence(t *testing.T) {
    s := SetNotice(UIState{}, "Copied 8")
    first := s.NoticeSeq
    s = SetNotice(s, "Theme: dark")
    s = ClearNotice(s, first) // stale clear
    if s.Notice != "Theme: dark" { t.Fatalf("stale clear removed the current notice") }
    s = ClearNotice(s, s.NoticeSeq)
    if s.Notice != "" { t.Fatalf("expected notice cleared") }
}

func TestResize(t *testing.T) {
    s := Resize(UIState{}, 80, 24)
    if s.Width != 80 || s.Height != 24 { t.Fatalf("unexpected size %dx%d", s.Width, s.Height) }
}
