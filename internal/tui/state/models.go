package state

// Theme is the display color scheme.
type Theme int

const (
    Light Theme = iota
    Dark
)

func (t Theme) String() string {
    if t == Dark {
        return "dark"
    }
    return "light"
}

// ParseTheme maps a stored theme name; anything unknown is Light.
func ParseTheme(s string) Theme {
    if s == "dark" {
        return Dark
    }
    return Light
}

// UIState holds presentation state that lives outside the engine.
type UIState struct {
    Theme Theme

    // Keypad focus
    Row int
    Col int

    // Layout
    Width  int
    Height int

    ShowHelp bool

    // Notices and ephemeral messages; NoticeSeq identifies the notice a
    // delayed clear belongs to.
    Notice    string
    NoticeSeq int
}
