package util

import (
    "os"

    "github.com/charmbracelet/lipgloss"

    "calcpad/internal/tui/state"
)

// NoColor returns true if color output should be disabled.
func NoColor(explicit bool) bool {
    if explicit {
        return true
    }
    return os.Getenv("NO_COLOR") != ""
}

// Palette defines the colors used across widgets for one theme.
type Palette struct {
    Text     lipgloss.Color
    Muted    lipgloss.Color
    Surface  lipgloss.Color
    Number   lipgloss.Color
    Function lipgloss.Color
    Operator lipgloss.Color
    Equals   lipgloss.Color
    OnAccent lipgloss.Color
    Danger   lipgloss.Color
    Focus    lipgloss.Color
    Border   lipgloss.Color
}

// LightPalette returns the light theme palette.
func LightPalette() Palette {
    return Palette{
        Text:     lipgloss.Color("#212529"),
        Muted:    lipgloss.Color("#6C757D"),
        Surface:  lipgloss.Color("#F8F9FA"),
        Number:   lipgloss.Color("#E9ECEF"),
        Function: lipgloss.Color("#CED4DA"),
        Operator: lipgloss.Color("#3D6DFF"),
        Equals:   lipgloss.Color("#2AA876"),
        OnAccent: lipgloss.Color("#FFFFFF"),
        Danger:   lipgloss.Color("#DC3545"),
        Focus:    lipgloss.Color("#F0AD4E"),
        Border:   lipgloss.Color("#ADB5BD"),
    }
}

// DarkPalette returns the dark theme palette.
func DarkPalette() Palette {
    return Palette{
        Text:     lipgloss.Color("#F1F3F5"),
        Muted:    lipgloss.Color("#8E959C"),
        Surface:  lipgloss.Color("#1E1E24"),
        Number:   lipgloss.Color("#343A40"),
        Function: lipgloss.Color("#495057"),
        Operator: lipgloss.Color("#5C8DFF"),
        Equals:   lipgloss.Color("#2FBF88"),
        OnAccent: lipgloss.Color("#FFFFFF"),
        Danger:   lipgloss.Color("#FF6B6B"),
        Focus:    lipgloss.Color("#F0AD4E"),
        Border:   lipgloss.Color("#5A5A5A"),
    }
}

// PaletteFor picks the palette of a theme.
func PaletteFor(t state.Theme) Palette {
    if t == state.Dark {
        return DarkPalette()
    }
    return LightPalette()
}
