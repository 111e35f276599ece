package statusbar

import (
    "strings"

    "calcpad/internal/tui/state"
)

// Hint is shown while no notice is active.
const Hint = "💡 Use keyboard for faster input"

type StatusBar struct{}

func NewStatusBar() StatusBar { return StatusBar{} }

// View composes the status line: theme indicator then notice or hint.
func (StatusBar) View(s state.UIState) string {
    theme := "☀ light"
    if s.Theme == state.Dark {
        theme = "☾ dark"
    }
    parts := []string{theme}
    if s.Notice != "" {
        parts = append(parts, s.Notice)
    } else {
        parts = append(parts, Hint)
    }
    return strings.Join(parts, "  ")
}
