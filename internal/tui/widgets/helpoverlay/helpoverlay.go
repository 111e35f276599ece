package helpoverlay

import (
    "github.com/charmbracelet/bubbles/help"

    "calcpad/internal/tui/state"
)

type HelpOverlay struct {
    model help.Model
}

func NewHelpOverlay() HelpOverlay { return HelpOverlay{model: help.New()} }

// SetWidth bounds the rendered help; zero means unbounded.
func (h HelpOverlay) SetWidth(w int) HelpOverlay {
    h.model.Width = w
    return h
}

// View returns the grouped help when ShowHelp is set and the one-line
// summary otherwise.
func (h HelpOverlay) View(s state.UIState, km help.KeyMap) string {
    m := h.model
    m.ShowAll = s.ShowHelp
    if !s.ShowHelp {
        return m.View(km)
    }
    return "Keys\n\n" + m.View(km)
}
