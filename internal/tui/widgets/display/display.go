package display

import (
    "github.com/charmbracelet/lipgloss"

    "calcpad/internal/engine"
    "calcpad/internal/tui/util"
)

// View renders the two-line display box: the pending operation above the
// current value, both right-aligned within width (border included).
func View(p engine.Projection, width int, pal util.Palette, noColor bool) string {
    inner := width - 4
    if inner < 1 {
        inner = 1
    }
    secondary := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Faint(true)
    primary := lipgloss.NewStyle().Width(inner).Align(lipgloss.Right).Bold(true)
    box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
    if !noColor {
        secondary = secondary.Foreground(pal.Muted)
        primary = primary.Foreground(pal.Text)
        if p.IsError {
            primary = primary.Foreground(pal.Danger)
        }
        box = box.BorderForeground(pal.Border)
    }
    sec := p.Secondary
    if sec == "" {
        sec = " "
    }
    return box.Render(lipgloss.JoinVertical(lipgloss.Right, secondary.Render(sec), primary.Render(p.Primary)))
}
