package display

import (
    "strings"
    "testing"

    "github.com/charmbracelet/lipgloss"

    "calcpad/internal/engine"
    "calcpad/internal/tui/util"
)

func TestViewShowsBothLines(t *testing.T) {
    p := engine.Projection{Primary: "3", Secondary: "12 ×"}
    out := View(p, 31, util.LightPalette(), true)
    lines := strings.Split(out, "\n")
    if len(lines) != 4 {
        t.Fatalf("expected border plus two lines, got %d", len(lines))
    }
    if !strings.Contains(lines[1], "12 ×") || !strings.Contains(lines[2], "3") {
        t.Fatalf("unexpected display:\n%s", out)
    }
    if w := lipgloss.Width(out); w != 31 {
        t.Fatalf("expected width 31, got %d", w)
    }
}

func TestViewRightAligns(t *testing.T) {
    out := View(engine.Projection{Primary: "42"}, 20, util.LightPalette(), true)
    line := strings.Split(out, "\n")[2]
    if !strings.HasSuffix(strings.TrimRight(line, "│ "), "42") {
        t.Fatalf("primary should sit at the right edge: %q", line)
    }
}

func TestViewErrorMessage(t *testing.T) {
    p := engine.Projection{Primary: engine.ErrDivisionByZero.Message(), IsError: true, Err: engine.ErrDivisionByZero}
    out := View(p, 31, util.DarkPalette(), false)
    if !strings.Contains(out, "Cannot divide by zero") {
        t.Fatalf("missing error text:\n%s", out)
    }
}
