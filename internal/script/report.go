package script

import (
    "fmt"
    "io"
    "strings"

    "github.com/charmbracelet/lipgloss"
    dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var (
    passStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
    failStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"}).Bold(true)
    diffDelLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "160", Dark: "203"})
    diffAddLine = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "114"})
    diffDelChar = diffDelLine.Underline(true)
    diffAddChar = diffAddLine.Underline(true)
)

// Report writes one line per result and a diff under every failure.
func Report(w io.Writer, results []Result, noColor bool) {
    failed := 0
    for _, r := range results {
        if r.Pass {
            fmt.Fprintf(w, "%s line %d: %s => %s\n", mark(true, noColor), r.Line, r.Keys, r.Got.Primary)
            continue
        }
        failed++
        fmt.Fprintf(w, "%s line %d: %s\n", mark(false, noColor), r.Line, r.Keys)
        io.WriteString(w, renderDiff(r.Want, r.Got.Primary, noColor))
    }
    fmt.Fprintf(w, "%d passed, %d failed\n", len(results)-failed, failed)
}

func mark(pass, noColor bool) string {
    switch {
    case pass && noColor:
        return "ok  "
    case noColor:
        return "FAIL"
    case pass:
        return passStyle.Render("ok  ")
    default:
        return failStyle.Render("FAIL")
    }
}

// renderDiff shows want and got as a -/+ pair with the differing spans
// marked. Without color the spans are bracketed instead of underlined.
func renderDiff(want, got string, noColor bool) string {
    d := dmp.New()
    diffs := d.DiffMain(want, got, false)
    d.DiffCleanupSemantic(diffs)

    var del, add strings.Builder
    for _, df := range diffs {
        switch df.Type {
        case dmp.DiffDelete:
            del.WriteString(span(df.Text, diffDelChar, noColor))
        case dmp.DiffInsert:
            add.WriteString(span(df.Text, diffAddChar, noColor))
        case dmp.DiffEqual:
            del.WriteString(plain(df.Text, diffDelLine, noColor))
            add.WriteString(plain(df.Text, diffAddLine, noColor))
        }
    }
    var sb strings.Builder
    sb.WriteString("    " + plain("- want ", diffDelLine, noColor) + del.String() + "\n")
    sb.WriteString("    " + plain("+ got  ", diffAddLine, noColor) + add.String() + "\n")
    return sb.String()
}

func span(s string, st lipgloss.Style, noColor bool) string {
    if noColor {
        return "[" + s + "]"
    }
    return st.Render(s)
}

func plain(s string, st lipgloss.Style, noColor bool) string {
    if noColor {
        return s
    }
    return st.Render(s)
}
