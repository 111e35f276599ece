// Copyright
// SPDX-License-Identifier: MIT
// calcpad: terminal calculator with a keypad TUI and a scriptable key-stream evaluator
package main

import (
    "encoding/json"
    "flag"
    "fmt"
    "io"
    "log/slog"
    "os"
    "strings"

    "calcpad/internal/config"
    "calcpad/internal/engine"
    "calcpad/internal/keymap"
    "calcpad/internal/logging"
    "calcpad/internal/script"
    "calcpad/internal/tui"
    "calcpad/internal/tui/util"
)

const Version = "v0.1.0"

/* ---------- CLI ---------- */

func main() {
    os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
    if len(args) == 0 {
        return cmdTUI(nil, stderr)
    }
    switch args[0] {
    case "help", "-h", "--help":
        if len(args) > 1 {
            helpTopic(stdout, args[1])
        } else {
            usage(stdout)
        }
    case "version", "--version":
        fmt.Fprintln(stdout, "calcpad", Version)
    case "tui":
        return cmdTUI(args[1:], stderr)
    case "eval":
        return cmdEval(args[1:], stdout, stderr)
    case "check":
        return cmdCheck(args[1:], stdout, stderr)
    case "theme":
        return cmdTheme(args[1:], stdout, stderr)
    default:
        if strings.HasPrefix(args[0], "-") {
            return cmdTUI(args, stderr)
        }
        fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
        usage(stderr)
        return 2
    }
    return 0
}

func usage(w io.Writer) {
    fmt.Fprintln(w, `calcpad `+Version+`
Terminal calculator: a keypad TUI plus a key-stream evaluator for scripting and checks.
USAGE
  calcpad [command] [options]
COMMANDS
  tui          Run the interactive calculator (default)
  eval         Feed keys to a fresh calculator and print the display
  check        Run a script of "keys => expected" lines and report mismatches
  theme        Show or set the saved theme (light|dark|toggle)
  help         Show help (try: calcpad help eval)
  version      Print version
NOTES
  • Keys: digits, . + - * / = and named keys in braces: {Enter} {Esc} {Backspace} {Delete} {ClearEntry}.
  • Errors (such as divide by zero) clear themselves after 2s in the TUI; any key clears them sooner.
  • Use -v or -vv for logs. Use --log-file to append them to a file (the TUI logs only to a file).`)
}

func helpTopic(w io.Writer, name string) {
    switch name {
    case "tui":
        fmt.Fprintln(w, `USAGE
  calcpad tui [--config PATH] [--no-color] [-v | -vv] [--log-file PATH]
DESCRIPTION
  Opens the keypad. Type or click buttons; arrows move the focus and space presses it.
  t toggles the theme (saved to the settings file), y copies the display, ? shows all keys, q quits.
OPTIONS
  --config PATH          Settings file (default: `+config.DefaultPath()+`)
  --no-color             Disable colors (NO_COLOR is honoured too)
  -v                     INFO logs
  -vv                    DEBUG logs
  --log-file PATH        Append logs to file (created if missing)`)
    case "eval":
        fmt.Fprintln(w, `USAGE
  calcpad eval [-json] [-v | -vv] [--log-file PATH] KEYS...
DESCRIPTION
  Joins KEYS with spaces, feeds them to a fresh calculator and prints the display:
  the pending operation (if any) on one line, then the value or error message.
EXAMPLES
  calcpad eval '12*3='            → 36
  calcpad eval 8/0=               → Cannot divide by zero
  calcpad eval -json '5+3{Enter}'`)
    case "check":
        fmt.Fprintln(w, `USAGE
  calcpad check [--no-color] FILE
DESCRIPTION
  Each non-empty line not starting with # is "<keys> => <expected display>".
  Every line runs on a fresh calculator. Mismatches are shown as a diff; exit status is 1 if any fail.`)
    case "theme":
        fmt.Fprintln(w, `USAGE
  calcpad theme [--config PATH] [light|dark|toggle]
DESCRIPTION
  Without an argument prints the saved theme. Otherwise sets it and saves the settings file.`)
    default:
        usage(w)
    }
}

/* ---------- commands ---------- */

type logFlags struct {
    verbose *bool
    debug   *bool
    path    *string
}

func addLogFlags(fs *flag.FlagSet) logFlags {
    return logFlags{
        verbose: fs.Bool("v", false, "Verbose logs (INFO)"),
        debug:   fs.Bool("vv", false, "Debug logs (DEBUG)"),
        path:    fs.String("log-file", "", "Append logs to file (created if missing)"),
    }
}

// open builds the logger. fallback receives logs when no file is given;
// nil discards them.
func (l logFlags) open(fallback io.Writer, stderr io.Writer) (*slog.Logger, func()) {
    level := logging.Level(*l.verbose, *l.debug)
    lf, err := logging.OpenFile(config.ExpandPath(*l.path), Version)
    if err != nil {
        fmt.Fprintln(stderr, "Could not open log file:", err)
    }
    if lf == nil {
        return logging.New(fallback, level), func() {}
    }
    return logging.New(lf, level), func() { _ = lf.Close() }
}

func loadSettings(path string, log *slog.Logger) config.Settings {
    s, err := config.Load(path)
    if err != nil {
        log.Warn("settings unreadable, using defaults", "path", path, "err", err)
    }
    return s
}

func cmdTUI(args []string, stderr io.Writer) int {
    fs := flag.NewFlagSet("tui", flag.ContinueOnError)
    fs.SetOutput(stderr)
    fs.Usage = func() { helpTopic(stderr, "tui") }
    cfgPath := fs.String("config", config.DefaultPath(), "Settings file")
    noColor := fs.Bool("no-color", false, "Disable colors")
    lflags := addLogFlags(fs)
    if err := fs.Parse(args); err != nil {
        return 2
    }

    *cfgPath = config.ExpandPath(*cfgPath)
    log, closeLog := lflags.open(nil, stderr)
    defer closeLog()
    settings := loadSettings(*cfgPath, log)
    log.Info("starting tui", "config", *cfgPath, "theme", settings.Theme)

    err := tui.Run(tui.Options{
        Settings:     settings,
        SettingsPath: *cfgPath,
        Logger:       log,
        NoColor:      *noColor,
    })
    if err != nil {
        fmt.Fprintln(stderr, "tui:", err)
        return 1
    }
    return 0
}

type evalOutput struct {
    Primary   string `json:"primary"`
    Secondary string `json:"secondary,omitempty"`
    Error     string `json:"error,omitempty"`
}

func cmdEval(args []string, stdout, stderr io.Writer) int {
    fs := flag.NewFlagSet("eval", flag.ContinueOnError)
    fs.SetOutput(stderr)
    fs.Usage = func() { helpTopic(stderr, "eval") }
    asJSON := fs.Bool("json", false, "Print the projection as JSON")
    lflags := addLogFlags(fs)
    if err := fs.Parse(args); err != nil {
        return 2
    }
    log, closeLog := lflags.open(stderr, stderr)
    defer closeLog()

    toks, err := keymap.Tokens(strings.Join(fs.Args(), " "))
    if err != nil {
        fmt.Fprintln(stderr, "eval:", err)
        return 2
    }
    eng := engine.New(engine.WithLogger(log))
    defer eng.Close()
    p := eng.Projection()
    for _, t := range toks {
        p = eng.Dispatch(t)
        log.Debug("dispatch", "token", t.String(), "primary", p.Primary, "secondary", p.Secondary)
    }

    if *asJSON {
        out := evalOutput{Primary: p.Primary, Secondary: p.Secondary}
        if p.IsError {
            out.Error = p.Err.String()
        }
        enc := json.NewEncoder(stdout)
        if err := enc.Encode(out); err != nil {
            fmt.Fprintln(stderr, "eval:", err)
            return 1
        }
        return 0
    }
    if p.Secondary != "" {
        fmt.Fprintln(stdout, p.Secondary)
    }
    fmt.Fprintln(stdout, p.Primary)
    return 0
}

func cmdCheck(args []string, stdout, stderr io.Writer) int {
    fs := flag.NewFlagSet("check", flag.ContinueOnError)
    fs.SetOutput(stderr)
    fs.Usage = func() { helpTopic(stderr, "check") }
    noColor := fs.Bool("no-color", false, "Disable colors")
    lflags := addLogFlags(fs)
    if err := fs.Parse(args); err != nil {
        return 2
    }
    if fs.NArg() != 1 {
        helpTopic(stderr, "check")
        return 2
    }
    log, closeLog := lflags.open(stderr, stderr)
    defer closeLog()

    f, err := os.Open(fs.Arg(0))
    if err != nil {
        fmt.Fprintln(stderr, "check:", err)
        return 2
    }
    defer f.Close()
    cases, err := script.Parse(f)
    if err != nil {
        fmt.Fprintln(stderr, "check:", err)
        return 2
    }
    results, failed := script.RunAll(cases)
    log.Info("script finished", "file", fs.Arg(0), "cases", len(cases), "failed", failed)
    script.Report(stdout, results, util.NoColor(*noColor))
    if failed > 0 {
        return 1
    }
    return 0
}

func cmdTheme(args []string, stdout, stderr io.Writer) int {
    fs := flag.NewFlagSet("theme", flag.ContinueOnError)
    fs.SetOutput(stderr)
    fs.Usage = func() { helpTopic(stderr, "theme") }
    cfgPath := fs.String("config", config.DefaultPath(), "Settings file")
    if err := fs.Parse(args); err != nil {
        return 2
    }
    *cfgPath = config.ExpandPath(*cfgPath)
    log := logging.New(stderr, slog.LevelWarn)
    s := loadSettings(*cfgPath, log)

    switch arg := fs.Arg(0); {
    case arg == "":
        fmt.Fprintln(stdout, s.Theme)
        return 0
    case arg == "toggle":
        s = s.ToggleTheme()
    case config.ValidTheme(arg):
        s.Theme = arg
    default:
        fmt.Fprintf(stderr, "theme: unknown theme %q (want light, dark or toggle)\n", arg)
        return 2
    }
    if err := config.Save(*cfgPath, s); err != nil {
        fmt.Fprintln(stderr, "theme:", err)
        return 1
    }
    fmt.Fprintln(stdout, s.Theme)
    return 0
}
