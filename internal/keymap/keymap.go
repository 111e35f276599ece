// Package keymap maps host key names onto engine tokens.
//
// Key names are the strings bubbletea reports from KeyMsg.String()
// ("enter", "esc", "backspace", "+", "7"), so the TUI and the key-stream
// parser share one table.
package keymap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"calcpad/internal/engine"
)

// Token returns the engine token for a key name.
func Token(name string) (engine.Token, bool) {
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return engine.Digit(name[0]), true
	}
	switch name {
	case ".":
		return engine.Decimal(), true
	case "+":
		return engine.OperatorToken(engine.OpAdd), true
	case "-":
		return engine.OperatorToken(engine.OpSubtract), true
	case "*":
		return engine.OperatorToken(engine.OpMultiply), true
	case "/":
		return engine.OperatorToken(engine.OpDivide), true
	case "enter", "=":
		return engine.Equals(), true
	case "esc":
		return engine.ClearAll(), true
	case "backspace", "delete":
		return engine.Backspace(), true
	case "ctrl+e":
		return engine.ClearEntry(), true
	}
	return engine.Token{}, false
}

// named are the brace-wrapped keys accepted by ParseKeys.
var named = map[string]string{
	"enter":      "enter",
	"escape":     "esc",
	"esc":        "esc",
	"backspace":  "backspace",
	"delete":     "delete",
	"del":        "delete",
	"clearentry": "ctrl+e",
}

// ParseKeys splits a key stream like "3.14{Backspace}+2{Enter}" into key
// names. Single characters stand for themselves; {Name} spells a named
// key (case-insensitive). Whitespace between keys is ignored.
func ParseKeys(s string) ([]string, error) {
	var out []string
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			continue
		case c == '{':
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unterminated key name at offset %d", i)
			}
			raw := s[i+1 : i+end]
			name, ok := named[strings.ToLower(raw)]
			if !ok {
				return nil, fmt.Errorf("unknown key {%s}", raw)
			}
			out = append(out, name)
			i += end
		default:
			out = append(out, string(c))
		}
	}
	return out, nil
}

// Tokens parses a key stream and keeps the keys that map to tokens.
// Keys without a mapping are skipped, like a calculator ignores letters.
func Tokens(s string) ([]engine.Token, error) {
	keys, err := ParseKeys(s)
	if err != nil {
		return nil, err
	}
	toks := make([]engine.Token, 0, len(keys))
	for _, k := range keys {
		if t, ok := Token(k); ok {
			toks = append(toks, t)
		}
	}
	return toks, nil
}

// Bindings are the TUI's key bindings. Token keys are grouped for help
// display; the matching itself goes through Token.
type Bindings struct {
	Digits     key.Binding
	Operators  key.Binding
	Decimal    key.Binding
	Equals     key.Binding
	Clear      key.Binding
	Backspace  key.Binding
	Navigate   key.Binding
	Press      key.Binding
	ClearEntry key.Binding
	Theme      key.Binding
	Copy       key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// Default returns the standard bindings.
func Default() Bindings {
	return Bindings{
		Digits:     key.NewBinding(key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("0-9", "digits")),
		Operators:  key.NewBinding(key.WithKeys("+", "-", "*", "/"), key.WithHelp("+ - * /", "operators")),
		Decimal:    key.NewBinding(key.WithKeys("."), key.WithHelp(".", "decimal")),
		Equals:     key.NewBinding(key.WithKeys("enter", "="), key.WithHelp("enter/=", "equals")),
		Clear:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear all")),
		Backspace:  key.NewBinding(key.WithKeys("backspace", "delete"), key.WithHelp("⌫/del", "backspace")),
		Navigate:   key.NewBinding(key.WithKeys("up", "down", "left", "right"), key.WithHelp("←↑↓→", "move")),
		Press:      key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "press button")),
		ClearEntry: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "clear entry")),
		Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (b Bindings) ShortHelp() []key.Binding {
	return []key.Binding{b.Equals, b.Clear, b.Theme, b.Copy, b.Help, b.Quit}
}

// FullHelp implements help.KeyMap.
func (b Bindings) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.Digits, b.Decimal, b.Operators, b.Equals},
		{b.Clear, b.ClearEntry, b.Backspace},
		{b.Navigate, b.Press},
		{b.Theme, b.Copy, b.Help, b.Quit},
	}
}
