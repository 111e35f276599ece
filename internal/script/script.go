// Package script runs key-stream checks against a fresh engine.
//
// A script has one case per line:
//
//	# comment
//	5+3=                 => 8
//	5/0=                 => Cannot divide by zero
//	3.14{Backspace}      => 3.1
//
// The left side is a key stream as accepted by keymap.ParseKeys; the right
// side is the expected primary display text.
package script

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"calcpad/internal/engine"
	"calcpad/internal/keymap"
)

const sep = " => "

// Case is one parsed script line.
type Case struct {
	Line int
	Keys string
	Want string
}

// Result is the outcome of running a Case.
type Result struct {
	Case
	Got  engine.Projection
	Pass bool
}

// Parse reads cases from r.
func Parse(r io.Reader) ([]Case, error) {
	var out []Case
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.LastIndex(line, sep)
		if idx < 0 {
			return nil, fmt.Errorf("line %d: missing %q", n, sep)
		}
		c := Case{
			Line: n,
			Keys: strings.TrimSpace(line[:idx]),
			Want: strings.TrimSpace(line[idx+len(sep):]),
		}
		if _, err := keymap.ParseKeys(c.Keys); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return out, nil
}

// idle never fires: a script runs to completion well inside the error delay.
type idle struct{}

func (idle) Schedule(time.Duration, func()) engine.Task { return idleTask{} }

type idleTask struct{}

func (idleTask) Cancel() bool { return true }

// Run executes c against a new engine.
func Run(c Case) Result {
	e := engine.New(engine.WithScheduler(idle{}))
	defer e.Close()
	toks, _ := keymap.Tokens(c.Keys)
	p := e.Projection()
	for _, t := range toks {
		p = e.Dispatch(t)
	}
	return Result{Case: c, Got: p, Pass: p.Primary == c.Want}
}

// RunAll executes every case and counts failures.
func RunAll(cases []Case) ([]Result, int) {
	out := make([]Result, 0, len(cases))
	failed := 0
	for _, c := range cases {
		r := Run(c)
		if !r.Pass {
			failed++
		}
		out = append(out, r)
	}
	return out, failed
}
