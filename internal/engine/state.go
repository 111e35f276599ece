package engine

import (
	"math"
	"strings"
)

// ErrorKind classifies the self-healing error states.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrDivisionByZero
	ErrOverflow
	ErrGeneric
)

// Message is the text shown in place of the number while the error is active.
func (k ErrorKind) Message() string {
	switch k {
	case ErrDivisionByZero:
		return "Cannot divide by zero"
	case ErrOverflow:
		return "Overflow"
	case ErrGeneric:
		return "Error"
	default:
		return ""
	}
}

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrDivisionByZero:
		return "division-by-zero"
	case ErrOverflow:
		return "overflow"
	default:
		return "generic"
	}
}

// State is the whole calculator state. It is a value: every transition
// returns a new State and never mutates the receiver.
//
// Decimal tracking is derived from Text, and the error flag from Err, so
// the two can never disagree with what is on screen.
type State struct {
	Text   string    // entry text, result, or error message
	Acc    float64   // committed operand, meaningful when HasAcc
	HasAcc bool      // an operand is committed
	Op     Operator  // pending operator
	Fresh  bool      // next digit or decimal starts a new entry
	Err    ErrorKind // ErrNone outside the error state
}

// Initial returns the state a session starts in.
func Initial() State {
	return State{Text: "0"}
}

func (s State) IsError() bool { return s.Err != ErrNone }

// HasDecimalPoint reports whether the entry already holds a '.'.
func (s State) HasDecimalPoint() bool {
	return !s.IsError() && strings.Contains(s.Text, ".")
}

// DecimalPlaces counts the digits after the decimal point.
func (s State) DecimalPlaces() int {
	if !s.HasDecimalPoint() {
		return 0
	}
	_, frac, _ := strings.Cut(s.Text, ".")
	n := 0
	for i := 0; i < len(frac); i++ {
		if frac[i] >= '0' && frac[i] <= '9' {
			n++
		}
	}
	return n
}

// digitCount is the entry length excluding the decimal point.
func (s State) digitCount() int {
	return len(s.Text) - strings.Count(s.Text, ".")
}

// Apply routes a token to its transition.
func (s State) Apply(t Token) State {
	switch t.Kind {
	case KindDigit:
		return s.InputDigit(t.Digit)
	case KindDecimal:
		return s.InputDecimal()
	case KindOperator:
		return s.InputOperator(t.Op)
	case KindEquals:
		next, _ := s.Calculate()
		return next
	case KindClearAll:
		return s.ClearAll()
	case KindClearEntry:
		return s.ClearEntry()
	case KindBackspace:
		return s.Backspace()
	default:
		return s
	}
}

// InputDigit appends or starts an entry. A digit past MaxDigits is dropped.
func (s State) InputDigit(d byte) State {
	if d < '0' || d > '9' {
		return s
	}
	if s.IsError() {
		s = s.ClearAll()
	}
	switch {
	case s.Fresh:
		s.Text = string(d)
		s.Fresh = false
	case s.Text == "0":
		s.Text = string(d)
	case s.digitCount() < MaxDigits:
		s.Text += string(d)
	}
	return s
}

// InputDecimal adds the decimal point once per entry. A leading point
// becomes "0.".
func (s State) InputDecimal() State {
	if s.IsError() {
		s = s.ClearAll()
	}
	switch {
	case s.Fresh:
		s.Text = "0."
		s.Fresh = false
	case !s.HasDecimalPoint() && s.digitCount() < MaxDigits:
		s.Text += "."
	}
	return s
}

// InputOperator commits the entry and sets op as the pending operator.
// A pending operator with a typed operand is resolved first, so chains
// evaluate strictly left to right. Pressing operators back to back only
// swaps the pending one.
func (s State) InputOperator(op Operator) State {
	if s.IsError() || op == OpNone {
		return s
	}
	switch {
	case s.HasAcc && s.Op != OpNone && s.Fresh:
		// last operator wins
	case s.HasAcc && s.Op != OpNone:
		r, kind := s.evaluate()
		if kind != ErrNone {
			return s.fail(kind)
		}
		s.Text = FormatResult(r)
		s.Acc = r
	default:
		v, ok := parseNumber(s.Text)
		if !ok {
			return s.fail(ErrGeneric)
		}
		s.Acc, s.HasAcc = v, true
	}
	s.Op = op
	s.Fresh = true
	return s
}

// Calculate resolves the pending operation. ok is false when nothing was
// computed: no-op cases and failures alike.
func (s State) Calculate() (next State, ok bool) {
	if s.IsError() || s.Op == OpNone || !s.HasAcc {
		return s, false
	}
	r, kind := s.evaluate()
	if kind != ErrNone {
		return s.fail(kind), false
	}
	s.Text = FormatResult(r)
	s.Acc, s.HasAcc = 0, false
	s.Op = OpNone
	s.Fresh = true
	return s, true
}

// evaluate computes Acc Op Text with float64 semantics.
func (s State) evaluate() (float64, ErrorKind) {
	cur, ok := parseNumber(s.Text)
	if !ok {
		return 0, ErrGeneric
	}
	var r float64
	switch s.Op {
	case OpAdd:
		r = s.Acc + cur
	case OpSubtract:
		r = s.Acc - cur
	case OpMultiply:
		r = s.Acc * cur
	case OpDivide:
		if cur == 0 {
			return 0, ErrDivisionByZero
		}
		r = s.Acc / cur
	default:
		return 0, ErrGeneric
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, ErrOverflow
	}
	return r, ErrNone
}

// ClearAll returns to the initial state.
func (s State) ClearAll() State {
	return Initial()
}

// ClearEntry zeroes the entry but keeps the running operation. From the
// error state it also leaves the error.
func (s State) ClearEntry() State {
	s.Text = "0"
	s.Err = ErrNone
	return s
}

// Backspace drops the last character; the floor is "0".
func (s State) Backspace() State {
	if s.IsError() {
		return s.ClearAll()
	}
	if len(s.Text) <= 1 {
		s.Text = "0"
		return s
	}
	s.Text = s.Text[:len(s.Text)-1]
	if s.Text == "-" {
		s.Text = "0"
	}
	return s
}

// Expire is the timed auto-clear. Outside the error state it does nothing.
func (s State) Expire() State {
	if !s.IsError() {
		return s
	}
	return s.ClearAll()
}

// fail enters the error state with kind, leaving operand and operator as
// they were.
func (s State) fail(kind ErrorKind) State {
	s.Err = kind
	s.Text = kind.Message()
	return s
}
