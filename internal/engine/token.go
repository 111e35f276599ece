package engine

import "fmt"

// Operator is a pending binary operation. The zero value means none.
type Operator int

const (
	OpNone Operator = iota
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol returns the display glyph used in the secondary line.
func (o Operator) Symbol() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return ""
	}
}

func (o Operator) String() string {
	if s := o.Symbol(); s != "" {
		return s
	}
	return "none"
}

// TokenKind enumerates the discrete inputs the engine accepts.
type TokenKind int

const (
	KindDigit TokenKind = iota
	KindDecimal
	KindOperator
	KindEquals
	KindClearAll
	KindClearEntry
	KindBackspace
)

// Token is one unit of input. Digit is set for KindDigit ('0'..'9'),
// Op for KindOperator.
type Token struct {
	Kind  TokenKind
	Digit byte
	Op    Operator
}

func Digit(d byte) Token { return Token{Kind: KindDigit, Digit: d} }
func Decimal() Token { return Token{Kind: KindDecimal} }
func OperatorToken(op Operator) Token { return Token{Kind: KindOperator, Op: op} }
func Equals() Token { return Token{Kind: KindEquals} }
func ClearAll() Token { return Token{Kind: KindClearAll} }
func ClearEntry() Token { return Token{Kind: KindClearEntry} }
func Backspace() Token { return Token{Kind: KindBackspace} }

func (t Token) String() string {
	switch t.Kind {
	case KindDigit:
		return string(t.Digit)
	case KindDecimal:
		return "."
	case KindOperator:
		return t.Op.String()
	case KindEquals:
		return "="
	case KindClearAll:
		return "C"
	case KindClearEntry:
		return "CE"
	case KindBackspace:
		return "⌫"
	default:
		return fmt.Sprintf("token(%d)", int(t.Kind))
	}
}
