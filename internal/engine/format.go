package engine

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// MaxDigits bounds the significant digits an entry may hold and the width
// results are squeezed into.
const MaxDigits = 12

var (
	expThreshold = math.Pow(10, MaxDigits)
	roundScale   = math.Pow(10, 10)
)

// FormatResult renders a computed value for the display.
//
// Magnitudes at or above 10^MaxDigits use exponent notation with six
// fractional digits. Everything else is rounded to ten decimal places to
// hide binary noise, trailing zeros are dropped, and a string still wider
// than MaxDigits is refitted to the digits left after the integer part.
// Half-way cases follow JavaScript: rounding to an integer breaks ties
// toward +Inf, fixed and exponent digits break exact ties away from zero.
func FormatResult(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "Error"
	}
	if math.Abs(v) >= expThreshold {
		return exponential(v, 6)
	}

	rounded := roundHalfUp(v*roundScale) / roundScale

	out := numberString(rounded)
	if strings.Contains(out, ".") {
		out = trimZeros(out)
	}

	if len(out) > MaxDigits {
		intPart := strconv.FormatFloat(math.Floor(math.Abs(rounded)), 'f', 0, 64)
		if avail := MaxDigits - len(intPart); avail > 0 {
			out = trimZeros(fixed(rounded, avail))
		} else {
			out = strconv.FormatFloat(roundHalfUp(rounded), 'f', 0, 64)
		}
		if out == "-0" {
			out = "0"
		}
	}
	return out
}

// roundHalfUp rounds to the nearest integer with ties toward +Inf, and
// never returns -0.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	if r == 0 {
		return 0
	}
	return r
}

// fixed formats v with places fractional digits. strconv breaks exact
// binary ties to even; those are bumped away from zero instead.
func fixed(v float64, places int) string {
	exact := trimZeros(new(big.Float).SetFloat64(v).Text('f', 1100))
	_, frac, _ := strings.Cut(exact, ".")
	if len(frac) != places+1 || frac[places] != '5' {
		return strconv.FormatFloat(v, 'f', places, 64)
	}
	return bumpLast(strings.TrimSuffix(exact[:len(exact)-1], "."))
}

// exponential formats v as d.ddddde±XX with frac mantissa digits, bumping
// exact ties away from zero.
func exponential(v float64, frac int) string {
	exact := new(big.Float).SetFloat64(v).Text('e', 800)
	mant, expText, _ := strings.Cut(exact, "e")
	mant = strings.TrimRight(mant, "0")
	_, digits, _ := strings.Cut(mant, ".")
	if len(digits) != frac+1 || digits[frac] != '5' {
		return strconv.FormatFloat(v, 'e', frac, 64)
	}
	exp, _ := strconv.Atoi(expText)
	mant = bumpLast(mant[:len(mant)-1])
	sign := ""
	if strings.HasPrefix(mant, "-") {
		sign, mant = "-", mant[1:]
	}
	if strings.HasPrefix(mant, "10") {
		mant = "1." + strings.Repeat("0", frac)
		exp++
	}
	return fmt.Sprintf("%s%se%+03d", sign, mant, exp)
}

// bumpLast adds one unit in the last digit of a decimal string, carrying
// leftwards: "1.29" -> "1.30", "-9.9" -> "-10.0".
func bumpLast(s string) string {
	b := []byte(s)
	for i := len(b) - 1; i >= 0; i-- {
		switch c := b[i]; {
		case c == '.':
			continue
		case c == '9':
			b[i] = '0'
		case c >= '0' && c < '9':
			b[i]++
			return string(b)
		default:
			return string(b[:i+1]) + "1" + string(b[i+1:])
		}
	}
	return "1" + string(b)
}

// numberString is the shortest round-trip text of v. Non-zero magnitudes
// below 1e-6 switch to exponent form, written without exponent padding
// ("1e-7", not "1e-07").
func numberString(v float64) string {
	if v != 0 && math.Abs(v) < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + sign + exp
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// trimZeros strips trailing zeros after a decimal point and then the point
// itself when nothing is left behind it.
func trimZeros(s string) string {
	if !strings.Contains(s, ".") || strings.Contains(s, "e") {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// parseNumber reads entry or result text back into a value.
func parseNumber(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
