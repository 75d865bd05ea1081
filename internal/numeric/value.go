package numeric

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Value is either a finite number or Missing. The zero value is Missing.
type Value struct {
	f  float64
	ok bool
}

// Of returns a numeric Value. Non-finite input yields Missing.
func Of(f float64) Value {
	return FromFloat(f)
}

// FromFloat maps NaN and ±Inf to Missing and everything else to a numeric Value.
func FromFloat(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Value{}
	}
	return Value{f: f, ok: true}
}

// Missing returns the missing Value.
func Missing() Value {
	return Value{}
}

// Float returns the number and whether it is present.
func (v Value) Float() (float64, bool) {
	return v.f, v.ok
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool { return !v.ok }

// OrZero returns the number, or 0 when missing.
func (v Value) OrZero() float64 {
	if !v.ok {
		return 0
	}
	return v.f
}

// MarshalJSON encodes Missing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	return json.Marshal(v.f)
}

// decimalLiteral matches plain decimal numbers such as "12", "-3.5", ".5" or "1e3".
// Hex, underscores, "inf" and "nan" are deliberately rejected.
var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Coerce converts a cell to a Value. Numbers pass through, numeric-looking text
// parses, and everything else (blank, "indefinite", "$ 2500 per ton") is Missing.
// Coerce never fails.
func Coerce(c Cell) Value {
	switch c.kind {
	case cellNumber:
		return FromFloat(c.num)
	case cellText:
		return parseText(c.text)
	default:
		return Value{}
	}
}

// parseText parses trimmed decimal text.
func parseText(s string) Value {
	s = strings.TrimSpace(s)
	if !decimalLiteral.MatchString(s) {
		return Value{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Value{}
	}
	return FromFloat(f)
}

// Sum coerces every cell and adds the present values. Missing cells count as 0.
func Sum(cells []Cell) float64 {
	total := 0.0
	for _, c := range cells {
		total += Coerce(c).OrZero()
	}
	return total
}

// IsIndefinite reports whether the cell is the "indefinite" lifespan sentinel,
// ignoring case and surrounding whitespace.
func IsIndefinite(c Cell) bool {
	text, ok := c.Raw()
	if !ok {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(text), "indefinite")
}
