package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const notANumber = "NaN"

// maxExponent bounds the decimal exponent kept from form text. Values past it
// are replaced by their float64 form so rendering stays short.
const maxExponent = 400

// Number is a numeric form value. Text that does not parse keeps the
// not-a-number state and is still sent to the backend, which owns
// rejecting it.
type Number struct {
	value decimal.Decimal
	valid bool
}

func NewNumber(d decimal.Decimal) Number {
	return Number{value: d, valid: true}
}

// ParseNumber trims raw and parses it. Empty text is not a number, and so is
// anything outside the float64 range.
func ParseNumber(raw string) Number {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Number{}
	}

	f, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return Number{}
	}

	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return Number{}
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		d = decimal.NewFromFloat(f)
	}

	return NewNumber(d)
}

func (n Number) Valid() bool {
	return n.valid
}

func (n Number) Decimal() (decimal.Decimal, bool) {
	return n.value, n.valid
}

// String is the form used in URL path segments.
func (n Number) String() string {
	if !n.valid {
		return notANumber
	}
	return n.value.String()
}

// MarshalJSON writes a bare JSON number, or null when not a number.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.valid {
		return []byte("null"), nil
	}
	return []byte(n.value.String()), nil
}
