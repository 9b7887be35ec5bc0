package billing

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	onePercent = decimal.New(1, -2)
	half       = decimal.New(5, -1)
)

// Bounds on accepted numeric input; anything beyond them is malformed.
const (
	maxNumericLen    = 64
	maxIntegerDigits = 30
	maxFractionScale = 30
)

// Coerce parses s as a decimal number. Empty, non-numeric, partially numeric
// or out-of-range input (more than 30 integer digits or 30 decimal places)
// yields zero; it never fails.
func Coerce(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > maxNumericLen {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsZero() || !inRange(d) {
		return decimal.Zero
	}
	return d
}

func inRange(d decimal.Decimal) bool {
	exp := int64(d.Exponent())
	if exp < -maxFractionScale {
		return false
	}
	return int64(d.NumDigits())+exp <= maxIntegerDigits
}

// coerceJSON decodes a JSON number, a numeric string or anything else (null,
// bool, object, garbage) into a decimal, using zero for the latter.
func coerceJSON(raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return decimal.Zero
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero
		}
		return Coerce(s)
	}
	return Coerce(string(raw))
}

// stringJSON returns the JSON string in raw, or "" for any other value.
func stringJSON(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// percentOf returns p percent of x, exactly.
func percentOf(x, p decimal.Decimal) decimal.Decimal {
	return x.Mul(p).Mul(onePercent)
}

// roundHalfUp rounds to the nearest integer, with halves going towards
// positive infinity (-2.5 rounds to -2).
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Add(half).Floor()
}
