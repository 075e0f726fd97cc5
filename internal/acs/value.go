package acs

import (
	"strconv"
	"strings"
)

// Value is a numeric attribute coerced from untrusted text. ACS estimate
// columns carry suppression annotations ("(X)", "-", "**", "N") alongside
// plain numbers; anything that fails to parse becomes an invalid Value
// rather than an error.
type Value struct {
	Float float64
	Valid bool
}

// ParseValue coerces an ACS cell to a Value. Thousands separators and a
// leading dollar sign are tolerated; negative estimates and annotation
// flags come back invalid.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	// ACS uses trailing +/- on jam values like "250,000+".
	s = strings.TrimRight(s, "+-")
	if s == "" {
		return Value{}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return Value{}
	}
	return Value{Float: f, Valid: true}
}

// FloatOr returns the parsed float, or def when the value is missing.
func (v Value) FloatOr(def float64) float64 {
	if !v.Valid {
		return def
	}
	return v.Float
}
