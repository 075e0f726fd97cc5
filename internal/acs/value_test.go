package acs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Value
	}{
		{name: "plain integer", input: "52000", want: Value{Float: 52000, Valid: true}},
		{name: "decimal", input: "12.5", want: Value{Float: 12.5, Valid: true}},
		{name: "thousands separators", input: "1,250,000", want: Value{Float: 1250000, Valid: true}},
		{name: "dollar sign", input: "$52,000", want: Value{Float: 52000, Valid: true}},
		{name: "jam value with trailing plus", input: "250,000+", want: Value{Float: 250000, Valid: true}},
		{name: "empty cell is missing", input: "", want: Value{}},
		{name: "whitespace only is missing", input: "   ", want: Value{}},
		{name: "suppression flag is missing", input: "(X)", want: Value{}},
		{name: "dash annotation is missing", input: "-", want: Value{}},
		{name: "double star annotation is missing", input: "**", want: Value{}},
		{name: "letter flag is missing", input: "N", want: Value{}},
		{name: "negative sentinel is missing", input: "-888888888", want: Value{}},
		{name: "garbage text is missing", input: "not-a-number", want: Value{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValue(tt.input))
		})
	}
}

func TestValueFloatOr(t *testing.T) {
	assert.Equal(t, 42.0, Value{Float: 42, Valid: true}.FloatOr(0))
	assert.Equal(t, 0.0, Value{}.FloatOr(0))
	assert.Equal(t, -1.0, Value{}.FloatOr(-1))
}
