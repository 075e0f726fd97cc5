package geocode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanAddress(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain street address passes through",
			input:    "449 Front Street, Chicopee, MA",
			expected: "449 Front Street, Chicopee, MA",
		},
		{
			name:     "street abbreviations expanded",
			input:    "449 Front St",
			expected: "449 Front Street",
		},
		{
			name:     "intersection with ampersand",
			input:    "Front St & Center St",
			expected: "Front Street & Center Street",
		},
		{
			name:     "intersection with 'and'",
			input:    "Front St and Center St, Chicopee",
			expected: "Front Street & Center Street, Chicopee",
		},
		{
			name:     "intersection-of prefix stripped",
			input:    "Intersection of Front St & Center St",
			expected: "Front Street & Center Street",
		},
		{
			name:     "descriptive prefix stripped",
			input:    "Main Library: 449 Front St",
			expected: "449 Front Street",
		},
		{
			name:     "parenthetical note removed",
			input:    "449 Front St (rear entrance)",
			expected: "449 Front Street",
		},
		{
			name:     "whitespace collapsed",
			input:    "  449   Front   St  ",
			expected: "449 Front Street",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanAddress(tt.input))
		})
	}
}
