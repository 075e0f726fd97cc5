package acs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGeoID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "standard tract identifier",
			input:    "1400000US25013810101",
			expected: "25013810101",
		},
		{
			name:     "marker absent yields empty key",
			input:    "25013810101",
			expected: "",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "last marker wins",
			input:    "prefix123US456",
			expected: "456",
		},
		{
			name:     "marker at end yields empty key",
			input:    "1400000US",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeGeoID(tt.input))
		})
	}
}
