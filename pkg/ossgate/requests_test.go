package ossgate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOwnerIDFromNumber(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{42, "42"},
		{42.0, "42"},
		{1e3, "1000"},
		{1.5, "1.5"},
		{-7, "-7"},
		{1234567890123, "1234567890123"},
		{1e21, "1e+21"},
		{1.5e-7, "1.5e-7"},
		{0, ""},
		{math.Copysign(0, -1), ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, OwnerIDFromNumber(tt.input), "%v", tt.input)
	}
}
