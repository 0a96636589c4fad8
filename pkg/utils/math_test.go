package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundDecimal(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     float64
	}{
		{3.14159, 2, 3.14},
		{0.33333333, 4, 0.3333},
		{0.66666666, 4, 0.6667},
		{-1.005, 1, -1.0},
		{12.5, 0, 13},
		{0, 2, 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, RoundDecimal(tt.value, tt.decimals), 1e-9)
	}
}

func TestMilliseconds(t *testing.T) {
	assert.InDelta(t, 1.5, Milliseconds(1_500_000), 1e-9)
}
