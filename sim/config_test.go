package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStepSize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"positive kept", 10, 10},
		{"fraction kept", 0.25, 0.25},
		{"zero disables", 0, math.MaxFloat64},
		{"negative disables", -1, math.MaxFloat64},
		{"NaN disables", math.NaN(), math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStepSize(tt.in))
		})
	}
}

func TestNormalizeSeed(t *testing.T) {
	assert.Equal(t, int64(1), NormalizeSeed(0))
	assert.Equal(t, int64(1), NormalizeSeed(-5))
	assert.Equal(t, int64(1), NormalizeSeed(1))
	assert.Equal(t, int64(99), NormalizeSeed(99))
}

func TestEngineConfig_ExhaustedTime(t *testing.T) {
	withStop := NewEngineConfig(0, 4, true, 1)
	withoutStop := NewEngineConfig(0, 4, false, 1)

	assert.Equal(t, 4.0, withStop.exhaustedTime())
	assert.Equal(t, Unbounded, withoutStop.exhaustedTime())
}
