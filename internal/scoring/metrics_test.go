package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, clamp(5, 0, 10))
	assert.Equal(t, 0.0, clamp(-3, 0, 10))
	assert.Equal(t, 10.0, clamp(42, 0, 10))
	assert.Equal(t, -1.0, clamp(-7, -1, 1))
}

func TestMapRange(t *testing.T) {
	tests := []struct {
		name                           string
		v, inLo, inHi, outLo, outHi, want float64
	}{
		{"midpoint", 0.5, 0, 1, 0, 10, 5},
		{"lower bound", 0, 0, 1, 0, 10, 0},
		{"upper bound", 1, 0, 1, 0, 10, 10},
		{"below input range clamps to outLo", -5, 0, 1, 0, 10, 0},
		{"above input range clamps to outHi", 99, 0, 1, 0, 10, 10},
		{"negative input range", 0, -0.5, 0.5, 0, 8, 4},
		{"inverted output range", 3, 1, 5, 7, 0, 3.5},
		{"inverted output below range", 0, 1, 5, 7, 0, 7},
		{"inverted output above range", 9, 1, 5, 7, 0, 0},
		{"collapsed input range returns outLo", 4, 2, 2, 3, 8, 3},
		{"shifted output range", 0.5, 0.3, 1, 3, 8, 4.428571428571429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, mapRange(tt.v, tt.inLo, tt.inHi, tt.outLo, tt.outHi), 1e-9)
		})
	}
}

func TestMapRangeMonotonic(t *testing.T) {
	prev := mapRange(-1, 0, 1, 0, 10)
	for v := -0.9; v <= 2.0; v += 0.1 {
		cur := mapRange(v, 0, 1, 0, 10)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestAverage(t *testing.T) {
	assert.Equal(t, 0.0, average(nil))
	assert.Equal(t, 0.0, average([]float64{}))
	assert.InDelta(t, 3, average([]float64{2, 4}), 1e-9)
	assert.InDelta(t, 2.5, average([]float64{1, 2, 3, 4}), 1e-9)
}

func TestCoefficientOfVariation(t *testing.T) {
	assert.Equal(t, 0.0, coefficientOfVariation(nil))
	assert.Equal(t, 0.0, coefficientOfVariation([]float64{5}))
	assert.Equal(t, 1.0, coefficientOfVariation([]float64{0, 0, 0}))
	assert.Equal(t, 0.0, coefficientOfVariation([]float64{2, 2, 2}))
	// [1, 3]: mean 2, population stddev 1.
	assert.InDelta(t, 0.5, coefficientOfVariation([]float64{1, 3}), 1e-9)
}

func TestWeeklyBucket(t *testing.T) {
	wednesday := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-07", weeklyBucket(wednesday))

	sunday := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-07", weeklyBucket(sunday))

	saturday := time.Date(2024, 1, 13, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2024-01-07", weeklyBucket(saturday))
}
