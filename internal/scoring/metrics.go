package scoring

import (
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// The primitives below are the only place the engine handles degenerate
// numeric input. Every scorer builds on them, so empty series, zero means
// and collapsed ranges resolve here instead of leaking NaN into scores.

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mapRange linearly interpolates v from [inLo, inHi] into [outLo, outHi],
// clamping at both ends. A collapsed input range yields outLo.
func mapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inLo == inHi {
		return outLo
	}
	v = clamp(v, inLo, inHi)
	return outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0
	}
	return mean
}

// coefficientOfVariation is stddev/mean. Fewer than 2 values carry no
// dispersion signal and yield 0; an all-zero series yields 1, maximum
// dispersion, so a dead account never looks perfectly regular.
func coefficientOfVariation(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := average(values)
	if mean == 0 {
		return 1
	}
	sd, err := stats.StandardDeviation(values)
	if err != nil {
		return 0
	}
	return sd / mean
}

// weeklyBucket maps a timestamp to the ISO date of the Sunday starting its
// week.
func weeklyBucket(t time.Time) string {
	t = t.UTC()
	sunday := t.AddDate(0, 0, -int(t.Weekday()))
	return sunday.Format("2006-01-02")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
