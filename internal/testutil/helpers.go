// Package testutil provides reusable signal generators and assertion helpers
// for pitch detector tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for pitch tests.
const (
	// FrequencyTolerance is the relative error allowed for a converged
	// estimate of a pure tone (0.1%, about 1.7 cents).
	FrequencyTolerance = 1e-3

	// PeriodTolerance is the absolute error (samples) allowed on a period.
	PeriodTolerance = 0.05
)

// Sine generates n samples of a sine wave at freq Hz with the given amplitude.
func Sine(freq, sampleRate, amplitude float64, n int) []float64 {
	out := make([]float64, n)
	omega := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(omega*float64(i))
	}
	return out
}

// Harmonics generates n samples of a sum of harmonics of fundamental.
// amps[k] is the amplitude of harmonic k+1; zero entries are skipped, so
// {0, 1, 1} is a signal with a missing fundamental.
func Harmonics(fundamental, sampleRate float64, amps []float64, n int) []float64 {
	out := make([]float64, n)
	omega := 2 * math.Pi * fundamental / sampleRate
	for i := range out {
		var v float64
		for k, a := range amps {
			if a == 0 {
				continue
			}
			v += a * math.Sin(float64(k+1)*omega*float64(i))
		}
		out[i] = v
	}
	return out
}

// Concat joins signals end to end.
func Concat(parts ...[]float64) []float64 {
	var total int
	for _, p := range parts {
		total += len(p)
	}
	out := make([]float64, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertSymmetric verifies that a slice is symmetric (s[i] == s[n-1-i]).
func AssertSymmetric(t *testing.T, s []float64, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	n := len(s)
	for i := 0; i < n/2; i++ {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance,
			"slice not symmetric at i=%d: s[%d]=%f != s[%d]=%f", i, i, s[i], j, s[j]) {
			return false
		}
	}
	return true
}
