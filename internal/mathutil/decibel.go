// Package mathutil provides the small numeric helpers shared by the pitch
// detection pipeline: decibel conversion, Kaiser filter formulas, a 3-tap
// median and the equal-tempered note table.
package mathutil

import "math"

// DBToLinear converts an amplitude level in decibels to a linear gain.
//
//	DBToLinear(-6.0206) ≈ 0.5
//	DBToLinear(-45)     ≈ 0.00562
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/dbAmplitudeFactor)
}

// LinearToDB converts a linear amplitude to decibels.
// Non-positive amplitudes are floored to avoid -Inf.
func LinearToDB(linear float64) float64 {
	if linear < minLinearAmplitude {
		linear = minLinearAmplitude
	}
	return dbAmplitudeFactor * math.Log10(linear)
}
