package mathutil

import "math"

// BesselI0 computes the modified Bessel function of the first kind, order zero.
//
// It sums the power series I₀(x) = Σ ((x/2)^k / k!)², which converges quickly
// for the β values used in Kaiser windows (0-15).
func BesselI0(x float64) float64 {
	half := x / 2
	sum := 1.0
	term := 1.0
	for k := 1; k <= besselMaxTerms; k++ {
		f := half / float64(k)
		term *= f * f
		sum += term
		if term < sum*besselTermTolerance {
			break
		}
	}
	return sum
}

// KaiserBeta returns the Kaiser window β for the requested stopband
// attenuation in dB.
func KaiserBeta(attenuation float64) float64 {
	switch {
	case attenuation > kaiserAttHigh:
		return kaiserBetaHighCoeff * (attenuation - kaiserBetaHighOffset)
	case attenuation >= kaiserAttMedium:
		d := attenuation - kaiserAttMedium
		return kaiserBetaMediumCoeff1*math.Pow(d, kaiserBetaMediumPower) + kaiserBetaMediumCoeff2*d
	default:
		return 0
	}
}

// EstimateFilterLength estimates the number of taps a Kaiser-windowed FIR
// needs to reach attenuation (dB) across a transition band transitionBW
// (normalized to the sample rate). The result is odd and clamped.
func EstimateFilterLength(attenuation, transitionBW float64) int {
	if transitionBW <= 0 {
		return maxFilterLength
	}

	n := int(math.Ceil((attenuation - kaiserLengthOffset) /
		(kaiserLengthMultiplier * 2 * math.Pi * transitionBW)))

	if n%2 == 0 {
		n++
	}
	return max(minFilterLength, min(n, maxFilterLength))
}
