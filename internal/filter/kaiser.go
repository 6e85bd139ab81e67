// Package filter provides the optional signal conditioning chain that runs
// ahead of pitch detection: a DC blocker, a Kaiser-window FIR lowpass and a
// noise gate.
package filter

import (
	"fmt"
	"math"

	"github.com/tphakala/go-pitch-detector/internal/mathutil"
	"github.com/tphakala/go-pitch-detector/internal/simdops"
)

const (
	// Filter design constants
	minFilterTaps = 3
	maxFilterTaps = 8191

	// Window normalization
	windowNormalizationFactor = 2.0

	sincZeroThreshold = 1e-10
)

// KaiserWindow generates a Kaiser window of the given length and β.
//
//	w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β),  α = (N-1)/2
//
// The window is symmetric: w[i] = w[length-1-i]
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)
	if length == 1 {
		window[0] = 1
		return window
	}

	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		window[n] = mathutil.BesselI0(beta*math.Sqrt(1.0-x*x)) / i0Beta
	}
	return window
}

// LowpassParams holds parameters for lowpass design.
type LowpassParams struct {
	// NumTaps is the filter length. Odd lengths give a symmetric
	// linear-phase filter with an integer delay.
	NumTaps int

	// Cutoff is the normalized cutoff frequency (0 to 0.5).
	Cutoff float64

	// Attenuation is the stopband attenuation in dB.
	Attenuation float64
}

// Validate checks if filter parameters are valid.
func (p *LowpassParams) Validate() error {
	if p.NumTaps < minFilterTaps {
		return fmt.Errorf("filter too short: %d taps (minimum %d)", p.NumTaps, minFilterTaps)
	}
	if p.NumTaps > maxFilterTaps {
		return fmt.Errorf("filter too long: %d taps (maximum %d)", p.NumTaps, maxFilterTaps)
	}
	if p.Cutoff <= 0 || p.Cutoff >= 0.5 {
		return fmt.Errorf("invalid cutoff frequency: %f (must be in (0, 0.5))", p.Cutoff)
	}
	if p.Attenuation < 0 {
		return fmt.Errorf("invalid attenuation: %f dB (must be positive)", p.Attenuation)
	}
	return nil
}

// DesignLowpass designs a Kaiser-windowed sinc lowpass with unity DC gain.
func DesignLowpass(params LowpassParams) ([]float64, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	window := KaiserWindow(params.NumTaps, mathutil.KaiserBeta(params.Attenuation))
	coeffs := make([]float64, params.NumTaps)
	center := float64(params.NumTaps-1) / windowNormalizationFactor

	for n := range params.NumTaps {
		x := float64(n) - center

		// sin(2πfc·x) / (πx), with the limit 2fc at x = 0
		sinc := windowNormalizationFactor * params.Cutoff
		if math.Abs(x) >= sincZeroThreshold {
			sinc = math.Sin(windowNormalizationFactor*math.Pi*params.Cutoff*x) / (math.Pi * x)
		}
		coeffs[n] = sinc * window[n]
	}

	ops := simdops.For[float64]()
	if sum := ops.Sum(coeffs); math.Abs(sum) > sincZeroThreshold {
		ops.Scale(coeffs, coeffs, 1/sum)
	}
	return coeffs, nil
}

// DesignLowpassAuto sizes the filter from the attenuation and the
// normalized transition bandwidth, then designs it.
func DesignLowpassAuto(cutoff, transitionBW, attenuation float64) ([]float64, error) {
	return DesignLowpass(LowpassParams{
		NumTaps:     mathutil.EstimateFilterLength(attenuation, transitionBW),
		Cutoff:      cutoff,
		Attenuation: attenuation,
	})
}

// Magnitude evaluates the DTFT magnitude of coeffs at the normalized
// frequency freq (0 to 0.5).
func Magnitude(coeffs []float64, freq float64) float64 {
	omega := 2 * math.Pi * freq
	var re, im float64
	for n, h := range coeffs {
		re += h * math.Cos(omega*float64(n))
		im -= h * math.Sin(omega*float64(n))
	}
	return math.Hypot(re, im)
}
