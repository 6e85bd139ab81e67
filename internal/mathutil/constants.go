package mathutil

// Decibel conversion constants
const (
	dbAmplitudeFactor  = 20.0  // 20*log10 for amplitude ratios
	minLinearAmplitude = 1e-12 // Floor used when converting 0 to decibels
)

// Bessel series constants
const (
	besselMaxTerms      = 64    // Upper bound on series terms for I₀(x)
	besselTermTolerance = 1e-17 // Stop when a term no longer changes the sum
)

// Kaiser window formula constants
// From Kaiser & Schafer's empirical formulas
const (
	kaiserAttHigh   = 50.0 // High attenuation threshold (dB)
	kaiserAttMedium = 21.0 // Medium attenuation threshold (dB)

	kaiserBetaHighCoeff  = 0.1102
	kaiserBetaHighOffset = 8.7

	kaiserBetaMediumCoeff1 = 0.5842
	kaiserBetaMediumPower  = 0.4
	kaiserBetaMediumCoeff2 = 0.07886

	// N ≈ (att - 8) / (2.285 * 2π * Δf)
	kaiserLengthOffset     = 8.0
	kaiserLengthMultiplier = 2.285

	minFilterLength = 3
	maxFilterLength = 8191
)

// Musical pitch constants
const (
	referenceA4     = 440.0 // Concert pitch (Hz)
	referenceA4MIDI = 69    // MIDI note number of A4
	notesPerOctave  = 12
	centsPerOctave  = 1200.0
)
