package engine

// Default smoothing parameters.
const (
	// DefaultMaxDeviation is the periodicity required to accept the first
	// note from Idle.
	DefaultMaxDeviation = 0.9

	// DefaultMinPeriodicity is the periodicity above which a frame that
	// disagrees with the current note is taken as a genuine shift.
	DefaultMinPeriodicity = 0.8

	// DefaultShiftToleranceDivisor sets the same-note tolerance to
	// current/32, about half a semitone.
	DefaultShiftToleranceDivisor = 32.0

	// DefaultHarmonicGateFrames is the number of frames after a shift
	// before harmonic relationships are trusted.
	DefaultHarmonicGateFrames = 2

	// DefaultMaxMissedFrames is the number of consecutive unusable frames
	// tolerated before the detector returns to Idle.
	DefaultMaxMissedFrames = 2
)
