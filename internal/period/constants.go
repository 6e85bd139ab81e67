package period

// Default tuning values. They are empirical; Params exposes each of them.
const (
	// DefaultPulseThreshold is the fraction of the window's strongest pulse
	// below which pulses are inhibited.
	DefaultPulseThreshold = 0.6

	// DefaultHarmonicPeriodicityFactor scales the periodicity delta (in
	// units of 2/window) within which a harmonic may replace the best
	// candidate without becoming a new fundamental.
	DefaultHarmonicPeriodicityFactor = 16.0

	// DefaultPeriodicityDiffFactor scales the window midpoint into the
	// period tolerance used to match sub-harmonics.
	DefaultPeriodicityDiffFactor = 0.008

	// DefaultLocalSearchPeriod is the period below which the edge-derived
	// lag is refined by hill-climbing.
	DefaultLocalSearchPeriod = 32

	// DefaultLocalSearchRadius bounds the hill-climbing in each direction.
	DefaultLocalSearchRadius = 8
)

// Window geometry
const (
	wordBits      = 64
	minWindowSize = 128
)

// Null estimate sentinels.
const (
	NullPeriod      = -1.0
	NullPeriodicity = 0.0
)
