package pitch

// Default configuration values.
const (
	// DefaultHysteresisDB is the zero-crossing dead zone.
	DefaultHysteresisDB = -45.0

	// Block processing converts float32 input through a scratch buffer of
	// this many samples.
	defaultBlockSize = 256

	// The highest frequency must stay below this fraction of the sample rate.
	nyquistFraction = 0.5
)

// Common sample rates.
const (
	// RateCD is the CD quality sample rate.
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateSpeech is a common speech processing sample rate.
	RateSpeech = 16000
)

// Instrument ranges in Hz, with a little headroom around the nominal
// lowest and highest notes.
const (
	// Guitar in standard tuning, E2 to E6.
	GuitarLowest  = 75.0
	GuitarHighest = 1400.0

	// Four-string bass, E1 to G4.
	BassLowest  = 38.0
	BassHighest = 420.0

	// Human voice, roughly G2 to C6.
	VoiceLowest  = 90.0
	VoiceHighest = 1100.0
)
