package pitch

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-pitch-detector/internal/engine"
	"github.com/tphakala/go-pitch-detector/internal/logging"
	"github.com/tphakala/go-pitch-detector/internal/mathutil"
	"github.com/tphakala/go-pitch-detector/internal/period"
)

// Logger is the structured logger accepted in Config.
type Logger = logging.Logger

// Fields are structured logging fields.
type Fields = logging.Fields

// NewLogger returns the default logger, writing Debug and Info to stdout
// and warnings to stderr. verbose enables Debug output.
func NewLogger(verbose bool) Logger {
	l := logging.NewDefaultLogger()
	if verbose {
		l.SetLevel(logging.DebugLevel)
	}
	return l
}

var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid pitch detector configuration")

	// ErrInvalidFrequencyRange indicates that the highest frequency does not
	// exceed the lowest.
	ErrInvalidFrequencyRange = fmt.Errorf("%w: highest frequency must exceed lowest frequency", ErrInvalidConfig)
)

// Config holds pitch detector configuration.
type Config struct {
	// LowestFreq is the lowest frequency to detect, in Hz. It sets the
	// analysis window to two of its periods.
	LowestFreq float64

	// HighestFreq is the highest frequency to detect, in Hz. Periods
	// shorter than SampleRate/HighestFreq are ignored.
	HighestFreq float64

	// SampleRate of the input in Hz.
	SampleRate float64

	// Hysteresis is the zero-crossing dead zone in dB (negative).
	// Zero selects DefaultHysteresisDB.
	Hysteresis float64

	// Precondition runs the input through a DC blocker, a lowpass at four
	// times HighestFreq and a -60 dB noise gate before detection.
	Precondition bool

	// Tuning overrides the empirical detection constants.
	Tuning Tuning

	// Logger receives construction diagnostics. Nil disables logging.
	Logger Logger
}

// Tuning holds the empirically tuned constants of the detector. Zero
// fields select the documented defaults.
type Tuning struct {
	// PulseThreshold is the fraction of the window's strongest pulse below
	// which pulses are ignored. Default 0.6.
	PulseThreshold float64

	// HarmonicPeriodicityFactor bounds the periodicity gain, in units of
	// 2/window, for which a harmonic candidate only refines the current
	// fundamental. Default 16.
	HarmonicPeriodicityFactor float64

	// PeriodicityDiffFactor scales half the window into the period
	// tolerance for harmonic matching. Default 0.008.
	PeriodicityDiffFactor float64

	// MaxDeviation is the periodicity needed to start tracking a note.
	// Default 0.9.
	MaxDeviation float64

	// MinPeriodicity is the periodicity above which a disagreeing window is
	// a genuine note shift. Default 0.8.
	MinPeriodicity float64

	// ShiftToleranceDivisor sets the same-note tolerance to
	// frequency/ShiftToleranceDivisor. Default 32.
	ShiftToleranceDivisor float64

	// HarmonicGateFrames is the number of windows after a shift before
	// octave errors are folded back. Default 2.
	HarmonicGateFrames int

	// MaxMissedFrames is the number of consecutive unusable windows before
	// the detector drops the note. Default 2.
	MaxMissedFrames int

	// LocalSearchPeriod is the period (samples) below which candidate lags
	// are refined by hill-climbing. Default 32.
	LocalSearchPeriod int

	// LocalSearchRadius bounds the hill-climbing. Default 8.
	LocalSearchRadius int

	// EdgeCapacity is the number of pulses retained. Default 128.
	EdgeCapacity int
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive", ErrInvalidConfig)
	}
	if c.LowestFreq <= 0 {
		return fmt.Errorf("%w: lowest frequency must be positive", ErrInvalidConfig)
	}
	if c.HighestFreq <= c.LowestFreq {
		return fmt.Errorf("%w (%g <= %g)", ErrInvalidFrequencyRange, c.HighestFreq, c.LowestFreq)
	}
	if c.HighestFreq >= c.SampleRate*nyquistFraction {
		return fmt.Errorf("%w: highest frequency must be below Nyquist (%g Hz)",
			ErrInvalidConfig, c.SampleRate*nyquistFraction)
	}
	if c.Hysteresis > 0 {
		return fmt.Errorf("%w: hysteresis must be negative dB", ErrInvalidConfig)
	}
	return c.Tuning.Validate()
}

// Validate checks the tuning values.
func (t *Tuning) Validate() error {
	if t.PulseThreshold < 0 || t.PulseThreshold >= 1 {
		return fmt.Errorf("%w: pulse threshold must be in [0, 1)", ErrInvalidConfig)
	}
	if t.MaxDeviation < 0 || t.MaxDeviation > 1 {
		return fmt.Errorf("%w: max deviation must be in [0, 1]", ErrInvalidConfig)
	}
	if t.MinPeriodicity < 0 || t.MinPeriodicity > 1 {
		return fmt.Errorf("%w: min periodicity must be in [0, 1]", ErrInvalidConfig)
	}
	if t.HarmonicPeriodicityFactor < 0 || t.PeriodicityDiffFactor < 0 || t.ShiftToleranceDivisor < 0 {
		return fmt.Errorf("%w: tuning factors must not be negative", ErrInvalidConfig)
	}
	if t.HarmonicGateFrames < 0 || t.MaxMissedFrames < 0 || t.LocalSearchPeriod < 0 || t.LocalSearchRadius < 0 {
		return fmt.Errorf("%w: tuning counts must not be negative", ErrInvalidConfig)
	}
	if t.EdgeCapacity != 0 && t.EdgeCapacity < 2 {
		return fmt.Errorf("%w: edge capacity must be at least 2", ErrInvalidConfig)
	}
	return nil
}

// engineParams maps the configuration onto the internal parameters.
func (c *Config) engineParams() engine.Params {
	hysteresis := c.Hysteresis
	if hysteresis == 0 {
		hysteresis = DefaultHysteresisDB
	}
	return engine.Params{
		Params: period.Params{
			LowestFreq:                c.LowestFreq,
			HighestFreq:               c.HighestFreq,
			SampleRate:                c.SampleRate,
			Hysteresis:                mathutil.DBToLinear(hysteresis),
			PulseThreshold:            c.Tuning.PulseThreshold,
			HarmonicPeriodicityFactor: c.Tuning.HarmonicPeriodicityFactor,
			PeriodicityDiffFactor:     c.Tuning.PeriodicityDiffFactor,
			LocalSearchPeriod:         c.Tuning.LocalSearchPeriod,
			LocalSearchRadius:         c.Tuning.LocalSearchRadius,
			EdgeCapacity:              c.Tuning.EdgeCapacity,
		},
		MaxDeviation:          c.Tuning.MaxDeviation,
		MinPeriodicity:        c.Tuning.MinPeriodicity,
		ShiftToleranceDivisor: c.Tuning.ShiftToleranceDivisor,
		HarmonicGateFrames:    c.Tuning.HarmonicGateFrames,
		MaxMissedFrames:       c.Tuning.MaxMissedFrames,
	}
}

// MustNew is like New but panics on an invalid configuration.
func MustNew(config *Config) *Detector {
	d, err := New(config)
	if err != nil {
		panic(err)
	}
	return d
}
