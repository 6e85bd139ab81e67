package pitch

import (
	"fmt"

	"github.com/tphakala/go-pitch-detector/internal/engine"
	"github.com/tphakala/go-pitch-detector/internal/filter"
	"github.com/tphakala/go-pitch-detector/internal/logging"
)

// State is the tracking state of a Detector.
type State = engine.State

// Detector states.
const (
	StateIdle     = engine.StateIdle
	StateShifted  = engine.StateShifted
	StateTracking = engine.StateTracking
)

// Detector is a streaming pitch detector for one channel.
type Detector struct {
	config Config
	engine *engine.PitchDetector
	cond   *filter.Conditioner[float64]

	// scratch holds conditioned or converted samples for block processing.
	scratch []float64
	logger  Logger
}

// New creates a pitch detector with the given configuration.
func New(config *Config) (*Detector, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	eng, err := engine.NewPitchDetector(config.engineParams())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	d := &Detector{
		config:  *config,
		engine:  eng,
		scratch: make([]float64, defaultBlockSize),
		logger:  logging.OrNoOp(config.Logger),
	}

	if config.Precondition {
		d.cond, err = filter.NewConditioner[float64](filter.ConditionerConfig{
			SampleRate:  config.SampleRate,
			LowestFreq:  config.LowestFreq,
			HighestFreq: config.HighestFreq,
			BlockSize:   defaultBlockSize,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create conditioner: %w", err)
		}
	}

	d.logger.Debug("pitch detector created", Fields{
		"lowest_hz":      config.LowestFreq,
		"highest_hz":     config.HighestFreq,
		"sample_rate":    config.SampleRate,
		"window_size":    d.WindowSize(),
		"minimum_period": d.MinimumPeriod(),
		"precondition":   config.Precondition,
		"latency":        d.Latency(),
	})
	return d, nil
}

// Process feeds one sample and returns true when an analysis window
// completed. The frequency accessors change only when Process returns true.
func (d *Detector) Process(s float64) bool {
	if d.cond != nil {
		s = d.cond.Process(s)
	}
	return d.engine.Process(s)
}

// ProcessFloat32 is Process for float32 input.
func (d *Detector) ProcessFloat32(s float32) bool {
	return d.Process(float64(s))
}

// ProcessBlock feeds a block of samples and returns the number of analysis
// windows completed. The accessors reflect the last completed window.
func (d *Detector) ProcessBlock(samples []float64) int {
	if d.cond == nil {
		return d.feed(samples)
	}
	ready := 0
	for len(samples) > 0 {
		n := min(len(samples), len(d.scratch))
		d.cond.ProcessBlock(d.scratch[:n], samples[:n])
		ready += d.feed(d.scratch[:n])
		samples = samples[n:]
	}
	return ready
}

// ProcessFloat32Block is ProcessBlock for float32 input.
func (d *Detector) ProcessFloat32Block(samples []float32) int {
	ready := 0
	for len(samples) > 0 {
		n := min(len(samples), len(d.scratch))
		buf := d.scratch[:n]
		for i, s := range samples[:n] {
			buf[i] = float64(s)
		}
		if d.cond != nil {
			d.cond.ProcessBlock(buf, buf)
		}
		ready += d.feed(buf)
		samples = samples[n:]
	}
	return ready
}

func (d *Detector) feed(samples []float64) int {
	ready := 0
	for _, s := range samples {
		if d.engine.Process(s) {
			ready++
		}
	}
	return ready
}

// Frequency returns the tracked frequency in Hz, or 0 when no note is
// being tracked.
func (d *Detector) Frequency() float64 { return d.engine.Frequency() }

// Periodicity returns the confidence of the last window, from 0 to 1.
func (d *Detector) Periodicity() float64 { return d.engine.Periodicity() }

// IsNoteShift reports whether the last window started a new note.
func (d *Detector) IsNoteShift() bool { return d.engine.IsNoteShift() }

// PredictFrequency estimates the frequency from the timing of the most
// recent strong pulses, without waiting for the window to complete. It
// returns 0 when no estimate is available.
func (d *Detector) PredictFrequency() float64 { return d.engine.PredictFrequency() }

// Period returns the fundamental period of the last window in samples,
// or -1 when none was found.
func (d *Detector) Period() float64 {
	return d.engine.PeriodDetector().Fundamental().Period
}

// Harmonic returns the periodicity measured at the given harmonic of the
// last window's fundamental, or 0 when it cannot be measured. Index 1 is
// the fundamental itself.
func (d *Detector) Harmonic(index int) float64 {
	return d.engine.PeriodDetector().Harmonic(index)
}

// State returns the tracking state.
func (d *Detector) State() State { return d.engine.State() }

// WindowSize returns the analysis window length in samples.
func (d *Detector) WindowSize() int { return d.engine.PeriodDetector().WindowSize() }

// MinimumPeriod returns the shortest period considered, in samples.
func (d *Detector) MinimumPeriod() float64 { return d.engine.PeriodDetector().MinimumPeriod() }

// Latency returns the worst-case delay in samples between a change in the
// input and its report: one window plus the conditioning filter delay.
func (d *Detector) Latency() int {
	latency := d.WindowSize()
	if d.cond != nil {
		latency += d.cond.Delay()
	}
	return latency
}

// Config returns a copy of the configuration.
func (d *Detector) Config() Config { return d.config }

// Reset clears all state so the detector can be reused on a new stream.
func (d *Detector) Reset() {
	d.engine.Reset()
	if d.cond != nil {
		d.cond.Reset()
	}
}
