// Package engine implements the pitch detector: it converts the period
// estimates of each analysis window into a debounced frequency, folding
// octave errors back onto the current note and confirming note shifts.
package engine

import (
	"math"

	"github.com/tphakala/go-pitch-detector/internal/mathutil"
	"github.com/tphakala/go-pitch-detector/internal/period"
)

// Params configures a PitchDetector. Zero smoothing fields select the
// defaults.
type Params struct {
	period.Params

	MaxDeviation          float64
	MinPeriodicity        float64
	ShiftToleranceDivisor float64
	HarmonicGateFrames    int
	MaxMissedFrames       int
}

func (p Params) withDefaults() Params {
	if p.MaxDeviation == 0 {
		p.MaxDeviation = DefaultMaxDeviation
	}
	if p.MinPeriodicity == 0 {
		p.MinPeriodicity = DefaultMinPeriodicity
	}
	if p.ShiftToleranceDivisor == 0 {
		p.ShiftToleranceDivisor = DefaultShiftToleranceDivisor
	}
	if p.HarmonicGateFrames == 0 {
		p.HarmonicGateFrames = DefaultHarmonicGateFrames
	}
	if p.MaxMissedFrames == 0 {
		p.MaxMissedFrames = DefaultMaxMissedFrames
	}
	return p
}

// PitchDetector tracks the frequency of a monophonic signal sample by
// sample. It is not safe for concurrent use; use one per channel.
type PitchDetector struct {
	pd     *period.Detector
	params Params

	median           mathutil.Median3
	state            State
	framesAfterShift int
	missed           int
}

// NewPitchDetector creates a PitchDetector. It fails when the frequency
// range is empty or the sample rate is not positive.
func NewPitchDetector(p Params) (*PitchDetector, error) {
	p = p.withDefaults()
	pd, err := period.New(p.Params)
	if err != nil {
		return nil, err
	}
	return &PitchDetector{pd: pd, params: p}, nil
}

// Process feeds one sample. It returns true when an analysis window was
// completed and the frequency state was updated.
func (d *PitchDetector) Process(s float64) bool {
	if !d.pd.Process(s) {
		if d.pd.Edges().IsReset() && d.state != StateIdle {
			d.toIdle()
		}
		return false
	}

	info := d.pd.Fundamental()
	var incoming float64
	if info.Valid() {
		incoming = d.params.SampleRate / info.Period
	}
	d.update(incoming, info.Periodicity)
	return true
}

// update advances the state machine with the frequency of one window.
func (d *PitchDetector) update(incoming, periodicity float64) {
	if d.state == StateIdle {
		if incoming > 0 && periodicity >= d.params.MaxDeviation {
			d.median.Seed(incoming)
			d.shifted()
		}
		return
	}

	v := d.bias(incoming, periodicity)
	switch v {
	case verdictShift:
		d.shifted()
		return
	case verdictAccepted:
		d.missed = 0
	default:
		d.missed++
	}

	d.state = next(v)
	d.framesAfterShift++
	if d.missed > d.params.MaxMissedFrames {
		d.toIdle()
	}
}

// bias reconciles incoming with the current note.
func (d *PitchDetector) bias(incoming, periodicity float64) verdict {
	if incoming <= 0 {
		return verdictMissed
	}

	current := d.median.Value()
	tolerance := current / d.params.ShiftToleranceDivisor

	if math.Abs(current-incoming) < tolerance {
		d.median.Push(incoming)
		return verdictAccepted
	}

	if d.framesAfterShift >= d.params.HarmonicGateFrames {
		if f, ok := harmonicOf(current, incoming, tolerance); ok {
			d.median.Push(f)
			return verdictAccepted
		}
	}

	if periodicity > d.params.MinPeriodicity {
		d.median.Seed(incoming)
		return verdictShift
	}

	// Low confidence: fall back on edge timing when it is closer.
	if predicted := d.PredictFrequency(); predicted > 0 {
		chosen := incoming
		if math.Abs(current-predicted) < math.Abs(current-incoming) {
			chosen = predicted
		}
		if math.Abs(current-chosen) < tolerance {
			d.median.Push(chosen)
			return verdictAccepted
		}
	}

	// Let the median absorb a single outlier; a persistent one wins.
	d.median.Push(incoming)
	return verdictDeferred
}

// harmonicOf folds incoming onto current when one is an integer multiple
// of the other.
func harmonicOf(current, incoming, tolerance float64) (float64, bool) {
	var f float64
	if current > incoming {
		multiple := math.Round(current / incoming)
		if multiple <= 1 {
			return 0, false
		}
		f = incoming * multiple
	} else {
		multiple := math.Round(incoming / current)
		if multiple <= 1 {
			return 0, false
		}
		f = incoming / multiple
	}
	return f, math.Abs(current-f) < tolerance
}

func (d *PitchDetector) shifted() {
	d.state = StateShifted
	d.framesAfterShift = 0
	d.missed = 0
}

func (d *PitchDetector) toIdle() {
	d.state = StateIdle
	d.median.Reset()
	d.framesAfterShift = 0
	d.missed = 0
}

// Frequency returns the smoothed frequency in Hz, or 0 when no note is
// being tracked.
func (d *PitchDetector) Frequency() float64 {
	if d.state == StateIdle {
		return 0
	}
	return d.median.Value()
}

// Periodicity returns the confidence of the last window's estimate.
func (d *PitchDetector) Periodicity() float64 {
	return d.pd.Fundamental().Periodicity
}

// IsNoteShift reports whether the last window started a new note.
func (d *PitchDetector) IsNoteShift() bool {
	return d.state == StateShifted
}

// State returns the current state.
func (d *PitchDetector) State() State { return d.state }

// FramesAfterShift returns the number of windows since the last shift.
func (d *PitchDetector) FramesAfterShift() int { return d.framesAfterShift }

// PredictFrequency estimates the frequency from edge timing alone, or
// returns 0 when no usable pulse pair exists.
func (d *PitchDetector) PredictFrequency() float64 {
	p := d.pd.PredictPeriod()
	if p < d.pd.MinimumPeriod() {
		return 0
	}
	return d.params.SampleRate / p
}

// PeriodDetector exposes the underlying period detector.
func (d *PitchDetector) PeriodDetector() *period.Detector { return d.pd }

// Reset returns the detector to Idle and clears all signal history.
func (d *PitchDetector) Reset() {
	d.pd.Reset()
	d.toIdle()
}
