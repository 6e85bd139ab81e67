// Package period implements the bitstream autocorrelation period detector:
// it tracks pulses, rasterizes each analysis window into a bitstream and
// searches edge-pair candidates for the best fundamental period.
package period

import (
	"errors"
	"fmt"
	"math"

	"github.com/tphakala/go-pitch-detector/internal/bitstream"
	"github.com/tphakala/go-pitch-detector/internal/edges"
)

// ErrInvalidRange is returned when the highest frequency does not exceed
// the lowest.
var ErrInvalidRange = errors.New("period: highest frequency must exceed lowest frequency")

// Info is a period estimate. A null estimate has Period -1 and Periodicity 0.
type Info struct {
	Period      float64 // samples, possibly fractional
	Periodicity float64 // 0..1
}

// Valid reports whether the estimate holds a period.
func (i Info) Valid() bool {
	return i.Period > 0
}

var nullInfo = Info{Period: NullPeriod, Periodicity: NullPeriodicity}

// Params configures a Detector. Zero tuning fields select the defaults.
type Params struct {
	LowestFreq  float64
	HighestFreq float64
	SampleRate  float64

	// Hysteresis is the linear dead-zone amplitude around zero.
	Hysteresis float64

	PulseThreshold            float64
	HarmonicPeriodicityFactor float64
	PeriodicityDiffFactor     float64
	LocalSearchPeriod         int
	LocalSearchRadius         int
	EdgeCapacity              int
}

func (p Params) withDefaults() Params {
	if p.PulseThreshold == 0 {
		p.PulseThreshold = DefaultPulseThreshold
	}
	if p.HarmonicPeriodicityFactor == 0 {
		p.HarmonicPeriodicityFactor = DefaultHarmonicPeriodicityFactor
	}
	if p.PeriodicityDiffFactor == 0 {
		p.PeriodicityDiffFactor = DefaultPeriodicityDiffFactor
	}
	if p.LocalSearchPeriod == 0 {
		p.LocalSearchPeriod = DefaultLocalSearchPeriod
	}
	if p.LocalSearchRadius == 0 {
		p.LocalSearchRadius = DefaultLocalSearchRadius
	}
	if p.EdgeCapacity == 0 {
		p.EdgeCapacity = edges.DefaultCapacity
	}
	return p
}

// WindowSize returns the analysis window length for the given lowest
// frequency: two periods of the lowest frequency rounded up to whole 64-bit
// words.
func WindowSize(lowestFreq, sampleRate float64) int {
	n := int(math.Ceil(2 * sampleRate / lowestFreq))
	n = (n + wordBits - 1) / wordBits * wordBits
	return max(n, minWindowSize)
}

// Detector finds the fundamental period of each analysis window.
// All buffers are allocated in New; Process does not allocate.
type Detector struct {
	tracker   *edges.Tracker
	bits      *bitstream.Bitset
	corr      *bitstream.Correlator
	collector collector

	windowSize     int
	midPoint       int
	minPeriod      float64
	weight         float64
	pulseThreshold float64
	searchPeriod   int
	searchRadius   int

	fundamental Info

	predicted    float64
	predictValid bool
	predictStamp uint64
}

// New creates a Detector.
func New(p Params) (*Detector, error) {
	if p.SampleRate <= 0 || p.LowestFreq <= 0 {
		return nil, fmt.Errorf("period: sample rate and lowest frequency must be positive (got %g, %g)",
			p.SampleRate, p.LowestFreq)
	}
	if p.HighestFreq <= p.LowestFreq {
		return nil, fmt.Errorf("%w: %g <= %g", ErrInvalidRange, p.HighestFreq, p.LowestFreq)
	}
	p = p.withDefaults()

	windowSize := WindowSize(p.LowestFreq, p.SampleRate)
	midPoint := windowSize / 2
	weight := 2.0 / float64(windowSize)

	tracker := edges.New(p.Hysteresis, windowSize, p.EdgeCapacity)
	bits := bitstream.NewBitset(windowSize)

	return &Detector{
		tracker: tracker,
		bits:    bits,
		corr:    bitstream.NewCorrelator(bits),
		collector: collector{
			tracker:                  tracker,
			maxHarmonic:              max(1, int(p.HighestFreq/p.LowestFreq)),
			periodicityDiffThreshold: float64(midPoint) * p.PeriodicityDiffFactor,
			harmonicThreshold:        p.HarmonicPeriodicityFactor * weight,
		},
		windowSize:     windowSize,
		midPoint:       midPoint,
		minPeriod:      p.SampleRate / p.HighestFreq,
		weight:         weight,
		pulseThreshold: p.PulseThreshold,
		searchPeriod:   p.LocalSearchPeriod,
		searchRadius:   p.LocalSearchRadius,
		fundamental:    nullInfo,
	}, nil
}

// Process feeds one sample. It returns true when an analysis window was
// completed and Fundamental holds a fresh estimate (possibly null).
func (d *Detector) Process(s float64) bool {
	d.tracker.Process(s)

	if d.tracker.IsReset() {
		d.fundamental = nullInfo
		d.predictValid = false
	}
	if !d.tracker.IsReady() {
		return false
	}

	d.predictValid = false
	bitstream.Build(d.bits, d.tracker, d.pulseThreshold)
	d.fundamental = d.autocorrelate()
	return true
}

// autocorrelate runs the edge-pair candidate search over the current window.
func (d *Detector) autocorrelate() Info {
	n := d.tracker.NumEdges()

	first := -1
	qualifying := 0
	for i := range n {
		if d.tracker.Edge(i).Inhibited {
			continue
		}
		if first < 0 {
			first = i
		}
		qualifying++
	}
	if qualifying < 2 || d.tracker.Edge(first).LeadingEdge >= d.midPoint {
		return nullInfo
	}

	d.collector.reset()
	firstCandidate := true

search:
	for i := first; i < n-1; i++ {
		e1 := d.tracker.Edge(i)
		if e1.Inhibited {
			continue
		}
		for j := i + 1; j < n; j++ {
			e2 := d.tracker.Edge(j)
			if e2.Inhibited {
				continue
			}
			period := e1.Period(e2)
			if period > d.midPoint {
				break
			}
			if float64(period) < d.minPeriod {
				continue
			}

			count := d.corr.Mismatch(period)
			if period < d.searchPeriod {
				period, count = d.localSearch(period, count)
			}

			if firstCandidate {
				firstCandidate = false
				// A perfect match that also matches at half the lag is an
				// alias of a shorter period the window cannot resolve.
				if count == 0 && period/2 >= 1 && d.corr.Mismatch(period/2) == 0 {
					return nullInfo
				}
			}

			d.collector.add(candidate{
				i1:          i,
				i2:          j,
				period:      period,
				periodicity: 1 - float64(count)*d.weight,
			})

			if count == 0 {
				break search
			}
		}
	}
	return d.collector.result()
}

// localSearch hill-climbs the mismatch count around a coarse lag. It never
// descends below the minimum period.
func (d *Detector) localSearch(period, count int) (int, int) {
	best, bestCount := period, count
	for step := 1; step <= d.searchRadius; step++ {
		c := d.corr.Mismatch(period + step)
		if c >= bestCount {
			break
		}
		best, bestCount = period+step, c
	}
	if best != period {
		return best, bestCount
	}
	for step := 1; step <= d.searchRadius && float64(period-step) >= d.minPeriod; step++ {
		c := d.corr.Mismatch(period - step)
		if c >= bestCount {
			break
		}
		best, bestCount = period-step, c
	}
	return best, bestCount
}

// Fundamental returns the estimate of the last completed window.
func (d *Detector) Fundamental() Info { return d.fundamental }

// PredictPeriod estimates the period from edge timing alone: the strongest
// pulse is paired with its nearest strong neighbour whose fractional period
// exceeds the minimum period. It returns -1 when no such pair exists. The
// result is cached until a new pulse completes.
func (d *Detector) PredictPeriod() float64 {
	if d.predictValid && d.predictStamp == d.tracker.Completed() {
		return d.predicted
	}
	d.predicted = d.predictPeriod()
	d.predictStamp = d.tracker.Completed()
	d.predictValid = true
	return d.predicted
}

func (d *Detector) predictPeriod() float64 {
	n := d.tracker.NumEdges()
	if n < 2 {
		return NullPeriod
	}

	strongest := 0
	for i := 1; i < n; i++ {
		if d.tracker.Edge(i).Peak > d.tracker.Edge(strongest).Peak {
			strongest = i
		}
	}
	s := d.tracker.Edge(strongest)
	threshold := s.Peak * d.pulseThreshold

	for j := strongest + 1; j < n; j++ {
		e := d.tracker.Edge(j)
		if e.Peak < threshold {
			continue
		}
		if p := s.FractionalPeriod(e); p > d.minPeriod {
			return p
		}
	}
	for j := strongest - 1; j >= 0; j-- {
		e := d.tracker.Edge(j)
		if e.Peak < threshold {
			continue
		}
		if p := e.FractionalPeriod(s); p > d.minPeriod {
			return p
		}
	}
	return NullPeriod
}

// Harmonic returns the periodicity of harmonic index of the current
// fundamental (1 is the fundamental itself), or 0 when it cannot be
// measured.
func (d *Detector) Harmonic(index int) float64 {
	if index < 1 || !d.fundamental.Valid() {
		return 0
	}
	if index == 1 {
		return d.fundamental.Periodicity
	}
	target := d.fundamental.Period / float64(index)
	if target < d.minPeriod || target >= float64(d.midPoint) {
		return 0
	}
	count := d.corr.Mismatch(int(math.Round(target)))
	return max(0, 1-float64(count)*d.weight)
}

// Reset clears the tracker and the current estimate.
func (d *Detector) Reset() {
	d.tracker.Reset()
	d.bits.Clear()
	d.fundamental = nullInfo
	d.predictValid = false
}

// MinimumPeriod returns the shortest period the detector accepts.
func (d *Detector) MinimumPeriod() float64 { return d.minPeriod }

// WindowSize returns the analysis window length in samples.
func (d *Detector) WindowSize() int { return d.windowSize }

// Edges exposes the pulse tracker for inspection.
func (d *Detector) Edges() *edges.Tracker { return d.tracker }

// Bits exposes the bitstream of the last completed window.
func (d *Detector) Bits() *bitstream.Bitset { return d.bits }
