package period

import (
	"math"

	"github.com/tphakala/go-pitch-detector/internal/edges"
)

// candidate is one edge pair tested by the autocorrelator.
type candidate struct {
	i1, i2      int // edge indices, oldest first
	period      int
	periodicity float64
}

// collector keeps the best fundamental seen in a window and folds
// harmonics of it into a harmonic index instead of letting them win.
type collector struct {
	tracker *edges.Tracker

	maxHarmonic              int
	periodicityDiffThreshold float64
	harmonicThreshold        float64

	best        candidate
	harmonic    int
	firstPeriod float64
}

func (c *collector) reset() {
	c.best = candidate{period: -1}
	c.harmonic = 1
	c.firstPeriod = 0
}

func (c *collector) empty() bool {
	return c.best.period == -1
}

func (c *collector) fractional(in candidate) float64 {
	return c.tracker.Edge(in.i1).FractionalPeriod(c.tracker.Edge(in.i2))
}

func (c *collector) save(in candidate) {
	c.best = in
	c.harmonic = 1
	c.firstPeriod = c.fractional(in)
}

// trySubHarmonic checks whether in, divided by h, lands on the best
// period. A matching candidate with better periodicity takes over the edge
// pair as harmonic h when the gain is small, or becomes the new best.
func (c *collector) trySubHarmonic(h int, in candidate) bool {
	if math.Abs(float64(in.period/h-c.best.period)) >= c.periodicityDiffThreshold {
		return false
	}
	if in.periodicity > c.best.periodicity && h != c.harmonic {
		if in.periodicity-c.best.periodicity <= c.harmonicThreshold {
			c.best.i1 = in.i1
			c.best.i2 = in.i2
			c.best.periodicity = in.periodicity
			c.harmonic = h
		} else {
			c.save(in)
		}
	}
	return true
}

func (c *collector) processHarmonics(in candidate) bool {
	if c.firstPeriod <= 0 || float64(in.period) < c.firstPeriod {
		return false
	}
	multiple := max(1, int(math.Round(c.fractional(in)/c.firstPeriod)))
	return c.trySubHarmonic(min(c.maxHarmonic, multiple), in)
}

func (c *collector) add(in candidate) {
	switch {
	case c.empty():
		c.save(in)
	case c.processHarmonics(in):
	case in.periodicity > c.best.periodicity:
		c.save(in)
	}
}

// result returns the refined period of the best candidate, divided by the
// harmonic it was found to be.
func (c *collector) result() Info {
	if c.empty() {
		return nullInfo
	}
	return Info{
		Period:      c.fractional(c.best) / float64(c.harmonic),
		Periodicity: c.best.periodicity,
	}
}
