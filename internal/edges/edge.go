// Package edges implements the zero-crossing tracker that turns a sample
// stream into a bounded ring of positive pulses ("edges"), windowed over a
// fixed number of samples with 50% overlap.
package edges

import "math"

// UndefinedEdge marks a trailing edge that has not been seen yet.
const UndefinedEdge = math.MinInt32

// Edge describes one positive pulse of the signal.
//
// LeadingEdge and TrailingEdge are sample indices relative to the start of
// the current analysis window. LeadingEdge may be negative for a pulse that
// began before the window; TrailingEdge is UndefinedEdge while the pulse is
// still open.
type Edge struct {
	// Crossing holds the (hysteresis-offset) samples just before and at the
	// leading edge, used for sub-sample timing.
	Crossing [2]float64

	// Peak is the largest sample seen during the pulse.
	Peak float64

	LeadingEdge  int
	TrailingEdge int

	// Inhibited is set by the bitstream builder for pulses below the
	// window's pulse threshold.
	Inhibited bool
}

// Closed reports whether the trailing edge has been seen.
func (e *Edge) Closed() bool {
	return e.TrailingEdge != UndefinedEdge
}

// Width returns the pulse width in samples, or 0 if the pulse is still open.
func (e *Edge) Width() int {
	if !e.Closed() {
		return 0
	}
	return e.TrailingEdge - e.LeadingEdge
}

// Period returns the whole-sample distance between the leading edges of e
// and next. next must come after e.
func (e *Edge) Period(next *Edge) int {
	return next.LeadingEdge - e.LeadingEdge
}

// FractionalPeriod returns the distance between the leading edges of e and
// next, refined by linear interpolation of each zero crossing.
func (e *Edge) FractionalPeriod(next *Edge) float64 {
	period := float64(e.Period(next)) + next.crossingOffset() - e.crossingOffset()
	if math.IsNaN(period) || math.IsInf(period, 0) {
		return float64(e.Period(next))
	}
	return period
}

// crossingOffset returns where, between the sample before the leading edge
// (0) and the leading edge sample (1), the signal crossed zero.
func (e *Edge) crossingOffset() float64 {
	prev, curr := e.Crossing[0], e.Crossing[1]
	dy := curr - prev
	if prev > 0 || dy <= 0 {
		return 0
	}
	return -prev / dy
}
