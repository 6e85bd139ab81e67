package filter

import "math"

// DCBlocker is a one-pole highpass that removes DC offset:
//
//	y[n] = x[n] - x[n-1] + R*y[n-1],  R = 1 - 2π·fc/fs
type DCBlocker struct {
	pole   float64
	x1, y1 float64
}

// NewDCBlocker returns a blocker with its -3 dB point at cutoff Hz.
func NewDCBlocker(cutoff, sampleRate float64) DCBlocker {
	pole := 1 - 2*math.Pi*cutoff/sampleRate
	return DCBlocker{pole: min(max(pole, 0), 1)}
}

// Process filters one sample.
func (d *DCBlocker) Process(x float64) float64 {
	y := x - d.x1 + d.pole*d.y1
	d.x1 = x
	d.y1 = y
	return y
}

// Pole returns R.
func (d *DCBlocker) Pole() float64 { return d.pole }

// Reset clears the filter history.
func (d *DCBlocker) Reset() {
	d.x1, d.y1 = 0, 0
}
