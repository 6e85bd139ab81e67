package filter

import (
	"math"

	"github.com/tphakala/go-pitch-detector/internal/mathutil"
)

// NoiseGate mutes the signal while its peak envelope is below a threshold.
// The envelope rises instantly and decays exponentially.
type NoiseGate struct {
	threshold float64
	release   float64
	envelope  float64
}

// NewNoiseGate returns a gate at thresholdDB with the given release time.
func NewNoiseGate(thresholdDB, releaseSeconds, sampleRate float64) NoiseGate {
	return NoiseGate{
		threshold: mathutil.DBToLinear(thresholdDB),
		release:   math.Exp(-1 / (releaseSeconds * sampleRate)),
	}
}

// Process gates one sample.
func (g *NoiseGate) Process(x float64) float64 {
	g.envelope = max(math.Abs(x), g.envelope*g.release)
	if g.envelope < g.threshold {
		return 0
	}
	return x
}

// Open reports whether the gate currently passes the signal.
func (g *NoiseGate) Open() bool {
	return g.envelope >= g.threshold
}

// Reset closes the gate.
func (g *NoiseGate) Reset() {
	g.envelope = 0
}
