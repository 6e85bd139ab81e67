package filter

import (
	"fmt"

	"github.com/tphakala/go-pitch-detector/internal/simdops"
)

// Conditioner defaults
const (
	// DefaultGateThresholdDB is the noise gate threshold.
	DefaultGateThresholdDB = -60.0

	// DefaultAttenuation is the FIR stopband attenuation in dB.
	DefaultAttenuation = 60.0

	// DefaultBlockSize is the chunk length for block filtering.
	DefaultBlockSize = 256

	gateReleaseSeconds = 0.05

	// The DC blocker sits two octaves below the lowest frequency.
	dcCutoffDivisor = 4.0

	// The lowpass passes up to the fourth harmonic of the highest
	// frequency, capped below Nyquist.
	lowpassHarmonics  = 4.0
	maxLowpassCutoff  = 0.45
	transitionDivisor = 2.0
)

// ConditionerConfig configures a Conditioner. Zero optional fields select
// the defaults.
type ConditionerConfig struct {
	SampleRate  float64
	LowestFreq  float64
	HighestFreq float64

	GateThresholdDB float64
	Attenuation     float64
	BlockSize       int
}

// Conditioner removes DC, band-limits and gates the signal before it
// reaches the pitch detector.
type Conditioner[F simdops.Float] struct {
	dc   DCBlocker
	fir  *FIR[F]
	gate NoiseGate
	buf  []F
}

// NewConditioner designs the filters for cfg.
func NewConditioner[F simdops.Float](cfg ConditionerConfig) (*Conditioner[F], error) {
	if cfg.SampleRate <= 0 || cfg.LowestFreq <= 0 || cfg.HighestFreq <= cfg.LowestFreq {
		return nil, fmt.Errorf("invalid conditioner range: %g-%g Hz at %g Hz",
			cfg.LowestFreq, cfg.HighestFreq, cfg.SampleRate)
	}
	if cfg.GateThresholdDB == 0 {
		cfg.GateThresholdDB = DefaultGateThresholdDB
	}
	if cfg.Attenuation == 0 {
		cfg.Attenuation = DefaultAttenuation
	}
	if cfg.BlockSize <= 0 {
		cfg.BlockSize = DefaultBlockSize
	}

	cutoff := min(cfg.HighestFreq*lowpassHarmonics/cfg.SampleRate, maxLowpassCutoff)
	transition := min(cutoff, 0.5-cutoff) / transitionDivisor
	coeffs, err := DesignLowpassAuto(cutoff, transition, cfg.Attenuation)
	if err != nil {
		return nil, fmt.Errorf("design lowpass: %w", err)
	}

	return &Conditioner[F]{
		dc:   NewDCBlocker(cfg.LowestFreq/dcCutoffDivisor, cfg.SampleRate),
		fir:  NewFIR[F](coeffs, cfg.BlockSize),
		gate: NewNoiseGate(cfg.GateThresholdDB, gateReleaseSeconds, cfg.SampleRate),
		buf:  make([]F, cfg.BlockSize),
	}, nil
}

// Process conditions one sample.
func (c *Conditioner[F]) Process(x F) F {
	y := c.fir.Process(F(c.dc.Process(float64(x))))
	return F(c.gate.Process(float64(y)))
}

// ProcessBlock conditions src into dst. dst must be at least as long as
// src and may alias it.
func (c *Conditioner[F]) ProcessBlock(dst, src []F) {
	for len(src) > 0 {
		m := min(len(src), len(c.buf))
		buf := c.buf[:m]
		for i, x := range src[:m] {
			buf[i] = F(c.dc.Process(float64(x)))
		}
		c.fir.ProcessBlock(dst[:m], buf)
		for i, y := range dst[:m] {
			dst[i] = F(c.gate.Process(float64(y)))
		}
		dst, src = dst[m:], src[m:]
	}
}

// Delay returns the latency added by the lowpass, in samples.
func (c *Conditioner[F]) Delay() int { return c.fir.Delay() }

// Taps returns the lowpass length.
func (c *Conditioner[F]) Taps() int { return c.fir.Taps() }

// GateOpen reports whether the noise gate passes the signal.
func (c *Conditioner[F]) GateOpen() bool { return c.gate.Open() }

// Reset clears all filter state.
func (c *Conditioner[F]) Reset() {
	c.dc.Reset()
	c.fir.Reset()
	c.gate.Reset()
}
