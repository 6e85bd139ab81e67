package main

import (
	"math/bits"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// zeroPadFactor interpolates the spectrum so the peak bin is finer than
// the analysis window alone allows.
const zeroPadFactor = 4

// spectralPeak returns the frequency of the strongest Hann-windowed FFT
// bin of frame between lowest and highest Hz, refined by parabolic
// interpolation. It returns 0 for an empty or silent frame.
func spectralPeak(frame []float64, sampleRate, lowest, highest float64) float64 {
	if len(frame) == 0 {
		return 0
	}

	n := 1 << bits.Len(uint(len(frame)*zeroPadFactor-1))
	buf := make([]float64, n)
	copy(buf, frame)
	window.Apply(buf[:len(frame)], window.Hann)

	spectrum := fft.FFTReal(buf)
	binHz := sampleRate / float64(n)

	lo := max(int(lowest/binHz), 1)
	hi := min(int(highest/binHz)+1, n/2-1)

	peak, peakMag := -1, 0.0
	for k := lo; k <= hi; k++ {
		if m := cmplx.Abs(spectrum[k]); m > peakMag {
			peak, peakMag = k, m
		}
	}
	if peak < 0 {
		return 0
	}

	a := cmplx.Abs(spectrum[peak-1])
	b := peakMag
	c := cmplx.Abs(spectrum[peak+1])
	offset := 0.0
	if denom := a - 2*b + c; denom != 0 {
		offset = 0.5 * (a - c) / denom
	}
	return (float64(peak) + offset) * binHz
}
