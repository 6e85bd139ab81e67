package filter

import "github.com/tphakala/go-pitch-detector/internal/simdops"

// FIR is a streaming FIR filter. It keeps its history in a doubled ring so
// every output is a single contiguous SIMD dot product, and filters blocks
// with a SIMD valid convolution. It allocates only in NewFIR.
type FIR[F simdops.Float] struct {
	ops      *simdops.Ops[F]
	coeffs   []F // natural order, for the newest-first history window
	reversed []F // reversed, for ConvolveValid
	history  []F // two copies of an n-sample ring
	pos      int
	scratch  []F // n-1 samples of history followed by one block
	block    int
}

// NewFIR creates a filter from coeffs. blockSize bounds the chunk length
// used by ProcessBlock; longer inputs are processed in several chunks.
func NewFIR[F simdops.Float](coeffs []float64, blockSize int) *FIR[F] {
	n := len(coeffs)
	f := &FIR[F]{
		ops:      simdops.For[F](),
		coeffs:   make([]F, n),
		reversed: make([]F, n),
		history:  make([]F, 2*n),
		scratch:  make([]F, n-1+blockSize),
		block:    blockSize,
	}
	for i, c := range coeffs {
		f.coeffs[i] = F(c)
		f.reversed[n-1-i] = F(c)
	}
	return f
}

// Taps returns the filter length.
func (f *FIR[F]) Taps() int { return len(f.coeffs) }

// Delay returns the group delay in samples of a symmetric filter.
func (f *FIR[F]) Delay() int { return (len(f.coeffs) - 1) / 2 }

func (f *FIR[F]) push(x F) {
	n := len(f.coeffs)
	f.pos--
	if f.pos < 0 {
		f.pos = n - 1
	}
	f.history[f.pos] = x
	f.history[f.pos+n] = x
}

// Process filters one sample.
func (f *FIR[F]) Process(x F) F {
	n := len(f.coeffs)
	f.push(x)
	return f.ops.DotProductUnsafe(f.history[f.pos:f.pos+n], f.coeffs)
}

// ProcessBlock filters src into dst. dst must be at least as long as src
// and may alias it.
func (f *FIR[F]) ProcessBlock(dst, src []F) {
	for len(src) > 0 {
		m := min(len(src), f.block)
		f.processChunk(dst[:m], src[:m])
		dst, src = dst[m:], src[m:]
	}
}

func (f *FIR[F]) processChunk(dst, src []F) {
	n := len(f.coeffs)
	m := len(src)

	// History oldest first, then the new samples.
	window := f.history[f.pos : f.pos+n]
	for i := range n - 1 {
		f.scratch[i] = window[n-2-i]
	}
	copy(f.scratch[n-1:], src)

	for _, x := range src[max(0, m-n):] {
		f.push(x)
	}
	f.ops.ConvolveValid(dst, f.scratch[:n-1+m], f.reversed)
}

// Reset clears the filter history.
func (f *FIR[F]) Reset() {
	clear(f.history)
	f.pos = 0
}
