package bitstream

import "math/bits"

// Correlator computes the Hamming distance between a bitset and itself
// shifted by a lag, over the first half of the window.
type Correlator struct {
	bits     *Bitset
	midArray int
}

// NewCorrelator binds a correlator to b. The bitset is read on every call
// to Mismatch, so it may be rebuilt in place between calls.
func NewCorrelator(b *Bitset) *Correlator {
	return &Correlator{
		bits:     b,
		midArray: max(len(b.words)/2-1, 1),
	}
}

// Mismatch returns the number of differing bits between the stream and the
// stream advanced by lag samples. Zero is a perfect periodic match. Lags
// that cannot be verified within the window return MaxMismatch.
func (c *Correlator) Mismatch(lag int) int {
	words := c.bits.words
	index := lag / wordBits
	if lag < 0 || c.midArray+index >= len(words) {
		return c.MaxMismatch()
	}
	shift := uint(lag) % wordBits

	var count int
	for i := range c.midArray {
		// Shifting by 64 yields zero, which covers lags on word boundaries.
		v := words[i+index]>>shift | words[i+index+1]<<(wordBits-shift)
		count += popcount(words[i] ^ v)
	}
	return count
}

// MaxMismatch is the number of bits compared per lag.
func (c *Correlator) MaxMismatch() int {
	return c.midArray * wordBits
}

func popcount(w uint64) int {
	return bits.OnesCount64(w)
}
