// Package bitstream rasterizes tracked pulses into a packed bitset and
// autocorrelates it with word-parallel XOR and popcount.
package bitstream

const wordBits = 64

// Bitset is a fixed-size packed bit array.
type Bitset struct {
	words []uint64
	size  int
}

// NewBitset returns a zeroed bitset holding at least size bits, rounded up
// to whole 64-bit words.
func NewBitset(size int) *Bitset {
	n := (size + wordBits - 1) / wordBits
	return &Bitset{
		words: make([]uint64, n),
		size:  n * wordBits,
	}
}

// Size returns the number of bits.
func (b *Bitset) Size() int { return b.size }

// Words returns the backing words. Bit i is bit i%64 of word i/64.
func (b *Bitset) Words() []uint64 { return b.words }

// Clear zeroes every bit.
func (b *Bitset) Clear() {
	clear(b.words)
}

// Get returns bit i. Out-of-range bits read as false.
func (b *Bitset) Get(i int) bool {
	if i < 0 || i >= b.size {
		return false
	}
	return b.words[i/wordBits]&(1<<(uint(i)%wordBits)) != 0
}

// Set sets n bits starting at pos, clipped to the bitset.
func (b *Bitset) Set(pos, n int) {
	end := min(pos+n, b.size)
	pos = max(pos, 0)
	if pos >= end {
		return
	}

	first, last := pos/wordBits, (end-1)/wordBits
	lo := ^uint64(0) << (uint(pos) % wordBits)
	hi := ^uint64(0) >> (wordBits - 1 - uint(end-1)%wordBits)

	if first == last {
		b.words[first] |= lo & hi
		return
	}
	b.words[first] |= lo
	for i := first + 1; i < last; i++ {
		b.words[i] = ^uint64(0)
	}
	b.words[last] |= hi
}

// Count returns the number of set bits.
func (b *Bitset) Count() int {
	var n int
	for _, w := range b.words {
		n += popcount(w)
	}
	return n
}
