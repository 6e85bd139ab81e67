package mathutil

// Median3 is a 3-tap running median filter. The zero value holds zeros.
type Median3 struct {
	taps   [3]float64
	pos    int
	median float64
}

// Push adds x to the filter and returns the median of the last three values.
func (m *Median3) Push(x float64) float64 {
	m.taps[m.pos] = x
	m.pos++
	if m.pos == len(m.taps) {
		m.pos = 0
	}
	m.median = median3(m.taps[0], m.taps[1], m.taps[2])
	return m.median
}

// Seed fills every tap with x, so the next outputs start from x without
// being pulled towards older values.
func (m *Median3) Seed(x float64) {
	m.taps = [3]float64{x, x, x}
	m.pos = 0
	m.median = x
}

// Value returns the current median.
func (m *Median3) Value() float64 {
	return m.median
}

// Reset clears the filter back to zero.
func (m *Median3) Reset() {
	m.Seed(0)
}

func median3(a, b, c float64) float64 {
	return max(min(a, b), min(max(a, b), c))
}
