package edges

// Tracker is the zero-crossing tracker. It records positive pulses of the
// signal in a fixed-capacity ring and reports when a full analysis window
// has been collected.
//
// Each call to Process advances the window by one sample. When the window
// fills (and the signal is low) the tracker becomes ready; on the next call
// every edge is moved back by half a window and edges that ended before the
// new window start are dropped.
//
// A Tracker allocates only in New.
type Tracker struct {
	ring  []Edge
	head  int // index of the oldest edge
	count int

	hysteresis float64 // negative linear threshold
	windowSize int
	frame      int
	prev       float64
	state      bool
	ready      bool
	wasReset   bool
	completed  uint64
}

// New creates a tracker. hysteresis is the linear amplitude of the dead
// zone (positive; e.g. DBToLinear(-45)). windowSize is the analysis window
// length in samples. capacity bounds the number of retained edges; values
// below 2 select DefaultCapacity.
func New(hysteresis float64, windowSize, capacity int) *Tracker {
	if capacity < minCapacity {
		capacity = DefaultCapacity
	}
	if hysteresis < 0 {
		hysteresis = -hysteresis
	}
	return &Tracker{
		ring:       make([]Edge, capacity),
		hysteresis: -hysteresis,
		windowSize: windowSize,
	}
}

// Process feeds one sample and returns the pulse state (true while the
// signal is inside a pulse).
func (t *Tracker) Process(s float64) bool {
	// Offset s by half the hysteresis so detection is centered on zero.
	s += t.hysteresis / 2
	t.wasReset = false

	if t.ready {
		t.shift(t.windowSize / windowHopDivisor)
		t.ready = false
	}

	if t.frame == t.windowSize/windowHopDivisor && t.count == 0 {
		t.Reset()
	}

	t.update(s)

	t.frame++
	if t.frame >= t.windowSize && !t.state {
		// Continue seamlessly with the second half of this window.
		t.frame -= t.windowSize / windowHopDivisor

		// At least two edges are needed for a period.
		if t.count > 1 {
			t.ready = true
		} else {
			t.Reset()
		}
	}

	return t.state
}

func (t *Tracker) update(s float64) {
	switch {
	case s > 0:
		if !t.state {
			t.push(Edge{
				Crossing:     [2]float64{t.prev, s},
				Peak:         s,
				LeadingEdge:  t.frame,
				TrailingEdge: UndefinedEdge,
			})
			t.state = true
		} else if e := t.newest(); s > e.Peak {
			e.Peak = s
		}
	case t.state && s < t.hysteresis:
		t.state = false
		t.newest().TrailingEdge = t.frame
		t.completed++
	}
	t.prev = s
}

// push appends e, overwriting the oldest edge when the ring is full.
func (t *Tracker) push(e Edge) {
	capacity := len(t.ring)
	if t.count == capacity {
		t.head = (t.head + 1) % capacity
		t.count--
	}
	t.ring[(t.head+t.count)%capacity] = e
	t.count++
}

func (t *Tracker) newest() *Edge {
	return &t.ring[(t.head+t.count-1)%len(t.ring)]
}

// shift moves every edge n samples back and drops the edges that ended
// before the start of the window.
func (t *Tracker) shift(n int) {
	for i := range t.count {
		e := t.Edge(i)
		e.LeadingEdge -= n
		if e.Closed() {
			e.TrailingEdge -= n
		}
	}
	for t.count > 0 {
		oldest := &t.ring[t.head]
		if !oldest.Closed() || oldest.TrailingEdge >= 0 {
			break
		}
		t.head = (t.head + 1) % len(t.ring)
		t.count--
	}
}

// Reset drops all edges and restarts the window.
func (t *Tracker) Reset() {
	t.head = 0
	t.count = 0
	t.state = false
	t.ready = false
	t.frame = 0
	t.wasReset = true
}

// Edge returns the i-th retained edge, oldest first. The pointer stays valid
// until the next call to Process.
func (t *Tracker) Edge(i int) *Edge {
	return &t.ring[(t.head+i)%len(t.ring)]
}

// NumEdges returns the number of retained edges.
func (t *Tracker) NumEdges() int { return t.count }

// Capacity returns the ring capacity.
func (t *Tracker) Capacity() int { return len(t.ring) }

// WindowSize returns the analysis window length in samples.
func (t *Tracker) WindowSize() int { return t.windowSize }

// Frame returns the window-relative index of the next sample.
func (t *Tracker) Frame() int { return t.frame }

// State returns the current pulse state.
func (t *Tracker) State() bool { return t.state }

// IsReady reports whether the last Process call completed a window.
func (t *Tracker) IsReady() bool { return t.ready }

// IsReset reports whether the last Process call reset the tracker.
func (t *Tracker) IsReset() bool { return t.wasReset }

// Completed returns the number of pulses closed since construction. It
// changes whenever a new edge is finalized.
func (t *Tracker) Completed() uint64 { return t.completed }

// PeakPulse returns the largest pulse peak among the retained edges.
func (t *Tracker) PeakPulse() float64 {
	var peak float64
	for i := range t.count {
		peak = max(peak, t.Edge(i).Peak)
	}
	return peak
}
