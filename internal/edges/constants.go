package edges

// Tracker sizing constants
const (
	// DefaultCapacity is the default number of edges the ring retains.
	DefaultCapacity = 128

	minCapacity = 2 // At least two edges are needed for a period

	// Windows overlap by half, so edges shift by this fraction of the window.
	windowHopDivisor = 2
)
