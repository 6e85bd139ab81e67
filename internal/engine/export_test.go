package engine

// Export internal functions for testing.
// This file uses the _test.go suffix so it's only included in test builds.

// UpdateForTest feeds one window's frequency and periodicity directly into
// the state machine.
func (d *PitchDetector) UpdateForTest(incoming, periodicity float64) {
	d.update(incoming, periodicity)
}

// HarmonicOfForTest wraps harmonicOf for testing.
func HarmonicOfForTest(current, incoming, tolerance float64) (float64, bool) {
	return harmonicOf(current, incoming, tolerance)
}
