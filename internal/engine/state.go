package engine

// State is the note-continuity state of a PitchDetector.
type State int

const (
	// StateIdle means no note is being tracked and the frequency is 0.
	StateIdle State = iota

	// StateShifted is the frame on which a note was accepted, either from
	// Idle or as a confirmed shift from another note.
	StateShifted

	// StateTracking is any later frame of the same note.
	StateTracking
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateShifted:
		return "shifted"
	case StateTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// verdict is the outcome of reconciling one frame with the current note.
type verdict int

const (
	verdictAccepted verdict = iota // same note, harmonic of it, or predicted
	verdictShift                   // a new note replaces the current one
	verdictDeferred                // pushed through the median but not trusted
	verdictMissed                  // no usable estimate
)

// next returns the state that follows a frame with the given verdict.
func next(v verdict) State {
	if v == verdictShift {
		return StateShifted
	}
	return StateTracking
}
