package mathutil

import (
	"math"
	"strconv"
)

// noteNames is the chromatic scale starting at C.
var noteNames = [notesPerOctave]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

// NoteFrequency returns the equal-tempered frequency of a MIDI note number
// (A4 = 69 = 440 Hz).
func NoteFrequency(midi int) float64 {
	return referenceA4 * math.Exp2(float64(midi-referenceA4MIDI)/notesPerOctave)
}

// MIDINote returns the nearest MIDI note number for freq, or -1 if freq is
// not positive.
func MIDINote(freq float64) int {
	if freq <= 0 || math.IsInf(freq, 0) || math.IsNaN(freq) {
		return -1
	}
	return int(math.Round(notesPerOctave*math.Log2(freq/referenceA4))) + referenceA4MIDI
}

// NoteName returns the scientific pitch name of the note nearest to freq,
// such as "A4" or "C#3". It returns "" for non-positive frequencies.
func NoteName(freq float64) string {
	midi := MIDINote(freq)
	if midi < 0 {
		return ""
	}
	octave := midi/notesPerOctave - 1
	return noteNames[midi%notesPerOctave] + strconv.Itoa(octave)
}

// Cents returns the distance from ref to freq in cents.
func Cents(freq, ref float64) float64 {
	if freq <= 0 || ref <= 0 {
		return 0
	}
	return centsPerOctave * math.Log2(freq/ref)
}
