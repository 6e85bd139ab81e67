package pitch

import (
	"fmt"
	"sync"

	"github.com/tphakala/go-pitch-detector/internal/mathutil"
)

// Estimate is the detector output for one completed analysis window.
type Estimate struct {
	// Sample is the index of the input sample that completed the window.
	Sample int

	// Frequency in Hz, 0 when no note is tracked.
	Frequency float64

	// Periodicity is the window's confidence, from 0 to 1.
	Periodicity float64

	// Period is the fundamental period in samples, -1 when none was found.
	Period float64

	// NoteShift is true when the window started a new note.
	NoteShift bool
}

// estimate snapshots the detector after a completed window.
func (d *Detector) estimate(sample int) Estimate {
	return Estimate{
		Sample:      sample,
		Frequency:   d.Frequency(),
		Periodicity: d.Periodicity(),
		Period:      d.Period(),
		NoteShift:   d.IsNoteShift(),
	}
}

// Track runs a new detector over samples and returns one Estimate per
// completed analysis window.
func Track(samples []float64, config *Config) ([]Estimate, error) {
	d, err := New(config)
	if err != nil {
		return nil, err
	}
	return d.track(samples), nil
}

// TrackFloat32 is Track for float32 input.
func TrackFloat32(samples []float32, config *Config) ([]Estimate, error) {
	d, err := New(config)
	if err != nil {
		return nil, err
	}
	estimates := make([]Estimate, 0, len(samples)/windowHop(d)+1)
	for i, s := range samples {
		if d.ProcessFloat32(s) {
			estimates = append(estimates, d.estimate(i))
		}
	}
	return estimates, nil
}

func (d *Detector) track(samples []float64) []Estimate {
	estimates := make([]Estimate, 0, len(samples)/windowHop(d)+1)
	for i, s := range samples {
		if d.Process(s) {
			estimates = append(estimates, d.estimate(i))
		}
	}
	return estimates
}

// windowHop is the number of samples between completed windows.
func windowHop(d *Detector) int {
	return max(d.WindowSize()/2, 1)
}

// TrackChannels runs one detector per channel. With parallel set and more
// than one channel, channels are processed concurrently.
func TrackChannels(channels [][]float64, config *Config, parallel bool) ([][]Estimate, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	output := make([][]Estimate, len(channels))

	if !parallel || len(channels) <= 1 {
		for ch := range channels {
			result, err := Track(channels[ch], config)
			if err != nil {
				return nil, fmt.Errorf("channel %d: %w", ch, err)
			}
			output[ch] = result
		}
		return output, nil
	}

	var wg sync.WaitGroup
	errChan := make(chan error, len(channels))

	for ch := range channels {
		wg.Add(1)
		go func(channel int) {
			defer wg.Done()

			result, err := Track(channels[channel], config)
			if err != nil {
				errChan <- fmt.Errorf("channel %d: %w", channel, err)
				return
			}
			output[channel] = result
		}(ch)
	}

	wg.Wait()
	close(errChan)

	for err := range errChan {
		if err != nil {
			return nil, err
		}
	}

	return output, nil
}

// NewGuitar creates a detector covering a guitar in standard tuning.
func NewGuitar(sampleRate float64) (*Detector, error) {
	return New(&Config{
		LowestFreq:  GuitarLowest,
		HighestFreq: GuitarHighest,
		SampleRate:  sampleRate,
	})
}

// NewBass creates a detector covering a four-string bass.
func NewBass(sampleRate float64) (*Detector, error) {
	return New(&Config{
		LowestFreq:  BassLowest,
		HighestFreq: BassHighest,
		SampleRate:  sampleRate,
	})
}

// NewVoice creates a detector covering the human singing voice, with input
// conditioning enabled.
func NewVoice(sampleRate float64) (*Detector, error) {
	return New(&Config{
		LowestFreq:   VoiceLowest,
		HighestFreq:  VoiceHighest,
		SampleRate:   sampleRate,
		Precondition: true,
	})
}

// NoteFrequency returns the equal-tempered frequency of a MIDI note,
// with A4 (69) at 440 Hz.
func NoteFrequency(midi int) float64 { return mathutil.NoteFrequency(midi) }

// MIDINote returns the nearest MIDI note number for freq.
func MIDINote(freq float64) int { return mathutil.MIDINote(freq) }

// NoteName returns the name of the nearest note, such as "A4".
func NoteName(freq float64) string { return mathutil.NoteName(freq) }

// Cents returns the distance from ref to freq in cents.
func Cents(freq, ref float64) float64 { return mathutil.Cents(freq, ref) }
