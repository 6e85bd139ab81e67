// Package pitch provides real-time monophonic pitch detection in pure Go.
//
// The detector follows the bitstream autocorrelation approach: the signal
// is reduced to zero-crossing pulses, each analysis window of pulses is
// rasterized into a packed bitstream, and candidate periods taken from
// pulse timing are verified with word-parallel XOR and popcount. Harmonic
// candidates are folded onto the fundamental, and a small state machine
// smooths the reported frequency across windows.
//
// # Features
//
//   - Sample-by-sample processing with bounded latency (two periods of the
//     lowest frequency) and no allocation after construction
//   - Sub-sample period accuracy from interpolated zero crossings
//   - Octave error suppression and debounced note-shift detection
//   - Optional conditioning chain: DC blocker, Kaiser FIR lowpass with SIMD
//     acceleration via github.com/tphakala/simd, and a noise gate
//   - One-shot helpers for whole buffers and multi-channel audio
//
// # Quick Start
//
// For streaming detection:
//
//	d, err := pitch.New(&pitch.Config{
//	    LowestFreq:  pitch.GuitarLowest,
//	    HighestFreq: pitch.GuitarHighest,
//	    SampleRate:  pitch.RateDAT,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, s := range samples {
//	    if d.Process(s) && d.IsNoteShift() {
//	        fmt.Println(pitch.NoteName(d.Frequency()))
//	    }
//	}
//
// For one-shot analysis of a buffer:
//
//	estimates, err := pitch.Track(samples, &pitch.Config{
//	    LowestFreq:  80,
//	    HighestFreq: 1000,
//	    SampleRate:  44100,
//	})
//
// # Output
//
// [Detector.Frequency] is 0 while no note is tracked. [Detector.Periodicity]
// is the confidence (0 to 1) of the last window, [Detector.IsNoteShift] is
// true on the window where a new note was accepted, and
// [Detector.PredictFrequency] estimates the frequency from pulse timing
// alone.
//
// # Thread Safety
//
// A [Detector] must not be used from several goroutines at once. Use one
// detector per channel; [TrackChannels] does this for whole buffers.
package pitch
