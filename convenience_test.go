package pitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-pitch-detector/internal/testutil"
)

func TestTrack(t *testing.T) {
	signal := testutil.Concat(
		testutil.Sine(210, testSampleRate, 1, testSampleRate/4),
		testutil.Sine(315, testSampleRate, 1, testSampleRate/4),
	)

	estimates, err := Track(signal, testConfig())
	require.NoError(t, err)
	require.NotEmpty(t, estimates)

	var shifts int
	prev := -1
	for _, e := range estimates {
		assert.Greater(t, e.Sample, prev, "estimates must be ordered")
		prev = e.Sample
		if e.NoteShift {
			shifts++
		}
	}
	assert.Equal(t, 2, shifts)

	last := estimates[len(estimates)-1]
	testutil.AssertRelativeError(t, 315, last.Frequency, testutil.FrequencyTolerance)
	assert.InDelta(t, testSampleRate/315.0, last.Period, 0.5)
	assert.GreaterOrEqual(t, estimates[0].Sample, 896/2)
}

func TestTrackFloat32(t *testing.T) {
	signal := testutil.Sine(440, testSampleRate, 0.5, testSampleRate/4)
	signal32 := make([]float32, len(signal))
	for i, s := range signal {
		signal32[i] = float32(s)
	}

	estimates, err := TrackFloat32(signal32, testConfig())
	require.NoError(t, err)
	require.NotEmpty(t, estimates)
	testutil.AssertRelativeError(t, 440, estimates[len(estimates)-1].Frequency, testutil.FrequencyTolerance)
}

func TestTrackInvalidConfig(t *testing.T) {
	_, err := Track(nil, &Config{LowestFreq: 100, HighestFreq: 50, SampleRate: testSampleRate})
	require.ErrorIs(t, err, ErrInvalidFrequencyRange)

	_, err = TrackFloat32(nil, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = TrackChannels([][]float64{nil}, nil, true)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTrackEmpty(t *testing.T) {
	estimates, err := Track(nil, testConfig())
	require.NoError(t, err)
	assert.Empty(t, estimates)
}

// TestTrackChannelsParallel tests that parallel processing produces the same
// estimates as sequential processing.
func TestTrackChannelsParallel(t *testing.T) {
	freqs := []float64{196, 247, 330, 440}
	input := make([][]float64, len(freqs))
	for ch, f := range freqs {
		input[ch] = testutil.Sine(f, testSampleRate, 0.8, testSampleRate/4)
	}

	outputSeq, err := TrackChannels(input, testConfig(), false)
	if err != nil {
		t.Fatalf("Sequential TrackChannels failed: %v", err)
	}
	outputPar, err := TrackChannels(input, testConfig(), true)
	if err != nil {
		t.Fatalf("Parallel TrackChannels failed: %v", err)
	}

	if len(outputSeq) != len(outputPar) {
		t.Fatalf("Channel count mismatch: seq=%d, par=%d", len(outputSeq), len(outputPar))
	}

	for ch := range freqs {
		if len(outputSeq[ch]) != len(outputPar[ch]) {
			t.Fatalf("Channel %d length mismatch: seq=%d, par=%d",
				ch, len(outputSeq[ch]), len(outputPar[ch]))
		}
		for i := range outputSeq[ch] {
			if outputSeq[ch][i] != outputPar[ch][i] {
				t.Errorf("Channel %d estimate %d mismatch: seq=%+v, par=%+v",
					ch, i, outputSeq[ch][i], outputPar[ch][i])
				break
			}
		}

		// Channels are independent
		last := outputPar[ch][len(outputPar[ch])-1]
		testutil.AssertRelativeError(t, freqs[ch], last.Frequency, testutil.FrequencyTolerance, "channel %d", ch)
	}
}

// TestTrackChannelsSingle verifies that a single channel takes the
// sequential path.
func TestTrackChannelsSingle(t *testing.T) {
	output, err := TrackChannels([][]float64{testutil.Sine(220, testSampleRate, 1, testSampleRate/4)}, testConfig(), true)
	require.NoError(t, err)
	require.Len(t, output, 1)
	require.NotEmpty(t, output[0])
}

func TestInstrumentConstructors(t *testing.T) {
	tests := []struct {
		name    string
		create  func(float64) (*Detector, error)
		note    float64
		lowest  float64
		highest float64
	}{
		{"guitar", NewGuitar, 196, GuitarLowest, GuitarHighest},
		{"bass", NewBass, 55, BassLowest, BassHighest},
		{"voice", NewVoice, 262, VoiceLowest, VoiceHighest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.create(RateDAT)
			require.NoError(t, err)
			assert.Equal(t, tt.lowest, d.Config().LowestFreq)
			assert.Equal(t, tt.highest, d.Config().HighestFreq)

			d.ProcessBlock(testutil.Sine(tt.note, RateDAT, 0.8, RateDAT/2))
			testutil.AssertRelativeError(t, tt.note, d.Frequency(), testutil.FrequencyTolerance)
		})
	}
}

// BenchmarkTrackChannelsSequential benchmarks sequential multi-channel tracking.
func BenchmarkTrackChannelsSequential(b *testing.B) {
	benchmarkTrackChannels(b, false)
}

// BenchmarkTrackChannelsParallel benchmarks parallel multi-channel tracking.
func BenchmarkTrackChannelsParallel(b *testing.B) {
	benchmarkTrackChannels(b, true)
}

func benchmarkTrackChannels(b *testing.B, parallel bool) {
	b.Helper()

	input := [][]float64{
		testutil.Sine(220, RateDAT, 0.8, RateDAT),
		testutil.Sine(330, RateDAT, 0.8, RateDAT),
	}
	config := &Config{LowestFreq: GuitarLowest, HighestFreq: GuitarHighest, SampleRate: RateDAT}

	b.ResetTimer()
	for b.Loop() {
		if _, err := TrackChannels(input, config, parallel); err != nil {
			b.Fatal(err)
		}
	}
}
