package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-pitch-detector/internal/testutil"
)

const testSampleRate = 44100

// writeTestWAV encodes channels as a 16-bit PCM WAV file and returns its path.
func writeTestWAV(t *testing.T, channels [][]float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	numChannels := len(channels)
	frames := len(channels[0])
	data := make([]int, frames*numChannels)
	for i := range frames {
		for ch := range numChannels {
			data[i*numChannels+ch] = int(channels[ch][i] * maxInt16)
		}
	}

	enc := wav.NewEncoder(f, testSampleRate, bitsPerSample16, numChannels, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChannels, SampleRate: testSampleRate},
		Data:           data,
		SourceBitDepth: bitsPerSample16,
	}))
	require.NoError(t, enc.Close())
	return path
}

func testOptions() analyzeOptions {
	return analyzeOptions{
		lowest:   defaultLowestHz,
		highest:  defaultHighestHz,
		parallel: true,
	}
}

func TestLoadWAV_FileNotFound(t *testing.T) {
	_, err := loadWAV("/nonexistent/file.wav")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestLoadWAV_InvalidWAV(t *testing.T) {
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = loadWAV(invalidFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestLoadWAV_Stereo(t *testing.T) {
	left := testutil.Sine(220, testSampleRate, 0.5, testSampleRate/2)
	right := testutil.Sine(330, testSampleRate, 0.5, testSampleRate/2)
	path := writeTestWAV(t, [][]float64{left, right})

	input, err := loadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, testSampleRate, input.rate)
	assert.Equal(t, bitsPerSample16, input.bitDepth)
	require.Len(t, input.channels, 2)
	assert.Equal(t, len(left), input.frames())
	assert.InDelta(t, 0.5, input.duration().Seconds(), 1e-6)

	for i := range 100 {
		assert.InDelta(t, left[i], input.channels[0][i], 1e-4)
		assert.InDelta(t, right[i], input.channels[1][i], 1e-4)
	}
}

func TestGetMaxValue(t *testing.T) {
	tests := []struct {
		bitDepth int
		want     float64
	}{
		{bitsPerSample16, maxInt16},
		{bitsPerSample24, maxInt24},
		{bitsPerSample32, maxInt32},
	}
	for _, tt := range tests {
		got, err := getMaxValue(tt.bitDepth)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 0)
	}

	_, err := getMaxValue(8)
	require.Error(t, err)
}

func TestDeinterleaveInto_Multichannel(t *testing.T) {
	buf := &audio.IntBuffer{Data: []int{1, 2, 3, 4, 5, 6}}
	channels := [][]float64{make([]float64, 2), make([]float64, 2), make([]float64, 2)}

	deinterleaveInto(buf, channels, 2, 0.5)
	assert.Equal(t, []float64{0.5, 2}, channels[0])
	assert.Equal(t, []float64{1, 2.5}, channels[1])
	assert.Equal(t, []float64{1.5, 3}, channels[2])
}

func TestAnalyze(t *testing.T) {
	path := writeTestWAV(t, [][]float64{
		testutil.Sine(220, testSampleRate, 0.5, testSampleRate/2),
		testutil.Sine(330, testSampleRate, 0.5, testSampleRate/2),
	})
	input, err := loadWAV(path)
	require.NoError(t, err)

	opts := testOptions()
	opts.spectral = true
	rows, err := analyze(input, opts)
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	for ch, want := range []float64{220, 330} {
		s := summarize(rows, ch)
		require.Positive(t, s.voiced, "channel %d", ch)
		assert.Equal(t, 1, s.shifts)
		assert.InDelta(t, want, s.median, 0.5)
		assert.Contains(t, s.String(), "voiced")
	}

	last := rows[len(rows)-1]
	assert.Equal(t, 1, last.channel)
	assert.Equal(t, "E4", last.note)
	assert.InDelta(t, 330, last.spectral, 2)
}

func TestAnalyze_InvalidRange(t *testing.T) {
	input := &wavInput{rate: testSampleRate, bitDepth: 16, channels: [][]float64{make([]float64, 10)}}
	opts := testOptions()
	opts.lowest, opts.highest = 500, 100

	_, err := analyze(input, opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pitch tracking failed")
}

func TestWriteCSV(t *testing.T) {
	input := &wavInput{
		rate:     testSampleRate,
		bitDepth: 16,
		channels: [][]float64{testutil.Sine(440, testSampleRate, 0.5, testSampleRate/4)},
	}
	rows, err := analyze(input, testOptions())
	require.NoError(t, err)

	for _, spectral := range []bool{false, true} {
		var out bytes.Buffer
		require.NoError(t, writeCSV(&out, rows, spectral))

		records, err := csv.NewReader(&out).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, len(rows)+1)
		assert.Equal(t, "channel", records[0][0])
		if spectral {
			assert.Len(t, records[0], 8)
			assert.Equal(t, "fft_peak_hz", records[0][7])
		} else {
			assert.Len(t, records[0], 7)
		}
		assert.Equal(t, "A4", records[len(records)-1][5])
	}
}

func TestSummarize_Silence(t *testing.T) {
	rows := []row{{channel: 0}, {channel: 0}}
	s := summarize(rows, 0)
	assert.Equal(t, 2, s.windows)
	assert.Zero(t, s.voiced)
	assert.Equal(t, "2 windows, no pitch detected", s.String())

	assert.Zero(t, summarize(rows, 1).windows)
}

func TestSpectralPeak(t *testing.T) {
	frame := testutil.Sine(440, testSampleRate, 1, 2048)
	assert.InDelta(t, 440, spectralPeak(frame, testSampleRate, 80, 1000), 1)

	assert.Zero(t, spectralPeak(nil, testSampleRate, 80, 1000))
	assert.Zero(t, spectralPeak(make([]float64, 1024), testSampleRate, 80, 1000))
}
