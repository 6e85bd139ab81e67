package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	pitch "github.com/tphakala/go-pitch-detector"
	"github.com/tphakala/go-pitch-detector/internal/logging"
)

const (
	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// CSV formatting
	floatPrecision = 3
)

// wavInput holds a decoded WAV file as normalized per-channel samples.
type wavInput struct {
	rate     int
	bitDepth int
	channels [][]float64
}

func (w *wavInput) frames() int {
	if len(w.channels) == 0 {
		return 0
	}
	return len(w.channels[0])
}

func (w *wavInput) duration() time.Duration {
	if w.rate == 0 {
		return 0
	}
	return time.Duration(float64(w.frames()) / float64(w.rate) * float64(time.Second))
}

// loadWAV opens, validates and decodes a PCM WAV file.
func loadWAV(path string) (*wavInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	maxVal, err := getMaxValue(bitDepth)
	if err != nil {
		return nil, err
	}

	numChannels := buf.Format.NumChannels
	if numChannels < monoChannels {
		return nil, fmt.Errorf("invalid channel count %d", numChannels)
	}

	samplesPerChannel := len(buf.Data) / numChannels
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, samplesPerChannel)
	}
	deinterleaveInto(buf, channels, samplesPerChannel, 1/maxVal)

	return &wavInput{
		rate:     buf.Format.SampleRate,
		bitDepth: bitDepth,
		channels: channels,
	}, nil
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}
}

// deinterleaveInto converts interleaved int samples into preallocated
// per-channel buffers normalized to [-1, 1].
func deinterleaveInto(buf *audio.IntBuffer, channelBufs [][]float64, samplesPerChannel int, invMaxVal float64) {
	data := buf.Data
	numChannels := len(channelBufs)

	// Fast path for mono
	if numChannels == monoChannels {
		out := channelBufs[0]
		for i := range samplesPerChannel {
			out[i] = float64(data[i]) * invMaxVal
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0], channelBufs[1]
		for i := range samplesPerChannel {
			idx := i * stereoChannels
			buf0[i] = float64(data[idx]) * invMaxVal
			buf1[i] = float64(data[idx+1]) * invMaxVal
		}
		return
	}

	// General case
	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = float64(data[base+ch]) * invMaxVal
		}
	}
}

// analyzeOptions configures a tracking run.
type analyzeOptions struct {
	lowest       float64
	highest      float64
	hysteresis   float64
	precondition bool
	parallel     bool
	spectral     bool
	logger       logging.Logger
}

// row is one CSV record: a completed analysis window of one channel.
type row struct {
	channel  int
	time     float64
	estimate pitch.Estimate
	note     string
	spectral float64
}

// analyze tracks every channel of input and returns rows ordered by
// channel, then time.
func analyze(input *wavInput, opts analyzeOptions) ([]row, error) {
	cfg := &pitch.Config{
		LowestFreq:   opts.lowest,
		HighestFreq:  opts.highest,
		SampleRate:   float64(input.rate),
		Hysteresis:   opts.hysteresis,
		Precondition: opts.precondition,
		Logger:       opts.logger,
	}

	perChannel, err := pitch.TrackChannels(input.channels, cfg, opts.parallel)
	if err != nil {
		return nil, fmt.Errorf("pitch tracking failed: %w", err)
	}

	var window int
	if opts.spectral {
		d, err := pitch.New(cfg)
		if err != nil {
			return nil, err
		}
		window = d.WindowSize()
	}

	var rows []row
	for ch, estimates := range perChannel {
		for _, e := range estimates {
			r := row{
				channel:  ch,
				time:     float64(e.Sample) / float64(input.rate),
				estimate: e,
				note:     pitch.NoteName(e.Frequency),
			}
			if opts.spectral {
				start := max(e.Sample+1-window, 0)
				r.spectral = spectralPeak(input.channels[ch][start:e.Sample+1],
					float64(input.rate), opts.lowest, opts.highest)
			}
			rows = append(rows, r)
		}
	}
	return rows, nil
}

// writeCSV writes rows with a header line.
func writeCSV(w io.Writer, rows []row, spectral bool) error {
	cw := csv.NewWriter(w)

	header := []string{"channel", "time_s", "frequency_hz", "periodicity", "period_samples", "note", "note_shift"}
	if spectral {
		header = append(header, "fft_peak_hz")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(header))
	for _, r := range rows {
		record[0] = strconv.Itoa(r.channel)
		record[1] = strconv.FormatFloat(r.time, 'f', floatPrecision+1, 64)
		record[2] = strconv.FormatFloat(r.estimate.Frequency, 'f', floatPrecision, 64)
		record[3] = strconv.FormatFloat(r.estimate.Periodicity, 'f', floatPrecision, 64)
		record[4] = strconv.FormatFloat(r.estimate.Period, 'f', floatPrecision, 64)
		record[5] = r.note
		record[6] = strconv.FormatBool(r.estimate.NoteShift)
		if spectral {
			record[7] = strconv.FormatFloat(r.spectral, 'f', floatPrecision, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
