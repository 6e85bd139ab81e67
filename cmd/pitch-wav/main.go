// Command pitch-wav tracks the pitch of every channel of a WAV file.
//
// Usage:
//
//	pitch-wav input.wav                          # CSV to stdout, summary to stderr
//	pitch-wav -lowest 75 -highest 1400 guitar.wav
//	pitch-wav -precondition -o pitch.csv voice.wav
//	pitch-wav -spectral input.wav                # add an FFT peak column
//
// Each completed analysis window produces one CSV row per channel.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"

	pitch "github.com/tphakala/go-pitch-detector"
	"github.com/tphakala/go-pitch-detector/internal/logging"
)

const (
	// CLI defaults
	defaultLowestHz  = 80.0
	defaultHighestHz = 1000.0
	minRequiredArgs  = 1
)

var errUsage = errors.New("insufficient arguments")

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	lowest := flag.Float64("lowest", defaultLowestHz, "Lowest frequency to detect in Hz")
	highest := flag.Float64("highest", defaultHighestHz, "Highest frequency to detect in Hz")
	hysteresis := flag.Float64("hysteresis", pitch.DefaultHysteresisDB, "Zero-crossing hysteresis in dB")
	precondition := flag.Bool("precondition", false, "Apply DC blocker, lowpass and noise gate before detection")
	parallel := flag.Bool("parallel", true, "Track channels concurrently")
	spectral := flag.Bool("spectral", false, "Add an FFT peak frequency column for comparison")
	outPath := flag.String("o", "", "Write CSV to file instead of stdout")
	verbose := flag.Bool("v", false, "Verbose output")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] input.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -lowest 75 -highest 1400 guitar.wav   # Guitar range\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -precondition -o out.csv voice.wav    # Noisy input\n", os.Args[0])
		return errUsage
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	logger := pitch.NewLogger(*verbose)
	inputPath := args[0]

	opts := analyzeOptions{
		lowest:       *lowest,
		highest:      *highest,
		hysteresis:   *hysteresis,
		precondition: *precondition,
		parallel:     *parallel,
		spectral:     *spectral,
		logger:       logger,
	}

	start := time.Now()
	input, err := loadWAV(inputPath)
	if err != nil {
		return err
	}
	logger.Debug("input loaded", logging.Fields{
		"path":        inputPath,
		"sample_rate": input.rate,
		"channels":    len(input.channels),
		"bit_depth":   input.bitDepth,
		"frames":      input.frames(),
	})

	rows, err := analyze(input, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	var out io.Writer = os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}
	if err := writeCSV(out, rows, opts.spectral); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Tracked %s\n", filepath.Base(inputPath))
	fmt.Fprintf(os.Stderr, "  %d Hz, %d channels, %d-bit, %.2fs\n",
		input.rate, len(input.channels), input.bitDepth, input.duration().Seconds())
	for ch := range input.channels {
		fmt.Fprintf(os.Stderr, "  channel %d: %s\n", ch, summarize(rows, ch))
	}
	fmt.Fprintf(os.Stderr, "  Duration: %.2fs, Speed: %.1fx realtime\n",
		elapsed.Seconds(), input.duration().Seconds()/elapsed.Seconds())

	return nil
}
