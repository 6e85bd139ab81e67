package main

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// summary describes the voiced windows of one channel.
type summary struct {
	windows int
	voiced  int
	shifts  int
	mean    float64
	stddev  float64
	p10     float64
	median  float64
	p90     float64
}

// summarize computes frequency statistics over the voiced rows of channel.
func summarize(rows []row, channel int) summary {
	var s summary
	var freqs []float64
	for _, r := range rows {
		if r.channel != channel {
			continue
		}
		s.windows++
		if r.estimate.NoteShift {
			s.shifts++
		}
		if r.estimate.Frequency > 0 {
			freqs = append(freqs, r.estimate.Frequency)
		}
	}

	s.voiced = len(freqs)
	if s.voiced == 0 {
		return s
	}

	slices.Sort(freqs)
	s.mean, s.stddev = stat.MeanStdDev(freqs, nil)
	s.p10 = stat.Quantile(0.1, stat.Empirical, freqs, nil)
	s.median = stat.Quantile(0.5, stat.Empirical, freqs, nil)
	s.p90 = stat.Quantile(0.9, stat.Empirical, freqs, nil)
	return s
}

func (s summary) String() string {
	if s.voiced == 0 {
		return fmt.Sprintf("%d windows, no pitch detected", s.windows)
	}
	return fmt.Sprintf("%d/%d windows voiced, %d notes, median %.2f Hz (p10 %.2f, p90 %.2f), mean %.2f ± %.2f Hz",
		s.voiced, s.windows, s.shifts, s.median, s.p10, s.p90, s.mean, s.stddev)
}
