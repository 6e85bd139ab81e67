package bitstream

import "github.com/tphakala/go-pitch-detector/internal/edges"

// Build clears dst and rasterizes the strong closed pulses of tr into it.
// Pulses whose peak is below pulseThreshold times the strongest peak are
// marked inhibited and left out. It returns the absolute peak threshold.
func Build(dst *Bitset, tr *edges.Tracker, pulseThreshold float64) float64 {
	dst.Clear()

	threshold := tr.PeakPulse() * pulseThreshold
	for i := range tr.NumEdges() {
		e := tr.Edge(i)
		e.Inhibited = e.Peak < threshold
		if e.Inhibited || !e.Closed() {
			continue
		}
		lead := max(e.LeadingEdge, 0)
		dst.Set(lead, e.TrailingEdge-lead)
	}
	return threshold
}
