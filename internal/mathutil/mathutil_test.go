package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tphakala/go-pitch-detector/internal/testutil"
)

func TestDBToLinear(t *testing.T) {
	tests := []struct {
		name     string
		db       float64
		expected float64
	}{
		{"Unity", 0, 1},
		{"Half", -6.020599913, 0.5},
		{"Tenth", -20, 0.1},
		{"Default hysteresis", -45, 0.005623413},
		{"Gain", 20, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertRelativeError(t, tt.expected, DBToLinear(tt.db), 1e-8)
		})
	}
}

func TestLinearToDB_RoundTrip(t *testing.T) {
	for _, db := range []float64{-90, -45, -30, -6, 0, 12} {
		assert.InDelta(t, db, LinearToDB(DBToLinear(db)), 1e-9)
	}
}

func TestLinearToDB_Floor(t *testing.T) {
	got := LinearToDB(0)
	assert.False(t, math.IsInf(got, 0), "zero amplitude must not produce -Inf")
	assert.InDelta(t, -240.0, got, 1e-9)
}

// TestBesselI0 tests BesselI0 against reference values.
func TestBesselI0(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		expected float64
	}{
		{"Zero", 0.0, 1.0},
		{"Half", 0.5, 1.0634833707413236},
		{"One", 1.0, 1.2660658777520082},
		{"Two", 2.0, 2.2795853023360673},
		{"Five", 5.0, 27.239871823604442},
		{"Ten", 10.0, 2815.716628466254},
		{"Negative one", -1.0, 1.2660658777520082},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertRelativeError(t, tt.expected, BesselI0(tt.x), 1e-12)
		})
	}
}

func TestBesselI0_Monotonic(t *testing.T) {
	prev := BesselI0(0)
	for x := 0.1; x < 15.0; x += 0.1 {
		curr := BesselI0(x)
		assert.Greater(t, curr, prev, "BesselI0 not increasing at x=%v", x)
		prev = curr
	}
}

func TestKaiserBeta(t *testing.T) {
	tests := []struct {
		name        string
		attenuation float64
		expectedMin float64
		expectedMax float64
	}{
		{"20dB", 20.0, 0.0, 0.0},
		{"50dB", 50.0, 4.5, 4.6},
		{"60dB", 60.0, 5.6, 5.7},
		{"80dB", 80.0, 7.8, 7.9},
		{"100dB", 100.0, 10.0, 10.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertInRange(t, KaiserBeta(tt.attenuation), tt.expectedMin, tt.expectedMax)
		})
	}
}

func TestEstimateFilterLength(t *testing.T) {
	assert.Equal(t, 363, EstimateFilterLength(60, 0.01))
	assert.Equal(t, 1, EstimateFilterLength(60, 0.01)%2, "length must be odd")
	assert.Equal(t, maxFilterLength, EstimateFilterLength(60, 0))
	assert.Equal(t, minFilterLength, EstimateFilterLength(10, 0.4))
}

func TestMedian3(t *testing.T) {
	var m Median3
	assert.Zero(t, m.Value())

	m.Seed(100)
	assert.InDelta(t, 100.0, m.Value(), 0)

	// A single outlier does not move the median.
	assert.InDelta(t, 100.0, m.Push(400), 0)

	// Two consecutive values take over.
	m.Push(200)
	assert.InDelta(t, 200.0, m.Push(200), 0)

	m.Reset()
	assert.Zero(t, m.Value())
}

func TestMedian3_Order(t *testing.T) {
	tests := []struct {
		a, b, c, expected float64
	}{
		{1, 2, 3, 2},
		{3, 2, 1, 2},
		{2, 3, 1, 2},
		{1, 1, 5, 1},
		{5, 1, 5, 5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, median3(tt.a, tt.b, tt.c), 0, "median3(%v, %v, %v)", tt.a, tt.b, tt.c)
	}
}

func TestNotes(t *testing.T) {
	assert.InDelta(t, 440.0, NoteFrequency(69), 1e-9)
	assert.InDelta(t, 261.6255653, NoteFrequency(60), 1e-6)
	assert.Equal(t, 69, MIDINote(440))
	assert.Equal(t, 69, MIDINote(445))
	assert.Equal(t, -1, MIDINote(0))

	assert.Equal(t, "A4", NoteName(440))
	assert.Equal(t, "C4", NoteName(261.63))
	assert.Equal(t, "G#2", NoteName(103.83))
	assert.Equal(t, "", NoteName(-1))

	assert.InDelta(t, 1200.0, Cents(880, 440), 1e-9)
	assert.InDelta(t, -100.0, Cents(NoteFrequency(68), 440), 1e-9)
	assert.Zero(t, Cents(0, 440))
}
