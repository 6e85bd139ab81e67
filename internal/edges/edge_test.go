package edges

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEdgeClosedAndWidth(t *testing.T) {
	e := Edge{LeadingEdge: 10, TrailingEdge: UndefinedEdge}
	assert.False(t, e.Closed())
	assert.Equal(t, 0, e.Width())

	e.TrailingEdge = 25
	assert.True(t, e.Closed())
	assert.Equal(t, 15, e.Width())
}

func TestEdgeFractionalPeriod(t *testing.T) {
	tests := []struct {
		name  string
		first Edge
		next  Edge
		want  float64
	}{
		{
			name:  "interpolated crossings",
			first: Edge{Crossing: [2]float64{-0.5, 0.5}, LeadingEdge: 0},
			next:  Edge{Crossing: [2]float64{-0.25, 0.75}, LeadingEdge: 10},
			want:  9.75,
		},
		{
			name:  "flat crossing falls back to sample grid",
			first: Edge{Crossing: [2]float64{0.5, 0.5}, LeadingEdge: 3},
			next:  Edge{Crossing: [2]float64{-0.1, 0.3}, LeadingEdge: 13},
			want:  10.25,
		},
		{
			name:  "descending pair ignored",
			first: Edge{Crossing: [2]float64{-0.1, -0.2}, LeadingEdge: 0},
			next:  Edge{Crossing: [2]float64{-1, 1}, LeadingEdge: 100},
			want:  100.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.next.LeadingEdge-tt.first.LeadingEdge, tt.first.Period(&tt.next))
			assert.InDelta(t, tt.want, tt.first.FractionalPeriod(&tt.next), 1e-12)
		})
	}
}
