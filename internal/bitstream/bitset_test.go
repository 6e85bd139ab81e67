package bitstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBitsetRoundsToWords(t *testing.T) {
	assert.Equal(t, 128, NewBitset(100).Size())
	assert.Equal(t, 960, NewBitset(960).Size())
	assert.Len(t, NewBitset(960).Words(), 15)
}

func TestBitsetSet(t *testing.T) {
	tests := []struct {
		name      string
		pos, n    int
		wantCount int
		first     int
		last      int
	}{
		{"within one word", 3, 10, 10, 3, 12},
		{"across words", 60, 10, 10, 60, 69},
		{"spanning full words", 10, 200, 200, 10, 209},
		{"whole word", 64, 64, 64, 64, 127},
		{"clipped at end", 250, 100, 6, 250, 255},
		{"clipped at start", -5, 10, 5, 0, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBitset(256)
			b.Set(tt.pos, tt.n)

			assert.Equal(t, tt.wantCount, b.Count())
			assert.True(t, b.Get(tt.first))
			assert.True(t, b.Get(tt.last))
			assert.False(t, b.Get(tt.first-1))
			assert.False(t, b.Get(tt.last+1))
		})
	}
}

func TestBitsetSetEmptyAndClear(t *testing.T) {
	b := NewBitset(128)
	b.Set(10, 0)
	b.Set(200, 5)
	assert.Equal(t, 0, b.Count())

	b.Set(0, 128)
	assert.Equal(t, 128, b.Count())
	b.Clear()
	assert.Equal(t, 0, b.Count())
}
