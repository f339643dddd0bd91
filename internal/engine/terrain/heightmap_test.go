package terrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeightFieldGetSet(t *testing.T) {
	hf := NewHeightField(4)
	hf.Set(1, 2, 7.5)

	assert.Equal(t, 4, hf.Size())
	assert.Equal(t, float32(7.5), hf.Get(1, 2))
	assert.Equal(t, float32(0), hf.Get(2, 1))
}

func TestHeightFieldNormalize(t *testing.T) {
	hf := NewHeightField(3)
	raw := []float32{-4, 2, 8, 0, 1, 3, 5, -1, 6}
	for i, h := range raw {
		hf.Set(i%3, i/3, h)
	}

	hf.Normalize(-10, 50)

	lo, hi := hf.MinMax()
	assert.InDelta(t, -10, lo, 1e-4)
	assert.InDelta(t, 50, hi, 1e-4)

	// Affine: the raw midpoint 2 lands on the target midpoint 20.
	assert.InDelta(t, 20, hf.Get(1, 0), 1e-4)
}

func TestHeightFieldNormalizeFlat(t *testing.T) {
	hf := NewHeightField(3)
	for z := 0; z < 3; z++ {
		for x := 0; x < 3; x++ {
			hf.Set(x, z, 42)
		}
	}

	hf.Normalize(5, 9)

	for z := 0; z < 3; z++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, float32(5), hf.Get(x, z))
		}
	}
}

func TestHeightFieldSample(t *testing.T) {
	hf := NewHeightField(2)
	hf.Set(0, 0, 0)
	hf.Set(1, 0, 10)
	hf.Set(0, 1, 20)
	hf.Set(1, 1, 30)

	tests := []struct {
		name   string
		fx, fz float32
		want   float32
	}{
		{"corner", 0, 0, 0},
		{"far corner", 1, 1, 30},
		{"center", 0.5, 0.5, 15},
		{"edge mid", 0.5, 0, 5},
		{"clamped low", -3, -3, 0},
		{"clamped high", 9, 9, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, hf.Sample(tt.fx, tt.fz), 1e-5)
		})
	}
}
