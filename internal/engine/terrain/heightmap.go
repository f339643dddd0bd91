package terrain

import "github.com/chewxy/math32"

// HeightField is a square grid of heights stored row-major (z rows of x).
type HeightField struct {
	size    int
	heights []float32
}

// NewHeightField creates a flat size×size field.
func NewHeightField(size int) *HeightField {
	return &HeightField{
		size:    size,
		heights: make([]float32, size*size),
	}
}

// Size returns the edge length of the field.
func (hf *HeightField) Size() int {
	return hf.size
}

// Get returns the height at grid coordinate (x, z).
func (hf *HeightField) Get(x, z int) float32 {
	return hf.heights[z*hf.size+x]
}

// Set stores the height at grid coordinate (x, z).
func (hf *HeightField) Set(x, z int, h float32) {
	hf.heights[z*hf.size+x] = h
}

// MinMax returns the lowest and highest stored heights.
func (hf *HeightField) MinMax() (lo, hi float32) {
	if len(hf.heights) == 0 {
		return 0, 0
	}
	lo, hi = hf.heights[0], hf.heights[0]
	for _, h := range hf.heights[1:] {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	return lo, hi
}

// Normalize remaps every height linearly from the current [min, max] into
// [minH, maxH]. A flat field collapses to minH.
func (hf *HeightField) Normalize(minH, maxH float32) {
	lo, hi := hf.MinMax()
	if hi <= lo {
		for i := range hf.heights {
			hf.heights[i] = minH
		}
		return
	}

	span := hi - lo
	target := maxH - minH
	for i, h := range hf.heights {
		hf.heights[i] = minH + (h-lo)/span*target
	}
}

// Sample returns the bilinearly interpolated height at a fractional grid
// coordinate. Coordinates outside the grid are clamped to the border.
func (hf *HeightField) Sample(fx, fz float32) float32 {
	if hf.size == 0 {
		return 0
	}
	maxCoord := float32(hf.size - 1)
	fx = clampf(fx, 0, maxCoord)
	fz = clampf(fz, 0, maxCoord)

	x0 := int(math32.Floor(fx))
	z0 := int(math32.Floor(fz))
	x1 := min(x0+1, hf.size-1)
	z1 := min(z0+1, hf.size-1)

	fracX := fx - float32(x0)
	fracZ := fz - float32(z0)

	// Near row (lower z) then far row, then lerp across z.
	near := hf.Get(x0, z0)*(1-fracX) + hf.Get(x1, z0)*fracX
	far := hf.Get(x0, z1)*(1-fracX) + hf.Get(x1, z1)*fracX
	return near*(1-fracZ) + far*fracZ
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
