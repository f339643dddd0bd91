package terrain

import (
	"math/rand"

	"github.com/chewxy/math32"
)

// Generator fills heightfields using midpoint displacement (diamond-square).
// One random source is used for the whole run so a seeded source reproduces
// the same terrain.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate builds a size×size fractal field and normalizes it to [minH, maxH].
func (g *Generator) Generate(size int, roughness, minH, maxH float32) *HeightField {
	hf := NewHeightField(size)
	g.MidpointDisplacement(hf, roughness)
	hf.Normalize(minH, maxH)
	return hf
}

// MidpointDisplacement runs the diamond and square passes over hf, halving the
// step each pass and scaling the displacement by 2^-roughness. Grid indices
// wrap toroidally.
func (g *Generator) MidpointDisplacement(hf *HeightField, roughness float32) {
	rectSize := nextPowerOfTwo(hf.size)
	curHeight := float32(rectSize) / 2
	heightReduce := math32.Pow(2, -roughness)

	for rectSize > 0 {
		g.diamondStep(hf, rectSize, curHeight)
		g.squareStep(hf, rectSize, curHeight)

		rectSize /= 2
		curHeight *= heightReduce
	}
}

// diamondStep sets the center of every rectSize cell to the mean of its
// corners plus noise.
func (g *Generator) diamondStep(hf *HeightField, rectSize int, curHeight float32) {
	size := hf.size
	half := rectSize / 2

	for z := 0; z < size; z += rectSize {
		for x := 0; x < size; x += rectSize {
			nextX, nextZ := wrapNext(x, rectSize, size), wrapNext(z, rectSize, size)

			topLeft := hf.Get(x, z)
			topRight := hf.Get(nextX, z)
			bottomLeft := hf.Get(x, nextZ)
			bottomRight := hf.Get(nextX, nextZ)

			midX := (x + half) % size
			midZ := (z + half) % size

			mid := (topLeft + topRight + bottomLeft + bottomRight) / 4
			hf.Set(midX, midZ, mid+g.displacement(curHeight))
		}
	}
}

// squareStep sets the top-mid and left-mid edge points of every cell from the
// two edge corners, the cell center and the neighbouring cell's center.
func (g *Generator) squareStep(hf *HeightField, rectSize int, curHeight float32) {
	size := hf.size
	half := rectSize / 2

	for z := 0; z < size; z += rectSize {
		for x := 0; x < size; x += rectSize {
			nextX, nextZ := wrapNext(x, rectSize, size), wrapNext(z, rectSize, size)

			midX := (x + half) % size
			midZ := (z + half) % size
			prevMidX := (x - half + size) % size
			prevMidZ := (z - half + size) % size

			topLeft := hf.Get(x, z)
			topRight := hf.Get(nextX, z)
			center := hf.Get(midX, midZ)
			prevZCenter := hf.Get(midX, prevMidZ)
			bottomLeft := hf.Get(x, nextZ)
			prevXCenter := hf.Get(prevMidX, midZ)

			leftMid := (topLeft+center+bottomLeft+prevXCenter)/4 + g.displacement(curHeight)
			topMid := (topLeft+center+topRight+prevZCenter)/4 + g.displacement(curHeight)

			hf.Set(midX, z, topMid)
			hf.Set(x, midZ, leftMid)
		}
	}
}

// displacement returns a uniform value in [-amplitude, amplitude).
func (g *Generator) displacement(amplitude float32) float32 {
	return (g.rng.Float32()*2 - 1) * amplitude
}

// wrapNext steps v forward by step; a step that wraps past the grid edge
// lands on the last row/column instead.
func wrapNext(v, step, size int) int {
	next := (v + step) % size
	if next < v {
		next = size - 1
	}
	return next
}
