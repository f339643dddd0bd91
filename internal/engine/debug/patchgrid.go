// Package debug provides terrain visualization and capture utilities.
package debug

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

// LineVertex is one end of a colored debug line.
type LineVertex struct {
	X, Y, Z float32
	R, G, B float32
}

// lodPalette colors core LOD levels from fine (red) to coarse (blue).
var lodPalette = []color.RGBA{
	{R: 230, G: 57, B: 70, A: 255},
	{R: 244, G: 162, B: 97, A: 255},
	{R: 233, G: 196, B: 106, A: 255},
	{R: 42, G: 157, B: 143, A: 255},
	{R: 69, G: 123, B: 157, A: 255},
	{R: 29, G: 53, B: 87, A: 255},
}

// LodColor returns the display color of a core LOD level.
func LodColor(lod int) color.RGBA {
	if lod < 0 {
		lod = 0
	}
	if lod >= len(lodPalette) {
		lod = len(lodPalette) - 1
	}
	return lodPalette[lod]
}

// LodColorVec returns LodColor as normalized RGB.
func LodColorVec(lod int) mgl32.Vec3 {
	c := LodColor(lod)
	return mgl32.Vec3{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// PatchGridLines outlines every patch of mesh, following the terrain surface
// at full resolution and raised by lift. Each outline is colored by the
// patch's current core LOD. Returns vertex pairs for GL_LINES.
func PatchGridLines(mesh *terrain.Mesh, lift float32) []LineVertex {
	if mesh == nil || mesh.Selector() == nil {
		return nil
	}

	verts := mesh.Vertices()
	width := mesh.Width()
	ps := mesh.Mesher().PatchSize()
	nx, nz := mesh.NumPatches()
	sel := mesh.Selector()

	at := func(x, z int) mgl32.Vec3 {
		return verts[z*width+x].Position.Add(mgl32.Vec3{0, lift, 0})
	}

	var out []LineVertex
	edge := func(x0, z0, dx, dz int, c mgl32.Vec3) {
		for i := 0; i < ps-1; i++ {
			a := at(x0+i*dx, z0+i*dz)
			b := at(x0+(i+1)*dx, z0+(i+1)*dz)
			out = append(out,
				LineVertex{a[0], a[1], a[2], c[0], c[1], c[2]},
				LineVertex{b[0], b[1], b[2], c[0], c[1], c[2]},
			)
		}
	}

	for pz := 0; pz < nz; pz++ {
		for px := 0; px < nx; px++ {
			c := LodColorVec(sel.PatchLod(px, pz).Core)
			x0 := px * (ps - 1)
			z0 := pz * (ps - 1)
			// Bottom and left edges; the last row and column close the grid.
			edge(x0, z0, 1, 0, c)
			edge(x0, z0, 0, 1, c)
			if px == nx-1 {
				edge(x0+ps-1, z0, 0, 1, c)
			}
			if pz == nz-1 {
				edge(x0, z0+ps-1, 1, 0, c)
			}
		}
	}
	return out
}

// BoundsLines returns the 12 edges of a bounding box as vertex pairs.
func BoundsLines(b terrain.Bounds, c mgl32.Vec3) []LineVertex {
	lo, hi := b.Min, b.Max
	corners := [8]mgl32.Vec3{
		{lo[0], lo[1], lo[2]}, {hi[0], lo[1], lo[2]}, {hi[0], lo[1], hi[2]}, {lo[0], lo[1], hi[2]},
		{lo[0], hi[1], lo[2]}, {hi[0], hi[1], lo[2]}, {hi[0], hi[1], hi[2]}, {lo[0], hi[1], hi[2]},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}

	out := make([]LineVertex, 0, 24)
	for _, e := range edges {
		for _, i := range e {
			p := corners[i]
			out = append(out, LineVertex{p[0], p[1], p[2], c[0], c[1], c[2]})
		}
	}
	return out
}
