// Package terrain generates fractal heightfields and renders them as
// geomipmapped patches whose level of detail follows the camera.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// Vertex represents a terrain mesh vertex with all attributes.
// The layout is uploaded to the GPU as-is: position, texcoord, normal.
type Vertex struct {
	Position mgl32.Vec3
	TexCoord mgl32.Vec2
	Normal   mgl32.Vec3
}

// IndexRange is a sub-range of the shared index buffer.
type IndexRange struct {
	Start int
	Count int
}

// PatchLod describes the detail level of one patch and of its four borders.
// Edge levels are either Core or Core+1.
type PatchLod struct {
	Core   int
	Left   int
	Right  int
	Top    int
	Bottom int
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the center point of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// DrawBackend issues indexed draw calls against the uploaded terrain buffers.
// Implementations own the GPU state; the terrain only decides which ranges to draw.
type DrawBackend interface {
	DrawIndexedBaseVertex(start, count, baseVertex int)
}
