package terrain

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// ZFar is where the coarsest LOD region ends.
const ZFar float32 = 5000.0

// LodSelector assigns a PatchLod to every patch from the camera position.
//
// Distances are split into MaxLOD+1 regions whose widths grow linearly with
// the level, so near regions are narrow and far ones wide. A patch takes the
// level of the region its center falls in; its edges then take the
// neighbour's level, clamped to [core, core+1] because the index table only
// stitches a one-level difference. Larger jumps are flattened to one level.
type LodSelector struct {
	patchSize   int
	numPatchesX int
	numPatchesZ int
	maxLOD      int

	regions   []float32 // upper bound of each region
	regionsSq []float32
	centers   []mgl32.Vec3
	lods      []PatchLod

	lastCamera mgl32.Vec3
	valid      bool
}

// NewLodSelector creates a selector for a numPatchesX×numPatchesZ grid.
// centerHeight gives the terrain height at a grid vertex and may be nil, in
// which case patch centers lie on the y=0 plane.
func NewLodSelector(patchSize, numPatchesX, numPatchesZ int, worldScale float32, centerHeight func(x, z int) float32) *LodSelector {
	s := &LodSelector{
		patchSize:   patchSize,
		numPatchesX: numPatchesX,
		numPatchesZ: numPatchesZ,
		maxLOD:      MaxLOD(patchSize),
		centers:     make([]mgl32.Vec3, numPatchesX*numPatchesZ),
		lods:        make([]PatchLod, numPatchesX*numPatchesZ),
	}
	s.calcRegions()

	half := patchSize / 2
	for pz := 0; pz < numPatchesZ; pz++ {
		for px := 0; px < numPatchesX; px++ {
			x := px*(patchSize-1) + half
			z := pz*(patchSize-1) + half
			var y float32
			if centerHeight != nil {
				y = centerHeight(x, z)
			}
			s.centers[pz*numPatchesX+px] = mgl32.Vec3{float32(x) * worldScale, y, float32(z) * worldScale}
		}
	}
	return s
}

// calcRegions splits [0, ZFar) into regions of width proportional to lod+1.
func (s *LodSelector) calcRegions() {
	sum := 0
	for i := 0; i <= s.maxLOD; i++ {
		sum += i + 1
	}
	unit := ZFar / float32(sum)

	s.regions = make([]float32, s.maxLOD+1)
	s.regionsSq = make([]float32, s.maxLOD+1)
	var edge float32
	for i := 0; i <= s.maxLOD; i++ {
		edge += unit * float32(i+1)
		s.regions[i] = edge
		s.regionsSq[i] = edge * edge
	}
	// Close the last region exactly at ZFar regardless of rounding.
	s.regions[s.maxLOD] = ZFar
	s.regionsSq[s.maxLOD] = ZFar * ZFar
}

// MaxLOD returns the coarsest level the selector assigns.
func (s *LodSelector) MaxLOD() int {
	return s.maxLOD
}

// NumPatches returns the patch grid dimensions.
func (s *LodSelector) NumPatches() (x, z int) {
	return s.numPatchesX, s.numPatchesZ
}

// Regions returns the upper distance bound of each LOD region.
func (s *LodSelector) Regions() []float32 {
	return s.regions
}

// PatchCenter returns the world-space center of a patch.
func (s *LodSelector) PatchCenter(px, pz int) mgl32.Vec3 {
	return s.centers[pz*s.numPatchesX+px]
}

// DistanceToLod maps a squared distance to a core level. A distance equal to
// a region boundary belongs to the next region.
func (s *LodSelector) DistanceToLod(distSq float32) int {
	for i, bound := range s.regionsSq {
		if distSq < bound {
			return i
		}
	}
	return s.maxLOD
}

// Update recomputes every patch descriptor for the camera position. An
// unchanged camera position reuses the previous table.
func (s *LodSelector) Update(cameraPos mgl32.Vec3) {
	if s.valid && cameraPos == s.lastCamera {
		return
	}
	s.assignCores(cameraPos)
	s.assignEdges()
	s.lastCamera = cameraPos
	s.valid = true
}

// PatchLod returns the descriptor computed by the last Update.
func (s *LodSelector) PatchLod(px, pz int) PatchLod {
	return s.lods[pz*s.numPatchesX+px]
}

// assignCores is the first pass: each patch independently from distance.
func (s *LodSelector) assignCores(cameraPos mgl32.Vec3) {
	for i, center := range s.centers {
		d := center.Sub(cameraPos)
		s.lods[i].Core = s.DistanceToLod(d.Dot(d))
	}
}

// assignEdges is the second pass: edges follow the neighbour's core level.
func (s *LodSelector) assignEdges() {
	for pz := 0; pz < s.numPatchesZ; pz++ {
		for px := 0; px < s.numPatchesX; px++ {
			lod := &s.lods[pz*s.numPatchesX+px]
			core := lod.Core

			lod.Left, lod.Right, lod.Top, lod.Bottom = core, core, core, core
			if px > 0 {
				lod.Left = s.edgeLevel(core, px-1, pz)
			}
			if px < s.numPatchesX-1 {
				lod.Right = s.edgeLevel(core, px+1, pz)
			}
			if pz > 0 {
				lod.Bottom = s.edgeLevel(core, px, pz-1)
			}
			if pz < s.numPatchesZ-1 {
				lod.Top = s.edgeLevel(core, px, pz+1)
			}
		}
	}
}

// edgeLevel clamps the neighbour's core level into [core, core+1]. A finer
// neighbour keeps our edge at core; it is the neighbour that coarsens its side.
func (s *LodSelector) edgeLevel(core, nx, nz int) int {
	n := s.lods[nz*s.numPatchesX+nx].Core
	if n <= core {
		return core
	}
	return core + 1
}

// String renders the core level map, farthest row first, for logs and tools.
func (s *LodSelector) String() string {
	var sb strings.Builder
	for pz := s.numPatchesZ - 1; pz >= 0; pz-- {
		for px := 0; px < s.numPatchesX; px++ {
			if px > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%d", s.lods[pz*s.numPatchesX+px].Core)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
