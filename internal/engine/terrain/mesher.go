package terrain

import "fmt"

// edgeCombinations is the number of (left, right, top, bottom) variants per
// core level: each edge is either at the core level or one level coarser.
const edgeCombinations = 16

// PatchMesher precomputes one index range per LOD combination for a single
// patch. Indices are local to the patch's top-left vertex; drawing a patch
// rebases them with a base-vertex offset.
type PatchMesher struct {
	patchSize int
	stride    int // vertices per terrain row
	maxLOD    int

	indices []uint32
	pos     int
	ranges  []IndexRange
}

// NewPatchMesher builds the combined index buffer for patchSize patches laid
// out in a vertex grid stride vertices wide.
func NewPatchMesher(patchSize, stride int) *PatchMesher {
	m := &PatchMesher{
		patchSize: patchSize,
		stride:    stride,
		maxLOD:    MaxLOD(patchSize),
	}
	m.indices = make([]uint32, indexCapacity(patchSize, m.maxLOD))
	m.ranges = make([]IndexRange, (m.maxLOD+1)*edgeCombinations)

	for lod := 0; lod <= m.maxLOD; lod++ {
		m.buildLOD(lod)
	}
	m.indices = m.indices[:m.pos]
	return m
}

// MaxLOD returns the coarsest level at which a fan still covers at least one
// tile of the patch.
func MaxLOD(patchSize int) int {
	lod := 0
	for tilesPerSide(patchSize, lod+1) > 0 {
		lod++
	}
	return lod
}

// tilesPerSide is the number of fan tiles along one patch edge at lod.
func tilesPerSide(patchSize, lod int) int {
	return (patchSize - 1) / (1 << (lod + 1))
}

// indexCapacity is the worst case: 8 triangles per fan for all 16 variants.
func indexCapacity(patchSize, maxLOD int) int {
	n := 0
	for lod := 0; lod <= maxLOD; lod++ {
		tiles := tilesPerSide(patchSize, lod)
		n += tiles * tiles * 8 * 3 * edgeCombinations
	}
	return n
}

// MaxLOD returns the coarsest level the table covers.
func (m *PatchMesher) MaxLOD() int {
	return m.maxLOD
}

// PatchSize returns the patch edge length in vertices.
func (m *PatchMesher) PatchSize() int {
	return m.patchSize
}

// Indices returns the combined index buffer. Callers must not modify it.
func (m *PatchMesher) Indices() []uint32 {
	return m.indices
}

// Range returns the index range for a patch LOD descriptor.
// Edge levels must be Core or Core+1.
func (m *PatchMesher) Range(lod PatchLod) IndexRange {
	return m.ranges[m.rangeIndex(lod)]
}

func (m *PatchMesher) rangeIndex(lod PatchLod) int {
	if lod.Core < 0 || lod.Core > m.maxLOD {
		panic(fmt.Sprintf("terrain: core lod %d outside [0, %d]", lod.Core, m.maxLOD))
	}
	return lod.Core*edgeCombinations +
		edgeBit(lod.Left, lod.Core)*8 +
		edgeBit(lod.Right, lod.Core)*4 +
		edgeBit(lod.Top, lod.Core)*2 +
		edgeBit(lod.Bottom, lod.Core)
}

func edgeBit(edge, core int) int {
	d := edge - core
	if d != 0 && d != 1 {
		panic(fmt.Sprintf("terrain: edge lod %d not within one level of core %d", edge, core))
	}
	return d
}

func (m *PatchMesher) buildLOD(lod int) {
	for l := 0; l < 2; l++ {
		for r := 0; r < 2; r++ {
			for t := 0; t < 2; t++ {
				for b := 0; b < 2; b++ {
					key := PatchLod{Core: lod, Left: lod + l, Right: lod + r, Top: lod + t, Bottom: lod + b}
					start := m.pos
					m.buildSingle(key)
					m.ranges[m.rangeIndex(key)] = IndexRange{Start: start, Count: m.pos - start}
				}
			}
		}
	}
}

// buildSingle tiles the patch with fans of width 2^(core+1). Only fans on the
// patch border take the neighbour's edge level.
func (m *PatchMesher) buildSingle(lod PatchLod) {
	fanStep := 1 << (lod.Core + 1)
	endPos := m.patchSize - 1 - fanStep

	for z := 0; z <= endPos; z += fanStep {
		for x := 0; x <= endPos; x += fanStep {
			fan := PatchLod{Core: lod.Core, Left: lod.Core, Right: lod.Core, Top: lod.Core, Bottom: lod.Core}
			if x == 0 {
				fan.Left = lod.Left
			}
			if x == endPos {
				fan.Right = lod.Right
			}
			if z == 0 {
				fan.Bottom = lod.Bottom
			}
			if z == endPos {
				fan.Top = lod.Top
			}
			m.addFan(fan, x, z)
		}
	}
}

// addFan emits the fan around the tile center walking the border from
// (x, z): up the left edge, along the top, down the right edge, back along
// the bottom. A side at the core level gets two triangles; a coarser side
// spans its whole length with one.
func (m *PatchMesher) addFan(lod PatchLod, x, z int) {
	stride := uint32(m.stride)
	stepLeft := uint32(1) << lod.Left
	stepRight := uint32(1) << lod.Right
	stepTop := uint32(1) << lod.Top
	stepBottom := uint32(1) << lod.Bottom
	stepCenter := 1 << lod.Core

	center := uint32((z+stepCenter)*m.stride + x + stepCenter)

	v1 := uint32(z*m.stride + x)
	v2 := v1 + stepLeft*stride
	m.addTriangle(center, v1, v2)
	if lod.Left == lod.Core {
		v1, v2 = v2, v2+stepLeft*stride
		m.addTriangle(center, v1, v2)
	}

	v1, v2 = v2, v2+stepTop
	m.addTriangle(center, v1, v2)
	if lod.Top == lod.Core {
		v1, v2 = v2, v2+stepTop
		m.addTriangle(center, v1, v2)
	}

	v1, v2 = v2, v2-stepRight*stride
	m.addTriangle(center, v1, v2)
	if lod.Right == lod.Core {
		v1, v2 = v2, v2-stepRight*stride
		m.addTriangle(center, v1, v2)
	}

	v1, v2 = v2, v2-stepBottom
	m.addTriangle(center, v1, v2)
	if lod.Bottom == lod.Core {
		v1, v2 = v2, v2-stepBottom
		m.addTriangle(center, v1, v2)
	}
}

func (m *PatchMesher) addTriangle(a, b, c uint32) {
	if m.pos+3 > len(m.indices) {
		panic(fmt.Sprintf("terrain: index buffer overflow at %d (capacity %d)", m.pos, len(m.indices)))
	}
	m.indices[m.pos] = a
	m.indices[m.pos+1] = b
	m.indices[m.pos+2] = c
	m.pos += 3
}
