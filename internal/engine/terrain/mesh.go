package terrain

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh owns the shared vertex and index buffers of a terrain and decides,
// per frame, which precomputed index range each patch is drawn with.
type Mesh struct {
	width       int
	patchSize   int
	numPatchesX int
	numPatchesZ int

	vertices []Vertex
	mesher   *PatchMesher
	selector *LodSelector
	bounds   Bounds
	center   mgl32.Vec3
	built    bool
}

// BuildOnce fills the vertex buffer from hf and precomputes the index buffer.
// The config must already be validated.
func (m *Mesh) BuildOnce(hf *HeightField, cfg Config) error {
	if m.built {
		return ErrAlreadyBuilt
	}

	m.width = hf.Size()
	m.patchSize = cfg.PatchSize
	m.numPatchesX = (m.width - 1) / (cfg.PatchSize - 1)
	m.numPatchesZ = m.numPatchesX

	m.initVertices(hf, cfg)
	m.mesher = NewPatchMesher(cfg.PatchSize, m.width)
	m.calcNormals()

	m.selector = NewLodSelector(cfg.PatchSize, m.numPatchesX, m.numPatchesZ, cfg.WorldScale, hf.Get)
	m.built = true
	return nil
}

// initVertices creates one vertex per grid point.
func (m *Mesh) initVertices(hf *HeightField, cfg Config) {
	size := float32(hf.Size())
	m.vertices = make([]Vertex, m.width*m.width)
	m.bounds = Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}

	i := 0
	for z := 0; z < m.width; z++ {
		for x := 0; x < m.width; x++ {
			pos := mgl32.Vec3{float32(x) * cfg.WorldScale, hf.Get(x, z), float32(z) * cfg.WorldScale}
			m.vertices[i] = Vertex{
				Position: pos,
				TexCoord: mgl32.Vec2{cfg.TextureScale * float32(x) / size, cfg.TextureScale * float32(z) / size},
			}
			updateBounds(&m.bounds, pos)
			i++
		}
	}
	m.center = m.vertices[len(m.vertices)/2].Position
}

// calcNormals accumulates the face normal of every full-detail triangle into
// its three vertices, then normalizes. Coarser levels reuse these normals.
func (m *Mesh) calcNormals() {
	full := m.mesher.Range(PatchLod{})
	indices := m.mesher.Indices()[full.Start : full.Start+full.Count]

	for pz := 0; pz < m.numPatchesZ; pz++ {
		for px := 0; px < m.numPatchesX; px++ {
			base := m.baseVertex(px, pz)
			for i := 0; i+2 < len(indices); i += 3 {
				i0 := base + int(indices[i])
				i1 := base + int(indices[i+1])
				i2 := base + int(indices[i+2])

				p0 := m.vertices[i0].Position
				e1 := m.vertices[i1].Position.Sub(p0)
				e2 := m.vertices[i2].Position.Sub(p0)
				n := safeNormalize(e1.Cross(e2))

				m.vertices[i0].Normal = m.vertices[i0].Normal.Add(n)
				m.vertices[i1].Normal = m.vertices[i1].Normal.Add(n)
				m.vertices[i2].Normal = m.vertices[i2].Normal.Add(n)
			}
		}
	}

	for i := range m.vertices {
		m.vertices[i].Normal = safeNormalize(m.vertices[i].Normal)
	}
}

// RenderFrame updates patch levels for the camera and draws every patch.
func (m *Mesh) RenderFrame(backend DrawBackend, cameraPos mgl32.Vec3) {
	if !m.built {
		return
	}
	m.selector.Update(cameraPos)
	m.DrawCurrent(backend)
}

// DrawCurrent draws every patch, row by row, with the levels of the last
// update. Shadow passes and frozen-LOD debugging use it directly.
func (m *Mesh) DrawCurrent(backend DrawBackend) {
	if !m.built {
		return
	}
	for pz := 0; pz < m.numPatchesZ; pz++ {
		for px := 0; px < m.numPatchesX; px++ {
			r := m.mesher.Range(m.selector.PatchLod(px, pz))
			backend.DrawIndexedBaseVertex(r.Start, r.Count, m.baseVertex(px, pz))
		}
	}
}

// baseVertex is the index of the patch's first grid vertex.
func (m *Mesh) baseVertex(px, pz int) int {
	return pz*(m.patchSize-1)*m.width + px*(m.patchSize-1)
}

// PatchAt maps a base vertex passed to DrawIndexedBaseVertex back to the
// patch it belongs to.
func (m *Mesh) PatchAt(baseVertex int) (px, pz int) {
	step := m.patchSize - 1
	if !m.built || step <= 0 {
		return 0, 0
	}
	return (baseVertex % m.width) / step, baseVertex / (step * m.width)
}

// Vertices returns the shared vertex buffer. Callers must not modify it.
func (m *Mesh) Vertices() []Vertex {
	return m.vertices
}

// Indices returns the shared index buffer. Callers must not modify it.
func (m *Mesh) Indices() []uint32 {
	if m.mesher == nil {
		return nil
	}
	return m.mesher.Indices()
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() Bounds {
	return m.bounds
}

// Center returns the position of the middle grid vertex.
func (m *Mesh) Center() mgl32.Vec3 {
	return m.center
}

// Width returns the number of vertices per grid row.
func (m *Mesh) Width() int {
	return m.width
}

// NumPatches returns the patch grid dimensions.
func (m *Mesh) NumPatches() (x, z int) {
	return m.numPatchesX, m.numPatchesZ
}

// Mesher returns the index table builder.
func (m *Mesh) Mesher() *PatchMesher {
	return m.mesher
}

// Selector returns the LOD selector.
func (m *Mesh) Selector() *LodSelector {
	return m.selector
}

// Helper functions

func updateBounds(b *Bounds, p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// safeNormalize returns a unit vector, or +Y for a zero vector.
func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	if v.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return v.Normalize()
}
