package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLodRegions(t *testing.T) {
	s := NewLodSelector(33, 4, 4, 1, nil)
	regions := s.Regions()

	require.Len(t, regions, s.MaxLOD()+1)
	assert.Equal(t, ZFar, regions[len(regions)-1])
	for i := 1; i < len(regions); i++ {
		assert.Greater(t, regions[i], regions[i-1])
		// Widths grow with the level.
		prev := regions[0]
		if i > 1 {
			prev = regions[i-1] - regions[i-2]
		}
		assert.Greater(t, regions[i]-regions[i-1], prev)
	}
}

func TestDistanceToLodBoundary(t *testing.T) {
	s := NewLodSelector(9, 1, 1, 1, nil)
	b := s.Regions()[0]

	assert.Equal(t, 0, s.DistanceToLod(0))
	assert.Equal(t, 0, s.DistanceToLod(b*b*0.99))
	assert.Equal(t, 1, s.DistanceToLod(b*b), "boundary belongs to the farther region")
	assert.Equal(t, s.MaxLOD(), s.DistanceToLod(ZFar*ZFar*4))
}

func TestLodMonotonicInDistance(t *testing.T) {
	s := NewLodSelector(33, 1, 1, 1, nil)

	prev := 0
	for d := float32(0); d < ZFar*1.5; d += 25 {
		lod := s.DistanceToLod(d * d)
		assert.GreaterOrEqual(t, lod, prev, "distance %.0f", d)
		prev = lod
	}
	assert.Equal(t, s.MaxLOD(), prev)
}

func TestLodSelectorFarCamera(t *testing.T) {
	// 17x17 terrain with 5x5 patches: 4x4 patches, max LOD 1.
	s := NewLodSelector(5, 4, 4, 1, nil)
	require.Equal(t, 1, s.MaxLOD())

	s.Update(mgl32.Vec3{1e5, 0, 1e5})

	for pz := 0; pz < 4; pz++ {
		for px := 0; px < 4; px++ {
			assert.Equal(t, PatchLod{1, 1, 1, 1, 1}, s.PatchLod(px, pz), "patch (%d,%d)", px, pz)
		}
	}
}

func TestLodSelectorNearCamera(t *testing.T) {
	// Wide spacing so only the first patch falls into the LOD 0 region.
	s := NewLodSelector(5, 4, 4, 500, nil)
	s.Update(mgl32.Vec3{0, 0, 0})

	origin := s.PatchLod(0, 0)
	assert.Equal(t, 0, origin.Core)
	assert.Equal(t, 0, origin.Left, "missing neighbour matches core")
	assert.Equal(t, 0, origin.Bottom, "missing neighbour matches core")
	assert.Equal(t, 1, origin.Right)
	assert.Equal(t, 1, origin.Top)

	right := s.PatchLod(1, 0)
	assert.Equal(t, 1, right.Core)
	assert.Equal(t, 1, right.Left, "finer neighbour keeps edge at core")

	far := s.PatchLod(3, 3)
	assert.Equal(t, PatchLod{1, 1, 1, 1, 1}, far)
}

func TestLodSelectorClampsWideGaps(t *testing.T) {
	s := NewLodSelector(17, 3, 1, 1, nil)
	require.GreaterOrEqual(t, s.MaxLOD(), 3)

	s.lods[0].Core = 0
	s.lods[1].Core = 3
	s.lods[2].Core = 1
	s.assignEdges()

	assert.Equal(t, PatchLod{Core: 0, Left: 0, Right: 1, Top: 0, Bottom: 0}, s.PatchLod(0, 0))
	assert.Equal(t, PatchLod{Core: 3, Left: 3, Right: 3, Top: 3, Bottom: 3}, s.PatchLod(1, 0))
	assert.Equal(t, PatchLod{Core: 1, Left: 2, Right: 1, Top: 1, Bottom: 1}, s.PatchLod(2, 0))
}

func TestLodSelectorEdgesStayInTable(t *testing.T) {
	s := NewLodSelector(17, 8, 8, 40, nil)
	m := NewPatchMesher(17, 8*16+1)

	for _, cam := range []mgl32.Vec3{{0, 0, 0}, {2000, 100, 900}, {5000, 0, 5000}, {-3000, 50, 700}} {
		s.Update(cam)
		for pz := 0; pz < 8; pz++ {
			for px := 0; px < 8; px++ {
				lod := s.PatchLod(px, pz)
				assert.NotPanics(t, func() { m.Range(lod) }, "camera %v patch (%d,%d) lod %+v", cam, px, pz, lod)
			}
		}
	}
}

func TestLodSelectorReusesTableForSameCamera(t *testing.T) {
	s := NewLodSelector(5, 2, 2, 1, nil)
	cam := mgl32.Vec3{1, 2, 3}
	s.Update(cam)

	s.lods[0].Core = 1
	s.Update(cam)
	assert.Equal(t, 1, s.PatchLod(0, 0).Core, "unchanged camera should skip recomputation")

	s.Update(cam.Add(mgl32.Vec3{0, 0, 0.5}))
	assert.Equal(t, 0, s.PatchLod(0, 0).Core)
}

func TestLodSelectorCenters(t *testing.T) {
	heights := func(x, z int) float32 { return float32(x + 10*z) }
	s := NewLodSelector(5, 2, 2, 2, heights)

	assert.Equal(t, mgl32.Vec3{4, 22, 4}, s.PatchCenter(0, 0))
	assert.Equal(t, mgl32.Vec3{12, 26, 4}, s.PatchCenter(1, 0))
	assert.Equal(t, mgl32.Vec3{4, 62, 12}, s.PatchCenter(0, 1))
}

func TestLodSelectorString(t *testing.T) {
	s := NewLodSelector(5, 2, 2, 500, nil)
	s.Update(mgl32.Vec3{0, 0, 0})

	assert.Equal(t, "1 1\n0 1\n", s.String())
}
