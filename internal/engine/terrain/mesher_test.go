package terrain

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaxLOD(t *testing.T) {
	tests := []struct {
		patchSize int
		want      int
	}{
		{3, 0},
		{5, 1},
		{9, 2},
		{17, 3},
		{33, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxLOD(tt.patchSize), "MaxLOD(%d)", tt.patchSize)
	}
}

// allCombinations yields every descriptor the table must hold.
func allCombinations(maxLOD int) []PatchLod {
	var out []PatchLod
	for core := 0; core <= maxLOD; core++ {
		for l := 0; l < 2; l++ {
			for r := 0; r < 2; r++ {
				for tp := 0; tp < 2; tp++ {
					for b := 0; b < 2; b++ {
						out = append(out, PatchLod{Core: core, Left: core + l, Right: core + r, Top: core + tp, Bottom: core + b})
					}
				}
			}
		}
	}
	return out
}

func TestPatchMesherTableComplete(t *testing.T) {
	for _, ps := range []int{3, 5, 9, 17} {
		m := NewPatchMesher(ps, ps)
		combos := allCombinations(m.MaxLOD())
		require.Len(t, combos, (m.MaxLOD()+1)*16)

		seen := make(map[int]bool)
		for _, lod := range combos {
			r := m.Range(lod)
			assert.Positive(t, r.Count, "patch %d lod %+v has no indices", ps, lod)
			assert.Zero(t, r.Count%3, "patch %d lod %+v not made of triangles", ps, lod)
			assert.LessOrEqual(t, r.Start+r.Count, len(m.Indices()))
			assert.False(t, seen[r.Start], "patch %d lod %+v shares start %d", ps, lod, r.Start)
			seen[r.Start] = true
		}
	}
}

func TestPatchMesherTriangleCounts(t *testing.T) {
	m := NewPatchMesher(5, 5)

	tests := []struct {
		name string
		lod  PatchLod
		want int
	}{
		{"lod0 full", PatchLod{}, 4 * 8 * 3},
		{"lod0 all coarse", PatchLod{0, 1, 1, 1, 1}, 4 * 6 * 3},
		{"lod0 left coarse", PatchLod{0, 1, 0, 0, 0}, (4*8 - 2) * 3},
		{"lod1 full", PatchLod{1, 1, 1, 1, 1}, 8 * 3},
		{"lod1 all coarse", PatchLod{1, 2, 2, 2, 2}, 4 * 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Range(tt.lod).Count)
		})
	}
}

// TestPatchMesherCoversPatch checks every combination tiles the patch exactly:
// all vertices are local and the triangle areas sum to the patch area.
func TestPatchMesherCoversPatch(t *testing.T) {
	const ps, stride = 9, 25
	m := NewPatchMesher(ps, stride)

	for _, lod := range allCombinations(m.MaxLOD()) {
		r := m.Range(lod)
		idx := m.Indices()[r.Start : r.Start+r.Count]

		var area float64
		for i := 0; i < len(idx); i += 3 {
			var xs, zs [3]int
			for k := 0; k < 3; k++ {
				xs[k] = int(idx[i+k]) % stride
				zs[k] = int(idx[i+k]) / stride
				require.True(t, xs[k] >= 0 && xs[k] < ps && zs[k] >= 0 && zs[k] < ps,
					"lod %+v: vertex (%d,%d) outside patch", lod, xs[k], zs[k])
			}
			cross := (xs[1]-xs[0])*(zs[2]-zs[0]) - (xs[2]-xs[0])*(zs[1]-zs[0])
			if cross < 0 {
				cross = -cross
			}
			require.NotZero(t, cross, "lod %+v: degenerate triangle", lod)
			area += float64(cross) / 2
		}
		assert.Equal(t, float64((ps-1)*(ps-1)), area, "lod %+v", lod)
	}
}

// edgeRows collects the rows a range touches on local column col.
func edgeRows(m *PatchMesher, lod PatchLod, stride, col int) []int {
	r := m.Range(lod)
	set := make(map[int]bool)
	for _, v := range m.Indices()[r.Start : r.Start+r.Count] {
		if int(v)%stride == col {
			set[int(v)/stride] = true
		}
	}
	rows := make([]int, 0, len(set))
	for z := range set {
		rows = append(rows, z)
	}
	sort.Ints(rows)
	return rows
}

func TestPatchMesherSeamAcrossOneLevel(t *testing.T) {
	const ps, stride = 9, 17
	m := NewPatchMesher(ps, stride)

	for core := 0; core < m.MaxLOD(); core++ {
		// Finer patch on the left stitched to a coarser neighbour on the right.
		fine := PatchLod{Core: core, Left: core, Right: core + 1, Top: core, Bottom: core}
		coarse := PatchLod{Core: core + 1, Left: core + 1, Right: core + 1, Top: core + 1, Bottom: core + 1}

		fineEdge := edgeRows(m, fine, stride, ps-1)
		coarseEdge := edgeRows(m, coarse, stride, 0)

		assert.Subset(t, fineEdge, coarseEdge, "core %d: coarse edge vertex missing on fine side", core)
		assert.Equal(t, coarseEdge, fineEdge, "core %d: T-junction on shared edge", core)
	}
}

func TestPatchMesherUnstitchedEdgeHasExtraVertices(t *testing.T) {
	const ps, stride = 5, 9
	m := NewPatchMesher(ps, stride)

	fine := edgeRows(m, PatchLod{}, stride, ps-1)
	coarse := edgeRows(m, PatchLod{1, 1, 1, 1, 1}, stride, 0)

	assert.Equal(t, []int{0, 1, 2, 3, 4}, fine)
	assert.Equal(t, []int{0, 2, 4}, coarse)
}

func TestPatchMesherRangePanicsOnWideGap(t *testing.T) {
	m := NewPatchMesher(9, 9)

	assert.Panics(t, func() { m.Range(PatchLod{Core: 0, Left: 2}) })
	assert.Panics(t, func() { m.Range(PatchLod{Core: 1, Left: 0, Right: 1, Top: 1, Bottom: 1}) })
	assert.Panics(t, func() { m.Range(PatchLod{Core: 3, Left: 3, Right: 3, Top: 3, Bottom: 3}) })
}

func TestPatchMesherOverflowPanics(t *testing.T) {
	m := &PatchMesher{indices: make([]uint32, 3)}
	m.addTriangle(0, 1, 2)

	assert.Panics(t, func() { m.addTriangle(3, 4, 5) })
}

func TestIndexCapacityIsExact(t *testing.T) {
	// With every edge at core level each fan emits eight triangles, so the
	// all-core variants alone use 1/16th of the worst-case capacity.
	m := NewPatchMesher(9, 9)
	full := 0
	for core := 0; core <= m.MaxLOD(); core++ {
		full += m.Range(PatchLod{core, core, core, core, core}).Count
	}
	assert.Equal(t, indexCapacity(9, m.MaxLOD()), full*16)
	assert.Less(t, len(m.Indices()), indexCapacity(9, m.MaxLOD()))
}
