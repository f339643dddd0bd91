package lighting

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name     string
		az, el   float32
		expected mgl32.Vec3
	}{
		{"north horizon", 0, 0, mgl32.Vec3{0, 0, -1}},
		{"east horizon", 90, 0, mgl32.Vec3{1, 0, 0}},
		{"south horizon", 180, 0, mgl32.Vec3{0, 0, 1}},
		{"zenith", 123, 90, mgl32.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SunDirection(tt.az, tt.el)
			for i := 0; i < 3; i++ {
				assert.InDelta(t, tt.expected[i], got[i], 1e-5)
			}
		})
	}
}

func TestSunDirectionIsUnit(t *testing.T) {
	for az := float32(0); az < 360; az += 37 {
		for el := float32(-80); el <= 90; el += 20 {
			assert.InDelta(t, 1, SunDirection(az, el).Len(), 1e-5, "az %v el %v", az, el)
		}
	}
}

func TestReversedLightDir(t *testing.T) {
	d := SunDirection(45, 30)
	assert.Equal(t, d.Mul(-1), ReversedLightDir(d))
}

func project(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	return v.Vec3().Mul(1 / v[3])
}

func inClip(t *testing.T, p mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.True(t, p[i] >= -1 && p[i] <= 1, "component %d of %v outside clip volume", i, p)
	}
}

func TestDirectionalLightMatrixCoversBounds(t *testing.T) {
	b := terrain.Bounds{Min: mgl32.Vec3{0, -20, 0}, Max: mgl32.Vec3{2048, 300, 2048}}

	for _, sun := range []mgl32.Vec3{SunDirection(135, 40), SunDirection(0, 89.9), SunDirection(270, 10)} {
		m := DirectionalLightMatrix(sun, b)
		for _, x := range []float32{b.Min[0], b.Max[0]} {
			for _, y := range []float32{b.Min[1], b.Max[1]} {
				for _, z := range []float32{b.Min[2], b.Max[2]} {
					inClip(t, project(m, mgl32.Vec3{x, y, z}))
				}
			}
		}
	}
}

func TestDirectionalLightMatrixCentersTerrain(t *testing.T) {
	b := terrain.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{1000, 100, 1000}}
	p := project(DirectionalLightMatrix(SunDirection(60, 50), b), b.Center())

	assert.InDelta(t, 0, p[0], 1e-4)
	assert.InDelta(t, 0, p[1], 1e-4)
}

func TestFocusedLightMatrixFollowsFocus(t *testing.T) {
	b := terrain.Bounds{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{8192, 400, 8192}}
	focus := mgl32.Vec3{1000, 0, 3000}

	p := project(FocusedLightMatrix(SunDirection(200, 45), b, focus, 300), mgl32.Vec3{1000, 200, 3000})
	assert.InDelta(t, 0, p[0], 1e-4)
	assert.InDelta(t, 0, p[1], 1e-4)

	// A far corner of the terrain falls outside the focused map.
	far := project(FocusedLightMatrix(SunDirection(200, 45), b, focus, 300), mgl32.Vec3{8192, 0, 0})
	assert.False(t, far[0] >= -1 && far[0] <= 1 && far[1] >= -1 && far[1] <= 1)
}
