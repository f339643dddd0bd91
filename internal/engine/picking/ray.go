// Package picking casts rays from the screen into the terrain.
package picking

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj mgl32.Mat4) Ray {
	ndcX := 2*screenX/viewportW - 1
	ndcY := 1 - 2*screenY/viewportH // Flip Y

	near := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, -1, 1})
	far := invViewProj.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})

	origin := perspectiveDivide(near)
	dir := perspectiveDivide(far).Sub(origin)
	if l := dir.Len(); l > 0 {
		dir = dir.Mul(1 / l)
	}
	return Ray{Origin: origin, Direction: dir}
}

func perspectiveDivide(v mgl32.Vec4) mgl32.Vec3 {
	if v[3] != 0 {
		return mgl32.Vec3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
	}
	return v.Vec3()
}

// IntersectPlaneY intersects the ray with the horizontal plane y = planeY.
func (r Ray) IntersectPlaneY(planeY float32) (x, z float32, ok bool) {
	if math32.Abs(r.Direction[1]) < 0.001 {
		return 0, 0, false
	}
	t := (planeY - r.Origin[1]) / r.Direction[1]
	if t < 0 {
		return 0, 0, false
	}
	p := r.At(t)
	return p[0], p[2], true
}

// IntersectBounds returns the entry and exit distances of the ray through
// an axis-aligned box. A ray starting inside has tmin 0.
func (r Ray) IntersectBounds(box terrain.Bounds) (tmin, tmax float32, hit bool) {
	tmin = -math32.MaxFloat32
	tmax = math32.MaxFloat32

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			if o < box.Min[axis] || o > box.Max[axis] {
				return 0, 0, false
			}
			continue
		}
		t1 := (box.Min[axis] - o) / d
		t2 := (box.Max[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return max(tmin, 0), tmax, true
}

// HeightFunc returns the terrain height under a world-space position.
type HeightFunc func(worldX, worldZ float32) float32

// IntersectTerrain marches the ray through bounds in steps of step world
// units and refines the first crossing below the surface by bisection.
func (r Ray) IntersectTerrain(bounds terrain.Bounds, height HeightFunc, step float32) (mgl32.Vec3, bool) {
	tmin, tmax, ok := r.IntersectBounds(bounds)
	if !ok || step <= 0 {
		return mgl32.Vec3{}, false
	}

	above := func(t float32) bool {
		p := r.At(t)
		return p[1] >= height(p[0], p[2])
	}

	if !above(tmin) {
		return r.At(tmin), true
	}
	prev := tmin
	for t := tmin + step; ; t += step {
		t = min(t, tmax)
		if !above(t) {
			lo, hi := prev, t
			for i := 0; i < 24; i++ {
				mid := (lo + hi) / 2
				if above(mid) {
					lo = mid
				} else {
					hi = mid
				}
			}
			return r.At(hi), true
		}
		if t >= tmax {
			return mgl32.Vec3{}, false
		}
		prev = t
	}
}
