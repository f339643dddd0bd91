package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

// boundsRadius returns the half-diagonal of a bounding box.
func boundsRadius(b terrain.Bounds) float32 {
	return b.Max.Sub(b.Min).Len() / 2
}

// lightUp picks an up vector that is not parallel to the light.
func lightUp(sunDir mgl32.Vec3) mgl32.Vec3 {
	if math32.Abs(sunDir[1]) > 0.99 {
		return mgl32.Vec3{0, 0, 1}
	}
	return mgl32.Vec3{0, 1, 0}
}

// DirectionalLightMatrix returns a view-projection for a shadow map that
// covers the whole of bounds as seen from sunDir (pointing towards the sun).
func DirectionalLightMatrix(sunDir mgl32.Vec3, bounds terrain.Bounds) mgl32.Mat4 {
	center := bounds.Center()
	radius := boundsRadius(bounds)

	dist := radius * 2
	eye := center.Add(sunDir.Normalize().Mul(dist))
	view := mgl32.LookAtV(eye, center, lightUp(sunDir))

	half := radius * 1.1
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, dist+half)
	return proj.Mul4(view)
}

// FocusedLightMatrix covers only a disc of the terrain around focus, sized by
// the camera distance and capped at the whole terrain. It gives sharper
// shadows near the viewer on large terrains.
func FocusedLightMatrix(sunDir mgl32.Vec3, bounds terrain.Bounds, focus mgl32.Vec3, cameraDistance float32) mgl32.Mat4 {
	radius := mgl32.Clamp(cameraDistance*1.5, 100, boundsRadius(bounds))
	center := mgl32.Vec3{focus[0], bounds.Center()[1], focus[2]}

	height := bounds.Max[1] - bounds.Min[1]
	dist := radius + height
	eye := center.Add(sunDir.Normalize().Mul(dist))
	view := mgl32.LookAtV(eye, center, lightUp(sunDir))

	half := radius * 1.1
	proj := mgl32.Ortho(-half, half, -half, half, 0.1, dist+height+half)
	return proj.Mul4(view)
}
