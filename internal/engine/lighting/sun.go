// Package lighting provides directional light math for the terrain renderer.
package lighting

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection converts azimuth and elevation in degrees to a unit vector
// pointing towards the sun. Azimuth 0 is north (-Z) and grows clockwise
// seen from above, so 90 is east (+X). Elevation is measured from the horizon.
func SunDirection(azimuth, elevation float32) mgl32.Vec3 {
	az := mgl32.DegToRad(azimuth)
	el := mgl32.DegToRad(mgl32.Clamp(elevation, -90, 90))

	ce := math32.Cos(el)
	return mgl32.Vec3{
		ce * math32.Sin(az),
		math32.Sin(el),
		-ce * math32.Cos(az),
	}
}

// ReversedLightDir is the direction light travels, as the terrain shader
// expects it: from the sun towards the ground.
func ReversedLightDir(sunDir mgl32.Vec3) mgl32.Vec3 {
	return sunDir.Mul(-1)
}
