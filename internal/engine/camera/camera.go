// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is what the renderer needs from any camera.
type Camera interface {
	Position() mgl32.Vec3
	ViewMatrix() mgl32.Mat4
}

var worldUp = mgl32.Vec3{0, 1, 0}

// Projection holds perspective parameters.
type Projection struct {
	FOV    float32 // Vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// Matrix returns the perspective projection matrix.
func (p Projection) Matrix() mgl32.Mat4 {
	aspect := p.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(p.FOV), aspect, p.Near, p.Far)
}

// OrbitCamera orbits around a target point.
type OrbitCamera struct {
	Target mgl32.Vec3

	// Spherical coordinates
	Distance float32
	Pitch    float32 // Vertical angle, radians
	Yaw      float32 // Horizontal angle, radians

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	DragSensitivity float32 // Radians per pixel
	ZoomSensitivity float32 // Fraction of distance per wheel step
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        1500,
		Pitch:           0.6,
		MinDistance:     20,
		MaxDistance:     20000,
		MinPitch:        0.05,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp, sp := math32.Cos(c.Pitch), math32.Sin(c.Pitch)
	offset := mgl32.Vec3{
		c.Distance * cp * math32.Sin(c.Yaw),
		c.Distance * sp,
		c.Distance * cp * math32.Cos(c.Yaw),
	}
	return c.Target.Add(offset)
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, worldUp)
}

// HandleDrag updates rotation based on mouse drag delta in pixels.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch = mgl32.Clamp(c.Pitch+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}

// HandleMovement pans the target on the ground plane relative to the view
// direction. Speed scales with distance.
func (c *OrbitCamera) HandleMovement(forward, right, up float32) {
	speed := c.Distance * 0.01
	sy, cy := math32.Sin(c.Yaw), math32.Cos(c.Yaw)

	// Forward points from the camera towards the target.
	fwd := mgl32.Vec3{-sy, 0, -cy}
	side := mgl32.Vec3{cy, 0, -sy}

	c.Target = c.Target.
		Add(fwd.Mul(forward * speed)).
		Add(side.Mul(right * speed)).
		Add(worldUp.Mul(up * speed))
}

// FitToBounds aims at the center of a bounding box from a distance that
// shows most of it.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Target = lo.Add(hi).Mul(0.5)

	size := hi[0] - lo[0]
	if d := hi[2] - lo[2]; d > size {
		size = d
	}
	c.Distance = mgl32.Clamp(size*0.6, c.MinDistance, c.MaxDistance)
	c.Pitch = mgl32.Clamp(0.6, c.MinPitch, c.MaxPitch)
	c.Yaw = 0
}

// FlyCamera is a free-flying first person camera.
type FlyCamera struct {
	Pos   mgl32.Vec3
	Yaw   float32 // Radians, 0 looks down -Z
	Pitch float32 // Radians, positive looks up

	Speed       float32 // World units per second
	Sensitivity float32 // Radians per pixel
	MaxPitch    float32
}

// NewFlyCamera creates a fly camera at pos.
func NewFlyCamera(pos mgl32.Vec3) *FlyCamera {
	return &FlyCamera{
		Pos:         pos,
		Speed:       200,
		Sensitivity: 0.003,
		MaxPitch:    mgl32.DegToRad(89),
	}
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() mgl32.Vec3 {
	return c.Pos
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return mgl32.Vec3{
		-math32.Sin(c.Yaw) * cp,
		math32.Sin(c.Pitch),
		-math32.Cos(c.Yaw) * cp,
	}
}

// Right returns the unit right vector on the ground plane.
func (c *FlyCamera) Right() mgl32.Vec3 {
	return mgl32.Vec3{math32.Cos(c.Yaw), 0, -math32.Sin(c.Yaw)}
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Pos, c.Pos.Add(c.Forward()), worldUp)
}

// HandleLook turns the camera by a mouse delta in pixels.
func (c *FlyCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch-deltaY*c.Sensitivity, -c.MaxPitch, c.MaxPitch)
}

// HandleMovement moves along the view direction, sideways and vertically.
// Inputs are in [-1, 1]; dt is the frame time in seconds.
func (c *FlyCamera) HandleMovement(forward, right, up, dt float32) {
	step := c.Speed * dt
	c.Pos = c.Pos.
		Add(c.Forward().Mul(forward * step)).
		Add(c.Right().Mul(right * step)).
		Add(worldUp.Mul(up * step))
}

// HandleZoom changes the fly speed with the scroll wheel.
func (c *FlyCamera) HandleZoom(delta float32) {
	c.Speed = mgl32.Clamp(c.Speed*(1+0.1*delta), 1, 100000)
}
