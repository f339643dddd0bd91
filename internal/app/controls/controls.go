// Package controls maps per-frame input to viewer actions and camera motion.
package controls

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/geomip/internal/engine/camera"
	"github.com/Faultbox/geomip/internal/engine/input"
)

// Action is a set of one-shot viewer commands triggered this frame.
type Action uint32

const (
	ToggleWireframe Action = 1 << iota
	ToggleFreezeLOD
	ToggleShadows
	ToggleLodTint
	TogglePatchGrid
	ToggleHUD
	Screenshot
	SwitchCamera
	ResetView
	Regenerate
	Probe
	Quit
)

// Has reports whether every action in b is set.
func (a Action) Has(b Action) bool {
	return a&b == b
}

// Bindings maps keys to actions.
type Bindings map[sdl.Scancode]Action

// DefaultBindings returns the viewer's key map.
func DefaultBindings() Bindings {
	return Bindings{
		sdl.SCANCODE_F1:     ToggleWireframe,
		sdl.SCANCODE_F2:     ToggleFreezeLOD,
		sdl.SCANCODE_F3:     ToggleShadows,
		sdl.SCANCODE_F4:     ToggleLodTint,
		sdl.SCANCODE_F5:     TogglePatchGrid,
		sdl.SCANCODE_F6:     ToggleHUD,
		sdl.SCANCODE_F12:    Screenshot,
		sdl.SCANCODE_TAB:    SwitchCamera,
		sdl.SCANCODE_HOME:   ResetView,
		sdl.SCANCODE_R:      Regenerate,
		sdl.SCANCODE_P:      Probe,
		sdl.SCANCODE_ESCAPE: Quit,
	}
}

// Actions collects the actions whose keys went down this frame.
func (b Bindings) Actions(s *input.State) Action {
	var a Action
	for key, action := range b {
		if s.Pressed(key) {
			a |= action
		}
	}
	if s.Quit {
		a |= Quit
	}
	return a
}

// Options are the render toggles the actions flip.
type Options struct {
	Wireframe bool
	FreezeLOD bool
	Shadows   bool
	LodTint   bool
	PatchGrid bool
	HUD       bool
}

// Apply flips the options named by a.
func (o *Options) Apply(a Action) {
	if a.Has(ToggleWireframe) {
		o.Wireframe = !o.Wireframe
	}
	if a.Has(ToggleFreezeLOD) {
		o.FreezeLOD = !o.FreezeLOD
	}
	if a.Has(ToggleShadows) {
		o.Shadows = !o.Shadows
	}
	if a.Has(ToggleLodTint) {
		o.LodTint = !o.LodTint
	}
	if a.Has(TogglePatchGrid) {
		o.PatchGrid = !o.PatchGrid
	}
	if a.Has(ToggleHUD) {
		o.HUD = !o.HUD
	}
}

// movement reads WASD plus E/Q (or Space/Ctrl) for vertical motion.
func movement(s *input.State) (forward, right, up float32) {
	forward = s.Axis(sdl.SCANCODE_W, sdl.SCANCODE_S)
	right = s.Axis(sdl.SCANCODE_D, sdl.SCANCODE_A)
	up = s.Axis(sdl.SCANCODE_E, sdl.SCANCODE_Q) + s.Axis(sdl.SCANCODE_SPACE, sdl.SCANCODE_LCTRL)
	up = mgl32.Clamp(up, -1, 1)
	if s.Held(sdl.SCANCODE_LSHIFT) {
		forward, right, up = forward*4, right*4, up*4
	}
	return forward, right, up
}

// DriveOrbit rotates on left drag, zooms on wheel and pans the target with
// the movement keys. Pan speed is normalized to 60 frames per second.
func DriveOrbit(c *camera.OrbitCamera, s *input.State, dt float32) {
	if s.Button(sdl.BUTTON_LEFT) {
		c.HandleDrag(s.DeltaX, s.DeltaY)
	}
	if s.Wheel != 0 {
		c.HandleZoom(s.Wheel)
	}
	forward, right, up := movement(s)
	if forward != 0 || right != 0 || up != 0 {
		scale := dt * 60
		c.HandleMovement(forward*scale, right*scale, up*scale)
	}
}

// DriveFly turns with relative mouse motion, flies with the movement keys
// and changes speed with the wheel.
func DriveFly(c *camera.FlyCamera, s *input.State, dt float32) {
	if s.DeltaX != 0 || s.DeltaY != 0 {
		c.HandleLook(s.DeltaX, s.DeltaY)
	}
	if s.Wheel != 0 {
		c.HandleZoom(s.Wheel)
	}
	forward, right, up := movement(s)
	c.HandleMovement(forward, right, up, dt)
}

// FlyFromOrbit places a fly camera at the orbit camera's eye, looking at
// its target.
func FlyFromOrbit(fly *camera.FlyCamera, orbit *camera.OrbitCamera) {
	fly.Pos = orbit.Position()
	fly.Yaw = orbit.Yaw
	fly.Pitch = mgl32.Clamp(-orbit.Pitch, -fly.MaxPitch, fly.MaxPitch)
}
