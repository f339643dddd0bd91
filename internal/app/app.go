// Package app implements the terrain viewer main loop.
package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/geomip/internal/app/controls"
	"github.com/Faultbox/geomip/internal/config"
	"github.com/Faultbox/geomip/internal/engine/camera"
	"github.com/Faultbox/geomip/internal/engine/debug"
	"github.com/Faultbox/geomip/internal/engine/hud"
	"github.com/Faultbox/geomip/internal/engine/input"
	"github.com/Faultbox/geomip/internal/engine/picking"
	"github.com/Faultbox/geomip/internal/engine/renderer"
	"github.com/Faultbox/geomip/internal/engine/scene"
	"github.com/Faultbox/geomip/internal/engine/terrain"
	"github.com/Faultbox/geomip/internal/engine/window"
	"github.com/Faultbox/geomip/internal/logger"
)

const title = "geomip"

// App is the viewer instance.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	scene    *scene.Scene
	terrain  *terrain.Terrain

	orbit  *camera.OrbitCamera
	fly    *camera.FlyCamera
	flying bool
	proj   camera.Projection

	bindings    controls.Bindings
	opts        controls.Options
	screenshots *debug.ScreenshotCapture
	seed        int64
	fps         float64
	running     bool
}

// New opens the window, initializes OpenGL and builds the first terrain.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:         cfg,
		log:         logger.Named("viewer"),
		input:       input.New(),
		bindings:    controls.DefaultBindings(),
		screenshots: debug.NewScreenshotCapture("screenshots", title),
		seed:        cfg.Terrain.Seed,
		opts: controls.Options{
			Wireframe: cfg.Graphics.Wireframe,
			Shadows:   cfg.Lighting.Shadows,
			LodTint:   cfg.Graphics.LodTint,
			HUD:       cfg.Graphics.HUD,
		},
		proj: camera.Projection{
			FOV:  cfg.Camera.FOV,
			Near: cfg.Camera.Near,
			Far:  cfg.Camera.Far,
		},
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The renderer needs the GL context the window just created.
	width, height := a.window.GetDrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height}, logger.Named("renderer"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	sc := scene.DefaultConfig()
	sc.Width, sc.Height = int32(width), int32(height)
	sc.ShadowResolution = int32(cfg.Lighting.ShadowResolution)
	sc.ShadowsEnabled = cfg.Lighting.Shadows
	sc.FocusShadows = cfg.Lighting.FocusShadows
	sc.SunAzimuth = cfg.Lighting.SunAzimuth
	sc.SunElevation = cfg.Lighting.SunElevation
	sc.Ambient = cfg.Lighting.Ambient
	a.scene, err = scene.New(sc, logger.Named("scene"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create scene: %w", err)
	}

	if err := a.buildTerrain(); err != nil {
		a.Close()
		return nil, err
	}
	a.setupCameras()
	a.applyOptions()
	a.refreshHUD()

	a.log.Info("viewer initialized")
	return a, nil
}

// buildTerrain generates a terrain with the current seed and uploads it.
func (a *App) buildTerrain() error {
	tc := a.cfg.TerrainConfig()
	tc.Seed = a.seed

	t, err := terrain.New(tc, terrain.WithLogger(logger.Named("terrain")))
	if err != nil {
		return fmt.Errorf("creating terrain: %w", err)
	}
	if err := t.Init(); err != nil {
		return fmt.Errorf("initializing terrain: %w", err)
	}
	if err := a.scene.SetTerrain(t); err != nil {
		return err
	}
	a.terrain = t
	return nil
}

func (a *App) setupCameras() {
	target, err := a.terrain.Center()
	if err != nil {
		a.log.Warn("no terrain center", zap.Error(err))
	}

	a.orbit = camera.NewOrbitCamera()
	a.orbit.Target = target
	a.orbit.Distance = mgl32.Clamp(a.cfg.Camera.Distance, a.orbit.MinDistance, a.orbit.MaxDistance)
	a.orbit.Yaw = mgl32.DegToRad(a.cfg.Camera.Yaw)
	a.orbit.Pitch = mgl32.Clamp(mgl32.DegToRad(a.cfg.Camera.Pitch), a.orbit.MinPitch, a.orbit.MaxPitch)
	a.orbit.DragSensitivity = mgl32.DegToRad(a.cfg.Camera.Sensitivity)

	a.fly = camera.NewFlyCamera(a.orbit.Position())
	a.fly.Speed = a.cfg.Camera.Speed
	a.fly.Sensitivity = mgl32.DegToRad(a.cfg.Camera.Sensitivity)
	controls.FlyFromOrbit(a.fly, a.orbit)

	a.setFlying(a.cfg.Camera.Mode == "fly")
}

func (a *App) setFlying(on bool) {
	if on && !a.flying {
		controls.FlyFromOrbit(a.fly, a.orbit)
	}
	a.flying = on
	a.window.SetMouseCaptured(on)
}

func (a *App) activeCamera() camera.Camera {
	if a.flying {
		return a.fly
	}
	return a.orbit
}

func (a *App) applyOptions() {
	a.renderer.SetWireframe(a.opts.Wireframe)
	a.scene.ShadowsEnabled = a.opts.Shadows
	a.scene.FreezeLOD = a.opts.FreezeLOD
	a.scene.LodTint = a.opts.LodTint
	a.scene.ShowPatchGrid = a.opts.PatchGrid
	a.scene.ShowHUD = a.opts.HUD
}

// refreshHUD redraws the status panel from the current state.
func (a *App) refreshHUD() {
	if !a.opts.HUD || a.terrain == nil {
		return
	}
	a.scene.SetHUD(hud.Render(hud.Lines(hud.Stats{
		FPS:       a.fps,
		Seed:      a.seed,
		Camera:    a.activeCamera().Position(),
		Flying:    a.flying,
		LodCounts: hud.LodHistogram(a.terrain.Mesh().Selector()),
		Wireframe: a.opts.Wireframe,
		FreezeLOD: a.opts.FreezeLOD,
		Shadows:   a.opts.Shadows,
		LodTint:   a.opts.LodTint,
		PatchGrid: a.opts.PatchGrid,
	})))
}

// Run starts the main loop and returns when the window closes.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	var frameBudget time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	a.log.Info("starting main loop")

	for a.running {
		frameStart := time.Now()
		dt := float32(frameStart.Sub(lastTime).Seconds())
		lastTime = frameStart

		a.input.Update()
		if err := a.update(a.input.State(), dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if !a.running {
			break
		}

		a.render()
		a.window.SwapBuffers()

		frameCount++
		if elapsed := time.Since(fpsTimer); elapsed >= time.Second {
			a.fps = float64(frameCount) / elapsed.Seconds()
			a.window.SetTitle(fmt.Sprintf("%s - %.0f fps%s", title, a.fps, a.statusSuffix()))
			a.refreshHUD()
			a.log.Debug("fps", zap.Float64("fps", a.fps), zap.Float32("dt", dt))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if rest := frameBudget - time.Since(frameStart); rest > 0 {
				time.Sleep(rest)
			}
		}
	}
	return nil
}

func (a *App) statusSuffix() string {
	s := ""
	if a.opts.FreezeLOD {
		s += " [lod frozen]"
	}
	if a.flying {
		s += " [fly]"
	}
	return s
}

// update applies this frame's input.
func (a *App) update(s *input.State, dt float32) error {
	if s.Resized {
		w, h := a.window.GetDrawableSize()
		a.renderer.Resize(w, h)
		a.scene.Resize(int32(w), int32(h))
	}

	actions := a.bindings.Actions(s)
	if actions.Has(controls.Quit) {
		a.running = false
		return nil
	}

	a.opts.Apply(actions)
	a.applyOptions()
	if actions&(controls.ToggleFreezeLOD|controls.ToggleLodTint|controls.ToggleShadows) != 0 {
		a.log.Info("render options changed",
			zap.Bool("freezeLOD", a.opts.FreezeLOD),
			zap.Bool("lodTint", a.opts.LodTint),
			zap.Bool("shadows", a.opts.Shadows),
		)
	}

	if actions.Has(controls.SwitchCamera) {
		a.setFlying(!a.flying)
	}
	if actions.Has(controls.ResetView) {
		a.resetView()
	}
	if actions.Has(controls.Regenerate) {
		if err := a.regenerate(); err != nil {
			return err
		}
	}
	if actions != 0 {
		a.refreshHUD()
	}

	if a.flying {
		controls.DriveFly(a.fly, s, dt)
	} else {
		controls.DriveOrbit(a.orbit, s, dt)
	}

	if actions.Has(controls.Probe) {
		a.probe(s)
	}

	// Screenshots read the frame rendered last.
	if actions.Has(controls.Screenshot) {
		if _, err := a.scene.Screenshot(a.screenshots); err != nil {
			a.log.Error("screenshot failed", zap.Error(err))
		}
	}
	return nil
}

// resetView frames the whole terrain with the orbit camera.
func (a *App) resetView() {
	bounds, err := a.terrain.Bounds()
	if err != nil {
		return
	}
	a.orbit.FitToBounds(bounds.Min, bounds.Max)
	a.setFlying(false)
}

// regenerate builds a new terrain. A fixed seed advances by one so the
// sequence of terrains stays reproducible.
func (a *App) regenerate() error {
	if a.seed != 0 {
		a.seed++
	}
	if err := a.buildTerrain(); err != nil {
		return fmt.Errorf("regenerating terrain: %w", err)
	}
	a.log.Info("terrain regenerated", zap.Int64("seed", a.seed))
	return nil
}

// probe logs the terrain point under the cursor, or under the screen
// center while the fly camera holds the mouse.
func (a *App) probe(s *input.State) {
	w, h := a.window.GetSize()
	x, y := float32(s.MouseX), float32(s.MouseY)
	if a.flying {
		x, y = float32(w)/2, float32(h)/2
	}

	proj := a.proj
	proj.Aspect = a.renderer.Aspect()
	inv := proj.Matrix().Mul4(a.activeCamera().ViewMatrix()).Inv()
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), inv)

	bounds, err := a.terrain.Bounds()
	if err != nil {
		return
	}
	p, ok := ray.IntersectTerrain(bounds, a.terrain.HeightAt, a.terrain.GetWorldScale()/2)
	if !ok {
		a.log.Info("probe missed the terrain")
		return
	}
	px, pz, ok := a.terrain.PatchAtWorld(p[0], p[2])
	if !ok {
		return
	}
	lod, _ := a.terrain.PatchLod(px, pz)
	a.log.Info("probe",
		zap.Float32("x", p[0]),
		zap.Float32("y", p[1]),
		zap.Float32("z", p[2]),
		zap.Int("patchX", px),
		zap.Int("patchZ", pz),
		zap.Int("core", lod.Core),
		zap.Ints("edges", []int{lod.Left, lod.Right, lod.Top, lod.Bottom}),
	)
}

func (a *App) render() {
	a.renderer.Begin()
	a.scene.Render(a.activeCamera(), a.proj)
	w, h := a.window.GetDrawableSize()
	a.scene.Present(int32(w), int32(h))
	a.renderer.End()
}

// Close releases all resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.scene != nil {
		a.scene.Destroy()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
