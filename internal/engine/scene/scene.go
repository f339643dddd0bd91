// Package scene renders a geomipmapped terrain with sun lighting, shadows
// and debug overlays into an offscreen framebuffer.
package scene

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/geomip/internal/engine/camera"
	"github.com/Faultbox/geomip/internal/engine/debug"
	"github.com/Faultbox/geomip/internal/engine/framebuffer"
	"github.com/Faultbox/geomip/internal/engine/lighting"
	"github.com/Faultbox/geomip/internal/engine/shadow"
	"github.com/Faultbox/geomip/internal/engine/terrain"
	"github.com/Faultbox/geomip/internal/engine/texture"
)

// hudMargin is the status panel offset from the top-left corner, in pixels.
const hudMargin = 8

var boundsColor = mgl32.Vec3{1, 1, 1}

// Config contains scene configuration options.
type Config struct {
	Width            int32
	Height           int32
	ShadowResolution int32
	ShadowsEnabled   bool
	FocusShadows     bool
	SunAzimuth       float32
	SunElevation     float32
	Ambient          float32
	ClearColor       mgl32.Vec3
}

// DefaultConfig returns a default scene configuration.
func DefaultConfig() Config {
	return Config{
		Width:            1280,
		Height:           720,
		ShadowResolution: shadow.DefaultResolution,
		ShadowsEnabled:   true,
		SunAzimuth:       135,
		SunElevation:     40,
		Ambient:          0.25,
		ClearColor:       mgl32.Vec3{0.53, 0.68, 0.85},
	}
}

// Scene draws one terrain. Exported toggles are read every frame.
type Scene struct {
	config Config
	log    *zap.Logger

	framebuffer     *framebuffer.Framebuffer
	terrainRenderer *TerrainRenderer
	lines           *LineRenderer
	hud             *Overlay
	shadowMap       *shadow.Map

	terrain       *terrain.Terrain
	bounds        terrain.Bounds
	sunDir        mgl32.Vec3
	lightViewProj mgl32.Mat4

	Ambient        float32
	ShadowsEnabled bool
	FocusShadows   bool // Fit the shadow map around the camera instead of the whole terrain
	LodTint        bool
	FreezeLOD      bool
	ShowPatchGrid  bool
	ShowHUD        bool
}

// New creates the GPU resources of a scene. A GL context must be current.
func New(cfg Config, log *zap.Logger) (*Scene, error) {
	s := &Scene{
		config:         cfg,
		log:            log,
		Ambient:        cfg.Ambient,
		ShadowsEnabled: cfg.ShadowsEnabled,
		FocusShadows:   cfg.FocusShadows,
	}
	s.SetSun(cfg.SunAzimuth, cfg.SunElevation)

	var err error
	s.framebuffer, err = framebuffer.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("creating framebuffer: %w", err)
	}

	s.shadowMap, err = shadow.NewMap(cfg.ShadowResolution)
	if err != nil {
		log.Warn("shadows disabled", zap.Error(err))
		s.ShadowsEnabled = false
	}

	s.terrainRenderer, err = NewTerrainRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating terrain renderer: %w", err)
	}

	s.lines, err = NewLineRenderer()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating line renderer: %w", err)
	}

	s.hud, err = NewOverlay()
	if err != nil {
		s.Destroy()
		return nil, fmt.Errorf("creating hud overlay: %w", err)
	}

	return s, nil
}

// SetTerrain uploads an initialized terrain. Texture paths come from its
// config; missing layers get procedural placeholders.
func (s *Scene) SetTerrain(t *terrain.Terrain) error {
	bounds, err := t.Bounds()
	if err != nil {
		return fmt.Errorf("terrain bounds: %w", err)
	}

	cfg := t.Config()
	layers := texture.LoadLayers(cfg.Textures, terrain.MaxTextures, texture.DefaultSize, s.log)
	if err := s.terrainRenderer.Upload(t.Mesh(), cfg, layers); err != nil {
		return fmt.Errorf("uploading terrain: %w", err)
	}

	s.terrain = t
	s.bounds = bounds
	s.updateLightMatrix()

	s.log.Info("terrain uploaded",
		zap.Int("vertices", len(t.Mesh().Vertices())),
		zap.Int("indices", len(t.Mesh().Indices())),
	)
	return nil
}

// SetSun points the sun at azimuth and elevation, in degrees.
func (s *Scene) SetSun(azimuth, elevation float32) {
	s.sunDir = lighting.SunDirection(azimuth, elevation)
	s.updateLightMatrix()
}

func (s *Scene) updateLightMatrix() {
	if s.terrain == nil {
		return
	}
	s.lightViewProj = lighting.DirectionalLightMatrix(s.sunDir, s.bounds)
}

// Render draws the frame for cam into the offscreen framebuffer.
func (s *Scene) Render(cam camera.Camera, proj camera.Projection) {
	restore := s.framebuffer.BindWithViewport()
	defer restore()

	c := s.config.ClearColor
	s.framebuffer.Clear(c[0], c[1], c[2])
	if s.terrain == nil {
		return
	}

	proj.Aspect = s.aspect()
	viewProj := proj.Matrix().Mul4(cam.ViewMatrix())
	camPos := cam.Position()

	// The first pass to run updates patch levels; later passes replay them.
	updated := s.FreezeLOD
	draw := func(backend terrain.DrawBackend) {
		if updated {
			s.terrain.DrawCurrent(backend)
			return
		}
		s.terrain.Draw(backend, camPos)
		updated = true
	}

	lightViewProj := s.lightViewProj
	if s.FocusShadows {
		lightViewProj = lighting.FocusedLightMatrix(s.sunDir, s.bounds, camPos, camPos[1]-s.bounds.Min[1])
	}

	shadows := s.ShadowsEnabled && s.shadowMap.IsValid()
	if shadows {
		s.shadowMap.Bind()
		s.terrainRenderer.RenderShadow(lightViewProj, draw)
		s.shadowMap.Unbind()
	}

	s.terrainRenderer.Render(TerrainParams{
		ViewProj:         viewProj,
		LightViewProj:    lightViewProj,
		ReversedLightDir: lighting.ReversedLightDir(s.sunDir),
		Ambient:          s.Ambient,
		ShadowMap:        s.shadowMap,
		Shadows:          shadows,
		LodTint:          s.LodTint,
	}, draw)

	if s.ShowPatchGrid {
		lines := debug.PatchGridLines(s.terrain.Mesh(), s.terrain.GetWorldScale()*0.1)
		lines = append(lines, debug.BoundsLines(s.bounds, boundsColor)...)
		s.lines.Update(lines)
		s.lines.Render(viewProj)
	}
}

// SetHUD replaces the status panel image.
func (s *Scene) SetHUD(img *image.RGBA) {
	s.hud.SetImage(img)
}

// Present blits the rendered frame to the window and draws the status
// panel over it.
func (s *Scene) Present(width, height int32) {
	s.framebuffer.BlitToScreen(width, height)
	if s.ShowHUD {
		gl.Viewport(0, 0, width, height)
		s.hud.Render(hudMargin, hudMargin, width, height)
	}
}

// Screenshot writes the last rendered frame through sc.
func (s *Scene) Screenshot(sc *debug.ScreenshotCapture) (string, error) {
	w, h := s.framebuffer.Size()
	path, err := sc.CaptureFromPixels(s.framebuffer.ReadPixels(), int(w), int(h))
	if err != nil {
		return "", fmt.Errorf("saving screenshot: %w", err)
	}
	s.log.Info("screenshot saved", zap.String("path", path))
	return path, nil
}

// Resize updates the offscreen target to the drawable size.
func (s *Scene) Resize(width, height int32) {
	s.config.Width = width
	s.config.Height = height
	s.framebuffer.Resize(width, height)
}

func (s *Scene) aspect() float32 {
	w, h := s.framebuffer.Size()
	return float32(w) / float32(h)
}

// Destroy releases all resources.
func (s *Scene) Destroy() {
	if s.terrainRenderer != nil {
		s.terrainRenderer.Destroy()
	}
	if s.lines != nil {
		s.lines.Destroy()
	}
	if s.hud != nil {
		s.hud.Destroy()
	}
	if s.shadowMap != nil {
		s.shadowMap.Destroy()
	}
	if s.framebuffer != nil {
		s.framebuffer.Destroy()
	}
	gl.UseProgram(0)
}
