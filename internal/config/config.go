// Package config handles viewer configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Camera   CameraConfig   `yaml:"camera"`
	Lighting LightingConfig `yaml:"lighting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
	Wireframe  bool `yaml:"wireframe"`
	LodTint    bool `yaml:"lod_tint"` // Color patches by core LOD
	HUD        bool `yaml:"hud"`
}

// TerrainConfig mirrors terrain.Config in YAML form.
type TerrainConfig struct {
	Size         int      `yaml:"size"`
	PatchSize    int      `yaml:"patch_size"`
	Roughness    float32  `yaml:"roughness"`
	MinHeight    float32  `yaml:"min_height"`
	MaxHeight    float32  `yaml:"max_height"`
	WorldScale   float32  `yaml:"world_scale"`
	TextureScale float32  `yaml:"texture_scale"`
	Textures     []string `yaml:"textures"` // Lowest layer first
	Seed         int64    `yaml:"seed"`     // 0 for a new terrain every run
}

// CameraConfig holds projection and movement settings.
type CameraConfig struct {
	Mode        string  `yaml:"mode"` // "orbit" or "fly"
	FOV         float32 `yaml:"fov"`  // Vertical, degrees
	Near        float32 `yaml:"near"`
	Far         float32 `yaml:"far"`
	Speed       float32 `yaml:"speed"`       // Fly speed, world units per second
	Sensitivity float32 `yaml:"sensitivity"` // Degrees per pixel of mouse motion
	Distance    float32 `yaml:"distance"`    // Initial orbit distance
	Yaw         float32 `yaml:"yaw"`         // Initial yaw, degrees
	Pitch       float32 `yaml:"pitch"`       // Initial pitch, degrees
}

// LightingConfig holds sun and shadow settings.
type LightingConfig struct {
	SunAzimuth       float32 `yaml:"sun_azimuth"`   // Degrees clockwise from north
	SunElevation     float32 `yaml:"sun_elevation"` // Degrees above the horizon
	Ambient          float32 `yaml:"ambient"`
	Shadows          bool    `yaml:"shadows"`
	ShadowResolution int     `yaml:"shadow_resolution"`
	FocusShadows     bool    `yaml:"focus_shadows"` // Fit the shadow map around the camera
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	tc := terrain.DefaultConfig()
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			HUD:        true,
		},
		Terrain: TerrainConfig{
			Size:         tc.TerrainSize,
			PatchSize:    tc.PatchSize,
			Roughness:    tc.Roughness,
			MinHeight:    tc.MinHeight,
			MaxHeight:    tc.MaxHeight,
			WorldScale:   tc.WorldScale,
			TextureScale: tc.TextureScale,
		},
		Camera: CameraConfig{
			Mode:        "orbit",
			FOV:         45,
			Near:        1,
			Far:         terrain.ZFar * 2,
			Speed:       200,
			Sensitivity: 0.2,
			Distance:    1500,
			Yaw:         45,
			Pitch:       35,
		},
		Lighting: LightingConfig{
			SunAzimuth:       135,
			SunElevation:     40,
			Ambient:          0.25,
			Shadows:          true,
			ShadowResolution: 2048,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// TerrainConfig converts the terrain section to the engine's config type.
func (c *Config) TerrainConfig() terrain.Config {
	t := c.Terrain
	return terrain.Config{
		TerrainSize:  t.Size,
		PatchSize:    t.PatchSize,
		Roughness:    t.Roughness,
		MinHeight:    t.MinHeight,
		MaxHeight:    t.MaxHeight,
		WorldScale:   t.WorldScale,
		TextureScale: t.TextureScale,
		Textures:     append([]string(nil), t.Textures...),
		Seed:         t.Seed,
	}
}

// Validate checks settings that would otherwise fail deep inside the engine.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if err := c.TerrainConfig().Validate(); err != nil {
		return fmt.Errorf("terrain: %w", err)
	}
	switch c.Camera.Mode {
	case "orbit", "fly":
	default:
		return fmt.Errorf("camera: unknown mode %q", c.Camera.Mode)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera: invalid clip range [%.2f, %.2f]", c.Camera.Near, c.Camera.Far)
	}
	if c.Lighting.Shadows && c.Lighting.ShadowResolution <= 0 {
		return fmt.Errorf("lighting: shadow resolution must be positive, got %d", c.Lighting.ShadowResolution)
	}
	return nil
}
