package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}
	if !cfg.Graphics.HUD {
		t.Error("expected the status panel to be shown by default")
	}

	if cfg.Terrain.Size != 513 {
		t.Errorf("expected terrain size 513, got %d", cfg.Terrain.Size)
	}
	if cfg.Terrain.PatchSize != 33 {
		t.Errorf("expected patch size 33, got %d", cfg.Terrain.PatchSize)
	}
	if cfg.Terrain.Seed != 0 {
		t.Errorf("expected random seed by default, got %d", cfg.Terrain.Seed)
	}

	if cfg.Camera.Mode != "orbit" {
		t.Errorf("expected orbit camera, got %s", cfg.Camera.Mode)
	}
	if !cfg.Lighting.Shadows {
		t.Error("expected shadows to be enabled by default")
	}
	if cfg.Lighting.FocusShadows {
		t.Error("expected whole-terrain shadows by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  vsync: false
  wireframe: true
  hud: false

terrain:
  size: 257
  patch_size: 17
  roughness: 1.5
  min_height: -20
  max_height: 400
  textures: ["sand.png", "grass.png", "rock.bmp", "snow.tiff"]
  seed: 99

camera:
  mode: fly
  fov: 60

lighting:
  sun_elevation: 15
  shadows: false
  focus_shadows: true

logging:
  level: "debug"
  log_file: "geomip.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.VSync {
		t.Error("expected vsync to be false")
	}
	if !cfg.Graphics.Wireframe {
		t.Error("expected wireframe to be true")
	}
	if cfg.Graphics.HUD {
		t.Error("expected hud to be false")
	}

	if cfg.Terrain.Size != 257 || cfg.Terrain.PatchSize != 17 {
		t.Errorf("expected terrain 257/17, got %d/%d", cfg.Terrain.Size, cfg.Terrain.PatchSize)
	}
	if cfg.Terrain.MinHeight != -20 {
		t.Errorf("expected min height -20, got %f", cfg.Terrain.MinHeight)
	}
	if len(cfg.Terrain.Textures) != 4 {
		t.Errorf("expected 4 textures, got %d", len(cfg.Terrain.Textures))
	}
	if cfg.Terrain.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Terrain.Seed)
	}
	// Untouched keys keep their defaults.
	if cfg.Terrain.WorldScale != 4 {
		t.Errorf("expected default world scale 4, got %f", cfg.Terrain.WorldScale)
	}

	if cfg.Camera.Mode != "fly" {
		t.Errorf("expected fly camera, got %s", cfg.Camera.Mode)
	}
	if cfg.Camera.FOV != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FOV)
	}
	if cfg.Lighting.Shadows {
		t.Error("expected shadows to be disabled")
	}
	if !cfg.Lighting.FocusShadows {
		t.Error("expected focused shadows")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "geomip.log" {
		t.Errorf("expected log file 'geomip.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
terrain:
  size: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFileEmptyPath(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Terrain.Size != Default().Terrain.Size {
		t.Errorf("expected defaults, got terrain size %d", cfg.Terrain.Size)
	}
}

func TestTerrainConfig(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Seed = 7
	cfg.Terrain.Textures = []string{"a.png"}

	tc := cfg.TerrainConfig()
	if tc.TerrainSize != cfg.Terrain.Size || tc.PatchSize != cfg.Terrain.PatchSize {
		t.Errorf("expected sizes %d/%d, got %d/%d", cfg.Terrain.Size, cfg.Terrain.PatchSize, tc.TerrainSize, tc.PatchSize)
	}
	if tc.Seed != 7 {
		t.Errorf("expected seed 7, got %d", tc.Seed)
	}

	tc.Textures[0] = "b.png"
	if cfg.Terrain.Textures[0] != "a.png" {
		t.Error("TerrainConfig should copy the texture list")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, true},
		{"bad patch", func(c *Config) { c.Terrain.PatchSize = 32 }, true},
		{"unknown camera", func(c *Config) { c.Camera.Mode = "chase" }, true},
		{"inverted clip", func(c *Config) { c.Camera.Far = 0.5 }, true},
		{"no shadow map", func(c *Config) { c.Lighting.ShadowResolution = 0 }, true},
		{"no shadow map but shadows off", func(c *Config) {
			c.Lighting.ShadowResolution = 0
			c.Lighting.Shadows = false
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWrapsTerrainError(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Size = 500

	err := cfg.Validate()
	if !errors.Is(err, terrain.ErrInvalidConfig) {
		t.Errorf("expected terrain.ErrInvalidConfig, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "geomip.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path != "./geomip.yaml" {
		t.Errorf("expected ./geomip.yaml, got %q", path)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Terrain.Seed = 31337
	cfg.Camera.Mode = "fly"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Terrain.Seed != 31337 {
		t.Errorf("expected seed 31337, got %d", loaded.Terrain.Seed)
	}
	if loaded.Camera.Mode != "fly" {
		t.Errorf("expected fly camera, got %s", loaded.Camera.Mode)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "terrain flags",
			setup: func() {
				*flagSize = 1025
				*flagPatch = 65
				*flagRoughness = 0.8
				*flagSeed = 12
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Size != 1025 {
					t.Errorf("expected size 1025, got %d", cfg.Terrain.Size)
				}
				if cfg.Terrain.PatchSize != 65 {
					t.Errorf("expected patch size 65, got %d", cfg.Terrain.PatchSize)
				}
				if cfg.Terrain.Roughness != float32(0.8) {
					t.Errorf("expected roughness 0.8, got %f", cfg.Terrain.Roughness)
				}
				if cfg.Terrain.Seed != 12 {
					t.Errorf("expected seed 12, got %d", cfg.Terrain.Seed)
				}
			},
			teardown: func() {
				*flagSize = 0
				*flagPatch = 0
				*flagRoughness = 0
				*flagSeed = 0
			},
		},
		{
			name: "render toggles",
			setup: func() {
				*flagWireframe = true
				*flagNoShadows = true
				*flagFly = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Wireframe {
					t.Error("expected wireframe")
				}
				if cfg.Lighting.Shadows {
					t.Error("expected shadows off")
				}
				if cfg.Camera.Mode != "fly" {
					t.Errorf("expected fly camera, got %s", cfg.Camera.Mode)
				}
			},
			teardown: func() {
				*flagWireframe = false
				*flagNoShadows = false
				*flagFly = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Graphics.Width)
				}
				if cfg.Graphics.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
terrain:
  size: 257
  seed: 5
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagSeed = 6
	defer func() {
		*flagConfig = ""
		*flagSeed = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Terrain.Seed != 6 {
		t.Errorf("expected seed 6 from flag, got %d", cfg.Terrain.Seed)
	}
	if cfg.Terrain.Size != 257 {
		t.Errorf("expected size 257 from file, got %d", cfg.Terrain.Size)
	}
}
