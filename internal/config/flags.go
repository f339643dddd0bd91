package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSize       = flag.Int("size", 0, "Terrain size in vertices")
	flagPatch      = flag.Int("patch", 0, "Patch size in vertices")
	flagRoughness  = flag.Float64("roughness", 0, "Midpoint displacement roughness")
	flagSeed       = flag.Int64("seed", 0, "Terrain seed")
	flagWireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	flagNoShadows  = flag.Bool("no-shadows", false, "Disable the shadow pass")
	flagFly        = flag.Bool("fly", false, "Start with the fly camera")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSize > 0 {
		cfg.Terrain.Size = *flagSize
	}
	if *flagPatch > 0 {
		cfg.Terrain.PatchSize = *flagPatch
	}
	if *flagRoughness > 0 {
		cfg.Terrain.Roughness = float32(*flagRoughness)
	}
	if *flagSeed != 0 {
		cfg.Terrain.Seed = *flagSeed
	}
	if *flagWireframe {
		cfg.Graphics.Wireframe = true
	}
	if *flagNoShadows {
		cfg.Lighting.Shadows = false
	}
	if *flagFly {
		cfg.Camera.Mode = "fly"
	}
}
