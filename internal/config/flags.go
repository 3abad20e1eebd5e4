package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file (.yaml or .toml)")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagHeightmap  = flag.String("heightmap", "", "Heightmap image to load")
	flagSkip       = flag.Int("skip", 0, "Initial reduce skip size (1-300); 0 prompts")
	flagStep       = flag.Float64("step", 0, "Catmull-Rom step size (0.01-1.0); 0 prompts")
	flagShaders    = flag.String("shaders", "", "Directory with terrain.vert/terrain.frag overrides")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagSaveConfig = flag.Bool("save-config", false, "On exit, write the effective config with the last skip/step to --config or the user config dir")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagHeightmap != "" {
		cfg.Terrain.Heightmap = *flagHeightmap
	}
	if *flagSkip > 0 {
		cfg.Terrain.SkipSize = *flagSkip
	}
	if *flagStep > 0 {
		cfg.Terrain.StepSize = float32(*flagStep)
	}
	if *flagShaders != "" {
		cfg.Shaders.Dir = *flagShaders
		cfg.Shaders.HotReload = true
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
}
