// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics" toml:"graphics"`
	Terrain    TerrainConfig    `yaml:"terrain" toml:"terrain"`
	Controls   ControlsConfig   `yaml:"controls" toml:"controls"`
	Shaders    ShadersConfig    `yaml:"shaders" toml:"shaders"`
	Screenshot ScreenshotConfig `yaml:"screenshot" toml:"screenshot"`
	Logging    LoggingConfig    `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width" toml:"width"`
	Height     int        `yaml:"height" toml:"height"`
	Fullscreen bool       `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool       `yaml:"vsync" toml:"vsync"`
	FovY       float32    `yaml:"fov_y" toml:"fov_y"` // degrees
	Near       float32    `yaml:"near" toml:"near"`
	Far        float32    `yaml:"far" toml:"far"`
	ClearColor [3]float32 `yaml:"clear_color" toml:"clear_color"`
	PointSize  float32    `yaml:"point_size" toml:"point_size"`
}

// TerrainConfig holds heightmap and processing settings.
type TerrainConfig struct {
	Heightmap string  `yaml:"heightmap" toml:"heightmap"`   // Empty opens a file dialog
	SkipSize  int     `yaml:"skip_size" toml:"skip_size"`   // 0 prompts on startup
	StepSize  float32 `yaml:"step_size" toml:"step_size"`   // 0 prompts on startup
	Scale     float32 `yaml:"scale" toml:"scale"`           // Initial model scale
	YOffset   float32 `yaml:"y_offset" toml:"y_offset"`     // Model translation on Y
	HeightMul float32 `yaml:"height_mul" toml:"height_mul"` // Extra vertical exaggeration
}

// ControlsConfig holds input tuning.
type ControlsConfig struct {
	MoveSpeed        float32 `yaml:"move_speed" toml:"move_speed"`               // Units per second
	MouseSensitivity float32 `yaml:"mouse_sensitivity" toml:"mouse_sensitivity"` // Degrees per pixel
	ScaleSpeed       float32 `yaml:"scale_speed" toml:"scale_speed"`             // Scale change per second
	CooldownMS       int     `yaml:"cooldown_ms" toml:"cooldown_ms"`             // Repeat delay for N/M/F12
}

// ShadersConfig holds shader source settings.
type ShadersConfig struct {
	Dir       string `yaml:"dir" toml:"dir"` // Empty uses the embedded shaders
	HotReload bool   `yaml:"hot_reload" toml:"hot_reload"`
}

// ScreenshotConfig holds screenshot output settings.
type ScreenshotConfig struct {
	Dir    string `yaml:"dir" toml:"dir"`
	Prefix string `yaml:"prefix" toml:"prefix"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FovY:       45,
			Near:       0.01,
			Far:        100,
			ClearColor: [3]float32{0.2, 0.3, 0.3},
			PointSize:  2,
		},
		Terrain: TerrainConfig{
			Heightmap: "heightmaps/depth.bmp",
			Scale:     0.01,
			YOffset:   -0.75,
			HeightMul: 1,
		},
		Controls: ControlsConfig{
			MoveSpeed:        15,
			MouseSensitivity: 0.1,
			ScaleSpeed:       0.1,
			CooldownMS:       1000,
		},
		Shaders: ShadersConfig{
			Dir:       "",
			HotReload: false,
		},
		Screenshot: ScreenshotConfig{
			Dir:    "screenshots",
			Prefix: "terrain",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
