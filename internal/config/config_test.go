package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 800 {
		t.Errorf("expected height 800, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if cfg.Graphics.FovY != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Graphics.FovY)
	}

	if cfg.Terrain.Heightmap != "heightmaps/depth.bmp" {
		t.Errorf("expected default heightmap heightmaps/depth.bmp, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.SkipSize != 0 || cfg.Terrain.StepSize != 0 {
		t.Error("expected processing parameters to be unset so the viewer prompts")
	}
	if cfg.Terrain.Scale != 0.01 {
		t.Errorf("expected scale 0.01, got %f", cfg.Terrain.Scale)
	}

	if cfg.Controls.CooldownMS != 1000 {
		t.Errorf("expected cooldown 1000ms, got %d", cfg.Controls.CooldownMS)
	}
	if cfg.Controls.MoveSpeed != 15 {
		t.Errorf("expected move speed 15, got %f", cfg.Controls.MoveSpeed)
	}

	if cfg.Shaders.Dir != "" || cfg.Shaders.HotReload {
		t.Error("expected embedded shaders without hot reload by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fov_y: 60

terrain:
  heightmap: "maps/alps.png"
  skip_size: 4
  step_size: 0.25
  height_mul: 30

controls:
  cooldown_ms: 500

shaders:
  dir: "shaders"
  hot_reload: true

logging:
  level: "debug"
  log_file: "viewer.log"
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
	if !cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Graphics.FovY != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Graphics.FovY)
	}
	if cfg.Terrain.Heightmap != "maps/alps.png" {
		t.Errorf("expected heightmap maps/alps.png, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.SkipSize != 4 {
		t.Errorf("expected skip 4, got %d", cfg.Terrain.SkipSize)
	}
	if cfg.Terrain.StepSize != 0.25 {
		t.Errorf("expected step 0.25, got %f", cfg.Terrain.StepSize)
	}
	if cfg.Terrain.HeightMul != 30 {
		t.Errorf("expected height_mul 30, got %f", cfg.Terrain.HeightMul)
	}
	// Untouched fields keep their defaults
	if cfg.Terrain.Scale != 0.01 {
		t.Errorf("expected default scale 0.01, got %f", cfg.Terrain.Scale)
	}
	if cfg.Controls.CooldownMS != 500 {
		t.Errorf("expected cooldown 500, got %d", cfg.Controls.CooldownMS)
	}
	if !cfg.Shaders.HotReload || cfg.Shaders.Dir != "shaders" {
		t.Errorf("expected shader hot reload from 'shaders', got %+v", cfg.Shaders)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromTOML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	tomlContent := `
[graphics]
width = 1024
clear_color = [0.0, 0.0, 0.1]

[terrain]
heightmap = "maps/dunes.tga"
skip_size = 2

[logging]
level = "warn"
`

	if err := os.WriteFile(configPath, []byte(tomlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1024 {
		t.Errorf("expected width 1024, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 800 {
		t.Errorf("expected default height 800, got %d", cfg.Graphics.Height)
	}
	if cfg.Graphics.ClearColor != [3]float32{0, 0, 0.1} {
		t.Errorf("unexpected clear color %v", cfg.Graphics.ClearColor)
	}
	if cfg.Terrain.Heightmap != "maps/dunes.tga" {
		t.Errorf("expected heightmap maps/dunes.tga, got %s", cfg.Terrain.Heightmap)
	}
	if cfg.Terrain.SkipSize != 2 {
		t.Errorf("expected skip 2, got %d", cfg.Terrain.SkipSize)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected level warn, got %s", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	files := map[string]string{
		"invalid.yaml": "graphics:\n  width: not a number\n  invalid syntax here\n",
		"invalid.toml": "[graphics\nwidth = = 3\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			configPath := filepath.Join(tmpDir, name)
			if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}
			if err := loadFromFile(Default(), configPath); err == nil {
				t.Error("expected error loading invalid config, got nil")
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
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
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("[graphics]\nwidth = 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.toml" {
		t.Errorf("expected to find config.toml, got %q", path)
	}

	// YAML wins when both exist
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "config.yaml" {
		t.Errorf("expected to find config.yaml, got %q", path)
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
			name: "processing flags",
			setup: func() {
				*flagHeightmap = "other.bmp"
				*flagSkip = 5
				*flagStep = 0.2
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Terrain.Heightmap != "other.bmp" {
					t.Errorf("expected heightmap other.bmp, got %s", cfg.Terrain.Heightmap)
				}
				if cfg.Terrain.SkipSize != 5 {
					t.Errorf("expected skip 5, got %d", cfg.Terrain.SkipSize)
				}
				if cfg.Terrain.StepSize != float32(0.2) {
					t.Errorf("expected step 0.2, got %f", cfg.Terrain.StepSize)
				}
			},
			teardown: func() {
				*flagHeightmap = ""
				*flagSkip = 0
				*flagStep = 0
			},
		},
		{
			name:  "shaders flag enables hot reload",
			setup: func() { *flagShaders = "dev/shaders" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shaders.Dir != "dev/shaders" || !cfg.Shaders.HotReload {
					t.Errorf("unexpected shader config %+v", cfg.Shaders)
				}
			},
			teardown: func() { *flagShaders = "" },
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
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from flag, height from file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	for _, name := range []string{"out.yaml", "nested/out.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)

			cfg := Default()
			cfg.Terrain.SkipSize = 7
			cfg.Graphics.ClearColor = [3]float32{1, 0.5, 0}
			if err := cfg.SaveTo(path); err != nil {
				t.Fatalf("SaveTo: %v", err)
			}

			loaded := Default()
			if err := loadFromFile(loaded, path); err != nil {
				t.Fatalf("loadFromFile: %v", err)
			}
			if loaded.Terrain.SkipSize != 7 {
				t.Errorf("expected skip 7, got %d", loaded.Terrain.SkipSize)
			}
			if loaded.Graphics.ClearColor != cfg.Graphics.ClearColor {
				t.Errorf("expected clear color %v, got %v", cfg.Graphics.ClearColor, loaded.Graphics.ClearColor)
			}
		})
	}
}

func TestSaveEffective(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("explicit config path", func(t *testing.T) {
		path := filepath.Join(tmpDir, "session.toml")
		*flagConfig = path
		defer func() { *flagConfig = "" }()

		cfg := Default()
		written, err := cfg.SaveEffective(4, 0.25)
		if err != nil {
			t.Fatalf("SaveEffective: %v", err)
		}
		if written != path {
			t.Errorf("expected %s, got %s", path, written)
		}
		if cfg.Terrain.SkipSize != 0 {
			t.Errorf("SaveEffective modified the receiver: skip %d", cfg.Terrain.SkipSize)
		}

		loaded := Default()
		if err := loadFromFile(loaded, path); err != nil {
			t.Fatalf("loadFromFile: %v", err)
		}
		if loaded.Terrain.SkipSize != 4 || loaded.Terrain.StepSize != 0.25 {
			t.Errorf("expected skip 4 step 0.25, got %d %g", loaded.Terrain.SkipSize, loaded.Terrain.StepSize)
		}
	})

	t.Run("user config dir", func(t *testing.T) {
		if runtime.GOOS != "linux" {
			t.Skip("config dir override via XDG_CONFIG_HOME is linux only")
		}
		t.Setenv("XDG_CONFIG_HOME", tmpDir)

		written, err := Default().SaveEffective(9, 0.5)
		if err != nil {
			t.Fatalf("SaveEffective: %v", err)
		}
		want := filepath.Join(tmpDir, "terrainview", "config.yaml")
		if written != want {
			t.Errorf("expected %s, got %s", want, written)
		}

		loaded := Default()
		if err := loadFromFile(loaded, want); err != nil {
			t.Fatalf("loadFromFile: %v", err)
		}
		if loaded.Terrain.SkipSize != 9 {
			t.Errorf("expected skip 9, got %d", loaded.Terrain.SkipSize)
		}
	})
}
