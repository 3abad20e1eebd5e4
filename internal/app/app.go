// Package app wires the window, renderer and viewer state into the frame loop.
package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/command"
	"github.com/Faultbox/terrainview/internal/config"
	"github.com/Faultbox/terrainview/internal/engine/camera"
	"github.com/Faultbox/terrainview/internal/engine/debug"
	"github.com/Faultbox/terrainview/internal/engine/input"
	"github.com/Faultbox/terrainview/internal/engine/renderer"
	"github.com/Faultbox/terrainview/internal/engine/renderer/shaders"
	"github.com/Faultbox/terrainview/internal/engine/shader"
	"github.com/Faultbox/terrainview/internal/engine/window"
	"github.com/Faultbox/terrainview/internal/logger"
	"github.com/Faultbox/terrainview/internal/terrain"
	"github.com/Faultbox/terrainview/internal/viewer"
	"github.com/Faultbox/terrainview/pkg/math"
)

// Starting camera position.
var cameraHome = math.Vec3{X: 0, Y: 2, Z: 3}

// App owns every resource of a running viewer.
type App struct {
	cfg *config.Config
	log *zap.Logger

	window     *window.Window
	renderer   *renderer.Renderer
	input      *input.Input
	viewer     *viewer.Viewer
	throttle   *command.Throttle
	screenshot *debug.ScreenshotCapture
	watcher    *shader.Watcher

	projection math.Mat4
	width      int
	height     int
	running    bool
	commands   []command.Command
}

// New opens the window, uploads the terrain built from samples and applies
// params. Unset or rejected params are asked for through prompt.
func New(cfg *config.Config, samples terrain.Samples, params command.Params, prompt viewer.PromptFunc) (*App, error) {
	a := &App{
		cfg:        cfg,
		log:        logger.Named("app"),
		input:      input.New(),
		throttle:   command.NewThrottle(time.Duration(cfg.Controls.CooldownMS)*time.Millisecond, command.Advance, command.ToggleOriginal, command.Screenshot),
		screenshot: debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Terrain Viewer",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	src, err := a.shaderSource()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.renderer, err = renderer.New(renderer.Config{
		ClearColor:  cfg.Graphics.ClearColor,
		PointSize:   cfg.Graphics.PointSize,
		HeightScale: cfg.Terrain.HeightMul,
	}, src)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	if cfg.Shaders.Dir != "" && cfg.Shaders.HotReload {
		a.watcher, err = shader.NewWatcher(cfg.Shaders.Dir, logger.Named("shader"))
		if err != nil {
			a.log.Warn("shader hot reload disabled", zap.Error(err))
		}
	}

	t := terrain.New(samples,
		terrain.WithUploader(a.renderer),
		terrain.WithLogger(logger.Named("terrain")),
	)
	cam := camera.New(cameraHome, cfg.Controls.MoveSpeed, cfg.Controls.MouseSensitivity)
	a.viewer = viewer.New(t, cam, viewer.Options{
		Scale:      cfg.Terrain.Scale,
		ScaleSpeed: cfg.Controls.ScaleSpeed,
		YOffset:    cfg.Terrain.YOffset,
		Prompt:     prompt,
		Logger:     logger.Named("viewer"),
	})

	if err := a.viewer.Start(params); err != nil {
		a.Close()
		return nil, fmt.Errorf("initial parameters: %w", err)
	}

	a.resize(a.window.DrawableSize())
	a.window.SetTitle(a.viewer.Title())

	a.log.Info("viewer initialized")
	return a, nil
}

// Params returns the processing parameters applied last.
func (a *App) Params() command.Params {
	return a.viewer.Params()
}

// shaderSource picks the override directory when configured, otherwise the
// embedded sources.
func (a *App) shaderSource() (shader.Source, error) {
	if a.cfg.Shaders.Dir == "" {
		return shader.Source{
			Vertex:   shaders.TerrainVertexShader,
			Fragment: shaders.TerrainFragmentShader,
		}, nil
	}
	src, err := shader.LoadSource(a.cfg.Shaders.Dir)
	if err != nil {
		return shader.Source{}, fmt.Errorf("load shaders from %s: %w", a.cfg.Shaders.Dir, err)
	}
	return src, nil
}

// Run executes the frame loop until quit.
func (a *App) Run() error {
	a.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := lastTime

	a.log.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}

		for _, e := range a.input.Events() {
			if e.Type == input.EventWindowResize {
				a.resize(a.window.DrawableSize())
			}
		}

		a.reloadShaders()

		if err := a.update(now, dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		if !a.running {
			break
		}

		a.render()

		if a.pendingScreenshot() {
			a.captureScreenshot()
		}

		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dtMs", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (a *App) update(now time.Time, dt float32) error {
	a.commands = a.throttle.Filter(collectCommands(a.input, a.commands), now)

	for _, cmd := range a.commands {
		switch cmd {
		case command.Quit:
			a.running = false
			return nil
		case command.Screenshot:
			// Captured after render, see pendingScreenshot.
		default:
			if err := a.viewer.Dispatch(cmd); err != nil {
				if errors.Is(err, command.ErrNoInput) {
					a.log.Info("parameter input closed, quitting")
					a.running = false
					return nil
				}
				a.log.Warn("command failed", zap.Stringer("command", cmd), zap.Error(err))
			}
		}
	}

	// Retry uploads that failed in an earlier frame.
	if err := a.viewer.Terrain().Sync(); err != nil {
		a.log.Debug("upload still pending", zap.Error(err))
	}

	dragX, dragY := a.input.Drag()
	a.viewer.Update(dt,
		a.input.Axis(sdl.SCANCODE_UP, sdl.SCANCODE_DOWN),
		a.input.Axis(sdl.SCANCODE_RIGHT, sdl.SCANCODE_LEFT),
		a.input.Axis(sdl.SCANCODE_U, sdl.SCANCODE_J),
		dragX, dragY,
	)

	a.window.SetTitle(a.viewer.Title())
	return nil
}

func (a *App) render() {
	a.renderer.Begin()
	a.renderer.Draw(
		a.viewer.Target(),
		a.viewer.Primitive() == viewer.PrimitivePoints,
		a.viewer.Model(),
		a.viewer.Camera().ViewMatrix(),
		a.projection,
	)
}

func (a *App) pendingScreenshot() bool {
	for _, cmd := range a.commands {
		if cmd == command.Screenshot {
			return true
		}
	}
	return false
}

func (a *App) captureScreenshot() {
	pixels := debug.ReadFramebuffer(a.width, a.height)
	name, err := a.screenshot.CaptureFromPixels(pixels, a.width, a.height, a.viewer.Terrain().State().String())
	if err != nil {
		a.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("file", name))
}

func (a *App) reloadShaders() {
	if a.watcher == nil {
		return
	}
	select {
	case <-a.watcher.Changed():
	default:
		return
	}

	src, err := shader.LoadSource(a.cfg.Shaders.Dir)
	if err == nil {
		err = a.renderer.Reload(src)
	}
	if err != nil {
		a.log.Warn("shader reload failed, keeping previous program", zap.Error(err))
		return
	}
	a.log.Info("shaders reloaded", zap.String("dir", a.cfg.Shaders.Dir))
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.width, a.height = width, height
	a.renderer.Resize(width, height)
	g := a.cfg.Graphics
	a.projection = math.Perspective(math.Radians(g.FovY), float32(width)/float32(height), g.Near, g.Far)
}

// Close releases all resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
