// Package viewer holds the interactive state of the terrain viewer and applies
// commands to it. It has no window or GL dependencies.
package viewer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/command"
	"github.com/Faultbox/terrainview/internal/engine/camera"
	"github.com/Faultbox/terrainview/internal/terrain"
	"github.com/Faultbox/terrainview/pkg/math"
)

// MinScale keeps the model from collapsing or flipping when shrunk with J.
const MinScale float32 = 0.001

// Primitive selects how the terrain index buffer is drawn.
type Primitive int

const (
	PrimitiveStrip Primitive = iota
	PrimitivePoints
)

func (p Primitive) String() string {
	if p == PrimitivePoints {
		return "points"
	}
	return "strip"
}

// PromptFunc asks the user for new processing parameters.
type PromptFunc func() (command.Params, error)

// Options configures a Viewer.
type Options struct {
	Scale      float32 // initial model scale
	ScaleSpeed float32 // scale change per second while U/J is held
	YOffset    float32 // model translation on Y
	Prompt     PromptFunc
	Logger     *zap.Logger
}

// Viewer is the application state driven by the frame loop.
type Viewer struct {
	terrain *terrain.Terrain
	camera  *camera.FlyCamera
	prompt  PromptFunc
	log     *zap.Logger

	params       command.Params
	primitive    Primitive
	showOriginal bool
	scale        float32
	scaleSpeed   float32
	yOffset      float32
}

// New creates a viewer around an already built terrain.
func New(t *terrain.Terrain, cam *camera.FlyCamera, opts Options) *Viewer {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Viewer{
		terrain:    t,
		camera:     cam,
		prompt:     opts.Prompt,
		log:        log,
		scale:      opts.Scale,
		scaleSpeed: opts.ScaleSpeed,
		yOffset:    opts.YOffset,
	}
}

// Apply validates p, rebuilds the reduced mesh and resets the camera.
// On error nothing changes.
func (v *Viewer) Apply(p command.Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if err := v.terrain.ApplyReduction(p.SkipSize); err != nil {
		return err
	}
	v.params = p
	v.camera.Reset()
	v.log.Info("parameters applied",
		zap.Int("skip", p.SkipSize),
		zap.Float32("step", p.StepSize),
		zap.Int("width", v.terrain.Current().Width),
		zap.Int("height", v.terrain.Current().Height),
	)
	return nil
}

// Start applies the initial parameters. Unset parameters, or ones this
// heightmap rejects, fall back to the prompt.
func (v *Viewer) Start(p command.Params) error {
	if p == (command.Params{}) {
		return v.Reset()
	}
	err := v.Apply(p)
	if err == nil || !isParamError(err) {
		return err
	}
	v.log.Warn("configured parameters rejected, asking instead",
		zap.Int("skip", p.SkipSize),
		zap.Float32("step", p.StepSize),
		zap.Error(err),
	)
	return v.Reset()
}

func isParamError(err error) bool {
	return errors.Is(err, terrain.ErrSkipSizeOutOfRange) ||
		errors.Is(err, terrain.ErrSkipSizeTooLarge) ||
		errors.Is(err, terrain.ErrStepSizeOutOfRange)
}

// Reset prompts for parameters until a set applies cleanly. A skip size that
// is in range but too coarse for this heightmap is reported and asked again.
func (v *Viewer) Reset() error {
	if v.prompt == nil {
		return errors.New("no parameter prompt configured")
	}
	for {
		p, err := v.prompt()
		if err != nil {
			return fmt.Errorf("read parameters: %w", err)
		}
		err = v.Apply(p)
		if err == nil {
			return nil
		}
		if !errors.Is(err, terrain.ErrSkipSizeTooLarge) {
			return err
		}
		v.log.Warn("skip size too large for heightmap, asking again", zap.Int("skip", p.SkipSize), zap.Error(err))
	}
}

// Dispatch applies a terrain or view command. Quit and Screenshot belong to
// the frame loop and are ignored here.
func (v *Viewer) Dispatch(cmd command.Command) error {
	switch cmd {
	case command.Reset:
		return v.Reset()
	case command.Advance:
		changed, err := v.terrain.Advance(v.params.StepSize)
		if err != nil {
			return fmt.Errorf("advance from %s: %w", v.terrain.State(), err)
		}
		if changed {
			v.log.Info("terrain advanced", zap.Stringer("state", v.terrain.State()))
		}
	case command.ToggleOriginal:
		v.showOriginal = !v.showOriginal
	case command.DrawStrip:
		v.primitive = PrimitiveStrip
	case command.DrawPoints:
		v.primitive = PrimitivePoints
	}
	return nil
}

// Update applies continuous input for a frame of dt seconds. move holds the
// forward and right axes, grow the U/J axis, drag the mouse delta in pixels.
func (v *Viewer) Update(dt, forward, right, grow, dragX, dragY float32) {
	if forward != 0 || right != 0 {
		v.camera.Move(forward, right, dt)
	}
	if dragX != 0 || dragY != 0 {
		v.camera.HandleDrag(dragX, dragY)
	}
	if grow != 0 {
		v.scale = max(MinScale, v.scale+grow*v.scaleSpeed*dt)
	}
}

// Target returns the buffer set to draw.
func (v *Viewer) Target() terrain.Target {
	if v.showOriginal {
		return terrain.TargetOriginal
	}
	return terrain.TargetCurrent
}

// Primitive returns the active draw primitive.
func (v *Viewer) Primitive() Primitive {
	return v.primitive
}

// Params returns the parameters applied last.
func (v *Viewer) Params() command.Params {
	return v.params
}

// Scale returns the current model scale.
func (v *Viewer) Scale() float32 {
	return v.scale
}

// Camera returns the viewer camera.
func (v *Viewer) Camera() *camera.FlyCamera {
	return v.camera
}

// Terrain returns the terrain being viewed.
func (v *Viewer) Terrain() *terrain.Terrain {
	return v.terrain
}

// Model centers the grid on the origin, using the original dimensions so
// reduced and smoothed meshes line up with it, then scales it.
func (v *Viewer) Model() math.Mat4 {
	st := v.terrain.Stats()
	center := math.Translate(-float32(st.OriginalWidth)/2, v.yOffset, -float32(st.OriginalHeight)/2)
	return math.Scale(v.scale, v.scale, v.scale).Mul(center)
}

// Title describes what is on screen for the window title bar.
func (v *Viewer) Title() string {
	st := v.terrain.Stats()
	shown := fmt.Sprintf("%s %dx%d", st.State, st.Width, st.Height)
	vertices := st.VertexCount
	if v.showOriginal {
		shown = fmt.Sprintf("original %dx%d", st.OriginalWidth, st.OriginalHeight)
		vertices = st.OriginalWidth * st.OriginalHeight
	}
	title := fmt.Sprintf("Terrain Viewer | %s | %d vertices | %s | skip %d step %g",
		shown, vertices, v.primitive, v.params.SkipSize, v.params.StepSize)
	if v.terrain.Pending(v.Target()) {
		title += " | upload pending"
	}
	return title
}
