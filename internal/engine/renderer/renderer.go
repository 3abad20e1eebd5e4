// Package renderer draws terrain meshes with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/terrainview/internal/engine/shader"
	"github.com/Faultbox/terrainview/internal/logger"
	"github.com/Faultbox/terrainview/internal/terrain"
	"github.com/Faultbox/terrainview/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	ClearColor  [3]float32
	PointSize   float32
	HeightScale float32
}

// meshBuffers is one VAO/VBO/EBO set.
type meshBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer owns the terrain program and one buffer set per terrain.Target.
// It implements terrain.Uploader.
type Renderer struct {
	config  Config
	program uint32
	buffers [2]meshBuffers
	log     *zap.Logger

	locModel       int32
	locView        int32
	locProjection  int32
	locHeightScale int32
	locPointSize   int32
}

var _ terrain.Uploader = (*Renderer)(nil)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, src shader.Source) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], 1.0)

	if err := r.Reload(src); err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	for i := range r.buffers {
		b := &r.buffers[i]
		gl.GenVertexArrays(1, &b.vao)
		gl.GenBuffers(1, &b.vbo)
		gl.GenBuffers(1, &b.ebo)

		gl.BindVertexArray(b.vao)
		gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
		gl.EnableVertexAttribArray(0)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
		gl.BindVertexArray(0)
	}

	return r, nil
}

// Reload compiles src and swaps it in. On failure the previous program stays active.
func (r *Renderer) Reload(src shader.Source) error {
	program, err := shader.Compile(src)
	if err != nil {
		return err
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}

	r.program = program
	r.locModel = shader.GetUniform(program, "model")
	r.locView = shader.GetUniform(program, "view")
	r.locProjection = shader.GetUniform(program, "projection")
	r.locHeightScale = shader.GetUniform(program, "heightScale")
	r.locPointSize = shader.GetUniform(program, "pointSize")

	r.log.Debug("shader program ready", zap.Uint32("program", program))
	return nil
}

// Upload replaces the buffer contents for target with m.
func (r *Renderer) Upload(target terrain.Target, m *terrain.Mesh) error {
	if target != terrain.TargetOriginal && target != terrain.TargetCurrent {
		return fmt.Errorf("unknown upload target %d", target)
	}
	b := &r.buffers[target]

	// Drain stale errors so the check below only sees this upload.
	for gl.GetError() != gl.NO_ERROR {
	}

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, ptr(m.Vertices), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, ptrU32(m.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		b.indexCount = 0
		return fmt.Errorf("upload %s mesh %dx%d: GL error 0x%x", target, m.Width, m.Height, code)
	}

	b.indexCount = int32(len(m.Indices))
	r.log.Debug("mesh uploaded",
		zap.Stringer("target", target),
		zap.Int("width", m.Width),
		zap.Int("height", m.Height),
		zap.Int32("indices", b.indexCount),
	)
	return nil
}

// Resize updates the viewport to the drawable size.
func (r *Renderer) Resize(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Draw renders the mesh held for target as a triangle strip, or as points.
func (r *Renderer) Draw(target terrain.Target, points bool, model, view, projection math.Mat4) {
	b := &r.buffers[target]
	if b.indexCount == 0 {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.locModel, 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.locView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.locProjection, 1, false, projection.Ptr())
	gl.Uniform1f(r.locHeightScale, r.config.HeightScale)
	gl.Uniform1f(r.locPointSize, r.config.PointSize)

	gl.BindVertexArray(b.vao)
	gl.DrawElements(glMode(points), b.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for i := range r.buffers {
		b := &r.buffers[i]
		gl.DeleteBuffers(1, &b.ebo)
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteVertexArrays(1, &b.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func glMode(points bool) uint32 {
	if points {
		return gl.POINTS
	}
	return gl.TRIANGLE_STRIP
}

func ptr(v []float32) unsafe.Pointer {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Pointer(&v[0])
}

func ptrU32(v []uint32) unsafe.Pointer {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Pointer(&v[0])
}
