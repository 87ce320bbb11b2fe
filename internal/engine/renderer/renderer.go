// Package renderer draws the debug view: ground grid, static colliders,
// the player hitbox and the interaction ray.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/spaces/internal/engine/debug"
	"github.com/Faultbox/spaces/internal/engine/shader"
	"github.com/Faultbox/spaces/internal/logger"
	"github.com/Faultbox/spaces/pkg/math"
)

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uView;
uniform mat4 uProjection;

void main() {
	gl_Position = uProjection * uView * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`

// Colors used by the debug view.
var (
	GridColor   = math.Vec3{X: 0.3, Y: 0.3, Z: 0.35}
	BoxColor    = math.Vec3{X: 0.9, Y: 0.6, Z: 0.2}
	HitboxColor = math.Vec3{X: 0.2, Y: 0.9, Z: 0.3}
	RayColor    = math.Vec3{X: 0.9, Y: 0.2, Z: 0.2}
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program

	// Streaming line buffer
	lineVAO uint32
	lineVBO uint32
	vboSize int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}

	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)
	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("line renderer created",
		zap.Uint32("program", r.program.ID),
		zap.Uint32("vao", r.lineVAO),
	)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin clears the frame and loads the camera matrices.
func (r *Renderer) Begin(view, projection math.Mat4) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.SetMat4("uView", view)
	r.program.SetMat4("uProjection", projection)
}

// DrawLines draws verts as GL_LINES in a single color.
func (r *Renderer) DrawLines(verts []float32, color math.Vec3) {
	if len(verts) < 6 {
		return
	}
	r.program.SetVec3("uColor", color)

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)
	size := len(verts) * 4
	if size > r.vboSize {
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		r.vboSize = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&verts[0]))
	}
	gl.DrawArrays(gl.LINES, 0, debug.VertexCount(verts))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.UseProgram(0)
}
