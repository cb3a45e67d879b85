package selection

import (
	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/graphics/scene"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const vertShader = `#version 410 core
layout (location = 0) in vec3 aPos;
uniform mat4 proj;
uniform mat4 view;
uniform mat4 model;
void main() {
	gl_Position = proj * view * model * vec4(aPos, 1.0);
}
`

const fragShader = `#version 410 core
uniform vec3 color;
out vec4 FragColor;
void main() {
	FragColor = vec4(color, 1.0);
}
`

// cubeEdges are the twelve edges of a unit cube centred at the origin.
var cubeEdges = []float32{
	-0.5, -0.5, 0.5, 0.5, -0.5, 0.5,
	0.5, -0.5, 0.5, 0.5, 0.5, 0.5,
	0.5, 0.5, 0.5, -0.5, 0.5, 0.5,
	-0.5, 0.5, 0.5, -0.5, -0.5, 0.5,

	-0.5, -0.5, -0.5, 0.5, -0.5, -0.5,
	0.5, -0.5, -0.5, 0.5, 0.5, -0.5,
	0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	-0.5, 0.5, -0.5, -0.5, -0.5, -0.5,

	-0.5, -0.5, 0.5, -0.5, -0.5, -0.5,
	0.5, -0.5, 0.5, 0.5, -0.5, -0.5,
	0.5, 0.5, 0.5, 0.5, 0.5, -0.5,
	-0.5, 0.5, 0.5, -0.5, 0.5, -0.5,
}

// Selection outlines the block the player is aiming at. The outline
// reddens while the block is being dug.
type Selection struct {
	shader *graphics.Shader
	vao    uint32
	vbo    uint32
	item   scene.RenderItem
}

func NewSelection() *Selection {
	return &Selection{item: scene.RenderItem{Kind: scene.KindSelection}}
}

func (s *Selection) Init() error {
	var err error
	s.shader, err = graphics.NewShader(vertShader, fragShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeEdges)*4, gl.Ptr(cubeEdges), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.BindVertexArray(0)
	return nil
}

func (s *Selection) Render(ctx renderer.RenderContext) {
	p := ctx.Player
	s.item.Set(scene.Visible, p.HasHover)
	if !s.item.Has(scene.Visible) {
		return
	}
	defer profiling.Track("renderer.renderSelection")()

	s.item.Model = scene.SelectionModel(p.Hover.Block)
	tint := scene.DigTint(p.DigFraction())

	s.shader.Use()
	s.shader.SetMatrix4("proj", &ctx.Proj[0])
	s.shader.SetMatrix4("view", &ctx.View[0])
	s.shader.SetMatrix4("model", &s.item.Model[0])
	s.shader.SetVector3("color", tint.X(), tint.Y(), tint.Z())

	gl.BindVertexArray(s.vao)
	gl.LineWidth(2.0)
	gl.DrawArrays(gl.LINES, 0, int32(len(cubeEdges)/3))
	gl.BindVertexArray(0)
}

func (s *Selection) SetViewport(width, height int) {}

func (s *Selection) Dispose() {
	if s.vao != 0 {
		gl.DeleteVertexArrays(1, &s.vao)
	}
	if s.vbo != 0 {
		gl.DeleteBuffers(1, &s.vbo)
	}
	if s.shader != nil {
		s.shader.Delete()
	}
}
