package hud

import (
	"fmt"
	"strconv"
	"time"

	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/graphics/scene"
	"mini-voxel/internal/inventory"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const quadVertShader = `#version 410 core
layout (location = 0) in vec2 aPos;
void main() {
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`

const quadFragShader = `#version 410 core
uniform vec4 color;
out vec4 FragColor;
void main() {
	FragColor = color;
}
`

var (
	textColor     = mgl32.Vec3{1, 1, 1}
	barColor      = mgl32.Vec4{0.1, 0.1, 0.1, 0.6}
	selectorColor = mgl32.Vec4{1, 1, 1, 0.8}
)

// HUD draws the coordinate and status labels and the hotbar.
type HUD struct {
	font       *graphics.FontRenderer
	quadShader *graphics.Shader
	vao, vbo   uint32

	width, height int

	// FPS tracking
	frames       int
	lastFPSCheck time.Time
	currentFPS   int
}

func NewHUD() *HUD {
	return &HUD{width: 1, height: 1}
}

func (h *HUD) Init() error {
	font, err := graphics.NewFontRenderer(scene.NewFontAtlas(), h.width, h.height)
	if err != nil {
		return fmt.Errorf("hud font: %w", err)
	}
	h.font = font

	h.quadShader, err = graphics.NewShader(quadVertShader, quadFragShader)
	if err != nil {
		return fmt.Errorf("hud quad shader: %w", err)
	}
	gl.GenVertexArrays(1, &h.vao)
	gl.GenBuffers(1, &h.vbo)
	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 6*2*4, nil, gl.DYNAMIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, 2*4, 0)
	gl.BindVertexArray(0)
	h.lastFPSCheck = time.Now()
	return nil
}

func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.font != nil {
		h.font.SetViewport(width, height)
	}
}

func (h *HUD) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderHUD")()

	h.frames++
	if time.Since(h.lastFPSCheck) >= time.Second {
		h.currentFPS = h.frames
		h.frames = 0
		h.lastFPSCheck = time.Now()
	}

	const scale = 2
	step := h.font.LineHeight() * scale
	h.font.RenderLines([]string{
		scene.CoordinateLabel(ctx.Player.FeetPosition()),
		scene.RenderDistanceLabel(ctx.RenderDistance),
		"FPS: " + strconv.Itoa(h.currentFPS),
	}, 10, 10+step, step, scale, textColor)

	if ctx.Inventory != nil {
		h.renderHotbar(ctx.Inventory, ctx.Camera.AspectRatio)
	}
}

func (h *HUD) renderHotbar(inv *inventory.Inventory, aspect float32) {
	bar, selector := scene.HotbarLayout(inv.Selected, inventory.HotbarSize, aspect)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	h.quadShader.Use()
	h.drawRect(bar, barColor)
	h.drawRect(selector, selectorColor)
	gl.Disable(gl.BLEND)
	gl.Enable(gl.CULL_FACE)
	gl.Enable(gl.DEPTH_TEST)

	for i, st := range inv.Slots {
		if st == nil {
			continue
		}
		x, y := scene.ToPixels(scene.HotbarSlotX(i, inventory.HotbarSize), scene.HotbarY, h.width, h.height)
		label := strconv.Itoa(st.Count)
		w, _ := h.font.Measure(label, 1)
		h.font.Render(label, x-w/2, y+h.font.LineHeight()/2, 1, textColor)
	}

	if cur := inv.Current(); cur != nil {
		label := fmt.Sprintf("%s x%d", cur.Type, cur.Count)
		w, _ := h.font.Measure(label, 2)
		_, top := scene.ToPixels(0, bar.Y1, h.width, h.height)
		h.font.Render(label, float32(h.width)/2-w/2, top-8, 2, textColor)
	}
}

func (h *HUD) drawRect(r scene.Rect, color mgl32.Vec4) {
	verts := []float32{
		r.X0, r.Y0, r.X1, r.Y0, r.X1, r.Y1,
		r.X0, r.Y0, r.X1, r.Y1, r.X0, r.Y1,
	}
	h.quadShader.SetVector4("color", color)
	gl.BindVertexArray(h.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.vbo)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(verts))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindVertexArray(0)
}

func (h *HUD) Dispose() {
	if h.font != nil {
		h.font.Dispose()
	}
	if h.vao != 0 {
		gl.DeleteVertexArrays(1, &h.vao)
	}
	if h.vbo != 0 {
		gl.DeleteBuffers(1, &h.vbo)
	}
	if h.quadShader != nil {
		h.quadShader.Delete()
	}
}
