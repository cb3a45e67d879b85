package renderer

import (
	"fmt"

	"mini-voxel/internal/graphics"
	"mini-voxel/internal/graphics/scene"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const (
	// BaseFOV is the vertical field of view at walking speed, in degrees.
	BaseFOV = 70.0
	// fovSpeed is how fast the FOV follows its target, in degrees per second.
	fovSpeed = 100.0
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera

	currentFOV float32
}

// NewRenderer configures GL state and initializes the renderables in order.
func NewRenderer(width, height int, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	r := &Renderer{
		renderables: rs,
		camera:      graphics.NewCamera(width, height, BaseFOV),
		currentFOV:  BaseFOV,
	}

	for i, rd := range rs {
		if err := rd.Init(); err != nil {
			// Release what was already set up.
			for j := i - 1; j >= 0; j-- {
				rs[j].Dispose()
			}
			return nil, fmt.Errorf("init renderable %T: %w", rd, err)
		}
		rd.SetViewport(width, height)
	}
	return r, nil
}

// Render draws one frame.
func (r *Renderer) Render(f Frame) {
	defer profiling.Track("render.Frame")()

	gl.ClearColor(0.53, 0.81, 0.92, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// Sprinting widens the view; the FOV eases toward its target.
	target := f.Player.FOV(BaseFOV, f.SpeedScale)
	r.currentFOV = scene.Approach(r.currentFOV, target, float32(f.DT)*fovSpeed)
	r.camera.FOV = r.currentFOV

	ctx := RenderContext{
		Camera:         r.camera,
		Player:         f.Player,
		Inventory:      f.Inventory,
		RenderDistance: f.RenderDistance,
		DT:             f.DT,
		View:           f.Player.ViewMatrix(),
		Proj:           r.camera.GetProjectionMatrix(),
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}

// UpdateViewport updates the camera and every renderable after a resize.
func (r *Renderer) UpdateViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	r.camera.Resize(width, height)
	for _, rd := range r.renderables {
		rd.SetViewport(width, height)
	}
}
