package renderer

import (
	"mini-voxel/internal/graphics"
	"mini-voxel/internal/inventory"
	"mini-voxel/internal/player"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera    *graphics.Camera
	Player    *player.Player
	Inventory *inventory.Inventory
	// RenderDistance is the current radius in chunks, for the HUD.
	RenderDistance int
	DT             float64
	View           mgl32.Mat4
	Proj           mgl32.Mat4
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}

// Frame is the per-frame input of the renderer.
type Frame struct {
	Player         *player.Player
	Inventory      *inventory.Inventory
	SpeedScale     float32
	RenderDistance int
	DT             float64
}
