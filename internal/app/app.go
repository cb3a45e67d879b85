package app

import (
	"fmt"
	"log/slog"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/game"
	"mini-voxel/internal/graphics/renderables/blocks"
	"mini-voxel/internal/graphics/renderables/crosshair"
	"mini-voxel/internal/graphics/renderables/hud"
	"mini-voxel/internal/graphics/renderables/selection"
	"mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/input"
	"mini-voxel/internal/logging"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
)

const (
	// slowFrame is the processing time above which a frame is logged.
	slowFrame = 50 * time.Millisecond
	// maxFrameDT caps the simulated step after a stall.
	maxFrameDT = 0.1
)

// App owns the window loop: input, simulation and rendering.
type App struct {
	window       *glfw.Window
	inputManager *input.InputManager
	session      *game.Session
	renderer     *renderer.Renderer
	fpsLimiter   *game.FPSLimiter
	log          *slog.Logger

	// paused releases the cursor and freezes the controls.
	paused   bool
	lastTime time.Time
}

// NewApp builds the renderer and the session. The window's GL context must
// be current.
func NewApp(window *glfw.Window, cfg config.Config, opts game.Options) (*App, error) {
	chunks := blocks.NewBlocks()
	fbW, fbH := window.GetFramebufferSize()
	rend, err := renderer.NewRenderer(fbW, fbH,
		chunks,
		selection.NewSelection(),
		crosshair.NewCrosshair(),
		hud.NewHUD(),
	)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	a := &App{
		window:       window,
		inputManager: input.NewInputManager(),
		session:      game.NewSession(cfg, chunks, opts),
		renderer:     rend,
		fpsLimiter:   game.NewFPSLimiter(cfg.Window.FPSLimit),
		log:          logging.OrDefault(opts.Logger),
		lastTime:     time.Now(),
	}
	SetupInputHandlers(a)
	a.capture(true)
	return a, nil
}

// Session returns the running game session.
func (a *App) Session() *game.Session {
	return a.session
}

func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

func (a *App) tick() {
	profiling.ResetFrame()
	start := time.Now()
	dt := min(start.Sub(a.lastTime).Seconds(), maxFrameDT)
	a.lastTime = start

	glfw.PollEvents()
	a.handleActions()

	var controls player.Controls
	if !a.paused {
		controls = a.inputManager.Controls()
	}
	a.session.Update(controls, dt)
	a.render(dt)
	a.window.SwapBuffers()

	if d := time.Since(start); d > slowFrame {
		a.log.Warn("slow frame",
			"duration", d,
			"renderer", profiling.SumWithPrefix("renderer."),
			"physics", profiling.SumWithPrefix("physics."),
			"top", profiling.TopN(5))
	}

	a.inputManager.PostUpdate()
	a.fpsLimiter.Wait()
}

func (a *App) render(dt float64) {
	a.renderer.Render(renderer.Frame{
		Player:         a.session.Player(),
		Inventory:      a.session.Inventory(),
		SpeedScale:     a.session.SpeedScale(),
		RenderDistance: a.session.Scheduler().RenderDistance(),
		DT:             dt,
	})
}

// handleActions applies the actions that are not player controls.
func (a *App) handleActions() {
	im := a.inputManager
	if im.JustPressed(input.ActionPause) {
		a.capture(a.paused)
	}
	if a.paused && im.JustPressed(input.ActionDig) {
		a.capture(true)
		// The click that recaptures the cursor does not dig.
		im.PostUpdate()
	}

	step := 0
	if im.JustPressed(input.ActionRenderDistanceUp) {
		step++
	}
	if im.JustPressed(input.ActionRenderDistanceDown) {
		step--
	}
	if step != 0 {
		rd := config.SetRenderDistance(config.GetRenderDistance() + step)
		a.log.Info("render distance changed", "chunks", rd)
	}
}

// capture grabs or releases the cursor; a released cursor pauses input.
func (a *App) capture(on bool) {
	a.paused = !on
	if on {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	} else {
		a.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	}
	a.inputManager.ResetCursor()
}

// RefreshRender repaints during a window resize.
func (a *App) RefreshRender() {
	a.render(0)
	a.window.SwapBuffers()
}

// Close releases GL resources and stops generation.
func (a *App) Close() {
	a.session.Close()
	a.renderer.Dispose()
}
