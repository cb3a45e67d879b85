package input

import (
	"sync"

	"mini-voxel/internal/player"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical game action, not a physical key
type Action int

// Action constants using iota
const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionJump
	ActionSprint
	ActionSneak
	ActionPause
	ActionHotbar1
	ActionHotbar2
	ActionHotbar3
	ActionHotbar4
	ActionHotbar5
	ActionHotbar6
	ActionHotbar7
	ActionHotbar8
	ActionHotbar9
	ActionRenderDistanceUp
	ActionRenderDistanceDown
	ActionDig
	ActionPlace
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and buttons to logical actions and
// accumulates cursor and scroll movement between frames. GLFW callbacks feed
// it; the frame loop reads it and calls PostUpdate.
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool

	// Cursor tracking; the first sample only sets the reference point.
	haveCursor     bool
	cursorX        float64
	cursorY        float64
	deltaX, deltaY float64
	scroll         float64
}

// NewInputManager creates a new InputManager with default key bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeySpace, ActionJump)
	im.BindKey(glfw.KeyLeftControl, ActionSprint)
	im.BindKey(glfw.KeyLeftShift, ActionSneak)
	im.BindKey(glfw.KeyEscape, ActionPause)
	im.BindKey(glfw.Key1, ActionHotbar1)
	im.BindKey(glfw.Key2, ActionHotbar2)
	im.BindKey(glfw.Key3, ActionHotbar3)
	im.BindKey(glfw.Key4, ActionHotbar4)
	im.BindKey(glfw.Key5, ActionHotbar5)
	im.BindKey(glfw.Key6, ActionHotbar6)
	im.BindKey(glfw.Key7, ActionHotbar7)
	im.BindKey(glfw.Key8, ActionHotbar8)
	im.BindKey(glfw.Key9, ActionHotbar9)
	im.BindKey(glfw.KeyRightBracket, ActionRenderDistanceUp)
	im.BindKey(glfw.KeyLeftBracket, ActionRenderDistanceDown)

	im.BindMouseButton(glfw.MouseButtonLeft, ActionDig)
	im.BindMouseButton(glfw.MouseButtonRight, ActionPlace)

	return im
}

// BindKey binds a physical key to a logical action
// Multiple keys can be bound to the same action (e.g., WASD and arrow keys)
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	im.keyToActions[key] = append(im.keyToActions[key], action)
}

// BindMouseButton binds a mouse button to a logical action
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}
	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.keyToActions[key]
	im.mu.RUnlock()
	if !exists {
		return
	}
	im.apply(actions, action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent processes a mouse button event and updates internal state
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.RLock()
	actions, exists := im.mouseButtonToActions[button]
	im.mu.RUnlock()
	if !exists {
		return
	}
	im.apply(actions, action == glfw.Press)
}

func (im *InputManager) apply(actions []Action, isPressed bool) {
	im.mu.Lock()
	defer im.mu.Unlock()
	for _, act := range actions {
		// Detect edges immediately when event arrives
		if isPressed && !im.currentState[act] {
			im.justPressed[act] = true
		}
		if !isPressed && im.currentState[act] {
			im.justReleased[act] = true
		}
		im.currentState[act] = isPressed
	}
}

// HandleCursorPos accumulates cursor movement since the previous frame.
func (im *InputManager) HandleCursorPos(x, y float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if im.haveCursor {
		im.deltaX += x - im.cursorX
		im.deltaY += y - im.cursorY
	}
	im.cursorX, im.cursorY = x, y
	im.haveCursor = true
}

// ResetCursor forgets the reference point, e.g. after the cursor is recaptured.
func (im *InputManager) ResetCursor() {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.haveCursor = false
	im.deltaX, im.deltaY = 0, 0
}

// HandleScroll accumulates wheel movement.
func (im *InputManager) HandleScroll(yoff float64) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.scroll += yoff
}

// Controls assembles this frame's player controls. Scrolling the wheel up
// moves the hotbar selection left.
func (im *InputManager) Controls() player.Controls {
	im.mu.RLock()
	defer im.mu.RUnlock()

	c := player.Controls{
		Forward: im.currentState[ActionMoveForward],
		Back:    im.currentState[ActionMoveBackward],
		Left:    im.currentState[ActionMoveLeft],
		Right:   im.currentState[ActionMoveRight],
		Jump:    im.currentState[ActionJump],
		Sneak:   im.currentState[ActionSneak],
		Sprint:  im.currentState[ActionSprint],
		LookX:   im.deltaX,
		LookY:   im.deltaY,
		Dig:     im.currentState[ActionDig],
		Place:   im.justPressed[ActionPlace],
		Scroll:  -int(im.scroll),
	}
	for i := ActionHotbar1; i <= ActionHotbar9; i++ {
		if im.justPressed[i] {
			c.Hotbar = int(i-ActionHotbar1) + 1
		}
	}
	return c
}

// PostUpdate must be called at the end of each frame. It clears edge flags
// and the accumulated cursor and scroll movement.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
	im.deltaX, im.deltaY = 0, 0
	// Keep the fractional part of trackpad scrolling.
	im.scroll -= float64(int(im.scroll))
}

// IsActive returns true if the action is currently being held down
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justPressed[action]
}

// JustReleased returns true only if the action was released in the current frame
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.justReleased[action]
}
