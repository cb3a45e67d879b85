package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Hotbar geometry in normalized device coordinates: the bar is 182 units of
// a 0.3-wide texture, each slot 20 units apart.
const (
	HotbarWidth   = 0.3
	HotbarY       = -0.9
	hotbarUnits   = 182.0
	hotbarSlotGap = 20.0
)

// CoordinateLabel formats the observer's feet cell for the HUD.
func CoordinateLabel(feet mgl32.Vec3) string {
	return fmt.Sprintf("X:%d Y:%d Z:%d",
		int(math.Floor(float64(feet.X()))),
		int(math.Floor(float64(feet.Y()))),
		int(math.Floor(float64(feet.Z()))))
}

// RenderDistanceLabel formats the current render distance.
func RenderDistanceLabel(chunks int) string {
	return fmt.Sprintf("Render distance: %d", chunks)
}

// HotbarSlotX returns the NDC x centre of hotbar slot i of n; the middle slot is at 0.
func HotbarSlotX(i, n int) float32 {
	return float32(HotbarWidth/hotbarUnits*hotbarSlotGap) * float32(i-n/2)
}

// Approach moves current toward target by at most step.
func Approach(current, target, step float32) float32 {
	switch {
	case current < target:
		return min(current+step, target)
	case current > target:
		return max(current-step, target)
	}
	return current
}

// Rect is an axis-aligned rectangle in normalized device coordinates.
type Rect struct {
	X0, Y0, X1, Y1 float32
}

// Center returns the midpoint of r.
func (r Rect) Center() (float32, float32) {
	return (r.X0 + r.X1) / 2, (r.Y0 + r.Y1) / 2
}

// ToPixels maps an NDC point to viewport pixels with the origin at the top-left.
func ToPixels(x, y float32, width, height int) (float32, float32) {
	return (x + 1) / 2 * float32(width), (1 - y) / 2 * float32(height)
}

// HotbarLayout returns the bar and the selector around slot selected of n.
// aspect is width/height and keeps the bar's proportions on screen.
func HotbarLayout(selected, n int, aspect float32) (bar, selector Rect) {
	unit := float32(HotbarWidth / hotbarUnits)
	barH := 22 * unit * aspect
	bar = Rect{-HotbarWidth / 2, HotbarY - barH/2, HotbarWidth / 2, HotbarY + barH/2}

	cx := HotbarSlotX(selected, n)
	half := 12 * unit
	selector = Rect{cx - half, HotbarY - half*aspect, cx + half, HotbarY + half*aspect}
	return bar, selector
}
