package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestCoordinateLabelFloors(t *testing.T) {
	assert.Equal(t, "X:3 Y:64 Z:-1", CoordinateLabel(mgl32.Vec3{3.9, 64.2, -0.1}))
	assert.Equal(t, "X:-2 Y:0 Z:0", CoordinateLabel(mgl32.Vec3{-1.5, 0, 0}))
	assert.Equal(t, "Render distance: 8", RenderDistanceLabel(8))
}

func TestHotbarSlotX(t *testing.T) {
	assert.Zero(t, HotbarSlotX(4, 9))
	step := float32(0.3 / 182.0 * 20)
	assert.InDelta(t, -4*step, HotbarSlotX(0, 9), 1e-6)
	assert.InDelta(t, 4*step, HotbarSlotX(8, 9), 1e-6)
}

func TestApproach(t *testing.T) {
	assert.Equal(t, float32(72), Approach(70, 80, 2))
	assert.Equal(t, float32(80), Approach(79, 80, 2))
	assert.Equal(t, float32(78), Approach(80, 70, 2))
	assert.Equal(t, float32(70), Approach(71, 70, 2))
	assert.Equal(t, float32(70), Approach(70, 70, 2))
}

func TestHotbarLayout(t *testing.T) {
	bar, sel := HotbarLayout(0, 9, 1)
	assert.InDelta(t, -0.15, bar.X0, 1e-6)
	assert.InDelta(t, 0.15, bar.X1, 1e-6)
	_, by := bar.Center()
	assert.InDelta(t, HotbarY, by, 1e-6)

	sx, sy := sel.Center()
	assert.InDelta(t, HotbarSlotX(0, 9), sx, 1e-6)
	assert.InDelta(t, HotbarY, sy, 1e-6)
	// The selector is 24 of the bar's 182 units wide.
	assert.InDelta(t, 0.3*24/182.0, sel.X1-sel.X0, 1e-6)

	// A wider screen makes the bar taller in NDC.
	wide, _ := HotbarLayout(0, 9, 2)
	assert.InDelta(t, 2*(bar.Y1-bar.Y0), wide.Y1-wide.Y0, 1e-6)
}

func TestToPixels(t *testing.T) {
	x, y := ToPixels(-1, 1, 800, 600)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)
	x, y = ToPixels(0, -0.5, 800, 600)
	assert.Equal(t, float32(400), x)
	assert.Equal(t, float32(450), y)
}
