package player

import (
	"testing"

	"mini-voxel/internal/config"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cells is a sparse block reader; everything at or below floorY is stone.
type cells struct {
	floorY int
	blocks map[[3]int]world.BlockType
}

func (c cells) Get(x, y, z int) world.BlockType {
	if b, ok := c.blocks[[3]int{x, y, z}]; ok {
		return b
	}
	if y <= c.floorY {
		return world.BlockTypeStone
	}
	return world.BlockTypeAir
}

func newTestPlayer() *Player {
	return New(mgl32.Vec3{0.5, 11.5, 0.5}, config.Default().Player, 1.5)
}

func assertVec(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-5, "component %d of %v", i, got)
	}
}

func TestDefaultViewLooksNorth(t *testing.T) {
	p := newTestPlayer()
	assertVec(t, mgl32.Vec3{0, 0, -1}, p.Front())
	assertVec(t, mgl32.Vec3{1, 0, 0}, p.Right())
	assertVec(t, mgl32.Vec3{0.5, 10, 0.5}, p.FeetPosition())
}

func TestLookAppliesSensitivityAndClampsPitch(t *testing.T) {
	p := newTestPlayer()
	p.Look(100, 0)
	assert.InDelta(t, -70, p.Yaw, 1e-4)

	p.Look(0, -1000)
	assert.Equal(t, 89.0, p.Pitch)
	p.Look(0, 5000)
	assert.Equal(t, -89.0, p.Pitch)
	assert.InDelta(t, 1, p.Front().Len(), 1e-5)
}

func TestIntentFromControls(t *testing.T) {
	p := newTestPlayer()

	i := p.IntentFor(Controls{Forward: true, Right: true, Sprint: true})
	assertVec(t, mgl32.Vec3{1, 0, -1}, i.Move)
	assert.True(t, i.Sprint)

	i = p.IntentFor(Controls{Forward: true, Back: true, Jump: true, Sneak: true})
	assertVec(t, mgl32.Vec3{}, i.Move)
	assert.True(t, i.Jump)
	assert.True(t, i.Sneak)
}

func TestMoveWalksForward(t *testing.T) {
	p := newTestPlayer()
	r := physics.NewResolver(physics.DefaultSettings())
	blocks := cells{floorY: 9}

	for i := 0; i < 10; i++ {
		p.Move(r, Controls{Forward: true}, 0.05, blocks)
	}
	assert.Less(t, p.Body.Position.Z(), float32(0.5))
	assert.InDelta(t, 0.5, p.Body.Position.X(), 1e-4)
	assert.InDelta(t, 11.5, p.Body.Position.Y(), 1e-5)
	assert.NotZero(t, p.Intent().Move.Len())
}

func TestFOVFollowsSpeedScale(t *testing.T) {
	p := newTestPlayer()
	assert.InDelta(t, 80, p.FOV(80, 1), 1e-5)
	assert.InDelta(t, 84.8, p.FOV(80, 1.3), 1e-4)
	assert.InDelta(t, 72, p.FOV(80, 0.5), 1e-4)
}

func TestAimFindsFaceAhead(t *testing.T) {
	p := newTestPlayer()
	blocks := cells{floorY: 9, blocks: map[[3]int]world.BlockType{{0, 11, -3}: world.BlockTypeLog}}

	p.Aim(blocks)
	require.True(t, p.HasHover)
	assert.Equal(t, [3]int{0, 11, -3}, p.Hover.Block)
	assert.Equal(t, [3]int{0, 0, 1}, p.Hover.Normal)

	p.Look(900, 0) // half a turn
	p.Aim(blocks)
	assert.False(t, p.HasHover)
}

func TestDigTakesDigSeconds(t *testing.T) {
	p := newTestPlayer()
	p.HasHover = true
	p.Hover = physics.Hit{Block: [3]int{1, 9, 0}, Normal: [3]int{0, 1, 0}}

	for i := 0; i < 3; i++ {
		_, done := p.UpdateDig(0.25, true)
		require.False(t, done, "step %d", i)
	}
	assert.Equal(t, 8, p.DigStage())

	target, done := p.UpdateDig(0.25, true)
	assert.True(t, done)
	assert.Equal(t, [3]int{1, 9, 0}, target)
	assert.Zero(t, p.DigFraction())
}

func TestDigRestartsOnNewTarget(t *testing.T) {
	p := newTestPlayer()
	p.HasHover = true
	p.Hover = physics.Hit{Block: [3]int{1, 9, 0}}
	p.UpdateDig(0.5, true)
	p.UpdateDig(0.25, true)
	assert.InDelta(t, 0.75, p.DigFraction(), 1e-9)

	p.Hover = physics.Hit{Block: [3]int{2, 9, 0}}
	_, done := p.UpdateDig(0.5, true)
	assert.False(t, done)
	assert.InDelta(t, 0.5, p.DigFraction(), 1e-9)

	p.UpdateDig(0.1, false)
	assert.Zero(t, p.DigFraction())
}

func TestPlaceTarget(t *testing.T) {
	p := newTestPlayer()
	blocks := cells{floorY: 9, blocks: map[[3]int]world.BlockType{}}

	_, ok := p.PlaceTarget(blocks)
	assert.False(t, ok, "nothing hovered")

	// On the floor under the body: the body fills cells y=10 and y=11.
	p.HasHover = true
	p.Hover = physics.Hit{Block: [3]int{0, 9, 0}, Normal: [3]int{0, 1, 0}}
	_, ok = p.PlaceTarget(blocks)
	assert.False(t, ok)

	p.Hover = physics.Hit{Block: [3]int{2, 10, 0}, Normal: [3]int{-1, 0, 0}}
	cell, ok := p.PlaceTarget(blocks)
	assert.True(t, ok)
	assert.Equal(t, [3]int{1, 10, 0}, cell)

	blocks.blocks[[3]int{1, 10, 0}] = world.BlockTypeSand
	_, ok = p.PlaceTarget(blocks)
	assert.False(t, ok, "cell taken")

	p.Hover = physics.Hit{Block: [3]int{4, world.ChunkSizeY - 1, 4}, Normal: [3]int{0, 1, 0}}
	_, ok = p.PlaceTarget(blocks)
	assert.False(t, ok, "above the world")
}
