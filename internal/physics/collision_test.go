package physics_test

import (
	"testing"

	"mini-voxel/internal/physics"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

// A stone layer at y=9 puts the walkable surface at y=10, so a standing eye
// sits at 11.5.
const standingEye = 11.5

func newResolver() *physics.Resolver {
	return physics.NewResolver(physics.DefaultSettings())
}

func TestFallingBodySettlesOnFloor(t *testing.T) {
	g := grid{}.floor(9, -3, 3, -3, 3)
	body := &physics.Body{
		Position: mgl32.Vec3{0.5, 11.7, 0.5},
		Velocity: mgl32.Vec3{0, -5, 0},
	}

	newResolver().Step(body, physics.Intent{}, 0.1, g)

	assert.InDelta(t, standingEye, body.Position.Y(), 1e-5)
	assert.Equal(t, float32(0), body.Velocity.Y())
	assert.True(t, body.OnGround())
}

func TestRestingBodyStaysPut(t *testing.T) {
	g := grid{}.floor(9, -3, 3, -3, 3)
	body := &physics.Body{Position: mgl32.Vec3{0.5, standingEye, 0.5}}
	r := newResolver()

	for i := 0; i < 120; i++ {
		r.Step(body, physics.Intent{}, 1.0/60, g)
	}
	assert.InDelta(t, standingEye, body.Position.Y(), 1e-5)
	assert.True(t, body.OnGround())
}

func TestJumpRisesAndLands(t *testing.T) {
	g := grid{}.floor(9, -3, 3, -3, 3)
	body := &physics.Body{Position: mgl32.Vec3{0.5, standingEye, 0.5}}
	r := newResolver()

	r.Step(body, physics.Intent{Jump: true}, 1.0/60, g)
	assert.Greater(t, body.Position.Y(), float32(standingEye))
	assert.Greater(t, body.Velocity.Y(), float32(0))

	for i := 0; i < 120; i++ {
		r.Step(body, physics.Intent{}, 1.0/60, g)
	}
	assert.InDelta(t, standingEye, body.Position.Y(), 1e-4)
	assert.True(t, body.OnGround())
}

func TestNoJumpWhileFalling(t *testing.T) {
	body := &physics.Body{Position: mgl32.Vec3{0.5, 50, 0.5}, Velocity: mgl32.Vec3{0, -3, 0}}
	newResolver().Step(body, physics.Intent{Jump: true}, 0.1, grid{})
	assert.InDelta(t, -3-25*0.1, body.Velocity.Y(), 1e-5)
}

func TestCeilingStopsJump(t *testing.T) {
	g := grid{}.floor(9, -3, 3, -3, 3).set(0, 12, 0, world.BlockTypeStone)
	body := &physics.Body{Position: mgl32.Vec3{0.5, standingEye, 0.5}}

	newResolver().Step(body, physics.Intent{Jump: true}, 0.1, g)

	assert.InDelta(t, 11.9, body.Position.Y(), 1e-5)
	assert.InDelta(t, -0.01, body.Velocity.Y(), 1e-6)
}

func TestWallClampsHorizontalMovement(t *testing.T) {
	g := grid{}.floor(9, -3, 3, -3, 3).set(2, 10, 0, world.BlockTypeStone).set(2, 11, 0, world.BlockTypeStone)
	body := &physics.Body{
		Position: mgl32.Vec3{1.5, standingEye, 0.5},
		Velocity: mgl32.Vec3{20, 0, 5},
	}

	newResolver().Step(body, physics.Intent{}, 0.1, g)

	assert.InDelta(t, 1.9, body.Position.X(), 1e-5)
	assert.Equal(t, float32(0), body.Velocity.X())
	// The Z axis is resolved on its own and keeps moving.
	assert.Greater(t, body.Position.Z(), float32(0.5))
	assert.NotZero(t, body.Velocity.Z())
	assert.InDelta(t, standingEye, body.Position.Y(), 1e-5)
}

func TestSneakStopsAtLedge(t *testing.T) {
	// Floor only up to x=1; x=2 is a drop.
	g := grid{}.floor(9, -3, 1, -3, 3)
	r := newResolver()

	sneaking := &physics.Body{Position: mgl32.Vec3{1.5, standingEye, 0.5}, Velocity: mgl32.Vec3{10, 0, 0}}
	r.Step(sneaking, physics.Intent{Sneak: true}, 0.1, g)
	assert.InDelta(t, 1.9, sneaking.Position.X(), 1e-5)
	assert.InDelta(t, standingEye, sneaking.Position.Y(), 1e-5)

	walking := &physics.Body{Position: mgl32.Vec3{1.5, standingEye, 0.5}, Velocity: mgl32.Vec3{10, 0, 0}}
	r.Step(walking, physics.Intent{}, 0.1, g)
	assert.Greater(t, walking.Position.X(), float32(2))
	// Past the edge nothing holds the body up.
	assert.Less(t, walking.Position.Y(), float32(standingEye))
}

func TestDragIsFrameRateIndependent(t *testing.T) {
	s := physics.DefaultSettings()
	s.Gravity = 0
	r := physics.NewResolver(s)

	a := &physics.Body{Velocity: mgl32.Vec3{10, 0, 0}}
	r.Step(a, physics.Intent{}, 0.05, grid{})
	r.Step(a, physics.Intent{}, 0.05, grid{})

	b := &physics.Body{Velocity: mgl32.Vec3{10, 0, 0}}
	r.Step(b, physics.Intent{}, 0.1, grid{})

	assert.InDelta(t, b.Velocity.X(), a.Velocity.X(), 1e-4)
}

func TestSprintAndSneakScaleAcceleration(t *testing.T) {
	s := physics.DefaultSettings()
	s.Gravity = 0
	r := physics.NewResolver(s)
	move := mgl32.Vec3{1, 0, 0}

	walk := &physics.Body{}
	r.Step(walk, physics.Intent{Move: move}, 0.1, grid{})
	sprint := &physics.Body{}
	r.Step(sprint, physics.Intent{Move: move, Sprint: true}, 0.1, grid{})
	sneak := &physics.Body{}
	r.Step(sneak, physics.Intent{Move: move, Sneak: true}, 0.1, grid{})

	assert.InDelta(t, 1.3, sprint.Velocity.X()/walk.Velocity.X(), 1e-4)
	assert.InDelta(t, 0.5, sneak.Velocity.X()/walk.Velocity.X(), 1e-4)
	assert.InDelta(t, 0.65, s.SpeedScale(physics.Intent{Sneak: true, Sprint: true}), 1e-6)
}

func BenchmarkStep(b *testing.B) {
	g := grid{}.floor(9, -3, 3, -3, 3)
	r := newResolver()
	body := &physics.Body{Position: mgl32.Vec3{0.5, standingEye, 0.5}}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Step(body, physics.Intent{Move: mgl32.Vec3{0.1, 0, 0}}, 1.0/60, g)
		if body.Position.X() > 2 {
			body.Position[0] = 0.5
		}
	}
}
