package physics

import (
	"math"

	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// groundEpsilon is the vertical speed below which a body counts as standing.
const groundEpsilon = 0.01

// Settings are the movement constants of the observer.
type Settings struct {
	SpeedFloor  float32 // acceleration while standing
	SpeedAir    float32 // acceleration while airborne
	DragFloor   float32 // fraction of horizontal velocity kept after one second on the ground
	DragAir     float32 // same, in the air
	Gravity     float32
	JumpSpeed   float32
	SprintScale float32
	SneakScale  float32
	EyeHeight   float32 // eye above feet
	Pad         float32 // gap kept between the body and a wall or ceiling
}

// DefaultSettings returns the stock movement constants.
func DefaultSettings() Settings {
	return Settings{
		SpeedFloor:  30,
		SpeedAir:    20,
		DragFloor:   0.005,
		DragAir:     0.015,
		Gravity:     25,
		JumpSpeed:   9,
		SprintScale: 1.3,
		SneakScale:  0.5,
		EyeHeight:   1.5,
		Pad:         0.1,
	}
}

// Body is the observer's physical state. Position is the eye; the feet are
// EyeHeight below it.
type Body struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
}

// OnGround reports whether the body is resting on something.
func (b *Body) OnGround() bool {
	return float32(math.Abs(float64(b.Velocity.Y()))) < groundEpsilon
}

// Intent is the movement requested for one step.
type Intent struct {
	// Move is the horizontal wish direction in world space. Its length is
	// not normalized: forward plus strafe moves faster, as with keys.
	Move   mgl32.Vec3
	Jump   bool
	Sneak  bool
	Sprint bool
}

// SpeedScale is the product of the sneak and sprint factors active in i.
func (s Settings) SpeedScale(i Intent) float32 {
	scale := float32(1)
	if i.Sneak {
		scale *= s.SneakScale
	}
	if i.Sprint {
		scale *= s.SprintScale
	}
	return scale
}

// Resolver integrates a body and resolves it against the block grid.
type Resolver struct {
	Settings Settings
}

// NewResolver creates a resolver with the given settings.
func NewResolver(s Settings) *Resolver {
	return &Resolver{Settings: s}
}

// Step advances body by dt seconds. Collisions are resolved vertically
// first, then along X, then along Z, each against the cell the body stood
// in before the step.
func (r *Resolver) Step(body *Body, intent Intent, dt float32, blocks world.BlockReader) {
	defer profiling.Track("physics.Step")()

	s := r.Settings
	h := s.EyeHeight
	pad := s.Pad

	if intent.Jump && body.Velocity.Y() == 0 {
		body.Velocity[1] = s.JumpSpeed
	}
	onFloor := body.OnGround()

	speed := s.SpeedAir
	drag := s.DragAir
	if onFloor {
		speed = s.SpeedFloor
		drag = s.DragFloor
	}
	speed *= s.SpeedScale(intent)

	move := mgl32.Vec3{intent.Move.X(), 0, intent.Move.Z()}
	body.Velocity = body.Velocity.Add(move.Mul(speed * dt))
	body.Velocity[1] -= s.Gravity * dt

	decay := float32(math.Pow(float64(drag), float64(dt)))
	body.Velocity[0] *= decay
	body.Velocity[2] *= decay

	oldPos := body.Position
	newPos := oldPos.Add(body.Velocity.Mul(dt))
	oldCell := mgl32.Vec3{floor32(oldPos.X()), floor32(oldPos.Y() - h), floor32(oldPos.Z())}

	// Vertical.
	if newPos.Y() < oldPos.Y() && solidAt(blocks, newPos.Add(mgl32.Vec3{0, -h, 0})) {
		newPos[1] = max(oldCell.Y()+h, newPos.Y())
		body.Velocity[1] = 0
	}
	if newPos.Y() > oldPos.Y() && solidAt(blocks, newPos.Add(mgl32.Vec3{0, pad, 0})) {
		newPos[1] = min(ceil32(oldPos.Y())-pad, newPos.Y())
		body.Velocity[1] = -groundEpsilon
	}

	// X.
	if blockedToward(blocks, oldPos, 1, 0, h, intent.Sneak) && oldCell.X()+1-pad < newPos.X() {
		newPos[0] = oldCell.X() + 1 - pad
		body.Velocity[0] = 0
	}
	if blockedToward(blocks, oldPos, -1, 0, h, intent.Sneak) && oldCell.X()+pad > newPos.X() {
		newPos[0] = oldCell.X() + pad
		body.Velocity[0] = 0
	}

	// Z.
	if blockedToward(blocks, oldPos, 0, 1, h, intent.Sneak) && oldCell.Z()+1-pad < newPos.Z() {
		newPos[2] = oldCell.Z() + 1 - pad
		body.Velocity[2] = 0
	}
	if blockedToward(blocks, oldPos, 0, -1, h, intent.Sneak) && oldCell.Z()+pad > newPos.Z() {
		newPos[2] = oldCell.Z() + pad
		body.Velocity[2] = 0
	}

	body.Position = newPos
}

// blockedToward reports whether the neighbouring column in direction
// (dx, dz) stops horizontal movement: a solid cell at foot or head height,
// a solid step-up cell, or, while sneaking, a drop below the foot cell.
func blockedToward(blocks world.BlockReader, pos mgl32.Vec3, dx, dz, h float32, sneaking bool) bool {
	side := mgl32.Vec3{dx, 0, dz}
	if solidAt(blocks, pos.Add(side).Add(mgl32.Vec3{0, -h, 0})) {
		return true
	}
	if solidAt(blocks, pos.Add(side).Add(mgl32.Vec3{0, -h + 1, 0})) {
		return true
	}
	if sneaking && !solidAt(blocks, pos.Add(side).Add(mgl32.Vec3{0, -h - 1, 0})) {
		return true
	}
	step := mgl32.Vec3{pos.X() + dx, ceil32(pos.Y() - h + 1), pos.Z() + dz}
	return solidAt(blocks, step)
}

// solidAt reports whether the cell containing p is not air.
func solidAt(blocks world.BlockReader, p mgl32.Vec3) bool {
	return blocks.Get(int(floor32(p.X())), int(floor32(p.Y())), int(floor32(p.Z()))).IsSolid()
}

func floor32(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

func ceil32(v float32) float32 {
	return float32(math.Ceil(float64(v)))
}
