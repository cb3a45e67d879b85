package player

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = 89.0

// sprintFOVGain widens the field of view per unit of speed scale above 1.
const sprintFOVGain = 0.2

// Look turns the view by a cursor delta in pixels.
func (p *Player) Look(dx, dy float64) {
	p.Yaw += dx * p.Sensitivity
	p.Pitch -= dy * p.Sensitivity

	// Constrain pitch
	if p.Pitch > maxPitch {
		p.Pitch = maxPitch
	}
	if p.Pitch < -maxPitch {
		p.Pitch = -maxPitch
	}
}

// Front returns the unit view direction.
func (p *Player) Front() mgl32.Vec3 {
	y := mgl32.DegToRad(float32(p.Yaw))
	pt := mgl32.DegToRad(float32(p.Pitch))
	fx := float32(math.Cos(float64(y)) * math.Cos(float64(pt)))
	fy := float32(math.Sin(float64(pt)))
	fz := float32(math.Sin(float64(y)) * math.Cos(float64(pt)))
	return mgl32.Vec3{fx, fy, fz}.Normalize()
}

// Forward returns the view direction flattened onto the ground plane.
func (p *Player) Forward() mgl32.Vec3 {
	y := float64(mgl32.DegToRad(float32(p.Yaw)))
	return mgl32.Vec3{float32(math.Cos(y)), 0, float32(math.Sin(y))}
}

// Right returns the ground-plane direction to the right of the view.
func (p *Player) Right() mgl32.Vec3 {
	return p.Forward().Cross(mgl32.Vec3{0, 1, 0}).Normalize()
}

func (p *Player) ViewMatrix() mgl32.Mat4 {
	eye := p.EyePosition()
	return mgl32.LookAtV(eye, eye.Add(p.Front()), mgl32.Vec3{0, 1, 0})
}

// FOV returns the vertical field of view in degrees. Sprinting widens it
// and sneaking narrows it, in proportion to the movement speed scale.
func (p *Player) FOV(base, speedScale float32) float32 {
	return base * ((speedScale-1)*sprintFOVGain + 1)
}
