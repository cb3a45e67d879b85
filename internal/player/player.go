package player

import (
	"mini-voxel/internal/config"
	"mini-voxel/internal/physics"

	"github.com/go-gl/mathgl/mgl32"
)

// Controls is the observer input sampled for one frame.
type Controls struct {
	Forward, Back, Left, Right bool
	Jump, Sneak, Sprint        bool

	// LookX and LookY are cursor deltas in pixels. LookY grows downward.
	LookX, LookY float64

	Dig    bool // primary button held
	Place  bool // secondary button pressed this frame
	Scroll int  // hotbar steps, positive moves right
	Hotbar int  // 1-9 selects a slot directly, 0 leaves it
}

type Player struct {
	Body physics.Body

	// Yaw and Pitch are in degrees. Yaw -90 looks down -Z.
	Yaw, Pitch  float64
	Sensitivity float64
	Reach       float32
	DigSeconds  float64
	EyeHeight   float32

	// Interaction
	Hover    physics.Hit
	HasHover bool

	digging     [3]int
	digProgress float64

	intent physics.Intent
}

// New places a player with its eye at spawn.
func New(spawn mgl32.Vec3, cfg config.PlayerConfig, eyeHeight float32) *Player {
	return &Player{
		Body:        physics.Body{Position: spawn},
		Yaw:         -90,
		Sensitivity: float64(cfg.Sensitivity),
		Reach:       cfg.Reach,
		DigSeconds:  cfg.DigSeconds,
		EyeHeight:   eyeHeight,
	}
}

// EyePosition returns the camera position.
func (p *Player) EyePosition() mgl32.Vec3 {
	return p.Body.Position
}

// FeetPosition returns the point the body stands on.
func (p *Player) FeetPosition() mgl32.Vec3 {
	return p.Body.Position.Sub(mgl32.Vec3{0, p.EyeHeight, 0})
}

// Intent returns the movement requested by the last Move call.
func (p *Player) Intent() physics.Intent {
	return p.intent
}
