package player

import (
	"mini-voxel/internal/physics"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"
)

// IntentFor turns held movement keys into a physics intent. Opposite keys
// cancel; diagonal input is not normalized.
func (p *Player) IntentFor(c Controls) physics.Intent {
	forward := p.Forward()
	right := p.Right()

	var i physics.Intent
	if c.Forward {
		i.Move = i.Move.Add(forward)
	}
	if c.Back {
		i.Move = i.Move.Sub(forward)
	}
	if c.Left {
		i.Move = i.Move.Sub(right)
	}
	if c.Right {
		i.Move = i.Move.Add(right)
	}
	i.Jump = c.Jump
	i.Sneak = c.Sneak
	i.Sprint = c.Sprint
	return i
}

// Move steps the body for one frame of input.
func (p *Player) Move(r *physics.Resolver, c Controls, dt float32, blocks world.BlockReader) {
	defer profiling.Track("player.Move")()

	p.intent = p.IntentFor(c)
	r.Step(&p.Body, p.intent, dt, blocks)
}
