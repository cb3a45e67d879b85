package player

import (
	"math"

	"mini-voxel/internal/physics"
	"mini-voxel/internal/world"
)

// Aim updates the hovered block face from the current view.
func (p *Player) Aim(blocks world.BlockReader) {
	p.Hover, p.HasHover = physics.Pick(blocks, p.EyePosition(), p.Front(), p.Reach)
}

// Occupies reports whether a cell overlaps the column of cells the body
// fills, from the feet cell up to the eye cell.
func (p *Player) Occupies(cell [3]int) bool {
	eye := p.EyePosition()
	feet := p.FeetPosition()
	if cell[0] != int(math.Floor(float64(eye.X()))) || cell[2] != int(math.Floor(float64(eye.Z()))) {
		return false
	}
	return cell[1] >= int(math.Floor(float64(feet.Y()))) && cell[1] <= int(math.Floor(float64(eye.Y())))
}

// PlaceTarget returns the cell in front of the hovered face when a block
// can be placed there.
func (p *Player) PlaceTarget(blocks world.BlockReader) ([3]int, bool) {
	if !p.HasHover {
		return [3]int{}, false
	}
	cell := p.Hover.Adjacent()
	if cell[1] < 0 || cell[1] >= world.ChunkSizeY {
		return cell, false
	}
	if blocks.Get(cell[0], cell[1], cell[2]) != world.BlockTypeAir {
		return cell, false
	}
	if p.Occupies(cell) {
		return cell, false
	}
	return cell, true
}
