package player

// digStages is the number of crack stages shown while digging.
const digStages = 11

// ResetDig drops any progress on the current block.
func (p *Player) ResetDig() {
	p.digProgress = 0
}

// UpdateDig advances digging of the hovered block while the dig control is
// held. Progress restarts when the target changes. It returns the block to
// remove once DigSeconds of continuous digging have accumulated.
func (p *Player) UpdateDig(dt float64, held bool) ([3]int, bool) {
	if !held || !p.HasHover {
		p.ResetDig()
		return [3]int{}, false
	}

	target := p.Hover.Block
	if p.digProgress > 0 && target == p.digging {
		p.digProgress += dt
	} else {
		p.digging = target
		p.digProgress = dt
	}

	if p.digProgress >= p.DigSeconds {
		p.digProgress = 0
		return target, true
	}
	return target, false
}

// DigFraction returns progress on the current block in [0,1).
func (p *Player) DigFraction() float64 {
	if p.DigSeconds <= 0 {
		return 0
	}
	return min(p.digProgress/p.DigSeconds, 1)
}

// DigStage maps progress to a crack stage in [0, digStages).
func (p *Player) DigStage() int {
	return min(int(p.DigFraction()*digStages), digStages-1)
}
