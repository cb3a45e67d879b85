package physics_test

import "mini-voxel/internal/world"

// grid is a sparse block reader for tests; missing cells are air.
type grid map[[3]int]world.BlockType

func (g grid) Get(x, y, z int) world.BlockType {
	return g[[3]int{x, y, z}]
}

func (g grid) set(x, y, z int, t world.BlockType) grid {
	g[[3]int{x, y, z}] = t
	return g
}

// floor fills the layer y over [x0,x1]x[z0,z1] with stone.
func (g grid) floor(y, x0, x1, z0, z1 int) grid {
	for x := x0; x <= x1; x++ {
		for z := z0; z <= z1; z++ {
			g.set(x, y, z, world.BlockTypeStone)
		}
	}
	return g
}
