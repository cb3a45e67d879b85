package meshing

import (
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// AtlasTiles is the number of tiles along each side of the texture atlas.
const AtlasTiles = 16

const tileSize = float32(1) / AtlasTiles

// Tile addresses one cell of the atlas in tile units.
type Tile struct {
	U, V int
}

// BlockTiles holds the atlas tiles of a block for each face orientation.
type BlockTiles struct {
	Top, Side, Bottom Tile
}

func uniform(u, v int) BlockTiles {
	t := Tile{u, v}
	return BlockTiles{Top: t, Side: t, Bottom: t}
}

// placeholderTiles is used for any block without an entry.
var placeholderTiles = uniform(12, 14)

var blockTiles = map[world.BlockType]BlockTiles{
	world.BlockTypeBedrock:     uniform(1, 1),
	world.BlockTypeDirt:        uniform(2, 0),
	world.BlockTypeGrass:       {Top: Tile{8, 2}, Side: Tile{3, 0}, Bottom: Tile{2, 0}},
	world.BlockTypeStone:       uniform(1, 0),
	world.BlockTypeLog:         {Top: Tile{5, 1}, Side: Tile{4, 1}, Bottom: Tile{5, 1}},
	world.BlockTypeLeaves:      uniform(4, 3),
	world.BlockTypeSandstone:   {Top: Tile{0, 11}, Side: Tile{0, 12}, Bottom: Tile{0, 13}},
	world.BlockTypeSand:        uniform(2, 1),
	world.BlockTypeCactus:      {Top: Tile{5, 4}, Side: Tile{6, 4}, Bottom: Tile{7, 4}},
	world.BlockTypeTorch:       uniform(0, 5),
	world.BlockTypePlanks:      uniform(4, 0),
	world.BlockTypeCobblestone: uniform(0, 1),
}

// TilesFor returns the atlas tiles of a block type.
func TilesFor(t world.BlockType) BlockTiles {
	if tiles, ok := blockTiles[t]; ok {
		return tiles
	}
	return placeholderTiles
}

// TileFor returns the tile used on the given face of a block type.
func TileFor(t world.BlockType, face world.BlockFace) Tile {
	tiles := TilesFor(t)
	switch face {
	case world.FaceTop:
		return tiles.Top
	case world.FaceBottom:
		return tiles.Bottom
	}
	return tiles.Side
}

// UV maps a corner within the tile (0 or 1 on each axis) to atlas coordinates.
func (t Tile) UV(cu, cv float32) mgl32.Vec2 {
	return mgl32.Vec2{
		(float32(t.U) + cu) * tileSize,
		(float32(t.V) + cv) * tileSize,
	}
}
