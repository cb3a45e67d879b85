package world

import (
	"fmt"
	"math"
)

const (
	// Chunk dimensions
	ChunkSizeX = 16
	ChunkSizeY = 256
	ChunkSizeZ = 16

	ChunkVolume = ChunkSizeX * ChunkSizeY * ChunkSizeZ
)

// ChunkCoord addresses a chunk column on the XZ plane.
type ChunkCoord struct {
	X, Z int
}

// ChunkCoordFor returns the coordinate of the chunk containing the world block column (x, z).
func ChunkCoordFor(worldX, worldZ int) ChunkCoord {
	return ChunkCoord{X: floorDiv(worldX, ChunkSizeX), Z: floorDiv(worldZ, ChunkSizeZ)}
}

// ChunkCoordAt returns the coordinate of the chunk containing a world position.
func ChunkCoordAt(x, z float32) ChunkCoord {
	return ChunkCoordFor(int(math.Floor(float64(x))), int(math.Floor(float64(z))))
}

// DistanceTo is the Euclidean distance between two chunk coordinates in chunk units.
func (c ChunkCoord) DistanceTo(o ChunkCoord) float64 {
	dx := float64(c.X - o.X)
	dz := float64(c.Z - o.Z)
	return math.Sqrt(dx*dx + dz*dz)
}

// Origin returns the world block position of the chunk's (0, 0, 0) corner.
func (c ChunkCoord) Origin() (x, z int) {
	return c.X * ChunkSizeX, c.Z * ChunkSizeZ
}

func (c ChunkCoord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Z)
}

// Chunk is a dense 16x256x16 column of blocks.
type Chunk struct {
	Coord   ChunkCoord
	blocks  [ChunkVolume]BlockType
	mesh    *Mesh
	visible bool
}

// NewChunk creates an all-air chunk at the given coordinate.
func NewChunk(coord ChunkCoord) *Chunk {
	return &Chunk{Coord: coord}
}

// index converts local coordinates to a flat index. x and z outside the
// chunk are a caller bug.
func index(x, y, z int) int {
	if x < 0 || x >= ChunkSizeX || z < 0 || z >= ChunkSizeZ {
		panic(fmt.Sprintf("world: local coordinate out of range: x=%d z=%d", x, z))
	}
	return (x*ChunkSizeZ+z)*ChunkSizeY + y
}

// Block returns the block at local coordinates. Heights outside the chunk read as air.
func (c *Chunk) Block(x, y, z int) BlockType {
	if y < 0 || y >= ChunkSizeY {
		return BlockTypeAir
	}
	return c.blocks[index(x, y, z)]
}

// SetBlock writes the block at local coordinates and reports whether it was
// stored. Heights outside the chunk are ignored.
func (c *Chunk) SetBlock(x, y, z int, t BlockType) bool {
	if y < 0 || y >= ChunkSizeY {
		return false
	}
	c.blocks[index(x, y, z)] = t
	return true
}

// Mesh returns the chunk's current mesh, nil if it was never meshed.
func (c *Chunk) Mesh() *Mesh {
	return c.mesh
}

// SetMesh replaces the chunk's mesh wholesale.
func (c *Chunk) SetMesh(m *Mesh) {
	c.mesh = m
}

// Visible reports whether the chunk is currently part of the rendered set.
func (c *Chunk) Visible() bool {
	return c.visible
}

// SetVisible records the chunk's render visibility.
func (c *Chunk) SetVisible(v bool) {
	c.visible = v
}

// CountBlocks returns how many cells hold the given block type.
func (c *Chunk) CountBlocks(t BlockType) int {
	n := 0
	for _, b := range c.blocks {
		if b == t {
			n++
		}
	}
	return n
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// mod returns the non-negative remainder of a / b.
func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
