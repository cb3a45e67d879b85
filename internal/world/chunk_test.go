package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkCoordFor(t *testing.T) {
	cases := []struct {
		x, z int
		want ChunkCoord
	}{
		{0, 0, ChunkCoord{0, 0}},
		{15, 15, ChunkCoord{0, 0}},
		{16, -1, ChunkCoord{1, -1}},
		{-16, -17, ChunkCoord{-1, -2}},
		{-1, 31, ChunkCoord{-1, 1}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ChunkCoordFor(tc.x, tc.z), "(%d,%d)", tc.x, tc.z)
	}
	assert.Equal(t, ChunkCoord{-1, 0}, ChunkCoordAt(-0.5, 15.9))
}

func TestChunkCoordDistance(t *testing.T) {
	assert.Equal(t, 5.0, ChunkCoord{0, 0}.DistanceTo(ChunkCoord{3, -4}))
	x, z := ChunkCoord{-2, 3}.Origin()
	assert.Equal(t, -32, x)
	assert.Equal(t, 48, z)
	assert.Equal(t, "(-2,3)", ChunkCoord{-2, 3}.String())
}

func TestChunkVerticalBounds(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	assert.True(t, c.SetBlock(1, 0, 1, BlockTypeStone))
	assert.True(t, c.SetBlock(1, 255, 1, BlockTypeStone))
	assert.False(t, c.SetBlock(1, 256, 1, BlockTypeStone))
	assert.False(t, c.SetBlock(1, -1, 1, BlockTypeStone))

	assert.Equal(t, BlockTypeStone, c.Block(1, 255, 1))
	assert.Equal(t, BlockTypeAir, c.Block(1, 256, 1))
	assert.Equal(t, BlockTypeAir, c.Block(1, -1, 1))
	assert.Equal(t, 2, c.CountBlocks(BlockTypeStone))
}

func TestChunkHorizontalBoundsPanic(t *testing.T) {
	c := NewChunk(ChunkCoord{})
	assert.Panics(t, func() { c.Block(16, 0, 0) })
	assert.Panics(t, func() { c.Block(0, 0, -1) })
	assert.Panics(t, func() { c.SetBlock(-1, 0, 0, BlockTypeDirt) })
}

func TestChunkMeshAndVisibility(t *testing.T) {
	c := NewChunk(ChunkCoord{1, 1})
	assert.Nil(t, c.Mesh())
	assert.False(t, c.Visible())

	m := &Mesh{Coord: c.Coord}
	c.SetMesh(m)
	c.SetVisible(true)
	assert.Same(t, m, c.Mesh())
	assert.True(t, c.Visible())
}

func TestBlockTypeProperties(t *testing.T) {
	assert.False(t, BlockTypeAir.IsSolid())
	assert.True(t, BlockTypeLeaves.IsSolid())
	for _, b := range []BlockType{BlockTypeAir, BlockTypeLeaves, BlockTypeCactus} {
		assert.True(t, b.IsTransparent(), b.String())
	}
	for _, b := range []BlockType{BlockTypeGrass, BlockTypeStone, BlockTypeSand, BlockTypeTorch, BlockTypePlanks} {
		assert.False(t, b.IsTransparent(), b.String())
	}
	assert.Equal(t, "sandstone", BlockTypeSandstone.String())
	assert.Equal(t, "torch", BlockTypeTorch.String())
	assert.Equal(t, BlockType(10), BlockTypeTorch)
	assert.True(t, BlockTypeTorch.IsSolid())
	assert.Equal(t, "unknown", BlockType(200).String())
	assert.Equal(t, [3]int{0, 0, -1}, FaceNorth.Normal())
}

func TestMeshInterleaved(t *testing.T) {
	m := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{1, 2, 3}, Normal: [3]float32{0, 1, 0}, UV: [2]float32{0.5, 0.25}},
		},
	}
	assert.Equal(t, []float32{1, 2, 3, 0, 1, 0, 0.5, 0.25}, m.Interleaved())
	assert.Len(t, m.Interleaved(), VertexStride)
}
