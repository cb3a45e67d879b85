package meshing

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidChunk(t world.BlockType) *world.Chunk {
	c := world.NewChunk(world.ChunkCoord{})
	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				c.SetBlock(x, y, z, t)
			}
		}
	}
	return c
}

func assertMeshInvariants(t *testing.T, m *world.Mesh) {
	t.Helper()
	assert.Equal(t, 2*m.FaceCount(), m.TriangleCount())
	assert.Equal(t, len(m.Vertices)*3, len(m.Indices)*2)
	for i := 0; i < len(m.Indices); i += 6 {
		base := uint32(i / 6 * 4)
		assert.Equal(t, []uint32{base, base + 1, base + 2, base + 2, base + 3, base}, m.Indices[i:i+6])
	}
}

func TestEmptyChunkMesh(t *testing.T) {
	m := Build(world.NewChunk(world.ChunkCoord{X: 3, Z: -2}))
	assert.Zero(t, m.FaceCount())
	assert.Empty(t, m.Indices)
	assert.Equal(t, world.ChunkCoord{X: 3, Z: -2}, m.Coord)
}

func TestSingleBlockMesh(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	c.SetBlock(4, 20, 4, world.BlockTypeGrass)
	m := Build(c)
	require.Equal(t, 6, m.FaceCount())
	assertMeshInvariants(t, m)

	wantNormals := []mgl32.Vec3{{0, 1, 0}, {0, -1, 0}, {-1, 0, 0}, {1, 0, 0}, {0, 0, -1}, {0, 0, 1}}
	for i, n := range wantNormals {
		for v := 0; v < 4; v++ {
			assert.Equal(t, n, m.Vertices[i*4+v].Normal, "face %d vertex %d", i, v)
		}
	}
	// First top vertex sits at (x, y+1, z+1).
	assert.Equal(t, mgl32.Vec3{4, 21, 5}, m.Vertices[0].Position)
}

func TestTwoTouchingBlocksAreNotMerged(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	c.SetBlock(0, 5, 0, world.BlockTypeStone)
	c.SetBlock(1, 5, 0, world.BlockTypeStone)
	m := Build(c)
	assert.Equal(t, 10, m.FaceCount())
	assertMeshInvariants(t, m)
}

func TestTransparentNeighbourKeepsFace(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	c.SetBlock(5, 5, 5, world.BlockTypeStone)
	c.SetBlock(6, 5, 5, world.BlockTypeLeaves)
	m := Build(c)
	// Stone shows all six faces, leaves hide the face against the stone.
	assert.Equal(t, 11, m.FaceCount())
}

func TestFullySolidChunk(t *testing.T) {
	m := Build(solidChunk(world.BlockTypeStone))
	// Only the chunk boundary is visible.
	want := 2*world.ChunkSizeX*world.ChunkSizeZ +
		2*world.ChunkSizeX*world.ChunkSizeY +
		2*world.ChunkSizeZ*world.ChunkSizeY
	assert.Equal(t, 16896, want)
	assert.Equal(t, want, m.FaceCount())
	assertMeshInvariants(t, m)
}

func TestInteriorPocketAddsSixFaces(t *testing.T) {
	solid := Build(solidChunk(world.BlockTypeStone))

	c := solidChunk(world.BlockTypeStone)
	c.SetBlock(8, 100, 8, world.BlockTypeAir)
	pocket := Build(c)

	require.Equal(t, solid.FaceCount()+6, pocket.FaceCount())
	assertMeshInvariants(t, pocket)

	// Every extra face lies on the pocket boundary and faces into it.
	centre := mgl32.Vec3{8.5, 100.5, 8.5}
	inward := 0
	for i := 0; i < pocket.FaceCount(); i++ {
		v := pocket.Vertices[i*4]
		var sum mgl32.Vec3
		for k := 0; k < 4; k++ {
			sum = sum.Add(pocket.Vertices[i*4+k].Position)
		}
		faceCentre := sum.Mul(0.25)
		if faceCentre.Sub(centre).Len() < 0.51 {
			inward++
			assert.InDelta(t, 1, v.Normal.Dot(centre.Sub(faceCentre).Normalize()), 1e-5)
		}
	}
	assert.Equal(t, 6, inward)
}

func TestCactusSidesAreInset(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	c.SetBlock(3, 10, 3, world.BlockTypeCactus)
	m := Build(c)
	require.Equal(t, 6, m.FaceCount())

	const in = float32(1) / 16
	for v := 0; v < 4; v++ {
		assert.InDelta(t, 3+in, m.Vertices[2*4+v].Position.X(), 1e-6, "-X face")
		assert.InDelta(t, 4-in, m.Vertices[3*4+v].Position.X(), 1e-6, "+X face")
		assert.InDelta(t, 3+in, m.Vertices[4*4+v].Position.Z(), 1e-6, "-Z face")
		assert.InDelta(t, 4-in, m.Vertices[5*4+v].Position.Z(), 1e-6, "+Z face")
		assert.InDelta(t, 11, m.Vertices[0*4+v].Position.Y(), 1e-6, "top face")
	}
	// The top face keeps the full cell footprint.
	assert.Equal(t, mgl32.Vec3{3, 11, 4}, m.Vertices[0].Position)
}

func TestAtlasUVs(t *testing.T) {
	c := world.NewChunk(world.ChunkCoord{})
	c.SetBlock(0, 0, 0, world.BlockTypeGrass)
	m := Build(c)

	// Top uses tile (8,2), corner (0,1).
	assert.Equal(t, mgl32.Vec2{8.0 / 16, 3.0 / 16}, m.Vertices[0].UV)
	// Bottom uses tile (2,0), corner (0,0).
	assert.Equal(t, mgl32.Vec2{2.0 / 16, 0}, m.Vertices[4].UV)
	// -X side uses tile (3,0), corner (1,1).
	assert.Equal(t, mgl32.Vec2{4.0 / 16, 1.0 / 16}, m.Vertices[8].UV)

	assert.Equal(t, Tile{12, 14}, TileFor(world.BlockType(200), world.FaceTop))
	assert.Equal(t, Tile{0, 12}, TileFor(world.BlockTypeSandstone, world.FaceEast))
	assert.Equal(t, Tile{7, 4}, TileFor(world.BlockTypeCactus, world.FaceBottom))
	assert.Equal(t, Tile{0, 5}, TileFor(world.BlockTypeTorch, world.FaceNorth))
}

func TestBuildIsDeterministic(t *testing.T) {
	c := world.NewGenerator(9, world.DefaultBiomeSettings()).Generate(world.ChunkCoord{X: 1, Z: 1})
	var b Builder
	first := b.Build(c)
	second := b.Build(c)
	assert.Equal(t, first.Vertices, second.Vertices)
	assert.Equal(t, first.Indices, second.Indices)
	assertMeshInvariants(t, first)
}
