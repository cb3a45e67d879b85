package meshing

import (
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// cactusInset is how far cactus side faces sit inside the block cell.
const cactusInset = float32(1) / 16

type corner struct {
	offset mgl32.Vec3 // position within the unit cell
	uv     mgl32.Vec2 // corner within the tile
}

type faceDef struct {
	face       world.BlockFace
	dx, dy, dz int
	normal     mgl32.Vec3
	corners    [4]corner
}

// faces lists the six faces in emission order: top, bottom, -X, +X, -Z, +Z.
var faces = [6]faceDef{
	{
		face: world.FaceTop, dy: 1, normal: mgl32.Vec3{0, 1, 0},
		corners: [4]corner{
			{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 0}},
		},
	},
	{
		face: world.FaceBottom, dy: -1, normal: mgl32.Vec3{0, -1, 0},
		corners: [4]corner{
			{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 1}},
		},
	},
	{
		face: world.FaceWest, dx: -1, normal: mgl32.Vec3{-1, 0, 0},
		corners: [4]corner{
			{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
		},
	},
	{
		face: world.FaceEast, dx: 1, normal: mgl32.Vec3{1, 0, 0},
		corners: [4]corner{
			{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 1}},
		},
	},
	{
		face: world.FaceNorth, dz: -1, normal: mgl32.Vec3{0, 0, -1},
		corners: [4]corner{
			{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 1}},
		},
	},
	{
		face: world.FaceSouth, dz: 1, normal: mgl32.Vec3{0, 0, 1},
		corners: [4]corner{
			{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 1}},
		},
	},
}

// quadIndices is the triangulation of one quad relative to its first vertex.
var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

// Build meshes a chunk with a throwaway builder.
func Build(c *world.Chunk) *world.Mesh {
	var b Builder
	return b.Build(c)
}

// Builder turns a chunk's block grid into a face-culled mesh. It keeps its
// scratch buffers between calls; a Builder must not be shared between
// goroutines.
type Builder struct {
	vertices []world.Vertex
	indices  []uint32
}

// Build emits one quad per visible face. A face is visible when the
// neighbour across it lies outside the chunk or is transparent.
// The returned mesh owns its slices.
func (b *Builder) Build(c *world.Chunk) *world.Mesh {
	defer profiling.Track("meshing.Build")()

	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]

	for x := 0; x < world.ChunkSizeX; x++ {
		for y := 0; y < world.ChunkSizeY; y++ {
			for z := 0; z < world.ChunkSizeZ; z++ {
				bt := c.Block(x, y, z)
				if bt == world.BlockTypeAir {
					continue
				}
				for i := range faces {
					f := &faces[i]
					if !faceVisible(c, x+f.dx, y+f.dy, z+f.dz) {
						continue
					}
					b.emit(f, bt, x, y, z)
				}
			}
		}
	}

	m := &world.Mesh{
		Coord:    c.Coord,
		Vertices: make([]world.Vertex, len(b.vertices)),
		Indices:  make([]uint32, len(b.indices)),
	}
	copy(m.Vertices, b.vertices)
	copy(m.Indices, b.indices)
	return m
}

func faceVisible(c *world.Chunk, nx, ny, nz int) bool {
	if nx < 0 || nx >= world.ChunkSizeX ||
		ny < 0 || ny >= world.ChunkSizeY ||
		nz < 0 || nz >= world.ChunkSizeZ {
		return true
	}
	return c.Block(nx, ny, nz).IsTransparent()
}

func (b *Builder) emit(f *faceDef, bt world.BlockType, x, y, z int) {
	base := uint32(len(b.vertices))
	tile := TileFor(bt, f.face)
	origin := mgl32.Vec3{float32(x), float32(y), float32(z)}

	for _, cn := range f.corners {
		off := cn.offset
		if bt == world.BlockTypeCactus {
			off = insetSide(off, f)
		}
		b.vertices = append(b.vertices, world.Vertex{
			Position: origin.Add(off),
			Normal:   f.normal,
			UV:       tile.UV(cn.uv[0], cn.uv[1]),
		})
	}
	for _, i := range quadIndices {
		b.indices = append(b.indices, base+i)
	}
}

// insetSide pulls a side face of a cactus inward along its normal.
func insetSide(off mgl32.Vec3, f *faceDef) mgl32.Vec3 {
	switch {
	case f.dx != 0:
		off[0] -= float32(f.dx) * cactusInset
	case f.dz != 0:
		off[2] -= float32(f.dz) * cactusInset
	}
	return off
}
