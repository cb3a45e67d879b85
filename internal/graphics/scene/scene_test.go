package scene

import (
	"testing"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lookingNorth is a camera at (8,100,8) looking down -Z.
func lookingNorth() (Frustum, mgl32.Vec3) {
	eye := mgl32.Vec3{8, 100, 8}
	view := mgl32.LookAtV(eye, eye.Add(mgl32.Vec3{0, 0, -1}), mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 1, 0.1, 1000)
	return FrustumFromMatrix(proj.Mul4(view)), eye
}

func TestRenderItemFlags(t *testing.T) {
	it := NewChunkItem(world.ChunkCoord{X: 2, Z: -1}, &world.Mesh{})
	assert.Equal(t, KindChunk, it.Kind)
	assert.True(t, it.Has(Visible))
	assert.True(t, it.Has(CastsShadow))
	assert.False(t, it.Has(IsCamera))
	assert.False(t, it.Has(Visible|IsCamera))

	it.Set(Visible, false)
	assert.False(t, it.Has(Visible))
	assert.True(t, it.Has(CastsShadow))

	assert.Equal(t, mgl32.Vec3{32, 0, -16}, it.Model.Col(3).Vec3())
	lo, hi := it.Bounds()
	assert.Equal(t, mgl32.Vec3{32, 0, -16}, lo)
	assert.Equal(t, mgl32.Vec3{48, 256, 0}, hi)

	cam := NewCameraItem(mgl32.Ident4())
	assert.True(t, cam.Has(IsCamera))
	assert.False(t, cam.Has(Visible))
	assert.Equal(t, "camera", cam.Kind.String())
}

func TestSceneAttachKeepsFlags(t *testing.T) {
	s := New()
	coord := world.ChunkCoord{X: 1, Z: 1}
	first := s.AttachChunk(coord, &world.Mesh{})
	require.True(t, s.SetVisible(coord, false))

	mesh := &world.Mesh{Coord: coord}
	second := s.AttachChunk(coord, mesh)
	assert.Same(t, first, second)
	assert.Same(t, mesh, second.Mesh)
	assert.False(t, second.Has(Visible))
	assert.Equal(t, 1, s.Len())

	assert.False(t, s.SetVisible(world.ChunkCoord{X: 9}, true))
}

func TestSceneDetach(t *testing.T) {
	s := New()
	coord := world.ChunkCoord{X: -3, Z: 4}
	s.AttachChunk(coord, &world.Mesh{})

	it, ok := s.Detach(coord)
	require.True(t, ok)
	assert.Equal(t, coord, it.Coord)
	assert.Zero(t, s.Len())
	_, ok = s.Detach(coord)
	assert.False(t, ok)
	_, ok = s.Chunk(coord)
	assert.False(t, ok)
}

func TestFrustumCullsBehindCamera(t *testing.T) {
	f, _ := lookingNorth()
	assert.True(t, f.IntersectsAABB(mgl32.Vec3{0, 92, -48}, mgl32.Vec3{16, 108, -32}))
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{0, 92, 48}, mgl32.Vec3{16, 108, 64}))
	assert.False(t, f.IntersectsAABB(mgl32.Vec3{0, 92, -2000}, mgl32.Vec3{16, 108, -1500}))
	// The eye's own box always survives.
	assert.True(t, f.IntersectsAABB(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{16, 256, 16}))
}

func TestCollectVisibleNearestFirst(t *testing.T) {
	s := New()
	for _, c := range []world.ChunkCoord{{X: 0, Z: -2}, {X: 1, Z: -2}, {X: 0, Z: -1}, {X: 0, Z: 4}, {X: -1, Z: -2}} {
		s.AttachChunk(c, &world.Mesh{Coord: c})
	}
	s.SetVisible(world.ChunkCoord{X: 1, Z: -2}, false)
	s.AttachChunk(world.ChunkCoord{X: 0, Z: -3}, nil)

	f, eye := lookingNorth()
	got := s.Collect(f, eye, nil)

	var coords []world.ChunkCoord
	for _, it := range got {
		coords = append(coords, it.Coord)
	}
	assert.Equal(t, []world.ChunkCoord{{X: 0, Z: -1}, {X: 0, Z: -2}, {X: -1, Z: -2}}, coords)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "chunk", KindChunk.String())
	assert.Equal(t, "selection", KindSelection.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
