package scene

import (
	"sort"

	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tags what a RenderItem draws.
type Kind uint8

const (
	KindChunk Kind = iota
	KindSelection
	KindCrosshair
	KindLabel
	KindCamera
)

func (k Kind) String() string {
	switch k {
	case KindChunk:
		return "chunk"
	case KindSelection:
		return "selection"
	case KindCrosshair:
		return "crosshair"
	case KindLabel:
		return "label"
	case KindCamera:
		return "camera"
	}
	return "unknown"
}

// Flags are capabilities of a RenderItem.
type Flags uint8

const (
	CastsShadow Flags = 1 << iota
	Visible
	IsCamera
)

// RenderItem is one entry of the scene. Kind selects the draw path; Flags
// carry the capabilities shared across kinds.
type RenderItem struct {
	Kind  Kind
	Flags Flags

	// Chunk items only.
	Coord world.ChunkCoord
	Mesh  *world.Mesh

	Model mgl32.Mat4
}

func (it *RenderItem) Has(f Flags) bool {
	return it.Flags&f == f
}

func (it *RenderItem) Set(f Flags, on bool) {
	if on {
		it.Flags |= f
	} else {
		it.Flags &^= f
	}
}

// Bounds returns the world-space box of a chunk item.
func (it *RenderItem) Bounds() (mgl32.Vec3, mgl32.Vec3) {
	x, z := it.Coord.Origin()
	lo := mgl32.Vec3{float32(x), 0, float32(z)}
	hi := lo.Add(mgl32.Vec3{world.ChunkSizeX, world.ChunkSizeY, world.ChunkSizeZ})
	return lo, hi
}

// NewChunkItem wraps a chunk mesh. Chunks start visible and cast shadows.
func NewChunkItem(coord world.ChunkCoord, mesh *world.Mesh) *RenderItem {
	x, z := coord.Origin()
	return &RenderItem{
		Kind:  KindChunk,
		Flags: Visible | CastsShadow,
		Coord: coord,
		Mesh:  mesh,
		Model: mgl32.Translate3D(float32(x), 0, float32(z)),
	}
}

// NewCameraItem returns the item the view is taken from.
func NewCameraItem(view mgl32.Mat4) *RenderItem {
	return &RenderItem{Kind: KindCamera, Flags: IsCamera, Model: view}
}

// Scene tracks the chunk items handed over by the streaming side. It is
// only touched from the render goroutine.
type Scene struct {
	chunks map[world.ChunkCoord]*RenderItem
}

func New() *Scene {
	return &Scene{chunks: make(map[world.ChunkCoord]*RenderItem)}
}

// AttachChunk installs or replaces the mesh of a chunk. A replaced chunk
// keeps its flags.
func (s *Scene) AttachChunk(coord world.ChunkCoord, mesh *world.Mesh) *RenderItem {
	if it, ok := s.chunks[coord]; ok {
		it.Mesh = mesh
		return it
	}
	it := NewChunkItem(coord, mesh)
	s.chunks[coord] = it
	return it
}

// SetVisible toggles a chunk. It reports false for unknown chunks.
func (s *Scene) SetVisible(coord world.ChunkCoord, visible bool) bool {
	it, ok := s.chunks[coord]
	if !ok {
		return false
	}
	it.Set(Visible, visible)
	return true
}

// Detach removes a chunk and returns its item.
func (s *Scene) Detach(coord world.ChunkCoord) (*RenderItem, bool) {
	it, ok := s.chunks[coord]
	if ok {
		delete(s.chunks, coord)
	}
	return it, ok
}

func (s *Scene) Chunk(coord world.ChunkCoord) (*RenderItem, bool) {
	it, ok := s.chunks[coord]
	return it, ok
}

func (s *Scene) Len() int {
	return len(s.chunks)
}

// Collect appends the visible chunk items inside the frustum to dst,
// nearest to eye first.
func (s *Scene) Collect(f Frustum, eye mgl32.Vec3, dst []*RenderItem) []*RenderItem {
	start := len(dst)
	for _, it := range s.chunks {
		if !it.Has(Visible) || it.Mesh == nil {
			continue
		}
		lo, hi := it.Bounds()
		if f.IntersectsAABB(lo, hi) {
			dst = append(dst, it)
		}
	}
	found := dst[start:]
	ec := world.ChunkCoordAt(eye.X(), eye.Z())
	sort.Slice(found, func(i, j int) bool {
		di, dj := found[i].Coord.DistanceTo(ec), found[j].Coord.DistanceTo(ec)
		if di != dj {
			return di < dj
		}
		if found[i].Coord.X != found[j].Coord.X {
			return found[i].Coord.X < found[j].Coord.X
		}
		return found[i].Coord.Z < found[j].Coord.Z
	})
	return dst
}
