package world

import "github.com/go-gl/mathgl/mgl32"

// VertexStride is the number of float32 per interleaved vertex (pos.xyz + normal.xyz + uv)
const VertexStride = 8

// Vertex is a single mesh vertex in chunk-local space.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	UV       mgl32.Vec2
}

// Mesh is the triangle mesh of one chunk. Positions are relative to the
// chunk origin; the renderer places it at Coord.Origin().
type Mesh struct {
	Coord    ChunkCoord
	Vertices []Vertex
	Indices  []uint32
}

// FaceCount returns the number of quads in the mesh.
func (m *Mesh) FaceCount() int {
	return len(m.Vertices) / 4
}

// TriangleCount returns the number of triangles described by the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Interleaved flattens the vertices into a float32 slice for GPU upload.
func (m *Mesh) Interleaved() []float32 {
	out := make([]float32, 0, len(m.Vertices)*VertexStride)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position[0], v.Position[1], v.Position[2],
			v.Normal[0], v.Normal[1], v.Normal[2],
			v.UV[0], v.UV[1],
		)
	}
	return out
}
