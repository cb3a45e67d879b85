package blocks

import (
	"mini-voxel/internal/graphics"
	renderer "mini-voxel/internal/graphics/renderer"
	"mini-voxel/internal/graphics/scene"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Blocks draws chunk meshes. It is the render sink of the streaming
// scheduler: meshes handed over by AttachMesh are uploaded on the next
// frame, and detached chunks release their buffers then too.
type Blocks struct {
	mainShader *graphics.Shader
	atlasTex   uint32

	scene   *scene.Scene
	meshes  map[world.ChunkCoord]*gpuMesh
	dirty   map[world.ChunkCoord]struct{}
	release []*gpuMesh

	visibleScratch []*scene.RenderItem
}

// NewBlocks creates a new blocks renderable
func NewBlocks() *Blocks {
	return &Blocks{
		scene:          scene.New(),
		meshes:         make(map[world.ChunkCoord]*gpuMesh),
		dirty:          make(map[world.ChunkCoord]struct{}),
		visibleScratch: make([]*scene.RenderItem, 0, 256),
	}
}

// AttachMesh installs or replaces the mesh of a chunk.
func (b *Blocks) AttachMesh(coord world.ChunkCoord, mesh *world.Mesh) {
	b.scene.AttachChunk(coord, mesh)
	b.dirty[coord] = struct{}{}
}

// SetVisible toggles drawing of a chunk.
func (b *Blocks) SetVisible(coord world.ChunkCoord, visible bool) {
	b.scene.SetVisible(coord, visible)
}

// Detach forgets a chunk and frees its buffers.
func (b *Blocks) Detach(coord world.ChunkCoord) {
	b.scene.Detach(coord)
	delete(b.dirty, coord)
	if m, ok := b.meshes[coord]; ok {
		b.release = append(b.release, m)
		delete(b.meshes, coord)
	}
}

// ChunkCount returns the number of chunks known to the renderer.
func (b *Blocks) ChunkCount() int {
	return b.scene.Len()
}

// Init compiles the shader and uploads the block atlas.
func (b *Blocks) Init() error {
	var err error
	b.mainShader, err = graphics.NewShader(mainVertShader, mainFragShader)
	if err != nil {
		return err
	}
	b.atlasTex = graphics.UploadRGBA(scene.BuildBlockAtlas())

	b.mainShader.Use()
	b.mainShader.SetInt("atlas", 0)
	light := mgl32.Vec3{0.3, 1.0, 0.5}.Normalize()
	b.mainShader.SetVector3("lightDir", light.X(), light.Y(), light.Z())
	b.mainShader.SetVector3("fogColor", 0.53, 0.81, 0.92)
	return nil
}

func (b *Blocks) SetViewport(width, height int) {}

// Render uploads pending meshes and draws the visible chunks in the frustum.
func (b *Blocks) Render(ctx renderer.RenderContext) {
	defer profiling.Track("renderer.renderBlocks")()

	b.flush()

	b.mainShader.Use()
	b.mainShader.SetMatrix4("proj", &ctx.Proj[0])
	b.mainShader.SetMatrix4("view", &ctx.View[0])
	b.mainShader.SetFloat("fogEnd", float32(max(ctx.RenderDistance, 1)*world.ChunkSizeX))

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, b.atlasTex)

	frustum := scene.FrustumFromMatrix(ctx.Proj.Mul4(ctx.View))
	b.visibleScratch = b.scene.Collect(frustum, ctx.Player.EyePosition(), b.visibleScratch[:0])
	for _, it := range b.visibleScratch {
		m := b.meshes[it.Coord]
		if m == nil || m.indexCount == 0 {
			continue
		}
		b.mainShader.SetMatrix4("model", &it.Model[0])
		gl.BindVertexArray(m.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

// flush applies the uploads and releases queued since the last frame.
func (b *Blocks) flush() {
	defer profiling.Track("renderer.renderBlocks.upload")()

	for _, m := range b.release {
		deleteMesh(m)
	}
	b.release = b.release[:0]

	for coord := range b.dirty {
		it, ok := b.scene.Chunk(coord)
		if !ok || it.Mesh == nil {
			continue
		}
		m := b.meshes[coord]
		if m == nil {
			m = newGPUMesh()
			b.meshes[coord] = m
		}
		m.upload(it.Mesh)
	}
	clear(b.dirty)
}

func newGPUMesh() *gpuMesh {
	m := &gpuMesh{}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	stride := int32(world.VertexStride * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)
	gl.BindVertexArray(0)
	return m
}

func (m *gpuMesh) upload(mesh *world.Mesh) {
	m.indexCount = int32(len(mesh.Indices))
	if m.indexCount == 0 {
		return
	}
	verts := mesh.Interleaved()
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
}

func deleteMesh(m *gpuMesh) {
	gl.DeleteVertexArrays(1, &m.vao)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteBuffers(1, &m.ebo)
}

// Dispose cleans up OpenGL resources
func (b *Blocks) Dispose() {
	for _, m := range b.release {
		deleteMesh(m)
	}
	for _, m := range b.meshes {
		deleteMesh(m)
	}
	b.release = nil
	clear(b.meshes)
	if b.atlasTex != 0 {
		gl.DeleteTextures(1, &b.atlasTex)
	}
	if b.mainShader != nil {
		b.mainShader.Delete()
	}
}
