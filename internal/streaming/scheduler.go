package streaming

import (
	"fmt"
	"log/slog"
	"math"

	"mini-voxel/internal/config"
	"mini-voxel/internal/logging"
	"mini-voxel/internal/meshing"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// RenderSink is the rendering side of the world. AttachMesh installs or
// replaces the geometry of a chunk; SetVisible toggles whether it is drawn.
type RenderSink interface {
	AttachMesh(coord world.ChunkCoord, mesh *world.Mesh)
	SetVisible(coord world.ChunkCoord, visible bool)
}

// Detacher is implemented by sinks that can release a chunk's geometry when
// the chunk is evicted from the store.
type Detacher interface {
	Detach(coord world.ChunkCoord)
}

// scanStep is the angular step of the ring scan, in radians.
const scanStep = 0.01

// Options configures a Scheduler.
type Options struct {
	// RenderDistance in chunks. 0 reads config.GetRenderDistance() every tick.
	RenderDistance int
	// EvictDistance drops chunks from the store beyond this many chunks.
	// 0 reads config.GetChunkEvictRadius(), which is 0 (off) by default.
	EvictDistance int
	Logger        *slog.Logger
	Metrics       *profiling.Metrics
}

// Scheduler decides each tick which chunks to generate, publish, hide and
// show around the observer.
type Scheduler struct {
	store   *world.ChunkStore
	sink    RenderSink
	worker  *Worker
	builder meshing.Builder
	opts    Options
	log     *slog.Logger

	// pending is the coordinate handed to the worker; valid while outstanding.
	pending     world.ChunkCoord
	outstanding bool

	observer world.ChunkCoord
	// lastHide is the state of the last hide pass; the pass is skipped
	// while it is unchanged.
	lastHide hideState

	scanRadius  int
	scanOffsets []offset
}

type offset struct{ dx, dz int }

type hideState struct {
	observer world.ChunkCoord
	radius   int
	modCount uint64
}

// New creates a scheduler and starts its generation worker.
func New(store *world.ChunkStore, gen world.TerrainGenerator, sink RenderSink, opts Options) *Scheduler {
	if opts.RenderDistance < 0 || opts.EvictDistance < 0 {
		panic(fmt.Sprintf("streaming: negative distance in options: %+v", opts))
	}
	return &Scheduler{
		store:      store,
		sink:       sink,
		worker:     NewWorker(gen, opts.Metrics),
		opts:       opts,
		log:        logging.OrDefault(opts.Logger),
		scanRadius: -1,
		lastHide:   hideState{radius: -1},
	}
}

// RenderDistance returns the radius, in chunks, kept resident and visible.
func (s *Scheduler) RenderDistance() int {
	if s.opts.RenderDistance > 0 {
		return s.opts.RenderDistance
	}
	return config.GetRenderDistance()
}

// hideRadius returns the distance beyond which stored chunks are hidden.
func (s *Scheduler) hideRadius() int {
	if s.opts.RenderDistance > 0 {
		return config.HideRadius(s.opts.RenderDistance)
	}
	return config.GetChunkHideRadius()
}

func (s *Scheduler) evictDistance() int {
	if s.opts.EvictDistance > 0 {
		return max(s.opts.EvictDistance, s.hideRadius()+1)
	}
	return config.GetChunkEvictRadius()
}

// Observer returns the chunk the observer stood in at the last tick.
func (s *Scheduler) Observer() world.ChunkCoord {
	return s.observer
}

// Pending reports the coordinate currently being generated, if any.
func (s *Scheduler) Pending() (world.ChunkCoord, bool) {
	return s.pending, s.outstanding
}

// Tick runs one scheduling step for an observer at pos.
func (s *Scheduler) Tick(pos mgl32.Vec3) {
	defer profiling.Track("streaming.Tick")()

	s.publish()

	r := s.RenderDistance()
	s.observer = world.ChunkCoordAt(pos.X(), pos.Z())
	s.hideFar(s.hideRadius())
	if evict := s.evictDistance(); evict > 0 {
		s.evict(evict)
	}

	if !s.outstanding {
		s.scan(r)
	}
}

// publish meshes and inserts a finished chunk. It is the only place chunks
// enter the store and the renderable set.
func (s *Scheduler) publish() {
	c, elapsed, ok := s.worker.TryResult()
	if !ok {
		return
	}
	s.outstanding = false

	mesh := s.builder.Build(c)
	c.SetMesh(mesh)
	c.SetVisible(true)
	if !s.store.Insert(c) {
		s.log.Warn("generated chunk already stored", "chunk", c.Coord)
		return
	}
	s.sink.AttachMesh(c.Coord, mesh)
	s.opts.Metrics.ChunkPublished(s.store.Len())
	s.log.Debug("chunk published", "chunk", c.Coord, "faces", mesh.FaceCount(), "gen", elapsed)
}

// hideFar hides visible chunks farther than radius from the observer.
// Chunks only become visible within the render distance, so the pass has
// nothing to do until the observer, the radius or the chunk set changes.
func (s *Scheduler) hideFar(radius int) {
	state := hideState{observer: s.observer, radius: radius, modCount: s.store.GetModCount()}
	if state == s.lastHide {
		return
	}
	s.lastHide = state

	var far []*world.Chunk
	s.store.Range(func(c *world.Chunk) bool {
		if c.Visible() && c.Coord.DistanceTo(s.observer) > float64(radius) {
			far = append(far, c)
		}
		return true
	})
	for _, c := range far {
		c.SetVisible(false)
		s.sink.SetVisible(c.Coord, false)
		s.opts.Metrics.ChunkHidden()
	}
}

func (s *Scheduler) evict(radius int) {
	removed := s.store.EvictFarChunks(s.observer, radius)
	if len(removed) == 0 {
		return
	}
	d, canDetach := s.sink.(Detacher)
	for _, coord := range removed {
		if canDetach {
			d.Detach(coord)
		} else {
			s.sink.SetVisible(coord, false)
		}
	}
	s.opts.Metrics.ChunksEvicted(len(removed), s.store.Len())
	s.log.Debug("chunks evicted", "count", len(removed), "radius", radius)
}

// scan walks the disc of radius r around the observer and submits the first
// missing chunk. Stored chunks met on the way are shown again.
func (s *Scheduler) scan(r int) {
	defer profiling.Track("streaming.Scan")()

	for _, o := range s.offsets(r) {
		coord := world.ChunkCoord{X: s.observer.X + o.dx, Z: s.observer.Z + o.dz}
		c, ok := s.store.Chunk(coord)
		if !ok {
			if s.worker.Submit(coord) {
				s.pending = coord
				s.outstanding = true
			}
			return
		}
		if !c.Visible() {
			c.SetVisible(true)
			s.sink.SetVisible(coord, true)
			s.opts.Metrics.ChunkShown()
		}
	}
}

// offsets returns the scan order for radius r: rings d = 0..r sampled every
// scanStep radians with the projection truncated toward zero, then any cell
// of the disc the angular sampling never hit. Repeated cells are dropped
// since a second visit cannot change the outcome.
func (s *Scheduler) offsets(r int) []offset {
	if r == s.scanRadius {
		return s.scanOffsets
	}
	seen := make(map[offset]bool)
	var out []offset
	add := func(o offset) {
		if !seen[o] {
			seen[o] = true
			out = append(out, o)
		}
	}
	for d := 0; d <= r; d++ {
		for a := 0.0; a < 2*math.Pi; a += scanStep {
			add(offset{
				dx: int(math.Cos(a) * float64(d)),
				dz: int(math.Sin(a) * float64(d)),
			})
		}
	}
	for d := 0; d <= r; d++ {
		for dx := -d; dx <= d; dx++ {
			for dz := -d; dz <= d; dz++ {
				if dx*dx+dz*dz <= r*r {
					add(offset{dx, dz})
				}
			}
		}
	}
	s.scanRadius = r
	s.scanOffsets = out
	return out
}

// Remesh rebuilds the mesh of a stored chunk after an edit and hands it to
// the sink. Visibility is left as it was.
func (s *Scheduler) Remesh(c *world.Chunk) *world.Mesh {
	mesh := s.builder.Build(c)
	c.SetMesh(mesh)
	s.sink.AttachMesh(c.Coord, mesh)
	if !c.Visible() {
		s.sink.SetVisible(c.Coord, false)
	}
	s.opts.Metrics.Remeshed()
	return mesh
}

// Close stops the generation worker. A generation in flight finishes first
// and its chunk is discarded.
func (s *Scheduler) Close() {
	s.worker.Shutdown()
}
