package game

import (
	"log/slog"
	"math"
	"time"

	"mini-voxel/internal/config"
	"mini-voxel/internal/inventory"
	"mini-voxel/internal/logging"
	"mini-voxel/internal/physics"
	"mini-voxel/internal/player"
	"mini-voxel/internal/profiling"
	"mini-voxel/internal/streaming"
	"mini-voxel/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// spawnX and spawnZ are the world column the observer starts in.
const spawnX, spawnZ = 0, 0

// Options overrides parts of a Session built from config.
type Options struct {
	Logger  *slog.Logger
	Metrics *profiling.Metrics
	// Generator overrides the terrain chosen from the config.
	Generator world.TerrainGenerator
	// RenderDistance overrides the runtime render distance when positive.
	RenderDistance int
}

// Session ties the world, streaming, physics and the observer together. All
// methods must be called from the interactive goroutine.
type Session struct {
	store     *world.ChunkStore
	gen       world.TerrainGenerator
	scheduler *streaming.Scheduler
	resolver  *physics.Resolver
	player    *player.Player
	inventory *inventory.Inventory
	log       *slog.Logger
	metrics   *profiling.Metrics

	// ready is set once the observer's chunk is published; movement is
	// frozen until then.
	ready bool
}

// NewTerrain returns the generator the config describes.
func NewTerrain(cfg config.Config) world.TerrainGenerator {
	if cfg.World.FlatHeight > 0 {
		return world.NewFlatGenerator(cfg.World.FlatHeight)
	}
	return world.NewGenerator(cfg.Seed, world.BiomeSettings{
		DesertBelow: cfg.World.DesertBelow,
		ForestAbove: cfg.World.ForestAbove,
	})
}

// PhysicsSettings converts the physics config section.
func PhysicsSettings(c config.PhysicsConfig) physics.Settings {
	return physics.Settings{
		SpeedFloor:  c.SpeedFloor,
		SpeedAir:    c.SpeedAir,
		DragFloor:   c.DragFloor,
		DragAir:     c.DragAir,
		Gravity:     c.Gravity,
		JumpSpeed:   c.JumpSpeed,
		SprintScale: c.SprintScale,
		SneakScale:  c.SneakScale,
		EyeHeight:   c.EyeHeight,
		Pad:         c.Pad,
	}
}

// NewSession starts a world for cfg that publishes chunk meshes to sink.
func NewSession(cfg config.Config, sink streaming.RenderSink, opts Options) *Session {
	gen := opts.Generator
	if gen == nil {
		gen = NewTerrain(cfg)
	}
	logger := logging.OrDefault(opts.Logger)
	store := world.NewChunkStore()

	spawn := mgl32.Vec3{
		spawnX + 0.5,
		float32(gen.HeightAt(spawnX, spawnZ)) + cfg.Physics.EyeHeight,
		spawnZ + 0.5,
	}

	return &Session{
		store: store,
		gen:   gen,
		scheduler: streaming.New(store, gen, sink, streaming.Options{
			RenderDistance: opts.RenderDistance,
			Logger:         logger,
			Metrics:        opts.Metrics,
		}),
		resolver:  physics.NewResolver(PhysicsSettings(cfg.Physics)),
		player:    player.New(spawn, cfg.Player, cfg.Physics.EyeHeight),
		inventory: inventory.New(),
		log:       logger,
		metrics:   opts.Metrics,
	}
}

// Player returns the observer.
func (s *Session) Player() *player.Player {
	return s.player
}

// Inventory returns the observer's hotbar.
func (s *Session) Inventory() *inventory.Inventory {
	return s.inventory
}

// Store returns the chunk store backing the world.
func (s *Session) Store() *world.ChunkStore {
	return s.store
}

// Scheduler returns the streaming scheduler.
func (s *Session) Scheduler() *streaming.Scheduler {
	return s.scheduler
}

// Ready reports whether the spawn chunk has been published.
func (s *Session) Ready() bool {
	return s.ready
}

// SpeedScale is the current movement speed factor, used to widen the view
// while sprinting.
func (s *Session) SpeedScale() float32 {
	return s.resolver.Settings.SpeedScale(s.player.Intent())
}

func cellOf(pos mgl32.Vec3) [3]int {
	return [3]int{
		int(math.Floor(float64(pos.X()))),
		int(math.Floor(float64(pos.Y()))),
		int(math.Floor(float64(pos.Z()))),
	}
}

// GetBlock returns the block containing a world position. Unloaded chunks
// and positions outside the vertical range read as air.
func (s *Session) GetBlock(pos mgl32.Vec3) world.BlockType {
	c := cellOf(pos)
	return s.store.Get(c[0], c[1], c[2])
}

// SetBlock writes the block containing a world position and remeshes its
// chunk before returning. It reports false when the chunk is not loaded or
// the position is outside the vertical range.
func (s *Session) SetBlock(pos mgl32.Vec3, t world.BlockType) bool {
	return s.setCell(cellOf(pos), t)
}

func (s *Session) setCell(c [3]int, t world.BlockType) bool {
	defer profiling.Track("game.SetBlock")()

	if !s.store.Set(c[0], c[1], c[2], t) {
		return false
	}
	chunk, ok := s.store.ChunkAt(c[0], c[2])
	if !ok {
		return false
	}
	s.scheduler.Remesh(chunk)
	s.log.Debug("block set", "x", c[0], "y", c[1], "z", c[2], "block", t)
	return true
}

// Pick finds the block face hit by a ray within reach.
func (s *Session) Pick(origin, dir mgl32.Vec3, reach float32) (physics.Hit, bool) {
	return physics.Pick(s.store, origin, dir, reach)
}

// Tick advances streaming for an observer at pos and records the frame.
func (s *Session) Tick(observerPos mgl32.Vec3, dt float64) {
	s.scheduler.Tick(observerPos)
	if !s.ready {
		s.trySpawn()
	}
	s.metrics.FrameDone(time.Duration(dt * float64(time.Second)))
}

// trySpawn drops the observer into the first free two-cell gap at or above
// the terrain height once the spawn chunk exists.
func (s *Session) trySpawn() {
	if _, ok := s.store.ChunkAt(spawnX, spawnZ); !ok {
		return
	}
	y := s.gen.HeightAt(spawnX, spawnZ)
	for y < world.ChunkSizeY-2 && !(s.store.IsAir(spawnX, y, spawnZ) && s.store.IsAir(spawnX, y+1, spawnZ)) {
		y++
	}
	body := &s.player.Body
	body.Position = mgl32.Vec3{spawnX + 0.5, float32(y) + s.player.EyeHeight, spawnZ + 0.5}
	body.Velocity = mgl32.Vec3{}
	s.ready = true
	s.log.Info("observer spawned", "x", spawnX, "y", y, "z", spawnZ)
}

// Update runs one interactive frame: look, movement, aiming, digging and
// placing, then streaming.
func (s *Session) Update(controls player.Controls, dt float64) {
	defer profiling.Track("game.Update")()

	p := s.player
	p.Look(controls.LookX, controls.LookY)
	if controls.Hotbar > 0 {
		s.inventory.Select(controls.Hotbar - 1)
	}
	if controls.Scroll != 0 {
		s.inventory.Scroll(controls.Scroll)
	}

	if s.ready {
		p.Move(s.resolver, controls, float32(dt), s.store)
	}
	p.Aim(s.store)

	if target, done := p.UpdateDig(dt, controls.Dig); done {
		s.dig(target)
	}
	if controls.Place {
		s.place()
	}

	s.Tick(p.EyePosition(), dt)
}

func (s *Session) dig(cell [3]int) {
	b := s.store.Get(cell[0], cell[1], cell[2])
	if b == world.BlockTypeAir || b == world.BlockTypeBedrock {
		return
	}
	if s.setCell(cell, world.BlockTypeAir) {
		s.inventory.CollectDrop(b)
	}
}

func (s *Session) place() {
	cell, ok := s.player.PlaceTarget(s.store)
	if !ok {
		return
	}
	b, ok := s.inventory.SelectedBlock()
	if !ok {
		return
	}
	if s.setCell(cell, b) {
		s.inventory.TakeSelected()
	}
}

// Close stops background generation.
func (s *Session) Close() {
	s.scheduler.Close()
}
