package world

import (
	"sort"
	"sync"
)

// BlockReader is the read side of the world used by physics and picking.
type BlockReader interface {
	Get(x, y, z int) BlockType
}

// ChunkStore manages the storage and retrieval of chunks.
// A chunk is inserted only once it is fully generated and is never replaced.
type ChunkStore struct {
	chunks   map[ChunkCoord]*Chunk
	mu       sync.RWMutex
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates a new chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[ChunkCoord]*Chunk),
	}
}

// Chunk returns the chunk at coord, if present.
func (cs *ChunkStore) Chunk(coord ChunkCoord) (*Chunk, bool) {
	cs.mu.RLock()
	ch, ok := cs.chunks[coord]
	cs.mu.RUnlock()
	return ch, ok
}

// HasChunk checks if a chunk exists.
func (cs *ChunkStore) HasChunk(coord ChunkCoord) bool {
	cs.mu.RLock()
	_, exists := cs.chunks[coord]
	cs.mu.RUnlock()
	return exists
}

// Insert adds a generated chunk. It returns false and leaves the store
// untouched if a chunk is already present at that coordinate.
func (cs *ChunkStore) Insert(chunk *Chunk) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if _, ok := cs.chunks[chunk.Coord]; ok {
		return false
	}
	cs.chunks[chunk.Coord] = chunk
	cs.modCount++
	return true
}

// ChunkAt returns the chunk containing the world block column (x, z).
func (cs *ChunkStore) ChunkAt(x, z int) (*Chunk, bool) {
	return cs.Chunk(ChunkCoordFor(x, z))
}

// Get returns the block type at the specified world coordinates.
// Missing chunks and heights outside [0,256) read as air.
func (cs *ChunkStore) Get(x, y, z int) BlockType {
	chunk, ok := cs.ChunkAt(x, z)
	if !ok {
		return BlockTypeAir
	}
	return chunk.Block(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ))
}

// IsAir checks if the block at the specified world coordinates is air.
func (cs *ChunkStore) IsAir(x, y, z int) bool {
	return cs.Get(x, y, z) == BlockTypeAir
}

// Set writes a block at world coordinates and reports whether it was stored.
// Writes into missing chunks or outside [0,256) are dropped.
func (cs *ChunkStore) Set(x, y, z int, val BlockType) bool {
	chunk, ok := cs.ChunkAt(x, z)
	if !ok {
		return false
	}
	return chunk.SetBlock(mod(x, ChunkSizeX), y, mod(z, ChunkSizeZ), val)
}

// Coords returns every stored coordinate in a stable order.
func (cs *ChunkStore) Coords() []ChunkCoord {
	cs.mu.RLock()
	out := make([]ChunkCoord, 0, len(cs.chunks))
	for c := range cs.chunks {
		out = append(out, c)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}

// Range calls fn for every stored chunk until fn returns false.
// fn must not insert into or evict from the store.
func (cs *ChunkStore) Range(fn func(*Chunk) bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	for _, ch := range cs.chunks {
		if !fn(ch) {
			return
		}
	}
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// EvictFarChunks removes chunks farther than radius (in chunks) from center
// and returns their coordinates.
func (cs *ChunkStore) EvictFarChunks(center ChunkCoord, radius int) []ChunkCoord {
	var removed []ChunkCoord
	cs.mu.Lock()
	for coord := range cs.chunks {
		dx := coord.X - center.X
		dz := coord.Z - center.Z
		if dx*dx+dz*dz > radius*radius {
			delete(cs.chunks, coord)
			cs.modCount++
			removed = append(removed, coord)
		}
	}
	cs.mu.Unlock()
	return removed
}
