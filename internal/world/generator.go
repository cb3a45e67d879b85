package world

import (
	"math"
	"math/rand/v2"

	"mini-voxel/internal/profiling"
)

// TerrainGenerator fills chunks with terrain. Implementations must be safe to
// call from a goroutine other than the one reading the ChunkStore and must
// return the same blocks for the same coordinate.
type TerrainGenerator interface {
	Generate(coord ChunkCoord) *Chunk
	HeightAt(worldX, worldZ int) int
}

const (
	minTerrainHeight = 1
	maxTerrainHeight = 250

	biomeScale   = 0.001
	featureScale = 100.0
	// Tree sites within this horizontal radius can drop leaves into a column.
	canopyReach = 3
	// Leaves are only considered this far above the surface.
	canopyHeight = 15
)

// heightOctave is one term of the height sum: amplitude * n(x*scale, 1, z*scale).
type heightOctave struct {
	amplitude float64
	scale     float64
}

var heightOctaves = [...]heightOctave{
	{amplitude: 20, scale: 0.01},  // bumps
	{amplitude: 7, scale: 0.05},   // hills
	{amplitude: 80, scale: 0.001}, // mountains
}

const baseHeight = 100

// Generator is the biome terrain generator.
type Generator struct {
	seed    int64
	terrain NoiseSource
	biome   NoiseSource
	feature NoiseSource
	biomes  BiomeSettings
}

// NewGenerator creates a generator for seed with the given biome bands.
func NewGenerator(seed int64, biomes BiomeSettings) *Generator {
	return &Generator{
		seed:    seed,
		terrain: NewPerlinNoise(seed),
		biome:   NewPerlinNoise(seed ^ 0x5DEECE66D),
		feature: NewValueNoise(seed),
		biomes:  biomes,
	}
}

// HeightAt returns the terrain height of a column. The surface block sits at
// height-1 and features start at height.
func (g *Generator) HeightAt(worldX, worldZ int) int {
	x, z := float64(worldX), float64(worldZ)
	sum := 0.0
	for _, o := range heightOctaves {
		sum += g.terrain.Sample(x*o.scale, 1, z*o.scale, false, true) * o.amplitude
	}
	h := int(sum + baseHeight)
	if h < minTerrainHeight {
		return minTerrainHeight
	}
	if h > maxTerrainHeight {
		return maxTerrainHeight
	}
	return h
}

// BiomeAt returns the biome of a column.
func (g *Generator) BiomeAt(worldX, worldZ int) Biome {
	v := g.biome.Sample(float64(worldX)*biomeScale, 1, float64(worldZ)*biomeScale, false, true)
	return g.biomes.Select(v)
}

func (g *Generator) featureValue(worldX, worldZ int) float64 {
	return g.feature.Sample(float64(worldX)*featureScale, 10, float64(worldZ)*featureScale, false, true)
}

func (g *Generator) treeSize(worldX, worldZ int) int {
	return int(g.feature.Sample(float64(worldX)*featureScale, 20, float64(worldZ)*featureScale, false, true)*2) + 5
}

// cactusHeight draws 1..3 from a stream keyed by seed and column, so a
// column always grows the same cactus.
func (g *Generator) cactusHeight(worldX, worldZ int) int {
	r := rand.New(rand.NewPCG(uint64(g.seed), hash3(int64(worldX), 0, int64(worldZ), g.seed)))
	return r.IntN(3) + 1
}

// treeSite is a trunk whose canopy may reach a column.
type treeSite struct {
	x, z   int
	top    int // trunk top: site height + size
	radius float64
}

// columnInfo caches per-column values over the chunk footprint padded by
// canopyReach on every side.
type columnInfo struct {
	height  int
	feature float64
}

const paddedSize = ChunkSizeX + 2*canopyReach

// Generate builds the chunk at coord.
func (g *Generator) Generate(coord ChunkCoord) *Chunk {
	defer profiling.Track("world.Generate")()

	c := NewChunk(coord)
	baseX, baseZ := coord.Origin()

	var cols [paddedSize][paddedSize]columnInfo
	for px := range paddedSize {
		for pz := range paddedSize {
			wx := baseX + px - canopyReach
			wz := baseZ + pz - canopyReach
			cols[px][pz] = columnInfo{
				height:  g.HeightAt(wx, wz),
				feature: g.featureValue(wx, wz),
			}
		}
	}

	var sites []treeSite
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			wx, wz := baseX+lx, baseZ+lz
			col := cols[lx+canopyReach][lz+canopyReach]
			biome := g.BiomeAt(wx, wz)
			threshold := biome.FeatureThreshold()

			if biome == BiomeDesert {
				g.fillDesert(c, lx, lz, col.height)
				if col.feature > threshold {
					n := g.cactusHeight(wx, wz)
					for i := range n {
						c.SetBlock(lx, col.height+i, lz, BlockTypeCactus)
					}
				}
				continue
			}

			sites = sites[:0]
			for dx := -canopyReach; dx <= canopyReach; dx++ {
				for dz := -canopyReach; dz <= canopyReach; dz++ {
					n := cols[lx+canopyReach+dx][lz+canopyReach+dz]
					if n.feature <= threshold {
						continue
					}
					size := g.treeSize(wx+dx, wz+dz)
					sites = append(sites, treeSite{
						x:      wx + dx,
						z:      wz + dz,
						top:    n.height + size,
						radius: float64(size) * 0.5,
					})
				}
			}
			fillGrassland(c, lx, lz, wx, wz, col.height, sites)

			if col.feature > threshold {
				size := g.treeSize(wx, wz)
				for i := range size {
					c.SetBlock(lx, col.height+i, lz, BlockTypeLog)
				}
			}
		}
	}
	return c
}

func (g *Generator) fillDesert(c *Chunk, lx, lz, height int) {
	c.SetBlock(lx, 0, lz, BlockTypeBedrock)
	for y := 1; y < height && y < ChunkSizeY; y++ {
		switch {
		case y < height-5:
			c.SetBlock(lx, y, lz, BlockTypeStone)
		case y < height-4:
			c.SetBlock(lx, y, lz, BlockTypeSandstone)
		default:
			c.SetBlock(lx, y, lz, BlockTypeSand)
		}
	}
}

// fillGrassland writes the plains/forest column and any leaves from nearby
// tree sites.
func fillGrassland(c *Chunk, lx, lz, wx, wz, height int, sites []treeSite) {
	c.SetBlock(lx, 0, lz, BlockTypeBedrock)
	for y := 1; y < height && y < ChunkSizeY; y++ {
		switch {
		case y < height-4:
			c.SetBlock(lx, y, lz, BlockTypeStone)
		case y < height-1:
			c.SetBlock(lx, y, lz, BlockTypeDirt)
		default:
			c.SetBlock(lx, y, lz, BlockTypeGrass)
		}
	}
	if len(sites) == 0 {
		return
	}
	for y := height + 1; y < height+canopyHeight && y < ChunkSizeY; y++ {
		for _, s := range sites {
			dx := float64(s.x - wx)
			dy := float64(s.top - y)
			dz := float64(s.z - wz)
			if math.Sqrt(dx*dx+dy*dy+dz*dz) < s.radius {
				c.SetBlock(lx, y, lz, BlockTypeLeaves)
				break
			}
		}
	}
}

// FlatGenerator produces a flat world: bedrock at y=0, dirt up to height-1
// and grass at height.
type FlatGenerator struct {
	height int
}

// NewFlatGenerator creates a flat generator. height is clamped to the chunk.
func NewFlatGenerator(height int) *FlatGenerator {
	if height < 1 {
		height = 1
	}
	if height >= ChunkSizeY {
		height = ChunkSizeY - 1
	}
	return &FlatGenerator{height: height}
}

// HeightAt returns the first air cell above the grass, matching Generator.
func (g *FlatGenerator) HeightAt(worldX, worldZ int) int {
	return g.height + 1
}

// Generate fills a chunk with bedrock, dirt and a grass top at the flat height.
func (g *FlatGenerator) Generate(coord ChunkCoord) *Chunk {
	c := NewChunk(coord)
	for lx := range ChunkSizeX {
		for lz := range ChunkSizeZ {
			c.SetBlock(lx, 0, lz, BlockTypeBedrock)
			for y := 1; y < g.height; y++ {
				c.SetBlock(lx, y, lz, BlockTypeDirt)
			}
			c.SetBlock(lx, g.height, lz, BlockTypeGrass)
		}
	}
	return c
}
