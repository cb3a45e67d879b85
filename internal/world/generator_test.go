package world

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewGenerator(123, DefaultBiomeSettings())
}

func TestFlatGeneratorImplementsInterface(t *testing.T) {
	var _ TerrainGenerator = NewFlatGenerator(10)
}

func TestFlatGeneratorHeight(t *testing.T) {
	g := NewFlatGenerator(10)
	// Grass sits at y=10, so the first free cell is 11.
	if h := g.HeightAt(0, 0); h != 11 {
		t.Errorf("Expected height 11, got %d", h)
	}
	if h := g.HeightAt(100, -50); h != 11 {
		t.Errorf("Expected height 11, got %d", h)
	}
}

func TestFlatGeneratorPopulate(t *testing.T) {
	c := NewFlatGenerator(5).Generate(ChunkCoord{X: -1, Z: 2})

	if b := c.Block(0, 0, 0); b != BlockTypeBedrock {
		t.Errorf("Expected Bedrock at 0,0,0, got %v", b)
	}
	for y := 1; y < 5; y++ {
		if b := c.Block(3, y, 7); b != BlockTypeDirt {
			t.Errorf("Expected Dirt at 3,%d,7, got %v", y, b)
		}
	}
	if b := c.Block(15, 5, 15); b != BlockTypeGrass {
		t.Errorf("Expected Grass at 15,5,15, got %v", b)
	}
	if b := c.Block(0, 6, 0); b != BlockTypeAir {
		t.Errorf("Expected Air at 0,6,0, got %v", b)
	}
	assert.Equal(t, ChunkCoord{X: -1, Z: 2}, c.Coord)
}

// hashChunkBlocks computes a SHA-256 hash of all blocks in a chunk
func hashChunkBlocks(c *Chunk) [32]byte {
	h := sha256.New()
	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			col := make([]byte, ChunkSizeY)
			for ly := 0; ly < ChunkSizeY; ly++ {
				col[ly] = byte(c.Block(lx, ly, lz))
			}
			h.Write(col)
		}
	}
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}

// TestGeneratorDeterminism verifies the same seed produces identical terrain,
// cacti included, across independent generator instances.
func TestGeneratorDeterminism(t *testing.T) {
	seed := int64(12345)
	coords := []ChunkCoord{{0, 0}, {-3, 7}, {40, -12}}
	for _, coord := range coords {
		first := hashChunkBlocks(NewGenerator(seed, DefaultBiomeSettings()).Generate(coord))
		for i := 0; i < 3; i++ {
			got := hashChunkBlocks(NewGenerator(seed, DefaultBiomeSettings()).Generate(coord))
			require.Equal(t, first, got, "chunk %v differs on run %d", coord, i)
		}
	}
}

func TestGeneratorDifferentSeedsDiffer(t *testing.T) {
	a := hashChunkBlocks(NewGenerator(1, DefaultBiomeSettings()).Generate(ChunkCoord{}))
	b := hashChunkBlocks(NewGenerator(2, DefaultBiomeSettings()).Generate(ChunkCoord{}))
	assert.NotEqual(t, a, b)
}

func TestGeneratorColumnLayers(t *testing.T) {
	g := NewGenerator(42, DefaultBiomeSettings())
	coord := ChunkCoord{X: 2, Z: -5}
	c := g.Generate(coord)
	baseX, baseZ := coord.Origin()

	for lx := 0; lx < ChunkSizeX; lx++ {
		for lz := 0; lz < ChunkSizeZ; lz++ {
			wx, wz := baseX+lx, baseZ+lz
			h := g.HeightAt(wx, wz)
			require.GreaterOrEqual(t, h, minTerrainHeight)
			require.LessOrEqual(t, h, maxTerrainHeight)

			assert.Equal(t, BlockTypeBedrock, c.Block(lx, 0, lz))
			if h > 6 {
				assert.Equal(t, BlockTypeStone, c.Block(lx, 1, lz), "column %d,%d", wx, wz)
			}

			top := c.Block(lx, h-1, lz)
			switch g.BiomeAt(wx, wz) {
			case BiomeDesert:
				assert.Equal(t, BlockTypeSand, top)
				assert.Equal(t, BlockTypeSandstone, c.Block(lx, h-5, lz))
				above := c.Block(lx, h, lz)
				assert.Contains(t, []BlockType{BlockTypeAir, BlockTypeCactus}, above)
			default:
				assert.Equal(t, BlockTypeGrass, top)
				assert.Equal(t, BlockTypeDirt, c.Block(lx, h-2, lz))
				assert.Equal(t, BlockTypeDirt, c.Block(lx, h-4, lz))
			}
		}
	}
}

func TestGeneratorPlacesFeatures(t *testing.T) {
	// Desert everywhere: every column above the feature threshold grows a cactus.
	desert := NewGenerator(8, BiomeSettings{DesertBelow: 2, ForestAbove: 3})
	// Forest everywhere.
	forest := NewGenerator(8, BiomeSettings{DesertBelow: -1, ForestAbove: -1})

	cacti, logs, leaves := 0, 0, 0
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			coord := ChunkCoord{X: x, Z: z}
			d := desert.Generate(coord)
			f := forest.Generate(coord)
			cacti += d.CountBlocks(BlockTypeCactus)
			logs += f.CountBlocks(BlockTypeLog)
			leaves += f.CountBlocks(BlockTypeLeaves)
			assert.Zero(t, d.CountBlocks(BlockTypeLog))
			assert.Zero(t, f.CountBlocks(BlockTypeCactus))
		}
	}
	assert.Positive(t, cacti)
	assert.Positive(t, logs)
	assert.Positive(t, leaves)
}

func TestCactusStacksAreOneToThree(t *testing.T) {
	g := NewGenerator(77, BiomeSettings{DesertBelow: 2, ForestAbove: 3})
	for x := -2; x <= 2; x++ {
		coord := ChunkCoord{X: x, Z: 1}
		c := g.Generate(coord)
		baseX, baseZ := coord.Origin()
		for lx := 0; lx < ChunkSizeX; lx++ {
			for lz := 0; lz < ChunkSizeZ; lz++ {
				h := g.HeightAt(baseX+lx, baseZ+lz)
				n := 0
				for c.Block(lx, h+n, lz) == BlockTypeCactus {
					n++
				}
				assert.LessOrEqual(t, n, 3)
				assert.Equal(t, BlockTypeAir, c.Block(lx, h+n, lz))
			}
		}
	}
}

func TestTrunkRisesFromSurface(t *testing.T) {
	g := NewGenerator(8, BiomeSettings{DesertBelow: -1, ForestAbove: -1})
	for x := -2; x <= 2; x++ {
		coord := ChunkCoord{X: x, Z: 0}
		c := g.Generate(coord)
		baseX, baseZ := coord.Origin()
		for lx := 0; lx < ChunkSizeX; lx++ {
			for lz := 0; lz < ChunkSizeZ; lz++ {
				h := g.HeightAt(baseX+lx, baseZ+lz)
				if c.Block(lx, h, lz) != BlockTypeLog {
					continue
				}
				size := g.treeSize(baseX+lx, baseZ+lz)
				assert.GreaterOrEqual(t, size, 5)
				assert.LessOrEqual(t, size, 7)
				for i := 0; i < size; i++ {
					assert.Equal(t, BlockTypeLog, c.Block(lx, h+i, lz))
				}
			}
		}
	}
}

func TestBiomeSettingsSelect(t *testing.T) {
	s := DefaultBiomeSettings()
	assert.Equal(t, BiomeDesert, s.Select(0.1))
	assert.Equal(t, BiomePlains, s.Select(0.5))
	assert.Equal(t, BiomeForest, s.Select(0.55))
	assert.Equal(t, BiomeForest, s.Select(0.9))
	assert.Equal(t, 0.95, BiomeDesert.FeatureThreshold())
	assert.Equal(t, 0.98, BiomePlains.FeatureThreshold())
	assert.Equal(t, 0.92, BiomeForest.FeatureThreshold())
	assert.Equal(t, "forest", BiomeForest.String())
}

func BenchmarkGenerate(b *testing.B) {
	g := NewGenerator(1, DefaultBiomeSettings())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.Generate(ChunkCoord{X: i % 8, Z: i / 8})
	}
}
