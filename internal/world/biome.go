package world

// Biome selects the column fill rules and feature density of a terrain column.
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeDesert
	BiomeForest
)

func (b Biome) String() string {
	switch b {
	case BiomeDesert:
		return "desert"
	case BiomeForest:
		return "forest"
	}
	return "plains"
}

// FeatureThreshold is the value noise level above which a column carries a
// feature: a cactus in deserts, a tree elsewhere.
func (b Biome) FeatureThreshold() float64 {
	switch b {
	case BiomeDesert:
		return 0.95
	case BiomeForest:
		return 0.92
	}
	return 0.98
}

// BiomeSettings partitions the normalized biome noise into bands.
type BiomeSettings struct {
	DesertBelow float64 // samples below are desert
	ForestAbove float64 // samples at or above are forest
}

// DefaultBiomeSettings splits the biome field roughly into thirds.
func DefaultBiomeSettings() BiomeSettings {
	return BiomeSettings{DesertBelow: 0.45, ForestAbove: 0.55}
}

// Select maps a normalized biome sample to a biome.
func (s BiomeSettings) Select(v float64) Biome {
	switch {
	case v < s.DesertBelow:
		return BiomeDesert
	case v >= s.ForestAbove:
		return BiomeForest
	}
	return BiomePlains
}
