package world

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// NoisePeriod is the tiling period applied to coordinates when sampling with wrap.
const NoisePeriod = 256.0

const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// NoiseSource is a seeded, deterministic 3D noise field.
//
// With normalize the result is mapped into [0,1], otherwise it is signed and
// roughly within [-1,1]. With wrap every coordinate is folded into
// [0, NoisePeriod) first, so the field tiles.
type NoiseSource interface {
	Sample(x, y, z float64, wrap, normalize bool) float64
}

// SampleNoise samples gradient noise for a seed without keeping a source around.
// Generators sample millions of points and should hold a PerlinNoise instead.
func SampleNoise(seed int64, x, y, z float64, wrap, normalize bool) float64 {
	return NewPerlinNoise(seed).Sample(x, y, z, wrap, normalize)
}

// PerlinNoise is multi-octave gradient noise backed by go-perlin.
type PerlinNoise struct {
	p     *perlin.Perlin
	bound float64
}

// NewPerlinNoise creates gradient noise for the given seed.
func NewPerlinNoise(seed int64) *PerlinNoise {
	bound := 0.0
	amp := 1.0
	for range perlinOctaves {
		bound += amp
		amp /= perlinAlpha
	}
	return &PerlinNoise{
		p:     perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		bound: bound,
	}
}

func (n *PerlinNoise) Sample(x, y, z float64, wrap, normalize bool) float64 {
	if wrap {
		x, y, z = wrapCoord(x), wrapCoord(y), wrapCoord(z)
	}
	v := n.p.Noise3D(x, y, z)
	if normalize {
		return clamp01((v/n.bound + 1) / 2)
	}
	return v
}

// ValueNoise is hashed lattice value noise. At integer coordinates it yields
// the lattice value itself, uniformly distributed in [0,1], which makes it
// suitable for per-column feature placement.
type ValueNoise struct {
	seed int64
}

// NewValueNoise creates value noise for the given seed.
func NewValueNoise(seed int64) *ValueNoise {
	return &ValueNoise{seed: seed}
}

func (n *ValueNoise) Sample(x, y, z float64, wrap, normalize bool) float64 {
	if wrap {
		x, y, z = wrapCoord(x), wrapCoord(y), wrapCoord(z)
	}
	v := valueNoise3D(x, y, z, n.seed, wrap)
	if normalize {
		return v
	}
	return v*2 - 1
}

func wrapCoord(v float64) float64 {
	v = math.Mod(v, NoisePeriod)
	if v < 0 {
		v += NoisePeriod
	}
	return v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// fade function is used for smoothing (6t^5 - 15t^4 + 10t^3)
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// hash3 is a SplitMix64 style integer hash, stable across runs for the same inputs.
func hash3(x, y, z int64, seed int64) uint64 {
	v := uint64(x)*0x9E3779B97F4A7C15 + uint64(y)*0x517CC1B727220A95 + uint64(z)*0x6C62272E07BB0142 + uint64(seed)
	v += 0x9E3779B97F4A7C15
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	v = v ^ (v >> 31)
	return v
}

func latticeValue3D(x, y, z int64, seed int64) float64 {
	h := hash3(x, y, z, seed)
	return float64(h&0xFFFFFFFF) / float64(0xFFFFFFFF)
}

// valueNoise3D interpolates the eight surrounding lattice values. With
// periodic the lattice indices repeat every NoisePeriod cells.
func valueNoise3D(x, y, z float64, seed int64, periodic bool) float64 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	z0 := math.Floor(z)
	ix, iy, iz := int64(x0), int64(y0), int64(z0)

	fx := fade(x - x0)
	fy := fade(y - y0)
	fz := fade(z - z0)

	at := func(i, j, k int64) float64 {
		if periodic {
			i, j, k = i%int64(NoisePeriod), j%int64(NoisePeriod), k%int64(NoisePeriod)
		}
		return latticeValue3D(i, j, k, seed)
	}

	v000 := at(ix, iy, iz)
	v100 := at(ix+1, iy, iz)
	v010 := at(ix, iy+1, iz)
	v110 := at(ix+1, iy+1, iz)
	v001 := at(ix, iy, iz+1)
	v101 := at(ix+1, iy, iz+1)
	v011 := at(ix, iy+1, iz+1)
	v111 := at(ix+1, iy+1, iz+1)

	i00 := lerp(v000, v100, fx)
	i10 := lerp(v010, v110, fx)
	i01 := lerp(v001, v101, fx)
	i11 := lerp(v011, v111, fx)

	i0 := lerp(i00, i10, fy)
	i1 := lerp(i01, i11, fy)
	return lerp(i0, i1, fz) // [0,1]
}
