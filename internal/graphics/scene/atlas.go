package scene

import (
	"image"
	"image/color"

	"mini-voxel/internal/meshing"
)

// TilePixels is the edge length of one atlas tile in pixels.
const TilePixels = 16

// AtlasPixels is the edge length of the whole block atlas.
const AtlasPixels = meshing.AtlasTiles * TilePixels

type pattern uint8

const (
	patternSpeckle pattern = iota
	patternGrassSide
	patternBark
	patternRings
	patternHoles
	patternBands
	patternBoards
	patternCobble
	patternChecker
)

type tileStyle struct {
	base, accent color.RGBA
	pattern      pattern
}

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{r, g, b, 255}
}

var tileStyles = map[meshing.Tile]tileStyle{
	{U: 1, V: 0}:   {base: rgb(125, 125, 125), pattern: patternSpeckle},
	{U: 2, V: 0}:   {base: rgb(134, 96, 67), pattern: patternSpeckle},
	{U: 3, V: 0}:   {base: rgb(134, 96, 67), accent: rgb(94, 157, 52), pattern: patternGrassSide},
	{U: 8, V: 2}:   {base: rgb(94, 157, 52), pattern: patternSpeckle},
	{U: 1, V: 1}:   {base: rgb(60, 60, 60), accent: rgb(20, 20, 20), pattern: patternCobble},
	{U: 4, V: 1}:   {base: rgb(102, 81, 51), accent: rgb(70, 54, 32), pattern: patternBark},
	{U: 5, V: 1}:   {base: rgb(164, 131, 84), accent: rgb(102, 81, 51), pattern: patternRings},
	{U: 4, V: 3}:   {base: rgb(60, 120, 40), pattern: patternHoles},
	{U: 2, V: 1}:   {base: rgb(219, 207, 163), pattern: patternSpeckle},
	{U: 0, V: 11}:  {base: rgb(216, 203, 155), pattern: patternSpeckle},
	{U: 0, V: 12}:  {base: rgb(209, 196, 146), accent: rgb(190, 176, 126), pattern: patternBands},
	{U: 0, V: 13}:  {base: rgb(200, 186, 136), pattern: patternSpeckle},
	{U: 5, V: 4}:   {base: rgb(98, 150, 60), accent: rgb(70, 110, 40), pattern: patternRings},
	{U: 6, V: 4}:   {base: rgb(88, 141, 52), accent: rgb(60, 100, 34), pattern: patternBark},
	{U: 7, V: 4}:   {base: rgb(78, 120, 46), pattern: patternSpeckle},
	{U: 0, V: 5}:   {base: rgb(120, 92, 52), accent: rgb(255, 200, 60), pattern: patternBands},
	{U: 4, V: 0}:   {base: rgb(162, 130, 78), accent: rgb(120, 94, 55), pattern: patternBoards},
	{U: 0, V: 1}:   {base: rgb(122, 122, 122), accent: rgb(80, 80, 80), pattern: patternCobble},
	{U: 12, V: 14}: {base: rgb(248, 0, 248), accent: rgb(0, 0, 0), pattern: patternChecker},
}

// HasTile reports whether the atlas paints a tile.
func HasTile(t meshing.Tile) bool {
	_, ok := tileStyles[t]
	return ok
}

// BuildBlockAtlas paints the block atlas. Unused tiles stay transparent;
// leaves carry transparent holes for alpha testing.
func BuildBlockAtlas() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, AtlasPixels, AtlasPixels))
	for tile, style := range tileStyles {
		paintTile(img, tile, style)
	}
	return img
}

func paintTile(img *image.RGBA, tile meshing.Tile, s tileStyle) {
	ox, oy := tile.U*TilePixels, tile.V*TilePixels
	for y := 0; y < TilePixels; y++ {
		for x := 0; x < TilePixels; x++ {
			img.SetRGBA(ox+x, oy+y, s.pixel(x, y, pixelHash(ox+x, oy+y)))
		}
	}
}

func (s tileStyle) pixel(x, y int, h uint32) color.RGBA {
	c := s.base
	switch s.pattern {
	case patternGrassSide:
		if y < 3+int(h%3) {
			c = s.accent
		}
	case patternBark:
		if x%4 == 0 || h%7 == 0 {
			c = s.accent
		}
	case patternRings:
		dx, dy := x*2-TilePixels+1, y*2-TilePixels+1
		if r := (dx*dx + dy*dy) / 16; r%6 < 2 || x == 0 || y == 0 || x == TilePixels-1 || y == TilePixels-1 {
			c = s.accent
		}
	case patternHoles:
		if h%4 == 0 {
			return color.RGBA{}
		}
	case patternBands:
		if y%5 == 0 {
			c = s.accent
		}
	case patternBoards:
		if y%4 == 3 || (x == (y/4*5)%TilePixels) {
			c = s.accent
		}
	case patternCobble:
		if (x+y/4*3)%6 == 0 || y%4 == 0 {
			c = s.accent
		}
	case patternChecker:
		if (x/8+y/8)%2 == 1 {
			c = s.accent
		}
	}
	return shade(c, int(h%24)-12)
}

func shade(c color.RGBA, d int) color.RGBA {
	clamp := func(v int) uint8 {
		return uint8(min(max(v, 0), 255))
	}
	return color.RGBA{clamp(int(c.R) + d), clamp(int(c.G) + d), clamp(int(c.B) + d), c.A}
}

func pixelHash(x, y int) uint32 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	return h ^ (h >> 16)
}
