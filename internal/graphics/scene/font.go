package scene

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FontCharacter describes a single glyph's placement in the atlas and its metrics.
type FontCharacter struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX, AtlasY float32
	Width, Height  float32
	// Offset of the bitmap from the pen position on the baseline
	BearingX, BearingY float32
	Advance            int
}

// FontAtlas is a baked single-channel glyph sheet for printable ASCII.
type FontAtlas struct {
	Image      *image.Alpha
	Characters map[rune]FontCharacter
	LineHeight int
}

const (
	firstGlyph = rune(32)
	lastGlyph  = rune(126)
	glyphPad   = 1
	atlasWidth = 256
)

// NewFontAtlas bakes the built-in 7x13 bitmap face.
func NewFontAtlas() *FontAtlas {
	return BakeFontAtlas(basicfont.Face7x13)
}

// BakeFontAtlas renders printable ASCII from face into a packed alpha image.
func BakeFontAtlas(face font.Face) *FontAtlas {
	metrics := face.Metrics()
	rowH := metrics.Height.Ceil() + glyphPad

	type glyph struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}
	var glyphs []glyph
	x, y := 0, 0
	for r := firstGlyph; r <= lastGlyph; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		if x+dr.Dx()+glyphPad > atlasWidth {
			x = 0
			y += rowH
		}
		x += dr.Dx() + glyphPad
		glyphs = append(glyphs, glyph{r, dr, mask, maskp, advance})
	}
	height := y + rowH

	atlas := &FontAtlas{
		Image:      image.NewAlpha(image.Rect(0, 0, atlasWidth, height)),
		Characters: make(map[rune]FontCharacter, len(glyphs)),
		LineHeight: metrics.Height.Ceil(),
	}

	x, y = 0, 0
	for _, g := range glyphs {
		gw, gh := g.dr.Dx(), g.dr.Dy()
		if x+gw+glyphPad > atlasWidth {
			x = 0
			y += rowH
		}
		if gw > 0 && gh > 0 && g.mask != nil {
			draw.Draw(atlas.Image, image.Rect(x, y, x+gw, y+gh), g.mask, g.maskp, draw.Src)
		}
		atlas.Characters[g.r] = FontCharacter{
			AtlasX:   float32(x),
			AtlasY:   float32(y),
			Width:    float32(gw),
			Height:   float32(gh),
			BearingX: float32(g.dr.Min.X),
			BearingY: float32(-g.dr.Min.Y),
			Advance:  g.advance.Round(),
		}
		x += gw + glyphPad
	}
	return atlas
}

// Measure returns the width and tallest glyph height of text at scale.
// Missing glyphs advance like a space.
func (a *FontAtlas) Measure(text string, scale float32) (float32, float32) {
	var width, height float32
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			width += float32(a.Characters[' '].Advance) * scale
			continue
		}
		width += float32(fc.Advance) * scale
		height = max(height, fc.Height*scale)
	}
	return width, height
}

// Vertices lays out text with its baseline at y as two triangles per glyph.
// Each vertex is x, y, u, v with y growing downward.
func (a *FontAtlas) Vertices(text string, x, y, scale float32) []float32 {
	w := float32(a.Image.Rect.Dx())
	h := float32(a.Image.Rect.Dy())
	out := make([]float32, 0, len(text)*6*4)
	for _, r := range text {
		fc, ok := a.Characters[r]
		if !ok {
			x += float32(a.Characters[' '].Advance) * scale
			continue
		}
		if fc.Width > 0 && fc.Height > 0 {
			x0 := x + fc.BearingX*scale
			y0 := y - fc.BearingY*scale
			x1 := x0 + fc.Width*scale
			y1 := y0 + fc.Height*scale
			u0, v0 := fc.AtlasX/w, fc.AtlasY/h
			u1, v1 := (fc.AtlasX+fc.Width)/w, (fc.AtlasY+fc.Height)/h
			out = append(out,
				x0, y1, u0, v1,
				x0, y0, u0, v0,
				x1, y0, u1, v0,
				x0, y1, u0, v1,
				x1, y0, u1, v0,
				x1, y1, u1, v1,
			)
		}
		x += float32(fc.Advance) * scale
	}
	return out
}
