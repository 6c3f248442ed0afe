package surface

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the bitmap font every view draws text with.
var Face font.Face = basicfont.Face7x13

// TextHeight is the line height of Face in pixels.
func TextHeight() int {
	return Face.Metrics().Height.Ceil()
}

// TextWidth returns the advance of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(Face, s).Ceil()
}

// DrawText draws s with its top-left corner at (x, y) and returns the x
// coordinate after the last glyph. on selects lit or cleared pixels.
func (fb *FrameBuffer) DrawText(x, y int, s string, on bool) int {
	src := image.NewUniform(color.Black)
	if on {
		src = image.NewUniform(color.White)
	}
	d := &font.Drawer{
		Dst:  fb,
		Src:  src,
		Face: Face,
		Dot:  fixed.P(x, y+Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
	return d.Dot.X.Ceil()
}

// DrawTextScaled draws s magnified by scale, each font pixel becoming a
// scale x scale block.
func (fb *FrameBuffer) DrawTextScaled(x, y int, s string, scale int, on bool) int {
	if scale <= 1 {
		return fb.DrawText(x, y, s, on)
	}
	glyphs := New(TextWidth(s), TextHeight())
	glyphs.DrawText(0, 0, s, true)
	for gy := 0; gy < glyphs.Height(); gy++ {
		for gx := 0; gx < glyphs.Width(); gx++ {
			if glyphs.Pixel(gx, gy) {
				px, py := x+gx*scale, y+gy*scale
				fb.FillRect(px, px+scale, py, py+scale, on)
			}
		}
	}
	return x + glyphs.Width()*scale
}
