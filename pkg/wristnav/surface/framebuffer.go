// Package surface implements the monochrome render target views draw into.
package surface

import (
	"image"
	"image/color"
	"strings"
)

// FrameBuffer is a one bit per pixel drawing surface. Sub returns windows
// that share pixels with their parent, so a view can be handed a region of
// the screen and draw in its own coordinates. Writes outside a window are
// clipped.
//
// FrameBuffer implements draw.Image so the image/draw, font and rasterizer
// packages can target it directly; colors are thresholded at mid grey.
type FrameBuffer struct {
	pix    []bool
	stride int

	origin image.Point     // window origin in root coordinates
	size   image.Point     // window size
	clip   image.Rectangle // writable area in root coordinates
}

// New allocates a cleared frame buffer.
func New(width, height int) *FrameBuffer {
	return &FrameBuffer{
		pix:    make([]bool, width*height),
		stride: width,
		size:   image.Pt(width, height),
		clip:   image.Rect(0, 0, width, height),
	}
}

func (fb *FrameBuffer) Width() int  { return fb.size.X }
func (fb *FrameBuffer) Height() int { return fb.size.Y }

// Sub returns the window at (x, y) of the given size, relative to fb.
// Negative coordinates are allowed; the hidden part is clipped.
func (fb *FrameBuffer) Sub(x, y, width, height int) *FrameBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	origin := fb.origin.Add(image.Pt(x, y))
	r := image.Rectangle{Min: origin, Max: origin.Add(image.Pt(width, height))}
	return &FrameBuffer{
		pix:    fb.pix,
		stride: fb.stride,
		origin: origin,
		size:   image.Pt(width, height),
		clip:   r.Intersect(fb.clip),
	}
}

func (fb *FrameBuffer) index(x, y int) (int, bool) {
	p := fb.origin.Add(image.Pt(x, y))
	if !p.In(fb.clip) {
		return 0, false
	}
	return p.Y*fb.stride + p.X, true
}

// Pixel reports whether the pixel at (x, y) is lit.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	if i, ok := fb.index(x, y); ok {
		return fb.pix[i]
	}
	return false
}

// SetPixel lights or clears the pixel at (x, y).
func (fb *FrameBuffer) SetPixel(x, y int, on bool) {
	if i, ok := fb.index(x, y); ok {
		fb.pix[i] = on
	}
}

// FillRect sets every pixel in [x0, x1) x [y0, y1).
func (fb *FrameBuffer) FillRect(x0, x1, y0, y1 int, on bool) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			fb.SetPixel(x, y, on)
		}
	}
}

// InvertRect flips every pixel in [x0, x1) x [y0, y1).
func (fb *FrameBuffer) InvertRect(x0, x1, y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if i, ok := fb.index(x, y); ok {
				fb.pix[i] = !fb.pix[i]
			}
		}
	}
}

// Blit copies the lit pixels of src to fb with src's corner at (x, y).
// Unlit source pixels leave fb untouched.
func (fb *FrameBuffer) Blit(x, y int, src *FrameBuffer) {
	for sy := 0; sy < src.Height(); sy++ {
		for sx := 0; sx < src.Width(); sx++ {
			if src.Pixel(sx, sy) {
				fb.SetPixel(x+sx, y+sy, true)
			}
		}
	}
}

// Clear turns every pixel of the window off.
func (fb *FrameBuffer) Clear() {
	fb.FillRect(0, fb.size.X, 0, fb.size.Y, false)
}

// Lit counts the lit pixels of the window.
func (fb *FrameBuffer) Lit() int {
	n := 0
	for y := 0; y < fb.size.Y; y++ {
		for x := 0; x < fb.size.X; x++ {
			if fb.Pixel(x, y) {
				n++
			}
		}
	}
	return n
}

func (fb *FrameBuffer) ColorModel() color.Model { return color.GrayModel }

func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rectangle{Max: fb.size}
}

func (fb *FrameBuffer) At(x, y int) color.Color {
	if fb.Pixel(x, y) {
		return color.White
	}
	return color.Black
}

func (fb *FrameBuffer) Set(x, y int, c color.Color) {
	g := color.GrayModel.Convert(c).(color.Gray)
	fb.SetPixel(x, y, g.Y >= 0x80)
}

// String renders the window as text, '#' for lit pixels. Handy in tests.
func (fb *FrameBuffer) String() string {
	var b strings.Builder
	for y := 0; y < fb.size.Y; y++ {
		for x := 0; x < fb.size.X; x++ {
			if fb.Pixel(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
