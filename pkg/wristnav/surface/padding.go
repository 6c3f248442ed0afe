package surface

// Padding defines spacing on all four sides of a region.
type Padding struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// UniformPadding creates a Padding with the same value on all sides.
func UniformPadding(value int) Padding {
	return Padding{
		Top:    value,
		Right:  value,
		Bottom: value,
		Left:   value,
	}
}

// Inset returns the window of fb left after removing p from each side.
func (p Padding) Inset(fb *FrameBuffer) *FrameBuffer {
	return fb.Sub(p.Left, p.Top, fb.Width()-p.Left-p.Right, fb.Height()-p.Top-p.Bottom)
}
