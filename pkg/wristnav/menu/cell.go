package menu

import (
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

// Filler is an empty cell padding either end of a table.
type Filler struct {
	view.Base
}

// TextCell draws an optional icon followed by a label, vertically centred
// in the frame buffer it is given. The label is resolved on every render
// so a language switch shows up on the next frame.
type TextCell struct {
	view.Base
	Label func() string
	Icon  string
	Icons *IconCache
}

const (
	cellIconSize = 16
	cellGap      = 4
)

func (c *TextCell) RenderInto(fb *surface.FrameBuffer, xOffset, yOffset int) time.Duration {
	x := xOffset + cellGap
	if c.Icon != "" && c.Icons != nil {
		if bits, err := c.Icons.Get(c.Icon, cellIconSize); err == nil {
			fb.Blit(x, yOffset+(fb.Height()-cellIconSize)/2, bits)
			x += cellIconSize + cellGap
		}
	}
	if c.Label != nil {
		fb.DrawText(x, yOffset+(fb.Height()-surface.TextHeight())/2, c.Label(), true)
	}
	return view.NoRedraw
}
