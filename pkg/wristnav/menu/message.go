package menu

import (
	"strings"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

// MessageView shows a title and a word wrapped text. Forward goes back.
type MessageView struct {
	view.Base
	Title func() string
	Text  func() string
}

// NewMessageView creates a message view with fixed strings.
func NewMessageView(title, text string) *MessageView {
	return &MessageView{
		Title: func() string { return title },
		Text:  func() string { return text },
	}
}

func (m *MessageView) Action() view.Action { return view.Back() }

func (m *MessageView) RenderInto(fb *surface.FrameBuffer, xOffset, yOffset int) time.Duration {
	screen := fb.Sub(xOffset, yOffset, constants.ScreenWidth, constants.ScreenHeight)
	screen.Clear()

	tb := constants.TitleBarHeight
	screen.FillRect(0, constants.ScreenWidth, 0, tb, true)
	if m.Title != nil {
		screen.Sub(constants.LeftMargin, 0, constants.ScreenWidth-constants.LeftMargin, tb).
			DrawText(0, -1, m.Title(), false)
	}

	if m.Text == nil {
		return view.NoRedraw
	}
	body := surface.Padding{Top: tb + 4, Left: constants.LeftMargin, Right: 4, Bottom: 4}.Inset(screen)
	y := 0
	for _, line := range wrap(m.Text(), body.Width()) {
		if y+surface.TextHeight() > body.Height() {
			break
		}
		body.DrawText(0, y, line, true)
		y += surface.TextHeight()
	}
	return view.NoRedraw
}

// wrap breaks text into lines no wider than width pixels. Words longer
// than a line are kept whole and clipped when drawn.
func wrap(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			candidate := word
			if line != "" {
				candidate = line + " " + word
			}
			if line != "" && surface.TextWidth(candidate) > width {
				lines = append(lines, line)
				line = word
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}
