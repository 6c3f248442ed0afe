package router

import (
	"log/slog"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/constants"
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/surface"
	"github.com/wristnav/wristnav/pkg/wristnav/view"
)

// Direction is the way a transition slides.
type Direction int

const (
	Forward  Direction = iota // New view slides in from the right
	Backward                  // Previous view slides back in from the left
)

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Transition describes an animated change of the visible view.
type Transition struct {
	From      view.View
	To        view.View
	Direction Direction
	Start     time.Time
	Duration  time.Duration
}

// PowerHook is told when the stack goes idle (only the root left) and when
// it becomes interactive again. The slider implements it.
type PowerHook interface {
	Pause()
	Resume()
}

// Stack is the bottom-anchored sequence of views. The first view it is
// created with can never be removed; the last one is visible and receives
// input.
//
// Stack is not safe for concurrent use. All mutations are expected to come
// from the deferred task executor, which already serializes them.
type Stack struct {
	views   []view.View
	retired []view.View

	width          int
	transitionTime time.Duration
	frameInterval  time.Duration
	transition     *Transition

	power        PowerHook
	wakeup       func()
	onTransition func(Transition)
	now          func() time.Time
	logger       *slog.Logger
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithTransitionTime sets the push/pop animation length. Zero disables
// animation.
func WithTransitionTime(d time.Duration) StackOption {
	return func(s *Stack) { s.transitionTime = d }
}

// WithFrameInterval sets the redraw interval requested while a transition
// runs.
func WithFrameInterval(d time.Duration) StackOption {
	return func(s *Stack) { s.frameInterval = d }
}

// WithWidth sets the slide distance of transitions in pixels.
func WithWidth(width int) StackOption {
	return func(s *Stack) { s.width = width }
}

// WithPowerHook sets the collaborator paused on the root and resumed above it.
func WithPowerHook(p PowerHook) StackOption {
	return func(s *Stack) { s.power = p }
}

// WithClock replaces time.Now for transition timing.
func WithClock(now func() time.Time) StackOption {
	return func(s *Stack) { s.now = now }
}

// WithTransitionObserver registers fn to be called for every transition
// the stack starts.
func WithTransitionObserver(fn func(Transition)) StackOption {
	return func(s *Stack) { s.onTransition = fn }
}

func WithStackLogger(logger *slog.Logger) StackOption {
	return func(s *Stack) { s.logger = logger }
}

// NewStack creates a stack seeded with root. It panics if root is nil since
// a stack without a root has nothing to show.
func NewStack(root view.View, opts ...StackOption) *Stack {
	if root == nil {
		panic("router: stack root must not be nil")
	}
	s := &Stack{
		views:          []view.View{root},
		width:          constants.ScreenWidth,
		transitionTime: constants.DefaultTransitionTime,
		frameInterval:  constants.DefaultFrameInterval,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = internal.Component("stack")
	}
	root.Resume()
	return s
}

// Len returns the number of views, at least 1.
func (s *Stack) Len() int {
	return len(s.views)
}

// Top returns the visible view.
func (s *Stack) Top() view.View {
	return s.views[len(s.views)-1]
}

// Root returns the permanent bottom view.
func (s *Stack) Root() view.View {
	return s.views[0]
}

// Views returns a copy of the stack, bottom first.
func (s *Stack) Views() []view.View {
	out := make([]view.View, len(s.views))
	copy(out, s.views)
	return out
}

// Push makes v the visible view. A nil view is ignored.
func (s *Stack) Push(v view.View) {
	if v == nil {
		return
	}
	from := s.Top()
	from.Suspend()

	s.views = append(s.views, v)
	v.SetWakeup(s.wakeup)
	v.Resume()

	s.logger.Debug("push", "size", len(s.views))
	s.startTransition(from, v, Forward)

	if len(s.views) == 2 && s.power != nil {
		s.power.Resume()
	}
}

// Pop removes the visible view and reveals the one below it. The root is
// never popped: on a stack of one, Pop does nothing and returns false.
func (s *Stack) Pop() bool {
	if len(s.views) <= 1 {
		return false
	}
	from := s.Top()
	from.Suspend()

	s.views[len(s.views)-1] = nil
	s.views = s.views[:len(s.views)-1]
	s.retire(from)

	to := s.Top()
	to.Resume()

	s.logger.Debug("pop", "size", len(s.views))
	s.startTransition(from, to, Backward)

	if len(s.views) == 1 && s.power != nil {
		s.power.Pause()
	}
	return true
}

// Reset removes every view above the root at once, with a single
// transition from the visible view straight to the root. It returns false
// when only the root was shown.
func (s *Stack) Reset() bool {
	if len(s.views) <= 1 {
		return false
	}
	from := s.Top()
	from.Suspend()

	for i := len(s.views) - 1; i >= 1; i-- {
		s.retire(s.views[i])
		s.views[i] = nil
	}
	s.views = s.views[:1]

	root := s.Root()
	root.Resume()

	s.logger.Debug("reset")
	s.startTransition(from, root, Backward)

	if s.power != nil {
		s.power.Pause()
	}
	return true
}

// Action asks the visible view what the forward button should do.
func (s *Stack) Action() view.Action {
	return s.Top().Action()
}

// SetWakeup installs the redraw callback and hands it to every view.
func (s *Stack) SetWakeup(wakeup func()) {
	s.wakeup = wakeup
	for _, v := range s.views {
		v.SetWakeup(wakeup)
	}
}

// Transition returns the running transition, if any.
func (s *Stack) Transition() (Transition, bool) {
	if s.transition == nil {
		return Transition{}, false
	}
	return *s.transition, true
}

func (s *Stack) startTransition(from, to view.View, dir Direction) {
	// A transition still running is cut short; whatever it was animating
	// away is gone now.
	s.releaseRetired(from)

	t := Transition{
		From:      from,
		To:        to,
		Direction: dir,
		Start:     s.now(),
		Duration:  s.transitionTime,
	}
	if s.onTransition != nil {
		s.onTransition(t)
	}
	if t.Duration <= 0 {
		s.transition = nil
		s.releaseRetired(nil)
		return
	}
	s.transition = &t
}

// retire queues v for release once nothing draws it anymore.
func (s *Stack) retire(v view.View) {
	s.retired = append(s.retired, v)
}

// releaseRetired releases every retired view except keep, which is still
// needed to draw the outgoing side of a transition.
func (s *Stack) releaseRetired(keep view.View) {
	remaining := s.retired[:0]
	for _, v := range s.retired {
		if keep != nil && v == keep {
			remaining = append(remaining, v)
			continue
		}
		if r, ok := v.(view.Releaser); ok && !s.contains(v) {
			r.Release()
		}
	}
	clear(s.retired[len(remaining):])
	s.retired = remaining
}

func (s *Stack) contains(v view.View) bool {
	for _, live := range s.views {
		if live == v {
			return true
		}
	}
	return false
}

// RenderInto draws the visible view, or both sides of a running
// transition, and returns how soon the stack wants to be drawn again.
func (s *Stack) RenderInto(fb *surface.FrameBuffer, xOffset, yOffset int) time.Duration {
	if s.transition != nil {
		t := s.transition
		elapsed := s.now().Sub(t.Start)
		if elapsed < t.Duration {
			shift := int(int64(s.width) * int64(elapsed) / int64(t.Duration))
			fb.Clear()
			if t.Direction == Forward {
				t.From.RenderInto(fb, xOffset-shift, yOffset)
				t.To.RenderInto(fb, xOffset+s.width-shift, yOffset)
			} else {
				t.From.RenderInto(fb, xOffset+shift, yOffset)
				t.To.RenderInto(fb, xOffset-s.width+shift, yOffset)
			}
			return s.frameInterval
		}
		s.transition = nil
		s.releaseRetired(nil)
	}
	return s.Top().RenderInto(fb, xOffset, yOffset)
}
