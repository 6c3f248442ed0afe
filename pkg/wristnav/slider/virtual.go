package slider

import (
	"github.com/wristnav/wristnav/pkg/wristnav/internal"
	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
)

// Virtual is a software slider driven by the simulator and by tests.
type Virtual struct {
	core
}

// NewVirtual creates a slider posting its callbacks to sched.
func NewVirtual(sched scheduler.Scheduler) *Virtual {
	v := &Virtual{}
	v.sched = sched
	v.logger = internal.Component("slider")
	return v
}

// Touch puts a finger on the slider.
func (v *Virtual) Touch() {
	v.press()
}

// Slide reports a movement with the given raw speed. It is ignored unless
// the slider is touched.
func (v *Virtual) Slide(speed int) {
	v.change(speed)
}

// Lift takes the finger off the slider. The last speed stays readable so
// release handlers can start a fling.
func (v *Virtual) Lift() {
	v.release()
}
