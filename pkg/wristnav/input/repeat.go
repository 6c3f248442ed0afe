package input

import "time"

// Direction is a scroll direction produced by held keys.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return ""
	}
}

// Sign is -1 for up, +1 for down and 0 otherwise.
func (d Direction) Sign() int {
	switch d {
	case DirectionUp:
		return -1
	case DirectionDown:
		return 1
	default:
		return 0
	}
}

// Repeater turns held keys into repeated steps: one step on the first
// Update after the key goes down, another after delay, then one per
// interval. The simulator drives the virtual slider with it.
type Repeater struct {
	held struct {
		up, down bool
	}
	last        time.Time
	delay       time.Duration
	interval    time.Duration
	hasRepeated bool
	pending     Direction
}

// NewRepeater creates a Repeater with a 300ms delay and 50ms interval.
func NewRepeater() *Repeater {
	return NewRepeaterWithTiming(300*time.Millisecond, 50*time.Millisecond)
}

// NewRepeaterWithTiming creates a Repeater with custom timing.
func NewRepeaterWithTiming(delay, interval time.Duration) *Repeater {
	return &Repeater{delay: delay, interval: interval}
}

// SetHeld updates the held state of a direction at time now.
func (r *Repeater) SetHeld(d Direction, held bool, now time.Time) {
	switch d {
	case DirectionUp:
		r.held.up = held
	case DirectionDown:
		r.held.down = held
	default:
		return
	}
	if held {
		r.pending = d
		r.last = now
	}
	r.hasRepeated = false
}

// IsHeld reports whether any direction is held.
func (r *Repeater) IsHeld() bool {
	return r.held.up || r.held.down
}

// HeldDirection returns the held direction, up winning over down.
func (r *Repeater) HeldDirection() Direction {
	if r.held.up {
		return DirectionUp
	}
	if r.held.down {
		return DirectionDown
	}
	return DirectionNone
}

// Update returns the direction to step at time now, or DirectionNone.
// Call it once per frame.
func (r *Repeater) Update(now time.Time) Direction {
	if p := r.pending; p != DirectionNone {
		r.pending = DirectionNone
		return p
	}
	if !r.IsHeld() {
		r.hasRepeated = false
		return DirectionNone
	}

	threshold := r.interval
	if !r.hasRepeated {
		threshold = r.delay
	}
	if now.Sub(r.last) >= threshold {
		r.last = now
		r.hasRepeated = true
		return r.HeldDirection()
	}
	return DirectionNone
}

// Reset clears held keys and timing state.
func (r *Repeater) Reset() {
	r.held.up = false
	r.held.down = false
	r.hasRepeated = false
	r.pending = DirectionNone
}
