// Package input adapts physical buttons to edge callbacks.
//
// An EdgeSource reports the falling (press) and rising (release) edges of
// one button, each stamped with the monotonic time it was seen. Sources do
// not debounce: bursts of edges are absorbed further up by the coalescers.
package input

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// EdgeHandler receives the time of an edge. Handlers run on the source's
// goroutine and must return quickly.
type EdgeHandler func(at time.Time)

// EdgeSource is a button that reports edges.
type EdgeSource interface {
	OnFall(h EdgeHandler)
	OnRise(h EdgeHandler)
}

// handlers is the registration and dispatch shared by every source.
type handlers struct {
	mu   sync.Mutex
	fall EdgeHandler
	rise EdgeHandler
	last atomic.Time
}

func (h *handlers) OnFall(fn EdgeHandler) {
	h.mu.Lock()
	h.fall = fn
	h.mu.Unlock()
}

func (h *handlers) OnRise(fn EdgeHandler) {
	h.mu.Lock()
	h.rise = fn
	h.mu.Unlock()
}

// LastEdge returns the time of the most recent edge, zero if none.
func (h *handlers) LastEdge() time.Time {
	return h.last.Load()
}

func (h *handlers) edge(pressed bool, at time.Time) {
	h.last.Store(at)

	h.mu.Lock()
	fn := h.rise
	if pressed {
		fn = h.fall
	}
	h.mu.Unlock()

	if fn != nil {
		fn(at)
	}
}

// Virtual is a software button, used by the simulator and in tests.
type Virtual struct {
	handlers
	now func() time.Time
}

// NewVirtual creates a virtual button stamping edges with now. A nil now
// uses time.Now.
func NewVirtual(now func() time.Time) *Virtual {
	if now == nil {
		now = time.Now
	}
	return &Virtual{now: now}
}

// Press emits a falling edge.
func (v *Virtual) Press() {
	v.edge(true, v.now())
}

// Release emits a rising edge.
func (v *Virtual) Release() {
	v.edge(false, v.now())
}
