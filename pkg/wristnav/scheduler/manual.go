package scheduler

import (
	"sync"
	"time"
)

// Manual is a deterministic Scheduler driven by the caller. Nothing runs
// until RunPending or Advance is called, which makes every interleaving of
// input edges and deferred tasks reproducible in tests and simulations.
//
// Manual keeps its own virtual clock starting at an arbitrary fixed instant.
// Tolerance is recorded but ignored: tasks run exactly at their deadline.
type Manual struct {
	mu       sync.Mutex
	q        queue
	now      time.Time
	executed int
}

// NewManual returns a Manual scheduler with unbounded capacity.
func NewManual() *Manual {
	return &Manual{
		q:   newQueue(0),
		now: time.Date(2016, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// SetCapacity bounds the number of queued tasks; zero means unbounded.
func (m *Manual) SetCapacity(n int) {
	m.mu.Lock()
	m.q.capacity = n
	m.mu.Unlock()
}

// Now returns the virtual time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Schedule(task func(), delay, tolerance time.Duration) (Handle, error) {
	if delay < 0 {
		delay = 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.q.add(task, m.now.Add(delay), tolerance)
}

func (m *Manual) Cancel(h Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.q.remove(h)
}

// Len returns the number of queued tasks.
func (m *Manual) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.q.timers)
}

// Executed returns how many tasks have run.
func (m *Manual) Executed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.executed
}

// RunNext runs the earliest task that is due at the current virtual time.
// It reports whether a task ran.
func (m *Manual) RunNext() bool {
	m.mu.Lock()
	head := m.q.peek()
	if head == nil || head.deadline.After(m.now) {
		m.mu.Unlock()
		return false
	}
	t := m.q.pop()
	m.mu.Unlock()

	t.task()

	m.mu.Lock()
	m.executed++
	m.mu.Unlock()
	return true
}

// RunPending runs due tasks, including the ones they post with no delay,
// until nothing is due. It returns the number of tasks run.
func (m *Manual) RunPending() int {
	n := 0
	for m.RunNext() {
		n++
	}
	return n
}

// Advance moves the virtual clock forward by d, running every task whose
// deadline is reached on the way, in deadline order. Each task observes the
// clock set to its own deadline.
func (m *Manual) Advance(d time.Duration) int {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	n := m.RunPending()
	for {
		m.mu.Lock()
		head := m.q.peek()
		if head == nil || head.deadline.After(target) {
			m.now = target
			m.mu.Unlock()
			break
		}
		if head.deadline.After(m.now) {
			m.now = head.deadline
		}
		m.mu.Unlock()
		n += m.RunPending()
	}
	return n
}
