package scheduler

import (
	"container/heap"
	"time"
)

type timer struct {
	handle   Handle
	deadline time.Time
	slack    time.Duration
	seq      uint64
	task     func()
	onDrop   func()
	index    int
}

// timerHeap orders timers by deadline, then by insertion so that tasks with
// equal deadlines run in the order they were posted.
type timerHeap []*timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*timer)
	t.index = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*h = old[:n-1]
	return t
}

// queue is the bookkeeping shared by Loop and Manual. It is not safe for
// concurrent use; owners guard it with their own mutex.
type queue struct {
	timers   timerHeap
	byHandle map[Handle]*timer
	last     Handle
	seq      uint64
	capacity int
}

func newQueue(capacity int) queue {
	return queue{
		byHandle: make(map[Handle]*timer),
		capacity: capacity,
	}
}

func (q *queue) add(task func(), deadline time.Time, slack time.Duration) (Handle, error) {
	if q.capacity > 0 && len(q.timers) >= q.capacity {
		return NoHandle, ErrFull
	}
	if slack < 0 {
		slack = 0
	}
	q.last++
	q.seq++
	t := &timer{
		handle:   q.last,
		deadline: deadline,
		slack:    slack,
		seq:      q.seq,
		task:     task,
	}
	heap.Push(&q.timers, t)
	q.byHandle[t.handle] = t
	return t.handle, nil
}

func (q *queue) remove(h Handle) bool {
	t, ok := q.byHandle[h]
	if !ok {
		return false
	}
	heap.Remove(&q.timers, t.index)
	delete(q.byHandle, h)
	return true
}

func (q *queue) peek() *timer {
	if len(q.timers) == 0 {
		return nil
	}
	return q.timers[0]
}

func (q *queue) pop() *timer {
	t := heap.Pop(&q.timers).(*timer)
	delete(q.byHandle, t.handle)
	return t
}

// wakeAt is the latest instant the executor may sleep until without making
// any queued task later than its tolerance allows. It is never earlier than
// the first deadline.
func (q *queue) wakeAt() time.Time {
	head := q.peek()
	at := head.deadline.Add(head.slack)
	for _, t := range q.timers {
		if latest := t.deadline.Add(t.slack); latest.Before(at) {
			at = latest
		}
	}
	return at
}

// drain empties the queue and returns the timers that will never run.
func (q *queue) drain() []*timer {
	dropped := make([]*timer, len(q.timers))
	copy(dropped, q.timers)
	clear(q.timers)
	q.timers = q.timers[:0]
	clear(q.byHandle)
	return dropped
}
