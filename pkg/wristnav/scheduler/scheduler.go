// Package scheduler provides the deferred task executors used by the
// navigation core. Input handlers never do work themselves; they post a
// task here and return. Every implementation runs tasks strictly one at a
// time and never inline with Schedule.
package scheduler

import (
	"errors"
	"time"
)

// Handle identifies a scheduled task. The zero value means "no task".
type Handle uint64

// NoHandle is the zero Handle.
const NoHandle Handle = 0

var (
	// ErrFull is returned when every task slot is taken. Callers treat it as
	// recoverable: the request can be dropped or retried later.
	ErrFull = errors.New("scheduler: no task slot available")

	// ErrStopped is returned once the executor has been closed.
	ErrStopped = errors.New("scheduler: executor stopped")
)

// Scheduler accepts deferred work.
//
// Schedule queues task to run no earlier than delay from now. A zero delay
// means as soon as possible, but never before Schedule returns. Tolerance is
// how late the task may run so the executor can batch close deadlines; it
// never affects ordering guarantees.
//
// Cancel prevents a queued task from running. It reports false when the
// task already started, finished or was never scheduled.
type Scheduler interface {
	Schedule(task func(), delay, tolerance time.Duration) (Handle, error)
	Cancel(h Handle) bool
}
