package coalesce

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/wristnav/wristnav/pkg/wristnav/scheduler"
)

func TestBurstSchedulesOnce(t *testing.T) {
	sched := scheduler.NewManual()
	works := 0
	c := New("forward", sched, func() { works++ })

	for i := 0; i < 5; i++ {
		if err := c.Trigger(); err != nil {
			t.Fatal(err)
		}
	}
	if sched.Len() != 1 {
		t.Fatalf("queued tasks = %d, want 1", sched.Len())
	}
	if c.Pending() != 5 {
		t.Fatalf("pending = %d, want 5", c.Pending())
	}

	// One execution: pending is N minus executions so far, and the task
	// reposted itself rather than a second one being queued.
	sched.RunNext()
	if c.Pending() != 4 || sched.Len() != 1 {
		t.Fatalf("after one run: pending = %d queued = %d", c.Pending(), sched.Len())
	}

	sched.RunPending()
	if works != 5 {
		t.Fatalf("work ran %d times, want 5", works)
	}
	if c.Pending() != 0 || c.Scheduled() {
		t.Fatalf("pending = %d scheduled = %v after drain", c.Pending(), c.Scheduled())
	}
}

func TestEdgeDuringWorkIsNotLost(t *testing.T) {
	sched := scheduler.NewManual()
	var c *Coalescer
	works := 0
	c = New("back", sched, func() {
		works++
		if works == 1 {
			// An edge arriving while the task executes.
			if err := c.Trigger(); err != nil {
				t.Error(err)
			}
			if sched.Len() != 0 {
				t.Errorf("edge during work queued a second task")
			}
		}
	})

	c.Trigger()
	sched.RunPending()
	if works != 2 || c.Pending() != 0 {
		t.Fatalf("works = %d pending = %d", works, c.Pending())
	}
}

func TestPendingNeverNegativeUnderRandomInterleavings(t *testing.T) {
	for seed := int64(1); seed <= 200; seed++ {
		rng := rand.New(rand.NewSource(seed))
		sched := scheduler.NewManual()
		var c *Coalescer
		var minSeen int32
		sample := func() {
			if p := c.Pending(); p < minSeen {
				minSeen = p
			}
		}
		works := 0
		c = New("prop", sched, func() {
			works++
			sample()
			if rng.Intn(4) == 0 {
				c.Trigger()
			}
		})

		triggers := 0
		for step := 0; step < 100; step++ {
			if rng.Intn(2) == 0 {
				if err := c.Trigger(); err != nil {
					t.Fatal(err)
				}
				triggers++
			} else {
				sched.RunNext()
			}
			sample()
			if sched.Len() > 1 {
				t.Fatalf("seed %d: %d tasks queued", seed, sched.Len())
			}
		}
		sched.RunPending()
		sample()

		if minSeen < 0 {
			t.Fatalf("seed %d: pending went to %d", seed, minSeen)
		}
		if c.Pending() != 0 {
			t.Fatalf("seed %d: pending = %d after drain", seed, c.Pending())
		}
		if uint64(works) != c.Runs() || works < triggers {
			t.Fatalf("seed %d: works = %d runs = %d triggers = %d", seed, works, c.Runs(), triggers)
		}
	}
}

func TestTriggerWhenSchedulerFull(t *testing.T) {
	sched := scheduler.NewManual()
	sched.SetCapacity(1)
	sched.Schedule(func() {}, time.Hour, 0)

	c := New("forward", sched, func() {})
	err := c.Trigger()
	if !errors.Is(err, scheduler.ErrFull) {
		t.Fatalf("err = %v, want ErrFull", err)
	}
	if c.Pending() != 0 || c.Scheduled() || c.Dropped() != 1 {
		t.Fatalf("pending = %d scheduled = %v dropped = %d", c.Pending(), c.Scheduled(), c.Dropped())
	}
}

func TestRepostFailureKeepsBacklog(t *testing.T) {
	sched := scheduler.NewManual()
	sched.SetCapacity(1)

	var filler scheduler.Handle
	works := 0
	c := New("forward", sched, func() {
		works++
		if works == 1 {
			filler, _ = sched.Schedule(func() {}, time.Hour, 0)
		}
	})

	c.Trigger()
	c.Trigger()
	sched.RunNext()
	if c.Pending() != 1 || c.Scheduled() {
		t.Fatalf("pending = %d scheduled = %v, want backlog of 1 and no task", c.Pending(), c.Scheduled())
	}

	sched.Cancel(filler)
	if err := c.Trigger(); err != nil {
		t.Fatal(err)
	}
	sched.RunPending()
	if works != 3 || c.Pending() != 0 {
		t.Fatalf("works = %d pending = %d", works, c.Pending())
	}
}

func TestClose(t *testing.T) {
	sched := scheduler.NewManual()
	works := 0
	c := New("forward", sched, func() { works++ })

	c.Trigger()
	c.Trigger()
	c.Close()
	sched.RunPending()

	if works != 0 {
		t.Fatalf("work ran %d times after Close", works)
	}
	if err := c.Trigger(); !errors.Is(err, ErrClosed) {
		t.Fatalf("Trigger after Close = %v", err)
	}
}

func TestCloseWhileRunningStopsReposting(t *testing.T) {
	sched := scheduler.NewManual()
	var c *Coalescer
	works := 0
	c = New("forward", sched, func() {
		works++
		c.Close()
	})

	c.Trigger()
	c.Trigger()
	sched.RunPending()
	if works != 1 || c.Scheduled() {
		t.Fatalf("works = %d scheduled = %v", works, c.Scheduled())
	}
}

func TestConcurrentTriggersOnLoop(t *testing.T) {
	loop := scheduler.NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	loop.Start(ctx)

	var mu sync.Mutex
	works := 0
	c := New("forward", loop, func() {
		mu.Lock()
		works++
		mu.Unlock()
	})

	const edges = 400
	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < edges/4; i++ {
				if err := c.Trigger(); err != nil {
					t.Error(err)
				}
				if c.Pending() < 0 {
					t.Error("pending went negative")
				}
			}
		}()
	}
	wg.Wait()

	deadline := time.Now().Add(5 * time.Second)
	for c.Pending() != 0 || c.Scheduled() {
		if time.Now().After(deadline) {
			t.Fatalf("never drained: pending = %d", c.Pending())
		}
		time.Sleep(time.Millisecond)
	}
	mu.Lock()
	defer mu.Unlock()
	if works != edges {
		t.Fatalf("works = %d, want %d", works, edges)
	}
}
