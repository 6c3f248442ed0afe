package scheduler

import (
	"errors"
	"testing"
	"time"
)

func TestManualRunsInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var order []string

	m.Schedule(func() { order = append(order, "late") }, 30*time.Millisecond, 0)
	m.Schedule(func() { order = append(order, "first") }, 0, 0)
	m.Schedule(func() { order = append(order, "second") }, 0, 0)
	m.Schedule(func() { order = append(order, "mid") }, 10*time.Millisecond, 0)

	if n := m.RunPending(); n != 2 {
		t.Fatalf("RunPending ran %d tasks, want 2", n)
	}
	if n := m.Advance(50 * time.Millisecond); n != 2 {
		t.Fatalf("Advance ran %d tasks, want 2", n)
	}

	want := []string{"first", "second", "mid", "late"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestManualNeverRunsInline(t *testing.T) {
	m := NewManual()
	ran := false
	m.Schedule(func() { ran = true }, 0, 0)
	if ran {
		t.Fatal("task ran inside Schedule")
	}
	m.RunPending()
	if !ran {
		t.Fatal("task did not run")
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	ran := false
	h, err := m.Schedule(func() { ran = true }, 5*time.Millisecond, time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	if !m.Cancel(h) {
		t.Fatal("Cancel of queued task returned false")
	}
	if m.Cancel(h) {
		t.Fatal("second Cancel returned true")
	}
	m.Advance(time.Second)
	if ran {
		t.Fatal("cancelled task ran")
	}
	if m.Cancel(NoHandle) {
		t.Fatal("Cancel(NoHandle) returned true")
	}
}

func TestManualAdvanceSetsClockPerTask(t *testing.T) {
	m := NewManual()
	start := m.Now()
	var seen time.Duration
	m.Schedule(func() { seen = m.Now().Sub(start) }, 300*time.Millisecond, 0)

	m.Advance(100 * time.Millisecond)
	if seen != 0 {
		t.Fatal("task ran before its deadline")
	}
	m.Advance(time.Second)
	if seen != 300*time.Millisecond {
		t.Fatalf("task saw clock at %v, want 300ms", seen)
	}
	if got := m.Now().Sub(start); got != 1100*time.Millisecond {
		t.Fatalf("clock at %v, want 1.1s", got)
	}
}

func TestManualCapacity(t *testing.T) {
	m := NewManual()
	m.SetCapacity(1)
	if _, err := m.Schedule(func() {}, 0, 0); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Schedule(func() {}, 0, 0); !errors.Is(err, ErrFull) {
		t.Fatalf("err = %v, want ErrFull", err)
	}
	m.RunPending()
	if _, err := m.Schedule(func() {}, 0, 0); err != nil {
		t.Fatalf("slot not released after run: %v", err)
	}
}

func TestManualRepostDrains(t *testing.T) {
	m := NewManual()
	remaining := 3
	var task func()
	task = func() {
		remaining--
		if remaining > 0 {
			m.Schedule(task, 0, 0)
		}
	}
	m.Schedule(task, 0, 0)
	if n := m.RunPending(); n != 3 {
		t.Fatalf("ran %d, want 3", n)
	}
	if m.Executed() != 3 {
		t.Fatalf("Executed = %d, want 3", m.Executed())
	}
}
