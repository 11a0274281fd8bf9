package scheduler

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"
)

type recordingObserver struct {
	mu      sync.Mutex
	queued  int
	deduped int
	flushes []int
}

func (o *recordingObserver) JobQueued(deduped bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if deduped {
		o.deduped++
	} else {
		o.queued++
	}
}

func (o *recordingObserver) FlushCompleted(jobs int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.flushes = append(o.flushes, jobs)
}

func TestQueueJobDeduplicates(t *testing.T) {
	s := New()
	runs := 0
	job := NewJob(func() { runs++ })

	for i := 0; i < 5; i++ {
		s.QueueJob(job)
	}
	if runs != 0 {
		t.Fatalf("job ran synchronously %d times", runs)
	}
	if s.QueueLen() != 1 {
		t.Errorf("QueueLen() = %d, want 1", s.QueueLen())
	}

	s.RunMicrotasks()
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}
}

func TestQueueJobOrder(t *testing.T) {
	s := New()
	var order []string
	a := NewJob(func() { order = append(order, "a") })
	b := NewJob(func() { order = append(order, "b") })

	s.QueueJob(a)
	s.QueueJob(b)
	s.QueueJob(a)
	s.RunMicrotasks()

	if want := []string{"a", "b"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
}

func TestNextTickRunsAfterFlush(t *testing.T) {
	s := New()
	var order []string
	s.QueueJob(NewJob(func() { order = append(order, "job") }))
	s.NextTick(func() { order = append(order, "tick") })

	if !s.Pending() {
		t.Fatal("Pending() = false")
	}
	if n := s.RunMicrotasks(); n != 2 {
		t.Errorf("RunMicrotasks() = %d, want 2", n)
	}
	if want := []string{"job", "tick"}; !reflect.DeepEqual(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if s.Pending() {
		t.Error("Pending() = true after drain")
	}
}

func TestJobQueuedDuringFlushRunsInNextFlush(t *testing.T) {
	obs := &recordingObserver{}
	s := New(WithObserver(obs))
	runs := 0
	var again *FuncJob
	again = NewJob(func() {
		runs++
		if runs == 1 {
			s.QueueJob(again)
		}
	})

	s.QueueJob(again)
	s.RunMicrotasks()

	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	if want := []int{1, 1}; !reflect.DeepEqual(obs.flushes, want) {
		t.Errorf("flushes = %v, want %v", obs.flushes, want)
	}
}

func TestObserverCounts(t *testing.T) {
	obs := &recordingObserver{}
	s := New(WithObserver(obs))
	job := NewJob(func() {})
	s.QueueJob(job)
	s.QueueJob(job)
	s.QueueJob(job)
	s.RunMicrotasks()

	if obs.queued != 1 || obs.deduped != 2 {
		t.Errorf("queued=%d deduped=%d, want 1 2", obs.queued, obs.deduped)
	}
	if len(obs.flushes) != 1 || obs.flushes[0] != 1 {
		t.Errorf("flushes = %v, want [1]", obs.flushes)
	}
}

func TestFlushRecoversPanickingJob(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	ran := false
	s.QueueJob(NewJob(func() { panic("boom") }))
	s.QueueJob(NewJob(func() { ran = true }))

	s.RunMicrotasks()

	if !ran {
		t.Error("job after the panicking one did not run")
	}
	if n := s.QueueLen(); n != 0 {
		t.Errorf("QueueLen() = %d, want 0", n)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Errorf("log = %q, want the panic value", buf.String())
	}

	again := 0
	s.QueueJob(NewJob(func() { again++ }))
	s.RunMicrotasks()
	if again != 1 {
		t.Errorf("scheduler stalled after a panic: ran %d, want 1", again)
	}
}

func TestWakeSignalledOnQueue(t *testing.T) {
	s := New()
	s.QueueJob(NewJob(func() {}))
	select {
	case <-s.Wake():
	default:
		t.Error("Wake() not signalled")
	}
}

func TestDefaultScheduler(t *testing.T) {
	runs := 0
	QueueJob(NewJob(func() { runs++ }))
	NextTick(func() { runs++ })
	RunMicrotasks()
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
	if Default() == nil {
		t.Error("Default() = nil")
	}
}

func TestInvalidateJob(t *testing.T) {
	s := New()
	runs := 0
	a := NewJob(func() { runs++ })
	b := NewJob(func() { runs += 10 })
	s.QueueJob(a)
	s.QueueJob(b)
	s.InvalidateJob(a)
	s.InvalidateJob(NewJob(func() {}))
	s.RunMicrotasks()

	if runs != 10 {
		t.Errorf("runs = %d, want 10", runs)
	}
}
