package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the OpenTelemetry tracer used for flush spans.
const TracerName = "github.com/vango-dev/minivue/pkg/scheduler"

// Job is a unit of deferred work. Jobs are deduplicated by identity, so
// implementations must be comparable; pointer types are.
type Job interface {
	Run()
}

// FuncJob adapts a function to Job. Use NewJob so every job has its own
// identity.
type FuncJob struct {
	fn func()
}

// NewJob wraps fn.
func NewJob(fn func()) *FuncJob {
	return &FuncJob{fn: fn}
}

// Run implements Job.
func (j *FuncJob) Run() {
	j.fn()
}

// Observer receives queue and flush notifications.
type Observer interface {
	JobQueued(deduped bool)
	FlushCompleted(jobs int, d time.Duration)
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver sets the observer notified about queued jobs and flushes.
func WithObserver(o Observer) Option {
	return func(s *Scheduler) {
		s.observer = o
	}
}

// WithTracer sets the tracer used for flush spans. Default: the global
// provider's tracer named TracerName.
func WithTracer(t trace.Tracer) Option {
	return func(s *Scheduler) {
		if t != nil {
			s.tracer = t
		}
	}
}

// Scheduler is a deduplicating job queue flushed at microtask checkpoints.
type Scheduler struct {
	mu           sync.Mutex
	queue        []Job
	queued       map[Job]struct{}
	flushPending bool
	microtasks   []func()

	// wake is signalled when microtasks become pending.
	wake chan struct{}

	logger   *slog.Logger
	observer Observer
	tracer   trace.Tracer
}

// New creates a scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		queued: make(map[Job]struct{}),
		wake:   make(chan struct{}, 1),
		logger: slog.Default(),
		tracer: otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueueJob adds job to the pending list unless it is already there and
// requests a flush.
func (s *Scheduler) QueueJob(job Job) {
	s.mu.Lock()
	if _, ok := s.queued[job]; ok {
		s.mu.Unlock()
		s.notifyQueued(true)
		return
	}
	s.queued[job] = struct{}{}
	s.queue = append(s.queue, job)
	if !s.flushPending {
		s.flushPending = true
		s.enqueueLocked(s.flush)
	}
	s.mu.Unlock()

	s.notifyQueued(false)
}

// InvalidateJob removes job from the pending list. It is used when a
// queued job is run early by other means.
func (s *Scheduler) InvalidateJob(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.queued[job]; !ok {
		return
	}
	delete(s.queued, job)
	for i, j := range s.queue {
		if j == job {
			s.queue = append(s.queue[:i], s.queue[i+1:]...)
			break
		}
	}
}

// NextTick runs fn at the next microtask checkpoint, after any flush that
// is already pending.
func (s *Scheduler) NextTick(fn func()) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.enqueueLocked(fn)
	s.mu.Unlock()
}

// RunMicrotasks drains the microtask queue, including microtasks queued
// while draining. It returns the number of microtasks run.
func (s *Scheduler) RunMicrotasks() int {
	n := 0
	for {
		s.mu.Lock()
		tasks := s.microtasks
		s.microtasks = nil
		s.mu.Unlock()

		if len(tasks) == 0 {
			return n
		}
		for _, task := range tasks {
			task()
			n++
		}
	}
}

// Pending reports whether microtasks are waiting for a checkpoint.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.microtasks) > 0
}

// QueueLen returns the number of jobs waiting for the next flush.
func (s *Scheduler) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Wake returns a channel that receives after microtasks become pending.
func (s *Scheduler) Wake() <-chan struct{} {
	return s.wake
}

func (s *Scheduler) enqueueLocked(fn func()) {
	s.microtasks = append(s.microtasks, fn)
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) notifyQueued(deduped bool) {
	if s.observer != nil {
		s.observer.JobQueued(deduped)
	}
}

// flush runs every job queued so far. Jobs queued while flushing go to
// the next flush. A panicking job is logged and the rest still run.
func (s *Scheduler) flush() {
	s.mu.Lock()
	s.flushPending = false
	jobs := s.queue
	s.queue = nil
	s.queued = make(map[Job]struct{})
	s.mu.Unlock()

	_, span := s.tracer.Start(context.Background(), "scheduler.flush",
		trace.WithAttributes(attribute.Int("jobs", len(jobs))),
	)
	defer span.End()

	start := time.Now()
	failed := 0
	for _, job := range jobs {
		if !s.runJob(job, span) {
			failed++
		}
	}

	elapsed := time.Since(start)
	if failed > 0 {
		span.SetStatus(codes.Error, "job panicked")
	} else {
		span.SetStatus(codes.Ok, "")
	}
	if s.observer != nil {
		s.observer.FlushCompleted(len(jobs), elapsed)
	}
	if len(jobs) > 0 {
		s.logger.Debug("scheduler flush", "jobs", len(jobs), "failed", failed, "duration", elapsed)
	}
}

func (s *Scheduler) runJob(job Job, span trace.Span) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			span.AddEvent("job panic", trace.WithAttributes(attribute.String("panic", fmt.Sprint(r))))
			s.logger.Error("scheduler job panic",
				"panic", r,
				"stack", string(debug.Stack()))
			ok = false
		}
	}()

	job.Run()
	return true
}

var defaultScheduler = New()

// Default returns the process-wide scheduler.
func Default() *Scheduler {
	return defaultScheduler
}

// QueueJob queues job on the default scheduler.
func QueueJob(job Job) {
	defaultScheduler.QueueJob(job)
}

// NextTick schedules fn on the default scheduler.
func NextTick(fn func()) {
	defaultScheduler.NextTick(fn)
}

// RunMicrotasks drains the default scheduler.
func RunMicrotasks() int {
	return defaultScheduler.RunMicrotasks()
}
