package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/vango-dev/minivue/pkg/reactivity"
)

// DefaultQueueSize is the task buffer of a Loop.
const DefaultQueueSize = 256

// ErrLoopClosed is returned by Call after the loop stopped.
var ErrLoopClosed = errors.New("scheduler: loop closed")

// ErrQueueFull is returned by Call when the task buffer is full.
var ErrQueueFull = errors.New("scheduler: loop queue full")

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithQueueSize sets the task buffer size.
func WithQueueSize(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.size = n
		}
	}
}

// WithLoopLogger sets the loop's logger. Default: the scheduler's logger.
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// AfterTask registers a hook that runs after each task once the microtask
// queue is drained.
func AfterTask(fn func()) LoopOption {
	return func(l *Loop) {
		l.afterTask = fn
	}
}

// Loop runs tasks for one tree on a single goroutine.
type Loop struct {
	sched     *Scheduler
	tasks     chan func()
	done      chan struct{}
	closed    atomic.Bool
	size      int
	logger    *slog.Logger
	afterTask func()
}

// NewLoop creates a loop draining sched.
func NewLoop(sched *Scheduler, opts ...LoopOption) *Loop {
	l := &Loop{
		sched:  sched,
		done:   make(chan struct{}),
		size:   DefaultQueueSize,
		logger: sched.logger,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.tasks = make(chan func(), l.size)
	return l
}

// Scheduler returns the scheduler drained by the loop.
func (l *Loop) Scheduler() *Scheduler {
	return l.sched
}

// Dispatch queues fn to run on the loop. It never blocks and reports
// whether fn was accepted.
func (l *Loop) Dispatch(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	default:
		l.logger.Warn("dispatch queue full, discarding task")
		return false
	}
}

// Call runs fn on the loop and waits for it, including the microtask
// checkpoint that follows it.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if !l.Dispatch(func() {
		defer l.sched.NextTick(func() { close(finished) })
		fn()
	}) {
		if l.closed.Load() {
			return ErrLoopClosed
		}
		return ErrQueueFull
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks until ctx is cancelled. After every task the
// microtask queue is drained. Work queued from other goroutines between
// tasks is picked up through the scheduler's wake channel.
func (l *Loop) Run(ctx context.Context) error {
	defer reactivity.ReleaseGoroutine()
	defer func() {
		l.closed.Store(true)
		close(l.done)
	}()

	l.checkpoint()
	for {
		select {
		case fn := <-l.tasks:
			l.execute(fn)
		case <-l.sched.Wake():
			l.checkpoint()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("loop task panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	fn()
	l.checkpoint()
}

func (l *Loop) checkpoint() {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("microtask panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	l.sched.RunMicrotasks()
	if l.afterTask != nil {
		l.afterTask()
	}
}
