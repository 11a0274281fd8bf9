package reactivity

import (
	"sync"
	"sync/atomic"
)

var idCounter atomic.Uint64

func nextID() uint64 {
	return idCounter.Add(1)
}

// ReactiveEffect is a re-runnable computation that records the reactive
// values it reads and re-runs (or calls its scheduler) when they change.
//
// A new effect is active. Stop removes it from every dependency set it
// joined and deactivates it; a stopped effect still executes its function
// when run directly but no longer tracks or gets triggered.
type ReactiveEffect struct {
	id uint64

	// fn is the wrapped computation.
	fn func()

	// scheduler, when set, is called on dependency change instead of
	// re-running the effect.
	scheduler func()

	// onStop is called once when the effect is stopped.
	onStop func()

	// deps are the cells this effect is subscribed to.
	deps   []dep
	depsMu sync.Mutex

	active atomic.Bool
}

// dep is a subscribed cell and the value that owns it.
type dep struct {
	id    cellID
	owner any
}

// EffectOption configures a ReactiveEffect.
type EffectOption func(*ReactiveEffect)

// WithScheduler makes the effect call fn instead of re-running itself when a
// dependency changes.
func WithScheduler(fn func()) EffectOption {
	return func(e *ReactiveEffect) {
		e.scheduler = fn
	}
}

// WithOnStop registers fn to run when the effect is stopped.
func WithOnStop(fn func()) EffectOption {
	return func(e *ReactiveEffect) {
		e.onStop = fn
	}
}

// NewEffect creates an active effect without running it.
func NewEffect(fn func(), opts ...EffectOption) *ReactiveEffect {
	e := &ReactiveEffect{
		id: nextID(),
		fn: fn,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.active.Store(true)
	return e
}

// Effect creates an effect, runs it once and returns it. The returned
// effect's Run method is the runner.
//
// Example:
//
//	state := Reactive(map[string]any{"count": 0})
//	e := Effect(func() {
//	    fmt.Println("count is", state.Get("count"))
//	})
//	state.Set("count", 1) // prints "count is 1"
//	Stop(e)
func Effect(fn func(), opts ...EffectOption) *ReactiveEffect {
	e := NewEffect(fn, opts...)
	e.Run()
	return e
}

// Stop deactivates e. It is safe to call more than once.
func Stop(e *ReactiveEffect) {
	if e != nil {
		e.Stop()
	}
}

// ID returns the unique identifier for this effect.
func (e *ReactiveEffect) ID() uint64 {
	return e.id
}

// Active reports whether the effect still tracks and gets triggered.
func (e *ReactiveEffect) Active() bool {
	return e.active.Load()
}

// Run executes the effect. While active, the previous dependencies are
// dropped and the ones read during this run are recorded. Nested runs
// restore the outer effect when they return.
func (e *ReactiveEffect) Run() {
	if !e.active.Load() {
		e.fn()
		return
	}

	e.cleanupDeps()

	tc := getTrackingContext()
	tc.pushEffect(e)
	defer tc.popEffect()

	e.fn()
}

// Stop removes the effect from all dependency sets and deactivates it.
func (e *ReactiveEffect) Stop() {
	if !e.active.CompareAndSwap(true, false) {
		return
	}
	e.cleanupDeps()
	if e.onStop != nil {
		e.onStop()
	}
}

// DepCount returns how many dependency cells the effect is subscribed to.
func (e *ReactiveEffect) DepCount() int {
	e.depsMu.Lock()
	defer e.depsMu.Unlock()
	return len(e.deps)
}

func (e *ReactiveEffect) addDep(id cellID, owner any) {
	e.depsMu.Lock()
	defer e.depsMu.Unlock()
	e.deps = append(e.deps, dep{id: id, owner: owner})
}

func (e *ReactiveEffect) cleanupDeps() {
	e.depsMu.Lock()
	joined := e.deps
	e.deps = nil
	e.depsMu.Unlock()

	for _, d := range joined {
		deps.unsubscribe(d.id, e)
	}
}
