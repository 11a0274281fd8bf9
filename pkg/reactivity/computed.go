package reactivity

import (
	"runtime"
	"sync"
)

// Computed is a lazily evaluated, cached derived value. The getter runs in
// an effect whose scheduler only marks the cache dirty; recomputation waits
// for the next Get.
type Computed[T any] struct {
	cell   cellID
	effect *ReactiveEffect
	getter func() T

	mu    sync.Mutex
	value T
	dirty bool
}

// NewComputed creates a computed value from getter. getter does not run
// until the first Get.
//
// Example:
//
//	double := NewComputed(func() int { return count.Get().(int) * 2 })
//	double.Get() // runs the getter
//	double.Get() // cached
func NewComputed[T any](getter func() T) *Computed[T] {
	c := &Computed[T]{
		cell:   deps.newCell(),
		getter: getter,
		dirty:  true,
	}
	c.effect = NewEffect(func() {
		v := c.getter()
		c.mu.Lock()
		c.value = v
		c.mu.Unlock()
	}, WithScheduler(c.invalidate))
	runtime.AddCleanup(c, releaseCell, c.cell)
	return c
}

// Get returns the cached value, recomputing it first if a dependency changed
// since the last evaluation. Readers of a computed are notified when it is
// invalidated.
func (c *Computed[T]) Get() T {
	trackCell(c.cell, c)

	c.mu.Lock()
	dirty := c.dirty
	c.dirty = false
	c.mu.Unlock()

	if dirty {
		c.effect.Run()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Dirty reports whether the next Get will recompute.
func (c *Computed[T]) Dirty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dirty
}

// Effect returns the effect evaluating the getter.
func (c *Computed[T]) Effect() *ReactiveEffect {
	return c.effect
}

func (c *Computed[T]) invalidate() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true
	c.mu.Unlock()

	triggerCell(c.cell)
}
