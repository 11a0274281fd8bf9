// Package reactivity provides the dependency-tracking core of minivue.
//
// Reading reactive state while an effect runs subscribes that effect;
// writing the state re-runs the effect, or calls its scheduler when it has
// one. Component re-rendering is built on exactly this mechanism.
//
// # Core Types
//
// Object is a view of a map[string]any with one of three capabilities:
//
//	state := Reactive(map[string]any{"count": 0, "user": map[string]any{"name": "ada"}})
//	state.Get("count")      // tracked read
//	state.Set("count", 1)   // write + trigger
//	ro := Readonly(state)   // untracked reads, ignored writes
//
// Nested maps are wrapped on access, not eagerly. Ref boxes a single value
// and only notifies on an actual change:
//
//	count := NewRef(0)
//	count.Set(0) // no-op
//
// Computed[T] caches a derived value and recomputes only when read after a
// dependency changed:
//
//	double := NewComputed(func() int { return count.Get().(int) * 2 })
//
// ProxyRefs exposes a mapping with ref values unwrapped, which is how
// component setup state is presented to render functions.
//
// # Dependency Graph
//
// Every tracked (map, key) pair and every ref owns a cell in a process-wide
// arena. Effects record the cell IDs they joined so Stop is an index-based
// removal.
//
// # Thread Safety
//
// The effect stack is kept per goroutine. A tree of components and its
// state belongs to one goroutine at a time (see scheduler.Loop); the arena
// itself is guarded so independent trees can run on separate goroutines.
package reactivity
