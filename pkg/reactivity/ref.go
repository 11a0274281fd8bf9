package reactivity

import (
	"runtime"
	"sort"
	"sync"

	"github.com/vango-dev/minivue/internal/shared"
)

// Ref is a reactive box around a single value. Map values are stored as
// their reactive view.
type Ref struct {
	cell cellID

	mu sync.RWMutex
	// raw is the value as written, used for change detection.
	raw any
	// value is raw, converted to a reactive view when it is a map.
	value any
}

// NewRef boxes value.
//
// Example:
//
//	count := NewRef(0)
//	Effect(func() { fmt.Println(count.Get()) })
//	count.Set(1) // prints 1
//	count.Set(1) // unchanged, nothing runs
func NewRef(value any) *Ref {
	r := &Ref{
		cell:  deps.newCell(),
		raw:   value,
		value: toReactive(value),
	}
	runtime.AddCleanup(r, releaseCell, r.cell)
	return r
}

// Get returns the value and subscribes the running effect.
func (r *Ref) Get() any {
	trackCell(r.cell, r)
	return r.Peek()
}

// Peek returns the value without subscribing.
func (r *Ref) Peek() any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set stores value and notifies subscribers when it differs from the
// previous raw value. NaN is considered equal to NaN.
func (r *Ref) Set(value any) {
	raw := ToRaw(value)

	r.mu.Lock()
	if !shared.HasChanged(r.raw, raw) {
		r.mu.Unlock()
		return
	}
	r.raw = raw
	r.value = toReactive(raw)
	r.mu.Unlock()

	triggerCell(r.cell)
}

// Subscribers returns the number of effects depending on the ref.
func (r *Ref) Subscribers() int {
	return deps.count(r.cell)
}

func toReactive(v any) any {
	switch v.(type) {
	case map[string]any, *Object:
		return Reactive(v)
	}
	return v
}

// IsRef reports whether v is a *Ref.
func IsRef(v any) bool {
	_, ok := v.(*Ref)
	return ok
}

// Unref returns the value of a ref, or v unchanged.
func Unref(v any) any {
	if r, ok := v.(*Ref); ok {
		return r.Get()
	}
	return v
}

// Store is the keyed get/set surface shared by Object views and RefProxy.
type Store interface {
	Get(key string) any
	Set(key string, value any) bool
	Has(key string) bool
	Keys() []string
}

var (
	_ Store = (*Object)(nil)
	_ Store = (*RefProxy)(nil)
)

// RefProxy exposes a mapping whose ref values read and write through their
// boxed value.
type RefProxy struct {
	store Store
}

// ProxyRefs wraps raw so that reading a key holding a ref returns the ref's
// value, and writing a non-ref value to a key holding a ref writes through
// to the ref. raw may be a map[string]any (kept untracked) or a Store such
// as a reactive Object.
func ProxyRefs(raw any) *RefProxy {
	switch v := raw.(type) {
	case *RefProxy:
		return v
	case Store:
		return &RefProxy{store: v}
	case map[string]any:
		if v == nil {
			v = map[string]any{}
		}
		return &RefProxy{store: plainStore(v)}
	default:
		return &RefProxy{store: plainStore{}}
	}
}

// Get returns the value of key, unwrapping refs.
func (p *RefProxy) Get(key string) any {
	return Unref(p.store.Get(key))
}

// Set writes key. A ref currently stored under key receives value unless
// value is itself a ref, which replaces it.
func (p *RefProxy) Set(key string, value any) bool {
	if old, ok := p.store.Get(key).(*Ref); ok && !IsRef(value) {
		old.Set(value)
		return true
	}
	return p.store.Set(key, value)
}

// Has reports whether key is present.
func (p *RefProxy) Has(key string) bool {
	return p.store.Has(key)
}

// Keys returns the keys of the wrapped mapping.
func (p *RefProxy) Keys() []string {
	return p.store.Keys()
}

// plainStore adapts a plain map to Store without tracking.
type plainStore map[string]any

func (s plainStore) Get(key string) any { return s[key] }

func (s plainStore) Set(key string, value any) bool {
	s[key] = value
	return true
}

func (s plainStore) Has(key string) bool {
	_, ok := s[key]
	return ok
}

func (s plainStore) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
