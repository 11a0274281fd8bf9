package reactivity

import (
	"log/slog"
	"reflect"
	"runtime"
	"sort"
	"sync"
	"weak"

	"github.com/vango-dev/minivue/internal/errors"
)

// Flag keys answer reactive/readonly queries on any Object without being
// tracked.
const (
	FlagIsReactive = "__v_isReactive"
	FlagIsReadonly = "__v_isReadonly"
)

// Mode is the capability of an Object view.
type Mode uint8

const (
	ModeReactive        Mode = iota // tracked reads, triggering writes
	ModeReadonly                    // untracked reads, rejected writes, deep
	ModeShallowReadonly             // like ModeReadonly but nested values are returned as-is
)

// String returns the string representation of the Mode.
func (m Mode) String() string {
	switch m {
	case ModeReactive:
		return "reactive"
	case ModeReadonly:
		return "readonly"
	case ModeShallowReadonly:
		return "shallowReadonly"
	default:
		return "unknown"
	}
}

// target is the backing store shared by every view of one map.
type target struct {
	raw   map[string]any
	mu    sync.RWMutex
	cells *keyCells
	views [3]*Object
}

// keyCells maps tracked keys to their cells. It is kept apart from target
// so the release cleanup can reach it after the target is gone.
type keyCells struct {
	mu  sync.Mutex
	ids map[string]cellID
}

// cell returns the dependency cell of key, allocating it on first use.
func (t *target) cell(key string) cellID {
	c := t.cells
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.ids[key]; ok {
		return id
	}
	if c.ids == nil {
		c.ids = make(map[string]cellID)
	}
	id := deps.newCell()
	c.ids[key] = id
	return id
}

// lookupCell returns the cell of key without allocating.
func (t *target) lookupCell(key string) (cellID, bool) {
	c := t.cells
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.ids[key]
	return id, ok
}

// targets registers backing maps by identity so every wrapper of the same
// map shares dependency cells. Entries are weak: a target lives while one
// of its views is reachable or an effect is subscribed to one of its keys.
var (
	targets   = map[uintptr]weak.Pointer[target]{}
	targetsMu sync.Mutex
)

// targetRelease is what the cleanup of a collected target needs.
type targetRelease struct {
	ptr   uintptr
	cells *keyCells
}

func targetOf(raw map[string]any) *target {
	ptr := reflect.ValueOf(raw).Pointer()

	targetsMu.Lock()
	defer targetsMu.Unlock()
	if wp, ok := targets[ptr]; ok {
		if t := wp.Value(); t != nil {
			return t
		}
	}
	t := &target{raw: raw, cells: &keyCells{}}
	targets[ptr] = weak.Make(t)
	runtime.AddCleanup(t, releaseTarget, targetRelease{ptr: ptr, cells: t.cells})
	return t
}

// releaseTarget drops the registry entry of a collected target, unless the
// map was registered again since, and frees its cells.
func releaseTarget(rel targetRelease) {
	targetsMu.Lock()
	if wp, ok := targets[rel.ptr]; ok && wp.Value() == nil {
		delete(targets, rel.ptr)
	}
	targetsMu.Unlock()

	rel.cells.mu.Lock()
	ids := make([]cellID, 0, len(rel.cells.ids))
	for _, id := range rel.cells.ids {
		ids = append(ids, id)
	}
	rel.cells.ids = nil
	rel.cells.mu.Unlock()

	deps.release(ids...)
}

// handler implements the read/write policy of one Mode.
type handler interface {
	mode() Mode
	get(o *Object, key string) any
	set(o *Object, key string, value any) bool
}

type mutableHandler struct{}

func (mutableHandler) mode() Mode { return ModeReactive }

func (mutableHandler) get(o *Object, key string) any {
	track(o.target, key)
	return wrapNested(o.target.load(key), ModeReactive)
}

func (mutableHandler) set(o *Object, key string, value any) bool {
	o.target.store(key, ToRaw(value))
	trigger(o.target, key)
	return true
}

type readonlyHandler struct{ shallow bool }

func (h readonlyHandler) mode() Mode {
	if h.shallow {
		return ModeShallowReadonly
	}
	return ModeReadonly
}

func (h readonlyHandler) get(o *Object, key string) any {
	v := o.target.load(key)
	if h.shallow {
		return v
	}
	return wrapNested(v, ModeReadonly)
}

func (h readonlyHandler) set(o *Object, key string, value any) bool {
	warn(errors.New("E001").
		WithDetail(`set of key "` + key + `" ignored, target is ` + h.mode().String()))
	return true
}

var handlers = [3]handler{
	ModeReactive:        mutableHandler{},
	ModeReadonly:        readonlyHandler{},
	ModeShallowReadonly: readonlyHandler{shallow: true},
}

// Object is a reactive, readonly or shallow-readonly view of a backing map.
// All views of the same map share dependency cells, so a write through the
// reactive view triggers effects that read through any tracked view.
type Object struct {
	target  *target
	handler handler
}

// Reactive returns the tracked, writable view of raw. raw may be a
// map[string]any or an *Object. Nested maps are wrapped lazily on read.
func Reactive(raw any) *Object {
	return createObject(raw, ModeReactive)
}

// Readonly returns a deep readonly view of raw. Reads are not tracked and
// writes are ignored with a warning.
func Readonly(raw any) *Object {
	return createObject(raw, ModeReadonly)
}

// ShallowReadonly returns a readonly view whose nested values are returned
// as stored.
func ShallowReadonly(raw any) *Object {
	return createObject(raw, ModeShallowReadonly)
}

func createObject(raw any, mode Mode) *Object {
	var t *target
	switch v := raw.(type) {
	case *Object:
		t = v.target
	case map[string]any:
		if v == nil {
			v = map[string]any{}
		}
		t = targetOf(v)
	default:
		return nil
	}

	targetsMu.Lock()
	defer targetsMu.Unlock()
	if o := t.views[mode]; o != nil {
		return o
	}
	o := &Object{target: t, handler: handlers[mode]}
	t.views[mode] = o
	return o
}

// wrapNested wraps map values read from an Object in a view of mode.
func wrapNested(v any, mode Mode) any {
	switch v.(type) {
	case map[string]any, *Object:
		return createObject(v, mode)
	}
	return v
}

// Get reads key. The flag keys report the view's capability untracked.
func (o *Object) Get(key string) any {
	switch key {
	case FlagIsReactive:
		return o.handler.mode() == ModeReactive
	case FlagIsReadonly:
		return o.handler.mode() != ModeReactive
	}
	return o.handler.get(o, key)
}

// Set writes key and reports success. Readonly views report success without
// writing.
func (o *Object) Set(key string, value any) bool {
	return o.handler.set(o, key, value)
}

// Has reports whether key is present. It is tracked like a read on
// reactive views.
func (o *Object) Has(key string) bool {
	if o.handler.mode() == ModeReactive {
		track(o.target, key)
	}
	o.target.mu.RLock()
	defer o.target.mu.RUnlock()
	_, ok := o.target.raw[key]
	return ok
}

// Keys returns the stored keys in sorted order. It does not track.
func (o *Object) Keys() []string {
	o.target.mu.RLock()
	keys := make([]string, 0, len(o.target.raw))
	for k := range o.target.raw {
		keys = append(keys, k)
	}
	o.target.mu.RUnlock()
	sort.Strings(keys)
	return keys
}

// Mode returns the capability of this view.
func (o *Object) Mode() Mode {
	return o.handler.mode()
}

// Raw returns the backing map.
func (o *Object) Raw() map[string]any {
	return o.target.raw
}

func (t *target) load(key string) any {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.raw[key]
}

func (t *target) store(key string, value any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.raw[key] = value
}

// track registers the running effect as a subscriber of (t, key).
func track(t *target, key string) {
	if !isTracking() {
		return
	}
	trackCell(t.cell(key), t)
}

// trigger notifies the subscribers of (t, key).
func trigger(t *target, key string) {
	id, ok := t.lookupCell(key)
	if !ok {
		return
	}
	triggerCell(id)
}

// IsReactive reports whether v is a reactive Object view.
func IsReactive(v any) bool {
	o, ok := v.(*Object)
	return ok && o.Get(FlagIsReactive) == true
}

// IsReadonly reports whether v is a readonly or shallow-readonly Object view.
func IsReadonly(v any) bool {
	o, ok := v.(*Object)
	return ok && o.Get(FlagIsReadonly) == true
}

// IsProxy reports whether v is any Object view.
func IsProxy(v any) bool {
	return IsReactive(v) || IsReadonly(v)
}

// ToRaw returns the backing map of an Object, or v unchanged.
func ToRaw(v any) any {
	if o, ok := v.(*Object); ok {
		return o.Raw()
	}
	return v
}

// WarnHandler receives non-fatal diagnostics such as ignored readonly writes.
type WarnHandler func(err *errors.Error)

var (
	warnHandler WarnHandler = defaultWarn
	warnMu      sync.RWMutex
)

func defaultWarn(err *errors.Error) {
	slog.Warn("reactivity: "+err.Message, "error", err)
}

// SetWarnHandler replaces the diagnostic sink and returns the previous one.
// A nil handler restores the default, which logs through slog.
func SetWarnHandler(h WarnHandler) WarnHandler {
	warnMu.Lock()
	defer warnMu.Unlock()
	old := warnHandler
	if h == nil {
		h = defaultWarn
	}
	warnHandler = h
	return old
}

func warn(err *errors.Error) {
	warnMu.RLock()
	h := warnHandler
	warnMu.RUnlock()
	h(err)
}
