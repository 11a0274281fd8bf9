package runtime

import (
	"log/slog"
	"sync"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/internal/goid"
)

// instanceStacks holds, per goroutine, the instances whose Setup is
// running. Nested mounts push and pop so the outer instance is restored.
var instanceStacks sync.Map

func pushInstance(i *Instance) {
	gid := goid.ID()
	var stack []*Instance
	if v, ok := instanceStacks.Load(gid); ok {
		stack = v.([]*Instance)
	}
	instanceStacks.Store(gid, append(stack, i))
}

func popInstance() {
	gid := goid.ID()
	v, ok := instanceStacks.Load(gid)
	if !ok {
		return
	}
	stack := v.([]*Instance)
	if len(stack) <= 1 {
		instanceStacks.Delete(gid)
		return
	}
	instanceStacks.Store(gid, stack[:len(stack)-1])
}

// GetCurrentInstance returns the instance whose Setup is running on this
// goroutine, or nil.
func GetCurrentInstance() *Instance {
	v, ok := instanceStacks.Load(goid.ID())
	if !ok {
		return nil
	}
	stack := v.([]*Instance)
	return stack[len(stack)-1]
}

// Provide publishes value under key to the current instance's
// descendants. Outside Setup it logs a warning and does nothing.
func Provide(key, value any) {
	inst := GetCurrentInstance()
	if inst == nil {
		slog.Warn("provide called outside setup", "error", errors.New("E003").WithDetail("provide"))
		return
	}
	if inst.provides == nil {
		inst.provides = make(map[any]any)
	}
	inst.provides[key] = value
}

// Inject looks key up in the ancestors of the current instance, nearest
// first. When no ancestor provides key, def is returned; a def of type
// func() any is called to produce the value.
func Inject(key any, def ...any) any {
	inst := GetCurrentInstance()
	if inst == nil {
		slog.Warn("inject called outside setup", "error", errors.New("E003").WithDetail("inject"))
		return nil
	}
	for p := inst.parent; p != nil; p = p.parent {
		if v, ok := p.provides[key]; ok {
			return v
		}
	}
	if len(def) == 0 {
		return nil
	}
	if factory, ok := def[0].(func() any); ok {
		return factory()
	}
	return def[0]
}
