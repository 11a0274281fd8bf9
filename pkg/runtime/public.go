package runtime

import (
	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// PublicInstance is the receiver of a component's render function.
type PublicInstance struct {
	inst *Instance
}

// Get resolves key against the setup state, then the props, then the
// accessors $el, $slots and $props. Refs in setup state are unwrapped.
func (p *PublicInstance) Get(key string) any {
	i := p.inst
	if i.setupState != nil && i.setupState.Has(key) {
		return i.setupState.Get(key)
	}
	if i.props != nil && i.props.Has(key) {
		return i.props.Get(key)
	}
	switch key {
	case "$el":
		return i.vnode.El
	case "$slots":
		return i.slots
	case "$props":
		return i.props
	}
	return nil
}

// Set writes key in the setup state. A ref stored under key receives the
// value.
func (p *PublicInstance) Set(key string, value any) bool {
	return p.inst.setupState.Set(key, value)
}

// El returns the root host node.
func (p *PublicInstance) El() any {
	return p.inst.vnode.El
}

// Props returns the props view.
func (p *PublicInstance) Props() *reactivity.Object {
	return p.inst.props
}

// Slots returns the normalized slots.
func (p *PublicInstance) Slots() vdom.NormalizedSlots {
	return p.inst.slots
}

// Emit forwards to Instance.Emit.
func (p *PublicInstance) Emit(event string, args ...any) {
	p.inst.Emit(event, args...)
}

// Instance returns the underlying instance.
func (p *PublicInstance) Instance() *Instance {
	return p.inst
}
