package runtime

import (
	"log/slog"
	"sort"
	"sync/atomic"

	"github.com/vango-dev/minivue/internal/errors"
	"github.com/vango-dev/minivue/internal/shared"
	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/scheduler"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// SetupFunc initializes a component. props is a shallow readonly view of
// the props the component was mounted with. The returned mapping becomes
// the component's state, with refs unwrapped on access.
type SetupFunc func(props *reactivity.Object, ctx *SetupContext) map[string]any

// RenderFunc produces the component's subtree.
type RenderFunc func(this *PublicInstance) *vdom.VNode

// Component describes a stateful component.
type Component struct {
	Name   string
	Setup  SetupFunc
	Render RenderFunc
}

// String returns the component name.
func (c *Component) String() string {
	if c.Name == "" {
		return "Anonymous"
	}
	return c.Name
}

// SetupContext is passed to Setup.
type SetupContext struct {
	inst *Instance
}

// Emit calls the handler prop registered for event. See Instance.Emit.
func (c *SetupContext) Emit(event string, args ...any) {
	c.inst.Emit(event, args...)
}

// Slots returns the component's normalized slots.
func (c *SetupContext) Slots() vdom.NormalizedSlots {
	return c.inst.slots
}

var instanceUID atomic.Uint64

// Instance is a mounted component.
type Instance struct {
	uid    uint64
	typ    *Component
	parent *Instance

	vnode *vdom.VNode
	// next is the vnode received from a parent update, applied before the
	// next render.
	next    *vdom.VNode
	subtree *vdom.VNode

	rawProps   map[string]any
	props      *reactivity.Object
	slots      vdom.NormalizedSlots
	setupState *reactivity.RefProxy
	provides   map[any]any

	render    RenderFunc
	update    *reactivity.ReactiveEffect
	job       *scheduler.FuncJob
	proxy     *PublicInstance
	isMounted bool

	logger *slog.Logger
}

func newInstance(vnode *vdom.VNode, parent *Instance, logger *slog.Logger) *Instance {
	typ, _ := vnode.Type.(*Component)
	inst := &Instance{
		uid:    instanceUID.Add(1),
		typ:    typ,
		parent: parent,
		vnode:  vnode,
		logger: logger,
	}
	inst.proxy = &PublicInstance{inst: inst}
	return inst
}

// UID returns the instance's unique id.
func (i *Instance) UID() uint64 { return i.uid }

// Type returns the component descriptor.
func (i *Instance) Type() *Component { return i.typ }

// Parent returns the parent instance, or nil for the root.
func (i *Instance) Parent() *Instance { return i.parent }

// VNode returns the vnode the instance is mounted for.
func (i *Instance) VNode() *vdom.VNode { return i.vnode }

// Subtree returns the last rendered subtree.
func (i *Instance) Subtree() *vdom.VNode { return i.subtree }

// Props returns the shallow readonly props view.
func (i *Instance) Props() *reactivity.Object { return i.props }

// Slots returns the normalized slots.
func (i *Instance) Slots() vdom.NormalizedSlots { return i.slots }

// IsMounted reports whether the first render completed.
func (i *Instance) IsMounted() bool { return i.isMounted }

// Proxy returns the public instance passed to Render.
func (i *Instance) Proxy() *PublicInstance { return i.proxy }

// Update returns the render effect.
func (i *Instance) Update() *reactivity.ReactiveEffect { return i.update }

// Emit invokes the handler prop for event ("on" + capitalized camel-cased
// event) with args. Events without a handler are dropped.
func (i *Instance) Emit(event string, args ...any) {
	key := shared.ToHandlerKey(shared.Camelize(event))
	handler, ok := i.rawProps[key]
	if !ok || handler == nil {
		return
	}
	if _, err := shared.Invoke(handler, args...); err != nil {
		i.logger.Warn("emit handler rejected arguments",
			"error", errors.New("E005").WithDetail(key).Wrap(err),
			"component", i.typ.String())
	}
}

// setupComponent initializes props and slots, then runs Setup.
func (i *Instance) setupComponent() {
	i.initProps(i.vnode)
	i.initSlots(i.vnode)
	i.setupStatefulComponent()
}

func (i *Instance) initProps(vnode *vdom.VNode) {
	raw := map[string]any(vnode.Props)
	if raw == nil {
		raw = map[string]any{}
	}
	i.rawProps = raw
	i.props = reactivity.ShallowReadonly(raw)
}

func (i *Instance) initSlots(vnode *vdom.VNode) {
	if !vnode.ShapeFlag.Has(vdom.ShapeSlotChildren) {
		i.slots = vdom.NormalizedSlots{}
		return
	}
	slots, _ := vnode.Children.(vdom.Slots)
	i.slots = vdom.NormalizeSlots(slots)
}

func (i *Instance) setupStatefulComponent() {
	var state map[string]any
	if i.typ != nil && i.typ.Setup != nil {
		state = i.runSetup()
	}
	if state == nil {
		state = map[string]any{}
	}
	i.setupState = reactivity.ProxyRefs(state)
	i.finishComponentSetup()
}

func (i *Instance) runSetup() map[string]any {
	pushInstance(i)
	defer popInstance()

	reactivity.PauseTracking()
	defer reactivity.ResetTracking()

	return i.typ.Setup(i.props, &SetupContext{inst: i})
}

func (i *Instance) finishComponentSetup() {
	if i.typ != nil && i.typ.Render != nil {
		i.render = i.typ.Render
		return
	}
	name := "<unknown>"
	if i.typ != nil {
		name = i.typ.String()
	}
	i.logger.Warn("component has no render function",
		"error", errors.New("E002").WithDetail(name))
	i.render = func(*PublicInstance) *vdom.VNode { return nil }
}

// renderRoot runs the render function. A nil result renders nothing.
func (i *Instance) renderRoot() *vdom.VNode {
	root := i.render(i.proxy)
	if root == nil {
		root = vdom.H(vdom.Fragment, nil, []*vdom.VNode{})
	}
	return root
}

// applyNext replaces the vnode and props with those of a parent update.
func (i *Instance) applyNext(next *vdom.VNode) {
	next.Component = i
	next.El = i.vnode.El
	i.vnode = next
	i.next = nil
	i.initProps(next)
	i.initSlots(next)
}

// shouldUpdateComponent reports whether any prop differs between prev
// and next.
func shouldUpdateComponent(prev, next *vdom.VNode) bool {
	for _, key := range sortedKeys(next.Props) {
		if shared.HasChanged(prev.Props[key], next.Props[key]) {
			return true
		}
	}
	for key := range prev.Props {
		if _, ok := next.Props[key]; !ok {
			return true
		}
	}
	return false
}

func sortedKeys(props vdom.Props) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
