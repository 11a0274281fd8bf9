package runtime

import (
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/minivue/internal/shared"
	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/scheduler"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// TracerName is the OpenTelemetry tracer used for mount spans.
const TracerName = "github.com/vango-dev/minivue/pkg/runtime"

// Option configures a Renderer.
type Option func(*Renderer)

// WithScheduler sets the scheduler component updates are queued on.
// Default: scheduler.Default().
func WithScheduler(s *scheduler.Scheduler) Option {
	return func(r *Renderer) {
		if s != nil {
			r.sched = s
		}
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithTracer sets the tracer for mount spans.
func WithTracer(t trace.Tracer) Option {
	return func(r *Renderer) {
		if t != nil {
			r.tracer = t
		}
	}
}

// Renderer reconciles vnode trees against a host.
type Renderer struct {
	host   HostAdapter
	sched  *scheduler.Scheduler
	logger *slog.Logger
	tracer trace.Tracer

	mu    sync.Mutex
	roots map[any]*vdom.VNode
}

// NewRenderer creates a renderer for host.
func NewRenderer(host HostAdapter, opts ...Option) *Renderer {
	r := &Renderer{
		host:   host,
		sched:  scheduler.Default(),
		logger: slog.Default(),
		tracer: otel.Tracer(TracerName),
		roots:  make(map[any]*vdom.VNode),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Host returns the host adapter.
func (r *Renderer) Host() HostAdapter {
	return r.host
}

// Scheduler returns the scheduler updates are queued on.
func (r *Renderer) Scheduler() *scheduler.Scheduler {
	return r.sched
}

// NextTick runs fn after the pending flush of the renderer's scheduler.
func (r *Renderer) NextTick(fn func()) {
	r.sched.NextTick(fn)
}

// Render reconciles vnode into container against what was last rendered
// there. A nil vnode unmounts the previous tree.
func (r *Renderer) Render(vnode *vdom.VNode, container any) {
	r.mu.Lock()
	prev := r.roots[container]
	r.mu.Unlock()

	if vnode == nil {
		if prev != nil {
			r.unmount(prev)
		}
		r.mu.Lock()
		delete(r.roots, container)
		r.mu.Unlock()
		return
	}

	r.patch(prev, vnode, container, nil, nil)

	r.mu.Lock()
	r.roots[container] = vnode
	r.mu.Unlock()
}

func (r *Renderer) patch(n1, n2 *vdom.VNode, container any, parent *Instance, anchor any) {
	if n1 == n2 {
		return
	}
	if n1 != nil && !vdom.SameType(n1, n2) {
		if next := r.nextSibling(n1); next != nil {
			anchor = next
		}
		r.unmount(n1)
		n1 = nil
	}

	switch n2.Type {
	case vdom.Text:
		r.processText(n1, n2, container, anchor)
	case vdom.Fragment:
		r.processFragment(n1, n2, container, parent, anchor)
	default:
		switch {
		case n2.ShapeFlag.Has(vdom.ShapeElement):
			r.processElement(n1, n2, container, parent, anchor)
		case n2.ShapeFlag.Has(vdom.ShapeStatefulComponent):
			r.processComponent(n1, n2, container, parent, anchor)
		}
	}
}

func (r *Renderer) processText(n1, n2 *vdom.VNode, container, anchor any) {
	text := n2.TextContent()
	if n1 == nil {
		el := r.host.CreateText(text)
		n2.El = el
		r.host.Insert(el, container, anchor)
		return
	}
	n2.El = n1.El
	if n1.TextContent() != text {
		r.host.SetElementText(n2.El, text)
	}
}

// processFragment brackets the fragment's children with two empty text
// nodes, so an empty fragment still has a position in its container.
func (r *Renderer) processFragment(n1, n2 *vdom.VNode, container any, parent *Instance, anchor any) {
	if n1 == nil {
		start, end := r.host.CreateText(""), r.host.CreateText("")
		n2.El, n2.Anchor = start, end
		r.host.Insert(start, container, anchor)
		r.host.Insert(end, container, anchor)
		r.mountChildren(n2.ChildNodes(), container, parent, end)
		return
	}
	n2.El, n2.Anchor = n1.El, n1.Anchor
	r.patchChildren(n1, n2, container, parent, n2.Anchor)
}

func (r *Renderer) processElement(n1, n2 *vdom.VNode, container any, parent *Instance, anchor any) {
	if n1 == nil {
		r.mountElement(n2, container, parent, anchor)
		return
	}
	r.patchElement(n1, n2, parent)
}

func (r *Renderer) mountElement(vnode *vdom.VNode, container any, parent *Instance, anchor any) {
	el := r.host.CreateElement(vnode.Type.(string))
	vnode.El = el

	switch {
	case vnode.ShapeFlag.Has(vdom.ShapeTextChildren):
		r.host.SetElementText(el, vnode.TextContent())
	case vnode.ShapeFlag.Has(vdom.ShapeArrayChildren):
		r.mountChildren(vnode.ChildNodes(), el, parent, nil)
	}

	for _, key := range sortedKeys(vnode.Props) {
		if key == "key" {
			continue
		}
		r.host.PatchProp(el, key, nil, vnode.Props[key])
	}

	r.host.Insert(el, container, anchor)
}

func (r *Renderer) mountChildren(children []*vdom.VNode, container any, parent *Instance, anchor any) {
	for _, child := range children {
		r.patch(nil, child, container, parent, anchor)
	}
}

func (r *Renderer) patchElement(n1, n2 *vdom.VNode, parent *Instance) {
	el := n1.El
	n2.El = el
	r.patchChildren(n1, n2, el, parent, nil)
	r.patchProps(el, n1.Props, n2.Props)
}

func (r *Renderer) patchProps(el any, prev, next vdom.Props) {
	for _, key := range sortedKeys(next) {
		if key == "key" {
			continue
		}
		if shared.HasChanged(prev[key], next[key]) {
			r.host.PatchProp(el, key, prev[key], next[key])
		}
	}
	for _, key := range sortedKeys(prev) {
		if key == "key" {
			continue
		}
		if _, ok := next[key]; !ok {
			r.host.PatchProp(el, key, prev[key], nil)
		}
	}
}

func (r *Renderer) patchChildren(n1, n2 *vdom.VNode, container any, parent *Instance, anchor any) {
	prevFlag := n1.ShapeFlag

	if n2.ShapeFlag.Has(vdom.ShapeTextChildren) {
		if prevFlag.Has(vdom.ShapeArrayChildren) {
			r.unmountChildren(n1.ChildNodes())
		}
		if !prevFlag.Has(vdom.ShapeTextChildren) || n1.TextContent() != n2.TextContent() {
			r.host.SetElementText(container, n2.TextContent())
		}
		return
	}

	switch {
	case prevFlag.Has(vdom.ShapeTextChildren):
		r.host.SetElementText(container, "")
		r.mountChildren(n2.ChildNodes(), container, parent, anchor)
	case prevFlag.Has(vdom.ShapeArrayChildren):
		if n2.ShapeFlag.Has(vdom.ShapeArrayChildren) {
			r.patchKeyedChildren(n1.ChildNodes(), n2.ChildNodes(), container, parent, anchor)
		} else {
			r.unmountChildren(n1.ChildNodes())
		}
	default:
		r.mountChildren(n2.ChildNodes(), container, parent, anchor)
	}
}

// patchKeyedChildren reconciles c1 into c2: common prefix, common suffix,
// then either pure mount, pure removal, or a keyed middle section where
// nodes outside the longest increasing run of old positions are moved.
func (r *Renderer) patchKeyedChildren(c1, c2 []*vdom.VNode, container any, parent *Instance, parentAnchor any) {
	i := 0
	l2 := len(c2)
	e1 := len(c1) - 1
	e2 := l2 - 1

	for i <= e1 && i <= e2 {
		if !vdom.SameType(c1[i], c2[i]) {
			break
		}
		r.patch(c1[i], c2[i], container, parent, nil)
		i++
	}

	for i <= e1 && i <= e2 {
		if !vdom.SameType(c1[e1], c2[e2]) {
			break
		}
		r.patch(c1[e1], c2[e2], container, parent, nil)
		e1--
		e2--
	}

	switch {
	case i > e1:
		if i <= e2 {
			anchor := parentAnchor
			if next := e2 + 1; next < l2 {
				anchor = firstHostNode(c2[next])
			}
			for ; i <= e2; i++ {
				r.patch(nil, c2[i], container, parent, anchor)
			}
		}

	case i > e2:
		for ; i <= e1; i++ {
			r.unmount(c1[i])
		}

	default:
		s1, s2 := i, i
		toBePatched := e2 - s2 + 1
		patched := 0

		keyToNewIndex := make(map[any]int, toBePatched)
		for j := s2; j <= e2; j++ {
			if key := c2[j].Key; key != nil {
				keyToNewIndex[key] = j
			}
		}

		// newIndexToOldIndex[k] is 1 + the old index of the node now at
		// s2+k, or 0 for a node that has to be mounted.
		newIndexToOldIndex := make([]int, toBePatched)
		moved := false
		maxNewIndexSoFar := 0

		for j := s1; j <= e1; j++ {
			prev := c1[j]
			if patched >= toBePatched {
				r.unmount(prev)
				continue
			}

			newIndex := -1
			if prev.Key != nil {
				if idx, ok := keyToNewIndex[prev.Key]; ok {
					newIndex = idx
				}
			} else {
				for k := s2; k <= e2; k++ {
					if newIndexToOldIndex[k-s2] == 0 && vdom.SameType(prev, c2[k]) {
						newIndex = k
						break
					}
				}
			}

			if newIndex < 0 {
				r.unmount(prev)
				continue
			}
			if newIndex >= maxNewIndexSoFar {
				maxNewIndexSoFar = newIndex
			} else {
				moved = true
			}
			newIndexToOldIndex[newIndex-s2] = j + 1
			r.patch(prev, c2[newIndex], container, parent, nil)
			patched++
		}

		var stable []int
		if moved {
			stable = vdom.LongestIncreasingSubsequence(newIndexToOldIndex)
		}
		k := len(stable) - 1

		for j := toBePatched - 1; j >= 0; j-- {
			idx := s2 + j
			next := c2[idx]
			anchor := parentAnchor
			if idx+1 < l2 {
				anchor = firstHostNode(c2[idx+1])
			}

			switch {
			case newIndexToOldIndex[j] == 0:
				r.patch(nil, next, container, parent, anchor)
			case moved:
				if k < 0 || j != stable[k] {
					r.move(next, container, anchor)
				} else {
					k--
				}
			}
		}
	}
}

// move re-inserts the host nodes of vnode before anchor.
func (r *Renderer) move(vnode *vdom.VNode, container, anchor any) {
	for _, node := range hostNodes(vnode) {
		r.host.Insert(node, container, anchor)
	}
}

func (r *Renderer) unmount(vnode *vdom.VNode) {
	switch vnode.Kind() {
	case vdom.KindComponent:
		inst, ok := vnode.Component.(*Instance)
		if !ok {
			return
		}
		reactivity.Stop(inst.update)
		if inst.subtree != nil {
			r.unmount(inst.subtree)
		}
	case vdom.KindFragment:
		r.unmountChildren(vnode.ChildNodes())
		if vnode.El != nil {
			r.host.Remove(vnode.El)
		}
		if vnode.Anchor != nil {
			r.host.Remove(vnode.Anchor)
		}
	default:
		if vnode.El != nil {
			r.host.Remove(vnode.El)
		}
	}
}

func (r *Renderer) unmountChildren(children []*vdom.VNode) {
	for _, child := range children {
		r.unmount(child)
	}
}

// nextSibling returns the host node following vnode's last host node, or
// nil when unknown.
func (r *Renderer) nextSibling(vnode *vdom.VNode) any {
	sh, ok := r.host.(SiblingHost)
	if !ok {
		return nil
	}
	nodes := hostNodes(vnode)
	if len(nodes) == 0 {
		return nil
	}
	return sh.NextSibling(nodes[len(nodes)-1])
}

func (r *Renderer) processComponent(n1, n2 *vdom.VNode, container any, parent *Instance, anchor any) {
	if n1 == nil {
		r.mountComponent(n2, container, parent, anchor)
		return
	}
	r.updateComponent(n1, n2)
}

func (r *Renderer) mountComponent(vnode *vdom.VNode, container any, parent *Instance, anchor any) {
	inst := newInstance(vnode, parent, r.logger)
	vnode.Component = inst
	inst.setupComponent()
	r.setupRenderEffect(inst, vnode, container, anchor)
}

func (r *Renderer) updateComponent(n1, n2 *vdom.VNode) {
	inst := n1.Component.(*Instance)
	n2.Component = inst
	if shouldUpdateComponent(n1, n2) {
		inst.next = n2
		r.sched.InvalidateJob(inst.job)
		inst.update.Run()
		return
	}
	n2.El = n1.El
	inst.vnode = n2
	inst.initProps(n2)
}

func (r *Renderer) setupRenderEffect(inst *Instance, initial *vdom.VNode, container, anchor any) {
	inst.update = reactivity.NewEffect(func() {
		if !inst.isMounted {
			subtree := inst.renderRoot()
			inst.subtree = subtree
			r.patch(nil, subtree, container, inst, anchor)
			initial.El = firstHostNode(subtree)
			inst.isMounted = true
			return
		}

		if next := inst.next; next != nil {
			inst.applyNext(next)
		}
		prev := inst.subtree
		subtree := inst.renderRoot()
		inst.subtree = subtree
		r.patch(prev, subtree, container, inst, nil)
		inst.vnode.El = firstHostNode(subtree)
	}, reactivity.WithScheduler(func() {
		r.sched.QueueJob(inst.job)
	}))
	inst.job = scheduler.NewJob(func() {
		if inst.update.Active() {
			inst.update.Run()
		}
	})
	inst.update.Run()
}

// hostNodes returns the top-level host nodes of vnode in order.
func hostNodes(vnode *vdom.VNode) []any {
	switch vnode.Kind() {
	case vdom.KindFragment:
		var nodes []any
		if vnode.El != nil {
			nodes = append(nodes, vnode.El)
		}
		for _, child := range vnode.ChildNodes() {
			nodes = append(nodes, hostNodes(child)...)
		}
		if vnode.Anchor != nil {
			nodes = append(nodes, vnode.Anchor)
		}
		return nodes
	case vdom.KindComponent:
		if inst, ok := vnode.Component.(*Instance); ok && inst.subtree != nil {
			return hostNodes(inst.subtree)
		}
	}
	if vnode.El != nil {
		return []any{vnode.El}
	}
	return nil
}

// firstHostNode returns the first host node of vnode, or nil.
func firstHostNode(vnode *vdom.VNode) any {
	if nodes := hostNodes(vnode); len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}
