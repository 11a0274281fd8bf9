package metrics

import "github.com/vango-dev/minivue/pkg/runtime"

// Operation labels used by Host.
const (
	OpCreateElement  = "create_element"
	OpCreateText     = "create_text"
	OpPatchProp      = "patch_prop"
	OpInsert         = "insert"
	OpRemove         = "remove"
	OpSetElementText = "set_element_text"
)

type countingHost struct {
	runtime.HostAdapter
	c *Collector
}

type countingSiblingHost struct {
	countingHost
	siblings runtime.SiblingHost
}

// Host wraps h so every operation is counted by c. The wrapper keeps
// h's SiblingHost capability.
func Host(h runtime.HostAdapter, c *Collector) runtime.HostAdapter {
	base := countingHost{HostAdapter: h, c: c}
	if sh, ok := h.(runtime.SiblingHost); ok {
		return &countingSiblingHost{countingHost: base, siblings: sh}
	}
	return &base
}

func (h *countingHost) CreateElement(tag string) any {
	h.c.HostOp(OpCreateElement)
	return h.HostAdapter.CreateElement(tag)
}

func (h *countingHost) CreateText(text string) any {
	h.c.HostOp(OpCreateText)
	return h.HostAdapter.CreateText(text)
}

func (h *countingHost) PatchProp(el any, key string, prev, next any) {
	h.c.HostOp(OpPatchProp)
	h.HostAdapter.PatchProp(el, key, prev, next)
}

func (h *countingHost) Insert(child, parent, anchor any) {
	h.c.HostOp(OpInsert)
	h.HostAdapter.Insert(child, parent, anchor)
}

func (h *countingHost) Remove(child any) {
	h.c.HostOp(OpRemove)
	h.HostAdapter.Remove(child)
}

func (h *countingHost) SetElementText(el any, text string) {
	h.c.HostOp(OpSetElementText)
	h.HostAdapter.SetElementText(el, text)
}

func (h *countingSiblingHost) NextSibling(node any) any {
	return h.siblings.NextSibling(node)
}
