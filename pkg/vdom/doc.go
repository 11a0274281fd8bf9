// Package vdom provides the virtual node model shared by the renderer and
// application code.
//
// A VNode describes an element, a component, a text node or a fragment
// before it is reconciled against a host tree. The renderer in
// pkg/runtime records the host node it created on VNode.El and, for
// components, the instance on VNode.Component.
//
// # Building Trees
//
// H is the single constructor. The type decides the node kind:
//
//	H("div", Props{"id": "root"}, []*VNode{
//	    H("p", nil, "hello"),
//	    CreateTextVNode("world"),
//	})
//
// A string type is an element, the Fragment and Text sentinels produce
// grouping and text nodes, and anything else is treated as a stateful
// component. Children may be a string, a single *VNode, a slice of nodes,
// or, for components, a Slots mapping.
//
// # Shape Flags
//
// ShapeFlag packs the node kind and the kind of its children into one bit
// set so the renderer can dispatch without type switches.
//
// # Slots
//
// Slots are named producers. NormalizeSlots turns them into functions
// returning node slices and RenderSlots wraps one slot's output in a
// Fragment.
//
// # Keyed Reconciliation
//
// LongestIncreasingSubsequence is the helper the keyed child diff uses to
// find the nodes that can stay where they are.
package vdom
