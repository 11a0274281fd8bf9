package vdom

import "fmt"

// VKind is the node type discriminator derived from VNode.Type.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Stateful component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Symbol is a sentinel node type.
type Symbol struct {
	name string
}

// String returns the sentinel name.
func (s *Symbol) String() string {
	return s.name
}

var (
	// Fragment groups children without a wrapper element.
	Fragment = &Symbol{name: "Fragment"}
	// Text is the type of plain text nodes.
	Text = &Symbol{name: "Text"}
)

// ShapeFlag is a bit set describing a node and its children.
type ShapeFlag uint8

const (
	ShapeElement ShapeFlag = 1 << iota
	ShapeStatefulComponent
	ShapeTextChildren
	ShapeArrayChildren
	ShapeSlotChildren
)

// Has reports whether all bits of flag are set.
func (f ShapeFlag) Has(flag ShapeFlag) bool {
	return f&flag == flag
}

// Props holds attributes and event handlers. Keys matching "on" followed by
// an upper-case letter are event handlers.
type Props map[string]any

// VNode is the virtual node.
type VNode struct {
	// Type is a tag name, Fragment, Text, or a component descriptor.
	Type any
	// Props are the node's attributes and handlers.
	Props Props
	// Children is a string, []*VNode, Slots, or nil.
	Children any
	// ShapeFlag is computed by H.
	ShapeFlag ShapeFlag
	// Key identifies the node among its siblings. It must be comparable.
	Key any

	// El is the host node once mounted. Components record the root host
	// node of their subtree; fragments record their start anchor.
	El any
	// Anchor is the end anchor of a mounted fragment.
	Anchor any
	// Component is the runtime instance for component nodes.
	Component any
}

// Kind returns the node kind.
func (v *VNode) Kind() VKind {
	switch t := v.Type.(type) {
	case string:
		return KindElement
	case *Symbol:
		if t == Text {
			return KindText
		}
		return KindFragment
	default:
		return KindComponent
	}
}

// ChildNodes returns array children, or nil.
func (v *VNode) ChildNodes() []*VNode {
	nodes, _ := v.Children.([]*VNode)
	return nodes
}

// TextContent returns text children, or "".
func (v *VNode) TextContent() string {
	s, _ := v.Children.(string)
	return s
}

// String describes the node for logs and test failures.
func (v *VNode) String() string {
	if v == nil {
		return "<nil>"
	}
	switch v.Kind() {
	case KindElement:
		if v.Key != nil {
			return fmt.Sprintf("<%s key=%v>", v.Type, v.Key)
		}
		return fmt.Sprintf("<%s>", v.Type)
	case KindText:
		return fmt.Sprintf("%q", v.TextContent())
	case KindFragment:
		return fmt.Sprintf("Fragment(%d)", len(v.ChildNodes()))
	default:
		if s, ok := v.Type.(fmt.Stringer); ok {
			return fmt.Sprintf("<%s>", s.String())
		}
		return "<component>"
	}
}

// SameType reports whether a and b may be patched into each other: same
// type and same key.
func SameType(a, b *VNode) bool {
	return a.Type == b.Type && a.Key == b.Key
}
