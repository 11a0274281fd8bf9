package vdom

// H creates a virtual node.
//
// children may be:
//   - string: text content
//   - *VNode: a single child
//   - []*VNode: child nodes
//   - []any: a mix of *VNode, string (text nodes) and nil (skipped)
//   - Slots: named slot producers, for components
//
// A "key" prop becomes the node's Key.
func H(typ any, props Props, children any) *VNode {
	v := &VNode{
		Type:      typ,
		Props:     props,
		ShapeFlag: shapeOf(typ),
	}
	if key, ok := props["key"]; ok {
		v.Key = key
	}
	setChildren(v, children)
	return v
}

// CreateTextVNode creates a text node.
func CreateTextVNode(text string) *VNode {
	return &VNode{
		Type:      Text,
		Children:  text,
		ShapeFlag: ShapeTextChildren,
	}
}

func shapeOf(typ any) ShapeFlag {
	switch typ.(type) {
	case string:
		return ShapeElement
	case *Symbol:
		return 0
	default:
		return ShapeStatefulComponent
	}
}

func setChildren(v *VNode, children any) {
	switch c := children.(type) {
	case nil:
	case string:
		v.Children = c
		v.ShapeFlag |= ShapeTextChildren
	case *VNode:
		if c != nil {
			v.Children = []*VNode{c}
			v.ShapeFlag |= ShapeArrayChildren
		}
	case []*VNode:
		v.Children = c
		v.ShapeFlag |= ShapeArrayChildren
	case []any:
		nodes := make([]*VNode, 0, len(c))
		for _, child := range c {
			switch n := child.(type) {
			case *VNode:
				if n != nil {
					nodes = append(nodes, n)
				}
			case string:
				nodes = append(nodes, CreateTextVNode(n))
			}
		}
		v.Children = nodes
		v.ShapeFlag |= ShapeArrayChildren
	case Slots:
		v.Children = c
		if v.ShapeFlag.Has(ShapeStatefulComponent) {
			v.ShapeFlag |= ShapeSlotChildren
		}
	case map[string]SlotFunc:
		setChildren(v, Slots(c))
	}
}
