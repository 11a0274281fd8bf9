package vdom

// SlotFunc produces slot content from scoped props. It may return a *VNode,
// a []*VNode, or nil.
type SlotFunc func(props Props) any

// Slots maps slot names to producers, passed as a component's children.
type Slots map[string]SlotFunc

// NormalizedSlots maps slot names to producers that always return a slice.
type NormalizedSlots map[string]func(props Props) []*VNode

// NormalizeSlots wraps every producer so its result is a node slice.
func NormalizeSlots(slots Slots) NormalizedSlots {
	normalized := make(NormalizedSlots, len(slots))
	for name, fn := range slots {
		if fn == nil {
			continue
		}
		normalized[name] = func(props Props) []*VNode {
			return normalizeSlotValue(fn(props))
		}
	}
	return normalized
}

func normalizeSlotValue(v any) []*VNode {
	switch n := v.(type) {
	case nil:
		return nil
	case *VNode:
		if n == nil {
			return nil
		}
		return []*VNode{n}
	case []*VNode:
		return n
	case string:
		return []*VNode{CreateTextVNode(n)}
	}
	return nil
}

// RenderSlots invokes the named slot with props and wraps its nodes in a
// Fragment. It returns nil when the slot does not exist.
func RenderSlots(slots NormalizedSlots, name string, props Props) *VNode {
	slot, ok := slots[name]
	if !ok {
		return nil
	}
	return H(Fragment, nil, slot(props))
}
