package runtime

// HostAdapter is the set of host-tree operations the renderer needs.
// Host nodes are opaque to the renderer and must be comparable.
type HostAdapter interface {
	// CreateElement creates an element node.
	CreateElement(tag string) any
	// CreateText creates a text node.
	CreateText(text string) any
	// PatchProp installs, updates or removes (next == nil) an attribute or
	// an event listener. Keys matching "on" + upper-case letter are events.
	PatchProp(el any, key string, prev, next any)
	// Insert places child into parent before anchor, or last when anchor
	// is nil. Inserting an attached node moves it.
	Insert(child, parent, anchor any)
	// Remove detaches child from its parent.
	Remove(child any)
	// SetElementText replaces the content of el with text. On a text node
	// it replaces the node's text.
	SetElementText(el any, text string)
}

// SiblingHost is implemented by hosts that can report a node's next
// sibling. The renderer uses it to remount a replaced node in place;
// without it replacements are appended.
type SiblingHost interface {
	NextSibling(node any) any
}
