package memhost

// NodeKind distinguishes element and text nodes.
type NodeKind uint8

const (
	ElementNode NodeKind = iota
	TextNode
)

// String returns the kind name.
func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	default:
		return "unknown"
	}
}

// Node is a host node.
type Node struct {
	ID   int
	Kind NodeKind
	Tag  string
	// Text is the content of a text node, or the text content set on an
	// element with SetElementText.
	Text      string
	Attrs     map[string]any
	Listeners map[string]any
	Parent    *Node
	Children  []*Node
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.Children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) detach() {
	if n.Parent == nil {
		return
	}
	p := n.Parent
	if i := p.indexOf(n); i >= 0 {
		p.Children = append(p.Children[:i], p.Children[i+1:]...)
	}
	n.Parent = nil
}
