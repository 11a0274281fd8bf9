package vdom

import (
	"reflect"
	"testing"
)

type testComponent struct{ name string }

func (c *testComponent) String() string { return c.name }

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindComponent, "Component"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHShapeFlags(t *testing.T) {
	comp := &testComponent{name: "Child"}
	tests := []struct {
		name string
		node *VNode
		kind VKind
		want ShapeFlag
	}{
		{
			name: "element with text",
			node: H("div", nil, "hi"),
			kind: KindElement,
			want: ShapeElement | ShapeTextChildren,
		},
		{
			name: "element with children",
			node: H("div", nil, []*VNode{H("p", nil, nil)}),
			kind: KindElement,
			want: ShapeElement | ShapeArrayChildren,
		},
		{
			name: "element with single child",
			node: H("div", nil, H("p", nil, nil)),
			kind: KindElement,
			want: ShapeElement | ShapeArrayChildren,
		},
		{
			name: "component with slots",
			node: H(comp, nil, Slots{"default": func(Props) any { return nil }}),
			kind: KindComponent,
			want: ShapeStatefulComponent | ShapeSlotChildren,
		},
		{
			name: "component without children",
			node: H(comp, Props{"msg": "x"}, nil),
			kind: KindComponent,
			want: ShapeStatefulComponent,
		},
		{
			name: "fragment",
			node: H(Fragment, nil, []*VNode{}),
			kind: KindFragment,
			want: ShapeArrayChildren,
		},
		{
			name: "text",
			node: CreateTextVNode("x"),
			kind: KindText,
			want: ShapeTextChildren,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.ShapeFlag; got != tt.want {
				t.Errorf("ShapeFlag = %b, want %b", got, tt.want)
			}
			if got := tt.node.Kind(); got != tt.kind {
				t.Errorf("Kind() = %v, want %v", got, tt.kind)
			}
		})
	}
}

func TestHMixedChildren(t *testing.T) {
	node := H("ul", nil, []any{H("li", nil, "a"), "b", nil})
	children := node.ChildNodes()
	if len(children) != 2 {
		t.Fatalf("len(children) = %d, want 2", len(children))
	}
	if children[1].Kind() != KindText || children[1].TextContent() != "b" {
		t.Errorf("children[1] = %v, want text \"b\"", children[1])
	}
}

func TestHKey(t *testing.T) {
	node := H("li", Props{"key": "a", "class": "item"}, nil)
	if node.Key != "a" {
		t.Errorf("Key = %v, want a", node.Key)
	}
	if H("li", nil, nil).Key != nil {
		t.Error("Key should be nil without a key prop")
	}
}

func TestSameType(t *testing.T) {
	comp := &testComponent{name: "A"}
	tests := []struct {
		name string
		a, b *VNode
		want bool
	}{
		{"same tag no key", H("p", nil, nil), H("p", nil, nil), true},
		{"same tag same key", H("p", Props{"key": 1}, nil), H("p", Props{"key": 1}, nil), true},
		{"same tag other key", H("p", Props{"key": 1}, nil), H("p", Props{"key": 2}, nil), false},
		{"other tag", H("p", nil, nil), H("div", nil, nil), false},
		{"same component", H(comp, nil, nil), H(comp, nil, nil), true},
		{"other component", H(comp, nil, nil), H(&testComponent{name: "A"}, nil, nil), false},
		{"text", CreateTextVNode("a"), CreateTextVNode("b"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameType(tt.a, tt.b); got != tt.want {
				t.Errorf("SameType() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeString(t *testing.T) {
	tests := []struct {
		node *VNode
		want string
	}{
		{nil, "<nil>"},
		{H("li", Props{"key": "a"}, nil), "<li key=a>"},
		{H("div", nil, nil), "<div>"},
		{CreateTextVNode("x"), `"x"`},
		{H(Fragment, nil, []*VNode{H("p", nil, nil)}), "Fragment(1)"},
		{H(&testComponent{name: "Foo"}, nil, nil), "<Foo>"},
	}
	for _, tt := range tests {
		if got := tt.node.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestRenderSlots(t *testing.T) {
	var got Props
	slots := NormalizeSlots(Slots{
		"header": func(props Props) any {
			got = props
			return H("p", nil, "header")
		},
		"footer": func(props Props) any {
			return []*VNode{H("p", nil, "a"), H("p", nil, "b")}
		},
	})

	node := RenderSlots(slots, "header", Props{"age": 5})
	if node == nil {
		t.Fatal("RenderSlots(header) = nil")
	}
	if node.Type != Fragment {
		t.Errorf("Type = %v, want Fragment", node.Type)
	}
	if !reflect.DeepEqual(got, Props{"age": 5}) {
		t.Errorf("slot props = %v, want map[age:5]", got)
	}
	if n := len(node.ChildNodes()); n != 1 {
		t.Errorf("len(children) = %d, want 1", n)
	}

	footer := RenderSlots(slots, "footer", nil)
	if n := len(footer.ChildNodes()); n != 2 {
		t.Errorf("footer children = %d, want 2", n)
	}

	if RenderSlots(slots, "missing", nil) != nil {
		t.Error("missing slot should render nil")
	}
}
