package demo

import (
	"strconv"

	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// KeyedList renders a keyed list with controls that reorder, grow and
// shrink it.
var KeyedList = &runtime.Component{
	Name: "KeyedList",
	Setup: func(*reactivity.Object, *runtime.SetupContext) map[string]any {
		state := reactivity.Reactive(map[string]any{
			"items": []string{"A", "B", "C", "D", "E"},
			"next":  0,
		})
		items := func() []string {
			return append([]string(nil), state.Get("items").([]string)...)
		}
		return map[string]any{
			"state": state,
			"reverse": func() {
				cur := items()
				for i, j := 0, len(cur)-1; i < j; i, j = i+1, j-1 {
					cur[i], cur[j] = cur[j], cur[i]
				}
				state.Set("items", cur)
			},
			"add": func() {
				n := state.Get("next").(int) + 1
				state.Set("next", n)
				state.Set("items", append(items(), "N"+strconv.Itoa(n)))
			},
			"pop": func() {
				cur := items()
				if len(cur) > 0 {
					state.Set("items", cur[:len(cur)-1])
				}
			},
		}
	},
	Render: func(this *runtime.PublicInstance) *vdom.VNode {
		state := this.Get("state").(*reactivity.Object)
		items := state.Get("items").([]string)
		children := make([]*vdom.VNode, len(items))
		for i, item := range items {
			children[i] = vdom.H("li", vdom.Props{"key": item}, item)
		}
		return vdom.H("div", vdom.Props{"class": "list"}, []*vdom.VNode{
			vdom.H("ul", nil, children),
			vdom.H("button", vdom.Props{"class": "reverse", "onClick": this.Get("reverse")}, "reverse"),
			vdom.H("button", vdom.Props{"class": "add", "onClick": this.Get("add")}, "add"),
			vdom.H("button", vdom.Props{"class": "pop", "onClick": this.Get("pop")}, "pop"),
		})
	},
}

func init() {
	register(Demo{
		Name:        "list",
		Description: "keyed children reconciliation",
		Root:        KeyedList,
	})
}
