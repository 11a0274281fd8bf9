package demo

import (
	"fmt"

	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// Card renders a header and footer slot around its body. The header slot
// receives the card's age.
var Card = &runtime.Component{
	Name: "Card",
	Render: func(this *runtime.PublicInstance) *vdom.VNode {
		slots := this.Slots()
		return vdom.H("article", vdom.Props{"class": "card"}, []any{
			vdom.RenderSlots(slots, "header", vdom.Props{"age": this.Get("age")}),
			vdom.H("p", nil, "body"),
			vdom.RenderSlots(slots, "footer", nil),
		})
	},
}

// SlotsDemo fills Card's slots.
var SlotsDemo = &runtime.Component{
	Name: "SlotsDemo",
	Setup: func(*reactivity.Object, *runtime.SetupContext) map[string]any {
		return map[string]any{"age": reactivity.NewRef(5)}
	},
	Render: func(this *runtime.PublicInstance) *vdom.VNode {
		return vdom.H(Card, vdom.Props{"age": this.Get("age")}, vdom.Slots{
			"header": func(props vdom.Props) any {
				return vdom.H("h2", nil, fmt.Sprintf("age %v", props["age"]))
			},
			"footer": func(vdom.Props) any {
				return []*vdom.VNode{
					vdom.H("small", nil, "footer"),
					vdom.CreateTextVNode("!"),
				}
			},
		})
	},
}

func init() {
	register(Demo{
		Name:        "slots",
		Description: "named and scoped slots",
		Root:        SlotsDemo,
	})
}
