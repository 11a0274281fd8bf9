package demo

import (
	"fmt"

	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// IncrementButton emits "increment" with its step when clicked.
var IncrementButton = &runtime.Component{
	Name: "IncrementButton",
	Render: func(this *runtime.PublicInstance) *vdom.VNode {
		step := this.Get("step")
		return vdom.H("button", vdom.Props{
			"class": "increment",
			"onClick": func() {
				this.Emit("increment", step)
			},
		}, fmt.Sprintf("+%v", step))
	},
}

// Counter shows a count, its double, and a button that increments it.
var Counter = &runtime.Component{
	Name: "Counter",
	Setup: func(props *reactivity.Object, _ *runtime.SetupContext) map[string]any {
		start, _ := props.Get("start").(int)
		count := reactivity.NewRef(start)
		double := reactivity.NewComputed(func() int {
			return count.Get().(int) * 2
		})
		return map[string]any{
			"count":  count,
			"double": double,
			"add": func(step int) {
				count.Set(count.Peek().(int) + step)
			},
		}
	},
	Render: func(this *runtime.PublicInstance) *vdom.VNode {
		double := this.Get("double").(*reactivity.Computed[int])
		return vdom.H("div", vdom.Props{"class": "counter"}, []*vdom.VNode{
			vdom.H("p", vdom.Props{"class": "count"}, fmt.Sprintf("count: %v", this.Get("count"))),
			vdom.H("p", vdom.Props{"class": "double"}, fmt.Sprintf("double: %d", double.Get())),
			vdom.H(IncrementButton, vdom.Props{
				"step":        1,
				"onIncrement": this.Get("add"),
			}, nil),
		})
	},
}

func init() {
	register(Demo{
		Name:        "counter",
		Description: "ref, computed and emit",
		Root:        Counter,
		Props:       vdom.Props{"start": 0},
	})
}
