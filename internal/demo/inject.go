package demo

import (
	"fmt"

	"github.com/vango-dev/minivue/pkg/reactivity"
	"github.com/vango-dev/minivue/pkg/runtime"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// ThemeLabel shows the injected theme and user.
var ThemeLabel = &runtime.Component{
	Name: "ThemeLabel",
	Setup: func(*reactivity.Object, *runtime.SetupContext) map[string]any {
		return map[string]any{
			"theme": runtime.Inject("theme"),
			"user":  runtime.Inject("user", "guest"),
		}
	},
	Render: func(this *runtime.PublicInstance) *vdom.VNode {
		return vdom.H("span", vdom.Props{"class": "theme"},
			fmt.Sprintf("%v/%v", this.Get("theme"), this.Get("user")))
	},
}

// DarkPanel overrides the theme for its own subtree.
var DarkPanel = &runtime.Component{
	Name: "DarkPanel",
	Setup: func(*reactivity.Object, *runtime.SetupContext) map[string]any {
		runtime.Provide("theme", "dark")
		return nil
	},
	Render: func(*runtime.PublicInstance) *vdom.VNode {
		return vdom.H("section", vdom.Props{"class": "dark"}, vdom.H(ThemeLabel, nil, nil))
	},
}

// Plain renders a label without providing anything.
var Plain = &runtime.Component{
	Name: "Plain",
	Render: func(*runtime.PublicInstance) *vdom.VNode {
		return vdom.H("section", vdom.Props{"class": "plain"}, vdom.H(ThemeLabel, nil, nil))
	},
}

// ThemeProvider provides a theme and a user to two sibling subtrees.
var ThemeProvider = &runtime.Component{
	Name: "ThemeProvider",
	Setup: func(props *reactivity.Object, _ *runtime.SetupContext) map[string]any {
		runtime.Provide("theme", "light")
		if user := props.Get("user"); user != nil {
			runtime.Provide("user", user)
		}
		return nil
	},
	Render: func(*runtime.PublicInstance) *vdom.VNode {
		return vdom.H("div", vdom.Props{"class": "provider"}, []*vdom.VNode{
			vdom.H(DarkPanel, nil, nil),
			vdom.H(Plain, nil, nil),
		})
	},
}

func init() {
	register(Demo{
		Name:        "inject",
		Description: "provide/inject across sibling subtrees",
		Root:        ThemeProvider,
		Props:       vdom.Props{"user": "ada"},
	})
}
