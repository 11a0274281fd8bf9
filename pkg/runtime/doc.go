// Package runtime mounts component trees onto a host and keeps them in sync
// with reactive state.
//
// A Renderer is created for a HostAdapter. CreateApp mounts a root
// component into a host container:
//
//	r := runtime.NewRenderer(host)
//	app := r.CreateApp(&runtime.Component{
//	    Name: "App",
//	    Setup: func(props *reactivity.Object, ctx *runtime.SetupContext) map[string]any {
//	        return map[string]any{"count": reactivity.NewRef(0)}
//	    },
//	    Render: func(this *runtime.PublicInstance) *vdom.VNode {
//	        return vdom.H("p", nil, fmt.Sprint(this.Get("count")))
//	    },
//	})
//	app.Mount(container)
//
// Each component renders inside a reactive effect. When state read during
// render changes, the effect queues the component's update on the
// renderer's scheduler and the component re-renders at the next microtask
// checkpoint. Reconciliation of child lists is keyed and moves the fewest
// host nodes possible.
//
// Provide, Inject and GetCurrentInstance are valid only while a
// component's Setup runs.
package runtime
