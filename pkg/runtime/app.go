package runtime

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/minivue/pkg/scheduler"
	"github.com/vango-dev/minivue/pkg/vdom"
)

// App is a root component bound to a renderer.
type App struct {
	renderer  *Renderer
	root      *Component
	props     vdom.Props
	container any
	vnode     *vdom.VNode
}

// CreateApp returns an app for root. props are passed to the root
// component.
func (r *Renderer) CreateApp(root *Component, props ...vdom.Props) *App {
	app := &App{renderer: r, root: root}
	if len(props) > 0 {
		app.props = props[0]
	}
	return app
}

// Mount renders the root component into container.
func (a *App) Mount(container any) *Instance {
	_, span := a.renderer.tracer.Start(context.Background(), "app.mount",
		trace.WithAttributes(attribute.String("component", a.root.String())),
	)
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, "mount panicked")
			panic(r)
		}
	}()

	a.container = container
	a.vnode = vdom.H(a.root, a.props, nil)
	a.renderer.Render(a.vnode, container)
	a.renderer.logger.Debug("app mounted", "component", a.root.String())
	return a.Instance()
}

// Unmount removes the app's tree from its container.
func (a *App) Unmount() {
	if a.container == nil {
		return
	}
	a.renderer.Render(nil, a.container)
	a.container = nil
	a.vnode = nil
}

// Instance returns the root component instance, or nil before Mount.
func (a *App) Instance() *Instance {
	if a.vnode == nil {
		return nil
	}
	inst, _ := a.vnode.Component.(*Instance)
	return inst
}

// Renderer returns the renderer the app mounts with.
func (a *App) Renderer() *Renderer {
	return a.renderer
}

// NextTick runs fn after the pending flush of the default scheduler.
func NextTick(fn func()) {
	scheduler.NextTick(fn)
}

