// Package memhost is an in-memory host for the runtime renderer.
//
// Host keeps a tree of Nodes and logs every operation the renderer
// performs as an Op. Tests assert on the log, the live server streams it
// to browsers, and InnerHTML serializes a subtree for snapshots.
//
//	host := memhost.New()
//	root := host.CreateContainer("div")
//	runtime.NewRenderer(host).CreateApp(App).Mount(root)
//	fmt.Println(host.InnerHTML(root))
package memhost
